package config

import (
	"fmt"

	"github.com/gonewx/bomberman/pkg/embedded"
)

// 嵌入的默认配置路径
const (
	ArenaConfigPath  = "data/arena.yaml"
	TileRegistryPath = "data/tiles.yaml"
)

// LoadConfig 加载竞技场配置和格子注册表
//
// 路径非空时读取该文件；路径为空时读取嵌入的默认文件；
// embedded 未初始化时使用代码中的默认值。
func LoadConfig(arenaPath, registryPath string) (*ArenaConfig, *TileRegistry, error) {
	var (
		cfg *ArenaConfig
		reg *TileRegistry
		err error
	)

	switch {
	case arenaPath != "":
		cfg, err = LoadArenaConfig(arenaPath)
	case embedded.IsInitialized():
		var data []byte
		if data, err = embedded.ReadFile(ArenaConfigPath); err == nil {
			cfg, err = ParseArenaConfig(data)
		}
	default:
		cfg = DefaultArenaConfig()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("竞技场配置加载失败: %w", err)
	}

	switch {
	case registryPath != "":
		reg, err = LoadTileRegistry(registryPath)
	case embedded.IsInitialized():
		var data []byte
		if data, err = embedded.ReadFile(TileRegistryPath); err == nil {
			reg, err = ParseTileRegistry(data)
		}
	default:
		reg = DefaultTileRegistry()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("格子注册表加载失败: %w", err)
	}

	return cfg, reg, nil
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FloorTemplate 地板变体模板
type FloorTemplate struct {
	Name   string  `yaml:"name"`   // 变体名称，如 "grass"
	Weight float64 `yaml:"weight"` // 随机选择权重
}

// EnemyTemplate 敌人模板
type EnemyTemplate struct {
	Name string `yaml:"name"` // 模板名称，如 "balloom"
}

// TileRegistry 格子模板注册表
//
// 核心逻辑只依赖类别、权重和模板名称，
// 具体外观由渲染端根据模板名称自行决定。
type TileRegistry struct {
	Floors       []FloorTemplate `yaml:"floors"`
	Border       string          `yaml:"border"`
	Pillar       string          `yaml:"pillar"`
	Destructible string          `yaml:"destructible"`
	Bomb         string          `yaml:"bomb"`
	Player       string          `yaml:"player"`
	Enemies      []EnemyTemplate `yaml:"enemies"`
}

// DefaultTileRegistry 返回默认模板注册表
func DefaultTileRegistry() *TileRegistry {
	return &TileRegistry{
		Floors: []FloorTemplate{
			{Name: "grass", Weight: 6},
			{Name: "dirt", Weight: 3},
			{Name: "flowers", Weight: 1},
		},
		Border:       "border",
		Pillar:       "pillar",
		Destructible: "brick",
		Bomb:         "bomb",
		Player:       "bomberman",
		Enemies: []EnemyTemplate{
			{Name: "balloom"},
			{Name: "oneal"},
			{Name: "doll"},
			{Name: "minvo"},
			{Name: "kondoria"},
			{Name: "ovapi"},
			{Name: "pass"},
			{Name: "pontan"},
		},
	}
}

// LoadTileRegistry 从YAML文件加载模板注册表
func LoadTileRegistry(filepath string) (*TileRegistry, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tile registry file %s: %w", filepath, err)
	}

	registry, err := ParseTileRegistry(data)
	if err != nil {
		return nil, fmt.Errorf("tile registry %s: %w", filepath, err)
	}
	return registry, nil
}

// ParseTileRegistry 解析YAML数据
func ParseTileRegistry(data []byte) (*TileRegistry, error) {
	var registry TileRegistry
	if err := yaml.Unmarshal(data, &registry); err != nil {
		return nil, fmt.Errorf("failed to parse tile registry YAML: %w", err)
	}

	applyRegistryDefaults(&registry)

	if err := ValidateTileRegistry(&registry); err != nil {
		return nil, fmt.Errorf("invalid tile registry: %w", err)
	}
	return &registry, nil
}

// applyRegistryDefaults 未配置的类别模板名称使用默认名称
func applyRegistryDefaults(r *TileRegistry) {
	def := DefaultTileRegistry()
	if r.Border == "" {
		r.Border = def.Border
	}
	if r.Pillar == "" {
		r.Pillar = def.Pillar
	}
	if r.Destructible == "" {
		r.Destructible = def.Destructible
	}
	if r.Bomb == "" {
		r.Bomb = def.Bomb
	}
	if r.Player == "" {
		r.Player = def.Player
	}
}

// ValidateTileRegistry 验证模板注册表
// 手工构造的注册表在使用前也应经过验证，地板模板为空时生成无法进行
func ValidateTileRegistry(r *TileRegistry) error {
	if len(r.Floors) == 0 {
		return fmt.Errorf("at least one floor template is required")
	}

	total := 0.0
	for i, f := range r.Floors {
		if f.Name == "" {
			return fmt.Errorf("floors[%d]: name is required", i)
		}
		if f.Weight < 0 {
			return fmt.Errorf("floors[%d] (%s): weight cannot be negative, got %v", i, f.Name, f.Weight)
		}
		total += f.Weight
	}
	if total <= 0 {
		return fmt.Errorf("total floor weight must be positive, got %v", total)
	}

	for i, e := range r.Enemies {
		if e.Name == "" {
			return fmt.Errorf("enemies[%d]: name is required", i)
		}
	}
	return nil
}

// TotalFloorWeight 返回全部地板变体的权重之和
func (r *TileRegistry) TotalFloorWeight() float64 {
	total := 0.0
	for _, f := range r.Floors {
		total += f.Weight
	}
	return total
}

// CheckCapacity 检查模板数量能否满足竞技场配置
// 每个敌人消耗一个不重复的模板，因此模板数不能少于敌人数量
func (r *TileRegistry) CheckCapacity(cfg *ArenaConfig) error {
	if len(r.Enemies) < cfg.Enemies.Count {
		return fmt.Errorf("enemies.count is %d but only %d enemy templates are registered",
			cfg.Enemies.Count, len(r.Enemies))
	}
	return nil
}

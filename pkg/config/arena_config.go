package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// 默认配置值
const (
	DefaultGridWidth             = 15
	DefaultGridHeight            = 10
	DefaultObstacleCount         = 30
	DefaultSpawnChance           = 0.4
	DefaultSafeZoneDiameter      = 2
	DefaultEnemyCount            = 5
	DefaultEnemyMoveIntervalTick = 4
	DefaultBombRange             = 2
	DefaultBombFuseTicks         = 3
	DefaultMaxBombs              = 1
	DefaultExplosionTicks        = 1
	DefaultMaxAttempts           = 100
	DefaultEnemyKillScore        = 100
	DefaultBlockDestroyedScore   = 10
)

// ArenaConfig 竞技场配置
// 定义网格尺寸、各类障碍和敌人的生成规则、炸弹参数与计分规则
type ArenaConfig struct {
	Grid           GridConfig       `yaml:"grid"`
	Indestructible ObstacleConfig   `yaml:"indestructible"` // 不可摧毁柱子
	Destructible   ObstacleConfig   `yaml:"destructible"`   // 可摧毁砖块
	Enemies        EnemyConfig      `yaml:"enemies"`
	Player         PlayerConfig     `yaml:"player"`
	Bomb           BombConfig       `yaml:"bomb"`
	Generation     GenerationConfig `yaml:"generation"`
	Score          ScoreConfig      `yaml:"score"`
}

// GridConfig 网格尺寸
type GridConfig struct {
	Width  int `yaml:"width"`  // 列数（包含边界）
	Height int `yaml:"height"` // 行数（包含边界）
}

// ObstacleConfig 一类障碍的生成规则
//
// 柱子没有独立的安全区，沿用可摧毁砖块的 SafeZoneDiameter，
// 因此 indestructible.safeZoneDiameter 会被忽略。
type ObstacleConfig struct {
	Count            int     `yaml:"count"`            // 数量上限
	SpawnChance      float64 `yaml:"spawnChance"`      // 每个候选格子的生成概率 0.0 ~ 1.0
	SafeZoneDiameter int     `yaml:"safeZoneDiameter"` // 玩家出生点安全区大小
}

// EnemyConfig 敌人生成规则
type EnemyConfig struct {
	Count             int     `yaml:"count"`             // 必须生成的敌人数量
	SpawnChance       float64 `yaml:"spawnChance"`       // 每个候选格子的生成概率
	SafeZoneDiameter  int     `yaml:"safeZoneDiameter"`  // 玩家出生点安全区大小
	MoveIntervalTicks int     `yaml:"moveIntervalTicks"` // 敌人游走间隔（tick），0 表示不移动
}

// PlayerConfig 玩家炸弹参数
type PlayerConfig struct {
	BombRange     int `yaml:"bombRange"`     // 爆炸范围
	BombFuseTicks int `yaml:"bombFuseTicks"` // 引信长度（tick）
	MaxBombs      int `yaml:"maxBombs"`      // 同时存在的炸弹上限，0 表示不限
}

// BombConfig 爆炸规则
type BombConfig struct {
	ExplosionTicks int  `yaml:"explosionTicks"` // 火焰格子持续的 tick 数
	ChainReaction  bool `yaml:"chainReaction"`  // 火焰是否引爆其他炸弹
}

// GenerationConfig 地图生成参数
type GenerationConfig struct {
	MaxAttempts int   `yaml:"maxAttempts"` // 整图重试上限
	Seed        int64 `yaml:"seed"`        // 随机种子，0 表示使用当前时间
}

// ScoreConfig 计分规则
type ScoreConfig struct {
	EnemyKill      int `yaml:"enemyKill"`      // 消灭一个敌人的得分
	BlockDestroyed int `yaml:"blockDestroyed"` // 摧毁一个砖块的得分
}

// DefaultArenaConfig 返回默认竞技场配置
func DefaultArenaConfig() *ArenaConfig {
	return &ArenaConfig{
		Grid: GridConfig{Width: DefaultGridWidth, Height: DefaultGridHeight},
		Indestructible: ObstacleConfig{
			Count:       DefaultObstacleCount,
			SpawnChance: DefaultSpawnChance,
		},
		Destructible: ObstacleConfig{
			Count:            DefaultObstacleCount,
			SpawnChance:      DefaultSpawnChance,
			SafeZoneDiameter: DefaultSafeZoneDiameter,
		},
		Enemies: EnemyConfig{
			Count:             DefaultEnemyCount,
			SpawnChance:       DefaultSpawnChance,
			SafeZoneDiameter:  DefaultSafeZoneDiameter,
			MoveIntervalTicks: DefaultEnemyMoveIntervalTick,
		},
		Player: PlayerConfig{
			BombRange:     DefaultBombRange,
			BombFuseTicks: DefaultBombFuseTicks,
			MaxBombs:      DefaultMaxBombs,
		},
		Bomb: BombConfig{
			ExplosionTicks: DefaultExplosionTicks,
			ChainReaction:  true,
		},
		Generation: GenerationConfig{MaxAttempts: DefaultMaxAttempts},
		Score: ScoreConfig{
			EnemyKill:      DefaultEnemyKillScore,
			BlockDestroyed: DefaultBlockDestroyedScore,
		},
	}
}

// LoadArenaConfig 从YAML文件加载竞技场配置
// 参数：
//
//	filepath - 配置文件路径
//
// 返回：
//
//	*ArenaConfig - 解析后的配置（未出现的字段取默认值）
//	error - 如果文件读取、解析或验证失败，返回错误信息
func LoadArenaConfig(filepath string) (*ArenaConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read arena config file %s: %w", filepath, err)
	}

	cfg, err := ParseArenaConfig(data)
	if err != nil {
		return nil, fmt.Errorf("arena config %s: %w", filepath, err)
	}
	return cfg, nil
}

// ParseArenaConfig 解析YAML数据（用于嵌入资源和测试）
func ParseArenaConfig(data []byte) (*ArenaConfig, error) {
	// 在默认配置上解析，YAML 中缺失的字段保留默认值
	cfg := DefaultArenaConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse arena config YAML: %w", err)
	}

	applyArenaDefaults(cfg)

	if err := ValidateArenaConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid arena config: %w", err)
	}
	return cfg, nil
}

// applyArenaDefaults 修正显式写成 0 但 0 没有意义的字段
func applyArenaDefaults(cfg *ArenaConfig) {
	if cfg.Generation.MaxAttempts <= 0 {
		cfg.Generation.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Bomb.ExplosionTicks <= 0 {
		cfg.Bomb.ExplosionTicks = DefaultExplosionTicks
	}
}

// ValidateArenaConfig 验证竞技场配置的完整性和合法性
func ValidateArenaConfig(cfg *ArenaConfig) error {
	// 玩家出生点 (1, height-2) 必须在边界内侧
	if cfg.Grid.Width < 3 || cfg.Grid.Height < 3 {
		return fmt.Errorf("grid must be at least 3x3, got %dx%d", cfg.Grid.Width, cfg.Grid.Height)
	}

	obstacles := map[string]ObstacleConfig{
		"indestructible": cfg.Indestructible,
		"destructible":   cfg.Destructible,
	}
	for name, o := range obstacles {
		if o.Count < 0 {
			return fmt.Errorf("%s.count cannot be negative, got %d", name, o.Count)
		}
		if err := validateChance(name, o.SpawnChance); err != nil {
			return err
		}
	}
	if cfg.Destructible.SafeZoneDiameter < 0 {
		return fmt.Errorf("destructible.safeZoneDiameter cannot be negative, got %d", cfg.Destructible.SafeZoneDiameter)
	}

	if cfg.Enemies.Count < 0 {
		return fmt.Errorf("enemies.count cannot be negative, got %d", cfg.Enemies.Count)
	}
	if err := validateChance("enemies", cfg.Enemies.SpawnChance); err != nil {
		return err
	}
	if cfg.Enemies.SafeZoneDiameter < 0 {
		return fmt.Errorf("enemies.safeZoneDiameter cannot be negative, got %d", cfg.Enemies.SafeZoneDiameter)
	}
	if cfg.Enemies.MoveIntervalTicks < 0 {
		return fmt.Errorf("enemies.moveIntervalTicks cannot be negative, got %d", cfg.Enemies.MoveIntervalTicks)
	}

	if cfg.Player.BombRange < 0 {
		return fmt.Errorf("player.bombRange cannot be negative, got %d", cfg.Player.BombRange)
	}
	if cfg.Player.BombFuseTicks < 1 {
		return fmt.Errorf("player.bombFuseTicks must be at least 1, got %d", cfg.Player.BombFuseTicks)
	}
	if cfg.Player.MaxBombs < 0 {
		return fmt.Errorf("player.maxBombs cannot be negative, got %d", cfg.Player.MaxBombs)
	}

	return nil
}

// validateChance 验证概率在 0.0 ~ 1.0 范围内
func validateChance(name string, chance float64) error {
	if chance < 0 || chance > 1 {
		return fmt.Errorf("%s.spawnChance must be between 0 and 1, got %v", name, chance)
	}
	return nil
}

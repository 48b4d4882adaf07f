package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestLoadArenaConfig 测试竞技场配置文件加载
func TestLoadArenaConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		tempDir := t.TempDir()
		testFile := filepath.Join(tempDir, "arena.yaml")

		validYAML := `grid:
  width: 15
  height: 10
indestructible:
  count: 30
  spawnChance: 0.4
destructible:
  count: 25
  spawnChance: 0.5
  safeZoneDiameter: 3
enemies:
  count: 5
  spawnChance: 0.3
  safeZoneDiameter: 2
  moveIntervalTicks: 0
player:
  bombRange: 3
  bombFuseTicks: 4
bomb:
  chainReaction: false
generation:
  maxAttempts: 50
  seed: 42
`
		if err := os.WriteFile(testFile, []byte(validYAML), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}

		cfg, err := LoadArenaConfig(testFile)
		if err != nil {
			t.Fatalf("LoadArenaConfig() failed: %v", err)
		}

		if cfg.Grid.Width != 15 || cfg.Grid.Height != 10 {
			t.Errorf("Expected grid 15x10, got %dx%d", cfg.Grid.Width, cfg.Grid.Height)
		}
		if cfg.Destructible.Count != 25 || cfg.Destructible.SafeZoneDiameter != 3 {
			t.Errorf("Destructible config mismatch: %+v", cfg.Destructible)
		}
		if cfg.Enemies.SpawnChance != 0.3 {
			t.Errorf("Expected enemies.spawnChance 0.3, got %v", cfg.Enemies.SpawnChance)
		}
		if cfg.Enemies.MoveIntervalTicks != 0 {
			t.Errorf("Explicit moveIntervalTicks 0 should be kept, got %d", cfg.Enemies.MoveIntervalTicks)
		}
		if cfg.Player.BombRange != 3 || cfg.Player.BombFuseTicks != 4 {
			t.Errorf("Player config mismatch: %+v", cfg.Player)
		}
		if cfg.Bomb.ChainReaction {
			t.Error("Expected chainReaction false")
		}
		if cfg.Generation.MaxAttempts != 50 || cfg.Generation.Seed != 42 {
			t.Errorf("Generation config mismatch: %+v", cfg.Generation)
		}

		// 未出现的字段保留默认值
		if cfg.Player.MaxBombs != DefaultMaxBombs {
			t.Errorf("Expected default maxBombs %d, got %d", DefaultMaxBombs, cfg.Player.MaxBombs)
		}
		if cfg.Bomb.ExplosionTicks != DefaultExplosionTicks {
			t.Errorf("Expected default explosionTicks %d, got %d", DefaultExplosionTicks, cfg.Bomb.ExplosionTicks)
		}
		if cfg.Score.EnemyKill != DefaultEnemyKillScore {
			t.Errorf("Expected default enemyKill score %d, got %d", DefaultEnemyKillScore, cfg.Score.EnemyKill)
		}
	})

	t.Run("file not found", func(t *testing.T) {
		_, err := LoadArenaConfig("nonexistent-arena.yaml")
		if err == nil {
			t.Error("Expected error for nonexistent file, got nil")
		}
	})

	t.Run("invalid YAML", func(t *testing.T) {
		_, err := ParseArenaConfig([]byte("grid: [this is not a mapping\n"))
		if err == nil {
			t.Error("Expected error for invalid YAML, got nil")
		}
	})

	t.Run("empty document uses defaults", func(t *testing.T) {
		cfg, err := ParseArenaConfig([]byte(""))
		if err != nil {
			t.Fatalf("ParseArenaConfig(empty) failed: %v", err)
		}
		if cfg.Grid.Width != DefaultGridWidth || cfg.Enemies.Count != DefaultEnemyCount {
			t.Errorf("Expected defaults, got %+v", cfg)
		}
	})

	t.Run("maxAttempts zero falls back to default", func(t *testing.T) {
		cfg, err := ParseArenaConfig([]byte("generation:\n  maxAttempts: 0\n"))
		if err != nil {
			t.Fatalf("ParseArenaConfig failed: %v", err)
		}
		if cfg.Generation.MaxAttempts != DefaultMaxAttempts {
			t.Errorf("Expected maxAttempts %d, got %d", DefaultMaxAttempts, cfg.Generation.MaxAttempts)
		}
	})
}

// TestArenaConfigValidation 测试竞技场配置验证逻辑
func TestArenaConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ArenaConfig)
		wantErr string
	}{
		{"defaults are valid", func(c *ArenaConfig) {}, ""},
		{"grid too small", func(c *ArenaConfig) { c.Grid.Width = 2 }, "at least 3x3"},
		{"negative pillar count", func(c *ArenaConfig) { c.Indestructible.Count = -1 }, "indestructible.count"},
		{"destructible chance above one", func(c *ArenaConfig) { c.Destructible.SpawnChance = 1.5 }, "destructible.spawnChance"},
		{"negative destructible safe zone", func(c *ArenaConfig) { c.Destructible.SafeZoneDiameter = -1 }, "destructible.safeZoneDiameter"},
		{"negative enemy count", func(c *ArenaConfig) { c.Enemies.Count = -2 }, "enemies.count"},
		{"negative enemy chance", func(c *ArenaConfig) { c.Enemies.SpawnChance = -0.1 }, "enemies.spawnChance"},
		{"negative enemy safe zone", func(c *ArenaConfig) { c.Enemies.SafeZoneDiameter = -1 }, "enemies.safeZoneDiameter"},
		{"negative move interval", func(c *ArenaConfig) { c.Enemies.MoveIntervalTicks = -1 }, "moveIntervalTicks"},
		{"negative bomb range", func(c *ArenaConfig) { c.Player.BombRange = -1 }, "bombRange"},
		{"zero fuse", func(c *ArenaConfig) { c.Player.BombFuseTicks = 0 }, "bombFuseTicks"},
		{"negative max bombs", func(c *ArenaConfig) { c.Player.MaxBombs = -1 }, "maxBombs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultArenaConfig()
			tt.mutate(cfg)
			err := ValidateArenaConfig(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

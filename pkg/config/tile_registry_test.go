package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestLoadTileRegistry 测试模板注册表加载
func TestLoadTileRegistry(t *testing.T) {
	t.Run("valid registry", func(t *testing.T) {
		tempDir := t.TempDir()
		testFile := filepath.Join(tempDir, "tiles.yaml")

		validYAML := `floors:
  - name: grass
    weight: 3
  - name: sand
    weight: 1
pillar: stone
enemies:
  - name: balloom
  - name: oneal
`
		if err := os.WriteFile(testFile, []byte(validYAML), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}

		registry, err := LoadTileRegistry(testFile)
		if err != nil {
			t.Fatalf("LoadTileRegistry() failed: %v", err)
		}

		if len(registry.Floors) != 2 {
			t.Fatalf("Expected 2 floors, got %d", len(registry.Floors))
		}
		if registry.TotalFloorWeight() != 4 {
			t.Errorf("Expected total weight 4, got %v", registry.TotalFloorWeight())
		}
		if registry.Pillar != "stone" {
			t.Errorf("Expected pillar 'stone', got '%s'", registry.Pillar)
		}
		// 未配置的类别使用默认名称
		if registry.Border != "border" || registry.Destructible != "brick" || registry.Player != "bomberman" {
			t.Errorf("Expected default category names, got %+v", registry)
		}
		if len(registry.Enemies) != 2 || registry.Enemies[1].Name != "oneal" {
			t.Errorf("Enemy templates mismatch: %+v", registry.Enemies)
		}
	})

	t.Run("file not found", func(t *testing.T) {
		if _, err := LoadTileRegistry("nonexistent-tiles.yaml"); err == nil {
			t.Error("Expected error for nonexistent file, got nil")
		}
	})
}

// TestTileRegistryValidation 测试模板注册表验证
func TestTileRegistryValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"no floors", "enemies:\n  - name: a\n", "at least one floor"},
		{"empty floor name", "floors:\n  - weight: 1\n", "name is required"},
		{"negative weight", "floors:\n  - name: a\n    weight: -1\n", "cannot be negative"},
		{"zero total weight", "floors:\n  - name: a\n    weight: 0\n", "must be positive"},
		{"empty enemy name", "floors:\n  - name: a\n    weight: 1\nenemies:\n  - name: \"\"\n", "enemies[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTileRegistry([]byte(tt.yaml))
			if err == nil {
				t.Fatalf("Expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestCheckCapacity 测试敌人模板数量检查
func TestCheckCapacity(t *testing.T) {
	registry := DefaultTileRegistry()
	cfg := DefaultArenaConfig()

	if err := registry.CheckCapacity(cfg); err != nil {
		t.Errorf("Default registry should satisfy default config: %v", err)
	}

	cfg.Enemies.Count = len(registry.Enemies) + 1
	if err := registry.CheckCapacity(cfg); err == nil {
		t.Error("Expected error when enemy count exceeds templates")
	}
}

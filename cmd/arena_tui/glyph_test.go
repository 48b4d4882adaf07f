package main

import (
	"testing"

	"github.com/gonewx/bomberman/pkg/components"
	"github.com/gonewx/bomberman/pkg/types"
)

func TestGlyph(t *testing.T) {
	tests := []struct {
		tile *components.Tile
		want rune
	}{
		{nil, ' '},
		{&components.Tile{Kind: types.TileFloor, FloorVariant: "grass"}, '.'},
		{&components.Tile{Kind: types.TileBorder}, '█'},
		{&components.Tile{Kind: types.TilePillar}, '▓'},
		{&components.Tile{Kind: types.TileDestructible}, '▒'},
		{&components.Tile{Kind: types.TileBomb}, 'o'},
		{&components.Tile{Kind: types.TilePlayer}, '@'},
		{&components.Tile{Kind: types.TileEnemy, Name: "balloom"}, 'B'},
		{&components.Tile{Kind: types.TileExplosion}, '*'},
	}
	for _, tt := range tests {
		if got, _ := glyph(tt.tile); got != tt.want {
			t.Errorf("glyph(%+v) = %q, want %q", tt.tile, got, tt.want)
		}
	}
}

func TestEnemyRune(t *testing.T) {
	tests := map[string]rune{
		"oneal":  'O',
		"Doll":   'D',
		"":       'E',
		"9lives": '9',
	}
	for name, want := range tests {
		if got := enemyRune(name); got != want {
			t.Errorf("enemyRune(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestDecayEnvelope(t *testing.T) {
	src := constantStreamer{value: 1}
	d := &decay{streamer: src, length: 4}
	samples := make([][2]float64, 6)

	n, ok := d.Stream(samples)
	if n != 6 || !ok {
		t.Fatalf("Stream() = %d, %v", n, ok)
	}
	if samples[0][0] != 0.4 {
		t.Errorf("first sample = %v, want 0.4", samples[0][0])
	}
	if samples[4][0] != 0 || samples[5][1] != 0 {
		t.Errorf("samples past length should be silent: %v", samples[4:])
	}
	for i := 1; i < 4; i++ {
		if samples[i][0] >= samples[i-1][0] {
			t.Errorf("envelope not decreasing at %d: %v", i, samples)
		}
	}
}

type constantStreamer struct {
	value float64
}

func (c constantStreamer) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i][0] = c.value
		samples[i][1] = c.value
	}
	return len(samples), true
}

func (c constantStreamer) Err() error { return nil }

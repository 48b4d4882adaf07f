package systems

import (
	"reflect"
	"testing"

	"github.com/gonewx/bomberman/pkg/ecs"
	"github.com/gonewx/bomberman/pkg/types"
)

func TestCollisionSystem_ResolveExplosion(t *testing.T) {
	w := newTestWorld(6, 6)
	player := w.spawn(types.TilePlayer, 1, 1)
	enemy := w.spawn(types.TileEnemy, 2, 1)
	rec := &deathRecorder{}
	collision := NewCollisionSystem(w.em, w.grid, rec)

	cells := []types.Coord{{X: 2, Y: 1}, {X: 1, Y: 1}, {X: 3, Y: 1}}

	victims := collision.ResolveExplosion(cells)
	if want := []ecs.EntityID{enemy, player}; !reflect.DeepEqual(victims, want) {
		t.Errorf("victims = %v, want %v", victims, want)
	}

	// 已死亡的单位不再参与碰撞
	if again := collision.ResolveExplosion(cells); len(again) != 0 {
		t.Errorf("second resolve victims = %v, want none", again)
	}
	if len(rec.calls) != 2 {
		t.Errorf("OnDeath called %d times, want 2", len(rec.calls))
	}
}

func TestCollisionSystem_Kill(t *testing.T) {
	w := newTestWorld(5, 5)
	id := w.spawn(types.TileEnemy, 2, 2)
	collision := NewCollisionSystem(w.em, w.grid, nil)

	if !collision.Kill(id) {
		t.Fatal("first Kill should transition the unit")
	}
	if collision.Kill(id) {
		t.Error("second Kill should be a no-op")
	}
	if collision.Kill(ecs.EntityID(999)) {
		t.Error("Kill on unknown entity should be a no-op")
	}
	if !w.unit(id).Dead {
		t.Error("unit should be dead")
	}
}

func TestCollisionSystem_ResolveContact(t *testing.T) {
	tests := []struct {
		name       string
		moverKind  types.TileKind
		targetKind types.TileKind
		wantMover  bool // 死亡的是否为移动方
		wantDeath  bool
	}{
		{"enemy into player", types.TileEnemy, types.TilePlayer, false, true},
		{"player into enemy", types.TilePlayer, types.TileEnemy, true, true},
		{"enemy into enemy", types.TileEnemy, types.TileEnemy, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(5, 5)
			mover := w.spawn(tt.moverKind, 1, 1)
			target := w.spawn(tt.targetKind, 2, 1)
			rec := &deathRecorder{}
			collision := NewCollisionSystem(w.em, w.grid, rec)

			victim := collision.ResolveContact(mover, target)
			if !tt.wantDeath {
				if victim != 0 || len(rec.calls) != 0 {
					t.Errorf("victim = %d, want none", victim)
				}
				return
			}

			want := target
			if tt.wantMover {
				want = mover
			}
			if victim != want {
				t.Errorf("victim = %d, want %d", victim, want)
			}
			if again := collision.ResolveContact(mover, target); again != 0 {
				t.Errorf("repeat contact victim = %d, want none", again)
			}
		})
	}
}

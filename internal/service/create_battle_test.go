package service

import (
	"context"
	"reflect"
	"testing"

	"github.com/PeuAlmeidaDev/mindforge-backend/internal/game"
)

// mockBattleRepo backs the battle flow tests with in-memory fixtures.
type mockBattleRepo struct {
	pool           []game.EnemyTemplate
	poolRarities   []game.Rarity
	templates      map[uint]game.EnemyTemplate
	skills         map[uint]game.Skill
	battles        map[string]*game.Battle
	created        *game.Battle
	advanceErr     error
	advanced       bool
	saved          *game.Battle
	savedStatusIDs []uint
	savedBuffIDs   []uint
}

func (m *mockBattleRepo) GetEnemyTemplatesByRarities(rarities []game.Rarity) ([]game.EnemyTemplate, error) {
	m.poolRarities = rarities
	return m.pool, nil
}

func (m *mockBattleRepo) GetEnemyTemplatesByIDs(ids []uint) ([]game.EnemyTemplate, error) {
	out := []game.EnemyTemplate{}
	for _, id := range ids {
		if tpl, ok := m.templates[id]; ok {
			out = append(out, tpl)
		}
	}
	return out, nil
}

func (m *mockBattleRepo) GetSkillsByIDs(ids []uint) ([]game.Skill, error) {
	out := []game.Skill{}
	for _, id := range ids {
		if sk, ok := m.skills[id]; ok {
			out = append(out, sk)
		}
	}
	return out, nil
}

func (m *mockBattleRepo) CreateBattle(b *game.Battle) error {
	m.created = b
	return nil
}

func (m *mockBattleRepo) GetBattleByCode(code string) (*game.Battle, error) {
	return m.battles[code], nil
}

func (m *mockBattleRepo) AdvanceTurn(battleID uint, fromTurn int) error {
	if m.advanceErr != nil {
		return m.advanceErr
	}
	m.advanced = true
	return nil
}

func (m *mockBattleRepo) SaveTurnResults(b *game.Battle, expiredStatusIDs, expiredBuffIDs []uint) error {
	m.saved = b
	m.savedStatusIDs = expiredStatusIDs
	m.savedBuffIDs = expiredBuffIDs
	return nil
}

// pickRoller scripts the integer draws spawn sampling consumes and fails the
// test on any draw the flow should not make.
type pickRoller struct {
	t    *testing.T
	ints []int
	i    int
}

func (r *pickRoller) Roll100() float64 {
	r.t.Fatalf("unexpected percent draw")
	return 0
}

func (r *pickRoller) Float() float64 {
	r.t.Fatalf("unexpected float draw")
	return 0
}

func (r *pickRoller) IntN(n int) int {
	if r.i >= len(r.ints) {
		r.t.Fatalf("ran out of scripted integer draws")
	}
	v := r.ints[r.i]
	r.i++
	if n <= 0 {
		return 0
	}
	return v % n
}

func TestCreateBattle_SpawnsFromRarityPool(t *testing.T) {
	golem := game.EnemyTemplate{Name: "Cinder Golem", Element: game.ElementFire, Rarity: game.RarityRare, Level: 7, MaxHealth: 90,
		Stats: game.Stats{PhysicalAttack: 14, SpecialAttack: 10, PhysicalDefense: 12, SpecialDefense: 10, Speed: 6}}
	golem.ID = 70
	harpy := game.EnemyTemplate{Name: "Gale Harpy", Element: game.ElementAir, Rarity: game.RarityRare, Level: 6, MaxHealth: 70,
		Stats: game.Stats{PhysicalAttack: 11, SpecialAttack: 12, PhysicalDefense: 9, SpecialDefense: 10, Speed: 14}}
	harpy.ID = 71

	m := &mockBattleRepo{pool: []game.EnemyTemplate{golem, harpy}}
	user := &game.User{Name: "Rowan", Element: game.ElementFire, MaxHealth: 100,
		Stats: game.Stats{PhysicalAttack: 12, SpecialAttack: 11, PhysicalDefense: 10, SpecialDefense: 10, Speed: 10}}
	user.ID = 9

	rolls := &pickRoller{t: t, ints: []int{0, 1, 0}}
	b, err := CreateBattle(context.Background(), m, rolls, user, game.DifficultyHard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.created != b {
		t.Fatalf("battle was not persisted")
	}
	if !reflect.DeepEqual(m.poolRarities, game.DifficultyHard.RarityPool()) {
		t.Fatalf("queried rarities %v, want the hard pool", m.poolRarities)
	}
	if len(b.PublicCode) != battleCodeLength {
		t.Fatalf("public code %q, want %d characters", b.PublicCode, battleCodeLength)
	}
	if b.CurrentTurn != 1 || b.Finished {
		t.Fatalf("new battle should start unfinished at turn 1, got turn=%d finished=%v", b.CurrentTurn, b.Finished)
	}
	if b.StartedAt.IsZero() {
		t.Fatalf("StartedAt not set")
	}
	if len(b.Participants) != 4 {
		t.Fatalf("expected 1 player + 3 enemies, got %d participants", len(b.Participants))
	}

	p := b.Participants[0]
	if p.Team != game.TeamPlayer || p.Position != 1 || p.Owner.Kind != game.OwnerPlayer || p.Owner.UserID != 9 {
		t.Fatalf("player participant misbuilt: %+v", p)
	}
	if p.CurrentHealth != 100 || p.MaxHealth != 100 || p.Stats != user.Stats {
		t.Fatalf("player combat copy should mirror the user record: %+v", p)
	}

	wantNames := []string{"Cinder Golem", "Gale Harpy", "Cinder Golem"}
	wantOwners := []uint{70, 71, 70}
	for i, e := range b.Participants[1:] {
		if e.Team != game.TeamEnemy || e.Position != i+1 {
			t.Fatalf("enemy %d misplaced: %+v", i, e)
		}
		if e.Name != wantNames[i] || e.Owner.EnemyID != wantOwners[i] {
			t.Fatalf("enemy %d = %s (template %d), want %s (template %d)", i, e.Name, e.Owner.EnemyID, wantNames[i], wantOwners[i])
		}
		if e.CurrentHealth != e.MaxHealth || e.CurrentHealth == 0 {
			t.Fatalf("enemy %d spawned at %d/%d health", i, e.CurrentHealth, e.MaxHealth)
		}
	}
}

func TestCreateBattle_EnemyCountTracksDifficulty(t *testing.T) {
	wisp := game.EnemyTemplate{Name: "Drowsy Wisp", Element: game.ElementLight, Rarity: game.RarityCommon, Level: 2, MaxHealth: 40}
	wisp.ID = 72
	user := &game.User{Name: "Rowan", MaxHealth: 100}
	user.ID = 9

	for _, tc := range []struct {
		difficulty game.Difficulty
		enemies    int
	}{
		{game.DifficultyEasy, 1},
		{game.DifficultyNormal, 2},
		{game.DifficultyHard, 3},
	} {
		m := &mockBattleRepo{pool: []game.EnemyTemplate{wisp}}
		rolls := &pickRoller{t: t, ints: []int{0, 0, 0}}
		b, err := CreateBattle(context.Background(), m, rolls, user, tc.difficulty)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.difficulty, err)
		}
		if got := len(b.Participants) - 1; got != tc.enemies {
			t.Fatalf("%s: spawned %d enemies, want %d", tc.difficulty, got, tc.enemies)
		}
	}
}

func TestCreateBattle_InvalidDifficulty(t *testing.T) {
	m := &mockBattleRepo{}
	user := &game.User{}
	if _, err := CreateBattle(context.Background(), m, &pickRoller{t: t}, user, game.Difficulty("nightmare")); err != ErrInvalidDifficulty {
		t.Fatalf("expected ErrInvalidDifficulty, got %v", err)
	}
	if m.created != nil {
		t.Fatalf("battle should not be persisted on invalid difficulty")
	}
}

func TestCreateBattle_EmptyPool(t *testing.T) {
	m := &mockBattleRepo{}
	user := &game.User{}
	if _, err := CreateBattle(context.Background(), m, &pickRoller{t: t}, user, game.DifficultyEasy); err != ErrNoEnemiesSeeded {
		t.Fatalf("expected ErrNoEnemiesSeeded, got %v", err)
	}
}

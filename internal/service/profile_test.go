package service

import (
	"errors"
	"testing"

	"github.com/PeuAlmeidaDev/mindforge-backend/internal/game"
)

type mockProfileRepo struct {
	skills      map[uint]game.Skill
	updatedUser *game.User
	equippedFor uint
	equipped    []game.Skill
	setCalled   bool
}

func (m *mockProfileRepo) UpdateUser(u *game.User) error {
	m.updatedUser = u
	return nil
}

func (m *mockProfileRepo) GetSkillsByIDs(ids []uint) ([]game.Skill, error) {
	out := []game.Skill{}
	for _, id := range ids {
		if sk, ok := m.skills[id]; ok {
			out = append(out, sk)
		}
	}
	return out, nil
}

func (m *mockProfileRepo) SetEquippedSkills(userID uint, skills []game.Skill) error {
	m.setCalled = true
	m.equippedFor = userID
	m.equipped = skills
	return nil
}

func TestSpendAttributePoints_AppliesAllocation(t *testing.T) {
	m := &mockProfileRepo{}
	user := &game.User{AttributePoints: 5, Stats: game.Stats{PhysicalAttack: 10, Speed: 10}}
	user.ID = 9

	err := SpendAttributePoints(m, user, game.Stats{PhysicalAttack: 3, Speed: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Stats.PhysicalAttack != 13 || user.Stats.Speed != 11 {
		t.Fatalf("stats = %+v, want 13 attack and 11 speed", user.Stats)
	}
	if user.AttributePoints != 1 {
		t.Fatalf("points left = %d, want 1", user.AttributePoints)
	}
	if m.updatedUser != user {
		t.Fatalf("user was not persisted")
	}
}

func TestSpendAttributePoints_Validation(t *testing.T) {
	m := &mockProfileRepo{}
	user := &game.User{AttributePoints: 2, Stats: game.Stats{PhysicalAttack: 10}}
	user.ID = 9

	if err := SpendAttributePoints(m, user, game.Stats{PhysicalAttack: 3}); !errors.Is(err, ErrNotEnoughPoints) {
		t.Fatalf("expected ErrNotEnoughPoints, got %v", err)
	}
	if err := SpendAttributePoints(m, user, game.Stats{PhysicalAttack: -1, Speed: 3}); !errors.Is(err, ErrNegativeAllocation) {
		t.Fatalf("expected ErrNegativeAllocation, got %v", err)
	}
	if err := SpendAttributePoints(m, user, game.Stats{}); !errors.Is(err, ErrNothingAllocated) {
		t.Fatalf("expected ErrNothingAllocated, got %v", err)
	}
	if user.Stats.PhysicalAttack != 10 || user.AttributePoints != 2 {
		t.Fatalf("rejected allocation still changed the user: %+v", user)
	}
	if m.updatedUser != nil {
		t.Fatalf("rejected allocation was persisted")
	}
}

func TestEquipSkills_ReplacesLoadout(t *testing.T) {
	ember := game.Skill{Name: "Ember Strike"}
	ember.ID = 11
	tide := game.Skill{Name: "Tide Slam"}
	tide.ID = 12
	m := &mockProfileRepo{skills: map[uint]game.Skill{11: ember, 12: tide}}
	user := &game.User{}
	user.ID = 9

	// Duplicates collapse before the cap check.
	if err := EquipSkills(m, user, []uint{11, 12, 11}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.equippedFor != 9 || len(m.equipped) != 2 {
		t.Fatalf("persisted loadout = %+v for user %d", m.equipped, m.equippedFor)
	}
	if len(user.EquippedSkills) != 2 {
		t.Fatalf("in-memory loadout not refreshed: %+v", user.EquippedSkills)
	}
}

func TestEquipSkills_CapAndUnknowns(t *testing.T) {
	m := &mockProfileRepo{skills: map[uint]game.Skill{}}
	user := &game.User{}
	user.ID = 9

	if err := EquipSkills(m, user, []uint{1, 2, 3, 4, 5}); !errors.Is(err, ErrTooManySkills) {
		t.Fatalf("expected ErrTooManySkills, got %v", err)
	}
	if err := EquipSkills(m, user, []uint{77}); !errors.Is(err, ErrUnknownSkill) {
		t.Fatalf("expected ErrUnknownSkill, got %v", err)
	}
	if m.setCalled {
		t.Fatalf("rejected loadout was persisted")
	}
}

func TestEquipSkills_EmptyListClears(t *testing.T) {
	m := &mockProfileRepo{}
	user := &game.User{EquippedSkills: []game.Skill{{Name: "Ember Strike"}}}
	user.ID = 9

	if err := EquipSkills(m, user, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.setCalled || len(m.equipped) != 0 {
		t.Fatalf("clearing the loadout should persist an empty set")
	}
	if len(user.EquippedSkills) != 0 {
		t.Fatalf("in-memory loadout not cleared")
	}
}

package service

import (
	"errors"
	"testing"

	"github.com/PeuAlmeidaDev/mindforge-backend/internal/game"
)

type mockGoalRepo struct {
	goals       map[uint]*game.Goal
	created     *game.Goal
	updatedGoal *game.Goal
	updatedUser *game.User
}

func (m *mockGoalRepo) CreateGoal(g *game.Goal) error {
	m.created = g
	return nil
}

func (m *mockGoalRepo) GetGoalByID(id uint) (*game.Goal, error) {
	return m.goals[id], nil
}

func (m *mockGoalRepo) UpdateGoal(g *game.Goal) error {
	m.updatedGoal = g
	return nil
}

func (m *mockGoalRepo) UpdateUser(u *game.User) error {
	m.updatedUser = u
	return nil
}

func TestCreateGoal_Defaults(t *testing.T) {
	m := &mockGoalRepo{}
	user := &game.User{}
	user.ID = 9

	g, err := CreateGoal(m, user, CreateGoalRequest{Title: "  Morning run  ", Attribute: game.AttrSpeed})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.created != g {
		t.Fatalf("goal was not persisted")
	}
	if g.Title != "Morning run" || g.UserID != 9 {
		t.Fatalf("goal misbuilt: %+v", g)
	}
	if g.RewardPoints != 1 {
		t.Fatalf("omitted reward points should default to 1, got %d", g.RewardPoints)
	}
	if g.Completed || g.CompletedAt != nil {
		t.Fatalf("new goal should start incomplete")
	}
}

func TestCreateGoal_Validation(t *testing.T) {
	m := &mockGoalRepo{}
	user := &game.User{}

	if _, err := CreateGoal(m, user, CreateGoalRequest{Title: "   ", Attribute: game.AttrSpeed}); !errors.Is(err, ErrEmptyGoalTitle) {
		t.Fatalf("expected ErrEmptyGoalTitle, got %v", err)
	}
	if _, err := CreateGoal(m, user, CreateGoalRequest{Title: "Read", Attribute: game.Attribute(99)}); !errors.Is(err, ErrInvalidAttribute) {
		t.Fatalf("expected ErrInvalidAttribute, got %v", err)
	}
	if _, err := CreateGoal(m, user, CreateGoalRequest{Title: "Read", Attribute: game.AttrSpeed, RewardPoints: 6}); !errors.Is(err, ErrInvalidRewardPoints) {
		t.Fatalf("expected ErrInvalidRewardPoints, got %v", err)
	}
	if _, err := CreateGoal(m, user, CreateGoalRequest{Title: "Read", Attribute: game.AttrSpeed, RewardPoints: -1}); !errors.Is(err, ErrInvalidRewardPoints) {
		t.Fatalf("expected ErrInvalidRewardPoints, got %v", err)
	}
	if m.created != nil {
		t.Fatalf("invalid goal was persisted")
	}
}

func TestCompleteGoal_PaysAttributeOnce(t *testing.T) {
	goal := &game.Goal{UserID: 9, Title: "Meditate", Attribute: game.AttrSpecialDefense, RewardPoints: 2}
	goal.ID = 4
	m := &mockGoalRepo{goals: map[uint]*game.Goal{4: goal}}
	user := &game.User{Stats: game.Stats{SpecialDefense: 10}}
	user.ID = 9

	g, err := CompleteGoal(m, user, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !g.Completed || g.CompletedAt == nil {
		t.Fatalf("goal not marked complete: %+v", g)
	}
	if m.updatedGoal != g || m.updatedUser != user {
		t.Fatalf("goal and user were not both persisted")
	}
	if user.Stats.SpecialDefense != 12 {
		t.Fatalf("special defense = %d, want 12", user.Stats.SpecialDefense)
	}

	if _, err := CompleteGoal(m, user, 4); !errors.Is(err, ErrGoalCompleted) {
		t.Fatalf("expected ErrGoalCompleted, got %v", err)
	}
	if user.Stats.SpecialDefense != 12 {
		t.Fatalf("completed goal paid twice")
	}
}

func TestCompleteGoal_ForeignGoalReadsAsMissing(t *testing.T) {
	goal := &game.Goal{UserID: 8, Title: "Stretch", Attribute: game.AttrSpeed, RewardPoints: 1}
	goal.ID = 4
	m := &mockGoalRepo{goals: map[uint]*game.Goal{4: goal}}
	user := &game.User{}
	user.ID = 9

	if _, err := CompleteGoal(m, user, 4); !errors.Is(err, ErrGoalNotFound) {
		t.Fatalf("expected ErrGoalNotFound, got %v", err)
	}
	if _, err := CompleteGoal(m, user, 77); !errors.Is(err, ErrGoalNotFound) {
		t.Fatalf("expected ErrGoalNotFound for missing id, got %v", err)
	}
}

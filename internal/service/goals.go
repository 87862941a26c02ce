package service

import (
	"errors"
	"strings"
	"time"

	"github.com/PeuAlmeidaDev/mindforge-backend/internal/game"
)

const maxGoalRewardPoints = 5

// GoalRepo is the minimal repository interface required by the goal flows.
type GoalRepo interface {
	CreateGoal(g *game.Goal) error
	GetGoalByID(id uint) (*game.Goal, error)
	UpdateGoal(g *game.Goal) error
	UpdateUser(u *game.User) error
}

type CreateGoalRequest struct {
	Title        string
	Description  string
	Attribute    game.Attribute
	RewardPoints int
}

var (
	ErrEmptyGoalTitle      = errors.New("goal title is required")
	ErrInvalidAttribute    = errors.New("invalid attribute")
	ErrInvalidRewardPoints = errors.New("reward points out of range")
	ErrGoalNotFound        = errors.New("goal not found")
	ErrGoalCompleted       = errors.New("goal already completed")
)

// CreateGoal stores a new habit for the user. RewardPoints is how much the
// chosen attribute grows on completion; zero defaults to 1.
func CreateGoal(repo GoalRepo, user *game.User, req CreateGoalRequest) (*game.Goal, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrEmptyGoalTitle
	}
	if !req.Attribute.Valid() {
		return nil, ErrInvalidAttribute
	}
	points := req.RewardPoints
	if points == 0 {
		points = 1
	}
	if points < 1 || points > maxGoalRewardPoints {
		return nil, ErrInvalidRewardPoints
	}

	g := &game.Goal{
		UserID:       user.ID,
		Title:        title,
		Description:  strings.TrimSpace(req.Description),
		Attribute:    req.Attribute,
		RewardPoints: points,
	}
	if err := repo.CreateGoal(g); err != nil {
		return nil, err
	}
	return g, nil
}

// CompleteGoal marks a goal done and pays its attribute reward. The goal row
// flips first so a failed user update cannot pay twice on retry; goals owned
// by other users read as not found.
func CompleteGoal(repo GoalRepo, user *game.User, goalID uint) (*game.Goal, error) {
	g, err := repo.GetGoalByID(goalID)
	if err != nil {
		return nil, err
	}
	if g == nil || g.UserID != user.ID {
		return nil, ErrGoalNotFound
	}
	if g.Completed {
		return nil, ErrGoalCompleted
	}

	now := time.Now()
	g.Completed = true
	g.CompletedAt = &now
	if err := repo.UpdateGoal(g); err != nil {
		return nil, err
	}

	user.Stats.Add(g.Attribute, g.RewardPoints)
	if err := repo.UpdateUser(user); err != nil {
		return nil, err
	}
	return g, nil
}

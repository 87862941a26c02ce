package service

import (
	"context"
	"errors"
	"time"

	"github.com/PeuAlmeidaDev/mindforge-backend/internal/engine"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/game"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/telemetry"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.opentelemetry.io/otel/attribute"
)

const (
	battleCodeAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	battleCodeLength   = 10
)

// BattleRepo is the minimal repository interface required by the battle
// flows. Using a small interface simplifies testing.
type BattleRepo interface {
	GetEnemyTemplatesByRarities(rarities []game.Rarity) ([]game.EnemyTemplate, error)
	GetEnemyTemplatesByIDs(ids []uint) ([]game.EnemyTemplate, error)
	GetSkillsByIDs(ids []uint) ([]game.Skill, error)
	CreateBattle(b *game.Battle) error
	GetBattleByCode(code string) (*game.Battle, error)
	AdvanceTurn(battleID uint, fromTurn int) error
	SaveTurnResults(b *game.Battle, expiredStatusIDs, expiredBuffIDs []uint) error
}

var (
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	ErrNoEnemiesSeeded   = errors.New("no enemy templates available for this difficulty")
)

// CreateBattle spawns a new encounter: the user's combat copy on one side and
// difficulty.EnemyCount() opponents drawn (with replacement) from the
// difficulty's rarity pool on the other. The battle is addressed by a random
// public code so row ids stay internal.
func CreateBattle(ctx context.Context, repo BattleRepo, rolls engine.Roller, user *game.User, difficulty game.Difficulty) (*game.Battle, error) {
	_, span := telemetry.Tracer("service").Start(ctx, "battle.create")
	defer span.End()
	span.SetAttributes(attribute.String("battle.difficulty", string(difficulty)))

	if !difficulty.Valid() {
		return nil, ErrInvalidDifficulty
	}
	pool, err := repo.GetEnemyTemplatesByRarities(difficulty.RarityPool())
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, ErrNoEnemiesSeeded
	}

	code, err := gonanoid.Generate(battleCodeAlphabet, battleCodeLength)
	if err != nil {
		return nil, err
	}

	b := &game.Battle{
		PublicCode:  code,
		UserID:      user.ID,
		CurrentTurn: 1,
		Difficulty:  difficulty,
		StartedAt:   time.Now(),
	}
	b.Participants = append(b.Participants, game.Participant{
		Owner:         game.PlayerOwner(user.ID),
		Team:          game.TeamPlayer,
		Position:      1,
		Name:          user.Name,
		Element:       user.Element,
		CurrentHealth: user.MaxHealth,
		MaxHealth:     user.MaxHealth,
		Stats:         user.Stats,
	})
	for i := 0; i < difficulty.EnemyCount(); i++ {
		tpl := pool[rolls.IntN(len(pool))]
		b.Participants = append(b.Participants, game.Participant{
			Owner:         game.EnemyOwner(tpl.ID),
			Team:          game.TeamEnemy,
			Position:      i + 1,
			Name:          tpl.Name,
			Element:       tpl.Element,
			CurrentHealth: tpl.MaxHealth,
			MaxHealth:     tpl.MaxHealth,
			Stats:         tpl.Stats,
		})
	}

	if err := repo.CreateBattle(b); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("battle.code", b.PublicCode))
	return b, nil
}

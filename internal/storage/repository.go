package storage

import (
	"errors"

	"github.com/PeuAlmeidaDev/mindforge-backend/internal/game"
)

// ErrStaleTurn reports a compare-and-set miss on a battle's turn counter:
// another request resolved the same turn first, or the battle finished.
var ErrStaleTurn = errors.New("battle turn counter moved concurrently")

// Repository is the persistence surface the services work against. Lookup
// methods return (nil, nil) when the record does not exist so callers never
// have to know the underlying driver's not-found error.
type Repository interface {
	CreateUser(u *game.User) error
	GetUserByEmail(email string) (*game.User, error)
	GetUserByPublicID(publicID string) (*game.User, error)
	UpdateUser(u *game.User) error
	// SetEquippedSkills replaces the user's equipped loadout wholesale.
	SetEquippedSkills(userID uint, skills []game.Skill) error
	SetInterests(userID uint, interests []game.Interest) error

	GetHouses() ([]game.House, error)
	GetHouseByID(id uint) (*game.House, error)
	GetInterests() ([]game.Interest, error)
	GetInterestsByIDs(ids []uint) ([]game.Interest, error)
	GetSkills() ([]game.Skill, error)
	GetSkillsByIDs(ids []uint) ([]game.Skill, error)
	GetSkillsBySlugs(slugs []string) ([]game.Skill, error)

	CreateGoal(g *game.Goal) error
	GetGoalsByUser(userID uint) ([]game.Goal, error)
	GetGoalByID(id uint) (*game.Goal, error)
	UpdateGoal(g *game.Goal) error

	GetEnemyTemplatesByRarities(rarities []game.Rarity) ([]game.EnemyTemplate, error)
	GetEnemyTemplatesByIDs(ids []uint) ([]game.EnemyTemplate, error)

	CreateBattle(b *game.Battle) error
	GetBattleByCode(code string) (*game.Battle, error)
	// AdvanceTurn bumps the battle's turn counter if and only if it still
	// equals fromTurn and the battle is unfinished. Returns ErrStaleTurn on a
	// miss; winning the update is what entitles the caller to resolve the
	// turn.
	AdvanceTurn(battleID uint, fromTurn int) error
	// SaveTurnResults persists everything one resolved turn changed: battle
	// flags, participant health and stats, status and buff rows, and the
	// removal of the rows that expired during the turn.
	SaveTurnResults(b *game.Battle, expiredStatusIDs, expiredBuffIDs []uint) error

	// GetReward returns the claim ledger row for the pair, or nil when the
	// user has not claimed this battle yet.
	GetReward(userID, battleID uint) (*game.BattleReward, error)
	// GrantReward writes the claim ledger row and the user's new progression
	// in one transaction. The ledger's unique index makes a concurrent double
	// claim fail instead of paying twice.
	GrantReward(u *game.User, reward *game.BattleReward) error
}

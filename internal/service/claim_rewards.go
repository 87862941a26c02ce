package service

import (
	"errors"
	"fmt"

	"github.com/PeuAlmeidaDev/mindforge-backend/internal/dedupe"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/engine"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/game"
)

// RewardRepo is the minimal repository interface required by ClaimRewards.
type RewardRepo interface {
	GetBattleByCode(code string) (*game.Battle, error)
	GetEnemyTemplatesByIDs(ids []uint) ([]game.EnemyTemplate, error)
	GetReward(userID, battleID uint) (*game.BattleReward, error)
	GrantReward(u *game.User, reward *game.BattleReward) error
}

var (
	ErrBattleNotFinished = errors.New("battle still in progress")
	ErrNotWinner         = errors.New("rewards go to the winning side only")
	ErrRewardClaimed     = errors.New("rewards already claimed")
)

// ClaimRewards pays out a won battle once: experience from the defeated
// enemies' levels, level-ups and attribute points per the progression curve,
// all recorded on a ledger row. Concurrent duplicate submissions collapse
// into one execution; the ledger's unique index backs that up across
// processes.
func ClaimRewards(repo RewardRepo, user *game.User, code string) (*game.BattleReward, error) {
	key := fmt.Sprintf("reward:%d:%s", user.ID, code)
	v, err, _ := dedupe.RewardGroup.Do(key, func() (interface{}, error) {
		return claimRewards(repo, user, code)
	})
	if err != nil {
		return nil, err
	}
	return v.(*game.BattleReward), nil
}

func claimRewards(repo RewardRepo, user *game.User, code string) (*game.BattleReward, error) {
	b, err := repo.GetBattleByCode(code)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBattleNotFound
	}
	if b.UserID != user.ID {
		return nil, ErrNotParticipant
	}
	if !b.Finished {
		return nil, ErrBattleNotFinished
	}
	if b.WinningTeam != game.TeamPlayer {
		return nil, ErrNotWinner
	}

	claimed, err := repo.GetReward(user.ID, b.ID)
	if err != nil {
		return nil, err
	}
	if claimed != nil {
		return nil, ErrRewardClaimed
	}

	levels, err := enemyLevels(repo, b)
	if err != nil {
		return nil, err
	}

	gained := engine.BattleExperience(levels)
	prog := engine.ApplyExperience(user.Level, user.Experience, gained)
	user.Level = prog.Level
	user.Experience = prog.Experience
	user.AttributePoints += prog.PointsGained

	reward := &game.BattleReward{
		UserID:           user.ID,
		BattleID:         b.ID,
		ExperienceGained: gained,
		LevelsGained:     prog.LevelsGained,
		PointsGained:     prog.PointsGained,
	}
	if err := repo.GrantReward(user, reward); err != nil {
		return nil, err
	}
	return reward, nil
}

// enemyLevels reads the level estimate behind every enemy participant. A
// template spawned twice counts twice, matching the enemy-count multiplier.
func enemyLevels(repo RewardRepo, b *game.Battle) ([]int, error) {
	ids := make([]uint, 0, len(b.Participants))
	seen := make(map[uint]bool)
	for i := range b.Participants {
		p := &b.Participants[i]
		if p.Owner.Kind == game.OwnerEnemy && !seen[p.Owner.EnemyID] {
			seen[p.Owner.EnemyID] = true
			ids = append(ids, p.Owner.EnemyID)
		}
	}
	tpls, err := repo.GetEnemyTemplatesByIDs(ids)
	if err != nil {
		return nil, err
	}
	levelByID := make(map[uint]int, len(tpls))
	for _, t := range tpls {
		levelByID[t.ID] = t.Level
	}
	var levels []int
	for i := range b.Participants {
		p := &b.Participants[i]
		if p.Owner.Kind != game.OwnerEnemy {
			continue
		}
		if lvl, ok := levelByID[p.Owner.EnemyID]; ok {
			levels = append(levels, lvl)
		}
	}
	return levels, nil
}

package service

import (
	"errors"

	"github.com/PeuAlmeidaDev/mindforge-backend/internal/game"
)

const maxEquippedSkills = 4

// ProfileRepo is the minimal repository interface required by the profile
// flows.
type ProfileRepo interface {
	UpdateUser(u *game.User) error
	GetSkillsByIDs(ids []uint) ([]game.Skill, error)
	SetEquippedSkills(userID uint, skills []game.Skill) error
}

var (
	ErrNothingAllocated   = errors.New("no points allocated")
	ErrNegativeAllocation = errors.New("allocations must be positive")
	ErrNotEnoughPoints    = errors.New("not enough attribute points")
	ErrTooManySkills      = errors.New("a loadout holds at most 4 skills")
	ErrUnknownSkill       = errors.New("unknown skill")
)

// SpendAttributePoints distributes unspent points over the five stats. The
// allocation is all-or-nothing: any invalid entry rejects the whole request
// and nothing is written.
func SpendAttributePoints(repo ProfileRepo, user *game.User, alloc game.Stats) error {
	total := 0
	for _, attr := range game.Attributes() {
		v := alloc.Get(attr)
		if v < 0 {
			return ErrNegativeAllocation
		}
		total += v
	}
	if total == 0 {
		return ErrNothingAllocated
	}
	if total > user.AttributePoints {
		return ErrNotEnoughPoints
	}

	for _, attr := range game.Attributes() {
		user.Stats.Add(attr, alloc.Get(attr))
	}
	user.AttributePoints -= total
	return repo.UpdateUser(user)
}

// EquipSkills replaces the user's loadout wholesale. Duplicate ids collapse;
// the result must fit the slot cap and every id must name a seeded skill.
// An empty list clears the loadout.
func EquipSkills(repo ProfileRepo, user *game.User, skillIDs []uint) error {
	ids := uniqueIDs(skillIDs)
	if len(ids) > maxEquippedSkills {
		return ErrTooManySkills
	}

	skills := []game.Skill{}
	if len(ids) > 0 {
		var err error
		skills, err = repo.GetSkillsByIDs(ids)
		if err != nil {
			return err
		}
		if len(skills) != len(ids) {
			return ErrUnknownSkill
		}
	}

	if err := repo.SetEquippedSkills(user.ID, skills); err != nil {
		return err
	}
	user.EquippedSkills = skills
	return nil
}

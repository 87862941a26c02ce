package storage

import (
	"errors"

	"github.com/PeuAlmeidaDev/mindforge-backend/internal/game"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func (r *sqliteRepository) CreateUser(u *game.User) error {
	return r.db.Create(u).Error
}

func (r *sqliteRepository) GetUserByEmail(email string) (*game.User, error) {
	var u game.User
	err := r.db.Preload("House").Preload("Interests").Preload("EquippedSkills").
		Where("email = ?", email).First(&u).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *sqliteRepository) GetUserByPublicID(publicID string) (*game.User, error) {
	var u game.User
	err := r.db.Preload("House").Preload("Interests").Preload("EquippedSkills").
		Where("public_id = ?", publicID).First(&u).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *sqliteRepository) UpdateUser(u *game.User) error {
	return r.db.Save(u).Error
}

func (r *sqliteRepository) SetEquippedSkills(userID uint, skills []game.Skill) error {
	u := game.User{}
	u.ID = userID
	return r.db.Model(&u).Association("EquippedSkills").Replace(&skills)
}

func (r *sqliteRepository) SetInterests(userID uint, interests []game.Interest) error {
	u := game.User{}
	u.ID = userID
	return r.db.Model(&u).Association("Interests").Replace(&interests)
}

func (r *sqliteRepository) GetHouses() ([]game.House, error) {
	var houses []game.House
	if err := r.db.Order("name").Find(&houses).Error; err != nil {
		return nil, err
	}
	return houses, nil
}

func (r *sqliteRepository) GetHouseByID(id uint) (*game.House, error) {
	var h game.House
	if err := r.db.First(&h, id).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &h, nil
}

func (r *sqliteRepository) GetInterests() ([]game.Interest, error) {
	var interests []game.Interest
	if err := r.db.Order("name").Find(&interests).Error; err != nil {
		return nil, err
	}
	return interests, nil
}

func (r *sqliteRepository) GetInterestsByIDs(ids []uint) ([]game.Interest, error) {
	var interests []game.Interest
	if err := r.db.Where("id IN ?", ids).Find(&interests).Error; err != nil {
		return nil, err
	}
	return interests, nil
}

func (r *sqliteRepository) GetSkills() ([]game.Skill, error) {
	var skills []game.Skill
	if err := r.db.Order("name").Find(&skills).Error; err != nil {
		return nil, err
	}
	return skills, nil
}

func (r *sqliteRepository) GetSkillsByIDs(ids []uint) ([]game.Skill, error) {
	var skills []game.Skill
	if err := r.db.Where("id IN ?", ids).Find(&skills).Error; err != nil {
		return nil, err
	}
	return skills, nil
}

func (r *sqliteRepository) GetSkillsBySlugs(slugs []string) ([]game.Skill, error) {
	var skills []game.Skill
	if err := r.db.Where("slug IN ?", slugs).Find(&skills).Error; err != nil {
		return nil, err
	}
	return skills, nil
}

func (r *sqliteRepository) CreateGoal(g *game.Goal) error {
	return r.db.Create(g).Error
}

func (r *sqliteRepository) GetGoalsByUser(userID uint) ([]game.Goal, error) {
	var goals []game.Goal
	if err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *sqliteRepository) GetGoalByID(id uint) (*game.Goal, error) {
	var g game.Goal
	if err := r.db.First(&g, id).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func (r *sqliteRepository) UpdateGoal(g *game.Goal) error {
	return r.db.Save(g).Error
}

func (r *sqliteRepository) GetEnemyTemplatesByRarities(rarities []game.Rarity) ([]game.EnemyTemplate, error) {
	names := make([]string, len(rarities))
	for i, rar := range rarities {
		names[i] = string(rar)
	}
	var templates []game.EnemyTemplate
	if err := r.db.Preload("Skills").Where("rarity IN ?", names).Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *sqliteRepository) GetEnemyTemplatesByIDs(ids []uint) ([]game.EnemyTemplate, error) {
	var templates []game.EnemyTemplate
	if err := r.db.Preload("Skills").Where("id IN ?", ids).Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *sqliteRepository) CreateBattle(b *game.Battle) error {
	return r.db.Create(b).Error
}

func (r *sqliteRepository) GetBattleByCode(code string) (*game.Battle, error) {
	var b game.Battle
	err := r.db.
		Preload("Participants", func(db *gorm.DB) *gorm.DB { return db.Order("team, position") }).
		Preload("Participants.StatusEffects").
		Preload("Participants.StatBuffs").
		Where("public_code = ?", code).First(&b).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *sqliteRepository) AdvanceTurn(battleID uint, fromTurn int) error {
	res := r.db.Model(&game.Battle{}).
		Where("id = ? AND current_turn = ? AND finished = ?", battleID, fromTurn, false).
		Update("current_turn", fromTurn+1)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleTurn
	}
	return nil
}

func (r *sqliteRepository) SaveTurnResults(b *game.Battle, expiredStatusIDs, expiredBuffIDs []uint) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(b).Error; err != nil {
		tx.Rollback()
		return err
	}
	// Saving the battle upserts the rows still attached to the participants;
	// the rows that expired during the turn have to go explicitly.
	if len(expiredStatusIDs) > 0 {
		if err := tx.Delete(&game.StatusEffect{}, expiredStatusIDs).Error; err != nil {
			tx.Rollback()
			return err
		}
	}
	if len(expiredBuffIDs) > 0 {
		if err := tx.Delete(&game.StatBuff{}, expiredBuffIDs).Error; err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit().Error
}

func (r *sqliteRepository) GetReward(userID, battleID uint) (*game.BattleReward, error) {
	var reward game.BattleReward
	err := r.db.Where("user_id = ? AND battle_id = ?", userID, battleID).First(&reward).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &reward, nil
}

func (r *sqliteRepository) GrantReward(u *game.User, reward *game.BattleReward) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	if err := tx.Create(reward).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Model(&game.User{}).Where("id = ?", u.ID).Updates(map[string]interface{}{
		"level":            u.Level,
		"experience":       u.Experience,
		"attribute_points": u.AttributePoints,
	}).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

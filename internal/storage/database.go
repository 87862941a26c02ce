package storage

import (
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/game"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InterestSeed pairs an interest definition with the slug of the house it
// leans toward; the numeric link is resolved after houses are seeded.
type InterestSeed struct {
	Interest  game.Interest
	HouseSlug string
}

// EnemySeed pairs an enemy template with the slugs of the skills in its
// loadout; the association is resolved after skills are seeded.
type EnemySeed struct {
	Template   game.EnemyTemplate
	SkillSlugs []string
}

// SeedData is the catalog content parsed from the game config: houses,
// interests, skills and enemy templates.
type SeedData struct {
	Houses    []game.House
	Interests []InterestSeed
	Skills    []game.Skill
	Enemies   []EnemySeed
}

func OpenAndMigrate(dataSourceName string, seed SeedData) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Keep the schema updated via AutoMigrate; the config file is the source
	// of truth for catalog rows and is re-applied on every startup.
	err = db.AutoMigrate(
		&game.House{}, &game.Interest{}, &game.Skill{}, &game.EnemyTemplate{},
		&game.User{}, &game.Goal{},
		&game.Battle{}, &game.Participant{}, &game.StatusEffect{}, &game.StatBuff{},
		&game.BattleReward{},
	)
	if err != nil {
		return nil, err
	}

	// One combatant per battle slot. An explicit UNIQUE index enforces it even
	// though positions are assigned in code.
	if execErr := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_battle_participants_slot ON battle_participants(battle_id, team, position);").Error; execErr != nil {
		return nil, execErr
	}

	if err := seedCatalog(db, seed); err != nil {
		return nil, err
	}
	return db, nil
}

// seedCatalog upserts the configured catalog keyed by slug, so stat changes
// in the config reach existing databases without manual migrations. Order
// matters: interests reference houses and enemy loadouts reference skills.
func seedCatalog(db *gorm.DB, seed SeedData) error {
	if err := seedHouses(db, seed.Houses); err != nil {
		return err
	}
	if err := seedInterests(db, seed.Interests); err != nil {
		return err
	}
	if err := seedSkills(db, seed.Skills); err != nil {
		return err
	}
	return seedEnemies(db, seed.Enemies)
}

func seedHouses(db *gorm.DB, houses []game.House) error {
	if len(houses) == 0 {
		return nil
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "element", "motto"}),
	}).Create(&houses).Error
}

func seedInterests(db *gorm.DB, seeds []InterestSeed) error {
	for _, s := range seeds {
		var house game.House
		if err := db.Where("slug = ?", s.HouseSlug).First(&house).Error; err != nil {
			// A broken reference should not keep the server from starting.
			logging.Error("interest references unknown house", err, logging.Fields{"interest": s.Interest.Slug, "house": s.HouseSlug})
			continue
		}
		in := s.Interest
		in.HouseID = house.ID
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "house_id"}),
		}).Create(&in).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedSkills(db *gorm.DB, skills []game.Skill) error {
	if len(skills) == 0 {
		return nil
	}
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "element", "category", "base_power", "accuracy", "target_all",
			"effect_type", "effect_chance", "effect_turns",
			"buff_attribute", "buff_value", "debuff_attribute", "debuff_value",
		}),
	}).Create(&skills).Error
}

func seedEnemies(db *gorm.DB, seeds []EnemySeed) error {
	for _, s := range seeds {
		tpl := s.Template
		if err := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "element", "rarity", "boss", "level", "max_health",
				"physical_attack", "special_attack", "physical_defense", "special_defense", "speed",
			}),
		}).Create(&tpl).Error; err != nil {
			return err
		}

		// On conflict the in-memory value keeps a zero ID, so re-read the row
		// before touching the loadout association.
		var stored game.EnemyTemplate
		if err := db.Where("slug = ?", tpl.Slug).First(&stored).Error; err != nil {
			return err
		}
		var loadout []game.Skill
		if err := db.Where("slug IN ?", s.SkillSlugs).Find(&loadout).Error; err != nil {
			return err
		}
		if len(loadout) != len(s.SkillSlugs) {
			logging.Error("enemy loadout references unknown skills", nil, logging.Fields{"enemy": tpl.Slug})
		}
		if err := db.Model(&stored).Association("Skills").Replace(&loadout); err != nil {
			return err
		}
	}
	return nil
}

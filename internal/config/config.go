package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/PeuAlmeidaDev/mindforge-backend/internal/game"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/slug"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/storage"
)

type houseEntry struct {
	Name    string       `json:"name"`
	Element game.Element `json:"element"`
	Motto   string       `json:"motto"`
	// Interests listed here lean toward this house at registration time.
	Interests []string `json:"interests"`
}

type skillEntry struct {
	Name         string              `json:"name"`
	Element      game.Element        `json:"element"`
	Category     game.AttackCategory `json:"category"`
	BasePower    int                 `json:"base_power"`
	Accuracy     int                 `json:"accuracy"`
	TargetAll    bool                `json:"target_all"`
	EffectType   game.EffectType     `json:"effect_type"`
	EffectChance int                 `json:"effect_chance"`
	EffectTurns  int                 `json:"effect_turns"`

	BuffAttribute   game.Attribute `json:"buff_attribute"`
	BuffValue       int            `json:"buff_value"`
	DebuffAttribute game.Attribute `json:"debuff_attribute"`
	DebuffValue     int            `json:"debuff_value"`
}

type enemyEntry struct {
	Name      string       `json:"name"`
	Element   game.Element `json:"element"`
	Rarity    game.Rarity  `json:"rarity"`
	Boss      bool         `json:"boss"`
	Level     int          `json:"level"`
	MaxHealth int          `json:"max_health"`
	Stats     game.Stats   `json:"stats"`
	// Skills references skill names from skill_list.
	Skills []string `json:"skills"`
}

type newUserEntry struct {
	MaxHealth       int        `json:"max_health"`
	AttributePoints int        `json:"attribute_points"`
	Stats           game.Stats `json:"stats"`
	// Skills is the starting equipped loadout, referencing skill names.
	Skills []string `json:"skills"`
}

type rawConfig struct {
	HouseList []houseEntry  `json:"house_list"`
	SkillList []skillEntry  `json:"skill_list"`
	EnemyList []enemyEntry  `json:"enemy_list"`
	NewUser   *newUserEntry `json:"new_user"`
	Server    *struct {
		Address string `json:"address"`
	} `json:"server"`
}

// NewUserDefaults is the template every registered account starts from.
type NewUserDefaults struct {
	MaxHealth       int
	AttributePoints int
	Stats           game.Stats
	SkillSlugs      []string
}

// LoadedConfig contains the catalog to seed, the defaults for new accounts
// and the server address to bind to.
type LoadedConfig struct {
	Seed          storage.SeedData
	NewUser       NewUserDefaults
	ServerAddress string
}

// LoadConfig reads the configuration file at path. It requires the keys
// `house_list`, `skill_list` and `enemy_list`; enemy loadouts and the new
// user defaults reference skills by name.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.HouseList) == 0 {
		return nil, fmt.Errorf("config file %s: house_list is empty", path)
	}
	if len(rc.SkillList) == 0 {
		return nil, fmt.Errorf("config file %s: skill_list is empty", path)
	}
	if len(rc.EnemyList) == 0 {
		return nil, fmt.Errorf("config file %s: enemy_list is empty", path)
	}

	seed := storage.SeedData{}
	skillSlugs := make(map[string]struct{}, len(rc.SkillList))

	for _, s := range rc.SkillList {
		if s.Name == "" {
			return nil, fmt.Errorf("config file %s: skill entry missing 'name'", path)
		}
		if !s.Element.Valid() {
			return nil, fmt.Errorf("config file %s: skill '%s' has unknown element '%s'", path, s.Name, s.Element)
		}
		category := s.Category
		if category == "" {
			category = game.CategoryPhysical
		}
		if !category.Valid() {
			return nil, fmt.Errorf("config file %s: skill '%s' has unknown category '%s'", path, s.Name, s.Category)
		}
		if s.Accuracy < 1 || s.Accuracy > 100 {
			return nil, fmt.Errorf("config file %s: skill '%s' accuracy must be in 1..100", path, s.Name)
		}
		if s.BasePower < 0 {
			return nil, fmt.Errorf("config file %s: skill '%s' has negative base_power", path, s.Name)
		}
		if !s.EffectType.Valid() {
			return nil, fmt.Errorf("config file %s: skill '%s' has unknown effect_type '%s'", path, s.Name, s.EffectType)
		}
		if s.EffectChance < 0 || s.EffectChance > 100 {
			return nil, fmt.Errorf("config file %s: skill '%s' effect_chance must be in 0..100", path, s.Name)
		}
		if s.EffectChance > 0 {
			if s.EffectType == game.EffectNone {
				return nil, fmt.Errorf("config file %s: skill '%s' has effect_chance but no effect_type", path, s.Name)
			}
			if s.EffectTurns < 1 {
				return nil, fmt.Errorf("config file %s: skill '%s' needs effect_turns >= 1", path, s.Name)
			}
		}
		if s.DebuffValue < 0 {
			return nil, fmt.Errorf("config file %s: skill '%s' debuff_value must not be negative", path, s.Name)
		}

		sl := slug.Make(s.Name)
		if _, exists := skillSlugs[sl]; exists {
			return nil, fmt.Errorf("config file %s: duplicate skill name '%s'", path, s.Name)
		}
		skillSlugs[sl] = struct{}{}

		seed.Skills = append(seed.Skills, game.Skill{
			Name:            s.Name,
			Slug:            sl,
			Element:         s.Element,
			Category:        category,
			BasePower:       s.BasePower,
			Accuracy:        s.Accuracy,
			TargetAll:       s.TargetAll,
			EffectType:      s.EffectType,
			EffectChance:    s.EffectChance,
			EffectTurns:     s.EffectTurns,
			BuffAttribute:   s.BuffAttribute,
			BuffValue:       s.BuffValue,
			DebuffAttribute: s.DebuffAttribute,
			DebuffValue:     s.DebuffValue,
		})
	}

	houseSlugs := make(map[string]struct{}, len(rc.HouseList))
	interestSlugs := make(map[string]struct{})
	for _, h := range rc.HouseList {
		if h.Name == "" {
			return nil, fmt.Errorf("config file %s: house entry missing 'name'", path)
		}
		if !h.Element.Valid() {
			return nil, fmt.Errorf("config file %s: house '%s' has unknown element '%s'", path, h.Name, h.Element)
		}
		hs := slug.Make(h.Name)
		if _, exists := houseSlugs[hs]; exists {
			return nil, fmt.Errorf("config file %s: duplicate house name '%s'", path, h.Name)
		}
		houseSlugs[hs] = struct{}{}
		seed.Houses = append(seed.Houses, game.House{Name: h.Name, Slug: hs, Element: h.Element, Motto: h.Motto})

		// An interest leans toward exactly one house.
		for _, in := range h.Interests {
			if strings.TrimSpace(in) == "" {
				return nil, fmt.Errorf("config file %s: house '%s' has an empty interest", path, h.Name)
			}
			is := slug.Make(in)
			if _, exists := interestSlugs[is]; exists {
				return nil, fmt.Errorf("config file %s: interest '%s' appears in more than one house", path, in)
			}
			interestSlugs[is] = struct{}{}
			seed.Interests = append(seed.Interests, storage.InterestSeed{
				Interest:  game.Interest{Name: in, Slug: is},
				HouseSlug: hs,
			})
		}
	}

	enemySlugs := make(map[string]struct{}, len(rc.EnemyList))
	for _, e := range rc.EnemyList {
		if e.Name == "" {
			return nil, fmt.Errorf("config file %s: enemy entry missing 'name'", path)
		}
		if !e.Element.Valid() {
			return nil, fmt.Errorf("config file %s: enemy '%s' has unknown element '%s'", path, e.Name, e.Element)
		}
		if !e.Rarity.Valid() {
			return nil, fmt.Errorf("config file %s: enemy '%s' has unknown rarity '%s'", path, e.Name, e.Rarity)
		}
		if e.Level < 1 {
			return nil, fmt.Errorf("config file %s: enemy '%s' needs level >= 1", path, e.Name)
		}
		if e.MaxHealth < 1 {
			return nil, fmt.Errorf("config file %s: enemy '%s' needs max_health >= 1", path, e.Name)
		}
		if len(e.Skills) == 0 {
			return nil, fmt.Errorf("config file %s: enemy '%s' has an empty loadout", path, e.Name)
		}
		es := slug.Make(e.Name)
		if _, exists := enemySlugs[es]; exists {
			return nil, fmt.Errorf("config file %s: duplicate enemy name '%s'", path, e.Name)
		}
		enemySlugs[es] = struct{}{}

		loadout := make([]string, 0, len(e.Skills))
		for _, sn := range e.Skills {
			ss := slug.Make(sn)
			if _, ok := skillSlugs[ss]; !ok {
				return nil, fmt.Errorf("config file %s: enemy '%s' references unknown skill '%s'", path, e.Name, sn)
			}
			loadout = append(loadout, ss)
		}

		seed.Enemies = append(seed.Enemies, storage.EnemySeed{
			Template: game.EnemyTemplate{
				Name:      e.Name,
				Slug:      es,
				Element:   e.Element,
				Rarity:    e.Rarity,
				Boss:      e.Boss,
				Level:     e.Level,
				MaxHealth: e.MaxHealth,
				Stats:     e.Stats,
			},
			SkillSlugs: loadout,
		})
	}

	newUser := NewUserDefaults{
		MaxHealth: 100,
		Stats: game.Stats{
			PhysicalAttack:  10,
			SpecialAttack:   10,
			PhysicalDefense: 10,
			SpecialDefense:  10,
			Speed:           10,
		},
	}
	if rc.NewUser != nil {
		if rc.NewUser.MaxHealth > 0 {
			newUser.MaxHealth = rc.NewUser.MaxHealth
		}
		if rc.NewUser.AttributePoints > 0 {
			newUser.AttributePoints = rc.NewUser.AttributePoints
		}
		if rc.NewUser.Stats != (game.Stats{}) {
			newUser.Stats = rc.NewUser.Stats
		}
		for _, sn := range rc.NewUser.Skills {
			ss := slug.Make(sn)
			if _, ok := skillSlugs[ss]; !ok {
				return nil, fmt.Errorf("config file %s: new_user references unknown skill '%s'", path, sn)
			}
			newUser.SkillSlugs = append(newUser.SkillSlugs, ss)
		}
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}

	return &LoadedConfig{
		Seed:          seed,
		NewUser:       newUser,
		ServerAddress: addr,
	}, nil
}

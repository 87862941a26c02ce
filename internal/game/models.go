package game

import (
	"time"

	"gorm.io/gorm"
)

// User stores a registered player: identity, house membership, progression
// and the persistent base stats battles are seeded from.
type User struct {
	gorm.Model
	PublicID     string `json:"public_id" gorm:"uniqueIndex;size:36"`
	Email        string `json:"email" gorm:"uniqueIndex"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	PasswordSalt string `json:"-"`

	HouseID uint    `json:"-"`
	House   House   `json:"house"`
	Element Element `json:"element" gorm:"size:16"`

	Level           int `json:"level"`
	Experience      int `json:"experience"`
	AttributePoints int `json:"attribute_points"`

	MaxHealth int   `json:"max_health"`
	Stats     Stats `json:"stats" gorm:"embedded"`

	Interests      []Interest `json:"interests" gorm:"many2many:user_interests;"`
	EquippedSkills []Skill    `json:"equipped_skills" gorm:"many2many:user_equipped_skills;"`
}

// House is one of the four elemental houses users are sorted into. Rows are
// seeded from the game config at startup.
type House struct {
	gorm.Model
	Name    string  `json:"name"`
	Slug    string  `json:"slug" gorm:"uniqueIndex"`
	Element Element `json:"element" gorm:"size:16"`
	Motto   string  `json:"motto"`
}

// Interest is a selectable topic users pick at registration. Each interest
// leans toward one house; the majority among a user's picks decides the
// assignment.
type Interest struct {
	gorm.Model
	Name    string `json:"name"`
	Slug    string `json:"slug" gorm:"uniqueIndex"`
	HouseID uint   `json:"house_id"`
}

// Goal is a user-defined habit. Completing it grants reward points to the
// chosen attribute, once.
type Goal struct {
	gorm.Model
	UserID       uint       `json:"-"`
	Title        string     `json:"title" gorm:"size:128"`
	Description  string     `json:"description" gorm:"size:512"`
	Attribute    Attribute  `json:"attribute"`
	RewardPoints int        `json:"reward_points"`
	Completed    bool       `json:"completed"`
	CompletedAt  *time.Time `json:"completed_at"`
}

// Skill is an immutable move template seeded from the game config. The
// optional effect block proposes a status condition on hit (chance-gated);
// the optional buff/debuff blocks are always proposed. A zero value in
// BuffValue/DebuffValue means the skill carries no such block.
type Skill struct {
	gorm.Model
	Name      string         `json:"name"`
	Slug      string         `json:"slug" gorm:"uniqueIndex"`
	Element   Element        `json:"element" gorm:"size:16"`
	Category  AttackCategory `json:"category" gorm:"size:16"`
	BasePower int            `json:"base_power"`
	Accuracy  int            `json:"accuracy"`
	TargetAll bool           `json:"target_all"`

	EffectType   EffectType `json:"effect_type,omitempty" gorm:"size:16"`
	EffectChance int        `json:"effect_chance,omitempty"`
	// EffectTurns is the duration ceiling; the applied duration is drawn
	// uniformly from [1, EffectTurns].
	EffectTurns int `json:"effect_turns,omitempty"`

	// Self buff applied to the attacker on hit.
	BuffAttribute Attribute `json:"buff_attribute,omitempty"`
	BuffValue     int       `json:"buff_value,omitempty"`
	// Debuff applied to the defender on hit. Stored positive; negated when
	// turned into a stat modifier.
	DebuffAttribute Attribute `json:"debuff_attribute,omitempty"`
	DebuffValue     int       `json:"debuff_value,omitempty"`
}

// EnemyTemplate is a spawnable opponent definition seeded from the game
// config, with a fixed skill loadout.
type EnemyTemplate struct {
	gorm.Model
	Name    string  `json:"name"`
	Slug    string  `json:"slug" gorm:"uniqueIndex"`
	Element Element `json:"element" gorm:"size:16"`
	Rarity  Rarity  `json:"rarity" gorm:"size:16"`
	Boss    bool    `json:"boss"`
	// Level is the template's estimated strength, used for AI difficulty and
	// experience rewards.
	Level     int     `json:"level"`
	MaxHealth int     `json:"max_health"`
	Stats     Stats   `json:"stats" gorm:"embedded"`
	Skills    []Skill `json:"skills" gorm:"many2many:enemy_template_skills;"`
}

// Battle is one turn-based encounter between a user's side and a set of
// spawned enemies. Addressed externally by PublicCode so row ids stay
// internal.
type Battle struct {
	gorm.Model
	PublicCode string `json:"public_code" gorm:"uniqueIndex;size:16"`
	UserID     uint   `json:"-"`

	CurrentTurn int  `json:"current_turn"`
	Finished    bool `json:"finished"`
	WinningTeam Team `json:"winning_team,omitempty" gorm:"size:16"`
	// WinningParticipantID is 0 until the battle finishes.
	WinningParticipantID uint `json:"winning_participant_id,omitempty"`

	// Difficulty is the tier requested at creation; it fixes the enemy count
	// and the rarity pool enemies are drawn from.
	Difficulty Difficulty `json:"difficulty" gorm:"size:16"`

	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`

	Participants []Participant `json:"participants"`
}

// OwnerKind discriminates whether a participant mirrors a registered user or
// an enemy template.
type OwnerKind string

const (
	OwnerPlayer OwnerKind = "player"
	OwnerEnemy  OwnerKind = "enemy"
)

// Owner is a tagged reference to the persistent record a participant was
// seeded from. Kind selects which id is meaningful; the other stays 0.
type Owner struct {
	Kind    OwnerKind `json:"kind" gorm:"column:owner_kind;size:16"`
	UserID  uint      `json:"user_id,omitempty" gorm:"column:owner_user_id"`
	EnemyID uint      `json:"enemy_id,omitempty" gorm:"column:owner_enemy_id"`
}

func PlayerOwner(userID uint) Owner { return Owner{Kind: OwnerPlayer, UserID: userID} }

func EnemyOwner(enemyID uint) Owner { return Owner{Kind: OwnerEnemy, EnemyID: enemyID} }

// Participant is a battle-scoped combatant: a working copy of its owner's
// stats that the engine mutates turn by turn, independent of the persistent
// record it was seeded from.
type Participant struct {
	gorm.Model
	BattleID uint  `json:"-"`
	Owner    Owner `json:"owner" gorm:"embedded"`
	Team     Team  `json:"team" gorm:"size:16"`
	// Position is 1..N within the team; position 1 is the side's leader.
	Position int     `json:"position"`
	Name     string  `json:"name"`
	Element  Element `json:"element" gorm:"size:16"`

	CurrentHealth int   `json:"current_health"`
	MaxHealth     int   `json:"max_health"`
	Stats         Stats `json:"stats" gorm:"embedded"`

	StatusEffects []StatusEffect `json:"status_effects"`
	StatBuffs     []StatBuff     `json:"stat_buffs"`
}

// Store battle combatants in a dedicated table for clarity.
func (Participant) TableName() string { return "battle_participants" }

// Defeated reports whether the participant is out of the battle.
func (p *Participant) Defeated() bool { return p.CurrentHealth <= 0 }

// ActiveStatus returns the participant's current status effect, or nil. At
// most one is active at a time.
func (p *Participant) ActiveStatus() *StatusEffect {
	for i := range p.StatusEffects {
		if p.StatusEffects[i].RemainingTurns > 0 {
			return &p.StatusEffects[i]
		}
	}
	return nil
}

// StatusEffect is a timed condition on one participant. The applied stat
// delta is recorded exactly as it was made so expiry restores the stat
// precisely instead of recomputing a percentage.
type StatusEffect struct {
	gorm.Model
	ParticipantID  uint       `json:"-"`
	Type           EffectType `json:"type" gorm:"size:16"`
	RemainingTurns int        `json:"remaining_turns"`
	// Magnitude is the per-turn health drain for damaging conditions, 0 for
	// the rest.
	Magnitude        int       `json:"magnitude"`
	AppliedAttribute Attribute `json:"-"`
	AppliedDelta     int       `json:"-"`
}

// StatBuff is a timed stacking stat modifier on one participant. Debuffs are
// rows with a negative Value. Total effect on the stat is Value×Stacks,
// reversed in full when the buff expires.
type StatBuff struct {
	gorm.Model
	ParticipantID  uint      `json:"-"`
	Attribute      Attribute `json:"attribute"`
	Value          int       `json:"value"`
	Stacks         int       `json:"stacks"`
	RemainingTurns int       `json:"remaining_turns"`
}

// BattleReward is the ledger row proving a user already claimed a battle's
// rewards. The composite unique index is what makes double claims fail.
type BattleReward struct {
	gorm.Model
	UserID           uint `json:"user_id" gorm:"uniqueIndex:idx_battle_rewards_user_battle"`
	BattleID         uint `json:"battle_id" gorm:"uniqueIndex:idx_battle_rewards_user_battle"`
	ExperienceGained int  `json:"experience_gained"`
	LevelsGained     int  `json:"levels_gained"`
	PointsGained     int  `json:"points_gained"`
}

// Action is one submitted intent: actor uses skill on target. Transient,
// never persisted.
type Action struct {
	ActorID  uint `json:"actor_id"`
	TargetID uint `json:"target_id"`
	SkillID  uint `json:"skill_id"`
}

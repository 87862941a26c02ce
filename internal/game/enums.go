package game

// Element is the elemental type carried by houses, users, skills, enemy
// templates and battle participants.
type Element string

const (
	ElementFire    Element = "fire"
	ElementWater   Element = "water"
	ElementNature  Element = "nature"
	ElementEarth   Element = "earth"
	ElementAir     Element = "air"
	ElementThunder Element = "thunder"
	ElementLight   Element = "light"
	ElementShadow  Element = "shadow"
)

// Elements lists every playable element.
func Elements() []Element {
	return []Element{
		ElementFire, ElementWater, ElementNature, ElementEarth,
		ElementAir, ElementThunder, ElementLight, ElementShadow,
	}
}

func (e Element) Valid() bool {
	switch e {
	case ElementFire, ElementWater, ElementNature, ElementEarth,
		ElementAir, ElementThunder, ElementLight, ElementShadow:
		return true
	}
	return false
}

// AttackCategory selects which attack/defense stat pair a skill uses.
type AttackCategory string

const (
	CategoryPhysical AttackCategory = "physical"
	CategorySpecial  AttackCategory = "special"
)

func (c AttackCategory) Valid() bool {
	return c == CategoryPhysical || c == CategorySpecial
}

// EffectType tags a timed status condition. Conditions are distinct from stat
// buffs/debuffs: they drain health over time, block actions, or degrade the
// carrier's aim.
type EffectType string

const (
	EffectNone    EffectType = ""
	EffectBurn    EffectType = "burn"
	EffectPoison  EffectType = "poison"
	EffectBleed   EffectType = "bleed"
	EffectStun    EffectType = "stun"
	EffectFreeze  EffectType = "freeze"
	EffectBlind   EffectType = "blind"
	EffectConfuse EffectType = "confuse"
)

// DealsDamage reports whether the effect drains health on every tick.
func (t EffectType) DealsDamage() bool {
	return t == EffectBurn || t == EffectPoison || t == EffectBleed
}

// PreventsAction reports whether the effect blocks the carrier from acting
// for the turn.
func (t EffectType) PreventsAction() bool {
	return t == EffectStun || t == EffectFreeze
}

func (t EffectType) Valid() bool {
	switch t {
	case EffectNone, EffectBurn, EffectPoison, EffectBleed,
		EffectStun, EffectFreeze, EffectBlind, EffectConfuse:
		return true
	}
	return false
}

// Team groups participants into the two sides of a battle.
type Team string

const (
	TeamPlayer Team = "player"
	TeamEnemy  Team = "enemy"
)

// Opposing returns the other side.
func (t Team) Opposing() Team {
	if t == TeamPlayer {
		return TeamEnemy
	}
	return TeamPlayer
}

// Difficulty is the battle tier a player asks for. It decides how many
// enemies spawn and which rarity pool they come from.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyNormal || d == DifficultyHard
}

// EnemyCount is how many opponents spawn at this difficulty.
func (d Difficulty) EnemyCount() int {
	switch d {
	case DifficultyNormal:
		return 2
	case DifficultyHard:
		return 3
	}
	return 1
}

// RarityPool lists the rarities battles of this difficulty draw enemies from.
func (d Difficulty) RarityPool() []Rarity {
	switch d {
	case DifficultyNormal:
		return []Rarity{RarityUncommon, RarityRare}
	case DifficultyHard:
		return []Rarity{RarityRare, RarityEpic, RarityLegendary}
	}
	return []Rarity{RarityCommon, RarityUncommon}
}

// Rarity tiers an enemy template and sets the AI difficulty baseline.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}

// Tier maps a rarity to its numeric difficulty baseline, common=1 up to
// legendary=5. Unknown rarities fall back to 1.
func (r Rarity) Tier() int {
	switch r {
	case RarityCommon:
		return 1
	case RarityUncommon:
		return 2
	case RarityRare:
		return 3
	case RarityEpic:
		return 4
	case RarityLegendary:
		return 5
	}
	return 1
}

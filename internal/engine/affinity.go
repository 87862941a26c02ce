package engine

import "github.com/PeuAlmeidaDev/mindforge-backend/internal/game"

// Damage multipliers produced by the affinity lookup.
const (
	MultiplierImmune    = 0.0
	MultiplierWeak      = 0.5
	MultiplierNeutral   = 1.0
	MultiplierAdvantage = 1.5
	MultiplierSameType  = 0.5
)

// advantages maps each element to the elements it deals bonus damage to.
var advantages = map[game.Element][]game.Element{
	game.ElementFire:    {game.ElementNature},
	game.ElementWater:   {game.ElementFire, game.ElementEarth},
	game.ElementNature:  {game.ElementWater, game.ElementEarth},
	game.ElementEarth:   {game.ElementThunder, game.ElementFire},
	game.ElementAir:     {game.ElementNature, game.ElementEarth},
	game.ElementThunder: {game.ElementWater, game.ElementAir},
	game.ElementLight:   {game.ElementShadow},
	game.ElementShadow:  {game.ElementLight},
}

// immunities maps a defender element to the attacking elements it fully
// ignores.
var immunities = map[game.Element][]game.Element{
	game.ElementEarth:  {game.ElementThunder},
	game.ElementAir:    {game.ElementEarth},
	game.ElementShadow: {game.ElementShadow},
}

func listed(set []game.Element, e game.Element) bool {
	for _, x := range set {
		if x == e {
			return true
		}
	}
	return false
}

// Advantage returns the damage multiplier for an attacking element against a
// defending element. Rules apply in strict order: same-type penalty first,
// then immunity, then attacker advantage, then defender advantage, else
// neutral. Shadow-versus-shadow exists in both the same-type and immunity
// sets, so the ordering is observable: it resolves to 0.5, not 0.
func Advantage(attacker, defender game.Element) float64 {
	if attacker == defender {
		return MultiplierSameType
	}
	if listed(immunities[defender], attacker) {
		return MultiplierImmune
	}
	if listed(advantages[attacker], defender) {
		return MultiplierAdvantage
	}
	if listed(advantages[defender], attacker) {
		return MultiplierWeak
	}
	return MultiplierNeutral
}

package engine

import (
	"fmt"
	"math"

	"github.com/PeuAlmeidaDev/mindforge-backend/internal/game"
)

const (
	critChancePercent = 5
	critMultiplier    = 1.5
	stabMultiplier    = 1.5
	varianceMin       = 0.85
	varianceSpread    = 0.15
	buffTurns         = 3
)

// ProposedStatus is a status condition the calculator suggests for the
// defender; the turn orchestrator decides whether it sticks.
type ProposedStatus struct {
	Type      game.EffectType
	Magnitude int
	Turns     int
}

// ProposedBuff is a stat modifier proposal. Value is signed: positive rows
// raise the stat, negative rows are debuffs.
type ProposedBuff struct {
	Attribute game.Attribute
	Value     int
	Turns     int
}

// DamageOutcome is the pure result of one skill use against one defender.
// The calculator never mutates participants; the orchestrator applies
// outcomes through the effect lifecycle functions.
type DamageOutcome struct {
	Hit      bool
	Critical bool
	Immune   bool
	Damage   int
	Status   *ProposedStatus
	Buff     *ProposedBuff
	Debuff   *ProposedBuff
	Messages []string
}

// RollDamage resolves one use of a skill by attacker against defender.
// Draws are consumed in a fixed order so a seeded source reproduces
// outcomes: accuracy (when the effective threshold is below 100), then
// critical, then variance, then status chance, then status duration. A miss
// stops the sequence after the accuracy draw; an immune defender stops it
// after variance.
//
// blinded halves the attacker's effective accuracy threshold before the
// accuracy draw.
func (e *Engine) RollDamage(attacker, defender *game.Participant, sk *game.Skill, blinded bool) DamageOutcome {
	out := DamageOutcome{}

	threshold := float64(sk.Accuracy)
	if blinded {
		threshold /= 2
	}
	if threshold < 100 {
		if e.rolls.Roll100() > threshold {
			out.Messages = append(out.Messages, fmt.Sprintf("%s's %s missed %s", attacker.Name, sk.Name, defender.Name))
			return out
		}
	}
	out.Hit = true

	var atkStat, defStat int
	switch sk.Category {
	case game.CategorySpecial:
		atkStat = attacker.Stats.SpecialAttack
		defStat = defender.Stats.SpecialDefense
	default:
		atkStat = attacker.Stats.PhysicalAttack
		defStat = defender.Stats.PhysicalDefense
	}
	if defStat < 1 {
		defStat = 1
	}
	if atkStat < 0 {
		atkStat = 0
	}

	base := float64(atkStat) / float64(defStat) * float64(sk.BasePower)

	stab := 1.0
	if sk.Element == attacker.Element {
		stab = stabMultiplier
	}
	typeMult := Advantage(sk.Element, defender.Element)

	crit := 1.0
	if e.rolls.Roll100() < critChancePercent {
		crit = critMultiplier
		out.Critical = true
	}

	variance := varianceMin + e.rolls.Float()*varianceSpread

	if typeMult == MultiplierImmune {
		// Immunity wins over everything, including the minimum-damage floor.
		out.Immune = true
		out.Damage = 0
		out.Messages = append(out.Messages, fmt.Sprintf("%s is unaffected by %s", defender.Name, sk.Name))
		return out
	}

	dmg := int(math.Floor(base * stab * typeMult * crit * variance))
	if dmg < 1 {
		dmg = 1
	}
	out.Damage = dmg

	if out.Critical {
		out.Messages = append(out.Messages, "a critical hit")
	}
	if typeMult > MultiplierNeutral {
		out.Messages = append(out.Messages, "it strikes an elemental weakness")
	} else if typeMult < MultiplierNeutral {
		out.Messages = append(out.Messages, "the element is resisted")
	}
	out.Messages = append(out.Messages, fmt.Sprintf("%s's %s hits %s for %d damage", attacker.Name, sk.Name, defender.Name, dmg))

	if sk.EffectType != game.EffectNone && sk.EffectChance > 0 {
		if e.rolls.Roll100() < float64(sk.EffectChance) {
			turns := 1
			if sk.EffectTurns > 1 {
				turns = 1 + e.rolls.IntN(sk.EffectTurns)
			}
			out.Status = &ProposedStatus{
				Type:      sk.EffectType,
				Magnitude: statusMagnitude(sk.EffectType, dmg),
				Turns:     turns,
			}
		}
	}

	if sk.BuffValue != 0 {
		out.Buff = &ProposedBuff{Attribute: sk.BuffAttribute, Value: sk.BuffValue, Turns: buffTurns}
	}
	if sk.DebuffValue != 0 {
		out.Debuff = &ProposedBuff{Attribute: sk.DebuffAttribute, Value: -sk.DebuffValue, Turns: buffTurns}
	}

	return out
}

// statusMagnitude computes the per-turn drain a damaging condition inflicts,
// derived from the hit that applied it. Non-damaging conditions carry no
// magnitude.
func statusMagnitude(t game.EffectType, damage int) int {
	switch t {
	case game.EffectBurn:
		return int(math.Floor(float64(damage) * 0.066))
	case game.EffectPoison:
		m := int(math.Floor(float64(damage) * 0.12))
		if m < 4 {
			m = 4
		}
		return m
	case game.EffectBleed:
		m := int(math.Floor(float64(damage) * 0.18))
		if m < 7 {
			m = 7
		}
		return m
	}
	return 0
}

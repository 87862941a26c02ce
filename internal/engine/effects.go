package engine

import (
	"fmt"

	"github.com/PeuAlmeidaDev/mindforge-backend/internal/game"
)

const (
	burnPhysAtkReductionPct = 30
	maxBuffStacks           = 3
)

// ApplyStatus attaches a proposed condition to a participant. The policy is
// strict: any active condition blocks a new one, whatever its type. Burn
// additionally lowers the carrier's physical attack by 30% on application;
// the exact delta is recorded on the effect row so expiry restores the stat
// precisely.
func ApplyStatus(p *game.Participant, prop ProposedStatus) (bool, string) {
	if active := p.ActiveStatus(); active != nil {
		return false, fmt.Sprintf("%s already suffers from %s and shrugs off %s", p.Name, active.Type, prop.Type)
	}
	eff := game.StatusEffect{
		ParticipantID:  p.ID,
		Type:           prop.Type,
		RemainingTurns: prop.Turns,
		Magnitude:      prop.Magnitude,
	}
	if prop.Type == game.EffectBurn {
		delta := -(p.Stats.PhysicalAttack * burnPhysAtkReductionPct / 100)
		p.Stats.Add(game.AttrPhysicalAttack, delta)
		eff.AppliedAttribute = game.AttrPhysicalAttack
		eff.AppliedDelta = delta
	}
	p.StatusEffects = append(p.StatusEffects, eff)
	return true, fmt.Sprintf("%s is afflicted by %s for %d turns", p.Name, prop.Type, prop.Turns)
}

// ApplyBuff stacks a stat modifier onto a participant. Modifiers on the same
// attribute with the same sign belong to one stack family: a repeat
// application below the cap adds one more increment of the family's per-stack
// value and resets the countdown; at the cap it is a quiet no-op. Buffs and
// debuffs on the same attribute live side by side.
func ApplyBuff(p *game.Participant, prop ProposedBuff) string {
	if prop.Value == 0 {
		return ""
	}
	for i := range p.StatBuffs {
		b := &p.StatBuffs[i]
		if b.RemainingTurns <= 0 || b.Attribute != prop.Attribute {
			continue
		}
		if (b.Value > 0) != (prop.Value > 0) {
			continue
		}
		if b.Stacks >= maxBuffStacks {
			return fmt.Sprintf("%s's %s cannot shift further", p.Name, b.Attribute)
		}
		b.Stacks++
		b.RemainingTurns = prop.Turns
		p.Stats.Add(b.Attribute, b.Value)
		return fmt.Sprintf("%s's %s %s again (x%d)", p.Name, b.Attribute, riseOrFall(b.Value), b.Stacks)
	}
	p.StatBuffs = append(p.StatBuffs, game.StatBuff{
		ParticipantID:  p.ID,
		Attribute:      prop.Attribute,
		Value:          prop.Value,
		Stacks:         1,
		RemainingTurns: prop.Turns,
	})
	p.Stats.Add(prop.Attribute, prop.Value)
	return fmt.Sprintf("%s's %s %s", p.Name, prop.Attribute, riseOrFall(prop.Value))
}

func riseOrFall(value int) string {
	if value > 0 {
		return "rises"
	}
	return "falls"
}

// TickReport is what the pre-turn tick observed and did: summary messages,
// expired rows the store must delete, and which participants are impaired
// for the turn that is about to resolve.
type TickReport struct {
	Messages         []string
	ExpiredStatusIDs []uint
	ExpiredBuffIDs   []uint
	Stunned          map[uint]bool
	Blinded          map[uint]bool
	Confused         map[uint]bool
}

func (r *TickReport) add(msg string) { r.Messages = append(r.Messages, msg) }

// TickParticipants advances every timed effect by one turn: conditions drain
// health and expire with their stat side effects reversed, stat modifiers
// count down and are fully backed out at zero. Impairment marks (stun,
// freeze, blind, confuse) reflect the state at the start of the tick, so a
// condition blocks the turn it expires on.
func TickParticipants(ps []game.Participant) TickReport {
	r := TickReport{
		Stunned:  make(map[uint]bool),
		Blinded:  make(map[uint]bool),
		Confused: make(map[uint]bool),
	}
	for i := range ps {
		tickStatuses(&ps[i], &r)
		tickBuffs(&ps[i], &r)
	}
	return r
}

func tickStatuses(p *game.Participant, r *TickReport) {
	kept := p.StatusEffects[:0]
	for i := range p.StatusEffects {
		eff := p.StatusEffects[i]
		if eff.RemainingTurns <= 0 {
			continue
		}
		switch {
		case eff.Type.PreventsAction():
			r.Stunned[p.ID] = true
		case eff.Type == game.EffectBlind:
			r.Blinded[p.ID] = true
		case eff.Type == game.EffectConfuse:
			r.Confused[p.ID] = true
		}
		eff.RemainingTurns--
		if eff.Type.DealsDamage() && p.CurrentHealth > 0 {
			dmg := eff.Magnitude
			if dmg > p.CurrentHealth {
				dmg = p.CurrentHealth
			}
			if dmg > 0 {
				p.CurrentHealth -= dmg
				r.add(fmt.Sprintf("%s suffers %d %s damage", p.Name, dmg, eff.Type))
				if p.CurrentHealth == 0 {
					r.add(fmt.Sprintf("%s collapses", p.Name))
				}
			}
		}
		if eff.RemainingTurns <= 0 {
			if eff.AppliedDelta != 0 {
				p.Stats.Add(eff.AppliedAttribute, -eff.AppliedDelta)
			}
			if eff.ID != 0 {
				r.ExpiredStatusIDs = append(r.ExpiredStatusIDs, eff.ID)
			}
			r.add(fmt.Sprintf("%s's %s wears off", p.Name, eff.Type))
			continue
		}
		kept = append(kept, eff)
	}
	p.StatusEffects = kept
}

func tickBuffs(p *game.Participant, r *TickReport) {
	kept := p.StatBuffs[:0]
	for i := range p.StatBuffs {
		b := p.StatBuffs[i]
		if b.RemainingTurns <= 0 {
			continue
		}
		b.RemainingTurns--
		if b.RemainingTurns <= 0 {
			p.Stats.Add(b.Attribute, -b.Value*b.Stacks)
			if b.ID != 0 {
				r.ExpiredBuffIDs = append(r.ExpiredBuffIDs, b.ID)
			}
			r.add(fmt.Sprintf("%s's %s returns to normal", p.Name, b.Attribute))
			continue
		}
		kept = append(kept, b)
	}
	p.StatBuffs = kept
}

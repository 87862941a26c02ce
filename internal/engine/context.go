package engine

import (
	"sort"

	"github.com/PeuAlmeidaDev/mindforge-backend/internal/game"
)

// turnContext carries one turn resolution from tick to final sweep: the
// loaded battle, the merged action set, impairment marks from the tick and
// the accumulating results.
type turnContext struct {
	e       *Engine
	battle  *game.Battle
	in      *TurnInput
	actions map[uint]game.Action
	tick    TickReport
	results []ActionResult
	// messages holds turn-level lines (effect ticks, expiries, the closing
	// verdict) as opposed to per-action lines.
	messages []string
}

func newTurnContext(e *Engine, in *TurnInput) *turnContext {
	tc := &turnContext{
		e:       e,
		battle:  in.Battle,
		in:      in,
		actions: make(map[uint]game.Action, len(in.Actions)),
	}
	for _, a := range in.Actions {
		tc.actions[a.ActorID] = a
	}
	return tc
}

func (tc *turnContext) add(msg string) { tc.messages = append(tc.messages, msg) }

func (tc *turnContext) participantByID(id uint) *game.Participant {
	for i := range tc.battle.Participants {
		if tc.battle.Participants[i].ID == id {
			return &tc.battle.Participants[i]
		}
	}
	return nil
}

// living returns the team's participants still standing, in position order.
func (tc *turnContext) living(team game.Team) []*game.Participant {
	out := make([]*game.Participant, 0, len(tc.battle.Participants))
	for i := range tc.battle.Participants {
		p := &tc.battle.Participants[i]
		if p.Team == team && !p.Defeated() {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

func (tc *turnContext) teamDefeated(team game.Team) bool {
	for i := range tc.battle.Participants {
		p := &tc.battle.Participants[i]
		if p.Team == team && !p.Defeated() {
			return false
		}
	}
	return true
}

// teamHealth sums the current health of a side, for the AI's pressure read.
func (tc *turnContext) teamHealth(team game.Team) int {
	total := 0
	for i := range tc.battle.Participants {
		p := &tc.battle.Participants[i]
		if p.Team == team {
			total += p.CurrentHealth
		}
	}
	return total
}

// actingOrder sorts all participants by current speed, fastest first. Ties
// break on position, then on team with the player's side first, so turn
// order is reproducible under a seeded source.
func (tc *turnContext) actingOrder() []*game.Participant {
	order := make([]*game.Participant, 0, len(tc.battle.Participants))
	for i := range tc.battle.Participants {
		order = append(order, &tc.battle.Participants[i])
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if a.Stats.Speed != b.Stats.Speed {
			return a.Stats.Speed > b.Stats.Speed
		}
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.Team == game.TeamPlayer && b.Team != game.TeamPlayer
	})
	return order
}

func (tc *turnContext) pushResult(res ActionResult) {
	tc.results = append(tc.results, res)
}

// noopResult builds a degraded result for an action that could not resolve.
func noopResult(actor *game.Participant, a game.Action, msg string) ActionResult {
	return ActionResult{
		ActorID:  actor.ID,
		TargetID: a.TargetID,
		SkillID:  a.SkillID,
		Team:     actor.Team,
		Messages: []string{msg},
	}
}

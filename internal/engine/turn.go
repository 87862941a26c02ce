package engine

import (
	"errors"
	"fmt"

	"github.com/PeuAlmeidaDev/mindforge-backend/internal/game"
)

const confuseFizzlePercent = 33

var (
	ErrNoBattle       = errors.New("no battle loaded")
	ErrBattleFinished = errors.New("battle already finished")
)

// ResolveTurn runs one full battle turn over the preloaded input: tick every
// timed effect, let the AI fill in idle enemies, resolve actions in speed
// order with an immediate finish check after every landed blow, sweep both
// teams at the end, and advance the turn counter exactly once. The input's
// battle and participants are mutated in place; persisting them is the
// caller's job.
func (e *Engine) ResolveTurn(in TurnInput) (*TurnResult, error) {
	if in.Battle == nil {
		return nil, ErrNoBattle
	}
	if in.Battle.Finished {
		return nil, ErrBattleFinished
	}

	tc := newTurnContext(e, &in)
	turnNumber := in.Battle.CurrentTurn

	// Effects tick once per turn, before any action resolves.
	tc.tick = TickParticipants(in.Battle.Participants)
	tc.messages = append(tc.messages, tc.tick.Messages...)

	e.fillEnemyActions(tc)

	for _, actor := range tc.actingOrder() {
		action, ok := tc.actions[actor.ID]
		if !ok || actor.Defeated() {
			continue
		}
		target := tc.participantByID(action.TargetID)
		if target == nil {
			tc.pushResult(noopResult(actor, action, fmt.Sprintf("%s's target is nowhere to be found", actor.Name)))
			continue
		}
		if target.Defeated() {
			tc.pushResult(noopResult(actor, action, fmt.Sprintf("%s's target is already down", actor.Name)))
			continue
		}
		if tc.tick.Stunned[actor.ID] {
			tc.pushResult(noopResult(actor, action, fmt.Sprintf("%s cannot move", actor.Name)))
			continue
		}
		if tc.tick.Confused[actor.ID] && e.chance(confuseFizzlePercent) {
			tc.pushResult(noopResult(actor, action, fmt.Sprintf("%s is too confused to act", actor.Name)))
			continue
		}
		if e.resolveAction(tc, actor, target, action) {
			// A side was wiped out mid-turn; remaining actions are dropped.
			break
		}
	}

	if !tc.battle.Finished {
		tc.finishIfDecided()
	}

	// The counter moves exactly once per call, finished or not.
	in.Battle.CurrentTurn++

	return tc.buildResult(turnNumber), nil
}

// resolveAction executes one actor's skill use and reports whether the
// battle finished as a result.
func (e *Engine) resolveAction(tc *turnContext, actor, target *game.Participant, a game.Action) bool {
	sk, ok := tc.in.Skills[a.SkillID]
	if !ok || sk == nil {
		tc.pushResult(noopResult(actor, a, fmt.Sprintf("%s fumbles an unknown technique", actor.Name)))
		return false
	}
	if actor.Owner.Kind == game.OwnerPlayer && !tc.in.Equipped[sk.ID] {
		tc.pushResult(noopResult(actor, a, fmt.Sprintf("%s has not equipped %s", actor.Name, sk.Name)))
		return false
	}

	targets := []*game.Participant{target}
	if sk.TargetAll {
		targets = tc.living(actor.Team.Opposing())
	}

	res := ActionResult{ActorID: actor.ID, TargetID: a.TargetID, SkillID: sk.ID, Team: actor.Team}
	finished := false
	for _, tgt := range targets {
		out := e.RollDamage(actor, tgt, sk, tc.tick.Blinded[actor.ID])
		res.Messages = append(res.Messages, out.Messages...)
		if !out.Hit {
			continue
		}
		res.Hit = true
		if out.Critical {
			res.Critical = true
		}
		if out.Damage > 0 {
			res.Damage += out.Damage
			tgt.CurrentHealth -= out.Damage
			if tgt.CurrentHealth < 0 {
				tgt.CurrentHealth = 0
			}
			if tgt.Defeated() {
				res.Messages = append(res.Messages, fmt.Sprintf("%s is defeated", tgt.Name))
			}
		}
		if out.Status != nil && !tgt.Defeated() {
			_, msg := ApplyStatus(tgt, *out.Status)
			res.Messages = append(res.Messages, msg)
		}
		if out.Buff != nil {
			if msg := ApplyBuff(actor, *out.Buff); msg != "" {
				res.Messages = append(res.Messages, msg)
			}
		}
		if out.Debuff != nil && !tgt.Defeated() {
			if msg := ApplyBuff(tgt, *out.Debuff); msg != "" {
				res.Messages = append(res.Messages, msg)
			}
		}
		if tgt.Defeated() && tc.teamDefeated(tgt.Team) {
			tc.finish(tgt.Team.Opposing(), actor.ID)
			finished = true
			break
		}
	}
	tc.pushResult(res)
	return finished
}

func (tc *turnContext) finish(winner game.Team, byParticipant uint) {
	tc.battle.Finished = true
	tc.battle.WinningTeam = winner
	tc.battle.WinningParticipantID = byParticipant
	tc.add(fmt.Sprintf("the %s side wins the battle", winner))
}

// finishIfDecided is the end-of-turn sweep. When both sides fell in the same
// turn (damage over time can do that) the player's collapse counts first, so
// the battle is a loss.
func (tc *turnContext) finishIfDecided() {
	switch {
	case tc.teamDefeated(game.TeamPlayer):
		tc.finish(game.TeamEnemy, 0)
	case tc.teamDefeated(game.TeamEnemy):
		tc.finish(game.TeamPlayer, 0)
	}
}

func (tc *turnContext) buildResult(turnNumber int) *TurnResult {
	res := &TurnResult{
		TurnNumber:       turnNumber,
		Finished:         tc.battle.Finished,
		WinningTeam:      tc.battle.WinningTeam,
		Messages:         tc.messages,
		Participants:     append([]game.Participant(nil), tc.battle.Participants...),
		ExpiredStatusIDs: tc.tick.ExpiredStatusIDs,
		ExpiredBuffIDs:   tc.tick.ExpiredBuffIDs,
	}
	for _, r := range tc.results {
		if r.Team == game.TeamPlayer {
			res.PlayerResults = append(res.PlayerResults, r)
		} else {
			res.EnemyResults = append(res.EnemyResults, r)
		}
	}
	return res
}

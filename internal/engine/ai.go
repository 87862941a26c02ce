package engine

import (
	"math"

	"github.com/PeuAlmeidaDev/mindforge-backend/internal/game"
)

const (
	aiBaseScore       = 50
	aiPowerScale      = 100
	bossMinDifficulty = 4
	leaderBiasPercent = 60
	blunderPercent    = 40
)

// fillEnemyActions synthesizes an action for every enemy participant that
// has none submitted. Enemies are visited in position order so the draw
// sequence is stable under a seeded source.
func (e *Engine) fillEnemyActions(tc *turnContext) {
	for _, enemy := range tc.living(game.TeamEnemy) {
		if _, ok := tc.actions[enemy.ID]; ok {
			continue
		}
		if action, ok := e.chooseEnemyAction(tc, enemy); ok {
			tc.actions[enemy.ID] = action
		}
	}
}

// chooseEnemyAction scores every (skill, living opponent) pair for one enemy
// and picks the best. Ties keep the first candidate seen, so loadout and
// position order decide between equals.
func (e *Engine) chooseEnemyAction(tc *turnContext, enemy *game.Participant) (game.Action, bool) {
	tpl := tc.in.Templates[enemy.ID]
	if tpl == nil || len(tpl.Skills) == 0 {
		return game.Action{}, false
	}
	opponents := tc.living(game.TeamPlayer)
	if len(opponents) == 0 {
		return game.Action{}, false
	}

	difficulty := enemyDifficulty(tpl, tc.in.UserLevel)
	pressing := tc.teamHealth(game.TeamEnemy) > tc.teamHealth(game.TeamPlayer)

	best := game.Action{}
	bestScore := math.MinInt
	for si := range tpl.Skills {
		sk := &tpl.Skills[si]
		for _, target := range opponents {
			score := e.scoreCandidate(sk, target, opponents, pressing, difficulty)
			if score > bestScore {
				bestScore = score
				best = game.Action{ActorID: enemy.ID, TargetID: target.ID, SkillID: sk.ID}
			}
		}
	}
	return best, true
}

func (e *Engine) scoreCandidate(sk *game.Skill, target *game.Participant, opponents []*game.Participant, pressing bool, difficulty int) int {
	score := aiBaseScore

	mult := Advantage(sk.Element, target.Element)
	if mult > MultiplierNeutral {
		score += 30
	} else if mult < MultiplierNeutral {
		score -= 20
	}

	powerBonus := sk.BasePower * 25 / aiPowerScale
	if powerBonus > 25 {
		powerBonus = 25
	}
	score += powerBonus

	score += sk.Accuracy * 15 / 100

	if sk.TargetAll && len(opponents) > 1 {
		score += 20
	}

	if sk.EffectType != game.EffectNone && pressing {
		score += 25
	}

	if target.MaxHealth > 0 {
		frac := float64(target.CurrentHealth) / float64(target.MaxHealth)
		if frac < 0.3 {
			score += 35
		} else if frac < 0.5 {
			score += 20
		}
	}

	if paralyzed(target) {
		if sk.EffectType.PreventsAction() {
			// Re-stunning a stunned target wastes the turn's best effect.
			score -= 30
		} else if sk.BasePower > 0 {
			score += 15
		}
	}

	// Jitter shrinks as the enemy gets smarter: [0,25] at difficulty 1 down
	// to [0,5] at difficulty 5.
	score += e.rolls.IntN(31 - 5*difficulty)

	if difficulty >= 4 && target.Position == 1 && e.chance(leaderBiasPercent) {
		score += 25
	}
	if difficulty <= 2 && e.chance(blunderPercent) {
		score -= 30
	}

	return score
}

func paralyzed(p *game.Participant) bool {
	st := p.ActiveStatus()
	return st != nil && st.Type.PreventsAction()
}

// enemyDifficulty grades how well one enemy plays: its rarity tier with
// bosses floored at 4, shifted one step per three levels of gap against the
// user, clamped to [1,5].
func enemyDifficulty(tpl *game.EnemyTemplate, userLevel int) int {
	d := tpl.Rarity.Tier()
	if tpl.Boss && d < bossMinDifficulty {
		d = bossMinDifficulty
	}
	gap := tpl.Level - userLevel
	if gap >= 3 {
		d++
	} else if gap <= -3 {
		d--
	}
	if d < 1 {
		d = 1
	}
	if d > 5 {
		d = 5
	}
	return d
}

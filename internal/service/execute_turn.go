package service

import (
	"context"
	"errors"
	"time"

	"github.com/PeuAlmeidaDev/mindforge-backend/internal/engine"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/game"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/storage"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrBattleNotFound   = errors.New("battle not found")
	ErrNotParticipant   = errors.New("battle belongs to another user")
	ErrBattleFinished   = errors.New("battle already finished")
	ErrNoActions        = errors.New("at least one action is required")
	ErrSkillNotFound    = errors.New("skill not found")
	ErrSkillNotEquipped = errors.New("skill not equipped")
	ErrTurnConflict     = errors.New("turn already resolved by a concurrent request")
)

// ExecuteTurn resolves one battle turn for the session user. All request
// validation happens before the turn counter moves, so a rejected submission
// never burns the turn; once the compare-and-set on the counter wins, this
// call owns the resolution and the loser of a concurrent race backs off with
// ErrTurnConflict without writing anything.
func ExecuteTurn(ctx context.Context, repo BattleRepo, eng *engine.Engine, user *game.User, code string, actions []game.Action) (*engine.TurnResult, error) {
	tracer := telemetry.Tracer("service")
	_, span := tracer.Start(ctx, "battle.turn")
	defer span.End()
	span.SetAttributes(
		attribute.String("battle.code", code),
		attribute.Int("battle.actions", len(actions)),
	)

	if len(actions) == 0 {
		return nil, ErrNoActions
	}

	b, err := repo.GetBattleByCode(code)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBattleNotFound
	}
	if b.UserID != user.ID {
		return nil, ErrNotParticipant
	}
	if b.Finished {
		return nil, ErrBattleFinished
	}

	in, err := buildTurnInput(repo, b, user, actions)
	if err != nil {
		return nil, err
	}

	if err := repo.AdvanceTurn(b.ID, b.CurrentTurn); err != nil {
		if errors.Is(err, storage.ErrStaleTurn) {
			return nil, ErrTurnConflict
		}
		return nil, err
	}

	res, err := eng.ResolveTurn(*in)
	if err != nil {
		return nil, err
	}
	if res.Finished {
		now := time.Now()
		b.EndedAt = &now
	}
	if err := repo.SaveTurnResults(b, res.ExpiredStatusIDs, res.ExpiredBuffIDs); err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("battle.turn", res.TurnNumber),
		attribute.Bool("battle.finished", res.Finished),
	)
	return res, nil
}

// buildTurnInput preloads everything the engine will touch: the submitted
// actions' skills, every enemy loadout, the user's equipped set and the
// template behind each enemy participant. Submissions naming an actor the
// user does not control, or a skill that is missing or unequipped, reject
// the whole turn here.
func buildTurnInput(repo BattleRepo, b *game.Battle, user *game.User, actions []game.Action) (*engine.TurnInput, error) {
	byID := make(map[uint]*game.Participant, len(b.Participants))
	for i := range b.Participants {
		byID[b.Participants[i].ID] = &b.Participants[i]
	}
	equipped := make(map[uint]bool, len(user.EquippedSkills))
	for _, sk := range user.EquippedSkills {
		equipped[sk.ID] = true
	}

	skillIDs := make([]uint, 0, len(actions))
	seen := make(map[uint]bool, len(actions))
	for _, a := range actions {
		actor, ok := byID[a.ActorID]
		if !ok || actor.Owner.Kind != game.OwnerPlayer || actor.Owner.UserID != user.ID {
			return nil, ErrNotParticipant
		}
		if !seen[a.SkillID] {
			seen[a.SkillID] = true
			skillIDs = append(skillIDs, a.SkillID)
		}
	}

	actionSkills, err := repo.GetSkillsByIDs(skillIDs)
	if err != nil {
		return nil, err
	}
	if len(actionSkills) != len(skillIDs) {
		return nil, ErrSkillNotFound
	}
	for _, a := range actions {
		if !equipped[a.SkillID] {
			return nil, ErrSkillNotEquipped
		}
	}

	enemyIDs := make([]uint, 0, len(b.Participants))
	seenTpl := make(map[uint]bool)
	for i := range b.Participants {
		p := &b.Participants[i]
		if p.Owner.Kind == game.OwnerEnemy && !seenTpl[p.Owner.EnemyID] {
			seenTpl[p.Owner.EnemyID] = true
			enemyIDs = append(enemyIDs, p.Owner.EnemyID)
		}
	}
	tpls, err := repo.GetEnemyTemplatesByIDs(enemyIDs)
	if err != nil {
		return nil, err
	}
	tplByID := make(map[uint]*game.EnemyTemplate, len(tpls))
	for i := range tpls {
		tplByID[tpls[i].ID] = &tpls[i]
	}

	skills := make(map[uint]*game.Skill, len(actionSkills))
	for i := range actionSkills {
		skills[actionSkills[i].ID] = &actionSkills[i]
	}
	templates := make(map[uint]*game.EnemyTemplate, len(b.Participants))
	for i := range b.Participants {
		p := &b.Participants[i]
		if p.Owner.Kind != game.OwnerEnemy {
			continue
		}
		tpl := tplByID[p.Owner.EnemyID]
		if tpl == nil {
			continue
		}
		templates[p.ID] = tpl
		for j := range tpl.Skills {
			skills[tpl.Skills[j].ID] = &tpl.Skills[j]
		}
	}

	return &engine.TurnInput{
		Battle:    b,
		Actions:   actions,
		Skills:    skills,
		Equipped:  equipped,
		Templates: templates,
		UserLevel: user.Level,
	}, nil
}

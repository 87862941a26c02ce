package engine

import (
	"testing"

	"github.com/PeuAlmeidaDev/mindforge-backend/internal/game"
)

func aiInput(battle *game.Battle, templates map[uint]*game.EnemyTemplate) *TurnInput {
	return &TurnInput{Battle: battle, Templates: templates, UserLevel: 1}
}

func TestEnemyDifficulty(t *testing.T) {
	cases := []struct {
		name      string
		rarity    game.Rarity
		boss      bool
		level     int
		userLevel int
		want      int
	}{
		{"common peer", game.RarityCommon, false, 5, 5, 1},
		{"legendary peer", game.RarityLegendary, false, 5, 5, 5},
		{"common boss floors at four", game.RarityCommon, true, 5, 5, 4},
		{"rare three levels up", game.RarityRare, false, 8, 5, 4},
		{"epic three levels down", game.RarityEpic, false, 2, 5, 3},
		{"legendary cannot exceed five", game.RarityLegendary, false, 9, 5, 5},
		{"common cannot drop below one", game.RarityCommon, false, 1, 5, 1},
	}
	for _, tc := range cases {
		tpl := &game.EnemyTemplate{Rarity: tc.rarity, Boss: tc.boss, Level: tc.level}
		if got := enemyDifficulty(tpl, tc.userLevel); got != tc.want {
			t.Fatalf("%s: expected difficulty %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestChooseEnemyAction_PrefersElementalAdvantage(t *testing.T) {
	player := testParticipant(1, game.TeamPlayer, 1, game.ElementFire, 100, evenStats(10))
	enemy := testParticipant(2, game.TeamEnemy, 1, game.ElementWater, 100, evenStats(10))
	resisted := testSkill(10, game.ElementNature, 40, 100)
	favored := testSkill(11, game.ElementWater, 40, 100)
	tpl := testTemplate(1, game.RarityCommon, resisted, favored)

	e := NewWithRoller(&scriptedRoller{
		t:    t,
		vals: []float64{99, 99},
		ints: []int{0, 0},
	})
	tc := newTurnContext(e, aiInput(testBattle(player, enemy), map[uint]*game.EnemyTemplate{2: tpl}))

	action, ok := e.chooseEnemyAction(tc, &tc.battle.Participants[1])
	if !ok {
		t.Fatalf("expected an action")
	}
	if action.SkillID != 11 {
		t.Fatalf("expected the water skill against a fire target, got skill %d", action.SkillID)
	}
	if action.TargetID != 1 {
		t.Fatalf("expected target 1, got %d", action.TargetID)
	}
}

func TestChooseEnemyAction_FinishesWoundedTarget(t *testing.T) {
	healthy := testParticipant(1, game.TeamPlayer, 1, game.ElementFire, 100, evenStats(10))
	wounded := testParticipant(2, game.TeamPlayer, 2, game.ElementFire, 100, evenStats(10))
	wounded.CurrentHealth = 20
	enemy := testParticipant(3, game.TeamEnemy, 1, game.ElementThunder, 100, evenStats(10))
	sk := testSkill(10, game.ElementThunder, 40, 100)
	tpl := testTemplate(1, game.RarityCommon, sk)

	e := NewWithRoller(&scriptedRoller{
		t:    t,
		vals: []float64{99, 99},
		ints: []int{0, 0},
	})
	tc := newTurnContext(e, aiInput(testBattle(healthy, wounded, enemy), map[uint]*game.EnemyTemplate{3: tpl}))

	action, ok := e.chooseEnemyAction(tc, &tc.battle.Participants[2])
	if !ok {
		t.Fatalf("expected an action")
	}
	if action.TargetID != 2 {
		t.Fatalf("expected the wounded target, got %d", action.TargetID)
	}
}

func TestChooseEnemyAction_AvoidsRestunning(t *testing.T) {
	player := testParticipant(1, game.TeamPlayer, 1, game.ElementFire, 100, evenStats(10))
	player.StatusEffects = []game.StatusEffect{{Type: game.EffectStun, RemainingTurns: 2}}
	enemy := testParticipant(2, game.TeamEnemy, 1, game.ElementThunder, 100, evenStats(10))
	stunner := testSkill(10, game.ElementThunder, 40, 100)
	stunner.EffectType = game.EffectStun
	stunner.EffectChance = 50
	plain := testSkill(11, game.ElementThunder, 40, 100)
	tpl := testTemplate(1, game.RarityCommon, stunner, plain)

	e := NewWithRoller(&scriptedRoller{
		t:    t,
		vals: []float64{99, 99},
		ints: []int{0, 0},
	})
	tc := newTurnContext(e, aiInput(testBattle(player, enemy), map[uint]*game.EnemyTemplate{2: tpl}))

	action, ok := e.chooseEnemyAction(tc, &tc.battle.Participants[1])
	if !ok {
		t.Fatalf("expected an action")
	}
	if action.SkillID != 11 {
		t.Fatalf("expected the plain hit against a stunned target, got skill %d", action.SkillID)
	}
}

func TestChooseEnemyAction_StatusPressWhenAhead(t *testing.T) {
	player := testParticipant(1, game.TeamPlayer, 1, game.ElementFire, 100, evenStats(10))
	player.CurrentHealth = 60
	enemy := testParticipant(2, game.TeamEnemy, 1, game.ElementThunder, 200, evenStats(10))
	searing := testSkill(10, game.ElementThunder, 30, 100)
	searing.EffectType = game.EffectBurn
	searing.EffectChance = 40
	plain := testSkill(11, game.ElementThunder, 30, 100)
	tpl := testTemplate(1, game.RarityCommon, searing, plain)

	e := NewWithRoller(&scriptedRoller{
		t:    t,
		vals: []float64{99, 99},
		ints: []int{0, 0},
	})
	tc := newTurnContext(e, aiInput(testBattle(player, enemy), map[uint]*game.EnemyTemplate{2: tpl}))

	action, ok := e.chooseEnemyAction(tc, &tc.battle.Participants[1])
	if !ok {
		t.Fatalf("expected an action")
	}
	if action.SkillID != 10 {
		t.Fatalf("expected the status skill while ahead on health, got skill %d", action.SkillID)
	}
}

func TestChooseEnemyAction_LeaderBiasAtHighDifficulty(t *testing.T) {
	leader := testParticipant(1, game.TeamPlayer, 1, game.ElementFire, 100, evenStats(10))
	second := testParticipant(2, game.TeamPlayer, 2, game.ElementFire, 100, evenStats(10))
	enemy := testParticipant(3, game.TeamEnemy, 1, game.ElementThunder, 100, evenStats(10))
	sk := testSkill(10, game.ElementThunder, 40, 100)
	tpl := testTemplate(1, game.RarityEpic, sk)

	// Difficulty 4: jitter is IntN(11) and only the leader candidate draws
	// the bias roll, which lands.
	e := NewWithRoller(&scriptedRoller{
		t:    t,
		vals: []float64{0.0},
		ints: []int{0, 0},
	})
	tc := newTurnContext(e, aiInput(testBattle(leader, second, enemy), map[uint]*game.EnemyTemplate{3: tpl}))

	action, ok := e.chooseEnemyAction(tc, &tc.battle.Participants[2])
	if !ok {
		t.Fatalf("expected an action")
	}
	if action.TargetID != 1 {
		t.Fatalf("expected the leader targeted at high difficulty, got %d", action.TargetID)
	}
}

func TestChooseEnemyAction_BlunderForgetsTheBetterPick(t *testing.T) {
	player := testParticipant(1, game.TeamPlayer, 1, game.ElementFire, 100, evenStats(10))
	enemy := testParticipant(2, game.TeamEnemy, 1, game.ElementThunder, 100, evenStats(10))
	strong := testSkill(10, game.ElementThunder, 100, 100)
	weak := testSkill(11, game.ElementThunder, 0, 100)
	tpl := testTemplate(1, game.RarityCommon, strong, weak)

	// The strong candidate blunders (roll 10 < 40), the weak one does not:
	// 50+25+15-30 = 60 against 50+0+15 = 65.
	e := NewWithRoller(&scriptedRoller{
		t:    t,
		vals: []float64{10, 99},
		ints: []int{0, 0},
	})
	tc := newTurnContext(e, aiInput(testBattle(player, enemy), map[uint]*game.EnemyTemplate{2: tpl}))

	action, ok := e.chooseEnemyAction(tc, &tc.battle.Participants[1])
	if !ok {
		t.Fatalf("expected an action")
	}
	if action.SkillID != 11 {
		t.Fatalf("expected the blunder to flip the choice, got skill %d", action.SkillID)
	}
}

func TestChooseEnemyAction_NoLoadoutNoAction(t *testing.T) {
	player := testParticipant(1, game.TeamPlayer, 1, game.ElementFire, 100, evenStats(10))
	enemy := testParticipant(2, game.TeamEnemy, 1, game.ElementThunder, 100, evenStats(10))

	e := NewWithRoller(flatRoller{})
	tc := newTurnContext(e, aiInput(testBattle(player, enemy), map[uint]*game.EnemyTemplate{}))

	if _, ok := e.chooseEnemyAction(tc, &tc.battle.Participants[1]); ok {
		t.Fatalf("an enemy without a template must stay idle")
	}

	tc = newTurnContext(e, aiInput(testBattle(player, enemy), map[uint]*game.EnemyTemplate{2: testTemplate(1, game.RarityCommon)}))
	if _, ok := e.chooseEnemyAction(tc, &tc.battle.Participants[1]); ok {
		t.Fatalf("an enemy with an empty loadout must stay idle")
	}
}

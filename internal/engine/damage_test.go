package engine

import (
	"testing"

	"github.com/PeuAlmeidaDev/mindforge-backend/internal/game"
)

func TestRollDamage_StabAndAdvantage(t *testing.T) {
	// (20/10)*50 = 100 base, ×1.5 STAB, ×1.5 advantage, no crit, full
	// variance → 225.
	e := NewWithRoller(&scriptedRoller{t: t, vals: []float64{99, 1.0}})
	attacker := testParticipant(1, game.TeamPlayer, 1, game.ElementFire, 100, game.Stats{PhysicalAttack: 20})
	defender := testParticipant(2, game.TeamEnemy, 1, game.ElementNature, 100, game.Stats{PhysicalDefense: 10})
	sk := testSkill(7, game.ElementFire, 50, 100)

	out := e.RollDamage(&attacker, &defender, sk, false)

	if !out.Hit || out.Critical {
		t.Fatalf("expected plain hit, got hit=%v crit=%v", out.Hit, out.Critical)
	}
	if out.Damage != 225 {
		t.Fatalf("expected 225 damage, got %d", out.Damage)
	}
}

func TestRollDamage_ImmuneForcesZero(t *testing.T) {
	// Earth ignores thunder entirely; even a forced crit yields zero.
	e := NewWithRoller(&scriptedRoller{t: t, vals: []float64{0, 0.5}})
	attacker := testParticipant(1, game.TeamPlayer, 1, game.ElementThunder, 100, game.Stats{PhysicalAttack: 80})
	defender := testParticipant(2, game.TeamEnemy, 1, game.ElementEarth, 100, game.Stats{PhysicalDefense: 5})
	sk := testSkill(7, game.ElementThunder, 120, 100)
	sk.EffectType = game.EffectStun
	sk.EffectChance = 100
	sk.EffectTurns = 2
	sk.BuffAttribute = game.AttrSpeed
	sk.BuffValue = 5

	out := e.RollDamage(&attacker, &defender, sk, false)

	if !out.Hit || !out.Immune {
		t.Fatalf("expected immune hit, got hit=%v immune=%v", out.Hit, out.Immune)
	}
	if out.Damage != 0 {
		t.Fatalf("expected 0 damage against immune defender, got %d", out.Damage)
	}
	if out.Status != nil || out.Buff != nil || out.Debuff != nil {
		t.Fatalf("expected no proposals on an immune hit")
	}
}

func TestRollDamage_MissStopsTheSequence(t *testing.T) {
	// A 75 roll against 50 accuracy misses; the script holds no further
	// draws, so any crit/variance draw would fail the test.
	e := NewWithRoller(&scriptedRoller{t: t, vals: []float64{75}})
	attacker := testParticipant(1, game.TeamPlayer, 1, game.ElementFire, 100, evenStats(20))
	defender := testParticipant(2, game.TeamEnemy, 1, game.ElementWater, 100, evenStats(20))
	sk := testSkill(7, game.ElementFire, 50, 50)

	out := e.RollDamage(&attacker, &defender, sk, false)

	if out.Hit || out.Damage != 0 || out.Status != nil {
		t.Fatalf("expected clean miss, got %+v", out)
	}
}

func TestRollDamage_FullAccuracySkipsTheRoll(t *testing.T) {
	// Accuracy 100 must not consume an accuracy draw: the first scripted
	// value is the crit roll.
	e := NewWithRoller(&scriptedRoller{t: t, vals: []float64{99, 0.0}})
	attacker := testParticipant(1, game.TeamPlayer, 1, game.ElementFire, 100, game.Stats{PhysicalAttack: 20})
	defender := testParticipant(2, game.TeamEnemy, 1, game.ElementWater, 100, game.Stats{PhysicalDefense: 10})
	sk := testSkill(7, game.ElementLight, 50, 100)

	out := e.RollDamage(&attacker, &defender, sk, false)

	if !out.Hit {
		t.Fatalf("expected hit")
	}
	// (20/10)*50 = 100, neutral element, min variance → 85.
	if out.Damage != 85 {
		t.Fatalf("expected 85 damage, got %d", out.Damage)
	}
}

func TestRollDamage_MinimumOneDamage(t *testing.T) {
	e := NewWithRoller(&scriptedRoller{t: t, vals: []float64{99, 0.0}})
	attacker := testParticipant(1, game.TeamPlayer, 1, game.ElementFire, 100, game.Stats{PhysicalAttack: 1})
	defender := testParticipant(2, game.TeamEnemy, 1, game.ElementWater, 100, game.Stats{PhysicalDefense: 100})
	sk := testSkill(7, game.ElementLight, 1, 100)

	out := e.RollDamage(&attacker, &defender, sk, false)

	if out.Damage != 1 {
		t.Fatalf("expected floor of 1 damage, got %d", out.Damage)
	}
}

func TestRollDamage_CritMultiplier(t *testing.T) {
	e := NewWithRoller(&scriptedRoller{t: t, vals: []float64{0, 1.0}})
	attacker := testParticipant(1, game.TeamPlayer, 1, game.ElementFire, 100, game.Stats{PhysicalAttack: 20})
	defender := testParticipant(2, game.TeamEnemy, 1, game.ElementWater, 100, game.Stats{PhysicalDefense: 10})
	sk := testSkill(7, game.ElementLight, 50, 100)

	out := e.RollDamage(&attacker, &defender, sk, false)

	if !out.Critical {
		t.Fatalf("expected critical hit")
	}
	if out.Damage != 150 {
		t.Fatalf("expected 150 damage, got %d", out.Damage)
	}
}

func TestRollDamage_BlindHalvesAccuracy(t *testing.T) {
	// Blinded, a 100-accuracy skill rolls against 50: a 60 roll misses.
	e := NewWithRoller(&scriptedRoller{t: t, vals: []float64{60}})
	attacker := testParticipant(1, game.TeamPlayer, 1, game.ElementFire, 100, evenStats(20))
	defender := testParticipant(2, game.TeamEnemy, 1, game.ElementWater, 100, evenStats(20))
	sk := testSkill(7, game.ElementFire, 50, 100)

	out := e.RollDamage(&attacker, &defender, sk, true)

	if out.Hit {
		t.Fatalf("expected blinded attacker to miss")
	}
}

func TestRollDamage_StatusProposal(t *testing.T) {
	// Draw order after the hit: crit, variance, status chance, duration.
	e := NewWithRoller(&scriptedRoller{t: t, vals: []float64{99, 0.0, 10}, ints: []int{2}})
	attacker := testParticipant(1, game.TeamPlayer, 1, game.ElementWater, 100, game.Stats{PhysicalAttack: 20})
	defender := testParticipant(2, game.TeamEnemy, 1, game.ElementFire, 100, game.Stats{PhysicalDefense: 10})
	sk := testSkill(7, game.ElementLight, 50, 100)
	sk.EffectType = game.EffectPoison
	sk.EffectChance = 50
	sk.EffectTurns = 3

	out := e.RollDamage(&attacker, &defender, sk, false)

	if out.Status == nil {
		t.Fatalf("expected a status proposal")
	}
	if out.Status.Type != game.EffectPoison {
		t.Fatalf("expected poison, got %s", out.Status.Type)
	}
	if out.Status.Turns != 3 {
		t.Fatalf("expected 3 turns from the duration draw, got %d", out.Status.Turns)
	}
	// 85 damage → poison magnitude max(4, floor(85×0.12)) = 10.
	if out.Status.Magnitude != 10 {
		t.Fatalf("expected poison magnitude 10, got %d", out.Status.Magnitude)
	}
}

func TestRollDamage_StatusMagnitudeFloors(t *testing.T) {
	cases := []struct {
		effect game.EffectType
		damage int
		want   int
	}{
		{game.EffectBurn, 100, 6},
		{game.EffectBurn, 10, 0},
		{game.EffectPoison, 10, 4},
		{game.EffectPoison, 100, 12},
		{game.EffectBleed, 10, 7},
		{game.EffectBleed, 100, 18},
		{game.EffectStun, 100, 0},
	}
	for _, c := range cases {
		if got := statusMagnitude(c.effect, c.damage); got != c.want {
			t.Fatalf("magnitude(%s, %d) = %d, want %d", c.effect, c.damage, got, c.want)
		}
	}
}

func TestRollDamage_BuffAndDebuffAlwaysProposed(t *testing.T) {
	e := NewWithRoller(&scriptedRoller{t: t, vals: []float64{99, 0.0}})
	attacker := testParticipant(1, game.TeamPlayer, 1, game.ElementFire, 100, game.Stats{PhysicalAttack: 20})
	defender := testParticipant(2, game.TeamEnemy, 1, game.ElementWater, 100, game.Stats{PhysicalDefense: 10})
	sk := testSkill(7, game.ElementLight, 50, 100)
	sk.BuffAttribute = game.AttrSpeed
	sk.BuffValue = 5
	sk.DebuffAttribute = game.AttrPhysicalDefense
	sk.DebuffValue = 3

	out := e.RollDamage(&attacker, &defender, sk, false)

	if out.Buff == nil || out.Buff.Attribute != game.AttrSpeed || out.Buff.Value != 5 || out.Buff.Turns != 3 {
		t.Fatalf("unexpected buff proposal: %+v", out.Buff)
	}
	if out.Debuff == nil || out.Debuff.Attribute != game.AttrPhysicalDefense || out.Debuff.Value != -3 || out.Debuff.Turns != 3 {
		t.Fatalf("unexpected debuff proposal: %+v", out.Debuff)
	}
}

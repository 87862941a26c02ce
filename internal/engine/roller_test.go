package engine

import (
	"testing"

	"github.com/PeuAlmeidaDev/mindforge-backend/internal/game"
)

// scriptedRoller feeds predetermined draws to the engine. Float draws
// (Roll100 and Float) consume from vals in order, integer draws from ints.
// Running past a script fails the test.
type scriptedRoller struct {
	t    *testing.T
	vals []float64
	ints []int
}

func (r *scriptedRoller) nextVal() float64 {
	if len(r.vals) == 0 {
		r.t.Fatalf("scripted roller ran out of float draws")
	}
	v := r.vals[0]
	r.vals = r.vals[1:]
	return v
}

func (r *scriptedRoller) Roll100() float64 { return r.nextVal() }
func (r *scriptedRoller) Float() float64   { return r.nextVal() }

func (r *scriptedRoller) IntN(n int) int {
	if len(r.ints) == 0 {
		r.t.Fatalf("scripted roller ran out of int draws")
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if n > 0 && v >= n {
		v = n - 1
	}
	return v
}

// flatRoller never crits, never procs statuses and always draws minimum
// variance and zero jitter.
type flatRoller struct{}

func (flatRoller) Roll100() float64 { return 99 }
func (flatRoller) Float() float64   { return 0 }
func (flatRoller) IntN(n int) int   { return 0 }

func testParticipant(id uint, team game.Team, pos int, el game.Element, hp int, stats game.Stats) game.Participant {
	p := game.Participant{
		Team:          team,
		Position:      pos,
		Name:          string(team) + "-" + string(rune('0'+pos)),
		Element:       el,
		CurrentHealth: hp,
		MaxHealth:     hp,
		Stats:         stats,
	}
	p.ID = id
	if team == game.TeamPlayer {
		p.Owner = game.PlayerOwner(1)
	} else {
		p.Owner = game.EnemyOwner(uint(pos))
	}
	return p
}

func evenStats(v int) game.Stats {
	return game.Stats{PhysicalAttack: v, SpecialAttack: v, PhysicalDefense: v, SpecialDefense: v, Speed: v}
}

func testSkill(id uint, el game.Element, power, accuracy int) *game.Skill {
	sk := &game.Skill{
		Name:      "skill-" + string(rune('0'+id)),
		Element:   el,
		Category:  game.CategoryPhysical,
		BasePower: power,
		Accuracy:  accuracy,
	}
	sk.ID = id
	return sk
}

package engine

import (
	"math/rand"
	"sync"

	"github.com/PeuAlmeidaDev/mindforge-backend/internal/game"
)

// Roller is the random source the engine draws from. Production wraps one
// process-wide rand.Rand behind a mutex; tests substitute scripted rolls.
type Roller interface {
	// Roll100 draws a uniform value in [0,100).
	Roll100() float64
	// Float draws a uniform value in [0,1).
	Float() float64
	// IntN draws a uniform integer in [0,n).
	IntN(n int) int
}

type lockedRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (r *lockedRoller) Roll100() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64() * 100
}

func (r *lockedRoller) Float() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

func (r *lockedRoller) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n <= 0 {
		return 0
	}
	return r.rng.Intn(n)
}

// Engine resolves battle turns. It holds no battle state of its own: every
// call works on the loaded records the caller passes in, so the only shared
// resource is the random source.
type Engine struct {
	rolls Roller
}

// NewRoller wraps a seedable source in a mutex so it can be shared between
// the engine and other drawers, like the battle spawner.
func NewRoller(rng *rand.Rand) Roller {
	return &lockedRoller{rng: rng}
}

// New builds an engine over a seedable random source. rand.Rand is not safe
// for concurrent use, so draws are serialized; turns for different battles
// may interleave draws, but the per-action draw sequence is fixed.
func New(rng *rand.Rand) *Engine {
	return &Engine{rolls: NewRoller(rng)}
}

// NewWithRoller is the test seam: it accepts a scripted source.
func NewWithRoller(r Roller) *Engine {
	return &Engine{rolls: r}
}

// chance reports whether an event with the given percent probability
// occurred, consuming exactly one draw.
func (e *Engine) chance(pct int) bool {
	return e.rolls.Roll100() < float64(pct)
}

// TurnInput bundles everything one turn resolution needs, preloaded by the
// caller so the engine itself never touches storage.
type TurnInput struct {
	Battle  *game.Battle
	Actions []game.Action
	// Skills indexes every skill this turn may reference: the submitted
	// actions' skills plus the loadouts of all enemy participants.
	Skills map[uint]*game.Skill
	// Equipped is the skill-id set currently equipped by the battle's user.
	Equipped map[uint]bool
	// Templates maps enemy participant ids to the template they were spawned
	// from (rarity, boss flag, level and loadout drive the AI).
	Templates map[uint]*game.EnemyTemplate
	// UserLevel is the battle owner's level, used for AI difficulty.
	UserLevel int
}

// ActionResult is the outcome of one actor's action within a turn.
type ActionResult struct {
	ActorID  uint      `json:"actor_id"`
	TargetID uint      `json:"target_id,omitempty"`
	SkillID  uint      `json:"skill_id,omitempty"`
	Team     game.Team `json:"team"`
	Hit      bool      `json:"hit"`
	Critical bool      `json:"critical"`
	Damage   int       `json:"damage"`
	Messages []string  `json:"messages"`
}

// TurnResult is what a resolved turn reports back to the HTTP layer.
type TurnResult struct {
	TurnNumber    int                `json:"turn_number"`
	Finished      bool               `json:"finished"`
	WinningTeam   game.Team          `json:"winning_team,omitempty"`
	PlayerResults []ActionResult     `json:"player_results"`
	EnemyResults  []ActionResult     `json:"enemy_results"`
	Participants  []game.Participant `json:"participants"`
	Messages      []string           `json:"messages"`

	// ExpiredStatusIDs and ExpiredBuffIDs point at the persisted effect rows
	// that ran out during this turn's tick; the store deletes them when it
	// saves the turn.
	ExpiredStatusIDs []uint `json:"-"`
	ExpiredBuffIDs   []uint `json:"-"`
}

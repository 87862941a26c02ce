package game

import (
	"encoding/json"
	"fmt"
)

// Attribute identifies one of the five combat stats. A closed enum plus the
// accessor table below keeps stat dispatch exhaustive instead of switching on
// attribute names as strings.
type Attribute int

const (
	AttrPhysicalAttack Attribute = iota
	AttrSpecialAttack
	AttrPhysicalDefense
	AttrSpecialDefense
	AttrSpeed
)

// Stats is the five-stat combat block shared by user profiles, enemy
// templates and battle participants.
type Stats struct {
	PhysicalAttack  int `json:"physical_attack"`
	SpecialAttack   int `json:"special_attack"`
	PhysicalDefense int `json:"physical_defense"`
	SpecialDefense  int `json:"special_defense"`
	Speed           int `json:"speed"`
}

type statAccess struct {
	name string
	get  func(*Stats) int
	add  func(*Stats, int)
}

var statTable = [...]statAccess{
	AttrPhysicalAttack: {
		name: "physical_attack",
		get:  func(s *Stats) int { return s.PhysicalAttack },
		add:  func(s *Stats, d int) { s.PhysicalAttack += d },
	},
	AttrSpecialAttack: {
		name: "special_attack",
		get:  func(s *Stats) int { return s.SpecialAttack },
		add:  func(s *Stats, d int) { s.SpecialAttack += d },
	},
	AttrPhysicalDefense: {
		name: "physical_defense",
		get:  func(s *Stats) int { return s.PhysicalDefense },
		add:  func(s *Stats, d int) { s.PhysicalDefense += d },
	},
	AttrSpecialDefense: {
		name: "special_defense",
		get:  func(s *Stats) int { return s.SpecialDefense },
		add:  func(s *Stats, d int) { s.SpecialDefense += d },
	},
	AttrSpeed: {
		name: "speed",
		get:  func(s *Stats) int { return s.Speed },
		add:  func(s *Stats, d int) { s.Speed += d },
	},
}

// Attributes lists the five combat attributes in canonical order.
func Attributes() []Attribute {
	return []Attribute{AttrPhysicalAttack, AttrSpecialAttack, AttrPhysicalDefense, AttrSpecialDefense, AttrSpeed}
}

func (a Attribute) Valid() bool { return a >= 0 && int(a) < len(statTable) }

func (a Attribute) String() string {
	if !a.Valid() {
		return fmt.Sprintf("attribute(%d)", int(a))
	}
	return statTable[a].name
}

// ParseAttribute resolves an attribute name as it appears in config files and
// API payloads.
func ParseAttribute(name string) (Attribute, error) {
	for i := range statTable {
		if statTable[i].name == name {
			return Attribute(i), nil
		}
	}
	return 0, fmt.Errorf("unknown attribute %q", name)
}

// Get reads one stat through the accessor table.
func (s *Stats) Get(a Attribute) int {
	if !a.Valid() {
		return 0
	}
	return statTable[a].get(s)
}

// Add applies a signed delta to one stat.
func (s *Stats) Add(a Attribute, delta int) {
	if !a.Valid() {
		return
	}
	statTable[a].add(s, delta)
}

// Attributes serialize by name in JSON so API payloads stay readable while
// the database keeps the compact numeric form.
func (a Attribute) MarshalJSON() ([]byte, error) { return json.Marshal(a.String()) }

func (a *Attribute) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	parsed, err := ParseAttribute(name)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

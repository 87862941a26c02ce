package engine

import "math"

const pointsPerLevel = 3

// NextLevelRequirement is the experience needed to leave the given level:
// floor(100 × 1.5^(level−1)).
func NextLevelRequirement(level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(100 * math.Pow(1.5, float64(level-1))))
}

// BattleExperience computes the experience a won battle yields:
// floor(20 × avg(enemy levels) × m), where m grows with the size of the
// opposition (1.0 for a single enemy, 1.25 for two, 1.5 for three or more).
func BattleExperience(enemyLevels []int) int {
	if len(enemyLevels) == 0 {
		return 0
	}
	sum := 0
	for _, l := range enemyLevels {
		sum += l
	}
	avg := float64(sum) / float64(len(enemyLevels))

	mult := 1.0
	switch {
	case len(enemyLevels) >= 3:
		mult = 1.5
	case len(enemyLevels) == 2:
		mult = 1.25
	}
	return int(math.Floor(20 * avg * mult))
}

// Progress is the outcome of folding earned experience into a user's level.
type Progress struct {
	Level        int
	Experience   int
	LevelsGained int
	PointsGained int
}

// ApplyExperience runs the level-up loop: while the accumulated experience
// covers the next level's requirement, subtract it, raise the level and
// grant attribute points.
func ApplyExperience(level, experience, gained int) Progress {
	if level < 1 {
		level = 1
	}
	xp := experience + gained
	levels := 0
	for xp >= NextLevelRequirement(level) {
		xp -= NextLevelRequirement(level)
		level++
		levels++
	}
	return Progress{
		Level:        level,
		Experience:   xp,
		LevelsGained: levels,
		PointsGained: levels * pointsPerLevel,
	}
}

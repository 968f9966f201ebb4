package risk

import (
	dErrors "aegis/pkg/domain-errors"
)

// Level is the safety classification scale shared by assessments, violation
// severities and campaign verdicts.
type Level string

const (
	LevelLow      Level = "low"
	LevelMedium   Level = "medium"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

// Rank orders levels for maximum calculations: Low < Medium < High < Critical.
func (l Level) Rank() int {
	switch l {
	case LevelLow:
		return 0
	case LevelMedium:
		return 1
	case LevelHigh:
		return 2
	case LevelCritical:
		return 3
	default:
		return -1
	}
}

// IsValid checks if the level is one of the supported enum values.
func (l Level) IsValid() bool {
	return l.Rank() >= 0
}

// Max returns the higher of two levels.
func Max(a, b Level) Level {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// ParseLevel validates and parses a level string.
//
// Usage: call at trust boundaries for external input.
func ParseLevel(s string) (Level, error) {
	l := Level(s)
	if !l.IsValid() {
		return "", dErrors.New(dErrors.CodeBadRequest, "unsupported level: must be low, medium, high or critical")
	}
	return l, nil
}

package lotto

import (
	"errors"
	"math"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Number range and game size for Lotto 6/45.
const (
	MinNumber         = 1
	MaxNumber         = 45
	MaxNumbersPerGame = 6

	// SemiAutoFixedNumbers is how many numbers the player fixes in
	// semi-automatic mode; the engine draws the rest.
	SemiAutoFixedNumbers = 3
)

var (
	// ErrUnknownMode indicates a selection mode outside the known set.
	ErrUnknownMode = errors.New("unknown selection mode")

	// ErrNumberCountMismatch indicates the fixed numbers do not match the mode.
	ErrNumberCountMismatch = errors.New("number count does not match selection mode")

	// ErrTooManyNumbers indicates more than six numbers in one game.
	ErrTooManyNumbers = errors.New("a game holds at most 6 numbers")

	// ErrNumberOutOfRange indicates a number outside 1-45.
	ErrNumberOutOfRange = errors.New("lotto numbers must be between 1 and 45")

	// ErrDuplicateNumber indicates a repeated number within one game.
	ErrDuplicateNumber = errors.New("lotto numbers must not repeat")
)

// SelectionMode identifies how the numbers for a single game are chosen.
type SelectionMode string

// Known selection modes.
const (
	ModeAuto          SelectionMode = "auto"
	ModeManual        SelectionMode = "manual"
	ModeSemiAuto      SelectionMode = "semi_auto"
	ModeAIRecommended SelectionMode = "ai_recommended"
	ModeStatistical   SelectionMode = "statistical"
)

// Modes lists the valid selection modes.
func Modes() []SelectionMode {
	return []SelectionMode{ModeAuto, ModeManual, ModeSemiAuto, ModeAIRecommended, ModeStatistical}
}

// ModeNames lists the valid selection modes as strings for help text
// and shell completion.
func ModeNames() []string {
	modes := Modes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return names
}

func (m SelectionMode) String() string {
	return string(m)
}

// Valid reports whether the mode is one of the known selection modes.
func (m SelectionMode) Valid() bool {
	switch m {
	case ModeAuto, ModeManual, ModeSemiAuto, ModeAIRecommended, ModeStatistical:
		return true
	}
	return false
}

// RequiredNumbers returns how many fixed numbers the mode expects.
// exact is false for modes where the engine itself picks a variable
// amount and any partial selection is accepted.
func (m SelectionMode) RequiredNumbers() (count int, exact bool) {
	switch m {
	case ModeAuto:
		return 0, true
	case ModeManual:
		return MaxNumbersPerGame, true
	case ModeSemiAuto:
		return SemiAutoFixedNumbers, true
	default:
		return 0, false
	}
}

// ParseSelectionMode normalizes and validates a mode string.
func ParseSelectionMode(s string) (SelectionMode, error) {
	mode := SelectionMode(strings.ToLower(strings.TrimSpace(s)))
	if !mode.Valid() {
		return "", ErrUnknownMode
	}
	return mode, nil
}

// MaxTypoDistance is the maximum Levenshtein distance to consider a suggestion.
const MaxTypoDistance = 2

// SuggestMode finds the closest valid selection mode to the input using
// Levenshtein distance. Returns empty string if nothing is close enough.
func SuggestMode(input string) SelectionMode {
	input = strings.ToLower(strings.TrimSpace(input))

	minDist := math.MaxInt
	var suggestion SelectionMode

	for _, m := range Modes() {
		dist := levenshtein.ComputeDistance(input, string(m))
		if dist < minDist {
			minDist = dist
			suggestion = m
		}
		// Early exit for exact match
		if dist == 0 {
			return m
		}
	}

	if minDist <= MaxTypoDistance {
		return suggestion
	}
	return ""
}

// Game is a single lotto entry: the selection mode plus any fixed numbers.
type Game struct {
	Mode    SelectionMode `json:"type"`
	Numbers []int         `json:"numbers"`
}

// AutoGame returns a fully automatic game entry.
func AutoGame() Game {
	return Game{Mode: ModeAuto, Numbers: []int{}}
}

// Validate checks the mode, the number range, and the cardinality rules.
func (g Game) Validate() error {
	if !g.Mode.Valid() {
		return ErrUnknownMode
	}

	want, exact := g.Mode.RequiredNumbers()
	if exact && len(g.Numbers) != want {
		return ErrNumberCountMismatch
	}
	if !exact && len(g.Numbers) > MaxNumbersPerGame {
		return ErrTooManyNumbers
	}

	seen := make(map[int]struct{}, len(g.Numbers))
	for _, n := range g.Numbers {
		if n < MinNumber || n > MaxNumber {
			return ErrNumberOutOfRange
		}
		if _, dup := seen[n]; dup {
			return ErrDuplicateNumber
		}
		seen[n] = struct{}{}
	}
	return nil
}

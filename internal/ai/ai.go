// Package ai decides what a computer-controlled side does each frame.
//
// A Strategy only reads the match through a View and answers with a list of
// actions; the simulation validates and applies them.
package ai

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tomz197/planetwars/internal/object"
)

// View is the read-only window a strategy gets onto the match. It exposes
// no way to change planets, fleets or abilities.
type View interface {
	Planets() []object.PlanetReader
	Fleets() []object.FleetReader
	AbilityAvailable(side object.Owner, kind object.AbilityKind) bool
}

// Action is a request a strategy makes to the simulation.
type Action interface {
	isAction()
}

// SendFleet asks to launch Ships ships from Source towards Target.
type SendFleet struct {
	Source object.PlanetID
	Target object.PlanetID
	Ships  int
}

// ActivateAbility asks to trigger one of the side's abilities. Target is
// only meaningful for the shield.
type ActivateAbility struct {
	Kind   object.AbilityKind
	Target object.PlanetID
}

func (SendFleet) isAction()       {}
func (ActivateAbility) isAction() {}

// Strategy produces actions for one side.
type Strategy interface {
	// Decide is called once per simulation tick with the elapsed time.
	Decide(v View, dt float64) []Action
}

// Difficulty selects the tuning of the built-in strategy.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// ErrUnknownDifficulty is returned when parsing an unrecognised difficulty name.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Difficulties lists every difficulty in menu order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// String returns the lowercase name of the difficulty.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Hard:
		return "hard"
	default:
		return "medium"
	}
}

// ParseDifficulty converts a difficulty name into a Difficulty.
func ParseDifficulty(name string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Medium, fmt.Errorf("%w: %q", ErrUnknownDifficulty, name)
}

// New returns the built-in strategy for the given difficulty playing side.
func New(d Difficulty, side object.Owner) Strategy {
	return NewSimple(d, side)
}

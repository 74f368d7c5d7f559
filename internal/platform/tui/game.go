package tui

import (
	"github.com/vovakirdan/fruit-catch/internal/core"
)

// Game is the contract between a game's pure logic and the terminal
// platform. Games never touch the terminal; they draw into a core.Screen.
type Game interface {
	ID() string
	Title() string
	Reset(cfg core.RuntimeConfig)
	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
}

// PoseReceiver is implemented by games that accept classifier zone labels.
type PoseReceiver interface {
	Pose(label string)
}

// Factory creates a fresh game instance. Each SSH session gets its own.
type Factory func() Game

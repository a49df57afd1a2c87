package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// MsToTicks converts a duration in milliseconds to whole ticks, at least 1.
func (c RuntimeConfig) MsToTicks(ms int) int {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	ticks := (ms*rate + 999) / 1000
	if ticks < 1 {
		return 1
	}
	return ticks
}

// GameState is the status a game reports to the platform.
type GameState struct {
	Score    int  // Current score (streak for oilbox)
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	// Scores lists finished runs the platform should persist this tick.
	Scores []int
}

// ScoreRecord is a single high-score entry with a display date.
type ScoreRecord struct {
	Score int
	Date  string
}

// ScoreLoader is implemented by games that show a high-score table and
// want previously persisted records at start.
type ScoreLoader interface {
	LoadScores(records []ScoreRecord)
}

// Resizable is implemented by games that can follow a terminal resize
// without restarting.
type Resizable interface {
	Resize(w, h int)
}

// Chooser is implemented by games that offer one choice before they start,
// such as a difficulty or an algorithm. The platform shows Choices and
// calls Choose before Reset.
type Chooser interface {
	ChoiceTitle() string
	Choices() []string
	Choose(value string) error
}

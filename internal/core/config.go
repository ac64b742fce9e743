// Package core provides platform-level types shared by ColorBlast front-ends.
// It has no external dependencies so front-ends and tests can share it freely.
package core

// RuntimeConfig contains configuration passed to front-ends at initialization.
type RuntimeConfig struct {
	ScreenW    int    // Screen width in characters
	ScreenH    int    // Screen height in characters
	TickRate   int    // UI ticks per second (default 30)
	PhaseTicks int    // Ticks between resolution phases; 0 resolves a turn at once
	Seed       uint64 // RNG seed for reproducible boards; 0 means random
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		TickRate:   30,
		PhaseTicks: 4,
		Seed:       0, // 0 means use current time
	}
}

package game

import (
	"time"

	"github.com/samdwyer/starblade/internal/config"
)

// Config holds game configuration options.
type Config struct {
	// Seed for the shared dice source. Used for reproducible encounters and fights.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	// EnemyTurnDelay is the pause before each enemy acts, so the player can
	// follow the fight.
	EnemyTurnDelay time.Duration
}

// ConfigFrom picks the game settings out of the application configuration.
func ConfigFrom(cfg config.Config) Config {
	return Config{
		Seed:           cfg.Game.Seed,
		EnemyTurnDelay: cfg.Combat.EnemyTurnDelay,
	}
}

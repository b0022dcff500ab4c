package verifier

import (
	"errors"
	"fmt"
	"time"
)

// Config of the epoch scheduler.
type Config struct {
	// RewardPeriod is the fixed width of a reward epoch.
	RewardPeriod time.Duration `mapstructure:"reward-period"`
	// VerificationsPerPeriod splits the reward period into equal verification epochs.
	VerificationsPerPeriod int `mapstructure:"verifications-per-period"`
	// StartAfter is the start of the first reward epoch on a fresh database.
	StartAfter time.Time `mapstructure:"start-after"`
}

func DefaultConfig() Config {
	return Config{
		RewardPeriod:           24 * time.Hour,
		VerificationsPerPeriod: 8,
		StartAfter:             time.Unix(0, 0).UTC(),
	}
}

// VerificationPeriod is the width of a verification epoch.
func (c Config) VerificationPeriod() time.Duration {
	return c.RewardPeriod / time.Duration(c.VerificationsPerPeriod)
}

// Validate checks that epochs can be stored as whole seconds.
func (c Config) Validate() error {
	switch {
	case c.RewardPeriod <= 0:
		return errors.New("reward period must be positive")
	case c.RewardPeriod%time.Second != 0:
		return fmt.Errorf("reward period %v is not a whole number of seconds", c.RewardPeriod)
	case c.VerificationsPerPeriod <= 0:
		return errors.New("verifications per period must be positive")
	case c.RewardPeriod%time.Duration(c.VerificationsPerPeriod) != 0,
		c.VerificationPeriod()%time.Second != 0:
		return fmt.Errorf("%d verifications don't split reward period %v into whole seconds",
			c.VerificationsPerPeriod, c.RewardPeriod)
	}
	return nil
}

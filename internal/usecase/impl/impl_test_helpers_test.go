package impl

import (
	"io"
	"log/slog"

	"singularity/config"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Game: &config.GameConfig{
			StartingEnergy: 100,
			MaxEnergy:      100,
			ClassBonuses:   config.DefaultClassBonuses(),
			Exercises:      config.DefaultExercises(),
		},
	}

	return cfg
}

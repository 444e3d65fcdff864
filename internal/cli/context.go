package cli

import (
	"context"
	"fmt"

	"github.com/example/courier/internal/config"
)

// NewContext returns the base context for CLI operations.
func NewContext() context.Context {
	return context.Background()
}

// resolveActor determines the acting participant for a command: the --as
// flag wins, then the configured default user. Every operation requires an
// explicit actor; there is no ambient identity.
func resolveActor(asFlag string) (string, error) {
	if asFlag != "" {
		return asFlag, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	if cfg.DefaultUser != "" {
		return cfg.DefaultUser, nil
	}

	return "", fmt.Errorf("no acting user: pass --as <user-id> or set default_user with 'courier init'")
}

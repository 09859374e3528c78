// Package app glues configuration, infrastructure bootstrap, and the bot
// application together for the command runner.
package app

import (
	"fmt"
	"time"

	"github.com/MockingJay-dev/BrainVault/core/bootstrap"
	corecmd "github.com/MockingJay-dev/BrainVault/core/cmd"
	"github.com/MockingJay-dev/BrainVault/internal/bot"
	"github.com/MockingJay-dev/BrainVault/internal/storage"
	"github.com/MockingJay-dev/BrainVault/internal/vault"
)

// LoadConfig adapts Load to the runner's ConfigCarrier contract.
func LoadConfig(path string) (corecmd.ConfigCarrier, error) {
	return Load(path)
}

// Bootstrap initializes logging, database, and migrations, then assembles the
// vault service and the Telegram application around it.
func Bootstrap(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
	cfg, ok := carrier.(*Config)
	if !ok {
		return nil, fmt.Errorf("app: unexpected config type %T", carrier)
	}

	res, err := bootstrap.Run(bootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.Vault.Timezone)
	if err != nil {
		return nil, fmt.Errorf("app: load timezone: %w", err)
	}

	store := storage.NewStateStore(res.DB)
	svc := vault.NewService(store, vault.NewLocationClock(loc))
	return bot.NewApp(cfg.CoreConfig(), svc), nil
}

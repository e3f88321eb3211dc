// Package client parses client command flags and launches the headless sync
// client runtime.
package client

import (
	"context"
	"flag"
	"log"
	"time"

	entrypoint "github.com/louisbranch/tavern/internal/platform/cmd"
	"github.com/louisbranch/tavern/internal/notify"
	"github.com/louisbranch/tavern/internal/store"
	"github.com/louisbranch/tavern/internal/sync"
)

// Config holds client command configuration.
type Config struct {
	Endpoint         string        `env:"TAVERN_SYNC_ENDPOINT" envDefault:"ws://localhost:8080/channels/campaign"`
	Token            string        `env:"TAVERN_SYNC_TOKEN"`
	UserID           string        `env:"TAVERN_SYNC_USER_ID"`
	HandshakeTimeout time.Duration `env:"TAVERN_SYNC_HANDSHAKE_TIMEOUT" envDefault:"10s"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Endpoint, "endpoint", cfg.Endpoint, "The campaign sync channel URL")
	fs.StringVar(&cfg.Token, "token", cfg.Token, "The bearer token for the sync channel")
	fs.StringVar(&cfg.UserID, "user-id", cfg.UserID, "The user identity for the sync channel")
	fs.DurationVar(&cfg.HandshakeTimeout, "handshake-timeout", cfg.HandshakeTimeout, "Websocket handshake timeout")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the sync client runtime and blocks until the context ends.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceClient, func(ctx context.Context) error {
		notifier := notify.LogNotifier{}

		characters := store.NewCharacterStore()
		tracker := store.NewTrackerStore()
		playerInventories := store.NewInventoryStore()
		adminInventories := store.NewAdminInventoryStore()
		currencyPanel := store.NewCurrencyPanelStore()
		campaigns := store.NewCampaignStore()

		dispatcher := sync.NewDispatcher()
		dispatcher.Register(sync.EntityCharacter, sync.CharacterReconciler{
			Characters: characters,
			Tracker:    tracker,
			Notifier:   notifier,
		})
		dispatcher.Register(sync.EntityInventory, sync.InventoryReconciler{
			Player:   playerInventories,
			Admin:    adminInventories,
			Currency: currencyPanel,
			Notifier: notifier,
		})
		dispatcher.Register(sync.EntityCampaign, sync.CampaignReconciler{
			Campaigns: campaigns,
			Notifier:  notifier,
		})

		client := sync.NewClient(sync.Config{
			Endpoint:         cfg.Endpoint,
			HandshakeTimeout: cfg.HandshakeTimeout,
		}, dispatcher, notifier)
		defer client.Close()

		client.SetOnReconnected(func() {
			// Events sent while disconnected are not replayed; a real UI
			// re-fetches full state here.
			log.Printf("client: reconnected, cached state may be stale until refreshed")
		})

		if cfg.Token == "" || cfg.UserID == "" {
			log.Printf("client: missing token or user id, staying in disconnected mode")
		}
		client.SetCredentials(ctx, cfg.Token, cfg.UserID)

		<-ctx.Done()
		return nil
	})
}

package client

import (
	"flag"
	"testing"
	"time"
)

func TestParseConfigReadsEnvAndFlags(t *testing.T) {
	t.Setenv("TAVERN_SYNC_ENDPOINT", "ws://env-host/channels/campaign")
	t.Setenv("TAVERN_SYNC_USER_ID", "user-env")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-token", "flag-token"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Endpoint != "ws://env-host/channels/campaign" {
		t.Fatalf("endpoint = %q, want env value", cfg.Endpoint)
	}
	if cfg.UserID != "user-env" {
		t.Fatalf("user id = %q, want env value", cfg.UserID)
	}
	if cfg.Token != "flag-token" {
		t.Fatalf("token = %q, want flag override", cfg.Token)
	}
	if cfg.HandshakeTimeout != 10*time.Second {
		t.Fatalf("handshake timeout = %v, want default 10s", cfg.HandshakeTimeout)
	}
}

func TestParseConfigFlagOverridesEnv(t *testing.T) {
	t.Setenv("TAVERN_SYNC_ENDPOINT", "ws://env-host/channels/campaign")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-endpoint", "ws://flag-host/channels/campaign"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Endpoint != "ws://flag-host/channels/campaign" {
		t.Fatalf("endpoint = %q, want flag override", cfg.Endpoint)
	}
}

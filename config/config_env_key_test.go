package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"secretKey": map[string]any{
			"access": "",
		},
		"passwordPolicy": map[string]any{
			"minLength": 8,
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "PASSWORDPOLICY_MINLENGTH", want: "passwordPolicy.minLength"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	if cfg.Throttle.MaxAttempts != 5 {
		t.Fatalf("Throttle.MaxAttempts = %d, want 5", cfg.Throttle.MaxAttempts)
	}
	if cfg.Throttle.Window.Seconds() != 300 {
		t.Fatalf("Throttle.Window = %s, want 300s", cfg.Throttle.Window)
	}
	if cfg.Game.StartingEnergy != 100 || cfg.Game.MaxEnergy != 100 {
		t.Fatalf("Game energy defaults = %d/%d, want 100/100", cfg.Game.StartingEnergy, cfg.Game.MaxEnergy)
	}
	if len(cfg.Game.ClassBonuses) != 4 {
		t.Fatalf("Game.ClassBonuses has %d classes, want 4", len(cfg.Game.ClassBonuses))
	}
	if cfg.Auth.AccessTokenTTL.Minutes() != 30 {
		t.Fatalf("Auth.AccessTokenTTL = %s, want 30m", cfg.Auth.AccessTokenTTL)
	}
}

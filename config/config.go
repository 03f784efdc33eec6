// Package config loads the service configuration from YAML files with
// environment variable overrides, using koanf.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const defaultPath = "."

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	// QueryTimeout bounds every repository round-trip so a stalled store
	// cannot pin request-handling capacity.
	QueryTimeout time.Duration `json:"queryTimeout" yaml:"queryTimeout"`

	SecretKey struct {
		Access  string `json:"access" yaml:"access"`
		Refresh string `json:"refresh" yaml:"refresh"`
	} `json:"secretKey" yaml:"secretKey"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	PasswordPolicy *PasswordPolicyConfig `json:"passwordPolicy" yaml:"passwordPolicy"`

	Throttle *ThrottleConfig `json:"throttle" yaml:"throttle"`

	Game *GameConfig `json:"game" yaml:"game"`
}

// AuthConfig defines authentication-related configuration.
type AuthConfig struct {
	BcryptCost      int           `json:"bcryptCost" yaml:"bcryptCost"`
	AccessTokenTTL  time.Duration `json:"accessTokenTtl" yaml:"accessTokenTtl"`
	RefreshTokenTTL time.Duration `json:"refreshTokenTtl" yaml:"refreshTokenTtl"`
}

// PasswordPolicyConfig defines the minimum password strength requirements.
// Each requirement is independently toggleable.
type PasswordPolicyConfig struct {
	MinLength      int  `json:"minLength" yaml:"minLength"`
	RequireUpper   bool `json:"requireUpper" yaml:"requireUpper"`
	RequireLower   bool `json:"requireLower" yaml:"requireLower"`
	RequireDigit   bool `json:"requireDigit" yaml:"requireDigit"`
	RequireSpecial bool `json:"requireSpecial" yaml:"requireSpecial"`
}

// ThrottleConfig bounds authentication attempts per client origin within a
// trailing window.
type ThrottleConfig struct {
	MaxAttempts int           `json:"maxAttempts" yaml:"maxAttempts"`
	Window      time.Duration `json:"window" yaml:"window"`
}

// GameConfig holds the progression tables. These are data, not logic: class
// bonuses and the exercise catalog can change without touching code.
type GameConfig struct {
	StartingEnergy int `json:"startingEnergy" yaml:"startingEnergy"`
	MaxEnergy      int `json:"maxEnergy" yaml:"maxEnergy"`

	// ClassBonuses maps character class -> attribute -> bonus added on top
	// of the base of 1 in each attribute at account creation.
	ClassBonuses map[string]map[string]int `json:"classBonuses" yaml:"classBonuses"`

	// Exercises maps catalog entry name -> trained attribute and base
	// experience used to compute completion rewards.
	Exercises map[string]ExerciseConfig `json:"exercises" yaml:"exercises"`
}

// ExerciseConfig is one exercise catalog entry.
type ExerciseConfig struct {
	Attribute string `json:"attribute" yaml:"attribute"`
	BaseExp   int    `json:"baseExp" yaml:"baseExp"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// LoadWithEnv loads .yaml files through koanf, then applies environment
// variable overrides aligned against the keys found in the YAML document.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to a dotted path and align each segment
			// with existing YAML keys, e.g. POSTGRES_SSLMODE -> postgres.sslMode.
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = 5 * time.Second
	}
	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	if cfg.Auth.AccessTokenTTL <= 0 {
		cfg.Auth.AccessTokenTTL = 30 * time.Minute
	}
	if cfg.Auth.RefreshTokenTTL <= 0 {
		cfg.Auth.RefreshTokenTTL = 7 * 24 * time.Hour
	}
	if cfg.PasswordPolicy == nil {
		cfg.PasswordPolicy = &PasswordPolicyConfig{
			MinLength:    8,
			RequireUpper: true,
			RequireLower: true,
			RequireDigit: true,
		}
	}
	if cfg.Throttle == nil {
		cfg.Throttle = &ThrottleConfig{}
	}
	if cfg.Throttle.MaxAttempts <= 0 {
		cfg.Throttle.MaxAttempts = 5
	}
	if cfg.Throttle.Window <= 0 {
		cfg.Throttle.Window = 300 * time.Second
	}
	if cfg.Game == nil {
		cfg.Game = &GameConfig{}
	}
	if cfg.Game.StartingEnergy <= 0 {
		cfg.Game.StartingEnergy = 100
	}
	if cfg.Game.MaxEnergy <= 0 {
		cfg.Game.MaxEnergy = 100
	}
	if len(cfg.Game.ClassBonuses) == 0 {
		cfg.Game.ClassBonuses = DefaultClassBonuses()
	}
	if len(cfg.Game.Exercises) == 0 {
		cfg.Game.Exercises = DefaultExercises()
	}
}

// DefaultClassBonuses returns the canonical class bonus table. Every class
// grants a bonus in all four attributes.
func DefaultClassBonuses() map[string]map[string]int {
	return map[string]map[string]int{
		"warrior": {"strength": 3, "vitality": 2, "agility": 1, "intelligence": 1},
		"mage":    {"intelligence": 3, "vitality": 1, "strength": 1, "agility": 1},
		"rogue":   {"agility": 3, "intelligence": 1, "strength": 1, "vitality": 1},
		"cleric":  {"vitality": 2, "intelligence": 2, "strength": 1, "agility": 1},
	}
}

// DefaultExercises returns the built-in exercise catalog.
func DefaultExercises() map[string]ExerciseConfig {
	return map[string]ExerciseConfig{
		"pushups":    {Attribute: "strength", BaseExp: 2},
		"squats":     {Attribute: "strength", BaseExp: 2},
		"sprints":    {Attribute: "agility", BaseExp: 3},
		"running":    {Attribute: "vitality", BaseExp: 4},
		"cycling":    {Attribute: "vitality", BaseExp: 3},
		"yoga":       {Attribute: "agility", BaseExp: 2},
		"meditation": {Attribute: "intelligence", BaseExp: 2},
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

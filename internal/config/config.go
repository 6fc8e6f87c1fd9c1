package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/verisalt/srp-auth-server/internal/srpgroup"
)

type SRPConfig struct {
	// The set of supported groups are:
	// 		rfc5054.2048
	//		rfc5054.3072
	//		rfc5054.4096
	// Default to rfc5054.2048
	Group string
	// ChallengeTTL bounds how long a login challenge stays consumable between
	// steps 1 and 2.
	ChallengeTTL time.Duration
	// SweepInterval is how often the in-memory challenge store reclaims
	// expired entries.
	SweepInterval time.Duration
}

type RedisSettings struct {
	Address  string
	Password string
	DB       int
}

type SessionConfig struct {
	TokenDuration time.Duration
}

type Config struct {
	// Server port
	Port      string
	LogLevel  string
	AppEnv    string
	JWTSecret string
	SRP       SRPConfig
	// ChallengeStore selects the backend for challenge and pending-login
	// state: "memory" or "redis".
	ChallengeStore string
	// CORSAllowedOrigins is the list of origins allowed to call the API.
	CORSAllowedOrigins []string
	// DatabasePath is the SQLite file holding credentials.
	DatabasePath  string
	RedisSettings RedisSettings
	Session       SessionConfig
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATABASE_PATH", "file:auth.db?_fk=1")
	viper.SetDefault("CHALLENGE_STORE", "memory")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	// Load configuration
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Info().Msg("Config file not found, using defaults and environment variables")
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// JWT Secret
	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	// SRP group. Validation happens here, once, before any handler runs: a
	// server must never come up on an inadequate modulus.
	srpGroup := viper.GetString("SRP_GROUP")
	if _, err := srpgroup.Get(srpGroup); err != nil {
		if srpGroup != "" {
			log.Warn().Str("group", srpGroup).Msg("Invalid SRP group, defaulting to rfc5054.2048")
		}
		srpGroup = "rfc5054.2048"
	}

	challengeTTL := viper.GetDuration("SRP_CHALLENGE_TTL")
	if challengeTTL <= 0 {
		challengeTTL = 5 * time.Minute
	}
	sweepInterval := viper.GetDuration("SRP_SWEEP_INTERVAL")
	if sweepInterval <= 0 {
		sweepInterval = time.Minute
	}

	tokenDuration := viper.GetDuration("SESSION_TOKEN_DURATION")
	if tokenDuration <= 0 {
		tokenDuration = time.Hour
	}

	challengeStore := viper.GetString("CHALLENGE_STORE")
	if challengeStore != "memory" && challengeStore != "redis" {
		log.Warn().Str("store", challengeStore).Msg("Invalid challenge store, defaulting to memory")
		challengeStore = "memory"
	}

	var corsOrigins []string
	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			corsOrigins = append(corsOrigins, origin)
		}
	}
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}

	return &Config{
		Port:      viper.GetString("APP_PORT"),
		LogLevel:  viper.GetString("LOG_LEVEL"),
		AppEnv:    viper.GetString("APP_ENV"),
		JWTSecret: jwtSecret,
		SRP: SRPConfig{
			Group:         srpGroup,
			ChallengeTTL:  challengeTTL,
			SweepInterval: sweepInterval,
		},
		ChallengeStore:     challengeStore,
		CORSAllowedOrigins: corsOrigins,
		DatabasePath:       viper.GetString("DATABASE_PATH"),
		RedisSettings: RedisSettings{
			Address:  viper.GetString("REDIS_ADDRESS"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Session: SessionConfig{
			TokenDuration: tokenDuration,
		},
	}, nil
}

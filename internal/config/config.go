package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port                     string   `mapstructure:"PORT"`
	Host                     string   `mapstructure:"HOST"`
	Env                      string   `mapstructure:"ENV"`
	LogLevel                 string   `mapstructure:"LOG_LEVEL"`
	MongoURL                 string   `mapstructure:"MONGO_URL"`
	MongoDatabase            string   `mapstructure:"DB_NAME"`
	MongoTimeoutSeconds      int      `mapstructure:"MONGO_TIMEOUT_SECONDS"`
	CORSOrigins              []string `mapstructure:"CORS_ORIGINS"`
	JWTSecret                string   `mapstructure:"JWT_SECRET"`
	JWTTTLHours              int      `mapstructure:"JWT_TTL_HOURS"`
	AuthDisabled             bool     `mapstructure:"AUTH_DISABLED"`
	GeminiAPIKey             string   `mapstructure:"GEMINI_API_KEY"`
	GeminiModel              string   `mapstructure:"GEMINI_MODEL"`
	OpBNBRPCURL              string   `mapstructure:"OPBNB_RPC_URL"`
	OpBNBChainID             int64    `mapstructure:"OPBNB_CHAIN_ID"`
	DeploymentFile           string   `mapstructure:"DEPLOYMENT_FILE"`
	GreenfieldBucket         string   `mapstructure:"GREENFIELD_BUCKET_NAME"`
	GreenfieldNetwork        string   `mapstructure:"GREENFIELD_NETWORK"`
	BundleServiceURL         string   `mapstructure:"BUNDLE_SERVICE_URL"`
	SeedOnStart              bool     `mapstructure:"SEED_ON_START"`
	SeedRandom               int64    `mapstructure:"SEED_RANDOM_SOURCE"`
	SimulatorEnabled         bool     `mapstructure:"SIMULATOR_ENABLED"`
	SimulatorIntervalSeconds int      `mapstructure:"SIMULATOR_INTERVAL_SECONDS"`
	AgentEnabled             bool     `mapstructure:"AGENT_ENABLED"`
	RateLimitRPS             float64  `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst           int      `mapstructure:"RATE_LIMIT_BURST"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8001")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MONGO_URL", "mongodb://localhost:27017")
	v.SetDefault("DB_NAME", "omnihealth")
	v.SetDefault("MONGO_TIMEOUT_SECONDS", 10)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("JWT_TTL_HOURS", 24)
	v.SetDefault("AUTH_DISABLED", true)
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("OPBNB_RPC_URL", "https://opbnb-testnet-rpc.bnbchain.org")
	v.SetDefault("OPBNB_CHAIN_ID", 5611)
	v.SetDefault("DEPLOYMENT_FILE", "deployment_result.json")
	v.SetDefault("GREENFIELD_NETWORK", "testnet")
	v.SetDefault("SEED_ON_START", true)
	v.SetDefault("SEED_RANDOM_SOURCE", 0)
	v.SetDefault("SIMULATOR_ENABLED", true)
	v.SetDefault("SIMULATOR_INTERVAL_SECONDS", 15)
	v.SetDefault("AGENT_ENABLED", true)
	v.SetDefault("RATE_LIMIT_RPS", 50)
	v.SetDefault("RATE_LIMIT_BURST", 100)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("HOST")
	v.BindEnv("ENV")
	v.BindEnv("LOG_LEVEL")
	v.BindEnv("MONGO_URL")
	v.BindEnv("DB_NAME")
	v.BindEnv("MONGO_TIMEOUT_SECONDS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("JWT_TTL_HOURS")
	v.BindEnv("AUTH_DISABLED")
	v.BindEnv("GEMINI_API_KEY")
	v.BindEnv("GEMINI_MODEL")
	v.BindEnv("OPBNB_RPC_URL")
	v.BindEnv("OPBNB_CHAIN_ID")
	v.BindEnv("DEPLOYMENT_FILE")
	v.BindEnv("GREENFIELD_BUCKET_NAME")
	v.BindEnv("GREENFIELD_NETWORK")
	v.BindEnv("BUNDLE_SERVICE_URL")
	v.BindEnv("SEED_ON_START")
	v.BindEnv("SEED_RANDOM_SOURCE")
	v.BindEnv("SIMULATOR_ENABLED")
	v.BindEnv("SIMULATOR_INTERVAL_SECONDS")
	v.BindEnv("AGENT_ENABLED")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.MongoURL == "" {
		return nil, fmt.Errorf("MONGO_URL is required")
	}
	if cfg.MongoDatabase == "" {
		return nil, fmt.Errorf("DB_NAME is required")
	}

	if cfg.AuthDisabled && !cfg.IsProduction() {
		log.Println("WARNING: ============================================================")
		log.Println("WARNING: Authentication is DISABLED (AUTH_DISABLED=true).")
		log.Println("WARNING: All requests are treated as an organization-level dev user.")
		log.Println("WARNING: Set AUTH_DISABLED=false and JWT_SECRET for real auth.")
		log.Println("WARNING: ============================================================")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Addr returns the host:port the HTTP listener binds to.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// Validate checks that the configuration is safe to run. Production requires
// a JWT secret and refuses to run with authentication disabled.
func (c *Config) Validate() error {
	if c.IsProduction() {
		if c.AuthDisabled {
			return fmt.Errorf("AUTH_DISABLED must be false in production")
		}
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
	}
	if !c.AuthDisabled && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when AUTH_DISABLED is false")
	}
	if c.SimulatorIntervalSeconds <= 0 {
		return fmt.Errorf("SIMULATOR_INTERVAL_SECONDS must be positive, got %d", c.SimulatorIntervalSeconds)
	}
	if c.MongoTimeoutSeconds <= 0 {
		return fmt.Errorf("MONGO_TIMEOUT_SECONDS must be positive, got %d", c.MongoTimeoutSeconds)
	}
	return nil
}

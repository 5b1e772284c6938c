package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Ledger    LedgerConfig    `mapstructure:"ledger"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Pricing   PricingConfig   `mapstructure:"pricing"`
	Custody   CustodyConfig   `mapstructure:"custody"`
	Sync      SyncConfig      `mapstructure:"sync"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type LedgerConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	Network    string `mapstructure:"network"` // testnet, mainnet
	OperatorID string `mapstructure:"operator_id"`
	APIKey     string `mapstructure:"api_key"`
}

// ProviderConfig carries one payment provider's credentials and schedule.
type ProviderConfig struct {
	BaseURL       string  `mapstructure:"base_url"`
	APIKey        string  `mapstructure:"api_key"`
	Secret        string  `mapstructure:"secret"`
	FeePercentage float64 `mapstructure:"fee_percentage"`
	FeeFixedCents int64   `mapstructure:"fee_fixed_cents"`
	MinCents      int64   `mapstructure:"min_cents"`
	MaxCents      int64   `mapstructure:"max_cents"`
}

type ProvidersConfig struct {
	Alchemy   ProviderConfig `mapstructure:"alchemy"`
	Banxa     ProviderConfig `mapstructure:"banxa"`
	ReturnURL string         `mapstructure:"return_url"`
	CancelURL string         `mapstructure:"cancel_url"`
}

type PricingConfig struct {
	URL string `mapstructure:"url"`
}

type CustodyConfig struct {
	MasterSecret string `mapstructure:"master_secret"` // 32-byte hex-encoded wrapping secret
	VaultDir     string `mapstructure:"vault_dir"`
}

type SyncConfig struct {
	TreasuryUserID string `mapstructure:"treasury_user_id"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: AWO_ (Alias Wallet
// Orchestrator). Nested keys use underscore: AWO_DATABASE_HOST,
// AWO_JWT_SECRET, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "wallet_orchestrator")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("ledger.base_url", "http://localhost:5551")
	v.SetDefault("ledger.network", "testnet")
	v.SetDefault("ledger.operator_id", "")
	v.SetDefault("ledger.api_key", "")
	v.SetDefault("providers.alchemy.base_url", "https://openapi.alchemypay.org")
	v.SetDefault("providers.alchemy.fee_percentage", 0.025)
	v.SetDefault("providers.alchemy.fee_fixed_cents", 0)
	v.SetDefault("providers.alchemy.min_cents", 1000)
	v.SetDefault("providers.alchemy.max_cents", 1000000)
	v.SetDefault("providers.banxa.base_url", "https://api.banxa.com")
	v.SetDefault("providers.banxa.fee_percentage", 0.03)
	v.SetDefault("providers.banxa.fee_fixed_cents", 299)
	v.SetDefault("providers.banxa.min_cents", 2000)
	v.SetDefault("providers.banxa.max_cents", 5000000)
	v.SetDefault("providers.return_url", "http://localhost:3000/funding/return")
	v.SetDefault("providers.cancel_url", "http://localhost:3000/funding/cancel")
	v.SetDefault("pricing.url", "http://localhost:5551/v1/price")
	v.SetDefault("custody.master_secret", "")
	v.SetDefault("custody.vault_dir", "./vault")
	v.SetDefault("sync.treasury_user_id", "")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "alias-wallet-orchestrator")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: AWO_DATABASE_HOST -> database.host
	v.SetEnvPrefix("AWO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required — env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

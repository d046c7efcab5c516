// Package config holds the gateway configuration model and its viper-based
// loader.
package config

import (
	"time"

	"github.com/manolaz/mosaic/pkg/constants"
	"github.com/manolaz/mosaic/pkg/errors"
)

// Config holds the application's configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Chain    ChainConfig    `mapstructure:"chain"`
	Walrus   WalrusConfig   `mapstructure:"walrus"`
	Wallet   WalletConfig   `mapstructure:"wallet"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Vault    VaultConfig    `mapstructure:"vault"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	CheckIn  CheckInConfig  `mapstructure:"check_in"`
	Indexer  IndexerConfig  `mapstructure:"indexer"`
	Log      LogConfig      `mapstructure:"log"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
}

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	GRPCPort       int      `mapstructure:"grpc_port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	ReadTimeout    int      `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout   int      `mapstructure:"write_timeout"` // in seconds
	IdleTimeout    int      `mapstructure:"idle_timeout"`  // in seconds
}

// ChainConfig describes the external on-chain ticketing program and the
// fullnode used to reach it.
type ChainConfig struct {
	RPCURL       string        `mapstructure:"rpc_url"`
	Network      string        `mapstructure:"network"`
	PackageID    string        `mapstructure:"package_id"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	WaitTimeout  time.Duration `mapstructure:"wait_timeout"`
}

// WalrusConfig describes the blob store endpoints.
type WalrusConfig struct {
	PublisherURL  string `mapstructure:"publisher_url"`
	AggregatorURL string `mapstructure:"aggregator_url"`
	GatewayURL    string `mapstructure:"gateway_url"`
	Epochs        int    `mapstructure:"epochs"`
}

// WalletConfig locates the signing key. SecretEnv names an environment
// variable holding the base64 secret key; KeystorePath points at a key file.
// When neither yields a key and Ephemeral is set, a fresh key is generated,
// mirroring the behavior of the original test-net seeding scripts.
type WalletConfig struct {
	KeystorePath string `mapstructure:"keystore_path"`
	SecretEnv    string `mapstructure:"secret_env"`
	Ephemeral    bool   `mapstructure:"ephemeral"`
}

type DatabaseConfig struct {
	// Driver selects the gorm backend: "sqlite" or "postgres".
	Driver   string `mapstructure:"driver"`
	DSN      string `mapstructure:"dsn"`
	MaxConns int    `mapstructure:"max_conns"`
}

type RedisConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Address      string `mapstructure:"address"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`
}

type VaultConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Address   string `mapstructure:"address"`
	Token     string `mapstructure:"token"`
	MountPath string `mapstructure:"mount_path"`
}

type KafkaConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Brokers      []string      `mapstructure:"brokers"`
	AuditTopic   string        `mapstructure:"audit_topic"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	BatchTimeout time.Duration `mapstructure:"batch_timeout"`
}

type CheckInConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type IndexerConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	PageSize     int           `mapstructure:"page_size"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type TracingConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	JaegerEndpoint string  `mapstructure:"jaeger_endpoint"`
	ServiceName    string  `mapstructure:"service_name"`
	SamplingRate   float64 `mapstructure:"sampling_rate"`
	Environment    string  `mapstructure:"environment"`
}

// Validate checks for essential configuration values.
func (c *Config) Validate() error {
	if c.Chain.RPCURL == "" {
		return errors.Newf(constants.ErrCodeInvalidRequest, "chain.rpc_url is required")
	}
	if c.Chain.PackageID == "" {
		return errors.Newf(constants.ErrCodeInvalidRequest, "chain.package_id is required")
	}
	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return errors.Newf(constants.ErrCodeInvalidRequest, "database.driver must be sqlite or postgres, got %q", c.Database.Driver)
	}
	return nil
}

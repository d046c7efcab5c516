package config

import (
	"context"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/manolaz/mosaic/pkg/constants"
	"github.com/manolaz/mosaic/pkg/errors"
	"github.com/manolaz/mosaic/pkg/logger"
)

// LoadConfig loads the configuration from file and environment variables.
// File keys are overridden by MOSAIC_-prefixed environment variables, e.g.
// MOSAIC_CHAIN_RPC_URL.
func LoadConfig(log logger.Logger) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/mosaic/")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, constants.ErrCodeInvalidRequest, "failed to read config file")
		}
		log.Debug(context.Background(), "no config file found, using defaults and environment")
	}

	v.SetEnvPrefix("MOSAIC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, constants.ErrCodeInvalidRequest, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Reload on file change so log-level tweaks do not require a restart.
	// Only fields read through the callback take effect; connections opened
	// at startup keep their original settings.
	v.OnConfigChange(func(e fsnotify.Event) {
		log.Info(context.Background(), "config file changed", logger.Fields{"file": e.Name})
		var next Config
		if err := v.Unmarshal(&next); err != nil {
			log.Warn(context.Background(), "ignoring unreadable config change", logger.Fields{"error": err.Error()})
			return
		}
		cfg.Log = next.Log
	})
	v.WatchConfig()

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.grpc_port", 50051)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 15)
	v.SetDefault("server.idle_timeout", 60)

	v.SetDefault("chain.network", "testnet")
	v.SetDefault("chain.poll_interval", constants.DefaultTxPollInterval)
	v.SetDefault("chain.wait_timeout", constants.DefaultTxWaitTimeout)

	v.SetDefault("walrus.publisher_url", "https://publisher.walrus-testnet.walrus.space")
	v.SetDefault("walrus.aggregator_url", "https://aggregator.walrus-testnet.walrus.space")
	v.SetDefault("walrus.gateway_url", "https://walrus.testnet.mystenlabs.com")
	v.SetDefault("walrus.epochs", constants.DefaultBlobEpochs)

	v.SetDefault("wallet.secret_env", "MOSAIC_WALLET_SECRET")
	v.SetDefault("wallet.ephemeral", true)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "mosaic.db")
	v.SetDefault("database.max_conns", 10)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("vault.enabled", false)
	v.SetDefault("vault.mount_path", "secret")

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.audit_topic", "mosaic.tx.audit")
	v.SetDefault("kafka.write_timeout", 10*time.Second)
	v.SetDefault("kafka.batch_timeout", time.Second)

	v.SetDefault("check_in.ttl", constants.DefaultCheckInTokenTTL)

	v.SetDefault("indexer.enabled", true)
	v.SetDefault("indexer.poll_interval", constants.DefaultIndexerPollInterval)
	v.SetDefault("indexer.page_size", 50)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", constants.ServiceName)
	v.SetDefault("tracing.sampling_rate", 0.1)
}

package main

import (
	"log"
	"os"

	"github.com/matst80/slask-layer/pkg/catalog"
	"github.com/matst80/slask-layer/pkg/config"
	"github.com/spf13/cobra"
)

var (
	configFile     string
	envPrefix      string
	attributesFile string
	databaseDsn    string
	redisAddr      string
	redisPassword  string
	redisConfigKey string
)

var rootCmd = &cobra.Command{
	Use:   "layerd",
	Short: "faceted layer navigation service",
	Long: `layerd builds the faceted navigation layer for catalog searches.

Commands:
  layerd serve       Run the HTTP service
  layerd resolve     Print the filter type of every filterable attribute
  layerd publish     Send attribute changes to the running services`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&envPrefix, "env-prefix", "layer",
		"Prefix of configuration environment variables")
	rootCmd.PersistentFlags().StringVar(&attributesFile, "attributes", "",
		"YAML file with the filterable attributes")
	rootCmd.PersistentFlags().StringVar(&databaseDsn, "database", os.Getenv("DATABASE_URL"),
		"Postgres DSN of the attribute metadata")
	rootCmd.PersistentFlags().StringVar(&redisAddr, "redis", os.Getenv("REDIS_URL"),
		"Redis address for configuration and session state")
	rootCmd.PersistentFlags().StringVar(&redisPassword, "redis-password", os.Getenv("REDIS_PASSWORD"),
		"Redis password")
	rootCmd.PersistentFlags().StringVar(&redisConfigKey, "redis-config-key", "layer_config",
		"Redis hash holding configuration overrides")
}

// loadStore chains the configuration sources, environment first, then
// Redis and finally the YAML file.
func loadStore() (config.Store, func(), error) {
	stores := config.Chain{config.EnvStore{Prefix: envPrefix}}
	closeFn := func() {}
	if redisAddr != "" {
		rs := config.NewRedisStore(redisAddr, redisPassword, 0, redisConfigKey)
		stores = append(stores, rs)
		closeFn = func() {
			if err := rs.Close(); err != nil {
				log.Printf("failed to close redis config store: %v", err)
			}
		}
	}
	if configFile != "" {
		fs, err := config.LoadYAMLStore(configFile)
		if err != nil {
			closeFn()
			return nil, nil, err
		}
		stores = append(stores, fs)
	}
	return stores, closeFn, nil
}

// loadAttributes picks the attribute source, the database wins over the
// file.
func loadAttributes() (catalog.Provider, error) {
	if databaseDsn != "" {
		db, err := catalog.OpenPostgres(databaseDsn)
		if err != nil {
			return nil, err
		}
		provider := catalog.NewGormProvider(db)
		if err := provider.Migrate(); err != nil {
			return nil, err
		}
		return provider, nil
	}
	if attributesFile != "" {
		return catalog.LoadYAML(attributesFile)
	}
	log.Printf("no attribute source configured, only the category filter is built")
	return catalog.StaticProvider{}, nil
}

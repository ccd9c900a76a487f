package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/localnerve/jam-build-appstore/internal/cache"
	"github.com/localnerve/jam-build-appstore/internal/config"
	"github.com/localnerve/jam-build-appstore/internal/database"
	"github.com/localnerve/jam-build-appstore/internal/logging"
	"github.com/localnerve/jam-build-appstore/internal/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	envFile    string
	sqlitePath string
	asUser     string
	asGuest    string
	verbose    bool

	cfg     *config.Config
	log     *zap.Logger
	db      *gorm.DB
	catalog *services.Catalog
)

var rootCmd = &cobra.Command{
	Use:   "storectl",
	Short: "storectl - administer the app store hierarchy",
	Long: `storectl creates and inspects stores and apps directly against the
appstore database. Writes clear the shared result cache when one is configured.

Connection settings come from the environment (DB_TYPE, DB_DATABASE, ...),
optionally loaded from an .env file. --sqlite points at a local SQLite file instead.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if sqlitePath != "" {
			// set before loading so the flag wins over the .env file
			os.Setenv("DB_TYPE", "sqlite-pure")
			os.Setenv("DB_DATABASE", sqlitePath)
		}

		var err error
		cfg, err = config.LoadFile(envFile)
		if err != nil {
			return err
		}

		level := "warn"
		if verbose {
			level = "debug"
		}
		log = logging.NewOrNop(logging.Config{Level: level, Development: true, OutputPaths: []string{"stderr"}})

		db, err = database.Connect(cfg, log)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		var resultCache cache.Cache
		if cfg.CacheEnabled {
			redisCache, err := cache.NewRedis(cfg.RedisURL)
			if err != nil {
				return fmt.Errorf("failed to connect to cache: %w", err)
			}
			resultCache = redisCache
		}

		catalog = services.NewCatalog(db, resultCache, log, services.Options{
			AnchorSlug:        cfg.AnchorAppSlug,
			MaxDepth:          cfg.MaxExpandDepth,
			ExpansionPageSize: cfg.ExpandPageSize,
		})
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		_ = log.Sync()
		if catalog != nil && catalog.Cache != nil {
			_ = catalog.Cache.Close()
		}
		return database.Close(db)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&envFile, "env", "", "path to an .env file")
	flags.StringVar(&sqlitePath, "sqlite", "", "use a local SQLite database file")
	flags.StringVar(&asUser, "as-user", "", "resolve as this member id")
	flags.StringVar(&asGuest, "as-guest", "", "resolve as this guest id")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log SQL and cache activity")
}

func caller() services.Caller {
	return services.Caller{UserID: asUser, GuestID: asGuest}
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"db-ddl/internal/builder"
	"db-ddl/internal/dialect"
	"db-ddl/internal/logging"
	"db-ddl/internal/schema"
	"db-ddl/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	dsn     string
	cfgFile string
	dryRun  bool

	app *App
)

// App holds what every command needs once configuration is resolved.
type App struct {
	Config    *DBConfig
	Logger    *slog.Logger
	Store     *store.Store
	Inspector *schema.Inspector
	Builder   *builder.Builder

	closeLog func()
}

var RootCmd = &cobra.Command{
	Use:   "db-ddl",
	Short: "MySQL schema statement builder",
	Long: `db-ddl builds and runs MySQL DDL and bulk DML statements:
adding, moving and renaming columns, creating and dropping tables,
multi-row inserts and in-place text replacement.

Every command accepts --dry-run to print the SQL instead of running it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		app = a
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app != nil {
			app.Close()
		}
	},
}

func newApp(ctx context.Context) (*App, error) {
	config, err := LoadDBConfig()
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		return nil, err
	}
	logger, closeLog := logging.SetupLogger(os.Stderr, level, viper.GetString("log.seq_url"))
	slog.SetDefault(logger)

	d, err := dialect.GetDialect(config.Driver)
	if err != nil {
		closeLog()
		return nil, err
	}
	dbName, err := store.ParseDSN(config.DSN)
	if err != nil {
		closeLog()
		return nil, err
	}

	// mariadb and tidb speak the mysql wire protocol
	st, err := store.Open("mysql", config.DSN)
	if err != nil {
		closeLog()
		return nil, err
	}
	// a dry run only renders, so it may work offline
	if !dryRun {
		if err := st.Ping(ctx); err != nil {
			st.Close()
			closeLog()
			return nil, err
		}
	}
	logger.Debug("configuration resolved",
		"profile", config.Name, "driver", config.Driver, "database", dbName, "prefix", config.TablePrefix)

	inspector := schema.NewInspector(st, d, logger)
	return &App{
		Config:    config,
		Logger:    logger,
		Store:     st,
		Inspector: inspector,
		Builder:   builder.New(d, inspector, config.BuilderConfig()),
		closeLog:  closeLog,
	}, nil
}

func (a *App) Close() {
	if err := a.Store.Close(); err != nil {
		a.Logger.Warn("failed to close db", "error", err)
	}
	a.closeLog()
}

// runStatement prints the statement under --dry-run and executes it otherwise.
// Cached descriptors of the touched tables are dropped after a successful run.
func runStatement(cmd *cobra.Command, sql string, params map[string]any, touched ...string) error {
	stmt := &builder.Statement{SQL: sql, Params: params}
	if dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), stmt.String()+";")
		return nil
	}

	app.Logger.Debug("executing", "sql", sql, "params", len(params))
	start := time.Now()
	n, err := app.Store.Exec(cmd.Context(), sql, params)
	if err != nil {
		return err
	}
	for _, t := range touched {
		app.Inspector.Invalidate(app.Builder.RawTableName(t))
	}
	app.Logger.Info("statement executed", "command", cmd.Name(), "rows", n, "elapsed", time.Since(start))
	return nil
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := RootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	setConfigDefaults()

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./ddl.yaml)")
	RootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "Database Source Name (DSN), overrides config")
	RootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Print statements instead of executing them")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("ddl")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

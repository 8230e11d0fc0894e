// sqlcommon-migrate applies database migrations at design time.
// Settings come from a YAML file, SQLCOMMON_ environment variables, a .env
// file and flags, flags winning. When no connection string is configured it
// is read from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/aeramu/sql-common/config"
	"github.com/aeramu/sql-common/orm"
)

var (
	configFile string
	driver     string
	dsn        string
	schema     string
	dir        string
	trace      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sqlcommon-migrate",
		Short: "Apply database migrations",
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&driver, "driver", "", "Database driver: sqlserver, postgres or sqlite")
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "Connection string, prompted for when empty")
	rootCmd.PersistentFlags().StringVar(&schema, "schema", "", "Default schema")
	rootCmd.PersistentFlags().StringVarP(&dir, "dir", "d", "", "Migrations directory")
	rootCmd.PersistentFlags().BoolVar(&trace, "trace", false, "Log every statement")

	rootCmd.AddCommand(upCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func upCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return runUp(ctx, cmd)
		},
	}
}

func runUp(ctx context.Context, cmd *cobra.Command) error {
	if driver != "" {
		os.Setenv(config.EnvPrefix+"DATABASE__DRIVER", driver)
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("dsn") {
		cfg.Database.DSN = dsn
	}
	if flags.Changed("schema") {
		cfg.Database.Schema = schema
	}
	if flags.Changed("dir") {
		cfg.Database.MigrationsDir = dir
	}
	if flags.Changed("trace") {
		cfg.Database.TraceEnabled = trace
	}
	if cfg.Database.MigrationsDir == "" {
		return fmt.Errorf("no migrations directory configured")
	}

	log := cfg.Log.Logger()
	cfg.Database.RegisterSerializers()

	d, err := orm.ParseDriver(cfg.Database.Driver)
	if err != nil {
		return err
	}
	dc, err := orm.New(d, cfg.Database.DSN,
		orm.WithSchema(cfg.Database.Schema),
		orm.WithTrace(cfg.Database.TraceEnabled),
		orm.WithCommandTimeout(cfg.Database.CommandTimeout()),
		orm.WithLogger(log),
		orm.WithMigrations(os.DirFS(cfg.Database.MigrationsDir), "."),
		orm.WithConnectionPrompt(os.Stdin, os.Stdout),
	)
	if err != nil {
		return err
	}
	defer dc.Close()

	if err := dc.Migrate(ctx); err != nil {
		return err
	}
	log.Info().
		Str("driver", cfg.Database.Driver).
		Str("history_table", dc.HistoryTable()).
		Msg("migrations applied")
	return nil
}

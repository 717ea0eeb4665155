// Command db_init creates the skilltrack database, applies the
// embedded migrations and seeds the default entry-form options.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	dbfs "github.com/garnizeh/skilltrack/db"
	"github.com/garnizeh/skilltrack/internal/config"
	"github.com/garnizeh/skilltrack/internal/db"
)

func main() {
	configPath := flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DatabasePath, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database, dbfs.Migrations, dbfs.SeedFiles); err != nil {
		fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
		os.Exit(1)
	}

	var migrations, options int
	if row := database.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations`); row != nil {
		_ = row.Scan(&migrations)
	}
	if row := database.QueryRow(ctx, `SELECT COUNT(1) FROM options`); row != nil {
		_ = row.Scan(&options)
	}

	fmt.Printf("Initialized %s: %d migration(s) applied, %d form option(s) available.\n", cfg.DatabasePath, migrations, options)
}

package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/pressly/goose/v3"
)

const DefaultDir = "pkg/migrate/migrations"

// Run executes a standard goose command that requires a DB connection.
func Run(ctx context.Context, db *sql.DB, dir string, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	if dir == "" {
		return fmt.Errorf("dir is required")
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	switch command {
	case "up":
		return goose.UpContext(ctx, db, dir)
	case "up-by-one":
		return goose.UpByOneContext(ctx, db, dir)
	case "up-to":
		version, err := versionArg(args)
		if err != nil {
			return err
		}
		return goose.UpToContext(ctx, db, dir, version)
	case "down":
		return goose.DownContext(ctx, db, dir)
	case "down-to":
		version, err := versionArg(args)
		if err != nil {
			return err
		}
		return goose.DownToContext(ctx, db, dir, version)
	case "status":
		return goose.StatusContext(ctx, db, dir)
	case "version":
		return goose.VersionContext(ctx, db, dir)
	default:
		return fmt.Errorf("unsupported goose command %q", command)
	}
}

func versionArg(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("target version is required")
	}
	version, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing target version %q: %w", args[0], err)
	}
	return version, nil
}

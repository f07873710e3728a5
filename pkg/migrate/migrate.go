// Package migrate applies the storefront schema: goose SQL files for
// Postgres, GORM automigrate for SQLite.
package migrate

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/pressly/goose/v3"
)

// DefaultDir is where create/validate operate on disk.
const DefaultDir = "pkg/migrate/migrations"

//go:embed migrations/*.sql
var embedded embed.FS

// source picks the embedded set for "" and DefaultDir, else the directory on disk.
func source(dir string) (fs.FS, error) {
	if dir == "" || dir == DefaultDir {
		return fs.Sub(embedded, "migrations")
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("migrations dir: %w", err)
	}
	return os.DirFS(dir), nil
}

// Runner applies goose migrations against one Postgres database.
type Runner struct {
	provider *goose.Provider
}

func NewRunner(db *sql.DB, dir string) (*Runner, error) {
	if db == nil {
		return nil, errors.New("db is required")
	}
	fsys, err := source(dir)
	if err != nil {
		return nil, err
	}
	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("goose provider: %w", err)
	}
	return &Runner{provider: provider}, nil
}

// Apply runs up, down or status and returns one line per migration touched.
func (r *Runner) Apply(ctx context.Context, command string) ([]string, error) {
	switch command {
	case "up":
		results, err := r.provider.Up(ctx)
		return describeResults(results), wrapGoose(command, err)
	case "down":
		result, err := r.provider.Down(ctx)
		if result == nil {
			return nil, wrapGoose(command, err)
		}
		return describeResults([]*goose.MigrationResult{result}), wrapGoose(command, err)
	case "status":
		statuses, err := r.provider.Status(ctx)
		if err != nil {
			return nil, wrapGoose(command, err)
		}
		lines := make([]string, 0, len(statuses))
		for _, s := range statuses {
			line := fmt.Sprintf("%-8s %s", s.State, s.Source.Path)
			if !s.AppliedAt.IsZero() {
				line += "  " + s.AppliedAt.UTC().Format("2006-01-02 15:04:05")
			}
			lines = append(lines, line)
		}
		return lines, nil
	}
	return nil, fmt.Errorf("unknown goose command %q", command)
}

// MigrateTo moves the schema up or down until target is the current version.
// target is a migration version such as 20251001090300.
func (r *Runner) MigrateTo(ctx context.Context, target string) ([]string, error) {
	version, err := strconv.ParseInt(target, 10, 64)
	if err != nil || version < 0 {
		return nil, fmt.Errorf("invalid version %q (expected YYYYMMDDHHMMSS)", target)
	}
	current, err := r.provider.GetDBVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("get db version: %w", err)
	}

	var results []*goose.MigrationResult
	switch {
	case version > current:
		results, err = r.provider.UpTo(ctx, version)
	case version < current:
		results, err = r.provider.DownTo(ctx, version)
	}
	return describeResults(results), wrapGoose(fmt.Sprintf("to %d", version), err)
}

// Version reports the newest applied migration.
func (r *Runner) Version(ctx context.Context) (int64, error) {
	return r.provider.GetDBVersion(ctx)
}

func describeResults(results []*goose.MigrationResult) []string {
	lines := make([]string, 0, len(results))
	for _, res := range results {
		if res == nil || res.Source == nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("%-4s %s (%s)", res.Direction, res.Source.Path, res.Duration.Round(time.Millisecond)))
	}
	return lines
}

func wrapGoose(command string, err error) error {
	if err == nil || errors.Is(err, goose.ErrNoNextVersion) {
		return nil
	}
	return fmt.Errorf("goose %s: %w", command, err)
}

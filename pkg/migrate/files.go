package migrate

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

const versionLayout = "20060102150405"

var (
	filenameRe = regexp.MustCompile(`^(\d{14})_([a-z0-9_]+)\.sql$`)
	unsafeRe   = regexp.MustCompile(`[^a-z0-9]+`)
)

// File is one goose SQL migration on disk or in the embedded set.
type File struct {
	Version int64
	Name    string
	Path    string
}

// ParseFilename splits <YYYYMMDDHHMMSS>_<name>.sql. ok is false for anything else.
func ParseFilename(filename string) (File, bool) {
	m := filenameRe.FindStringSubmatch(filename)
	if m == nil {
		return File{}, false
	}
	version, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return File{}, false
	}
	return File{Version: version, Name: m[2], Path: filename}, true
}

// Scan lists the migrations under dir in fsys in version order. Every .sql
// file must parse, carry both goose sections with Up before Down, and own a
// unique version.
func Scan(fsys fs.FS, dir string) ([]File, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations %q: %w", dir, err)
	}

	files := make([]File, 0, len(entries))
	byVersion := make(map[int64]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".sql" {
			continue
		}
		file, ok := ParseFilename(entry.Name())
		if !ok {
			return nil, fmt.Errorf("migration %q: want YYYYMMDDHHMMSS_name.sql", entry.Name())
		}
		if other, dup := byVersion[file.Version]; dup {
			return nil, fmt.Errorf("migrations %q and %q share version %d", other, entry.Name(), file.Version)
		}
		byVersion[file.Version] = entry.Name()

		file.Path = filepath.ToSlash(filepath.Join(dir, entry.Name()))
		body, err := fs.ReadFile(fsys, file.Path)
		if err != nil {
			return nil, fmt.Errorf("read migration %q: %w", file.Path, err)
		}
		if err := checkSections(string(body)); err != nil {
			return nil, fmt.Errorf("migration %q: %w", entry.Name(), err)
		}
		files = append(files, file)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no migrations in %q", dir)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Version < files[j].Version })
	return files, nil
}

func checkSections(body string) error {
	up := strings.Index(body, "-- +goose Up")
	down := strings.Index(body, "-- +goose Down")
	switch {
	case up < 0:
		return fmt.Errorf("no -- +goose Up section")
	case down < 0:
		return fmt.Errorf("no -- +goose Down section")
	case down < up:
		return fmt.Errorf("Down section precedes Up")
	}
	return nil
}

// ValidateDir scans dir, or the compiled-in set when dir is DefaultDir or empty.
func ValidateDir(dir string) error {
	_, err := scanSource(dir)
	return err
}

func scanSource(dir string) ([]File, error) {
	fsys, err := source(dir)
	if err != nil {
		return nil, err
	}
	return Scan(fsys, ".")
}

// CreateSQLMigration writes an empty goose migration into dir and returns its
// path. The version is the current UTC time, bumped past the newest existing
// file so out-of-order clocks never produce a version goose would skip.
func CreateSQLMigration(dir, name string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("dir is required")
	}
	slug := strings.Trim(unsafeRe.ReplaceAllString(strings.ToLower(name), "_"), "_")
	if slug == "" {
		return "", fmt.Errorf("migration name %q has no usable characters", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %q: %w", dir, err)
	}

	version, _ := strconv.ParseInt(time.Now().UTC().Format(versionLayout), 10, 64)
	if existing, err := Scan(os.DirFS(dir), "."); err == nil {
		if latest := existing[len(existing)-1].Version; latest >= version {
			version = latest + 1
		}
	}

	path := filepath.Join(dir, fmt.Sprintf("%d_%s.sql", version, slug))
	body := "-- +goose Up\n-- " + slug + "\n\n-- +goose Down\n-- undo " + slug + "\n"
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create migration: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(body); err != nil {
		return "", fmt.Errorf("write migration %q: %w", path, err)
	}
	return path, nil
}

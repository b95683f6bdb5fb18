package migrations

import (
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Files stores forward-only SQL migrations, one directory per dialect.
//
//go:embed postgres/*.sql sqlite/*.sql
var Files embed.FS

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

var filePattern = regexp.MustCompile(`^(\d+)_.*\.sql$`)

// Migration is one embedded SQL file
type Migration struct {
	Version string
	Order   int
	Name    string
	SQL     string
}

// Load returns the migrations of a dialect sorted by version.
func Load(dialect string) ([]Migration, error) {
	entries, err := fs.ReadDir(Files, dialect)
	if err != nil {
		return nil, fmt.Errorf("read embedded %s migrations: %w", dialect, err)
	}

	out := make([]Migration, 0, len(entries))
	seen := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		matches := filePattern.FindStringSubmatch(name)
		if len(matches) != 2 {
			continue
		}

		version := matches[1]
		order, err := strconv.Atoi(version)
		if err != nil {
			return nil, fmt.Errorf("parse migration version from %s: %w", name, err)
		}
		if existing, ok := seen[version]; ok {
			return nil, fmt.Errorf("duplicate migration version %s in %s and %s", version, existing, name)
		}
		seen[version] = name

		raw, err := fs.ReadFile(Files, dialect+"/"+name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}

		out = append(out, Migration{Version: version, Order: order, Name: name, SQL: string(raw)})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Order == out[j].Order {
			return out[i].Name < out[j].Name
		}
		return out[i].Order < out[j].Order
	})
	return out, nil
}

// Statements splits a migration on semicolons and drops empty parts.
func (m Migration) Statements() []string {
	parts := strings.Split(m.SQL, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

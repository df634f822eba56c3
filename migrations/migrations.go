// Package migrations embeds the recordkeeper Postgres schema
package migrations

import (
	"embed"
	"io/fs"
	"sort"
)

//go:embed *.sql
var files embed.FS

// Files returns the schema files in apply order
func Files() ([]string, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Read returns the contents of one schema file
func Read(name string) (string, error) {
	b, err := files.ReadFile(name)
	return string(b), err
}

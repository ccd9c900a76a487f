package data

import (
	"embed"
	"errors"
	"io/fs"
)

//go:embed indexes/*.sql
var indexes embed.FS

// PartialIndexes returns the partial index DDL for a gorm dialector name.
// Dialects without partial index support (mysql) return an empty string.
func PartialIndexes(dialect string) (string, error) {
	b, err := indexes.ReadFile("indexes/" + dialect + ".sql")
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Package migrations embeds the versioned schema scripts, one directory per SQL dialect.
package migrations

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed mysql/*.sql postgres/*.sql sqlite/*.sql
var files embed.FS

// For returns the scripts for the given driver name.
func For(driver string) (fs.FS, error) {
	switch driver {
	case "mysql", "postgres", "sqlite":
		return fs.Sub(files, driver)
	default:
		return nil, fmt.Errorf("no migrations for driver %q", driver)
	}
}

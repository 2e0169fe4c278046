// Package migration applies versioned up/down SQL scripts through GORM.
// File names follow 000001_description.up.sql / 000001_description.down.sql and
// applied versions are tracked in the schema_migrations table.
package migration

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"gorm.io/gorm"
)

// SchemaMigration is one applied script.
type SchemaMigration struct {
	Version   int64     `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"type:varchar(255);not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (SchemaMigration) TableName() string {
	return "schema_migrations"
}

type script struct {
	version int64
	name    string
	up      string
	down    string
}

// Up applies every script not yet recorded, in version order. It returns the versions it applied.
func Up(ctx context.Context, db *gorm.DB, fsys fs.FS) ([]int64, error) {
	db = db.WithContext(ctx)
	if err := db.AutoMigrate(&SchemaMigration{}); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return nil, err
	}

	scripts, err := collect(fsys)
	if err != nil {
		return nil, err
	}

	var done []int64
	for _, s := range scripts {
		if applied[s.version] {
			continue
		}
		if s.up == "" {
			return done, fmt.Errorf("migration %06d_%s has no up script", s.version, s.name)
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := execScript(tx, fsys, s.up); err != nil {
				return err
			}
			return tx.Create(&SchemaMigration{Version: s.version, Name: s.name, AppliedAt: time.Now()}).Error
		})
		if err != nil {
			return done, fmt.Errorf("apply migration %06d_%s: %w", s.version, s.name, err)
		}
		hlog.CtxInfof(ctx, "[Migration] applied %06d_%s", s.version, s.name)
		done = append(done, s.version)
	}

	return done, nil
}

// Down reverts the latest steps applied scripts, newest first; steps <= 0 reverts all of them.
// It returns the versions it reverted.
func Down(ctx context.Context, db *gorm.DB, fsys fs.FS, steps int) ([]int64, error) {
	db = db.WithContext(ctx)
	if steps <= 0 {
		steps = -1 // no limit
	}
	if err := db.AutoMigrate(&SchemaMigration{}); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	var rows []SchemaMigration
	if err := db.Order("version DESC").Limit(steps).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load applied migrations: %w", err)
	}

	scripts, err := collect(fsys)
	if err != nil {
		return nil, err
	}
	byVersion := make(map[int64]script, len(scripts))
	for _, s := range scripts {
		byVersion[s.version] = s
	}

	var done []int64
	for _, row := range rows {
		s, ok := byVersion[row.Version]
		if !ok || s.down == "" {
			return done, fmt.Errorf("migration %06d_%s has no down script", row.Version, row.Name)
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := execScript(tx, fsys, s.down); err != nil {
				return err
			}
			return tx.Delete(&SchemaMigration{}, row.Version).Error
		})
		if err != nil {
			return done, fmt.Errorf("revert migration %06d_%s: %w", s.version, s.name, err)
		}
		hlog.CtxInfof(ctx, "[Migration] reverted %06d_%s", s.version, s.name)
		done = append(done, s.version)
	}

	return done, nil
}

func appliedVersions(db *gorm.DB) (map[int64]bool, error) {
	var versions []int64
	if err := db.Model(&SchemaMigration{}).Pluck("version", &versions).Error; err != nil {
		return nil, fmt.Errorf("load applied migrations: %w", err)
	}
	applied := make(map[int64]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}
	return applied, nil
}

// collect pairs up/down files by version, sorted ascending.
func collect(fsys fs.FS) ([]script, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	byVersion := make(map[int64]*script)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()

		var direction string
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			direction = "up"
		case strings.HasSuffix(name, ".down.sql"):
			direction = "down"
		default:
			continue
		}

		prefix, rest, ok := strings.Cut(name, "_")
		if !ok {
			return nil, fmt.Errorf("invalid migration file name: %s", name)
		}
		version, err := strconv.ParseInt(prefix, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid migration version in %s: %w", name, err)
		}

		s, ok := byVersion[version]
		if !ok {
			s = &script{version: version, name: strings.TrimSuffix(strings.TrimSuffix(rest, ".up.sql"), ".down.sql")}
			byVersion[version] = s
		}
		if direction == "up" {
			s.up = name
		} else {
			s.down = name
		}
	}

	scripts := make([]script, 0, len(byVersion))
	for _, s := range byVersion {
		scripts = append(scripts, *s)
	}
	sort.Slice(scripts, func(i, j int) bool { return scripts[i].version < scripts[j].version })
	return scripts, nil
}

func execScript(tx *gorm.DB, fsys fs.FS, path string) error {
	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return err
	}
	for _, stmt := range splitStatements(string(content)) {
		if err := tx.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// splitStatements breaks a script on statement-terminating semicolons.
// Scripts must not contain semicolons inside string literals.
func splitStatements(content string) []string {
	var b strings.Builder
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	var stmts []string
	for _, part := range strings.Split(b.String(), ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// Command migrate applies or rolls back the embedded schema migrations.
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate -steps 1 down
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"mini-blog/migrations"
	"mini-blog/pkg/common/config"
	"mini-blog/pkg/common/migration"
)

func main() {
	steps := flag.Int("steps", 0, "number of migrations to roll back with down; 0 rolls back all")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: migrate [-steps n] up|down\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	hlog.SetLevel(cfg.HlogLevel())

	db, err := cfg.InitDB()
	if err != nil {
		hlog.Fatalf("Failed to initialize database: %v", err)
	}

	fsys, err := migrations.For(cfg.Database.Driver)
	if err != nil {
		hlog.Fatalf("load migrations: %v", err)
	}

	ctx := context.Background()
	var versions []int64
	switch flag.Arg(0) {
	case "up":
		versions, err = migration.Up(ctx, db, fsys)
	case "down":
		versions, err = migration.Down(ctx, db, fsys, *steps)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		hlog.Fatalf("migrate %s: %v", flag.Arg(0), err)
	}
	hlog.Infof("migrate %s: %v", flag.Arg(0), versions)
}

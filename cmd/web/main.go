package main

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"

	"mini-blog/migrations"
	"mini-blog/pkg/common/config"
	"mini-blog/pkg/common/migration"
	"mini-blog/pkg/web/router"
)

func main() {
	cfg := config.Load()
	hlog.SetLevel(cfg.HlogLevel())

	db, err := cfg.InitDB()
	if err != nil {
		hlog.Fatalf("Failed to initialize database: %v", err)
	}

	if cfg.Database.AutoMigrate {
		fsys, err := migrations.For(cfg.Database.Driver)
		if err != nil {
			hlog.Fatalf("load migrations: %v", err)
		}
		applied, err := migration.Up(context.Background(), db, fsys)
		if err != nil {
			hlog.Fatalf("migrate: %v", err)
		}
		hlog.Infof("applied %d migration(s)", len(applied))
	}

	h := server.Default(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
	)

	router.RegisterAPIs(h, cfg, db)

	h.Spin()
}

package main

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/recall/internal/config"
	"github.com/at-ishikawa/recall/internal/database"
	"github.com/at-ishikawa/recall/internal/item"
	"github.com/at-ishikawa/recall/internal/scheduler"
	"github.com/at-ishikawa/recall/internal/store"
)

// appContext bundles the collaborators every command needs: the resolved
// study date, the repositories and the scheduling components.
type appContext struct {
	cfg     *config.Config
	db      *sqlx.DB
	items   store.ItemRepository
	stats   store.StatsRepository
	engine  *scheduler.Engine
	planner scheduler.Planner
	today   item.Date
}

func newAppContext() (*appContext, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}

	return &appContext{
		cfg:     cfg,
		db:      db,
		items:   store.NewDBItemRepository(db),
		stats:   store.NewDBStatsRepository(db),
		engine:  scheduler.NewEngine(cfg.Schedule.Intervals, cfg.Schedule.RequiredStreak),
		planner: scheduler.NewPlanner(cfg.Schedule.RequiredStreak, cfg.Schedule.DailyLimit),
		today:   scheduler.ResolveToday(time.Now(), cfg.Schedule.DayCutoffHour),
	}, nil
}

func (app *appContext) Close() {
	_ = app.db.Close()
}

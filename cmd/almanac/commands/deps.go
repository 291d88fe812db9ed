package commands

import (
	"context"
	"fmt"

	"github.com/wonny/almanac/internal/archive"
	"github.com/wonny/almanac/internal/contracts"
	"github.com/wonny/almanac/internal/ingest"
	"github.com/wonny/almanac/internal/metrics"
	"github.com/wonny/almanac/internal/pipeline"
	"github.com/wonny/almanac/internal/snapshot"
	"github.com/wonny/almanac/pkg/config"
	"github.com/wonny/almanac/pkg/database"
	"github.com/wonny/almanac/pkg/httputil"
	"github.com/wonny/almanac/pkg/logger"
)

// deps wires the application together once per command invocation
type deps struct {
	cfg      *config.Config
	log      *logger.Logger
	db       *database.DB // nil when the file store is in use
	store    contracts.SnapshotStore
	engine   *snapshot.Engine
	runner   *pipeline.Runner
	archiver *archive.Manager
}

// setup loads config and builds the component graph. The snapshot store
// is Postgres when DATABASE_URL is set, the file store otherwise.
func setup() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if verbose {
		cfg.LogLevel = "debug"
	}
	log := logger.New(cfg)

	d := &deps{cfg: cfg, log: log}

	if cfg.Database.URL != "" {
		db, err := database.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		pgStore := snapshot.NewPGStore(db.Pool)
		if err := pgStore.EnsureSchema(context.Background()); err != nil {
			db.Close()
			return nil, err
		}
		d.db = db
		d.store = pgStore
		log.Info("Using Postgres snapshot store")
	} else {
		d.store = snapshot.NewFileStore(cfg.Paths.SnapshotDir)
		log.WithField("dir", cfg.Paths.SnapshotDir).Debug("Using file snapshot store")
	}

	calc := metrics.New(cfg.League)
	loader := ingest.NewLoader(cfg.Paths.DataDir, cfg.League.LeagueID, log)
	if cfg.StandingsURL != "" {
		fetcher := ingest.NewHTMLFetcher(httputil.New(log), log)
		loader = loader.WithHTMLFallback(fetcher, cfg.StandingsURL)
	}

	d.engine = snapshot.NewEngine(d.store, log)
	d.runner = pipeline.NewRunner(loader, calc, d.engine, log)
	d.archiver = archive.NewManager(cfg.Paths.ArchiveDir, log)

	return d, nil
}

// Close releases held resources
func (d *deps) Close() {
	if d.db != nil {
		d.db.Close()
	}
}

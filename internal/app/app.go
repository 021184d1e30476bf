package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/riskibarqy/event-agenda/external/filmaffinity"
	"github.com/riskibarqy/event-agenda/external/goodreads"
	"github.com/riskibarqy/event-agenda/internal/config"
	"github.com/riskibarqy/event-agenda/internal/domain/book"
	"github.com/riskibarqy/event-agenda/internal/domain/event"
	"github.com/riskibarqy/event-agenda/internal/domain/movie"
	"github.com/riskibarqy/event-agenda/internal/domain/place"
	"github.com/riskibarqy/event-agenda/internal/infrastructure/fixtable"
	"github.com/riskibarqy/event-agenda/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/event-agenda/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/event-agenda/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/event-agenda/internal/infrastructure/repository/sqlite"
	"github.com/riskibarqy/event-agenda/internal/interfaces/jsonfeed"
	"github.com/riskibarqy/event-agenda/internal/platform/id"
	"github.com/riskibarqy/event-agenda/internal/platform/logging"
	"github.com/riskibarqy/event-agenda/internal/usecase"
)

// Collector is a wired collector run: codec, service and the resources they
// hold open.
type Collector struct {
	codec   *jsonfeed.Codec
	service *usecase.CollectorService
	logger  *logging.Logger
	closers []func() error
}

func NewCollector(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Collector, error) {
	if logger == nil {
		logger = logging.Default()
	}
	codec, err := jsonfeed.NewCodec(logger)
	if err != nil {
		return nil, fmt.Errorf("build codec: %w", err)
	}
	c := &Collector{codec: codec, logger: logger}

	gazetteer, err := place.NewDefaultGazetteer()
	if err != nil {
		return nil, fmt.Errorf("build gazetteer: %w", err)
	}

	overrides, err := fixtable.Load(cfg.FixEventPath)
	if err != nil {
		return nil, fmt.Errorf("load fix table: %w", err)
	}
	logger.Info("fix table loaded", "path", cfg.FixEventPath, "events", overrides.Len())

	movies, err := c.openMovies(ctx, cfg)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	publish, err := c.openPublish(ctx, cfg)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	var books book.Lookup
	if cfg.GoodReads.Enabled {
		books = goodreads.NewClient(goodreads.ClientConfig{
			BaseURL:        cfg.GoodReads.BaseURL,
			Timeout:        cfg.GoodReads.Timeout,
			MaxRetries:     cfg.GoodReads.MaxRetries,
			CacheTTL:       cfg.CacheTTL,
			Logger:         logger,
			CircuitBreaker: cfg.GoodReads.CircuitBreaker,
		})
	}

	var films usecase.FilmLookup
	if cfg.FilmAffinity.Enabled {
		films = filmaffinity.NewClient(filmaffinity.ClientConfig{
			BaseURL:        cfg.FilmAffinity.BaseURL,
			Timeout:        cfg.FilmAffinity.Timeout,
			MaxRetries:     cfg.FilmAffinity.MaxRetries,
			CacheTTL:       cfg.CacheTTL,
			Logger:         logger,
			CircuitBreaker: cfg.FilmAffinity.CircuitBreaker,
		})
	}

	engine := event.NewEngine(event.Config{
		Gazetteer: gazetteer,
		Overrides: overrides,
		Policy:    policyFromConfig(cfg),
		Movies:    movies,
		Books:     books,
		Logger:    logger,
		MaxPasses: cfg.FixMaxPasses,
	})

	c.service = usecase.NewCollectorService(
		engine,
		publish,
		films,
		movies,
		id.NewUUIDGenerator(),
		usecase.CollectorConfig{
			MaxPrice:             cfg.MaxPrice,
			DefaultMaxPrice:      cfg.DefaultMaxPrice,
			MaxSessions:          cfg.MaxSessions,
			AvoidWorkingSessions: cfg.AvoidWorkingSessions,
			Categories:           cfg.Categories,
			KOPlaces:             cfg.KOPlaces,
			Workers:              cfg.FixWorkers,
			SessionDomains:       cfg.SessionDomains,
		},
		logger,
	)
	return c, nil
}

// Run decodes the raw pool from in, collects it and writes the agenda to out.
func (c *Collector) Run(ctx context.Context, in io.Reader, out io.Writer) (int, error) {
	raw, err := c.codec.DecodeEvents(ctx, in)
	if err != nil {
		return 0, fmt.Errorf("decode raw events: %w", err)
	}
	events, err := c.service.Collect(ctx, raw)
	if err != nil {
		return 0, fmt.Errorf("collect events: %w", err)
	}
	if err := c.codec.EncodeEvents(out, events); err != nil {
		return 0, fmt.Errorf("encode events: %w", err)
	}
	return len(events), nil
}

func (c *Collector) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errs...)
}

func (c *Collector) openMovies(ctx context.Context, cfg config.Config) (movie.Repository, error) {
	if cfg.MovieDBPath == "" {
		c.logger.Warn("MOVIE_DB_PATH is empty, cinema events will not be resolved")
		return memory.NewMovieRepository(nil), nil
	}
	db, err := sqlite.Open(ctx, cfg.MovieDBPath)
	if err != nil {
		return nil, fmt.Errorf("open movie database: %w", err)
	}
	c.closers = append(c.closers, db.Close)
	c.logger.Info("movie database opened", "path", cfg.MovieDBPath, "fts", cfg.MovieDBFTS)
	return cache.NewMovieRepository(sqlite.NewMovieRepository(db, cfg.MovieDBFTS)), nil
}

func (c *Collector) openPublish(ctx context.Context, cfg config.Config) (event.PublishRepository, error) {
	if cfg.PublishStore != config.PublishStorePostgres {
		return memory.NewPublishRepository(nil), nil
	}
	db, err := sqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.ServiceName))
	if err != nil {
		return nil, fmt.Errorf("open publish database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping publish database %q: %w", dbNameFromURL(cfg.DBURL), err)
	}
	c.closers = append(c.closers, db.Close)
	c.logger.Info("publish database opened", "db", dbNameFromURL(cfg.DBURL))
	return postgres.NewPublishRepository(db), nil
}

func policyFromConfig(cfg config.Config) event.Policy {
	policy := event.DefaultPolicy()
	if cfg.OwnDomain != "" {
		policy.OwnDomain = cfg.OwnDomain
	}
	if len(cfg.TrustedMoreDomains) > 0 {
		policy.TrustedMoreDomains = cfg.TrustedMoreDomains
	}
	return policy
}

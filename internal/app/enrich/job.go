package enrich

import (
	"context"
	"fmt"

	"cm_sheet/internal/domain/model"

	"go.uber.org/zap"
)

type CatalogSource interface {
	ProblemsetProblems(ctx context.Context) ([]model.CatalogEntry, error)
}

type ProblemStore interface {
	Load() ([]model.Problem, error)
	Save(problems []model.Problem) error
}

// Job rewrites the problem list with catalog metadata. Nothing is written
// unless the catalog fetch and the list load both succeed.
type Job struct {
	catalog CatalogSource
	store   ProblemStore
	logger  *zap.Logger
}

func NewJob(catalog CatalogSource, store ProblemStore, logger *zap.Logger) *Job {
	return &Job{catalog: catalog, store: store, logger: logger}
}

func (j *Job) Run(ctx context.Context) (Stats, error) {
	j.logger.Info("Fetching problemset catalog")
	catalog, err := j.catalog.ProblemsetProblems(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("fetch catalog: %w", err)
	}
	j.logger.Info("Catalog fetched", zap.Int("entries", len(catalog)))

	problems, err := j.store.Load()
	if err != nil {
		return Stats{}, fmt.Errorf("load problem list: %w", err)
	}

	enriched, stats := Join(catalog, problems)

	platforms := make([]string, len(stats.Platforms))
	for i, p := range stats.Platforms {
		platforms[i] = string(p)
	}
	j.logger.Info("Problem list enriched",
		zap.Int("rated", stats.Rated),
		zap.Int("total", stats.Total),
		zap.Strings("platforms", platforms),
	)

	if err := j.store.Save(enriched); err != nil {
		return Stats{}, fmt.Errorf("save problem list: %w", err)
	}
	return stats, nil
}

package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/result"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/internal"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/ports"
)

// BatchService assesses several scenario files in one invocation. Scenarios
// are independent, so they run concurrently up to a worker limit; one failing
// scenario is reported in its slot without aborting the others.
type BatchService struct {
	source     ports.ScenarioSourcePort
	assessment *AssessmentService
	logger     *internal.Logger
	workers    int
}

// BatchItem is one scenario's outcome within a batch. Exactly one of
// Assessment or Err is set.
type BatchItem struct {
	Path       string
	Assessment *result.Assessment
	Err        error
}

// NewBatchService creates a batch runner with the given worker limit.
// A limit below 1 falls back to serial execution.
func NewBatchService(source ports.ScenarioSourcePort, assessment *AssessmentService, logger *internal.Logger, workers int) *BatchService {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &BatchService{
		source:     source,
		assessment: assessment,
		logger:     logger,
		workers:    workers,
	}
}

// Run assesses every path and returns outcomes in input order. The returned
// error is non-nil only for context cancellation; per-scenario failures live
// in their BatchItem.
func (s *BatchService) Run(ctx context.Context, paths []string, opts AssessmentOptions) ([]BatchItem, error) {
	items := make([]BatchItem, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			item := BatchItem{Path: path}
			model, err := s.source.Load(gctx, path)
			if err != nil {
				item.Err = err
			} else {
				item.Assessment, item.Err = s.assessment.Assess(gctx, model, opts)
			}

			if item.Err != nil {
				s.logger.Warn("scenario %s failed: %v", path, item.Err)
			}

			// Each goroutine writes only its own slot.
			items[i] = item
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return items, err
	}
	return items, nil
}

package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/result"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/scenario"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/internal"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/internal/engine"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/ports"
)

// AssessmentService orchestrates a full scenario assessment: the baseline
// pipeline run, then the sensitivity sweep and adversarial twins derived from
// it. Derived analyses read the frozen baseline and a shared immutable model,
// so they run concurrently.
type AssessmentService struct {
	pipeline *engine.Pipeline
	ledger   ports.RunWriterPort
	logger   *internal.Logger
}

// AssessmentOptions selects which derived analyses accompany the baseline.
type AssessmentOptions struct {
	Sensitivity bool
	Twins       bool
	// Analytic skips Monte Carlo sampling for the baseline. The full run
	// requires an explicit sample count in the engine config.
	Analytic bool
}

// NewAssessmentService creates an assessment service. The ledger may be nil
// when persistence is not wanted (single-shot CLI runs writing to disk only).
func NewAssessmentService(pipeline *engine.Pipeline, ledger ports.RunWriterPort, logger *internal.Logger) *AssessmentService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &AssessmentService{
		pipeline: pipeline,
		ledger:   ledger,
		logger:   logger,
	}
}

// Assess runs the baseline pipeline and the requested derived analyses, then
// persists the bundle if a ledger is configured.
func (s *AssessmentService) Assess(ctx context.Context, model *scenario.Model, opts AssessmentOptions) (*result.Assessment, error) {
	baseline, err := s.runBaseline(ctx, model, opts)
	if err != nil {
		return nil, err
	}

	s.logger.Info("baseline complete: scenario=%s run=%s top_events=%d",
		model.Name, baseline.RunID, len(baseline.TopEvents))

	assessment := &result.Assessment{Baseline: baseline}

	g, gctx := errgroup.WithContext(ctx)

	if opts.Sensitivity {
		g.Go(func() error {
			analyzer := engine.NewSensitivityAnalyzer(s.pipeline)
			report, err := analyzer.Sweep(gctx, model, baseline)
			if err != nil {
				return err
			}
			assessment.Sensitivity = report
			return nil
		})
	}

	if opts.Twins && len(model.Twins) > 0 {
		g.Go(func() error {
			generator := engine.NewTwinGenerator(s.pipeline)
			twins, err := generator.Evaluate(gctx, model, baseline)
			if err != nil {
				return err
			}
			assessment.Twins = twins
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if assessment.Sensitivity != nil {
		s.logger.Debug("sensitivity sweep ranked %d risks", len(assessment.Sensitivity.Entries))
	}

	if s.ledger != nil {
		if err := s.ledger.SaveAssessment(ctx, assessment); err != nil {
			return nil, err
		}
	}

	return assessment, nil
}

func (s *AssessmentService) runBaseline(ctx context.Context, model *scenario.Model, opts AssessmentOptions) (*result.PipelineResult, error) {
	if opts.Analytic {
		return s.pipeline.RunAnalytic(ctx, model)
	}
	return s.pipeline.Run(ctx, model)
}

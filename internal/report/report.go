package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/montanaflynn/stats"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/core"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/result"
)

// Builder renders a finished assessment as a markdown report.
type Builder struct{}

// NewBuilder creates a report builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Markdown renders the full report document.
func (b *Builder) Markdown(assessment *result.Assessment) ([]byte, error) {
	baseline := assessment.Baseline

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Risk Assessment: %s\n\n", baseline.ScenarioName)
	fmt.Fprintf(&sb, "- Run: `%s`\n", baseline.RunID)
	fmt.Fprintf(&sb, "- Fingerprint: `%s`\n", baseline.Fingerprint)
	fmt.Fprintf(&sb, "- Seed: %d\n\n", baseline.Seed)

	if err := b.writeDistribution(&sb, baseline); err != nil {
		return nil, err
	}
	b.writeTopEvents(&sb, baseline)
	b.writeCascade(&sb, baseline)
	b.writeRiskTable(&sb, baseline)
	if assessment.Sensitivity != nil {
		b.writeSensitivity(&sb, assessment.Sensitivity)
	}
	if len(assessment.Twins) > 0 {
		b.writeTwins(&sb, assessment.Twins)
	}

	return []byte(sb.String()), nil
}

// HTML renders the report as a standalone HTML fragment.
func (b *Builder) HTML(assessment *result.Assessment) ([]byte, error) {
	md, err := b.Markdown(assessment)
	if err != nil {
		return nil, err
	}
	return RenderHTML(md), nil
}

// RenderHTML converts markdown to HTML.
func RenderHTML(md []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse(md)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags,
	})
	return markdown.Render(doc, renderer)
}

func (b *Builder) writeDistribution(sb *strings.Builder, baseline *result.PipelineResult) error {
	if len(baseline.Final) == 0 {
		return nil
	}

	values := make([]float64, 0, len(baseline.Final))
	for _, v := range baseline.Final {
		values = append(values, v)
	}

	mean, err := stats.Mean(values)
	if err != nil {
		return fmt.Errorf("failed to summarize final probabilities: %w", err)
	}
	median, err := stats.Median(values)
	if err != nil {
		return fmt.Errorf("failed to summarize final probabilities: %w", err)
	}
	max, err := stats.Max(values)
	if err != nil {
		return fmt.Errorf("failed to summarize final probabilities: %w", err)
	}

	sb.WriteString("## Final Risk Distribution\n\n")
	fmt.Fprintf(sb, "%d risks. Mean %.4f, median %.4f, max %.4f.\n\n",
		len(values), mean, median, max)
	return nil
}

func (b *Builder) writeTopEvents(sb *strings.Builder, baseline *result.PipelineResult) {
	if len(baseline.TopEvents) == 0 {
		return
	}

	sb.WriteString("## Top Events\n\n")
	sb.WriteString("| Top Event | Analytic | MC Mean | Interval |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, top := range baseline.TopEvents {
		mcMean, interval := "-", "-"
		if mc := top.MonteCarlo; mc != nil {
			mcMean = fmt.Sprintf("%.5f", mc.Mean)
			interval = fmt.Sprintf("[%.5f, %.5f] (%s)", mc.Interval.Low, mc.Interval.High, mc.Interval.Method)
		}
		fmt.Fprintf(sb, "| %s | %.5f | %s | %s |\n", top.ID, top.Analytic, mcMean, interval)
	}
	sb.WriteString("\n")
}

func (b *Builder) writeCascade(sb *strings.Builder, baseline *result.PipelineResult) {
	sb.WriteString("## Cascade\n\n")
	status := "converged"
	if baseline.Cascade.Capped {
		status = "capped at iteration limit"
	}
	fmt.Fprintf(sb, "%d iterations, %s, final max delta %.2e.\n\n",
		baseline.Cascade.Iterations, status, baseline.Cascade.MaxDelta)

	if len(baseline.Saturated) > 0 {
		ids := make([]string, len(baseline.Saturated))
		for i, id := range baseline.Saturated {
			ids[i] = string(id)
		}
		fmt.Fprintf(sb, "Saturated composites capped at 1.0: %s.\n\n", strings.Join(ids, ", "))
	}
}

func (b *Builder) writeRiskTable(sb *strings.Builder, baseline *result.PipelineResult) {
	ids := make([]string, 0, len(baseline.Final))
	for id := range baseline.Final {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)

	sb.WriteString("## Risks\n\n")
	sb.WriteString("| Risk | Scored | Posterior | Adjusted | Final |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, id := range ids {
		rid := core.RiskID(id)
		fmt.Fprintf(sb, "| %s | %.4f | %.4f | %.4f | %.4f |\n",
			id, baseline.Scored[rid], baseline.Posterior[rid], baseline.Adjusted[rid], baseline.Final[rid])
	}
	sb.WriteString("\n")
}

func (b *Builder) writeSensitivity(sb *strings.Builder, report *result.SensitivityReport) {
	sb.WriteString("## Sensitivity\n\n")
	fmt.Fprintf(sb, "Top event `%s`, baseline %.5f.\n\n", report.TopEvent, report.Baseline)
	sb.WriteString("| Rank | Risk | Base | Max Delta | Worst Factor |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for i, entry := range report.Entries {
		fmt.Fprintf(sb, "| %d | %s | %.4f | %+.5f | %.2f |\n",
			i+1, entry.RiskID, entry.BaseProbability, entry.MaxDelta, entry.WorstFactor)
	}
	sb.WriteString("\n")
}

func (b *Builder) writeTwins(sb *strings.Builder, twins []result.TwinResult) {
	sb.WriteString("## Adversarial Twins\n\n")
	sb.WriteString("| Twin | Mode | Bound | Top Event | Delta |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, twin := range twins {
		fmt.Fprintf(sb, "| %s | %s | %.2f | %.5f | %+.5f |\n",
			twin.TwinID, twin.Mode, twin.Bound, twin.TopEvent, twin.Delta)
	}
	sb.WriteString("\n")
}

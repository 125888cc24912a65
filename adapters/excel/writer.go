package excel

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/core"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/result"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/internal/errors"
)

// ReportWriter exports a finished assessment as an Excel workbook with one
// sheet per result table: risks, top events, sensitivity and twins.
type ReportWriter struct {
	filePath string
}

// NewReportWriter creates a writer targeting the given path.
func NewReportWriter(filePath string) *ReportWriter {
	return &ReportWriter{filePath: filePath}
}

// Write renders the assessment workbook and saves it.
func (w *ReportWriter) Write(assessment *result.Assessment) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeRiskSheet(f, assessment.Baseline); err != nil {
		return errors.ExportError("excel", err)
	}
	if err := w.writeTopEventSheet(f, assessment.Baseline); err != nil {
		return errors.ExportError("excel", err)
	}
	if assessment.Sensitivity != nil {
		if err := w.writeSensitivitySheet(f, assessment.Sensitivity); err != nil {
			return errors.ExportError("excel", err)
		}
	}
	if len(assessment.Twins) > 0 {
		if err := w.writeTwinSheet(f, assessment.Twins); err != nil {
			return errors.ExportError("excel", err)
		}
	}

	// The default sheet is replaced by the first real one.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return errors.ExportError("excel", err)
	}

	if err := f.SaveAs(w.filePath); err != nil {
		return errors.ExportError("excel", err)
	}
	return nil
}

func (w *ReportWriter) writeRiskSheet(f *excelize.File, baseline *result.PipelineResult) error {
	const sheet = "Risks"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []interface{}{"risk_id", "scored", "posterior", "adjusted", "final"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}

	ids := make([]string, 0, len(baseline.Final))
	for id := range baseline.Final {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)

	for i, id := range ids {
		cell := fmt.Sprintf("A%d", i+2)
		rid := core.RiskID(id)
		row := []interface{}{
			id,
			baseline.Scored[rid],
			baseline.Posterior[rid],
			baseline.Adjusted[rid],
			baseline.Final[rid],
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func (w *ReportWriter) writeTopEventSheet(f *excelize.File, baseline *result.PipelineResult) error {
	const sheet = "TopEvents"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []interface{}{"top_event", "analytic", "mc_mean", "mc_low", "mc_high", "mc_samples"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}

	for i, top := range baseline.TopEvents {
		row := []interface{}{top.ID, top.Analytic, nil, nil, nil, nil}
		if mc := top.MonteCarlo; mc != nil {
			row[2] = mc.Mean
			row[3] = mc.Interval.Low
			row[4] = mc.Interval.High
			row[5] = mc.Samples
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func (w *ReportWriter) writeSensitivitySheet(f *excelize.File, report *result.SensitivityReport) error {
	const sheet = "Sensitivity"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []interface{}{"rank", "risk_id", "base_probability", "max_delta", "worst_factor"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}

	for i, entry := range report.Entries {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{i + 1, string(entry.RiskID), entry.BaseProbability, entry.MaxDelta, entry.WorstFactor}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func (w *ReportWriter) writeTwinSheet(f *excelize.File, twins []result.TwinResult) error {
	const sheet = "Twins"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []interface{}{"twin_id", "mode", "bound", "seed", "top_event", "delta"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}

	for i, twin := range twins {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{twin.TwinID, string(twin.Mode), twin.Bound, twin.Seed, twin.TopEvent, twin.Delta}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

package scenariojson

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/core"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/scenario"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/ports"
)

// Loader reads scenario declarations from JSON files. Decoding is strict:
// unknown fields are rejected so a typo in an input file surfaces as an error
// instead of a silently ignored setting.
type Loader struct{}

// NewLoader creates a scenario file loader.
func NewLoader() ports.ScenarioSourcePort {
	return &Loader{}
}

// Load reads, decodes and validates one scenario file.
func (l *Loader) Load(ctx context.Context, path string) (*scenario.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file %s: %w", path, err)
	}

	model, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("scenario file %s: %w", path, err)
	}
	return model, nil
}

// Decode parses and validates a scenario document.
func Decode(data []byte) (*scenario.Model, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var model scenario.Model
	if err := dec.Decode(&model); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}

	if model.SchemaVersion == "" {
		model.SchemaVersion = scenario.CurrentSchemaVersion
	}

	if err := model.Validate(); err != nil {
		return nil, err
	}
	if model.Tree != nil {
		known := make(map[core.RiskID]bool, len(model.Risks))
		for _, id := range model.RiskIDs() {
			known[id] = true
		}
		if err := model.Tree.Validate(known); err != nil {
			return nil, err
		}
	}
	return &model, nil
}

// Encode renders a model back to indented JSON, for fixture generation and
// round-trip tooling.
func Encode(model *scenario.Model) ([]byte, error) {
	return json.MarshalIndent(model, "", "  ")
}

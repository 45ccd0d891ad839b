package formatter

import (
	"encoding/json"

	"github.com/yildizm/burden/internal/diagnostic"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

// SummaryOutput is the JSON document written for a summary
type SummaryOutput struct {
	Total          int     `json:"total"`
	Levels         []Count `json:"levels"`
	Codes          []Count `json:"codes"`
	BuildFinished  bool    `json:"build_finished"`
	BuildSucceeded bool    `json:"build_succeeded"`
}

func (f *jsonFormatter) Format(summary *diagnostic.Summary) ([]byte, error) {
	output := &SummaryOutput{
		Total:          summary.Total,
		Levels:         sortedCounts(summary.Levels),
		Codes:          sortedCounts(summary.Codes),
		BuildFinished:  summary.BuildFinished,
		BuildSucceeded: summary.BuildSucceeded,
	}
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

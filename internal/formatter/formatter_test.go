package formatter

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/yildizm/burden/internal/diagnostic"
)

func sampleSummary() *diagnostic.Summary {
	s := diagnostic.Summarize(diagnostic.NewBuffer(
		diagnostic.Diagnostic{Code: "E0308", Level: diagnostic.LevelError},
		diagnostic.Diagnostic{Code: "unused_variables", Level: diagnostic.LevelWarning},
		diagnostic.Diagnostic{Code: "unused_variables", Level: diagnostic.LevelWarning},
	))
	s.BuildFinished = true
	return s
}

func TestSortedCounts(t *testing.T) {
	got := sortedCounts(map[string]int{"b": 2, "a": 2, "c": 5, "d": 1})
	want := []Count{{"c", 5}, {"a", 2}, {"b", 2}, {"d", 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sortedCounts() = %v, want %v", got, want)
	}
}

func TestJSONFormatter(t *testing.T) {
	data, err := NewJSON().Format(sampleSummary())
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var out SummaryOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out.Total != 3 {
		t.Errorf("Total = %d, want 3", out.Total)
	}
	if len(out.Codes) != 2 || out.Codes[0].Name != "unused_variables" {
		t.Errorf("codes not sorted by count: %v", out.Codes)
	}
	if !out.BuildFinished || out.BuildSucceeded {
		t.Errorf("build flags not carried: %+v", out)
	}
}

func TestTerminalFormatter(t *testing.T) {
	data, err := NewTerminal(false).Format(sampleSummary())
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := string(data)
	for _, want := range []string{"Diagnostics", "Total", "error", "warning", "failed", "Top Codes", "E0308", "unused_variables"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
	if strings.Index(output, "unused_variables") > strings.Index(output, "E0308") {
		t.Error("more frequent code should be listed first")
	}
}

func TestTerminalFormatterWithoutCodes(t *testing.T) {
	data, err := NewTerminal(false).Format(diagnostic.Summarize(diagnostic.NewBuffer()))
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if strings.Contains(string(data), "Top Codes") {
		t.Error("code section should be omitted when there are no codes")
	}
	if !strings.Contains(string(data), "unfinished") {
		t.Error("expected unfinished build status")
	}
}

func TestNew(t *testing.T) {
	for _, format := range []string{"", "text", "json"} {
		if _, err := New(format, false); err != nil {
			t.Errorf("New(%q) error = %v", format, err)
		}
	}
	if _, err := New("csv", false); err == nil {
		t.Error("expected error for unsupported format")
	}
}

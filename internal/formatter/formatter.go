package formatter

import (
	"fmt"
	"sort"

	"github.com/yildizm/burden/internal/diagnostic"
)

// Formatter renders a diagnostic summary
type Formatter interface {
	Format(summary *diagnostic.Summary) ([]byte, error)
}

// New returns the formatter for a named output format
func New(format string, color bool) (Formatter, error) {
	switch format {
	case "", "text":
		return NewTerminal(color), nil
	case "json":
		return NewJSON(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// Count is one name with its number of occurrences
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// sortedCounts orders a count map by count, then name
func sortedCounts(m map[string]int) []Count {
	counts := make([]Count, 0, len(m))
	for name, n := range m {
		counts = append(counts, Count{Name: name, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Name < counts[j].Name
	})
	return counts
}

package processor

import (
	"context"
	"errors"
	"sort"
	"time"

	"gettupp-server/internal/observability"
)

// Metric is a single named value on a report.
type Metric struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// Report is the output of one source run. Simulated is true for generated
// placeholder data so a consumer can never mistake it for real numbers.
type Report struct {
	Source      string    `json:"source"`
	Title       string    `json:"title"`
	GeneratedAt time.Time `json:"generated_at"`
	Simulated   bool      `json:"simulated"`
	Metrics     []Metric  `json:"metrics"`
	Summary     string    `json:"summary"`
}

// Source produces a report. The simulated sources in this package satisfy
// it today; a real analytics collaborator slots in behind the same
// interface.
type Source interface {
	Name() string
	Generate(ctx context.Context) (Report, error)
}

var ErrUnknownReport = errors.New("unknown report source")

type ReportsProcessor struct {
	sources map[string]Source
	logger  *observability.Logger
}

func New(sources []Source, logger *observability.Logger) ReportsProcessor {
	byName := make(map[string]Source, len(sources))
	for _, s := range sources {
		byName[s.Name()] = s
	}
	return ReportsProcessor{sources: byName, logger: logger}
}

// ListSources returns the registered source names, sorted.
func (p *ReportsProcessor) ListSources() []string {
	names := make([]string, 0, len(p.sources))
	for name := range p.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate runs a single named source.
func (p *ReportsProcessor) Generate(ctx context.Context, name string) (Report, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "report_source", Value: name})

	source, ok := p.sources[name]
	if !ok {
		return Report{}, ErrUnknownReport
	}

	report, err := source.Generate(ctx)
	if err != nil {
		p.logger.Error(ctx, "failed to generate report", err)
		return Report{}, err
	}
	return report, nil
}

// GenerateAll runs every registered source. A failing source is logged and
// skipped so one broken collaborator does not take down the dashboard.
func (p *ReportsProcessor) GenerateAll(ctx context.Context) []Report {
	reports := make([]Report, 0, len(p.sources))
	for _, name := range p.ListSources() {
		report, err := p.Generate(ctx, name)
		if err != nil {
			continue
		}
		reports = append(reports, report)
	}
	return reports
}

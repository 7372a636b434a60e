package processor

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

// SimulatedSources returns the four placeholder report generators. All of
// their numbers are fabricated on each call.
func SimulatedSources() []Source {
	return []Source{
		simulatedSource{
			name:  "finance",
			title: "Finance Snapshot",
			metrics: []metricSpec{
				{name: "monthly_revenue", unit: "usd", min: 2000, max: 12000},
				{name: "outstanding_invoices", unit: "usd", min: 0, max: 4000},
				{name: "gross_margin", unit: "percent", min: 40, max: 75},
			},
			summary: "Simulated revenue and margin figures for the current month.",
		},
		simulatedSource{
			name:  "marketing",
			title: "Marketing Pulse",
			metrics: []metricSpec{
				{name: "instagram_reach", unit: "accounts", min: 5000, max: 60000},
				{name: "story_mentions", unit: "count", min: 10, max: 250},
				{name: "lead_conversion_rate", unit: "percent", min: 2, max: 18},
			},
			summary: "Simulated social reach and funnel numbers.",
		},
		simulatedSource{
			name:  "hr",
			title: "Crew Report",
			metrics: []metricSpec{
				{name: "active_photographers", unit: "count", min: 2, max: 8},
				{name: "shoots_per_photographer", unit: "count", min: 1, max: 12},
				{name: "crew_satisfaction", unit: "percent", min: 60, max: 98},
			},
			summary: "Simulated crew utilization and morale figures.",
		},
		simulatedSource{
			name:  "website",
			title: "Website Traffic",
			metrics: []metricSpec{
				{name: "weekly_visitors", unit: "count", min: 300, max: 9000},
				{name: "intake_form_starts", unit: "count", min: 5, max: 150},
				{name: "bounce_rate", unit: "percent", min: 20, max: 70},
			},
			summary: "Simulated traffic and intake-form engagement.",
		},
	}
}

type metricSpec struct {
	name string
	unit string
	min  float64
	max  float64
}

type simulatedSource struct {
	name    string
	title   string
	metrics []metricSpec
	summary string
}

func (s simulatedSource) Name() string {
	return s.name
}

func (s simulatedSource) Generate(_ context.Context) (Report, error) {
	metrics := make([]Metric, 0, len(s.metrics))
	for _, spec := range s.metrics {
		value := spec.min + rand.Float64()*(spec.max-spec.min)
		metrics = append(metrics, Metric{
			Name:  spec.name,
			Value: roundToCent(value),
			Unit:  spec.unit,
		})
	}
	return Report{
		Source:      s.name,
		Title:       s.title,
		GeneratedAt: time.Now().UTC(),
		Simulated:   true,
		Metrics:     metrics,
		Summary:     fmt.Sprintf("[simulated] %s", s.summary),
	}, nil
}

func roundToCent(v float64) float64 {
	return float64(int64(v*100)) / 100
}

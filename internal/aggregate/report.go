package aggregate

import (
	"sort"

	"github.com/suporteware/chatminer/internal/analyze"
)

// RiskTier buckets a refund reason by how often retention fails.
type RiskTier string

const (
	RiskHigh   RiskTier = "high"
	RiskMedium RiskTier = "medium"
	RiskLow    RiskTier = "low"
)

// CategoryStats is the finalized per-category section of the report.
// ResolvedIssues holds every resolved issue for the machine-readable export;
// the exemplar lists are the capped views used by the human-readable report.
type CategoryStats struct {
	Tag                 string
	Total               int
	Resolved            int
	SuccessRate         float64
	ResolvedIssues      []analyze.Issue
	ResolvedExemplars   []analyze.Issue
	UnresolvedExemplars []analyze.Issue
}

// RefundReasonStats is the finalized per-reason refund section.
type RefundReasonStats struct {
	Tag           string
	Total         int
	Retained      int
	RetentionRate float64
	Share         float64 // fraction of all refund cases
	Risk          RiskTier
	Complaints    []string
	// StrategyWins counts retained-conversation attempts per strategy,
	// descending.
	StrategyWins []StrategyCount
}

type StrategyCount struct {
	Tag   string
	Count int
}

// StrategyStats is one row of the ranked strategy-effectiveness table.
type StrategyStats struct {
	Tag         string
	Attempts    int
	Retained    int
	SuccessRate float64
	Example     string
}

// TransitionStats is one observed start→end sentiment pair.
type TransitionStats struct {
	Pattern       string
	Cases         int
	Retained      int
	RetentionRate float64
}

// Report is the immutable output of one batch run.
type Report struct {
	Conversations int
	TotalIssues   int
	TotalResolved int
	OverallRate   float64

	Categories []CategoryStats

	RefundCases          int
	RefundRetained       int
	OverallRetentionRate float64
	RefundReasons        []RefundReasonStats
	Strategies           []StrategyStats
	Transitions          []TransitionStats
}

// Finalize computes all rates and emits the report. The aggregator should
// not be fed after finalization.
func (a *Aggregator) Finalize() *Report {
	r := &Report{
		Conversations:        a.conversations,
		RefundCases:          a.refundCases,
		RefundRetained:       a.retained,
		OverallRetentionRate: Rate(a.retained, a.refundCases),
	}

	for _, tag := range a.categoryOrder {
		acc := a.categories[tag]
		r.TotalIssues += acc.total
		r.TotalResolved += acc.resolved
		r.Categories = append(r.Categories, CategoryStats{
			Tag:                 tag,
			Total:               acc.total,
			Resolved:            acc.resolved,
			SuccessRate:         Rate(acc.resolved, acc.total),
			ResolvedIssues:      acc.resolvedAll,
			ResolvedExemplars:   acc.resolvedEx,
			UnresolvedExemplars: acc.openEx,
		})
	}
	r.OverallRate = Rate(r.TotalResolved, r.TotalIssues)

	for _, tag := range a.refundOrder {
		acc := a.refunds[tag]
		stats := RefundReasonStats{
			Tag:           tag,
			Total:         acc.total,
			Retained:      acc.retained,
			RetentionRate: Rate(acc.retained, acc.total),
			Share:         Rate(acc.total, a.refundCases),
			Complaints:    acc.complaints,
		}
		stats.Risk = riskFor(stats.RetentionRate)
		for st, n := range acc.wins {
			stats.StrategyWins = append(stats.StrategyWins, StrategyCount{Tag: st, Count: n})
		}
		sort.SliceStable(stats.StrategyWins, func(i, j int) bool {
			if stats.StrategyWins[i].Count != stats.StrategyWins[j].Count {
				return stats.StrategyWins[i].Count > stats.StrategyWins[j].Count
			}
			return stats.StrategyWins[i].Tag < stats.StrategyWins[j].Tag
		})
		r.RefundReasons = append(r.RefundReasons, stats)
	}

	for _, tag := range a.strategyOrder {
		acc := a.strategies[tag]
		if acc.attempts < a.opts.MinStrategyUses {
			continue
		}
		r.Strategies = append(r.Strategies, StrategyStats{
			Tag:         tag,
			Attempts:    acc.attempts,
			Retained:    acc.retained,
			SuccessRate: Rate(acc.retained, acc.attempts),
			Example:     acc.example,
		})
	}
	sort.SliceStable(r.Strategies, func(i, j int) bool {
		return r.Strategies[i].SuccessRate > r.Strategies[j].SuccessRate
	})

	for _, key := range a.transitionOrder {
		acc := a.transitions[key]
		if acc.cases < a.opts.MinTransitionCases {
			continue
		}
		r.Transitions = append(r.Transitions, TransitionStats{
			Pattern:       key,
			Cases:         acc.cases,
			Retained:      acc.retained,
			RetentionRate: Rate(acc.retained, acc.cases),
		})
	}

	return r
}

// riskFor applies the documented tiers: retention under 30% is high risk,
// under 60% medium, otherwise low.
func riskFor(retentionRate float64) RiskTier {
	switch {
	case retentionRate < 0.30:
		return RiskHigh
	case retentionRate < 0.60:
		return RiskMedium
	default:
		return RiskLow
	}
}

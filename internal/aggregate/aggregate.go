// Package aggregate reduces per-conversation findings into corpus-level
// statistics: per-category counts and rates, bounded exemplar lists, refund
// retention analytics, strategy effectiveness and sentiment transitions.
//
// An Aggregator is an explicit value: initialized empty, fed one conversation
// at a time, finalized once. The Report it emits is read-only.
package aggregate

import (
	"fmt"

	"github.com/suporteware/chatminer/internal/analyze"
)

// Options bound the exemplar lists and set the noise floors for the ranked
// tables. Zero values fall back to the defaults below.
type Options struct {
	ResolvedExemplars   int // per-category cap on resolved issue exemplars
	UnresolvedExemplars int // per-category cap on unresolved issue exemplars
	ComplaintExemplars  int // per-reason cap on refund complaint exemplars
	MinStrategyUses     int // strategies used fewer times are omitted
	MinTransitionCases  int // sentiment transitions seen fewer times are omitted
}

const (
	defaultResolvedExemplars   = 5
	defaultUnresolvedExemplars = 3
	defaultComplaintExemplars  = 5
	defaultMinStrategyUses     = 3
	defaultMinTransitionCases  = 3
)

func (o Options) withDefaults() Options {
	if o.ResolvedExemplars == 0 {
		o.ResolvedExemplars = defaultResolvedExemplars
	}
	if o.UnresolvedExemplars == 0 {
		o.UnresolvedExemplars = defaultUnresolvedExemplars
	}
	if o.ComplaintExemplars == 0 {
		o.ComplaintExemplars = defaultComplaintExemplars
	}
	if o.MinStrategyUses == 0 {
		o.MinStrategyUses = defaultMinStrategyUses
	}
	if o.MinTransitionCases == 0 {
		o.MinTransitionCases = defaultMinTransitionCases
	}
	return o
}

// Aggregator accumulates results across the corpus. It is the only mutable
// state of a batch run; Add folds one conversation's contribution as a unit.
type Aggregator struct {
	opts Options

	categoryOrder []string
	categories    map[string]*categoryAccum

	refundOrder []string
	refunds     map[string]*refundAccum

	strategyOrder []string
	strategies    map[string]*strategyAccum

	transitionOrder []string
	transitions     map[string]*transitionAccum

	conversations int
	refundCases   int
	retained      int
}

type categoryAccum struct {
	total    int
	resolved int
	// resolvedAll keeps every resolved issue for the machine-readable export;
	// resolvedEx and openEx are the capped lists shown in the report.
	resolvedAll []analyze.Issue
	resolvedEx  []analyze.Issue
	openEx      []analyze.Issue
}

type refundAccum struct {
	total      int
	retained   int
	complaints []string
	// wins counts, per strategy tag, attempts in conversations that ended
	// retained.
	wins map[string]int
}

type strategyAccum struct {
	attempts int
	retained int
	example  string // first attempt text from a retained conversation
}

type transitionAccum struct {
	cases    int
	retained int
}

// New returns an empty aggregator.
func New(opts Options) *Aggregator {
	return &Aggregator{
		opts:        opts.withDefaults(),
		categories:  make(map[string]*categoryAccum),
		refunds:     make(map[string]*refundAccum),
		strategies:  make(map[string]*strategyAccum),
		transitions: make(map[string]*transitionAccum),
	}
}

// Add folds one conversation's result into the running totals. Calls must be
// serialized; the engine feeds conversations in sorted source-file order so
// exemplar insertion order is deterministic.
func (a *Aggregator) Add(res analyze.Result) {
	a.conversations++

	for _, issue := range res.Issues {
		acc := a.categories[issue.Category]
		if acc == nil {
			acc = &categoryAccum{}
			a.categories[issue.Category] = acc
			a.categoryOrder = append(a.categoryOrder, issue.Category)
		}
		acc.total++
		if issue.Resolved {
			acc.resolved++
			acc.resolvedAll = append(acc.resolvedAll, issue)
			if len(acc.resolvedEx) < a.opts.ResolvedExemplars {
				acc.resolvedEx = append(acc.resolvedEx, issue)
			}
		} else if len(acc.openEx) < a.opts.UnresolvedExemplars {
			acc.openEx = append(acc.openEx, issue)
		}
	}

	if res.Refund != nil {
		a.addRefund(*res.Refund)
	}
}

func (a *Aggregator) addRefund(rc analyze.RefundCase) {
	a.refundCases++
	if rc.Retained {
		a.retained++
	}

	acc := a.refunds[rc.ReasonCategory]
	if acc == nil {
		acc = &refundAccum{wins: make(map[string]int)}
		a.refunds[rc.ReasonCategory] = acc
		a.refundOrder = append(a.refundOrder, rc.ReasonCategory)
	}
	acc.total++
	if rc.Retained {
		acc.retained++
	}
	if rc.FirstComplaint != "" && len(acc.complaints) < a.opts.ComplaintExemplars {
		acc.complaints = append(acc.complaints, rc.FirstComplaint)
	}

	for _, att := range rc.Attempts {
		st := a.strategies[att.Strategy]
		if st == nil {
			st = &strategyAccum{}
			a.strategies[att.Strategy] = st
			a.strategyOrder = append(a.strategyOrder, att.Strategy)
		}
		st.attempts++
		if rc.Retained {
			st.retained++
			acc.wins[att.Strategy]++
			if st.example == "" {
				st.example = att.Text
			}
		}
	}

	if len(rc.SentimentJourney) >= 2 {
		first := rc.SentimentJourney[0].Sentiment
		last := rc.SentimentJourney[len(rc.SentimentJourney)-1].Sentiment
		key := fmt.Sprintf("%s → %s", first, last)
		tr := a.transitions[key]
		if tr == nil {
			tr = &transitionAccum{}
			a.transitions[key] = tr
			a.transitionOrder = append(a.transitionOrder, key)
		}
		tr.cases++
		if rc.Retained {
			tr.retained++
		}
	}
}

// Rate divides resolved by total, defined as 0 when total is 0.
func Rate(resolved, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(resolved) / float64(total)
}

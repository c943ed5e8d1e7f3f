package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// The metrics below are registered for an embedding application to
// update; no package of this module increments or observes them.

// SearchCutoffTotal is a counter for searches aborted by the wall-clock
// search budget (spec.md §5).
var SearchCutoffTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "searchcore",
	Name:      "search_cutoff_total",
	Help:      "Number of searches that returned partial results due to the wall-clock budget.",
})

// RuleEvalDuration is a histogram for the duration of a single
// curation/synonym rule evaluation pass.
var RuleEvalDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "searchcore",
	Name:      "rule_eval_duration_seconds",
	Help:      "Duration of a rule-engine evaluation pass.",
	Buckets:   prometheus.DefBuckets,
}, []string{"engine"})

// RuleMutationsTotal is a counter for add/remove/upsert calls against a
// rule index.
var RuleMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "searchcore",
	Name:      "rule_mutations_total",
	Help:      "Number of rule add/remove/upsert operations.",
}, []string{"engine", "op"})

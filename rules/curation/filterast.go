package curation

import (
	"strings"

	"github.com/arcfts/searchcore/internal/outcome"
)

// Clause is one field constraint of a filter_by expression, e.g.
// "price:>=10" parses to {Field: "price", Op: ">=", Value: "10"}.
type Clause struct {
	Field string
	Op    string
	Value string
}

// Filter is an AND-joined list of clauses. This is the minimal subset
// of spec.md §9's Open Question on filter_by matching: equality and
// numeric-comparison clauses joined with "&&", nothing else. Any other
// shape (OR, nested parens, IN-lists, range syntax) is rejected
// explicitly at parse time rather than silently mishandled.
type Filter []Clause

var comparisonOps = []string{">=", "<=", "!=", ">", "<", "="}

// Parse parses an AND-joined filter_by expression into its clauses. An
// empty expression parses to an empty (always-matching) Filter.
func Parse(expr string) (Filter, *outcome.Outcome) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}
	if strings.Contains(expr, "||") || strings.ContainsAny(expr, "()[]") {
		return nil, outcome.Validation("filter_by %q: only AND-joined equality/comparison clauses are supported", expr)
	}

	parts := strings.Split(expr, "&&")
	out := make(Filter, 0, len(parts))
	for _, p := range parts {
		c, err := parseClause(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func parseClause(s string) (Clause, *outcome.Outcome) {
	colon := strings.IndexByte(s, ':')
	if colon < 0 {
		return Clause{}, outcome.Validation("filter_by clause %q: expected field:value", s)
	}
	field := strings.TrimSpace(s[:colon])
	rest := strings.TrimSpace(s[colon+1:])
	if field == "" || rest == "" {
		return Clause{}, outcome.Validation("filter_by clause %q: empty field or value", s)
	}

	for _, op := range comparisonOps {
		if strings.HasPrefix(rest, op) {
			value := strings.TrimSpace(rest[len(op):])
			if value == "" {
				return Clause{}, outcome.Validation("filter_by clause %q: missing value after %s", s, op)
			}
			return Clause{Field: field, Op: op, Value: value}, nil
		}
	}
	// no explicit operator: plain equality, e.g. "category:shoes".
	return Clause{Field: field, Op: "=", Value: rest}, nil
}

// IsSubset reports whether every clause of rule appears verbatim in
// query, per spec.md §4.6: "the rule's filter_by must be a syntactic
// subset of the query's filter_by — every rule clause present,
// verbatim, among the query's clauses; the query may carry additional
// constraints the rule does not name."
func IsSubset(rule, query Filter) bool {
	for _, rc := range rule {
		found := false
		for _, qc := range query {
			if rc == qc {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

package rules

import (
	"fmt"
	"strings"
)

// ReasonInsufficientProfile is the fixed reason used when a required
// field is absent and no comparisons were attempted
const ReasonInsufficientProfile = "insufficient profile data"

// Evaluation is the outcome of one rule against one profile
type Evaluation struct {
	Rule   Rule
	Passed bool
	Reason string
}

// Result is the full outcome of evaluating a spec against a profile
type Result struct {
	SchemeID    string
	Eligible    bool
	Evaluations []Evaluation
	Confidence  float64
	Reason      string
}

// Evaluate checks profile against spec.
//
// Completeness comes first: if any required rule references an absent
// profile field the result is ineligible with no evaluations and no
// comparisons run. Otherwise every rule is evaluated, never short
// circuited, so the result can explain each rule even under ANY
func Evaluate(profile Profile, spec Spec) Result {
	for _, r := range spec.Rules {
		if !r.Required {
			continue
		}
		if !profile.Has(r.Field) {
			return Result{
				SchemeID:   spec.SchemeID,
				Eligible:   false,
				Confidence: 1.0,
				Reason:     ReasonInsufficientProfile,
			}
		}
	}

	evals := make([]Evaluation, 0, len(spec.Rules))
	for _, r := range spec.Rules {
		evals = append(evals, evalRule(profile, r))
	}

	eligible := combine(spec.Combine, evals)

	// every operator here is deterministic, so confidence stays 1.0;
	// fuzzy criteria would lower it per rule
	return Result{
		SchemeID:    spec.SchemeID,
		Eligible:    eligible,
		Evaluations: evals,
		Confidence:  1.0,
	}
}

func combine(c Combinator, evals []Evaluation) bool {
	switch c {
	case CombineAny:
		for _, e := range evals {
			if e.Passed {
				return true
			}
		}
		return false
	default:
		// ALL: required rules decide, non-required are informational
		for _, e := range evals {
			if e.Rule.Required && !e.Passed {
				return false
			}
		}
		return true
	}
}

func evalRule(p Profile, r Rule) Evaluation {
	acc := accessors[r.Field]
	fv, present := acc(p)
	if !present {
		// only reachable for non-required rules, required absence
		// returns before any comparison
		return Evaluation{Rule: r, Passed: false, Reason: fmt.Sprintf("%s not provided", r.Field)}
	}

	passed := apply(fv, r.Op, r.Value)
	return Evaluation{Rule: r, Passed: passed, Reason: reason(fv, r, passed)}
}

func apply(fv fieldValue, op Operator, v Value) bool {
	switch op {
	case OpGt:
		return fv.isNum && fv.num > v.Num
	case OpLt:
		return fv.isNum && fv.num < v.Num
	case OpGte:
		return fv.isNum && fv.num >= v.Num
	case OpLte:
		return fv.isNum && fv.num <= v.Num
	case OpEq:
		if fv.isNum {
			return v.Kind == KindNumber && fv.num == v.Num
		}
		return v.Kind == KindString && strings.EqualFold(fv.str, v.Str)
	case OpIn:
		if fv.isNum {
			return false
		}
		for _, m := range v.Set {
			if strings.EqualFold(fv.str, m) {
				return true
			}
		}
		return false
	case OpContains:
		if fv.isNum || v.Kind != KindString {
			return false
		}
		return strings.Contains(strings.ToLower(fv.str), strings.ToLower(v.Str))
	}
	return false
}

func reason(fv fieldValue, r Rule, passed bool) string {
	have := fv.str
	if fv.isNum {
		have = fmt.Sprintf("%g", fv.num)
	}
	verb := map[Operator]string{
		OpEq:       "equals",
		OpGt:       "is greater than",
		OpLt:       "is less than",
		OpGte:      "is at least",
		OpLte:      "is at most",
		OpIn:       "is one of",
		OpContains: "contains",
	}[r.Op]
	if passed {
		return fmt.Sprintf("%s %s %s %s", r.Field, have, verb, r.Value.Display())
	}
	return fmt.Sprintf("%s %s does not satisfy: %s %s", r.Field, have, verb, r.Value.Display())
}

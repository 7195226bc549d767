// Package rules models scheme eligibility rules and evaluates citizen
// profiles against them. Evaluation is pure and deterministic
package rules

import (
	"fmt"
	"strings"
)

// Field names the profile attributes a rule may reference
type Field string

// fixed enumerated set of rule fields
const (
	FieldAge           Field = "age"
	FieldIncome        Field = "income"
	FieldLocation      Field = "location"
	FieldCasteCategory Field = "caste_category"
	FieldGender        Field = "gender"
)

// Operator names the comparison a rule applies
type Operator string

const (
	OpEq       Operator = "eq"
	OpGt       Operator = "gt"
	OpLt       Operator = "lt"
	OpGte      Operator = "gte"
	OpLte      Operator = "lte"
	OpIn       Operator = "in"
	OpContains Operator = "contains"
)

// ValueKind tags the variant a rule comparison value holds
type ValueKind uint8

const (
	KindNumber ValueKind = iota
	KindString
	KindSet
)

// Value is a tagged comparison value. Exactly one member is meaningful,
// selected by Kind; ordering operators require KindNumber, set membership
// requires KindSet
type Value struct {
	Kind ValueKind
	Num  float64
	Str  string
	Set  []string
}

// Number builds a numeric comparison value
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// String builds a string comparison value
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Set builds a set-membership comparison value
func Set(members ...string) Value { return Value{Kind: KindSet, Set: members} }

// Display renders the value for human readable reasons
func (v Value) Display() string {
	switch v.Kind {
	case KindNumber:
		return fmt.Sprintf("%g", v.Num)
	case KindString:
		return v.Str
	case KindSet:
		return "{" + strings.Join(v.Set, ",") + "}"
	}
	return ""
}

// Rule is a single eligibility criterion
type Rule struct {
	Field    Field
	Op       Operator
	Value    Value
	Required bool
}

// Combinator selects how per-rule outcomes merge
type Combinator string

const (
	// CombineAll requires every required rule to pass
	CombineAll Combinator = "ALL"
	// CombineAny requires at least one rule to pass
	CombineAny Combinator = "ANY"
)

// Spec is a scheme's full eligibility specification.
// Invariant: Rules is non-empty and ordered
type Spec struct {
	SchemeID string
	Rules    []Rule
	Combine  Combinator
}

// Validate reports whether the spec is well formed
func (s Spec) Validate() error {
	if s.SchemeID == "" {
		return fmt.Errorf("spec missing scheme id")
	}
	if len(s.Rules) == 0 {
		return fmt.Errorf("spec %s has no rules", s.SchemeID)
	}
	if s.Combine != CombineAll && s.Combine != CombineAny {
		return fmt.Errorf("spec %s has unknown combinator %q", s.SchemeID, s.Combine)
	}
	for i, r := range s.Rules {
		if _, ok := accessors[r.Field]; !ok {
			return fmt.Errorf("spec %s rule %d references unknown field %q", s.SchemeID, i, r.Field)
		}
		if err := checkOperand(r); err != nil {
			return fmt.Errorf("spec %s rule %d: %w", s.SchemeID, i, err)
		}
	}
	return nil
}

// checkOperand enforces the operator/value-kind pairing
func checkOperand(r Rule) error {
	switch r.Op {
	case OpGt, OpLt, OpGte, OpLte:
		if r.Value.Kind != KindNumber {
			return fmt.Errorf("operator %s requires a numeric value", r.Op)
		}
	case OpIn:
		if r.Value.Kind != KindSet {
			return fmt.Errorf("operator %s requires a set value", r.Op)
		}
	case OpEq, OpContains:
		if r.Value.Kind == KindSet {
			return fmt.Errorf("operator %s cannot take a set value", r.Op)
		}
	default:
		return fmt.Errorf("unknown operator %q", r.Op)
	}
	return nil
}

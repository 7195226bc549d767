package rules

import (
	"strings"
	"testing"
)

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }
func strp(v string) *string     { return &v }

func TestEvaluate_AllRequiredPasses(t *testing.T) {
	t.Parallel()

	profile := Profile{
		UserID:        "u1",
		Age:           intp(35),
		Income:        floatp(200000),
		CasteCategory: strp("obc"),
	}
	spec := Spec{
		SchemeID: "pm-kisan",
		Combine:  CombineAll,
		Rules: []Rule{
			{Field: FieldAge, Op: OpGte, Value: Number(18), Required: true},
			{Field: FieldIncome, Op: OpLte, Value: Number(250000), Required: true},
		},
	}

	got := Evaluate(profile, spec)
	if !got.Eligible {
		t.Fatalf("expected eligible, got %+v", got)
	}
	if len(got.Evaluations) != 2 {
		t.Fatalf("expected 2 evaluations, got %d", len(got.Evaluations))
	}
	for _, e := range got.Evaluations {
		if !e.Passed {
			t.Fatalf("expected rule to pass: %+v", e)
		}
	}
	if got.Confidence != 1.0 {
		t.Fatalf("expected confidence 1.0, got %v", got.Confidence)
	}
}

func TestEvaluate_MissingRequiredFieldShortCircuits(t *testing.T) {
	t.Parallel()

	profile := Profile{UserID: "u2", Age: intp(40)} // no income
	spec := Spec{
		SchemeID: "s1",
		Combine:  CombineAll,
		Rules: []Rule{
			{Field: FieldAge, Op: OpGte, Value: Number(18), Required: true},
			{Field: FieldIncome, Op: OpLte, Value: Number(100000), Required: true},
		},
	}

	got := Evaluate(profile, spec)
	if got.Eligible {
		t.Fatal("expected ineligible")
	}
	if got.Reason != ReasonInsufficientProfile {
		t.Fatalf("reason: got %q", got.Reason)
	}
	if len(got.Evaluations) != 0 {
		t.Fatalf("expected no evaluations, got %d", len(got.Evaluations))
	}
}

func TestEvaluate_CombinatorTruthTable(t *testing.T) {
	t.Parallel()

	pass := Rule{Field: FieldAge, Op: OpGte, Value: Number(18), Required: true}
	fail := Rule{Field: FieldAge, Op: OpGte, Value: Number(99), Required: true}
	passInfo := Rule{Field: FieldAge, Op: OpGte, Value: Number(18), Required: false}
	failInfo := Rule{Field: FieldAge, Op: OpGte, Value: Number(99), Required: false}

	profile := Profile{Age: intp(35)}

	cases := []struct {
		name     string
		combine  Combinator
		rules    []Rule
		eligible bool
	}{
		{"all/every required passes", CombineAll, []Rule{pass, pass}, true},
		{"all/one required fails", CombineAll, []Rule{pass, fail}, false},
		{"all/non-required failure is informational", CombineAll, []Rule{pass, failInfo}, true},
		{"any/one passes", CombineAny, []Rule{fail, passInfo}, true},
		{"any/none pass", CombineAny, []Rule{fail, failInfo}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(profile, Spec{SchemeID: "s", Combine: tc.combine, Rules: tc.rules})
			if got.Eligible != tc.eligible {
				t.Fatalf("eligible: got %v want %v", got.Eligible, tc.eligible)
			}
			if len(got.Evaluations) != len(tc.rules) {
				t.Fatalf("every rule must be evaluated: got %d want %d",
					len(got.Evaluations), len(tc.rules))
			}
		})
	}
}

func TestEvaluate_Operators(t *testing.T) {
	t.Parallel()

	profile := Profile{
		Age:           intp(30),
		Income:        floatp(50000),
		Location:      strp("Rural Nashik"),
		CasteCategory: strp("SC"),
		Gender:        strp("female"),
	}

	cases := []struct {
		name string
		rule Rule
		pass bool
	}{
		{"eq number", Rule{Field: FieldAge, Op: OpEq, Value: Number(30)}, true},
		{"eq number miss", Rule{Field: FieldAge, Op: OpEq, Value: Number(31)}, false},
		{"eq string folds case", Rule{Field: FieldGender, Op: OpEq, Value: String("Female")}, true},
		{"gt", Rule{Field: FieldIncome, Op: OpGt, Value: Number(40000)}, true},
		{"lt", Rule{Field: FieldIncome, Op: OpLt, Value: Number(40000)}, false},
		{"gte boundary", Rule{Field: FieldAge, Op: OpGte, Value: Number(30)}, true},
		{"lte boundary", Rule{Field: FieldAge, Op: OpLte, Value: Number(30)}, true},
		{"in", Rule{Field: FieldCasteCategory, Op: OpIn, Value: Set("sc", "st")}, true},
		{"in miss", Rule{Field: FieldCasteCategory, Op: OpIn, Value: Set("general")}, false},
		{"contains", Rule{Field: FieldLocation, Op: OpContains, Value: String("rural")}, true},
		{"contains miss", Rule{Field: FieldLocation, Op: OpContains, Value: String("urban")}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(profile, Spec{SchemeID: "s", Combine: CombineAny, Rules: []Rule{tc.rule}})
			if len(got.Evaluations) != 1 {
				t.Fatalf("expected 1 evaluation, got %d", len(got.Evaluations))
			}
			if got.Evaluations[0].Passed != tc.pass {
				t.Fatalf("passed: got %v want %v (%s)", got.Evaluations[0].Passed, tc.pass,
					got.Evaluations[0].Reason)
			}
			if got.Evaluations[0].Reason == "" {
				t.Fatal("expected a human readable reason")
			}
		})
	}
}

func TestEvaluate_NonRequiredAbsentFieldFailsWithReason(t *testing.T) {
	t.Parallel()

	profile := Profile{Age: intp(25)}
	spec := Spec{
		SchemeID: "s",
		Combine:  CombineAll,
		Rules: []Rule{
			{Field: FieldAge, Op: OpGte, Value: Number(18), Required: true},
			{Field: FieldGender, Op: OpEq, Value: String("female"), Required: false},
		},
	}
	got := Evaluate(profile, spec)
	if !got.Eligible {
		t.Fatal("non-required absence must not flip the result under ALL")
	}
	if got.Evaluations[1].Passed || !strings.Contains(got.Evaluations[1].Reason, "not provided") {
		t.Fatalf("unexpected evaluation: %+v", got.Evaluations[1])
	}
}

func TestSpecValidate(t *testing.T) {
	t.Parallel()

	ok := Spec{
		SchemeID: "s",
		Combine:  CombineAll,
		Rules:    []Rule{{Field: FieldAge, Op: OpGte, Value: Number(18), Required: true}},
	}
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := []Spec{
		{Combine: CombineAll, Rules: ok.Rules},                        // no scheme id
		{SchemeID: "s", Combine: CombineAll},                          // no rules
		{SchemeID: "s", Combine: "SOME", Rules: ok.Rules},             // bad combinator
		{SchemeID: "s", Combine: CombineAll, Rules: []Rule{{Field: "height", Op: OpGte, Value: Number(1)}}},
		{SchemeID: "s", Combine: CombineAll, Rules: []Rule{{Field: FieldAge, Op: OpGte, Value: String("18")}}},
		{SchemeID: "s", Combine: CombineAll, Rules: []Rule{{Field: FieldGender, Op: OpIn, Value: String("f")}}},
		{SchemeID: "s", Combine: CombineAll, Rules: []Rule{{Field: FieldAge, Op: "between", Value: Number(1)}}},
	}
	for i, s := range bad {
		if err := s.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}

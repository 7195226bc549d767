// Package repo provides the eligibility repositories
package repo

import (
	"context"
	"sort"

	"sahayak/internal/core/rules"
	"sahayak/internal/modkit/repokit"
	perr "sahayak/internal/platform/errors"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// Storage is the Postgres surface for profiles and scheme specs
type Storage interface {
	GetProfile(ctx context.Context, userID string) (rules.Profile, error)
	GetSpec(ctx context.Context, schemeID string) (rules.Spec, error)
}

// NewPG constructs a repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// GetProfile implements Storage
func (s *pg) GetProfile(ctx context.Context, userID string) (rules.Profile, error) {
	var p rules.Profile
	p.UserID = userID
	err := s.q.QueryRow(ctx, `
		SELECT age, income, location, caste_category, gender
		FROM citizen_profiles
		WHERE user_id = $1
	`, userID).Scan(&p.Age, &p.Income, &p.Location, &p.CasteCategory, &p.Gender)
	if err != nil {
		if perr.IsNoRows(err) {
			return rules.Profile{}, perr.NotFoundf("profile %s not found", userID)
		}
		return rules.Profile{}, perr.FromPostgres(err, "get profile")
	}
	return p, nil
}

// GetSpec implements Storage
func (s *pg) GetSpec(ctx context.Context, schemeID string) (rules.Spec, error) {
	spec := rules.Spec{SchemeID: schemeID}

	var combinator string
	err := s.q.QueryRow(ctx, `
		SELECT combinator FROM scheme_specs WHERE scheme_id = $1
	`, schemeID).Scan(&combinator)
	if err != nil {
		if perr.IsNoRows(err) {
			return rules.Spec{}, perr.NotFoundf("scheme %s has no eligibility spec", schemeID)
		}
		return rules.Spec{}, perr.FromPostgres(err, "get scheme spec")
	}
	spec.Combine = rules.Combinator(combinator)

	rows, err := s.q.Query(ctx, `
		SELECT position, field, op, value_kind, value_num, value_str, value_set, required
		FROM scheme_rules
		WHERE scheme_id = $1
		ORDER BY position
	`, schemeID)
	if err != nil {
		return rules.Spec{}, perr.FromPostgres(err, "query scheme rules")
	}
	defer rows.Close()

	type ordered struct {
		pos  int
		rule rules.Rule
	}
	var rs []ordered
	for rows.Next() {
		var (
			o        ordered
			kind     string
			num      *float64
			str      *string
			set      []string
			required bool
		)
		var field, op string
		if err := rows.Scan(&o.pos, &field, &op, &kind, &num, &str, &set, &required); err != nil {
			return rules.Spec{}, perr.FromPostgres(err, "scan scheme rule")
		}
		o.rule = rules.Rule{Field: rules.Field(field), Op: rules.Operator(op), Required: required}
		switch kind {
		case "number":
			if num != nil {
				o.rule.Value = rules.Number(*num)
			}
		case "string":
			if str != nil {
				o.rule.Value = rules.String(*str)
			}
		case "set":
			o.rule.Value = rules.Set(set...)
		}
		rs = append(rs, o)
	}
	if err := rows.Err(); err != nil {
		return rules.Spec{}, perr.FromPostgres(err, "iterate scheme rules")
	}

	sort.Slice(rs, func(i, j int) bool { return rs[i].pos < rs[j].pos })
	for _, o := range rs {
		spec.Rules = append(spec.Rules, o.rule)
	}

	if err := spec.Validate(); err != nil {
		return rules.Spec{}, perr.Wrap(err, perr.ErrorCodeDB, "stored spec is malformed")
	}
	return spec, nil
}

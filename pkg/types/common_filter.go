package types

import (
	"gorm.io/gorm/clause"
)

type CommonFilterOperator string

const (
	CommonFilterOperatorEq    CommonFilterOperator = "eq"
	CommonFilterOperatorNotEq CommonFilterOperator = "not_eq"
	CommonFilterOperatorLt    CommonFilterOperator = "lt"
	CommonFilterOperatorLte   CommonFilterOperator = "lte"
	CommonFilterOperatorGt    CommonFilterOperator = "gt"
	CommonFilterOperatorGte   CommonFilterOperator = "gte"
	CommonFilterOperatorRange CommonFilterOperator = "range"
	CommonFilterOperatorIn    CommonFilterOperator = "in"
)

// CommonFilter is a single column predicate used by ledger listings.
type CommonFilter struct {
	Field    string               `json:"field"`
	Operator CommonFilterOperator `json:"operator"`
	Values   []any                `json:"values"`
}

func Eq(field string, value any) *CommonFilter {
	return &CommonFilter{Field: field, Operator: CommonFilterOperatorEq, Values: []any{value}}
}

// Build constructs a GORM expression. A filter without values builds nothing.
func (f *CommonFilter) Build(builder clause.Builder) {
	if len(f.Values) == 0 {
		return
	}
	value := f.Values[0]
	col := clause.Column{Name: f.Field}

	switch f.Operator {
	case CommonFilterOperatorEq:
		clause.Eq{Column: col, Value: value}.Build(builder)
	case CommonFilterOperatorNotEq:
		clause.Neq{Column: col, Value: value}.Build(builder)
	case CommonFilterOperatorLt:
		clause.Lt{Column: col, Value: value}.Build(builder)
	case CommonFilterOperatorLte:
		clause.Lte{Column: col, Value: value}.Build(builder)
	case CommonFilterOperatorGt:
		clause.Gt{Column: col, Value: value}.Build(builder)
	case CommonFilterOperatorGte:
		clause.Gte{Column: col, Value: value}.Build(builder)
	case CommonFilterOperatorRange:
		if len(f.Values) < 2 {
			return
		}
		clause.And(clause.Gte{Column: col, Value: f.Values[0]}, clause.Lte{Column: col, Value: f.Values[1]}).Build(builder)
	case CommonFilterOperatorIn:
		clause.IN{Column: col, Values: f.Values}.Build(builder)
	}
}

// FiltersAnd combines filters into one clause.Expression; no filters match everything.
type FiltersAnd []*CommonFilter

func (w FiltersAnd) Build(builder clause.Builder) {
	if len(w) == 0 {
		builder.WriteString("1=1")
		return
	}
	exprs := make([]clause.Expression, 0, len(w))
	for _, f := range w {
		exprs = append(exprs, f)
	}
	clause.And(exprs...).Build(builder)
}

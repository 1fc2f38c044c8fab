// Package filter describes storage-agnostic search constraints.
//
// A Spec is a conjunction of clauses. Base clauses are fixed by the caller
// building the query, optional clauses come from request input and are
// dropped when absent. Storage backends interpret the clauses: the memory
// store through Match, the PostgreSQL store by compiling them to SQL.
package filter

import "strings"

// DeletedAtField is the soft-delete marker column shared by searchable resources.
const DeletedAtField = "deleted_at"

// Clause is one constraint of a Spec. The set of variants is closed.
type Clause interface {
	isClause()
}

// TextMatch is a case-insensitive substring match OR-ed across Fields.
type TextMatch struct {
	Fields []string
	Term   string
}

// Equality requires Field to equal Value.
type Equality struct {
	Field string
	Value any
}

// Range bounds Field inclusively. A nil bound is open.
type Range struct {
	Field string
	From  any
	To    any
}

// Relation names a bridge table linking an owner row to related keys.
type Relation struct {
	Table    string
	OwnerKey string
	Key      string
}

// Membership requires the owner to be linked to Value through Relation.
type Membership struct {
	Relation Relation
	Value    any
}

// IsNull requires Field to be unset.
type IsNull struct {
	Field string
}

func (TextMatch) isClause()  {}
func (Equality) isClause()   {}
func (Range) isClause()      {}
func (Membership) isClause() {}
func (IsNull) isClause()     {}

// Spec is an ordered conjunction of clauses. The zero Spec matches everything.
type Spec struct {
	clauses []Clause
}

// Build places base clauses first and appends every present optional clause.
func Build(base []Clause, optional ...Clause) Spec {
	clauses := make([]Clause, 0, len(base)+len(optional))
	for _, c := range base {
		if c != nil {
			clauses = append(clauses, c)
		}
	}
	for _, c := range optional {
		if c != nil {
			clauses = append(clauses, c)
		}
	}
	return Spec{clauses: clauses}
}

// Clauses returns the constraints in application order.
func (s Spec) Clauses() []Clause {
	out := make([]Clause, len(s.clauses))
	copy(out, s.clauses)
	return out
}

// Empty reports whether the spec imposes no constraint.
func (s Spec) Empty() bool {
	return len(s.clauses) == 0
}

// NotDeleted is the base constraint excluding soft-deleted rows.
func NotDeleted() Clause {
	return IsNull{Field: DeletedAtField}
}

// Text returns nil for a blank term.
func Text(term string, fields ...string) Clause {
	term = strings.TrimSpace(term)
	if term == "" || len(fields) == 0 {
		return nil
	}
	return TextMatch{Fields: fields, Term: term}
}

// Equal returns nil when value is absent.
func Equal[T any](field string, value *T) Clause {
	if value == nil {
		return nil
	}
	return Equality{Field: field, Value: *value}
}

// Between returns nil when both bounds are absent.
func Between[T any](field string, from, to *T) Clause {
	if from == nil && to == nil {
		return nil
	}
	r := Range{Field: field}
	if from != nil {
		r.From = *from
	}
	if to != nil {
		r.To = *to
	}
	return r
}

// MemberOf returns nil when value is absent.
func MemberOf[T any](rel Relation, value *T) Clause {
	if value == nil {
		return nil
	}
	return Membership{Relation: rel, Value: *value}
}

package postgres

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-faster/errors"

	"github.com/polkiloo/commerce-admin/internal/domain/filter"
	"github.com/polkiloo/commerce-admin/internal/domain/paging"
)

// queryBuilder compiles filter specs and windows into SQL with positional args.
// Column names come from code, never from request input.
type queryBuilder struct {
	alias string
	args  []any
}

func newQueryBuilder(alias string) *queryBuilder {
	return &queryBuilder{alias: alias}
}

func (b *queryBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *queryBuilder) column(name string) string {
	return b.alias + "." + name
}

// where returns an empty string for an empty spec, otherwise " WHERE ...".
func (b *queryBuilder) where(spec filter.Spec) (string, error) {
	clauses := spec.Clauses()
	if len(clauses) == 0 {
		return "", nil
	}

	parts := make([]string, 0, len(clauses))
	for _, c := range clauses {
		part, err := b.clause(c)
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	return " WHERE " + strings.Join(parts, " AND "), nil
}

func (b *queryBuilder) clause(c filter.Clause) (string, error) {
	switch c := c.(type) {
	case filter.TextMatch:
		pattern := b.arg("%" + escapeLike(strings.ToLower(c.Term)) + "%")
		ors := make([]string, 0, len(c.Fields))
		for _, f := range c.Fields {
			ors = append(ors, fmt.Sprintf(`LOWER(%s) LIKE %s ESCAPE '\'`, b.column(f), pattern))
		}
		return "(" + strings.Join(ors, " OR ") + ")", nil
	case filter.Equality:
		return fmt.Sprintf("%s = %s", b.column(c.Field), b.arg(c.Value)), nil
	case filter.Range:
		switch {
		case c.From != nil && c.To != nil:
			return fmt.Sprintf("%s BETWEEN %s AND %s", b.column(c.Field), b.arg(c.From), b.arg(c.To)), nil
		case c.From != nil:
			return fmt.Sprintf("%s >= %s", b.column(c.Field), b.arg(c.From)), nil
		case c.To != nil:
			return fmt.Sprintf("%s <= %s", b.column(c.Field), b.arg(c.To)), nil
		default:
			return "TRUE", nil
		}
	case filter.Membership:
		rel := c.Relation
		return fmt.Sprintf("EXISTS (SELECT 1 FROM %s rel WHERE rel.%s = %s AND rel.%s = %s)",
			rel.Table, rel.OwnerKey, b.column("id"), rel.Key, b.arg(c.Value)), nil
	case filter.IsNull:
		return fmt.Sprintf("%s IS NULL", b.column(c.Field)), nil
	default:
		return "", errors.Errorf("unsupported filter clause %T", c)
	}
}

// window renders ORDER BY, LIMIT and OFFSET.
func (b *queryBuilder) window(w paging.Window) string {
	var sb strings.Builder
	if len(w.OrderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		for i, ob := range w.OrderBy {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(b.column(ob.Column))
			if ob.Desc {
				sb.WriteString(" DESC")
			} else {
				sb.WriteString(" ASC")
			}
		}
	}
	if w.Limit > 0 {
		sb.WriteString(" LIMIT " + b.arg(w.Limit))
		sb.WriteString(" OFFSET " + b.arg(w.Offset))
	}
	return sb.String()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

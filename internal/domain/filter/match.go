package filter

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Record exposes a stored row to the in-memory interpreter.
type Record interface {
	// Field returns the value stored under a column name.
	Field(name string) (any, bool)
	// Related returns the keys linked to the record through a bridge table.
	Related(table string) []any
}

// Match reports whether rec satisfies every clause of spec.
func Match(spec Spec, rec Record) bool {
	for _, c := range spec.clauses {
		if !matchClause(c, rec) {
			return false
		}
	}
	return true
}

func matchClause(c Clause, rec Record) bool {
	switch c := c.(type) {
	case TextMatch:
		term := strings.ToLower(c.Term)
		for _, f := range c.Fields {
			v, ok := rec.Field(f)
			if !ok || isNil(v) {
				continue
			}
			if strings.Contains(strings.ToLower(fmt.Sprint(deref(v))), term) {
				return true
			}
		}
		return false
	case Equality:
		v, ok := rec.Field(c.Field)
		if !ok || isNil(v) {
			return false
		}
		cmp, ok := Compare(v, c.Value)
		return ok && cmp == 0
	case Range:
		v, ok := rec.Field(c.Field)
		if !ok || isNil(v) {
			return false
		}
		if c.From != nil {
			if cmp, ok := Compare(v, c.From); !ok || cmp < 0 {
				return false
			}
		}
		if c.To != nil {
			if cmp, ok := Compare(v, c.To); !ok || cmp > 0 {
				return false
			}
		}
		return true
	case Membership:
		for _, related := range rec.Related(c.Relation.Table) {
			if cmp, ok := Compare(related, c.Value); ok && cmp == 0 {
				return true
			}
		}
		return false
	case IsNull:
		v, ok := rec.Field(c.Field)
		return !ok || isNil(v)
	default:
		return false
	}
}

// Compare orders two scalar values. The second result is false when the
// values are not comparable.
func Compare(a, b any) (int, bool) {
	a, b = deref(a), deref(b)

	switch av := a.(type) {
	case decimal.Decimal:
		bv, ok := toDecimal(b)
		if !ok {
			return 0, false
		}
		return av.Cmp(bv), true
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return av.Compare(bv), true
	}
	if _, ok := b.(decimal.Decimal); ok {
		cmp, ok := Compare(b, a)
		return -cmp, ok
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch {
	case isString(ra) && isString(rb):
		return strings.Compare(ra.String(), rb.String()), true
	case ra.Kind() == reflect.Bool && rb.Kind() == reflect.Bool:
		if ra.Bool() == rb.Bool() {
			return 0, true
		}
		if !ra.Bool() {
			return -1, true
		}
		return 1, true
	case isNumber(ra) && isNumber(rb):
		fa, fb := toFloat(ra), toFloat(rb)
		switch {
		case fa < fb:
			return -1, true
		case fa > fb:
			return 1, true
		default:
			return 0, true
		}
	}
	return 0, false
}

func deref(v any) any {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}

func isNil(v any) bool {
	return deref(v) == nil
}

func isString(v reflect.Value) bool {
	return v.Kind() == reflect.String
}

func isNumber(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func toFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	default:
		return v.Float()
	}
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch v := v.(type) {
	case decimal.Decimal:
		return v, true
	case nil:
		return decimal.Zero, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decimal.NewFromInt(rv.Int()), true
	case reflect.Float32, reflect.Float64:
		return decimal.NewFromFloat(rv.Float()), true
	}
	return decimal.Zero, false
}

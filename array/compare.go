package array

import (
	"cmp"
	"fmt"
	"time"
)

// CompareValues orders two boxed cell values. Nil sorts lowest. Values of
// the same dynamic kind use natural ordering; values of KindAny with the
// same concrete type fall back to comparing their string forms. Values of
// differing dynamic types are treated as incomparable and compare equal,
// which keeps sorts over heterogeneous object columns deterministic
// without inventing a cross-type order.
func CompareValues(a, b any) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	switch av := a.(type) {
	case bool:
		if bv, ok := b.(bool); ok {
			return compareBool(av, bv)
		}
	case int:
		if bv, ok := b.(int); ok {
			return cmp.Compare(av, bv)
		}
	case int32:
		if bv, ok := b.(int32); ok {
			return cmp.Compare(av, bv)
		}
	case int64:
		if bv, ok := b.(int64); ok {
			return cmp.Compare(av, bv)
		}
	case float32:
		if bv, ok := b.(float32); ok {
			return cmp.Compare(av, bv)
		}
	case float64:
		if bv, ok := b.(float64); ok {
			return cmp.Compare(av, bv)
		}
	case string:
		if bv, ok := b.(string); ok {
			return cmp.Compare(av, bv)
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	default:
		if fmt.Sprintf("%T", a) == fmt.Sprintf("%T", b) {
			return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
		}
	}
	return 0
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

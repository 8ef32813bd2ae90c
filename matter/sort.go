package matter

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction orders a sort ascending or descending.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection maps a caller-supplied direction string, defaulting to
// ascending for anything unrecognized.
func ParseDirection(s string) Direction {
	if s == string(Desc) {
		return Desc
	}
	return Asc
}

// Reserved sort keys resolved against the matter itself rather than its
// field mapping.
const (
	SortKeyCreatedAt      = "created_at"
	SortKeyUpdatedAt      = "updated_at"
	SortKeySLA            = "sla"
	SortKeyResolutionTime = "resolution_time"
)

// Sort orders matters in place by the given key and direction. Absent or
// null-valued keys sort last under both directions; direction only inverts
// the order of present values. Ties keep their incoming relative order.
func Sort(matters []Matter, key string, dir Direction) {
	// Collators carry internal buffers, so each call gets its own.
	coll := collate.New(language.English)

	sort.SliceStable(matters, func(i, j int) bool {
		return compare(coll, matters[i], matters[j], key, dir) < 0
	})
}

func compare(coll *collate.Collator, a, b Matter, key string, dir Direction) int {
	ka := sortKey(a, key)
	kb := sortKey(b, key)

	switch {
	case ka == nil && kb == nil:
		return 0
	case ka == nil:
		return 1
	case kb == nil:
		return -1
	}

	c := compareKeys(coll, ka, kb)
	if dir == Desc {
		c = -c
	}
	return c
}

// sortKey resolves the comparison key for one matter: reserved meta keys
// first, then the field mapping.
func sortKey(m Matter, key string) any {
	switch key {
	case SortKeyCreatedAt:
		return m.CreatedAt
	case SortKeyUpdatedAt:
		return m.UpdatedAt
	case SortKeySLA:
		return string(m.SLA)
	case SortKeyResolutionTime:
		if m.CycleTime == nil {
			return nil
		}
		return float64(m.CycleTime.Elapsed.Milliseconds())
	}

	v, ok := m.Fields.Lookup(key)
	if !ok {
		return nil
	}
	return v.SortKey()
}

func compareKeys(coll *collate.Collator, a, b any) int {
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return coll.CompareString(av, bv)
		}
	case float64:
		if bv, ok := b.(float64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			default:
				return 0
			}
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			switch {
			case av.Before(bv):
				return -1
			case av.After(bv):
				return 1
			default:
				return 0
			}
		}
	}
	return 0
}

package explore

import (
	"fmt"
	"slices"
	"strings"

	"github.com/heartmarshall/wildlife-backend/internal/service/resolver"
)

// listKey is a stable cache key for one list request. Coordinates are
// rounded to about 100 m so nearby requests share an entry.
func listKey(mode Mode, q resolver.Query, region string, strict bool) string {
	var b strings.Builder
	b.WriteString(string(mode))

	if q.Point != nil {
		fmt.Fprintf(&b, "|%.3f,%.3f|%g", q.Point.Latitude, q.Point.Longitude, q.MaxDistanceKm)
		if strict {
			b.WriteString("|strict")
		}
	} else {
		b.WriteString("|" + region)
	}

	// Matching ignores case only, so only case is folded here.
	b.WriteString("|" + strings.ToLower(q.SearchText))

	cats := make([]string, 0, len(q.Categories))
	for _, c := range q.Categories {
		cats = append(cats, string(c))
	}
	slices.Sort(cats)
	cats = slices.Compact(cats)
	b.WriteString("|" + strings.Join(cats, ","))

	return b.String()
}

package resolver

import (
	"slices"
	"strings"

	"github.com/heartmarshall/wildlife-backend/internal/domain"
)

// AllRegions is the browse selection that disables region filtering.
const AllRegions = "All Regions"

// Merge returns live records followed by cached ones, keeping only the first
// record seen for each scientific name. Live data wins on duplicates.
func Merge(cached, live []domain.Species) []domain.Species {
	out := make([]domain.Species, 0, len(live)+len(cached))
	seen := make(map[string]struct{}, len(live)+len(cached))

	for _, list := range [][]domain.Species{live, cached} {
		for _, s := range list {
			if _, dup := seen[s.ScientificName]; dup {
				continue
			}
			seen[s.ScientificName] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// FilterText keeps records whose name or scientific name contains text as
// a case-insensitive substring. Only the empty string keeps everything;
// whitespace is matched as typed.
func FilterText(records []domain.Species, text string) []domain.Species {
	if text == "" {
		return records
	}
	needle := strings.ToLower(text)
	return keep(records, func(s domain.Species) bool {
		return strings.Contains(strings.ToLower(s.Name), needle) ||
			strings.Contains(strings.ToLower(s.ScientificName), needle)
	})
}

// FilterCategories keeps records in one of categories. An empty set keeps
// everything.
func FilterCategories(records []domain.Species, categories []domain.Category) []domain.Species {
	if len(categories) == 0 {
		return records
	}
	return keep(records, func(s domain.Species) bool {
		return slices.Contains(categories, s.Category)
	})
}

// FilterRegion keeps records whose region equals region exactly. An empty
// region or AllRegions keeps everything.
func FilterRegion(records []domain.Species, region string) []domain.Species {
	if region == "" || region == AllRegions {
		return records
	}
	return keep(records, func(s domain.Species) bool {
		return s.Region == region
	})
}

func keep(records []domain.Species, pred func(domain.Species) bool) []domain.Species {
	out := make([]domain.Species, 0, len(records))
	for _, s := range records {
		if pred(s) {
			out = append(out, s)
		}
	}
	return out
}

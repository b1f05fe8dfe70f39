package identity

import (
	"strings"

	"github.com/sam-maryland/sleeper-draft-assistant/internal/model"
)

// MinVariantSubstring is the shortest ranking name allowed to match a
// variant by substring rather than equality.
const MinVariantSubstring = 6

// NameVariants expands a canonical name into the spellings ranking sites use:
// "First Last", "Last, First" and "F. Last", all lower-cased.
func NameVariants(p model.Player) []string {
	first, last := p.NameParts()
	first = strings.ToLower(strings.TrimSpace(first))
	last = strings.ToLower(strings.TrimSpace(last))

	variants := []string{strings.ToLower(strings.TrimSpace(p.DisplayName))}
	if first != "" && last != "" {
		variants = append(variants,
			first+" "+last,
			last+", "+first,
			string([]rune(first)[:1])+". "+last,
		)
	}

	out := variants[:0]
	seen := make(map[string]bool, len(variants))
	for _, v := range variants {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// VariantSet answers name-based exclusion for entries that have no player id.
type VariantSet struct {
	exact    map[string]struct{}
	variants []string
}

// NewVariantSet expands every player's name.
func NewVariantSet(players []model.Player) *VariantSet {
	vs := &VariantSet{exact: make(map[string]struct{}, len(players)*4)}
	for _, p := range players {
		for _, v := range NameVariants(p) {
			if _, ok := vs.exact[v]; ok {
				continue
			}
			vs.exact[v] = struct{}{}
			vs.variants = append(vs.variants, v)
		}
	}
	return vs
}

// Excludes reports whether name equals a variant, or is long enough and
// contained in one.
func (vs *VariantSet) Excludes(name string) bool {
	if vs == nil {
		return false
	}
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return false
	}
	if _, ok := vs.exact[n]; ok {
		return true
	}
	if len(n) < MinVariantSubstring {
		return false
	}
	for _, v := range vs.variants {
		if strings.Contains(v, n) {
			return true
		}
	}
	return false
}

// Len returns the number of distinct variants.
func (vs *VariantSet) Len() int {
	if vs == nil {
		return 0
	}
	return len(vs.variants)
}

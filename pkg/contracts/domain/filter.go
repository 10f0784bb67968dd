package domain

// SelectionAll is the sentinel selection meaning "no constraint" for
// both single-choice and multi-choice filters.
const SelectionAll = "All"

// PriceRange is a closed numeric range applied to price_amount.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies in [Min, Max].
func (r PriceRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// FilterSet is the full set of user selections for one render pass.
// It is built fresh from the current widget state, consumed by the
// filter engine, and discarded; it carries no identity across passes.
//
// An empty string or SelectionAll on a single-choice field means the
// field imposes no constraint. A multi-choice set containing
// SelectionAll imposes no constraint regardless of its other members.
// A nil PriceRange leaves price_amount unconstrained.
type FilterSet struct {
	Brand        string      `json:"brand,omitempty"`
	CategoryMain string      `json:"category_main,omitempty"`
	CategorySub  string      `json:"category_sub,omitempty"`
	PricePoint   string      `json:"price_point,omitempty"`
	Availability string      `json:"availability,omitempty"`
	Colors       []string    `json:"colors,omitempty"`
	PriceRange   *PriceRange `json:"price_range,omitempty"`
}

// IsUnconstrained reports whether no filter in the set is active.
func (f FilterSet) IsUnconstrained() bool {
	single := func(v string) bool { return v == "" || v == SelectionAll }
	if !single(f.Brand) || !single(f.CategoryMain) || !single(f.CategorySub) ||
		!single(f.PricePoint) || !single(f.Availability) {
		return false
	}
	if f.PriceRange != nil {
		return false
	}
	if len(f.Colors) == 0 {
		return true
	}
	for _, c := range f.Colors {
		if c == SelectionAll {
			return true
		}
	}
	return false
}

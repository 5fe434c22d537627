package book

import (
	"slices"
	"strings"

	"github.com/desertthunder/agenda/internal/models"
)

// Predicate selects addresses.
type Predicate func(models.Address) bool

// MatchDisplayName matches display names containing term, ignoring case.
func MatchDisplayName(term string) Predicate {
	needle := strings.ToLower(term)
	return func(a models.Address) bool {
		return strings.Contains(strings.ToLower(a.DisplayName), needle)
	}
}

// MatchCity matches addresses in exactly this city.
func MatchCity(city string) Predicate {
	return func(a models.Address) bool { return a.City == city }
}

// MatchState matches addresses in exactly this state.
func MatchState(state string) Predicate {
	return func(a models.Address) bool { return a.State == state }
}

// Filter holds the three independent filter inputs. Empty fields are inactive.
type Filter struct {
	Search string
	City   string
	State  string
}

// Active reports whether any predicate is set.
func (f Filter) Active() bool {
	return f.Search != "" || f.City != "" || f.State != ""
}

// Predicates returns the active predicates.
func (f Filter) Predicates() []Predicate {
	var preds []Predicate
	if f.Search != "" {
		preds = append(preds, MatchDisplayName(f.Search))
	}
	if f.City != "" {
		preds = append(preds, MatchCity(f.City))
	}
	if f.State != "" {
		preds = append(preds, MatchState(f.State))
	}
	return preds
}

// Apply returns the addresses matching every active predicate, in their original order.
func (f Filter) Apply(addresses []models.Address) []models.Address {
	return Select(addresses, f.Predicates()...)
}

// Select returns the addresses satisfying all predicates. The input slice is not modified.
func Select(addresses []models.Address, preds ...Predicate) []models.Address {
	out := make([]models.Address, 0, len(addresses))
	for _, a := range addresses {
		if matchesAll(a, preds) {
			out = append(out, a)
		}
	}
	return out
}

func matchesAll(a models.Address, preds []Predicate) bool {
	for _, p := range preds {
		if !p(a) {
			return false
		}
	}
	return true
}

// Cities returns the sorted distinct non-empty cities in addresses.
func Cities(addresses []models.Address) []string {
	return options(addresses, func(a models.Address) string { return a.City })
}

// States returns the sorted distinct non-empty states in addresses.
func States(addresses []models.Address) []string {
	return options(addresses, func(a models.Address) string { return a.State })
}

func options(addresses []models.Address, field func(models.Address) string) []string {
	values := make([]string, 0, len(addresses))
	for _, a := range addresses {
		if v := field(a); v != "" {
			values = append(values, v)
		}
	}
	slices.Sort(values)
	return slices.Compact(values)
}

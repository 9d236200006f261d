// File: internal/car/engine.go
package car

import "sort"

// SortKey selects the ordering of browse results.
type SortKey string

const (
	SortNewest   SortKey = "newest"
	SortCheapest SortKey = "cheapest"
	SortMileage  SortKey = "mileage"
)

// Filters is the sparse set of browse constraints. A nil field imposes no
// constraint; set fields combine conjunctively. Brand matching is exact and
// case-sensitive, range bounds are inclusive.
type Filters struct {
	Brand        *string
	MinPrice     *float64
	MaxPrice     *float64
	MinYear      *int
	MaxYear      *int
	Transmission *Transmission
	FuelType     *FuelType
	ListingType  *ListingType
}

func (f Filters) match(c *Car) bool {
	if f.Brand != nil && c.Brand != *f.Brand {
		return false
	}
	if f.MinPrice != nil && c.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && c.Price > *f.MaxPrice {
		return false
	}
	if f.MinYear != nil && c.Year < *f.MinYear {
		return false
	}
	if f.MaxYear != nil && c.Year > *f.MaxYear {
		return false
	}
	if f.Transmission != nil && c.Transmission != *f.Transmission {
		return false
	}
	if f.FuelType != nil && c.FuelType != *f.FuelType {
		return false
	}
	if f.ListingType != nil && c.ListingType != *f.ListingType {
		return false
	}
	return true
}

// ComputeVisible derives the browseable view of a listing snapshot:
// visibility (approved and sold cars only), optional category constraint,
// field filters, then a stable sort. The input slice is never mutated and
// the result is always freshly allocated.
func ComputeVisible(cars []*Car, category *Category, filters Filters, sortKey SortKey) []*Car {
	result := make([]*Car, 0, len(cars))
	for _, c := range cars {
		if c.Status != StatusApproved && c.Status != StatusSold {
			continue
		}
		if category != nil && Classify(c) != *category {
			continue
		}
		if !filters.match(c) {
			continue
		}
		result = append(result, c)
	}

	// Stable sort keeps the snapshot's relative order for equal keys.
	switch sortKey {
	case SortCheapest:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Price < result[j].Price
		})
	case SortMileage:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Mileage < result[j].Mileage
		})
	default: // SortNewest
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		})
	}
	return result
}

// CountsByCategory tallies approved listings per category tag. The result
// always contains every tag, zero-filled, so clients can render a complete
// category strip without checking key presence.
func CountsByCategory(cars []*Car) map[Category]int {
	counts := make(map[Category]int, len(Categories))
	for _, tag := range Categories {
		counts[tag] = 0
	}
	for _, c := range cars {
		if c.Status != StatusApproved {
			continue
		}
		counts[Classify(c)]++
	}
	return counts
}

package entity

import "sort"

// Basket maps product ids to requested quantities for a single sale
type Basket map[string]int

// ProductIDs returns the basket's product ids in ascending order
func (b Basket) ProductIDs() []string {
	ids := make([]string, 0, len(b))
	for id := range b {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// TotalUnits sums every requested quantity
func (b Basket) TotalUnits() int {
	n := 0
	for _, qty := range b {
		n += qty
	}
	return n
}

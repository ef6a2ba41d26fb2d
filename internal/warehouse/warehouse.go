package warehouse

import (
	"slices"
	"strings"
)

// Region groups US destination warehouses for zone-based pricing.
type Region string

const (
	RegionWest    Region = "west"
	RegionCentral Region = "central"
	RegionEast    Region = "east"
)

// Kind distinguishes fulfilment centres from cross-dock hubs.
type Kind string

const (
	KindFC  Kind = "FC"
	KindHub Kind = "Hub"
)

// Warehouse is a destination the first leg can deliver to.
type Warehouse struct {
	ID       string `json:"id" yaml:"id"`
	Code     string `json:"code" yaml:"code"`
	Region   Region `json:"region" yaml:"region"`
	Sequence int    `json:"sequence" yaml:"sequence"`
	Name     string `json:"name" yaml:"name"`
	Type     Kind   `json:"type" yaml:"type"`
	City     string `json:"city" yaml:"city"`
	State    string `json:"state" yaml:"state"`
	Zip      string `json:"zip" yaml:"zip"`
	Address  string `json:"address" yaml:"address"`
}

// Directory is a read-only lookup over a fixed set of warehouses.
// It is safe for concurrent use once built.
type Directory struct {
	ordered []Warehouse
	byID    map[string]int
}

// NewDirectory indexes warehouses by ID. Later duplicates of an ID are ignored.
// All returns the entries ordered by region sequence and then by input order.
func NewDirectory(warehouses []Warehouse) *Directory {
	ordered := make([]Warehouse, 0, len(warehouses))
	byID := make(map[string]int, len(warehouses))

	for _, w := range warehouses {
		id := strings.TrimSpace(w.ID)
		if id == "" {
			continue
		}
		if _, ok := byID[id]; ok {
			continue
		}
		w.ID = id
		byID[id] = len(ordered)
		ordered = append(ordered, w)
	}

	slices.SortStableFunc(ordered, func(a, b Warehouse) int {
		return a.Sequence - b.Sequence
	})
	for i, w := range ordered {
		byID[w.ID] = i
	}

	return &Directory{ordered: ordered, byID: byID}
}

// ByID returns the warehouse with the given id.
func (d *Directory) ByID(id string) (Warehouse, bool) {
	if d == nil {
		return Warehouse{}, false
	}
	idx, ok := d.byID[strings.TrimSpace(id)]
	if !ok {
		return Warehouse{}, false
	}
	return d.ordered[idx], true
}

// RegionByID returns the warehouse region, or "" when the id is unknown.
func (d *Directory) RegionByID(id string) Region {
	w, ok := d.ByID(id)
	if !ok {
		return ""
	}
	return w.Region
}

// All returns a copy of every warehouse.
func (d *Directory) All() []Warehouse {
	if d == nil {
		return []Warehouse{}
	}
	return slices.Clone(d.ordered)
}

// Len reports the number of indexed warehouses.
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.ordered)
}

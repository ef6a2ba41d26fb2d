package packing

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Footprints built from different orientations are compared with this relative
// tolerance so that values like 3*0.1 and 0.3 still line up.
const footprintTolerance = 1e-9

// Enumerate lists unique carton layouts for quantity units of dims, sorted from
// the most cube-like box to the least. At most maxResults layouts are returned;
// pass Unlimited for all of them. Invalid input, including a quantity above
// MaxQuantity, yields an empty slice.
func Enumerate(dims Dimensions, quantity, maxResults int) []Layout {
	if !dims.Valid() || quantity <= 0 || quantity > MaxQuantity || maxResults <= 0 {
		return []Layout{}
	}

	candidates := uniformLayouts(dims, quantity)
	candidates = append(candidates, mixedLayouts(dims, quantity)...)

	// Stable so that uniform layouts win score ties against mixed ones.
	slices.SortStableFunc(candidates, func(a, b Layout) int {
		return cmp.Compare(a.Score, b.Score)
	})

	seen := make(map[string]struct{}, len(candidates))
	out := make([]Layout, 0, min(maxResults, len(candidates)))
	for _, candidate := range candidates {
		key := dimsKey(candidate.Dims)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, candidate)
		if len(out) >= maxResults {
			break
		}
	}

	return out
}

// FactorTriples returns every ordered triple of positive integers whose product is n.
func FactorTriples(n int) [][3]int {
	if n <= 0 {
		return nil
	}

	var triples [][3]int
	for i := 1; i <= n; i++ {
		if n%i != 0 {
			continue
		}
		rest := n / i
		for j := 1; j <= rest; j++ {
			if rest%j != 0 {
				continue
			}
			triples = append(triples, [3]int{i, j, rest / j})
		}
	}
	return triples
}

// UniqueOrientations returns the distinct axis permutations of a unit, keeping
// the first occurrence order (L,W,H), (L,H,W), (W,L,H), (W,H,L), (H,L,W), (H,W,L).
func UniqueOrientations(d Dimensions) []Dimensions {
	return lo.Uniq([]Dimensions{
		{Length: d.Length, Width: d.Width, Height: d.Height},
		{Length: d.Length, Width: d.Height, Height: d.Width},
		{Length: d.Width, Width: d.Length, Height: d.Height},
		{Length: d.Width, Width: d.Height, Height: d.Length},
		{Length: d.Height, Width: d.Length, Height: d.Width},
		{Length: d.Height, Width: d.Width, Height: d.Length},
	})
}

func uniformLayouts(dims Dimensions, quantity int) []Layout {
	triples := FactorTriples(quantity)
	layouts := make([]Layout, 0, len(triples))
	for _, t := range triples {
		layouts = append(layouts, newLayout(
			fmt.Sprintf("%d × %d × %d", t[0], t[1], t[2]),
			float64(t[0])*dims.Length,
			float64(t[1])*dims.Width,
			float64(t[2])*dims.Height,
		))
	}
	return layouts
}

// mixedLayouts finds two-layer boxes where the bottom and top groups use
// different unit orientations but share the same footprint.
func mixedLayouts(dims Dimensions, quantity int) []Layout {
	if quantity < 2 {
		return nil
	}

	orientations := UniqueOrientations(dims)
	var layouts []Layout

	for lowerQty := 1; lowerQty < quantity; lowerQty++ {
		lowerPairs := factorPairs(lowerQty)
		upperPairs := factorPairs(quantity - lowerQty)

		for _, lower := range orientations {
			for _, lp := range lowerPairs {
				lowerL := float64(lp[0]) * lower.Length
				lowerW := float64(lp[1]) * lower.Width

				for _, upper := range orientations {
					for _, up := range upperPairs {
						upperL := float64(up[0]) * upper.Length
						upperW := float64(up[1]) * upper.Width

						sameBase := sameLength(lowerL, upperL) && sameLength(lowerW, upperW)
						rotatedBase := sameLength(lowerL, upperW) && sameLength(lowerW, upperL)
						if !sameBase && !rotatedBase {
							continue
						}

						layouts = append(layouts, newLayout(
							fmt.Sprintf("%d × %d × 1 + %d × %d × 1", lp[0], lp[1], up[0], up[1]),
							lowerL,
							lowerW,
							lower.Height+upper.Height,
						))
					}
				}
			}
		}
	}

	return layouts
}

// factorPairs returns divisor pairs (a, b) with a*b == n in both orderings.
func factorPairs(n int) [][2]int {
	var pairs [][2]int
	for i := 1; i*i <= n; i++ {
		if n%i != 0 {
			continue
		}
		j := n / i
		pairs = append(pairs, [2]int{i, j})
		if i != j {
			pairs = append(pairs, [2]int{j, i})
		}
	}
	return pairs
}

func newLayout(label string, l, w, h float64) Layout {
	maxDim := max(l, w, h)
	minDim := min(l, w, h)

	return Layout{
		Label:  label,
		Dims:   BoxDims{L: l, W: w, H: h},
		Volume: l * w * h,
		Score:  squareness(l, w, h),
		Ratio:  strconv.FormatFloat(maxDim/minDim, 'f', 2, 64),
	}
}

// squareness is the population standard deviation of the three sides.
func squareness(l, w, h float64) float64 {
	avg := (l + w + h) / 3
	variance := ((l-avg)*(l-avg) + (w-avg)*(w-avg) + (h-avg)*(h-avg)) / 3
	return math.Sqrt(variance)
}

func sameLength(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= footprintTolerance*math.Max(math.Abs(a), math.Abs(b))
}

func dimsKey(d BoxDims) string {
	sides := []float64{d.L, d.W, d.H}
	slices.Sort(sides)
	parts := lo.Map(sides, func(v float64, _ int) string {
		return strconv.FormatFloat(v, 'g', -1, 64)
	})
	return strings.Join(parts, ",")
}

package packing

import (
	"fmt"
	"slices"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
)

func TestEnumerate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		dims      Dimensions
		quantity  int
		max       int
		wantLen   int
		wantTop   BoxDims
		wantRatio string
	}{
		{
			name:      "CubeTwelveUnits",
			dims:      Dimensions{Length: 10, Width: 10, Height: 10},
			quantity:  12,
			max:       Unlimited,
			wantLen:   4,
			wantTop:   BoxDims{L: 20, W: 20, H: 30},
			wantRatio: "1.50",
		},
		{
			name:      "SingleUnit",
			dims:      Dimensions{Length: 4, Width: 3, Height: 2},
			quantity:  1,
			max:       Unlimited,
			wantLen:   1,
			wantTop:   BoxDims{L: 4, W: 3, H: 2},
			wantRatio: "2.00",
		},
		{
			name:      "CubeEightUnitsIsACube",
			dims:      Dimensions{Length: 5, Width: 5, Height: 5},
			quantity:  8,
			max:       1,
			wantLen:   1,
			wantTop:   BoxDims{L: 10, W: 10, H: 10},
			wantRatio: "1.00",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := Enumerate(tc.dims, tc.quantity, tc.max)
			if len(got) != tc.wantLen {
				t.Fatalf("expected %d layouts, got %d: %+v", tc.wantLen, len(got), got)
			}
			if got[0].Dims != tc.wantTop {
				t.Fatalf("expected top dims %+v, got %+v", tc.wantTop, got[0].Dims)
			}
			if got[0].Ratio != tc.wantRatio {
				t.Fatalf("expected ratio %s, got %s", tc.wantRatio, got[0].Ratio)
			}
		})
	}
}

func TestEnumerateRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	valid := Dimensions{Length: 10, Width: 10, Height: 10}
	cases := []struct {
		name     string
		dims     Dimensions
		quantity int
		max      int
	}{
		{name: "ZeroLength", dims: Dimensions{Length: 0, Width: 10, Height: 10}, quantity: 12, max: Unlimited},
		{name: "NegativeWidth", dims: Dimensions{Length: 10, Width: -1, Height: 10}, quantity: 12, max: Unlimited},
		{name: "ZeroQuantity", dims: valid, quantity: 0, max: Unlimited},
		{name: "ZeroMax", dims: valid, quantity: 12, max: 0},
		{name: "QuantityAboveLimit", dims: valid, quantity: MaxQuantity + 1, max: 6},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := Enumerate(tc.dims, tc.quantity, tc.max)
			if got == nil || len(got) != 0 {
				t.Fatalf("expected empty non-nil slice, got %+v", got)
			}
		})
	}
}

func TestEnumerateTruncatesToPrefix(t *testing.T) {
	t.Parallel()

	dims := Dimensions{Length: 10, Width: 10, Height: 10}
	all := Enumerate(dims, 36, Unlimited)
	limited := Enumerate(dims, 36, 3)

	if len(all) <= 3 {
		t.Fatalf("expected more than 3 layouts for 36 units, got %d", len(all))
	}
	if len(limited) != 3 {
		t.Fatalf("expected 3 layouts, got %d", len(limited))
	}
	if !slices.Equal(limited, all[:3]) {
		t.Fatalf("expected limited results to be a prefix: %+v vs %+v", limited, all[:3])
	}
}

func TestEnumerateIncludesMixedLayers(t *testing.T) {
	t.Parallel()

	got := Enumerate(Dimensions{Length: 12, Width: 8, Height: 8}, 10, 20)

	found := false
	for _, layout := range got {
		if dimsKey(layout.Dims) == "16,20,24" {
			found = true
			if len(ParseSegments(layout.Label)) != 2 {
				t.Fatalf("expected a two-segment label for mixed layout, got %q", layout.Label)
			}
		}
	}
	if !found {
		t.Fatalf("expected mixed layout 16x20x24 among %+v", got)
	}
}

func TestEnumerateRandomizedProperties(t *testing.T) {
	t.Parallel()

	faker := gofakeit.New(7)
	for i := 0; i < 40; i++ {
		dims := Dimensions{
			Length: float64(faker.Number(1, 40)),
			Width:  float64(faker.Number(1, 40)),
			Height: faker.Float64Range(1, 40),
		}
		quantity := faker.Number(1, 36)

		t.Run(fmt.Sprintf("%v_x%d", dims, quantity), func(t *testing.T) {
			got := Enumerate(dims, quantity, Unlimited)
			if len(got) == 0 {
				t.Fatalf("expected at least one layout")
			}

			seen := make(map[string]struct{}, len(got))
			for idx, layout := range got {
				key := dimsKey(layout.Dims)
				if _, ok := seen[key]; ok {
					t.Fatalf("duplicate box %s at %d", key, idx)
				}
				seen[key] = struct{}{}

				if idx > 0 && got[idx-1].Score > layout.Score {
					t.Fatalf("scores not sorted at %d: %f > %f", idx, got[idx-1].Score, layout.Score)
				}
			}
		})
	}
}

func TestFactorTriplesComplete(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 60; n++ {
		got := FactorTriples(n)

		var want [][3]int
		for a := 1; a <= n; a++ {
			for b := 1; b <= n; b++ {
				for c := 1; c <= n; c++ {
					if a*b*c == n {
						want = append(want, [3]int{a, b, c})
					}
				}
			}
		}

		if len(got) != len(want) {
			t.Fatalf("n=%d: expected %d triples, got %d", n, len(want), len(got))
		}
		for _, triple := range want {
			if !slices.Contains(got, triple) {
				t.Fatalf("n=%d: missing triple %v", n, triple)
			}
		}
	}
}

func TestUniqueOrientationsDeduplicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dims Dimensions
		want int
	}{
		{dims: Dimensions{Length: 1, Width: 2, Height: 3}, want: 6},
		{dims: Dimensions{Length: 12, Width: 8, Height: 8}, want: 3},
		{dims: Dimensions{Length: 5, Width: 5, Height: 5}, want: 1},
	}

	for _, tc := range tests {
		if got := UniqueOrientations(tc.dims); len(got) != tc.want {
			t.Fatalf("expected %d orientations for %+v, got %d", tc.want, tc.dims, len(got))
		}
	}
}

func TestSameLengthToleratesFloatDrift(t *testing.T) {
	t.Parallel()

	if !sameLength(3*0.1, 0.3) {
		t.Fatalf("expected 3*0.1 and 0.3 to match")
	}
	if sameLength(0.3, 0.31) {
		t.Fatalf("expected 0.3 and 0.31 to differ")
	}
}

func BenchmarkEnumerateSmall(b *testing.B) {
	dims := Dimensions{Length: 12, Width: 8, Height: 8}
	for i := 0; i < b.N; i++ {
		_ = Enumerate(dims, 24, Unlimited)
	}
}

func BenchmarkEnumerateLarge(b *testing.B) {
	dims := Dimensions{Length: 12, Width: 8, Height: 5}
	for i := 0; i < b.N; i++ {
		_ = Enumerate(dims, 240, 10)
	}
}

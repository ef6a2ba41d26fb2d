package quote

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/zzyhdu/tk-tools/internal/freight"
	"github.com/zzyhdu/tk-tools/internal/packing"
	"github.com/zzyhdu/tk-tools/internal/pricing"
	"github.com/zzyhdu/tk-tools/internal/warehouse"
)

type staticRates struct {
	tables freight.RateTables
	err    error
	calls  atomic.Int32
}

func (s *staticRates) GetRateTables() (freight.RateTables, error) {
	s.calls.Add(1)
	if s.err != nil {
		return freight.RateTables{}, s.err
	}
	return s.tables.Clone(), nil
}

func newStaticRates() *staticRates {
	return &staticRates{tables: freight.DefaultRateTables()}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestEvaluateDefaultSKU(t *testing.T) {
	t.Parallel()

	sku := DefaultSKU(1)
	result := Evaluate(sku, freight.DefaultRateTables(), warehouse.Default())

	if len(result.Layouts) != 4 {
		t.Fatalf("expected 4 layouts, got %d", len(result.Layouts))
	}
	if result.Selected == nil || result.Selected.Dims != (packing.BoxDims{L: 20, W: 20, H: 30}) {
		t.Fatalf("unexpected selected layout %+v", result.Selected)
	}
	if result.EffectiveSelectedIndex != 0 {
		t.Fatalf("expected effective index 0, got %d", result.EffectiveSelectedIndex)
	}
	if len(result.Segments) != 1 || result.Segments[0].SegmentHeight != 30 {
		t.Fatalf("unexpected resolved segments %+v", result.Segments)
	}

	if result.Pricing.VolumetricWeightKg != 2 || result.Pricing.ChargeableWeightKg != 2 {
		t.Fatalf("unexpected weights %+v", result.Pricing)
	}
	if result.FirstLeg.BillableWeightKg != 12 || result.FirstLeg.RatePerKg != 8.6 {
		t.Fatalf("unexpected first leg %+v", result.FirstLeg)
	}
	if !approx(result.FirstLeg.FirstLegCost, 103.2) {
		t.Fatalf("expected first leg cost 103.2, got %v", result.FirstLeg.FirstLegCost)
	}
	if !approx(result.PerItemCosts.FirstLegCost, 8.6) {
		t.Fatalf("expected per-item first leg 8.6, got %v", result.PerItemCosts.FirstLegCost)
	}
	if !approx(result.Pricing.TotalCost, 8.6) {
		t.Fatalf("expected total cost 8.6, got %v", result.Pricing.TotalCost)
	}

	checks := []struct {
		name string
		got  *float64
		want float64
	}{
		{"effective", result.Pricing.EffectiveRevenueAfterReturns, 11.47},
		{"discounted", result.Pricing.DiscountedSellingPrice, 12.74},
		{"predicted", result.Pricing.PredictedSellingPrice, 12.74},
		{"profit", result.Pricing.EstimatedProfit, 2.87},
		{"suggestedUsd", result.SuggestedPriceUSD, 1.77},
	}
	for _, c := range checks {
		if c.got == nil || !approx(*c.got, c.want) {
			t.Fatalf("%s: expected %v, got %v", c.name, c.want, c.got)
		}
	}
}

func TestEvaluateConvertsUnits(t *testing.T) {
	t.Parallel()

	sku := DefaultSKU(2)
	sku.Unit = UnitMillimetre
	sku.Dims = packing.Dimensions{Length: 100, Width: 100, Height: 100}

	result := Evaluate(sku, freight.DefaultRateTables(), warehouse.Default())
	if !approx(result.Physical.LengthCm, 20) || !approx(result.Physical.HeightCm, 30) {
		t.Fatalf("expected 20x20x30 cm, got %+v", result.Physical)
	}
	if result.SelectedDims.L != 200 {
		t.Fatalf("expected selected dims in input unit, got %+v", result.SelectedDims)
	}
}

func TestEvaluateFallsBackToTopLayout(t *testing.T) {
	t.Parallel()

	sku := DefaultSKU(1)
	sku.SelectedPackingIndex = 99

	result := Evaluate(sku, freight.DefaultRateTables(), warehouse.Default())
	if result.EffectiveSelectedIndex != 0 {
		t.Fatalf("expected fallback to index 0, got %d", result.EffectiveSelectedIndex)
	}
	if result.SelectedDims != result.Layouts[0].Dims {
		t.Fatalf("expected top layout dims, got %+v", result.SelectedDims)
	}
}

func TestEvaluateWithoutLayouts(t *testing.T) {
	t.Parallel()

	sku := DefaultSKU(1)
	sku.Dims = packing.Dimensions{Length: 0, Width: 10, Height: 10}

	result := Evaluate(sku, freight.DefaultRateTables(), warehouse.Default())
	if len(result.Layouts) != 0 || result.Selected != nil || result.Segments != nil {
		t.Fatalf("expected no layouts, got %+v", result)
	}
	if result.SelectedDims != (packing.BoxDims{L: 0, W: 10, H: 10}) {
		t.Fatalf("expected raw dims fallback, got %+v", result.SelectedDims)
	}
	if snap := NewSnapshot(sku, result); snap.Layout != "--" {
		t.Fatalf("expected placeholder layout, got %q", snap.Layout)
	}
}

func TestEvaluateSpreadsBoxCosts(t *testing.T) {
	t.Parallel()

	sku := DefaultSKU(1)
	sku.UnitPurchasePrice = 3.25
	sku.Costs = BaseCosts{
		SourceToHomeExpressCost:      24,
		DomesticWarehouseExpressCost: 36,
		FulfillmentFeeUSDPerItem:     1.5,
		USDToCNYRate:                 7.2,
	}

	result := Evaluate(sku, freight.DefaultRateTables(), warehouse.Default())
	if result.PurchaseCostBoxCNY != 39 {
		t.Fatalf("expected box purchase cost 39, got %v", result.PurchaseCostBoxCNY)
	}
	want := pricing.CostInputs{
		PurchaseCost:                 3.25,
		SourceToHomeExpressCost:      2,
		DomesticWarehouseExpressCost: 3,
		FirstLegCost:                 8.6,
		FulfillmentFee:               10.8,
	}
	got := result.PerItemCosts
	if !approx(got.PurchaseCost, want.PurchaseCost) ||
		!approx(got.SourceToHomeExpressCost, want.SourceToHomeExpressCost) ||
		!approx(got.DomesticWarehouseExpressCost, want.DomesticWarehouseExpressCost) ||
		!approx(got.FirstLegCost, want.FirstLegCost) ||
		!approx(got.FulfillmentFee, want.FulfillmentFee) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if !approx(result.Pricing.TotalCost, 27.65) {
		t.Fatalf("expected total cost 27.65, got %v", result.Pricing.TotalCost)
	}
}

func TestSKUValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*SKU)
	}{
		{name: "MissingID", mutate: func(s *SKU) { s.ID = " " }},
		{name: "BadUnit", mutate: func(s *SKU) { s.Unit = "ft" }},
		{name: "NegativeDim", mutate: func(s *SKU) { s.Dims.Width = -1 }},
		{name: "NaNWeight", mutate: func(s *SKU) { s.ActualWeightKg = math.NaN() }},
		{name: "ZeroQuantity", mutate: func(s *SKU) { s.Quantity = 0 }},
		{name: "QuantityAboveLimit", mutate: func(s *SKU) { s.Quantity = packing.MaxQuantity + 1 }},
		{name: "TooManyResults", mutate: func(s *SKU) { s.MaxResults = MaxResultsLimit + 1 }},
		{name: "NegativeIndex", mutate: func(s *SKU) { s.SelectedPackingIndex = -1 }},
		{name: "UnknownChannel", mutate: func(s *SKU) { s.Channel = "rail" }},
		{name: "UnknownOrigin", mutate: func(s *SKU) { s.OriginRegion = "north_china" }},
		{name: "UnknownMode", mutate: func(s *SKU) { s.TargetRateMode = "vibes" }},
		{name: "ReturnAbove100", mutate: func(s *SKU) { s.ReturnRatePercent = 101 }},
		{name: "NegativeDiscount", mutate: func(s *SKU) { s.DiscountRatePercent = -5 }},
		{name: "NegativeFee", mutate: func(s *SKU) { s.Costs.FulfillmentFeeUSDPerItem = -1 }},
	}

	if err := DefaultSKU(1).Validate(); err != nil {
		t.Fatalf("expected default sku to be valid: %v", err)
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			sku := DefaultSKU(1)
			tc.mutate(&sku)
			if err := sku.Validate(); !errors.Is(err, ErrInvalidSKU) {
				t.Fatalf("expected ErrInvalidSKU, got %v", err)
			}
		})
	}
}

func TestPickSelectedDimsAndUnits(t *testing.T) {
	t.Parallel()

	layouts := []packing.Layout{
		{Dims: packing.BoxDims{L: 1, W: 2, H: 3}},
		{Dims: packing.BoxDims{L: 4, W: 5, H: 6}},
	}
	fallback := packing.Dimensions{Length: 7, Width: 8, Height: 9}

	if got := PickSelectedDims(layouts, 1, fallback); got.L != 4 {
		t.Fatalf("expected selected layout, got %+v", got)
	}
	if got := PickSelectedDims(layouts, 5, fallback); got.L != 1 {
		t.Fatalf("expected top layout, got %+v", got)
	}
	if got := PickSelectedDims(nil, 0, fallback); got != (packing.BoxDims{L: 7, W: 8, H: 9}) {
		t.Fatalf("expected fallback dims, got %+v", got)
	}

	if got := ToCentimeters(packing.BoxDims{L: 1, W: 2, H: 10}, UnitInch); !approx(got.L, 2.54) || !approx(got.H, 25.4) {
		t.Fatalf("unexpected inch conversion %+v", got)
	}
}

func TestCalculatorCompute(t *testing.T) {
	t.Parallel()

	rates := newStaticRates()
	calc := New(rates, warehouse.Default(), Options{})

	result, err := calc.Compute(context.Background(), DefaultSKU(1))
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if result.SKUID != "sku-1" {
		t.Fatalf("expected sku id echo, got %q", result.SKUID)
	}

	bad := DefaultSKU(1)
	bad.Quantity = 0
	if _, err := calc.Compute(context.Background(), bad); !errors.Is(err, ErrInvalidSKU) {
		t.Fatalf("expected ErrInvalidSKU, got %v", err)
	}
}

func TestCalculatorComputeRateSourceError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	calc := New(&staticRates{err: boom}, warehouse.Default(), Options{})

	if _, err := calc.Compute(context.Background(), DefaultSKU(1)); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped rate error, got %v", err)
	}
}

func TestComputeBatchKeepsOrder(t *testing.T) {
	t.Parallel()

	faker := gofakeit.New(3)
	channels := freight.Channels()
	skus := make([]SKU, 30)
	for i := range skus {
		sku := DefaultSKU(i + 1)
		sku.Dims = packing.Dimensions{
			Length: float64(faker.Number(1, 50)),
			Width:  float64(faker.Number(1, 50)),
			Height: float64(faker.Number(1, 50)),
		}
		sku.Quantity = faker.Number(1, 48)
		sku.ActualWeightKg = faker.Float64Range(0.1, 40)
		sku.Channel = channels[faker.Number(0, len(channels)-1)].Channel
		skus[i] = sku
	}

	rates := newStaticRates()
	calc := New(rates, warehouse.Default(), Options{Concurrency: 3})

	results, err := calc.ComputeBatch(context.Background(), skus)
	if err != nil {
		t.Fatalf("ComputeBatch returned error: %v", err)
	}
	if len(results) != len(skus) {
		t.Fatalf("expected %d results, got %d", len(skus), len(results))
	}
	for i, r := range results {
		if r.SKUID != skus[i].ID {
			t.Fatalf("result %d belongs to %s, want %s", i, r.SKUID, skus[i].ID)
		}
		single := Evaluate(skus[i], freight.DefaultRateTables(), warehouse.Default())
		if r.Pricing.TotalCost != single.Pricing.TotalCost {
			t.Fatalf("result %d differs from a single evaluation", i)
		}
	}
	if rates.calls.Load() != 1 {
		t.Fatalf("expected one rate table read per batch, got %d", rates.calls.Load())
	}
}

func TestComputeBatchLimits(t *testing.T) {
	t.Parallel()

	calc := New(newStaticRates(), warehouse.Default(), Options{MaxBatchSize: 2})

	if _, err := calc.ComputeBatch(context.Background(), nil); !errors.Is(err, ErrEmptyBatch) {
		t.Fatalf("expected ErrEmptyBatch, got %v", err)
	}

	three := []SKU{DefaultSKU(1), DefaultSKU(2), DefaultSKU(3)}
	if _, err := calc.ComputeBatch(context.Background(), three); !errors.Is(err, ErrBatchTooLarge) {
		t.Fatalf("expected ErrBatchTooLarge, got %v", err)
	}

	bad := DefaultSKU(2)
	bad.Unit = "ft"
	_, err := calc.ComputeBatch(context.Background(), []SKU{DefaultSKU(1), bad})
	if !errors.Is(err, ErrInvalidSKU) {
		t.Fatalf("expected ErrInvalidSKU, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "sku 1: ") {
		t.Fatalf("expected error to name the sku index, got %v", err)
	}
}

func TestComputeBatchCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calc := New(newStaticRates(), warehouse.Default(), Options{})
	_, err := calc.ComputeBatch(ctx, []SKU{DefaultSKU(1), DefaultSKU(2)})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNewSnapshot(t *testing.T) {
	t.Parallel()

	sku := DefaultSKU(4)
	snap := NewSnapshot(sku, Evaluate(sku, freight.DefaultRateTables(), warehouse.Default()))
	if snap.ID != "sku-4" || snap.Name != "SKU 4" {
		t.Fatalf("unexpected identity %+v", snap)
	}
	if snap.Layout != "2 × 2 × 3" {
		t.Fatalf("unexpected layout %q", snap.Layout)
	}
	if snap.SuggestedPrice == nil {
		t.Fatalf("expected suggested price")
	}
}

func BenchmarkComputeBatch(b *testing.B) {
	skus := make([]SKU, 50)
	for i := range skus {
		skus[i] = DefaultSKU(i + 1)
		skus[i].Quantity = 24 + i
	}
	calc := New(newStaticRates(), warehouse.Default(), Options{MaxBatchSize: len(skus)})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := calc.ComputeBatch(context.Background(), skus); err != nil {
			b.Fatal(err)
		}
	}
}

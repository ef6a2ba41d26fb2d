package quote

import (
	"github.com/zzyhdu/tk-tools/internal/freight"
	"github.com/zzyhdu/tk-tools/internal/packing"
	"github.com/zzyhdu/tk-tools/internal/pricing"
	"github.com/zzyhdu/tk-tools/internal/warehouse"
)

// Result is everything derived from one SKU.
type Result struct {
	SKUID                  string                    `json:"skuId"`
	Layouts                []packing.Layout          `json:"packingResults"`
	Selected               *packing.Layout           `json:"selectedResult"`
	SelectedDims           packing.BoxDims           `json:"selectedDims"`
	Segments               []packing.ResolvedSegment `json:"resolvedSegments"`
	PurchaseCostBoxCNY     float64                   `json:"purchaseCostBoxCny"`
	PerItemCosts           pricing.CostInputs        `json:"perItemCostBreakdown"`
	FirstLeg               freight.Result            `json:"firstLegPricing"`
	Pricing                pricing.Summary           `json:"pricingSummary"`
	Physical               pricing.PhysicalInputs    `json:"pricingPhysical"`
	EffectiveSelectedIndex int                       `json:"effectiveSelectedIndex"`
	SuggestedPriceUSD      *float64                  `json:"suggestedPriceUsd"`
	DiscountedPriceUSD     *float64                  `json:"discountedPriceUsd"`
}

// Snapshot is the short form of a computed SKU used in listings.
type Snapshot struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Layout         string   `json:"layout"`
	SuggestedPrice *float64 `json:"suggestedPrice"`
}

// Evaluate runs the full pipeline for sku: layouts, the selected carton in
// centimetres, first-leg freight for the carton, per-item cost split and the
// pricing summary. It is pure and safe for concurrent use.
func Evaluate(sku SKU, tables freight.RateTables, dir *warehouse.Directory) Result {
	layouts := packing.Enumerate(sku.Dims, sku.Quantity, sku.MaxResults)

	effective := 0
	if sku.SelectedPackingIndex >= 0 && sku.SelectedPackingIndex < len(layouts) {
		effective = sku.SelectedPackingIndex
	}

	var selected *packing.Layout
	var segments []packing.ResolvedSegment
	if effective < len(layouts) {
		layout := layouts[effective]
		selected = &layout
		segments = packing.ResolveLayout(layout.Label, layout.Dims, sku.Dims)
	}

	selectedDims := PickSelectedDims(layouts, sku.SelectedPackingIndex, sku.Dims)
	cm := ToCentimeters(selectedDims, sku.Unit)
	physical := pricing.PhysicalInputs{
		ActualWeightKg: sku.ActualWeightKg,
		LengthCm:       cm.L,
		WidthCm:        cm.W,
		HeightCm:       cm.H,
	}

	volumetric := pricing.VolumetricWeightKg(physical)
	firstLeg := freight.Resolve(freight.Request{
		Channel:                sku.Channel,
		ChargeableWeightKg:     pricing.ChargeableWeightKg(physical.ActualWeightKg, volumetric),
		OriginRegion:           sku.OriginRegion,
		DestinationWarehouseID: sku.DestinationWarehouseID,
	}, tables, dir)

	qty := float64(sku.Quantity)
	purchaseBox := pricing.PurchaseCostByUnit(sku.UnitPurchasePrice, qty)
	perItem := pricing.CostInputs{
		PurchaseCost:                 pricing.PerItemCostFromBoxCost(purchaseBox, qty),
		SourceToHomeExpressCost:      pricing.PerItemCostFromBoxCost(sku.Costs.SourceToHomeExpressCost, qty),
		DomesticWarehouseExpressCost: pricing.PerItemCostFromBoxCost(sku.Costs.DomesticWarehouseExpressCost, qty),
		FirstLegCost:                 pricing.PerItemCostFromBoxCost(firstLeg.FirstLegCost, qty),
		FulfillmentFee:               pricing.FulfillmentFeePerItemCNY(sku.Costs.FulfillmentFeeUSDPerItem, sku.Costs.USDToCNYRate),
	}

	summary := pricing.Summarize(pricing.Inputs{
		Channel:        string(sku.Channel),
		Costs:          perItem,
		Physical:       physical,
		TargetRate:     sku.TargetRatePercent / 100,
		TargetRateMode: sku.TargetRateMode,
		Adjustments: pricing.Adjustments{
			ReturnRate:   sku.ReturnRatePercent / 100,
			DiscountRate: sku.DiscountRatePercent / 100,
		},
	})

	return Result{
		SKUID:                  sku.ID,
		Layouts:                layouts,
		Selected:               selected,
		SelectedDims:           selectedDims,
		Segments:               segments,
		PurchaseCostBoxCNY:     purchaseBox,
		PerItemCosts:           perItem,
		FirstLeg:               firstLeg,
		Pricing:                summary,
		Physical:               physical,
		EffectiveSelectedIndex: effective,
		SuggestedPriceUSD:      pricing.CNYToUSD(summary.PredictedSellingPrice, sku.Costs.USDToCNYRate),
		DiscountedPriceUSD:     pricing.CNYToUSD(summary.DiscountedSellingPrice, sku.Costs.USDToCNYRate),
	}
}

// NewSnapshot summarises a computed SKU. Layout is "--" when no layout exists.
func NewSnapshot(sku SKU, result Result) Snapshot {
	layout := "--"
	if result.Selected != nil {
		layout = result.Selected.Label
	}
	return Snapshot{
		ID:             sku.ID,
		Name:           sku.Name,
		Layout:         layout,
		SuggestedPrice: result.Pricing.PredictedSellingPrice,
	}
}

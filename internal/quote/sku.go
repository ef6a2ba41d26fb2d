package quote

import (
	"fmt"
	"math"
	"strings"

	"github.com/zzyhdu/tk-tools/internal/freight"
	"github.com/zzyhdu/tk-tools/internal/packing"
	"github.com/zzyhdu/tk-tools/internal/pricing"
	"github.com/zzyhdu/tk-tools/internal/warehouse"
)

// Unit is the length unit SKU dimensions are entered in.
type Unit string

const (
	UnitCentimetre Unit = "cm"
	UnitMillimetre Unit = "mm"
	UnitInch       Unit = "in"
)

var unitToCentimetres = map[Unit]float64{
	UnitCentimetre: 1,
	UnitMillimetre: 0.1,
	UnitInch:       2.54,
}

// MaxResultsLimit bounds how many layouts a SKU may request.
const MaxResultsLimit = 12

// BaseCosts are box-level costs in CNY, except the fulfilment fee which is
// charged per item in USD.
type BaseCosts struct {
	SourceToHomeExpressCost      float64 `json:"sourceToHomeExpressCost"`
	DomesticWarehouseExpressCost float64 `json:"domesticWarehouseExpressCost"`
	FulfillmentFeeUSDPerItem     float64 `json:"fbtFulfillmentFeeUsdPerItem"`
	USDToCNYRate                 float64 `json:"usdToCnyRate"`
}

// SKU is one product being quoted. Rate fields are percents.
type SKU struct {
	ID                     string                 `json:"id"`
	Name                   string                 `json:"name"`
	Unit                   Unit                   `json:"unit"`
	Dims                   packing.Dimensions     `json:"dims"`
	Quantity               int                    `json:"quantity"`
	UnitPurchasePrice      float64                `json:"unitPurchasePrice"`
	MaxResults             int                    `json:"maxResults"`
	SelectedPackingIndex   int                    `json:"selectedPackingIndex"`
	ActualWeightKg         float64                `json:"actualWeightKg"`
	DestinationWarehouseID string                 `json:"destinationWarehouseId"`
	OriginRegion           freight.OriginRegion   `json:"originRegion"`
	Channel                freight.Channel        `json:"firstLegChannel"`
	TargetRateMode         pricing.TargetRateMode `json:"targetRateMode"`
	TargetRatePercent      float64                `json:"targetRatePercent"`
	ReturnRatePercent      float64                `json:"returnRatePercent"`
	DiscountRatePercent    float64                `json:"discountRatePercent"`
	Costs                  BaseCosts              `json:"costs"`
}

// DefaultSKU returns the starting configuration for the index-th SKU.
func DefaultSKU(index int) SKU {
	return SKU{
		ID:                     fmt.Sprintf("sku-%d", index),
		Name:                   fmt.Sprintf("SKU %d", index),
		Unit:                   UnitCentimetre,
		Dims:                   packing.Dimensions{Length: 10, Width: 10, Height: 10},
		Quantity:               12,
		MaxResults:             6,
		ActualWeightKg:         1,
		DestinationWarehouseID: warehouse.DefaultID,
		OriginRegion:           freight.OriginEastChina,
		Channel:                freight.ChannelStandardSea,
		TargetRateMode:         pricing.MarginOnSalePrice,
		TargetRatePercent:      25,
		ReturnRatePercent:      10,
		DiscountRatePercent:    100,
		Costs:                  BaseCosts{USDToCNYRate: 7.2},
	}
}

// Validate checks the SKU fields a caller controls. Zero dimensions are
// accepted and simply produce no layouts.
func (s SKU) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return invalid("id is required")
	}
	if _, ok := unitToCentimetres[s.Unit]; !ok {
		return invalid("unit must be one of cm, mm, in")
	}
	numbers := []struct {
		name  string
		value float64
	}{
		{"dims.length", s.Dims.Length},
		{"dims.width", s.Dims.Width},
		{"dims.height", s.Dims.Height},
		{"unitPurchasePrice", s.UnitPurchasePrice},
		{"actualWeightKg", s.ActualWeightKg},
		{"targetRatePercent", s.TargetRatePercent},
		{"costs.sourceToHomeExpressCost", s.Costs.SourceToHomeExpressCost},
		{"costs.domesticWarehouseExpressCost", s.Costs.DomesticWarehouseExpressCost},
		{"costs.fbtFulfillmentFeeUsdPerItem", s.Costs.FulfillmentFeeUSDPerItem},
		{"costs.usdToCnyRate", s.Costs.USDToCNYRate},
	}
	for _, n := range numbers {
		if math.IsNaN(n.value) || math.IsInf(n.value, 0) || n.value < 0 {
			return invalid(n.name + " must be a non-negative number")
		}
	}
	if s.Quantity < 1 || s.Quantity > packing.MaxQuantity {
		return invalid(fmt.Sprintf("quantity must be between 1 and %d", packing.MaxQuantity))
	}
	if s.MaxResults < 1 || s.MaxResults > MaxResultsLimit {
		return invalid(fmt.Sprintf("maxResults must be between 1 and %d", MaxResultsLimit))
	}
	if s.SelectedPackingIndex < 0 {
		return invalid("selectedPackingIndex must not be negative")
	}
	if !s.Channel.Valid() {
		return invalid("unknown firstLegChannel")
	}
	if !s.OriginRegion.Valid() {
		return invalid("unknown originRegion")
	}
	if !s.TargetRateMode.Valid() {
		return invalid("unknown targetRateMode")
	}
	if s.ReturnRatePercent < 0 || s.ReturnRatePercent > 100 {
		return invalid("returnRatePercent must be between 0 and 100")
	}
	if s.DiscountRatePercent < 0 || s.DiscountRatePercent > 100 {
		return invalid("discountRatePercent must be between 0 and 100")
	}
	return nil
}

func invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidSKU, reason)
}

// ToCentimeters converts a box from unit to centimetres. Unknown units are
// treated as centimetres.
func ToCentimeters(box packing.BoxDims, unit Unit) packing.BoxDims {
	factor, ok := unitToCentimetres[unit]
	if !ok {
		factor = 1
	}
	return packing.BoxDims{L: box.L * factor, W: box.W * factor, H: box.H * factor}
}

// PickSelectedDims returns the dims of the layout at index, else the top
// layout, else the raw unit dimensions.
func PickSelectedDims(layouts []packing.Layout, index int, fallback packing.Dimensions) packing.BoxDims {
	if index >= 0 && index < len(layouts) {
		return layouts[index].Dims
	}
	if len(layouts) > 0 {
		return layouts[0].Dims
	}
	return packing.BoxDims{L: fallback.Length, W: fallback.Width, H: fallback.Height}
}

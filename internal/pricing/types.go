package pricing

// TargetRateMode selects how the target rate is applied to total cost.
type TargetRateMode string

const (
	// MarginOnSalePrice treats the target rate as profit over revenue.
	MarginOnSalePrice TargetRateMode = "margin_on_sale_price"
	// MarkupOnCost treats the target rate as profit over cost.
	MarkupOnCost TargetRateMode = "markup_on_cost"
)

// Valid reports whether m is a known mode.
func (m TargetRateMode) Valid() bool {
	return m == MarginOnSalePrice || m == MarkupOnCost
}

// CostInputs are the per-item cost components, in CNY.
type CostInputs struct {
	PurchaseCost                 float64 `json:"purchaseCost"`
	SourceToHomeExpressCost      float64 `json:"sourceToHomeExpressCost"`
	DomesticWarehouseExpressCost float64 `json:"domesticWarehouseExpressCost"`
	FirstLegCost                 float64 `json:"firstLegCost"`
	FulfillmentFee               float64 `json:"fbtFulfillmentFee"`
}

// PhysicalInputs describe the shipped carton.
type PhysicalInputs struct {
	ActualWeightKg float64 `json:"actualWeightKg"`
	LengthCm       float64 `json:"lengthCm"`
	WidthCm        float64 `json:"widthCm"`
	HeightCm       float64 `json:"heightCm"`
}

// Adjustments carry the return and discount ratios, both as fractions.
type Adjustments struct {
	ReturnRate   float64 `json:"returnRate"`
	DiscountRate float64 `json:"discountRate"`
}

// Inputs is everything Summarize needs. Rates are fractions, not percents.
type Inputs struct {
	Channel        string         `json:"firstLegChannel"`
	Costs          CostInputs     `json:"costs"`
	Physical       PhysicalInputs `json:"physical"`
	TargetRate     float64        `json:"targetRate"`
	TargetRateMode TargetRateMode `json:"targetRateMode"`
	Adjustments
}

// Summary is the pricing outcome. Nil pointers mean the value is undefined
// for the given inputs.
type Summary struct {
	Channel                      string   `json:"firstLegChannel"`
	VolumetricWeightKg           float64  `json:"volumetricWeightKg"`
	ChargeableWeightKg           float64  `json:"chargeableWeightKg"`
	TotalCost                    float64  `json:"totalCost"`
	PredictedSellingPrice        *float64 `json:"predictedSellingPrice"`
	DiscountedSellingPrice       *float64 `json:"discountedSellingPrice"`
	EffectiveRevenueAfterReturns *float64 `json:"effectiveRevenueAfterReturns"`
	EstimatedProfit              *float64 `json:"estimatedProfit"`
	ProfitRateOnSalePrice        *float64 `json:"profitRateOnSalePrice"`
	MarkupOnCost                 *float64 `json:"markupOnCost"`
}

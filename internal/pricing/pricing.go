package pricing

import (
	"math"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// volumetricDivisor converts cubic centimetres to dimensional kilograms.
const volumetricDivisor = 6000

// VolumetricWeightKg returns L·W·H/6000 rounded to 3 decimals.
func VolumetricWeightKg(physical PhysicalInputs) float64 {
	l := NonNegative(physical.LengthCm)
	w := NonNegative(physical.WidthCm)
	h := NonNegative(physical.HeightCm)
	return RoundWeight(NonNegative(l * w * h / volumetricDivisor))
}

// ChargeableWeightKg is the larger of the actual and volumetric weights.
func ChargeableWeightKg(actualKg, volumetricKg float64) float64 {
	return RoundWeight(math.Max(NonNegative(actualKg), NonNegative(volumetricKg)))
}

// TotalCost sums the cost components, ignoring negative or non-finite entries.
// A sum beyond float64 range collapses to 0.
func TotalCost(costs CostInputs) float64 {
	total := decimal.Sum(
		decimal.NewFromFloat(NonNegative(costs.PurchaseCost)),
		decimal.NewFromFloat(NonNegative(costs.SourceToHomeExpressCost)),
		decimal.NewFromFloat(NonNegative(costs.DomesticWarehouseExpressCost)),
		decimal.NewFromFloat(NonNegative(costs.FirstLegCost)),
		decimal.NewFromFloat(NonNegative(costs.FulfillmentFee)),
	)
	return NonNegative(total.Round(moneyPlaces).InexactFloat64())
}

// PurchaseCostByUnit is unit price times quantity.
func PurchaseCostByUnit(unitPrice, quantity float64) float64 {
	return RoundMoney(NonNegative(unitPrice) * NonNegative(quantity))
}

// PerItemCostFromBoxCost spreads a box-level cost across quantity items.
// A non-positive quantity yields 0.
func PerItemCostFromBoxCost(boxCost, quantity float64) float64 {
	q := NonNegative(quantity)
	if q <= 0 {
		return 0
	}
	return RoundMoney(NonNegative(boxCost) / q)
}

// FulfillmentFeePerItemCNY converts a per-item USD fee to CNY.
func FulfillmentFeePerItemCNY(feeUSD, usdToCNY float64) float64 {
	return RoundMoney(NonNegative(feeUSD) * NonNegative(usdToCNY))
}

// CNYToUSD converts amount at usdToCNY. It returns nil when amount is nil or
// the exchange rate is not positive.
func CNYToUSD(amount *float64, usdToCNY float64) *float64 {
	if amount == nil {
		return nil
	}
	rate := NonNegative(usdToCNY)
	if rate <= 0 {
		return nil
	}
	return lo.ToPtr(RoundMoney(NonNegative(*amount) / rate))
}

// FirstLegCostFromRate multiplies weight by a per-kg rate.
func FirstLegCostFromRate(weightKg, ratePerKg float64) float64 {
	return RoundMoney(NonNegative(weightKg) * NonNegative(ratePerKg))
}

type targets struct {
	listPrice        float64
	discountedPrice  float64
	effectiveRevenue float64
}

// priceTargets inverts the target rate, return rate and discount into the
// three price points. ok is false when the inputs make pricing undefined.
func priceTargets(totalCost, targetRate float64, mode TargetRateMode, adj Adjustments) (targets, bool) {
	cost := NonNegative(totalCost)
	if !isFinite(targetRate) || targetRate < 0 {
		return targets{}, false
	}
	if !isFinite(adj.ReturnRate) || !isFinite(adj.DiscountRate) {
		return targets{}, false
	}

	returnRate := NonNegative(adj.ReturnRate)
	discountRate := NonNegative(adj.DiscountRate)
	if returnRate >= 1 || discountRate <= 0 {
		return targets{}, false
	}

	var revenue float64
	if mode == MarginOnSalePrice {
		if targetRate >= 1 {
			return targets{}, false
		}
		revenue = cost / (1 - targetRate)
	} else {
		revenue = cost * (1 + targetRate)
	}

	discounted := revenue / (1 - returnRate)
	list := discounted / discountRate
	if !isFinite(revenue) || !isFinite(discounted) || !isFinite(list) {
		return targets{}, false
	}
	return targets{
		listPrice:        list,
		discountedPrice:  discounted,
		effectiveRevenue: revenue,
	}, true
}

// TargetSellingPrice returns the list price before discount needed to hit the
// target rate, or nil when the inputs make that price undefined.
func TargetSellingPrice(totalCost, targetRate float64, mode TargetRateMode, adj Adjustments) *float64 {
	t, ok := priceTargets(totalCost, targetRate, mode, adj)
	if !ok {
		return nil
	}
	return lo.ToPtr(RoundMoney(t.listPrice))
}

// Summarize derives weights, total cost, target prices and profit for one item.
// Price fields are only set when all three price points are finite, profit
// fields only when total cost and every price point are also positive.
func Summarize(in Inputs) Summary {
	volumetric := VolumetricWeightKg(in.Physical)
	summary := Summary{
		Channel:            in.Channel,
		VolumetricWeightKg: volumetric,
		ChargeableWeightKg: ChargeableWeightKg(in.Physical.ActualWeightKg, volumetric),
		TotalCost:          TotalCost(in.Costs),
	}

	t, ok := priceTargets(summary.TotalCost, in.TargetRate, in.TargetRateMode, in.Adjustments)
	if !ok {
		return summary
	}

	predicted := RoundMoney(t.listPrice)
	discounted := RoundMoney(t.discountedPrice)
	effective := RoundMoney(t.effectiveRevenue)
	summary.PredictedSellingPrice = &predicted
	summary.DiscountedSellingPrice = &discounted
	summary.EffectiveRevenueAfterReturns = &effective

	if predicted <= 0 || discounted <= 0 || effective <= 0 || summary.TotalCost <= 0 {
		return summary
	}

	profit := RoundMoney(effective - summary.TotalCost)
	profitRate := profit / effective
	markup := profit / summary.TotalCost
	if !isFinite(profit) || !isFinite(profitRate) || !isFinite(markup) {
		return summary
	}
	summary.EstimatedProfit = &profit
	summary.ProfitRateOnSalePrice = &profitRate
	summary.MarkupOnCost = &markup

	return summary
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

package freight

import (
	"fmt"
	"math"

	"github.com/zzyhdu/tk-tools/internal/pricing"
	"github.com/zzyhdu/tk-tools/internal/warehouse"
)

type seaTierStep struct {
	tier      Tier
	minWeight float64
	rates     func(SeaRateCard) SeaTierRates
}

// seaTiersDesc is scanned heaviest first; the first quoted tier wins.
var seaTiersDesc = []seaTierStep{
	{tier: TierSea1000Plus, minWeight: 1000, rates: func(c SeaRateCard) SeaTierRates { return c.Tier1000Plus }},
	{tier: TierSea500Plus, minWeight: 500, rates: func(c SeaRateCard) SeaTierRates { return c.Tier500Plus }},
	{tier: TierSea100Plus, minWeight: 100, rates: func(c SeaRateCard) SeaTierRates { return c.Tier100Plus }},
	{tier: TierSea51Plus, minWeight: 51, rates: func(c SeaRateCard) SeaTierRates { return c.Tier51Plus }},
	{tier: TierSea12Plus, minWeight: 12, rates: func(c SeaRateCard) SeaTierRates { return c.Tier12Plus }},
}

var seaProductNames = map[Channel]string{
	ChannelExpressSea:  "express sea truck",
	ChannelStandardSea: "standard sea truck",
	ChannelEconomySea:  "economy sea truck",
}

// Resolve prices the first leg for req. It never fails: missing warehouses,
// cards or quotes produce a zero cost with Details explaining why.
func Resolve(req Request, tables RateTables, dir *warehouse.Directory) Result {
	chargeable := pricing.NonNegative(req.ChargeableWeightKg)
	billable := math.Max(MinimumBillableKg, chargeable)

	switch req.Channel {
	case ChannelAirExpress:
		return resolveAir(req, tables.AirExpress, dir, billable)
	case ChannelExpressSea:
		return resolveSea(req, tables.ExpressSea, dir, billable)
	case ChannelStandardSea:
		return resolveSea(req, tables.StandardSea, dir, billable)
	case ChannelEconomySea:
		return resolveSea(req, tables.EconomySea, dir, billable)
	}

	rate := pricing.NonNegative(tables.FlatRatePerKg[req.Channel])
	return Result{
		FirstLegCost:     pricing.FirstLegCostFromRate(chargeable, rate),
		RatePerKg:        rate,
		BillableWeightKg: chargeable,
		Details:          "billed at a flat per-kg rate",
	}
}

// PickAirExpressTier returns the air weight bracket for a billable weight.
func PickAirExpressTier(billableKg float64) Tier {
	switch {
	case billableKg <= 20:
		return TierAir12To20
	case billableKg <= 100:
		return TierAir21To100
	default:
		return TierAir101Plus
	}
}

// ZoneForWarehouse returns the air express zone of a warehouse, or "" when
// the id is empty or unknown.
func ZoneForWarehouse(dir *warehouse.Directory, warehouseID string) warehouse.Region {
	if warehouseID == "" {
		return ""
	}
	return dir.RegionByID(warehouseID)
}

func resolveAir(req Request, table AirExpressRateTable, dir *warehouse.Directory, billable float64) Result {
	tier := PickAirExpressTier(billable)
	zone := ZoneForWarehouse(dir, req.DestinationWarehouseID)
	if zone == "" {
		return Result{
			BillableWeightKg: billable,
			Tier:             tier,
			Details:          "no valid destination warehouse, cannot determine the air express zone",
		}
	}

	row, ok := table[zone]
	if !ok {
		return Result{
			BillableWeightKg: billable,
			Zone:             zone,
			Tier:             tier,
			Details:          fmt.Sprintf("no air express rates for the %s zone", zone),
		}
	}

	rate := airRate(row, tier)
	return Result{
		FirstLegCost:     pricing.FirstLegCostFromRate(billable, rate),
		RatePerKg:        rate,
		BillableWeightKg: billable,
		Zone:             zone,
		Tier:             tier,
		Details:          "billed by air express zone and weight tier",
	}
}

func airRate(row AirExpressRateRow, tier Tier) float64 {
	switch tier {
	case TierAir12To20:
		return pricing.NonNegative(row.Tier12To20)
	case TierAir21To100:
		return pricing.NonNegative(row.Tier21To100)
	default:
		return pricing.NonNegative(row.Tier101Plus)
	}
}

func resolveSea(req Request, table SeaRateTable, dir *warehouse.Directory, billable float64) Result {
	product := seaProductNames[req.Channel]

	w, ok := dir.ByID(req.DestinationWarehouseID)
	if !ok || req.DestinationWarehouseID == "" {
		return Result{
			BillableWeightKg: billable,
			Details:          fmt.Sprintf("no valid destination warehouse, cannot price %s", product),
		}
	}

	rateCard, ok := table[w.Code]
	if !ok {
		return Result{
			BillableWeightKg: billable,
			Zone:             w.Region,
			Details:          fmt.Sprintf("warehouse %s has no %s quote", w.Code, product),
		}
	}

	tier, rate, ok := pickSeaTierRate(rateCard, billable, req.OriginRegion)
	if !ok {
		return Result{
			BillableWeightKg: billable,
			Zone:             w.Region,
			Details:          fmt.Sprintf("%s has no quote from %s at %.3fkg", w.Code, req.OriginRegion.Label(), billable),
		}
	}

	return Result{
		FirstLegCost:     pricing.FirstLegCostFromRate(billable, rate),
		RatePerKg:        rate,
		BillableWeightKg: billable,
		Zone:             w.Region,
		Tier:             tier,
		Details: fmt.Sprintf("billed by %s warehouse quote (%s, %s, reference %d days)",
			product, w.Code, req.OriginRegion.Label(), rateCard.ReferenceTransitDays),
	}
}

func pickSeaTierRate(c SeaRateCard, billable float64, origin OriginRegion) (Tier, float64, bool) {
	for _, step := range seaTiersDesc {
		if billable < step.minWeight {
			continue
		}
		cell := step.rates(c).Rate(origin)
		if cell == nil {
			continue
		}
		rate := pricing.NonNegative(*cell)
		if rate <= 0 {
			continue
		}
		return step.tier, rate, true
	}
	return "", 0, false
}

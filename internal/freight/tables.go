package freight

import (
	"github.com/samber/lo"

	"github.com/zzyhdu/tk-tools/internal/warehouse"
)

const defaultDeliveryMode = "truck delivery"

func seaTier(eastChina, southChina, fujian float64) SeaTierRates {
	return SeaTierRates{
		EastChina:  lo.ToPtr(eastChina),
		SouthChina: lo.ToPtr(southChina),
		Fujian:     lo.ToPtr(fujian),
	}
}

// card builds a rate card whose 100+ tier repeats the 51+ rates, matching the
// published quotes.
func card(tier12, tier51, tier500, tier1000 SeaTierRates, referenceDays, claimDays int) SeaRateCard {
	return SeaRateCard{
		Tier12Plus:           tier12,
		Tier51Plus:           tier51,
		Tier100Plus:          tier51,
		Tier500Plus:          tier500,
		Tier1000Plus:         tier1000,
		ReferenceTransitDays: referenceDays,
		ClaimTransitDays:     claimDays,
		DeliveryMode:         defaultDeliveryMode,
	}
}

// byWarehouseCode assigns the six regional cards to every destination code.
func byWarehouseCode(west, westHub, centralOrd, centralHouston, eastAtlanta, eastEwr SeaRateCard) SeaRateTable {
	return SeaRateTable{
		"FC11_ONT5": west,
		"FC01_ONT2": west,
		"FC07_ONT3": west,
		"FC08_ONT4": west,
		"XD03_ONT6": west,
		"XD01_ONT1": westHub,
		"FC10_ORD2": centralOrd,
		"FC02_ORD1": centralOrd,
		"FC12_HOU3": centralHouston,
		"FC06_HOU2": centralHouston,
		"FC05_HOU1": centralHouston,
		"FC09_ATL2": eastAtlanta,
		"FC03_ATL1": eastAtlanta,
		"FC13_EWR3": eastEwr,
		"FC14_EWR4": eastEwr,
		"XD02_EWR1": eastEwr,
		"FC04_EWR2": eastEwr,
	}
}

func defaultExpressSea() SeaRateTable {
	none := SeaTierRates{}
	ord := func(ref, claim int) SeaRateCard {
		return card(none, seaTier(12.6, 13.1, 13.1), seaTier(12.5, 13, 13), seaTier(12.4, 12.9, 12.9), ref, claim)
	}
	return byWarehouseCode(
		card(seaTier(11.6, 12.1, 12.1), seaTier(9.6, 10.1, 10.1), seaTier(9.5, 10, 10), seaTier(9.4, 9.9, 9.9), 16, 17),
		card(seaTier(11.1, 11.6, 11.6), seaTier(9.1, 9.6, 9.6), seaTier(9, 9.5, 9.5), seaTier(8.9, 9.4, 9.4), 16, 17),
		ord(22, 23),
		card(none, seaTier(12.2, 12.7, 12.7), seaTier(12.1, 12.6, 12.6), seaTier(12, 12.5, 12.5), 22, 23),
		ord(24, 25),
		card(none, seaTier(13.7, 14.2, 14.2), seaTier(13.6, 14.1, 14.1), seaTier(13.5, 14, 14), 25, 26),
	)
}

func defaultStandardSea() SeaRateTable {
	none := SeaTierRates{}
	ord := func(ref, claim int) SeaRateCard {
		return card(none, seaTier(9.6, 9.7, 10.1), seaTier(9.5, 9.6, 10), seaTier(9.4, 9.5, 9.9), ref, claim)
	}
	return byWarehouseCode(
		card(seaTier(8.6, 8.7, 9.1), seaTier(6.6, 6.7, 7.1), seaTier(6.5, 6.6, 7), seaTier(6.4, 6.5, 6.9), 19, 25),
		card(seaTier(8.1, 8.2, 8.6), seaTier(6.1, 6.2, 6.6), seaTier(6, 6.1, 6.5), seaTier(5.9, 6, 6.4), 19, 25),
		ord(25, 30),
		card(none, seaTier(9.2, 9.3, 9.7), seaTier(9.1, 9.2, 9.6), seaTier(9, 9.1, 9.5), 25, 30),
		ord(27, 32),
		card(none, seaTier(10.7, 10.8, 11.2), seaTier(10.6, 10.7, 11.1), seaTier(10.5, 10.6, 11), 28, 33),
	)
}

func defaultEconomySea() SeaRateTable {
	none := SeaTierRates{}
	ord := func(ref, claim int) SeaRateCard {
		return card(none, seaTier(7.3, 7.3, 7.4), seaTier(7.2, 7.2, 7.3), seaTier(7.1, 7.1, 7.2), ref, claim)
	}
	return byWarehouseCode(
		card(seaTier(6.3, 6.3, 6.4), seaTier(4.3, 4.3, 4.4), seaTier(4.2, 4.2, 4.3), seaTier(4.1, 4.1, 4.2), 25, 34),
		card(seaTier(5.8, 5.8, 5.9), seaTier(3.8, 3.8, 3.9), seaTier(3.7, 3.7, 3.8), seaTier(3.6, 3.6, 3.7), 25, 34),
		ord(29, 37),
		card(none, seaTier(6.9, 6.9, 7), seaTier(6.8, 6.8, 6.9), seaTier(6.7, 6.7, 6.8), 29, 37),
		ord(33, 39),
		card(none, seaTier(8.4, 8.4, 8.5), seaTier(8.3, 8.3, 8.4), seaTier(8.2, 8.2, 8.3), 33, 39),
	)
}

// DefaultRateTables returns a fresh copy of the published rate tables.
func DefaultRateTables() RateTables {
	return RateTables{
		FlatRatePerKg: FlatRates{
			ChannelExpressSea:  0,
			ChannelStandardSea: 0,
			ChannelEconomySea:  0,
			ChannelAirExpress:  0,
		},
		AirExpress: AirExpressRateTable{
			warehouse.RegionWest:    {Tier12To20: 51, Tier21To100: 50, Tier101Plus: 49},
			warehouse.RegionCentral: {Tier12To20: 53, Tier21To100: 52, Tier101Plus: 51},
			warehouse.RegionEast:    {Tier12To20: 54, Tier21To100: 53, Tier101Plus: 52},
		},
		ExpressSea:  defaultExpressSea(),
		StandardSea: defaultStandardSea(),
		EconomySea:  defaultEconomySea(),
	}
}

package freight

import "github.com/zzyhdu/tk-tools/internal/warehouse"

// Channel is a first-leg shipping product.
type Channel string

const (
	ChannelExpressSea  Channel = "fbt_us_express_sea_truck"
	ChannelStandardSea Channel = "fbt_us_standard_sea_truck"
	ChannelEconomySea  Channel = "fbt_us_economy_sea_truck"
	ChannelAirExpress  Channel = "fbt_air_express"
)

// Tier identifies the weight bracket a rate was taken from.
type Tier string

const (
	TierAir12To20   Tier = "12_20"
	TierAir21To100  Tier = "21_100"
	TierAir101Plus  Tier = "101_plus"
	TierSea12Plus   Tier = "12_plus"
	TierSea51Plus   Tier = "51_plus"
	TierSea100Plus  Tier = "100_plus"
	TierSea500Plus  Tier = "500_plus"
	TierSea1000Plus Tier = "1000_plus"
)

// OriginRegion is the Chinese departure region for sea freight.
type OriginRegion string

const (
	OriginEastChina  OriginRegion = "east_china"
	OriginSouthChina OriginRegion = "south_china"
	OriginFujian     OriginRegion = "fujian"
)

// MinimumBillableKg is the floor applied to tiered channels.
const MinimumBillableKg = 12

// AirExpressRateRow holds per-kg air rates for one zone.
type AirExpressRateRow struct {
	Tier12To20  float64 `json:"tier12To20" yaml:"tier12To20"`
	Tier21To100 float64 `json:"tier21To100" yaml:"tier21To100"`
	Tier101Plus float64 `json:"tier101Plus" yaml:"tier101Plus"`
}

// AirExpressRateTable maps a zone to its rate row.
type AirExpressRateTable map[warehouse.Region]AirExpressRateRow

// SeaTierRates holds one tier's rate per origin. A nil cell means the lane is
// not quoted at that tier, which is different from a zero rate.
type SeaTierRates struct {
	EastChina  *float64 `json:"east_china" yaml:"east_china"`
	SouthChina *float64 `json:"south_china" yaml:"south_china"`
	Fujian     *float64 `json:"fujian" yaml:"fujian"`
}

// Rate returns the cell for origin, or nil for unknown origins.
func (r SeaTierRates) Rate(origin OriginRegion) *float64 {
	switch origin {
	case OriginEastChina:
		return r.EastChina
	case OriginSouthChina:
		return r.SouthChina
	case OriginFujian:
		return r.Fujian
	default:
		return nil
	}
}

// SeaRateCard is the tiered quote for one destination warehouse code.
type SeaRateCard struct {
	Tier12Plus           SeaTierRates `json:"tier12Plus" yaml:"tier12Plus"`
	Tier51Plus           SeaTierRates `json:"tier51Plus" yaml:"tier51Plus"`
	Tier100Plus          SeaTierRates `json:"tier100Plus" yaml:"tier100Plus"`
	Tier500Plus          SeaTierRates `json:"tier500Plus" yaml:"tier500Plus"`
	Tier1000Plus         SeaTierRates `json:"tier1000Plus" yaml:"tier1000Plus"`
	ReferenceTransitDays int          `json:"referenceTransitDays" yaml:"referenceTransitDays"`
	ClaimTransitDays     int          `json:"claimTransitDays" yaml:"claimTransitDays"`
	DeliveryMode         string       `json:"deliveryMode" yaml:"deliveryMode"`
}

// SeaRateTable maps a warehouse code (e.g. FC11_ONT5) to its rate card.
type SeaRateTable map[string]SeaRateCard

// FlatRates is the per-kg fallback rate for channels priced without tiers.
type FlatRates map[Channel]float64

// RateTables bundles every rate source the resolver consults.
type RateTables struct {
	FlatRatePerKg FlatRates           `json:"flatRatePerKg" yaml:"flatRatePerKg"`
	AirExpress    AirExpressRateTable `json:"airExpress" yaml:"airExpress"`
	ExpressSea    SeaRateTable        `json:"expressSea" yaml:"expressSea"`
	StandardSea   SeaRateTable        `json:"standardSea" yaml:"standardSea"`
	EconomySea    SeaRateTable        `json:"economySea" yaml:"economySea"`
}

// Request is a single first-leg pricing query.
type Request struct {
	Channel                Channel      `json:"channel"`
	ChargeableWeightKg     float64      `json:"chargeableWeightKg"`
	OriginRegion           OriginRegion `json:"originRegion"`
	DestinationWarehouseID string       `json:"destinationWarehouseId"`
}

// Result is the priced first leg. An empty Zone or Tier means none applies.
type Result struct {
	FirstLegCost     float64          `json:"firstLegCost"`
	RatePerKg        float64          `json:"ratePerKg"`
	BillableWeightKg float64          `json:"billableWeightKg"`
	Zone             warehouse.Region `json:"zone,omitempty"`
	Tier             Tier             `json:"tier,omitempty"`
	Details          string           `json:"details"`
}

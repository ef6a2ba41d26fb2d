package freight

import "slices"

// ShippingMode is the transport mode of a channel.
type ShippingMode string

const (
	ModeSea ShippingMode = "sea"
	ModeAir ShippingMode = "air"
)

// ChannelInfo describes a channel for display.
type ChannelInfo struct {
	Channel Channel      `json:"value"`
	Label   string       `json:"label"`
	Mode    ShippingMode `json:"shippingType"`
}

var channelInfos = []ChannelInfo{
	{Channel: ChannelExpressSea, Label: "FBT-US Express Sea Truck", Mode: ModeSea},
	{Channel: ChannelStandardSea, Label: "FBT-US Standard Sea Truck (consolidated, chassis delivery)", Mode: ModeSea},
	{Channel: ChannelEconomySea, Label: "FBT-US Economy Sea Truck (OA vessel)", Mode: ModeSea},
	{Channel: ChannelAirExpress, Label: "FBT Air Express (time-definite)", Mode: ModeAir},
}

// Channels lists the supported channels in display order.
func Channels() []ChannelInfo {
	return slices.Clone(channelInfos)
}

// Valid reports whether c is a supported channel.
func (c Channel) Valid() bool {
	return slices.ContainsFunc(channelInfos, func(info ChannelInfo) bool { return info.Channel == c })
}

var tierLabels = map[Tier]string{
	TierAir12To20:   "12-20KG",
	TierAir21To100:  "21-100KG",
	TierAir101Plus:  "101KG+",
	TierSea12Plus:   "12KG+",
	TierSea51Plus:   "51KG+",
	TierSea100Plus:  "100KG+",
	TierSea500Plus:  "500KG+",
	TierSea1000Plus: "1000KG+",
}

// TierLabel returns the weight bracket for display, or "" for an empty tier.
func TierLabel(t Tier) string {
	return tierLabels[t]
}

var origins = []OriginRegion{OriginEastChina, OriginSouthChina, OriginFujian}

// OriginRegions lists the supported origins in display order.
func OriginRegions() []OriginRegion {
	return slices.Clone(origins)
}

var originLabels = map[OriginRegion]string{
	OriginEastChina:  "East China",
	OriginSouthChina: "South China",
	OriginFujian:     "Fujian",
}

// Label returns a display name for the origin.
func (o OriginRegion) Label() string {
	if label, ok := originLabels[o]; ok {
		return label
	}
	return string(o)
}

// Valid reports whether o is a known origin.
func (o OriginRegion) Valid() bool {
	_, ok := originLabels[o]
	return ok
}

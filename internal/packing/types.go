package packing

import "math"

// Unlimited asks Enumerate for every unique layout.
const Unlimited = math.MaxInt

// MaxQuantity bounds the units Enumerate lays out and the physical layers a
// label may expand to. Mixed-layer enumeration grows faster than linearly in
// quantity.
const MaxQuantity = 10000

// Dimensions describes a single unit. All values share one length unit.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// BoxDims describes an outer carton.
type BoxDims struct {
	L float64 `json:"l"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Layout is one candidate carton arrangement.
// Score is the population standard deviation of the box sides, so lower values
// are closer to a cube. Ratio is max side over min side with two decimals.
type Layout struct {
	Label  string  `json:"layout"`
	Dims   BoxDims `json:"dims"`
	Volume float64 `json:"volume"`
	Score  float64 `json:"score"`
	Ratio  string  `json:"ratio"`
}

// Segment is one layer group of a layout label: NX by NY units per layer,
// NZ identical layers.
type Segment struct {
	NX int `json:"nx"`
	NY int `json:"ny"`
	NZ int `json:"nz"`
}

// Axis names a box side in the footprint plane.
type Axis string

const (
	AxisLength Axis = "L"
	AxisWidth  Axis = "W"
)

// ResolvedSegment is a Segment with the geometry recovered from the box and unit.
type ResolvedSegment struct {
	Segment
	CountAlongLength  int     `json:"countAlongLength"`
	CountAlongWidth   int     `json:"countAlongWidth"`
	NXAxis            Axis    `json:"nxAxis"`
	NYAxis            Axis    `json:"nyAxis"`
	SingleLayerHeight float64 `json:"singleLayerHeight"`
	SegmentHeight     float64 `json:"segmentHeight"`
}

// ResolvedLayer is a single physical layer of a resolved layout.
type ResolvedLayer struct {
	Segment
	CountAlongLength int     `json:"countAlongLength"`
	CountAlongWidth  int     `json:"countAlongWidth"`
	NXAxis           Axis    `json:"nxAxis"`
	NYAxis           Axis    `json:"nyAxis"`
	LayerHeight      float64 `json:"layerHeight"`
}

// Valid reports whether every side is a positive finite number.
func (d Dimensions) Valid() bool {
	return positiveFinite(d.Length) && positiveFinite(d.Width) && positiveFinite(d.Height)
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

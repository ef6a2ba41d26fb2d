package packing

import (
	"math"

	"github.com/samber/lo"
)

type axisCandidate struct {
	countAlongLength int
	countAlongWidth  int
	nxAxis           Axis
	nyAxis           Axis
}

type direction struct {
	axisCandidate
	layerHeight float64
}

// ResolveLayout parses label and resolves its segments against the box and unit.
func ResolveLayout(label string, box BoxDims, unit Dimensions) []ResolvedSegment {
	return ResolveSegments(ParseSegments(label), box, unit)
}

// ResolveSegments infers, for each segment, which box side its NX and NY counts
// run along and the height of one of its layers. Heights are then rescaled so
// the segments stack exactly to box.H.
func ResolveSegments(segments []Segment, box BoxDims, unit Dimensions) []ResolvedSegment {
	if len(segments) == 0 {
		return []ResolvedSegment{}
	}

	resolved := make([]ResolvedSegment, 0, len(segments))
	for _, segment := range segments {
		dir := resolveDirection(segment, box, unit)
		nz := max(1, segment.NZ)
		height := math.Max(0, dir.layerHeight)

		resolved = append(resolved, ResolvedSegment{
			Segment:           Segment{NX: segment.NX, NY: segment.NY, NZ: nz},
			CountAlongLength:  dir.countAlongLength,
			CountAlongWidth:   dir.countAlongWidth,
			NXAxis:            dir.nxAxis,
			NYAxis:            dir.nyAxis,
			SingleLayerHeight: height,
			SegmentHeight:     height * float64(nz),
		})
	}

	rawTotal := lo.SumBy(resolved, func(s ResolvedSegment) float64 { return s.SegmentHeight })
	layerCount := lo.SumBy(resolved, func(s ResolvedSegment) int { return s.NZ })

	scale := 0.0
	if rawTotal > 0 {
		scale = box.H / rawTotal
	}
	fallback := 0.0
	if layerCount > 0 {
		fallback = box.H / float64(layerCount)
	}

	for i := range resolved {
		height := fallback
		if scale > 0 {
			height = resolved[i].SingleLayerHeight * scale
		}
		resolved[i].SingleLayerHeight = height
		resolved[i].SegmentHeight = height * float64(resolved[i].NZ)
	}

	return resolved
}

// ExpandResolvedLayers flattens resolved segments into individual layers, bottom
// first. More than MaxQuantity layers expand to nothing.
func ExpandResolvedLayers(segments []ResolvedSegment) []ResolvedLayer {
	total := LayerCount(lo.Map(segments, func(s ResolvedSegment, _ int) Segment { return s.Segment }))
	if total > MaxQuantity {
		return []ResolvedLayer{}
	}

	layers := make([]ResolvedLayer, 0, total)
	for _, segment := range segments {
		for i := 0; i < segment.NZ; i++ {
			layers = append(layers, ResolvedLayer{
				Segment:          Segment{NX: segment.NX, NY: segment.NY, NZ: 1},
				CountAlongLength: segment.CountAlongLength,
				CountAlongWidth:  segment.CountAlongWidth,
				NXAxis:           segment.NXAxis,
				NYAxis:           segment.NYAxis,
				LayerHeight:      segment.SingleLayerHeight,
			})
		}
	}
	return layers
}

// resolveDirection tries both axis assignments against every unit orientation
// and keeps the pair with the smallest summed relative footprint error.
func resolveDirection(segment Segment, box BoxDims, unit Dimensions) direction {
	nx := max(1, segment.NX)
	ny := max(1, segment.NY)
	candidates := [2]axisCandidate{
		{countAlongLength: nx, countAlongWidth: ny, nxAxis: AxisLength, nyAxis: AxisWidth},
		{countAlongLength: ny, countAlongWidth: nx, nxAxis: AxisWidth, nyAxis: AxisLength},
	}
	orientations := UniqueOrientations(unit)

	best := direction{axisCandidate: candidates[0], layerHeight: box.H}
	bestScore := math.NaN()
	for _, candidate := range candidates {
		unitAlongLength := box.L / float64(candidate.countAlongLength)
		unitAlongWidth := box.W / float64(candidate.countAlongWidth)

		for _, o := range orientations {
			score := relativeError(unitAlongLength, o.Length) + relativeError(unitAlongWidth, o.Width)
			if math.IsNaN(bestScore) || score < bestScore {
				best = direction{axisCandidate: candidate, layerHeight: o.Height}
				bestScore = score
			}
		}
	}

	return best
}

// relativeError is |actual-expected|/expected, or +Inf when either side is not
// a positive finite number.
func relativeError(actual, expected float64) float64 {
	if !positiveFinite(actual) || !positiveFinite(expected) {
		return math.Inf(1)
	}
	return math.Abs(actual-expected) / expected
}

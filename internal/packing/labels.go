package packing

import (
	"regexp"
	"strconv"
	"strings"
)

var segmentPattern = regexp.MustCompile(`^\s*(\d+)\s*[×xX*]\s*(\d+)\s*[×xX*]\s*(\d+)\s*$`)

// ParseSegments turns a layout label such as "2 × 3 × 1" or
// "2 × 2 × 1 + 2 × 3 × 1" into its segments. Malformed parts are skipped.
func ParseSegments(label string) []Segment {
	if strings.TrimSpace(label) == "" {
		return []Segment{}
	}

	segments := make([]Segment, 0, 2)
	for _, raw := range strings.Split(label, "+") {
		match := segmentPattern.FindStringSubmatch(raw)
		if match == nil {
			continue
		}

		nx, errX := strconv.Atoi(match[1])
		ny, errY := strconv.Atoi(match[2])
		nz, errZ := strconv.Atoi(match[3])
		if errX != nil || errY != nil || errZ != nil {
			continue
		}

		segments = append(segments, Segment{NX: nx, NY: ny, NZ: nz})
	}

	return segments
}

// LayerCount returns the number of physical layers in segments. A segment
// counts at least one layer. The sum saturates just above MaxQuantity so that
// oversized labels compare as too large instead of overflowing.
func LayerCount(segments []Segment) int {
	total := 0
	for _, segment := range segments {
		total += min(max(1, segment.NZ), MaxQuantity+1)
		if total > MaxQuantity {
			return MaxQuantity + 1
		}
	}
	return total
}

// ExpandLayers returns one entry per physical layer of the label, bottom first.
// Labels with more than MaxQuantity layers expand to nothing.
func ExpandLayers(label string) []Segment {
	segments := ParseSegments(label)
	total := LayerCount(segments)
	if total > MaxQuantity {
		return []Segment{}
	}

	layers := make([]Segment, 0, total)
	for _, segment := range segments {
		for i := 0; i < max(1, segment.NZ); i++ {
			layers = append(layers, Segment{NX: segment.NX, NY: segment.NY, NZ: 1})
		}
	}
	return layers
}

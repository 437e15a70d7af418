package atlas

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// minCoordPrecision floors the parsed precision at roughly 55 meters so a
// coordinate typed with many decimals still gets a usable viewport.
const minCoordPrecision = 0.0001

// ParseLatLon attempts to read the text as a latitude/longitude pair:
// two decimal numbers separated by a comma, semicolon or whitespace, with
// latitude in [-90, 90] and longitude in [-180, 180].
//
// precision estimates the coordinate's angular uncertainty from the number
// of decimal places supplied, floored at minCoordPrecision. Unparseable
// text is not an error: ok is false and the coordinate phase simply
// contributes no result.
func ParseLatLon(s string) (lat, lon, precision float64, ok bool) {
	fields := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})
	if len(fields) != 2 {
		return 0, 0, 0, false
	}
	lat, latPrec, ok := parseCoordinate(fields[0], 90)
	if !ok {
		return 0, 0, 0, false
	}
	lon, lonPrec, ok := parseCoordinate(fields[1], 180)
	if !ok {
		return 0, 0, 0, false
	}
	precision = 5.0 * math.Max(minCoordPrecision, math.Min(latPrec, lonPrec))
	return lat, lon, precision, true
}

// parseCoordinate parses one decimal coordinate bounded by ±limit and
// estimates its precision as one unit of the last supplied decimal place.
func parseCoordinate(s string, limit float64) (v, precision float64, ok bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < -limit || v > limit {
		return 0, 0, false
	}
	precision = 1.0
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		precision = math.Pow(10, -float64(len(s)-dot-1))
	}
	return v, precision, true
}

// latLonCost derives a bounded result cost from the precision estimate:
// coarser coordinates rank worse. The cost never exceeds the keyword
// ceiling, so a parsed coordinate always survives ranking arithmetic.
func latLonCost(precision float64) uint32 {
	c := precision * 1000
	if ceiling := float64(maxKeywordScore()); c > ceiling {
		c = ceiling
	}
	return uint32(c)
}

// latLonResult synthesizes the coordinate-phase intermediate result.
func latLonResult(lat, lon, precision float64) intermediateResult {
	return intermediateResult{result: Result{
		Kind:   ResultLatLon,
		Name:   fmt.Sprintf("%.5f, %.5f", lat, lon),
		Center: Point{Lat: lat, Lon: lon},
		Cost:   latLonCost(precision),
	}}
}

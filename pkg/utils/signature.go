package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is one sample of a signature stroke
type Point struct {
	X float64
	Y float64
}

// EncodeSignature flattens strokes into "x:y,x:y|x:y,..." with one decimal place.
// Empty strokes are dropped; no strokes encode to "".
func EncodeSignature(strokes [][]Point) string {
	parts := make([]string, 0, len(strokes))
	for _, stroke := range strokes {
		if len(stroke) == 0 {
			continue
		}
		pts := make([]string, len(stroke))
		for i, p := range stroke {
			pts[i] = strconv.FormatFloat(p.X, 'f', 1, 64) + ":" + strconv.FormatFloat(p.Y, 'f', 1, 64)
		}
		parts = append(parts, strings.Join(pts, ","))
	}
	return strings.Join(parts, "|")
}

// DecodeSignature parses the output of EncodeSignature
func DecodeSignature(s string) ([][]Point, error) {
	if s == "" {
		return nil, nil
	}

	var strokes [][]Point
	for _, part := range strings.Split(s, "|") {
		var stroke []Point
		for _, pt := range strings.Split(part, ",") {
			xs, ys, ok := strings.Cut(pt, ":")
			if !ok {
				return nil, fmt.Errorf("signature: malformed point %q", pt)
			}
			x, err := strconv.ParseFloat(xs, 64)
			if err != nil {
				return nil, fmt.Errorf("signature: malformed x in %q: %w", pt, err)
			}
			y, err := strconv.ParseFloat(ys, 64)
			if err != nil {
				return nil, fmt.Errorf("signature: malformed y in %q: %w", pt, err)
			}
			stroke = append(stroke, Point{X: x, Y: y})
		}
		strokes = append(strokes, stroke)
	}
	return strokes, nil
}

package svgtree

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// percentageReference selects the viewport dimension
// used to resolve percentages.
type percentageReference uint8

const (
	widthPercentage percentageReference = iota
	heightPercentage
	diagPercentage
)

// viewport is the size used to resolve percentage lengths.
type viewport struct{ w, h float64 }

func (vp viewport) reference(asPerc percentageReference) float64 {
	switch asPerc {
	case widthPercentage:
		return vp.w
	case heightPercentage:
		return vp.h
	default:
		return math.Sqrt(vp.w*vp.w+vp.h*vp.h) / math.Sqrt2
	}
}

// absolute units, expressed in pixels (user units)
var unitFactors = map[string]float64{
	"px": 1,
	"pt": 4. / 3,
	"pc": 16,
	"mm": 3.7795,
	"cm": 37.795,
	"in": 96,
}

// parseLength reads a length with an optional unit.
// Percentages are resolved against the viewport dimension
// selected by asPerc, and em against fontSize.
func parseLength(v string, vp viewport, asPerc percentageReference, fontSize float64) (float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, fmt.Errorf("empty length")
	}
	if strings.HasSuffix(v, "%") {
		f, err := strconv.ParseFloat(strings.TrimSpace(v[:len(v)-1]), 64)
		if err != nil {
			return 0, err
		}
		return f / 100 * vp.reference(asPerc), nil
	}
	factor := 1.
	if strings.HasSuffix(v, "em") && !strings.HasSuffix(v, "rem") {
		factor = fontSize
		v = v[:len(v)-2]
	} else if strings.HasSuffix(v, "ex") {
		factor = fontSize / 2
		v = v[:len(v)-2]
	} else if len(v) > 2 {
		if f, ok := unitFactors[v[len(v)-2:]]; ok {
			factor = f
			v = v[:len(v)-2]
		}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid length %q", v)
	}
	return f * factor, nil
}

// readFraction reads a number or a percentage, returning
// a fraction, such as 0.5 for "50%".
func readFraction(v string) (float64, error) {
	v = strings.TrimSpace(v)
	d := 1.0
	if strings.HasSuffix(v, "%") {
		d = 100
		v = strings.TrimSuffix(v, "%")
	}
	f, err := strconv.ParseFloat(v, 64)
	return f / d, err
}

// parseNumbers reads a list of numbers separated by spaces or commas.
// As in path data, separators may be omitted when the next
// number starts with a sign or a dot, as in "10-5".
// On error, the numbers read so far are returned.
func parseNumbers(v string) ([]float64, error) {
	c := pathCursor{data: []byte(v)}
	var out []float64
	for {
		c.skipSeparators()
		if c.pos >= len(c.data) {
			return out, nil
		}
		f, err := c.readNumber()
		if err != nil {
			return out, err
		}
		out = append(out, f)
	}
}

func readTransformAttr(m1 Matrix2D, k string, points []float64) (Matrix2D, error) {
	ln := len(points)
	switch k {
	case "rotate":
		if ln == 1 {
			m1 = m1.Rotate(points[0] * math.Pi / 180)
		} else if ln == 3 {
			m1 = m1.Translate(points[1], points[2]).
				Rotate(points[0]*math.Pi/180).
				Translate(-points[1], -points[2])
		} else {
			return m1, errParamMismatch
		}
	case "translate":
		if ln == 1 {
			m1 = m1.Translate(points[0], 0)
		} else if ln == 2 {
			m1 = m1.Translate(points[0], points[1])
		} else {
			return m1, errParamMismatch
		}
	case "skewx":
		if ln == 1 {
			m1 = m1.SkewX(points[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch
		}
	case "skewy":
		if ln == 1 {
			m1 = m1.SkewY(points[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch
		}
	case "scale":
		if ln == 1 {
			m1 = m1.Scale(points[0], points[0])
		} else if ln == 2 {
			m1 = m1.Scale(points[0], points[1])
		} else {
			return m1, errParamMismatch
		}
	case "matrix":
		if ln == 6 {
			m1 = m1.Mult(Matrix2D{
				A: points[0],
				B: points[1],
				C: points[2],
				D: points[3],
				E: points[4],
				F: points[5]})
		} else {
			return m1, errParamMismatch
		}
	default:
		return m1, errParamMismatch
	}
	return m1, nil
}

// parseTransform reads a transform attribute, such as
// "translate(10 20) rotate(45)". An empty string is the identity.
func parseTransform(v string) (Matrix2D, error) {
	m1 := Identity
	for _, t := range strings.Split(v, ")") {
		t = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(t), ","))
		if len(t) == 0 {
			continue
		}
		d := strings.Split(t, "(")
		if len(d) != 2 || len(d[1]) < 1 {
			return m1, errParamMismatch // badly formed transformation
		}
		points, err := parseNumbers(d[1])
		if err != nil {
			return m1, err
		}
		m1, err = readTransformAttr(m1, strings.ToLower(strings.TrimSpace(d[0])), points)
		if err != nil {
			return m1, err
		}
	}
	return m1, nil
}

// parseViewBox reads the viewBox attribute.
func parseViewBox(v string) (Rect, error) {
	points, err := parseNumbers(v)
	if err != nil {
		return Rect{}, err
	}
	if len(points) != 4 {
		return Rect{}, errParamMismatch
	}
	if points[2] < 0 || points[3] < 0 {
		return Rect{}, fmt.Errorf("negative viewBox dimensions: %s", v)
	}
	return Rect{points[0], points[1], points[2], points[3]}, nil
}

// viewBoxTransform returns the transform mapping vb onto a
// w x h viewport, according to the preserveAspectRatio attribute.
func viewBoxTransform(vb Rect, preserveAspectRatio string, w, h float64) Matrix2D {
	if vb.IsEmpty() || w <= 0 || h <= 0 {
		return Identity
	}
	sx, sy := w/vb.W, h/vb.H
	fields := strings.Fields(preserveAspectRatio)
	align, slice := "xMidYMid", false
	if len(fields) > 0 {
		align = fields[0]
	}
	if len(fields) > 1 {
		slice = fields[1] == "slice"
	}
	if align == "none" {
		return Identity.Scale(sx, sy).Translate(-vb.X, -vb.Y)
	}
	s := math.Min(sx, sy)
	if slice {
		s = math.Max(sx, sy)
	}
	tx, ty := -vb.X*s, -vb.Y*s
	freeW, freeH := w-vb.W*s, h-vb.H*s
	switch {
	case strings.Contains(align, "xMid"):
		tx += freeW / 2
	case strings.Contains(align, "xMax"):
		tx += freeW
	}
	switch {
	case strings.Contains(align, "YMid"):
		ty += freeH / 2
	case strings.Contains(align, "YMax"):
		ty += freeH
	}
	return Identity.Translate(tx, ty).Scale(s, s)
}

package svgtree

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/image/colornames"
)

// parseColorHex reads the SVG color string e.g. #FBD9BD,
// also accepting the short (#rgb, #rgba) and alpha (#rrggbbaa) forms.
func parseColorHex(colorStr string) (c Color, alpha float64, err error) {
	s := strings.TrimPrefix(colorStr, "#")
	switch len(s) {
	case 3, 4:
		// SVG specs say duplicate characters in case of 3 digit hex number
		long := make([]byte, 0, 2*len(s))
		for i := range s {
			long = append(long, s[i], s[i])
		}
		s = string(long)
	case 6, 8:
	default:
		return c, 0, fmt.Errorf("invalid hex color %q", colorStr)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return c, 0, fmt.Errorf("invalid hex color %q", colorStr)
	}
	alpha = 1
	if len(s) == 8 {
		alpha = float64(v&0xff) / 0xff
		v >>= 8
	}
	return Color{Red: uint8(v >> 16), Green: uint8(v >> 8), Blue: uint8(v)}, alpha, nil
}

// parseColorValue reads one channel of rgb(),
// either as a number or a percentage
func parseColorValue(v string) (uint8, error) {
	v = strings.TrimSpace(v)
	var (
		f   float64
		err error
	)
	if strings.HasSuffix(v, "%") {
		f, err = strconv.ParseFloat(strings.TrimSpace(v[:len(v)-1]), 64)
		f = f * 255 / 100
	} else {
		f, err = strconv.ParseFloat(v, 64)
	}
	if err != nil {
		return 0, err
	}
	if f < 0 {
		f = 0
	} else if f > 255 {
		f = 255
	}
	return uint8(f + 0.5), nil
}

// parseAlphaValue reads the alpha channel of rgba(),
// either as a number or a percentage
func parseAlphaValue(v string) (float64, error) {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "%") {
		f, err := strconv.ParseFloat(strings.TrimSpace(v[:len(v)-1]), 64)
		return clamp01(f / 100), err
	}
	f, err := strconv.ParseFloat(v, 64)
	return clamp01(f), err
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	} else if f > 1 {
		return 1
	}
	return f
}

// parseSVGColor parses an SVG color string in all forms
// including all SVG1.1 names, obtained from the colornames package.
// The special values 'none' and 'currentColor' must be handled
// by the caller.
func parseSVGColor(colorStr string) (c Color, alpha float64, err error) {
	v := strings.ToLower(strings.TrimSpace(colorStr))
	if v == "" {
		return c, 0, fmt.Errorf("empty color")
	}
	if cn, ok := colornames.Map[v]; ok {
		return Color{Red: cn.R, Green: cn.G, Blue: cn.B}, 1, nil
	}
	if v == "transparent" {
		return c, 0, nil
	}
	if v[0] == '#' {
		return parseColorHex(v)
	}
	var args string
	if strings.HasPrefix(v, "rgba(") {
		args = strings.TrimPrefix(v, "rgba(")
	} else if strings.HasPrefix(v, "rgb(") {
		args = strings.TrimPrefix(v, "rgb(")
	} else {
		return c, 0, fmt.Errorf("invalid color %q", colorStr)
	}
	args = strings.TrimSuffix(args, ")")
	vals := splitOnCommaOrSpace(strings.ReplaceAll(args, "/", " "))
	if len(vals) != 3 && len(vals) != 4 {
		return c, 0, errParamMismatch
	}
	var cvals [3]uint8
	for i := range cvals {
		cvals[i], err = parseColorValue(vals[i])
		if err != nil {
			return c, 0, err
		}
	}
	alpha = 1
	if len(vals) == 4 {
		alpha, err = parseAlphaValue(vals[3])
		if err != nil {
			return c, 0, err
		}
	}
	return Color{Red: cvals[0], Green: cvals[1], Blue: cvals[2]}, alpha, nil
}

// splitOnCommaOrSpace returns a list of strings after splitting the input on comma and space delimiters
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})
}

// ParseColor parses a CSS color, as accepted in SVG presentation
// attributes, and returns it with its alpha channel.
func ParseColor(s string) (color.NRGBA, error) {
	c, alpha, err := parseSVGColor(s)
	if err != nil {
		return color.NRGBA{}, err
	}
	return c.NRGBA(uint8(clamp01(alpha)*0xff + 0.5)), nil
}

// Package colors picks readable foreground colors for person badges.
package colors

import (
	"strconv"
	"strings"
)

const luminanceThreshold = 0.6

type rgb struct {
	r, g, b int
}

// parseHex accepts 3- or 6-digit hex colors with an optional leading '#'.
// Malformed input is treated as black rather than reported as an error.
func parseHex(hex string) rgb {
	sanitized := strings.TrimPrefix(hex, "#")

	value, err := strconv.ParseInt(sanitized, 16, 64)
	if err != nil {
		return rgb{}
	}

	if len(sanitized) == 3 {
		return rgb{
			r: int((value>>8)&0xf) * 17,
			g: int((value>>4)&0xf) * 17,
			b: int(value&0xf) * 17,
		}
	}

	return rgb{
		r: int((value >> 16) & 0xff),
		g: int((value >> 8) & 0xff),
		b: int(value & 0xff),
	}
}

// RGB returns the color's channel values in [0,255].
func RGB(hex string) (r, g, b int) {
	c := parseHex(hex)
	return c.r, c.g, c.b
}

// Luminance returns the perceptual luminance of a hex color in [0,1].
func Luminance(hex string) float64 {
	c := parseHex(hex)
	return (0.299*float64(c.r) + 0.587*float64(c.g) + 0.114*float64(c.b)) / 255
}

// ReadableTextColor returns "black" for light backgrounds and "white"
// for dark ones.
func ReadableTextColor(bg string) string {
	if Luminance(bg) > luminanceThreshold {
		return "black"
	}
	return "white"
}

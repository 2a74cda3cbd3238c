package engine

import (
	"image/color"
	"strings"
)

// Palette matching raylib's named colors so scenes look the same in the app.
var (
	White     = color.RGBA{255, 255, 255, 255}
	Black     = color.RGBA{0, 0, 0, 255}
	LightGray = color.RGBA{200, 200, 200, 255}
	Gray      = color.RGBA{130, 130, 130, 255}
	DarkGray  = color.RGBA{80, 80, 80, 255}
	Red       = color.RGBA{230, 41, 55, 255}
	Maroon    = color.RGBA{190, 33, 55, 255}
	Orange    = color.RGBA{255, 161, 0, 255}
	Yellow    = color.RGBA{253, 249, 0, 255}
	Gold      = color.RGBA{255, 203, 0, 255}
	Green     = color.RGBA{0, 228, 48, 255}
	Lime      = color.RGBA{0, 158, 47, 255}
	DarkGreen = color.RGBA{0, 117, 44, 255}
	SkyBlue   = color.RGBA{102, 191, 255, 255}
	Blue      = color.RGBA{0, 121, 241, 255}
	DarkBlue  = color.RGBA{0, 82, 172, 255}
	Purple    = color.RGBA{200, 122, 255, 255}
	Pink      = color.RGBA{255, 109, 194, 255}
	Beige     = color.RGBA{211, 176, 131, 255}
	Brown     = color.RGBA{127, 106, 79, 255}
)

var colorByName = map[string]color.RGBA{
	"white":     White,
	"black":     Black,
	"lightgray": LightGray,
	"gray":      Gray,
	"darkgray":  DarkGray,
	"red":       Red,
	"maroon":    Maroon,
	"orange":    Orange,
	"yellow":    Yellow,
	"gold":      Gold,
	"green":     Green,
	"lime":      Lime,
	"darkgreen": DarkGreen,
	"skyblue":   SkyBlue,
	"blue":      Blue,
	"darkblue":  DarkBlue,
	"purple":    Purple,
	"pink":      Pink,
	"beige":     Beige,
	"brown":     Brown,
}

// LookupColor resolves a color name (case-insensitive) or a #rrggbb / #rrggbbaa hex string.
func LookupColor(s string) (color.RGBA, bool) {
	s = strings.TrimSpace(s)
	if c, ok := colorByName[strings.ToLower(s)]; ok {
		return c, true
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return color.RGBA{}, false
	}
	var b [4]uint8
	b[3] = 255
	for i := 0; i < len(hex)/2; i++ {
		hi, ok1 := hexVal(hex[2*i])
		lo, ok2 := hexVal(hex[2*i+1])
		if !ok1 || !ok2 {
			return color.RGBA{}, false
		}
		b[i] = hi<<4 | lo
	}
	return color.RGBA{R: b[0], G: b[1], B: b[2], A: b[3]}, true
}

func hexVal(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// ColorHex formats c as #rrggbb, or #rrggbbaa when it is not opaque.
func ColorHex(c color.RGBA) string {
	const digits = "0123456789abcdef"
	parts := []uint8{c.R, c.G, c.B}
	if c.A != 255 {
		parts = append(parts, c.A)
	}
	out := make([]byte, 1, 1+2*len(parts))
	out[0] = '#'
	for _, p := range parts {
		out = append(out, digits[p>>4], digits[p&0xF])
	}
	return string(out)
}

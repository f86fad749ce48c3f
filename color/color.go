// Package color computes the link colour a rendered edge takes, following
// the two ColorSpec shapes a WSpec can declare: a categorical lookup keyed
// by an edge attribute, or a quantitative gradient over a numeric measure.
package color

import (
	"fmt"
	"math"
)

// Categorical resolves value through lookup, falling back to def when value
// is not a key of lookup.
func Categorical(value string, lookup map[string]string, def string) string {
	if c, ok := lookup[value]; ok {
		return c
	}
	return def
}

// Quantitative maps value, clamped to domain, onto a position along palette
// (an ordered list of "#RRGGBB" control-point colours) and linearly
// interpolates between the two bracketing control points. Channel values are
// floor-truncated rather than rounded, so the same (value, domain, palette)
// always produces the same colour regardless of floating-point rounding mode.
func Quantitative(value float64, domain [2]float64, palette []string) (string, error) {
	if len(palette) == 0 {
		return "", fmt.Errorf("color: quantitative palette must not be empty")
	}
	if len(palette) == 1 {
		return palette[0], nil
	}

	lo, hi := domain[0], domain[1]
	t := 0.5
	if hi > lo {
		t = (value - lo) / (hi - lo)
		t = math.Max(0, math.Min(1, t))
	}

	segments := len(palette) - 1
	pos := t * float64(segments)
	seg := int(math.Floor(pos))
	if seg >= segments {
		seg = segments - 1
	}
	localT := pos - float64(seg)

	from, err := parseHex(palette[seg])
	if err != nil {
		return "", err
	}
	to, err := parseHex(palette[seg+1])
	if err != nil {
		return "", err
	}

	return toHex(rgb{
		r: lerpFloor(from.r, to.r, localT),
		g: lerpFloor(from.g, to.g, localT),
		b: lerpFloor(from.b, to.b, localT),
	}), nil
}

type rgb struct{ r, g, b int }

func lerpFloor(a, b int, t float64) int {
	return int(math.Floor(float64(a) + t*float64(b-a)))
}

func parseHex(s string) (rgb, error) {
	if len(s) != 7 || s[0] != '#' {
		return rgb{}, fmt.Errorf("color: %q is not a #RRGGBB colour", s)
	}
	var r, g, b int
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return rgb{}, fmt.Errorf("color: %q is not a #RRGGBB colour: %w", s, err)
	}
	return rgb{r: r, g: g, b: b}, nil
}

func toHex(c rgb) string {
	return fmt.Sprintf("#%02x%02x%02x", clampByte(c.r), clampByte(c.g), clampByte(c.b))
}

func clampByte(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

package executor

import (
	"fmt"
	"strconv"

	"github.com/viant/weaver/color"
	"github.com/viant/weaver/wspec"
)

func edgeColor(spec wspec.ColorSpec, edge *wspec.EdgeSpec, data map[string]float64) (string, error) {
	switch spec.Kind {
	case wspec.ColorCategorical:
		return color.Categorical(categoricalAttrValue(spec.Attr, edge, data), spec.Lookup, spec.Default), nil
	case wspec.ColorQuantitative:
		return quantitativeColor(spec, data)
	default:
		return "", fmt.Errorf("executor: unknown color spec kind %q", spec.Kind)
	}
}

func categoricalAttrValue(attr string, edge *wspec.EdgeSpec, data map[string]float64) string {
	switch attr {
	case "type":
		return edge.Type
	case "time":
		return edge.Time
	case "source":
		return derefOr(edge.Source, "")
	case "target":
		return derefOr(edge.Target, "")
	default:
		return strconv.FormatFloat(data[attr], 'g', -1, 64)
	}
}

// quantitativeColor reads the measured value for spec.Attr, optionally
// dividing by an intensity column (skipped when the divisor is zero, per the
// degenerate-numerics rule), then maps it through the palette.
func quantitativeColor(spec wspec.ColorSpec, data map[string]float64) (string, error) {
	if len(spec.Domain) != 2 {
		return "", fmt.Errorf("executor: quantitative color domain needs exactly 2 bounds, got %d", len(spec.Domain))
	}
	value := data[spec.Attr]
	if spec.Intensity != nil {
		if divisor := data[*spec.Intensity]; divisor != 0 {
			value = value / divisor
		}
	}
	return color.Quantitative(value, [2]float64{spec.Domain[0], spec.Domain[1]}, spec.Palette)
}

func derefOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}

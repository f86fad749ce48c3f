package compiler

import (
	"context"

	"github.com/viant/weaver/weaverio"
	"github.com/viant/weaver/wspec"
)

// Option configures Compile, following the same functional-options shape
// used throughout this module's packages.
type Option func(*config)

type config struct {
	measures  []wspec.MeasureSpec
	linkWidth string
	linkColor wspec.ColorSpec

	writer    weaverio.Writer
	writerCtx context.Context
}

func defaultConfig() *config {
	return &config{
		measures:  []wspec.MeasureSpec{{Column: "value", Aggregation: wspec.Sum}},
		linkWidth: "value",
		linkColor: wspec.ColorSpec{Kind: wspec.ColorCategorical, Attr: "type"},
	}
}

// WithMeasure replaces the default single-measure aggregation with one or
// more named column reductions, applied in the order given.
func WithMeasure(measures ...wspec.MeasureSpec) Option {
	return func(c *config) { c.measures = measures }
}

// WithDisplay sets the link-width column and link-colour rule. The default
// is link width from "value" and categorical colour on the edge's "type".
func WithDisplay(linkWidthColumn string, color wspec.ColorSpec) Option {
	return func(c *config) {
		c.linkWidth = linkWidthColumn
		c.linkColor = color
	}
}

// WithDocumentWriter persists a successful compile's WSpec through writer,
// mirroring an export-on-completion hook: compilation itself stays pure,
// only this post-hoc write is side-effecting, and it only ever runs after
// the WSpec is fully built.
func WithDocumentWriter(ctx context.Context, writer weaverio.Writer) Option {
	return func(c *config) {
		c.writerCtx = ctx
		c.writer = writer
	}
}

// Package weaverio loads and stores SDD and WSpec documents through the
// same abstract filesystem service the rest of this module uses, so a
// definition or a compiled specification can live on local disk or object
// storage interchangeably.
package weaverio

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/viant/weaver/sdd"
	"github.com/viant/weaver/wspec"
)

// Option configures LoadSDD, LoadWSpec, StoreWSpec and NewWriter.
type Option func(*config)

type config struct {
	fs afs.Service
}

func defaultConfig() *config {
	return &config{fs: afs.New()}
}

// WithService overrides the afs.Service used for all reads/writes.
func WithService(fs afs.Service) Option {
	return func(c *config) { c.fs = fs }
}

func unmarshalYAML(data []byte, def *sdd.Definition) error { return yaml.Unmarshal(data, def) }
func unmarshalJSON(data []byte, def *sdd.Definition) error { return json.Unmarshal(data, def) }

func isYAML(url string) bool {
	return strings.HasSuffix(url, ".yaml") || strings.HasSuffix(url, ".yml")
}

// LoadSDD reads and parses an SDD Definition document (YAML or JSON, guessed
// from the URL's extension), then validates it.
func LoadSDD(ctx context.Context, url string, opts ...Option) (*sdd.Definition, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}

	data, err := cfg.fs.DownloadWithURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("weaverio: load sdd %s: %w", url, err)
	}

	def := &sdd.Definition{}
	if isYAML(url) {
		err = unmarshalYAML(data, def)
	} else {
		err = unmarshalJSON(data, def)
	}
	if err != nil {
		return nil, fmt.Errorf("weaverio: parse sdd %s: %w", url, err)
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("weaverio: invalid sdd %s: %w", url, err)
	}
	return def, nil
}

// LoadWSpec reads and parses a compiled WSpec document.
func LoadWSpec(ctx context.Context, url string, opts ...Option) (*wspec.WSpec, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}

	data, err := cfg.fs.DownloadWithURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("weaverio: load wspec %s: %w", url, err)
	}

	if isYAML(url) {
		w, err := wspec.FromYAML(data)
		if err != nil {
			return nil, fmt.Errorf("weaverio: parse wspec %s: %w", url, err)
		}
		return w, nil
	}
	w, err := wspec.FromDocument(data)
	if err != nil {
		return nil, fmt.Errorf("weaverio: parse wspec %s: %w", url, err)
	}
	return w, nil
}

// Writer stores a compiled WSpec somewhere, on demand. It exists so
// compiler.WithDocumentWriter can accept a destination without importing
// this package's Option/config plumbing directly.
type Writer interface {
	Store(ctx context.Context, w *wspec.WSpec) error
}

type urlWriter struct {
	url  string
	opts []Option
}

// NewWriter returns a Writer that serializes to url via StoreWSpec.
func NewWriter(url string, opts ...Option) Writer {
	return &urlWriter{url: url, opts: opts}
}

func (w *urlWriter) Store(ctx context.Context, spec *wspec.WSpec) error {
	return StoreWSpec(ctx, w.url, spec, w.opts...)
}

// StoreWSpec serializes w (YAML or JSON, guessed from url) and writes it.
func StoreWSpec(ctx context.Context, url string, w *wspec.WSpec, opts ...Option) error {
	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}

	var data []byte
	var err error
	if isYAML(url) {
		data, err = w.YAML()
	} else {
		data, err = w.Document()
	}
	if err != nil {
		return fmt.Errorf("weaverio: encode wspec %s: %w", url, err)
	}

	if err := cfg.fs.Upload(ctx, url, os.FileMode(0644), strings.NewReader(string(data))); err != nil {
		return fmt.Errorf("weaverio: store wspec %s: %w", url, err)
	}
	return nil
}

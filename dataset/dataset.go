// Package dataset reads a flow dataset (the rows an executor routes) from
// CSV or newline-delimited JSON, via the same abstract filesystem service
// used elsewhere in this module so a dataset can live on local disk or
// object storage without the executor knowing the difference.
package dataset

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/viant/afs"
)

// Row is one flow record: raw dataset cell values keyed by column name.
// From CSV, Load produces string, float64 and bool values (a cell that parses
// as neither number nor bool stays a string); from NDJSON, values are whatever
// encoding/json decodes, including nil and nested slices or maps.
type Row map[string]interface{}

// Format names a supported dataset encoding.
type Format string

const (
	CSV    Format = "csv"
	NDJSON Format = "ndjson"
)

// Option configures Load.
type Option func(*config)

type config struct {
	format Format
	fs     afs.Service
}

func defaultConfig() *config {
	return &config{format: CSV, fs: afs.New()}
}

// WithFormat overrides format detection from the URL's extension.
func WithFormat(f Format) Option {
	return func(c *config) { c.format = f }
}

// WithService overrides the afs.Service used to open URL, e.g. with a mock
// or a pre-configured cloud credential in tests.
func WithService(fs afs.Service) Option {
	return func(c *config) { c.fs = fs }
}

// Load reads every row of the dataset at URL into memory. Flow datasets in
// this module's target deployments are small enough (one diagram's input)
// that a streaming Iterator is not worth the extra API surface; Load keeps
// parity with how this module's other document readers behave (see
// weaverio.LoadSDD/LoadWSpec).
func Load(ctx context.Context, url string, opts ...Option) ([]Row, error) {
	cfg := defaultConfig()
	if guessed, ok := formatFromURL(url); ok {
		cfg.format = guessed
	}
	for _, o := range opts {
		o(cfg)
	}

	data, err := cfg.fs.DownloadWithURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", url, err)
	}

	switch cfg.format {
	case NDJSON:
		return readNDJSON(bytes.NewReader(data))
	default:
		return readCSV(bytes.NewReader(data))
	}
}

func formatFromURL(u string) (Format, bool) {
	switch {
	case strings.HasSuffix(u, ".ndjson"), strings.HasSuffix(u, ".jsonl"):
		return NDJSON, true
	case strings.HasSuffix(u, ".csv"):
		return CSV, true
	}
	return "", false
}

func readCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("dataset: read csv header: %w", err)
	}

	var rows []Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: read csv row: %w", err)
		}
		row := make(Row, len(header))
		for i, col := range header {
			if i >= len(record) {
				continue
			}
			row[col] = inferScalar(record[i])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// inferScalar promotes a CSV cell to a float64 or bool when it unambiguously
// parses as one, so numeric measure columns compare as numbers, not strings.
func inferScalar(s string) interface{} {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

func readNDJSON(r io.Reader) ([]Row, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)

	var rows []Row
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		row := Row{}
		if err := json.Unmarshal([]byte(line), &row); err != nil {
			return nil, fmt.Errorf("dataset: parse ndjson row: %w", err)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dataset: scan ndjson: %w", err)
	}
	return rows, nil
}

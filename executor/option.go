package executor

// Option configures Execute.
type Option func(*config)

type config struct {
	expectedHash *uint64
}

func defaultConfig() *config {
	return &config{}
}

// WithHash asks Execute to compare w's content hash (see package wspechash)
// against expected before routing any rows. A mismatch is never fatal — it
// is surfaced as a logged drift warning, consistent with this module's
// observability-not-validation stance on data anomalies: a stale hash means
// the caller is running an edited WSpec against a plan recorded for an
// older one, which is worth knowing but never worth aborting over.
func WithHash(expected uint64) Option {
	return func(c *config) { c.expectedHash = &expected }
}

// Package wspechash computes a stable content hash of a compiled WSpec, so
// callers can detect when a cached routing result is still valid for the
// current specification without diffing the whole document.
package wspechash

import (
	"github.com/minio/highwayhash"

	"github.com/viant/weaver/wspec"
)

// key is fixed rather than configurable: this hash identifies WSpec content
// for cache invalidation, not authentication, so a shared, well-known key is
// the right choice.
var key = []byte("weaver-wspec-hash-key-0123456789")

// Of returns the HighwayHash-64 of w's canonical JSON document.
func Of(w *wspec.WSpec) (uint64, error) {
	data, err := w.Document()
	if err != nil {
		return 0, err
	}
	return Bytes(data)
}

// Bytes hashes a raw WSpec document, e.g. one loaded from storage without
// being unmarshalled first.
func Bytes(data []byte) (uint64, error) {
	h, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	if _, err := h.Write(data); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}

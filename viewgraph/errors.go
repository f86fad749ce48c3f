package viewgraph

import (
	"fmt"

	"github.com/viant/weaver/sdd"
)

func cyclicSegmentError(bundleOrigin, segment int, node sdd.NodeID) error {
	return fmt.Errorf("viewgraph: bundle %d segment %d is cyclic: %q immediately follows itself", bundleOrigin, segment, node)
}

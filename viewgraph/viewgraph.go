// Package viewgraph expands SDD bundles with waypoint chains into segment
// bundles: a bundle declaring waypoints [w1, w2] from A to B produces three
// segments A->w1, w1->w2, w2->B, each inheriting the original bundle's flow
// selection and origin index.
package viewgraph

import "github.com/viant/weaver/sdd"

// Bundle is one segment of an expanded SDD bundle.
type Bundle struct {
	Source NodeEndpoint
	Target NodeEndpoint

	// Segment is this segment's 0-based index within its originating
	// bundle's chain (0 for an unwaypointed bundle).
	Segment int

	// Origin bundle metadata, carried through every segment of the chain.
	BundleOrigin        int
	FlowSelectionAttr   string
	FlowSelectionValues []string
	FlowPartition       *sdd.Partition
}

// NodeEndpoint is one end of a segment: either Elsewhere or a concrete SDD
// node id together with its declared partition.
type NodeEndpoint struct {
	ID        sdd.NodeID
	Partition *sdd.Partition
}

func endpoint(def *sdd.Definition, id sdd.NodeID) NodeEndpoint {
	return NodeEndpoint{ID: id, Partition: def.PartitionOf(id)}
}

// Expand expands every bundle in def into its chain of segment bundles.
func Expand(def *sdd.Definition) ([]Bundle, error) {
	var out []Bundle
	for _, b := range def.Bundles {
		segs, err := expandBundle(def, b)
		if err != nil {
			return nil, err
		}
		out = append(out, segs...)
	}
	return out, nil
}

func expandBundle(def *sdd.Definition, b *sdd.Bundle) ([]Bundle, error) {
	chain := append([]sdd.NodeID{b.Source}, b.Waypoints...)
	chain = append(chain, b.Target)

	var segs []Bundle
	for i := 0; i+1 < len(chain); i++ {
		src := endpoint(def, chain[i])
		tgt := endpoint(def, chain[i+1])
		if src.ID == tgt.ID {
			return nil, cyclicSegmentError(b.Origin, i, chain[i])
		}
		segs = append(segs, Bundle{
			Source:              src,
			Target:              tgt,
			Segment:             i,
			BundleOrigin:        b.Origin,
			FlowSelectionAttr:   b.FlowSelectionAttr,
			FlowSelectionValues: b.FlowSelectionValues,
			FlowPartition:       b.FlowPartition,
		})
	}
	return segs, nil
}

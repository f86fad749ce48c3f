// Package router builds and evaluates the WSpec routing decision tree: the
// data structure that classifies a flow row to zero or more edge ids in
// O(tree depth) rather than scanning every edge per row.
package router

import (
	"sort"
	"strings"

	"github.com/viant/weaver/wspec"
)

// Gate is a build-time-only constraint one Rule places on one branch
// attribute. It never survives into the compiled wspec.Tree.
//
// A nil Gate means the rule does not care about this attribute at all: it
// matches any value, including a missing one, and contributes no explicit
// branch values.
//
// A Gate with a non-empty Values set requires the row's attribute to be
// present and equal to one of Values (used for explicit bundle endpoints and
// flow_selection).
//
// A Gate with an empty Values set and a non-empty Exclude set matches any
// present-or-absent value except those listed (used for an Elsewhere
// endpoint's source/target recheck, spec §4.4 step 5).
type Gate struct {
	Values  []string
	Exclude []string
}

// Rule is one compiled bundle's contribution to the routing tree: which
// attribute values select it, and which edge ids it yields once every
// relevant dimension has been resolved.
type Rule struct {
	BundleOrigin int
	// Elsewhere marks a bundle with an Elsewhere endpoint; such rules only
	// claim a leaf when no explicit (non-Elsewhere) rule already has.
	Elsewhere bool

	// Gates maps a branch attribute to this rule's constraint on it. An
	// attribute absent from this map is treated as a nil Gate.
	Gates map[string]*Gate

	// RelevantDims is the ordered subset of the attribute list whose
	// resolved value this rule needs to pick its edge ids (source/target
	// sub-partition dimension, the effective flow-partition dimension, the
	// time-partition dimension). Every attr in RelevantDims must have a
	// Values-gate in Gates, since edge selection requires an exact value.
	RelevantDims []string

	// EdgeTable maps the joined resolved values of RelevantDims (in order,
	// separated by a control character) to the edge ids this rule
	// contributes for that exact combination.
	EdgeTable map[string][]int
}

const keySep = "\x1f"

// Key builds the EdgeTable lookup key for dims given a set of resolved
// attribute values. Callers building a Rule's EdgeTable must use the same
// dims (in the same order) as the Rule's RelevantDims, joining the chosen
// raw value for each dim exactly as Build/Route resolve it.
func Key(dims []string, resolved map[string]string) string {
	if len(dims) == 0 {
		return ""
	}
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = resolved[d]
	}
	return strings.Join(parts, keySep)
}

// edges returns the edge ids this rule contributes given the attribute
// values resolved along the current tree-construction path.
func (r *Rule) edges(resolved map[string]string) []int {
	return r.EdgeTable[Key(r.RelevantDims, resolved)]
}

// Build constructs the routing tree from rules, branching on attrs in the
// given (already selectivity-ranked) order. Explicit (non-Elsewhere) rules
// always take priority over Elsewhere rules at any leaf they both reach.
func Build(attrs []string, rules []Rule) *wspec.Tree {
	return build(attrs, rules, map[string]string{})
}

func build(attrs []string, rules []Rule, resolved map[string]string) *wspec.Tree {
	if len(attrs) == 0 {
		return leaf(rules, resolved)
	}
	attr := attrs[0]
	rest := attrs[1:]

	valueSet := map[string]bool{}
	for i := range rules {
		g := rules[i].Gates[attr]
		if g == nil {
			continue
		}
		for _, v := range g.Values {
			valueSet[v] = true
		}
		for _, v := range g.Exclude {
			valueSet[v] = true
		}
	}
	if len(valueSet) == 0 {
		// No rule cares about this attribute at all; skip straight through
		// without adding a pointless branch level.
		return build(rest, rules, resolved)
	}

	values := make([]string, 0, len(valueSet))
	for v := range valueSet {
		values = append(values, v)
	}
	sort.Strings(values)

	branches := make(map[string]*wspec.Tree, len(values))
	for _, v := range values {
		matched := filterMatch(rules, attr, v)
		resolved[attr] = v
		branches[v] = build(rest, matched, resolved)
		delete(resolved, attr)
	}

	matched := filterDefault(rules, attr)
	def := build(rest, matched, resolved)

	return wspec.Branch(attr, branches, def)
}

func filterMatch(rules []Rule, attr, value string) []Rule {
	var out []Rule
	for _, r := range rules {
		g := r.Gates[attr]
		if g == nil {
			out = append(out, r)
			continue
		}
		if len(g.Values) > 0 {
			if contains(g.Values, value) {
				out = append(out, r)
			}
			continue
		}
		if !contains(g.Exclude, value) {
			out = append(out, r)
		}
	}
	return out
}

// filterDefault keeps the rules that still apply when the row's value for
// attr is absent or did not match any explicit branch value. A rule that
// requires an explicit value (Values gate) never matches by default; a rule
// with no gate, or an Exclude-only gate, matches vacuously.
func filterDefault(rules []Rule, attr string) []Rule {
	var out []Rule
	for _, r := range rules {
		g := r.Gates[attr]
		if g == nil || len(g.Values) == 0 {
			out = append(out, r)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// leaf resolves the rules surviving to this point in the tree into a single
// edge list. Explicit (non-Elsewhere) rules always take priority over
// Elsewhere ones. Within a tier, the most specific rule (the one
// constraining the most attributes) wins, tie-broken by declaration order;
// this is how a selective Elsewhere bundle (e.g. one with a flow_selection)
// claims a leaf ahead of a catch-all Elsewhere bundle declared alongside it.
func leaf(rules []Rule, resolved map[string]string) *wspec.Tree {
	var explicit, elsewhere []Rule
	for _, r := range rules {
		if r.Elsewhere {
			elsewhere = append(elsewhere, r)
		} else {
			explicit = append(explicit, r)
		}
	}
	if edges := firstMatch(explicit, resolved); len(edges) > 0 {
		return wspec.Leaf(edges...)
	}
	return wspec.Leaf(firstMatch(elsewhere, resolved)...)
}

func firstMatch(rules []Rule, resolved map[string]string) []int {
	ordered := make([]Rule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		gi, gj := len(ordered[i].Gates), len(ordered[j].Gates)
		if gi != gj {
			return gi > gj
		}
		return ordered[i].BundleOrigin < ordered[j].BundleOrigin
	})
	for _, r := range ordered {
		if e := r.edges(resolved); len(e) > 0 {
			return e
		}
	}
	return nil
}

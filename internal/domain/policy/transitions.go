package policy

import "github.com/coverbridge/coverbridge/internal/types"

// edge describes one allowed status movement.
type edge struct {
	reasonRequired bool
}

// transitionGraph is the fixed status graph. Terminal statuses (expired,
// cancelled) have no outgoing entries by construction. Built once at init,
// read-only afterwards, safe for concurrent readers.
var transitionGraph = map[types.PolicyStatus]map[types.PolicyStatus]edge{
	types.PolicyStatusPending: {
		types.PolicyStatusActive:    {},
		types.PolicyStatusCancelled: {reasonRequired: true},
	},
	types.PolicyStatusActive: {
		types.PolicyStatusSuspended: {reasonRequired: true},
		types.PolicyStatusExpired:   {},
		types.PolicyStatusCancelled: {reasonRequired: true},
	},
	types.PolicyStatusSuspended: {
		types.PolicyStatusActive:    {},
		types.PolicyStatusExpired:   {},
		types.PolicyStatusCancelled: {reasonRequired: true},
	},
}

// CanTransition reports whether from→to is an edge of the graph.
func CanTransition(from, to types.PolicyStatus) bool {
	_, ok := transitionGraph[from][to]
	return ok
}

// ReasonRequired reports whether the from→to edge must carry a non-empty
// justification. False for edges that do not exist.
func ReasonRequired(from, to types.PolicyStatus) bool {
	return transitionGraph[from][to].reasonRequired
}

// IsTerminalStatus reports whether s has no outgoing edges.
func IsTerminalStatus(s types.PolicyStatus) bool {
	return len(transitionGraph[s]) == 0
}

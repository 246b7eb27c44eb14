package query

import (
	"context"
	"fmt"
	"sort"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lexigraph/lexigraph/internal/metrics"
	"github.com/lexigraph/lexigraph/internal/models"
)

// bfsSide holds the state of one direction of a bidirectional search.
type bfsSide struct {
	dist     map[string]int
	parent   map[string]string
	frontier []string
}

func newBFSSide(start string) *bfsSide {
	return &bfsSide{
		dist:     map[string]int{start: 0},
		parent:   map[string]string{},
		frontier: []string{start},
	}
}

// ShortestPath finds a minimum-hop path between two nodes, treating every edge
// as undirected. It returns ErrNodeNotFound when either endpoint is missing
// and a descriptive error when no path exists within the search depth.
func (e *Engine) ShortestPath(ctx context.Context, fromID, toID string) ([]models.NodeRef, error) {
	timer := prometheus.NewTimer(metrics.QueryDuration.WithLabelValues("shortest_path"))
	defer timer.ObserveDuration()

	for _, id := range []string{fromID, toID} {
		exists, err := e.store.NodeExists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("node %q: %w", id, models.ErrNodeNotFound)
		}
	}

	labels := map[string]string{}
	if fromID == toID {
		return []models.NodeRef{e.resolveRef(ctx, fromID, labels)}, nil
	}

	fwd := newBFSSide(fromID)
	bwd := newBFSSide(toID)

	for depth := 0; depth < maxPathDepth; depth++ {
		if len(fwd.frontier) == 0 || len(bwd.frontier) == 0 {
			break
		}

		// Expand the smaller frontier to keep the search balanced.
		side, other := fwd, bwd
		if len(bwd.frontier) < len(fwd.frontier) {
			side, other = bwd, fwd
		}

		meetings, err := e.advance(ctx, side, other, labels)
		if err != nil {
			return nil, err
		}
		if len(meetings) > 0 {
			meet := bestMeeting(meetings, fwd, bwd)
			return e.buildPath(ctx, meet, fwd, bwd, labels), nil
		}
	}

	return nil, fmt.Errorf("no path between %q and %q within %d hops", fromID, toID, 2*maxPathDepth)
}

// advance expands one BFS level of side and returns every newly reached node
// already visited by the opposite side.
func (e *Engine) advance(ctx context.Context, side, other *bfsSide, labels map[string]string) ([]string, error) {
	expansions, err := e.expandFrontier(ctx, side.frontier, nil)
	if err != nil {
		return nil, err
	}

	var meetings []string
	var next []string
	for i, nodeID := range side.frontier {
		depth := side.dist[nodeID] + 1
		for _, edge := range expansions[i] {
			if _, seen := side.dist[edge.NeighborID]; seen {
				continue
			}
			side.dist[edge.NeighborID] = depth
			side.parent[edge.NeighborID] = nodeID
			if edge.NeighborLabel != "" {
				labels[edge.NeighborID] = edge.NeighborLabel
			}
			next = append(next, edge.NeighborID)

			if _, met := other.dist[edge.NeighborID]; met {
				meetings = append(meetings, edge.NeighborID)
			}
		}
	}

	side.frontier = next
	return meetings, nil
}

// bestMeeting picks the meeting node with the smallest combined distance,
// breaking ties by node id for stable output.
func bestMeeting(meetings []string, fwd, bwd *bfsSide) string {
	sort.Strings(meetings)
	best := meetings[0]
	bestTotal := fwd.dist[best] + bwd.dist[best]
	for _, m := range meetings[1:] {
		if total := fwd.dist[m] + bwd.dist[m]; total < bestTotal {
			best, bestTotal = m, total
		}
	}
	return best
}

// buildPath stitches the forward chain to the meeting node with the backward
// chain to the target.
func (e *Engine) buildPath(ctx context.Context, meet string, fwd, bwd *bfsSide, labels map[string]string) []models.NodeRef {
	var forward []string
	for id := meet; ; {
		forward = append(forward, id)
		p, ok := fwd.parent[id]
		if !ok {
			break
		}
		id = p
	}

	// forward currently runs meeting -> start; reverse it.
	for i, j := 0, len(forward)-1; i < j; i, j = i+1, j-1 {
		forward[i], forward[j] = forward[j], forward[i]
	}

	ids := forward
	for id := meet; ; {
		p, ok := bwd.parent[id]
		if !ok {
			break
		}
		ids = append(ids, p)
		id = p
	}

	path := make([]models.NodeRef, 0, len(ids))
	for _, id := range ids {
		if label, ok := labels[id]; ok {
			path = append(path, models.NodeRef{ID: id, Label: label})
			continue
		}
		path = append(path, e.resolveRef(ctx, id, labels))
	}
	return path
}

// resolveRef fetches a node's label, falling back to its id when the lookup
// fails or the label is empty.
func (e *Engine) resolveRef(ctx context.Context, nodeID string, labels map[string]string) models.NodeRef {
	if label, ok := labels[nodeID]; ok {
		return models.NodeRef{ID: nodeID, Label: label}
	}
	node, err := e.store.GetNode(ctx, nodeID)
	if err != nil || node.Label == "" {
		return models.NodeRef{ID: nodeID, Label: nodeID}
	}
	labels[nodeID] = node.Label
	return *node
}

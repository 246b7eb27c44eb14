package query

import (
	"context"
	"fmt"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/lexigraph/lexigraph/internal/metrics"
	"github.com/lexigraph/lexigraph/internal/models"
)

// visitState records how a node was first reached during a polarity walk.
type visitState struct {
	depth   int
	flipped bool
	label   string
}

// DistantNodes walks synonym and antonym edges breadth-first from startID and
// returns the nodes first reached at exactly the given distance whose
// accumulated polarity matches mode. Each antonym edge on a path flips the
// polarity; synonym edges preserve it. A node keeps the polarity of the first
// path that reached it.
func (e *Engine) DistantNodes(ctx context.Context, startID string, distance int, mode models.TraversalMode) ([]models.NodeRef, error) {
	timer := prometheus.NewTimer(metrics.QueryDuration.WithLabelValues("distant_nodes"))
	defer timer.ObserveDuration()

	if distance < 1 {
		return nil, fmt.Errorf("distance must be at least 1, got %d", distance)
	}
	if distance > maxTraverseDepth {
		return nil, fmt.Errorf("distance %d exceeds maximum %d", distance, maxTraverseDepth)
	}

	exists, err := e.store.NodeExists(ctx, startID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("node %q: %w", startID, models.ErrNodeNotFound)
	}

	filter := e.polarity.walkable()
	visited := map[string]visitState{startID: {depth: 0}}
	frontier := []string{startID}

	for depth := 1; depth <= distance && len(frontier) > 0; depth++ {
		expansions, err := e.expandFrontier(ctx, frontier, filter)
		if err != nil {
			return nil, err
		}

		var next []string
		for i, nodeID := range frontier {
			from := visited[nodeID]
			for _, edge := range expansions[i] {
				walk, flip := e.polarity.Classify(edge.RelationIDs)
				if !walk {
					continue
				}
				if _, seen := visited[edge.NeighborID]; seen {
					continue
				}
				visited[edge.NeighborID] = visitState{
					depth:   depth,
					flipped: from.flipped != flip,
					label:   edge.NeighborLabel,
				}
				next = append(next, edge.NeighborID)
			}
		}

		e.log.WithFields(logrus.Fields{
			"start":    startID,
			"depth":    depth,
			"frontier": len(next),
		}).Debug("polarity frontier expanded")

		frontier = next
	}

	wantFlipped := mode == models.ModeAntonym

	var results []models.NodeRef
	for id, st := range visited {
		if id == startID || st.depth != distance || st.flipped != wantFlipped {
			continue
		}
		results = append(results, models.NodeRef{ID: id, Label: st.label})
	}

	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

// expandFrontier fetches the undirected one-hop neighborhood of every frontier
// node concurrently, preserving frontier order in the returned slice.
func (e *Engine) expandFrontier(ctx context.Context, frontier []string, filter []string) ([][]models.NeighborEdge, error) {
	expansions := make([][]models.NeighborEdge, len(frontier))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, nodeID := range frontier {
		i, nodeID := i, nodeID
		g.Go(func() error {
			edges, err := e.expandBoth(gctx, nodeID, filter)
			if err != nil {
				return err
			}
			expansions[i] = edges
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return expansions, nil
}

// expandBoth concatenates outgoing and incoming one-hop expansions, treating
// the graph as undirected for traversal purposes.
func (e *Engine) expandBoth(ctx context.Context, nodeID string, filter []string) ([]models.NeighborEdge, error) {
	out, err := e.store.ExpandOneHop(ctx, nodeID, models.DirectionOut, filter)
	if err != nil {
		return nil, err
	}
	in, err := e.store.ExpandOneHop(ctx, nodeID, models.DirectionIn, filter)
	if err != nil {
		return nil, err
	}
	return append(out, in...), nil
}

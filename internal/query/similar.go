package query

import (
	"context"
	"fmt"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/lexigraph/lexigraph/internal/metrics"
	"github.com/lexigraph/lexigraph/internal/models"
)

// FindSimilar returns nodes that share a connection with nodeID: a node B such
// that some third node C is linked to both A and B in the same direction and
// through at least one common relation type. Each result lists the shared
// connections that make it similar.
func (e *Engine) FindSimilar(ctx context.Context, nodeID string) ([]models.SimilarNode, error) {
	timer := prometheus.NewTimer(metrics.QueryDuration.WithLabelValues("find_similar"))
	defer timer.ObserveDuration()

	exists, err := e.store.NodeExists(ctx, nodeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("node %q: %w", nodeID, models.ErrNodeNotFound)
	}

	successors, err := e.store.ExpandOneHop(ctx, nodeID, models.DirectionOut, nil)
	if err != nil {
		return nil, err
	}
	predecessors, err := e.store.ExpandOneHop(ctx, nodeID, models.DirectionIn, nil)
	if err != nil {
		return nil, err
	}

	// For A -> C the similar nodes are other predecessors of C; for C -> A
	// they are other successors of C. Each via node is expanded once.
	type viaExpansion struct {
		via       models.NeighborEdge
		direction models.Direction
		edges     []models.NeighborEdge
	}

	expansions := make([]viaExpansion, 0, len(successors)+len(predecessors))
	for _, c := range successors {
		expansions = append(expansions, viaExpansion{via: c, direction: models.DirectionIn})
	}
	for _, c := range predecessors {
		expansions = append(expansions, viaExpansion{via: c, direction: models.DirectionOut})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i := range expansions {
		i := i
		g.Go(func() error {
			ex := &expansions[i]
			edges, err := e.store.ExpandOneHop(gctx, ex.via.NeighborID, ex.direction, nil)
			if err != nil {
				return err
			}
			ex.edges = edges
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byID := make(map[string]*models.SimilarNode)
	var order []string

	for _, ex := range expansions {
		if ex.via.NeighborID == nodeID {
			continue
		}
		for _, edge := range ex.edges {
			if edge.NeighborID == nodeID {
				continue
			}
			shared := intersectRelations(ex.via.RelationIDs, edge.RelationIDs)
			if len(shared) == 0 {
				continue
			}

			sn, ok := byID[edge.NeighborID]
			if !ok {
				sn = &models.SimilarNode{ID: edge.NeighborID, Label: edge.NeighborLabel}
				byID[edge.NeighborID] = sn
				order = append(order, edge.NeighborID)
			}
			sn.SharedConnections = append(sn.SharedConnections, models.SharedConnection{
				ViaNode:   ex.via.NeighborID,
				EdgeTypes: shared,
			})
		}
	}

	sort.Strings(order)
	results := make([]models.SimilarNode, 0, len(order))
	for _, id := range order {
		results = append(results, *byID[id])
	}

	e.log.WithField("node", nodeID).WithField("similar", len(results)).Debug("similarity search complete")
	return results, nil
}

// intersectRelations returns the relation ids present in both lists,
// preserving the order of the first.
func intersectRelations(a, b []string) []string {
	var out []string
	for _, x := range a {
		for _, y := range b {
			if x == y {
				out = append(out, x)
				break
			}
		}
	}
	return out
}

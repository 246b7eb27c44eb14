package query

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/lexigraph/lexigraph/internal/models"
)

type mockStore struct {
	expandFn      func(ctx context.Context, nodeID string, direction models.Direction, relationFilter []string) ([]models.NeighborEdge, error)
	nodeExistsFn  func(ctx context.Context, nodeID string) (bool, error)
	getNodeFn     func(ctx context.Context, nodeID string) (*models.NodeRef, error)
	updateLabelFn func(ctx context.Context, nodeID, newLabel string) error

	mu          sync.Mutex
	updateCalls []string
}

func (m *mockStore) ExpandOneHop(ctx context.Context, nodeID string, direction models.Direction, relationFilter []string) ([]models.NeighborEdge, error) {
	return m.expandFn(ctx, nodeID, direction, relationFilter)
}

func (m *mockStore) NodeExists(ctx context.Context, nodeID string) (bool, error) {
	return m.nodeExistsFn(ctx, nodeID)
}

func (m *mockStore) GetNode(ctx context.Context, nodeID string) (*models.NodeRef, error) {
	return m.getNodeFn(ctx, nodeID)
}

func (m *mockStore) UpdateLabel(ctx context.Context, nodeID, newLabel string) error {
	m.mu.Lock()
	m.updateCalls = append(m.updateCalls, nodeID+"="+newLabel)
	m.mu.Unlock()
	return m.updateLabelFn(ctx, nodeID, newLabel)
}

type testEdge struct {
	src, dst string
	rels     []string
}

// fixtureStore backs a mockStore with an in-memory edge list so traversal
// tests can run against a concrete graph.
func fixtureStore(edges []testEdge, labels map[string]string) *mockStore {
	nodes := map[string]bool{}
	for _, e := range edges {
		nodes[e.src] = true
		nodes[e.dst] = true
	}

	matches := func(rels, filter []string) bool {
		if filter == nil {
			return true
		}
		for _, r := range rels {
			for _, f := range filter {
				if r == f {
					return true
				}
			}
		}
		return false
	}

	m := &mockStore{}
	m.expandFn = func(_ context.Context, nodeID string, direction models.Direction, filter []string) ([]models.NeighborEdge, error) {
		var out []models.NeighborEdge
		for _, e := range edges {
			var neighbor string
			switch {
			case direction == models.DirectionOut && e.src == nodeID:
				neighbor = e.dst
			case direction == models.DirectionIn && e.dst == nodeID:
				neighbor = e.src
			default:
				continue
			}
			if !matches(e.rels, filter) {
				continue
			}
			out = append(out, models.NeighborEdge{
				NeighborID:     neighbor,
				NeighborLabel:  labels[neighbor],
				RelationIDs:    e.rels,
				RelationLabels: e.rels,
			})
		}
		return out, nil
	}
	m.nodeExistsFn = func(_ context.Context, nodeID string) (bool, error) {
		return nodes[nodeID], nil
	}
	m.getNodeFn = func(_ context.Context, nodeID string) (*models.NodeRef, error) {
		if !nodes[nodeID] {
			return nil, models.ErrNodeNotFound
		}
		return &models.NodeRef{ID: nodeID, Label: labels[nodeID]}, nil
	}
	m.updateLabelFn = func(_ context.Context, nodeID, _ string) error {
		if !nodes[nodeID] {
			return models.ErrNodeNotFound
		}
		return nil
	}
	return m
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func resultIDs(refs []models.NodeRef) []string {
	var ids []string
	for _, r := range refs {
		ids = append(ids, r.ID)
	}
	return ids
}

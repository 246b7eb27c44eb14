package store

import (
	"context"

	"github.com/lexigraph/lexigraph/internal/models"
)

// Successors returns the direct successors of a node.
func (s *DgraphStore) Successors(ctx context.Context, nodeID string) ([]models.NodeRef, error) {
	var out struct {
		Successors []models.NodeRef `json:"successors"`
	}

	if err := s.read(ctx, "successors", querySuccessors, map[string]string{"$id": nodeID}, &out); err != nil {
		return nil, err
	}

	return out.Successors, nil
}

// CountSuccessors returns how many successors a node has.
func (s *DgraphStore) CountSuccessors(ctx context.Context, nodeID string) (int, error) {
	var out struct {
		Successors []countResp `json:"successors"`
	}

	if err := s.read(ctx, "count successors", queryCountSuccessors, map[string]string{"$id": nodeID}, &out); err != nil {
		return 0, err
	}

	return firstCount(out.Successors), nil
}

// Predecessors returns the direct predecessors of a node.
func (s *DgraphStore) Predecessors(ctx context.Context, nodeID string) ([]models.NodeRef, error) {
	var out struct {
		Predecessors []models.NodeRef `json:"predecessors"`
	}

	if err := s.read(ctx, "predecessors", queryPredecessors, map[string]string{"$id": nodeID}, &out); err != nil {
		return nil, err
	}

	return out.Predecessors, nil
}

// CountPredecessors returns how many predecessors a node has.
func (s *DgraphStore) CountPredecessors(ctx context.Context, nodeID string) (int, error) {
	var out struct {
		Predecessors []countResp `json:"predecessors"`
	}

	if err := s.read(ctx, "count predecessors", queryCountPredecessors, map[string]string{"$id": nodeID}, &out); err != nil {
		return 0, err
	}

	return firstCount(out.Predecessors), nil
}

// Neighbors returns the union of a node's successors and predecessors.
func (s *DgraphStore) Neighbors(ctx context.Context, nodeID string) ([]models.NodeRef, error) {
	var out struct {
		Neighbors []models.NodeRef `json:"neighbors"`
	}

	if err := s.read(ctx, "neighbors", queryNeighbors, map[string]string{"$id": nodeID}, &out); err != nil {
		return nil, err
	}

	return out.Neighbors, nil
}

// CountNeighbors returns the stored unique-neighbor count for a node. The
// converter precomputes it; a node loaded without the statement counts as 0.
func (s *DgraphStore) CountNeighbors(ctx context.Context, nodeID string) (int, error) {
	var out struct {
		Neighbors []countResp `json:"neighbors"`
	}

	if err := s.read(ctx, "count neighbors", queryCountNeighbors, map[string]string{"$id": nodeID}, &out); err != nil {
		return 0, err
	}

	return firstCount(out.Neighbors), nil
}

// Grandchildren returns the distinct successors-of-successors of a node.
func (s *DgraphStore) Grandchildren(ctx context.Context, nodeID string) ([]models.NodeRef, error) {
	var out struct {
		Grandchildren []models.NodeRef `json:"grandchildren"`
	}

	if err := s.read(ctx, "grandchildren", queryGrandchildren, map[string]string{"$id": nodeID}, &out); err != nil {
		return nil, err
	}

	return out.Grandchildren, nil
}

// Grandparents returns the distinct predecessors-of-predecessors of a node.
func (s *DgraphStore) Grandparents(ctx context.Context, nodeID string) ([]models.NodeRef, error) {
	var out struct {
		Grandparents []models.NodeRef `json:"grandparents"`
	}

	if err := s.read(ctx, "grandparents", queryGrandparents, map[string]string{"$id": nodeID}, &out); err != nil {
		return nil, err
	}

	return out.Grandparents, nil
}

// CountNodes returns the total number of stored nodes.
func (s *DgraphStore) CountNodes(ctx context.Context) (int, error) {
	var out struct {
		Total []countResp `json:"total"`
	}

	if err := s.read(ctx, "count nodes", queryCountNodes, nil, &out); err != nil {
		return 0, err
	}

	return firstCount(out.Total), nil
}

// CountNodesWithoutSuccessors returns how many nodes have no outgoing edges.
func (s *DgraphStore) CountNodesWithoutSuccessors(ctx context.Context) (int, error) {
	var out struct {
		Nodes []countResp `json:"nodes"`
	}

	if err := s.read(ctx, "count nodes without successors", queryCountNoSuccessors, nil, &out); err != nil {
		return 0, err
	}

	return firstCount(out.Nodes), nil
}

// CountNodesWithoutPredecessors returns how many nodes have no incoming edges.
func (s *DgraphStore) CountNodesWithoutPredecessors(ctx context.Context) (int, error) {
	var out struct {
		Nodes []countResp `json:"nodes"`
	}

	if err := s.read(ctx, "count nodes without predecessors", queryCountNoPredecessors, nil, &out); err != nil {
		return 0, err
	}

	return firstCount(out.Nodes), nil
}

// NodesWithMostNeighbors returns the node(s) holding the maximum stored
// unique-neighbor count.
func (s *DgraphStore) NodesWithMostNeighbors(ctx context.Context) ([]models.NodeCount, error) {
	var out struct {
		Nodes []models.NodeCount `json:"nodes_with_most_neighbors"`
	}

	if err := s.read(ctx, "nodes with most neighbors", queryMostNeighbors, nil, &out); err != nil {
		return nil, err
	}

	return out.Nodes, nil
}

// CountNodesWithSingleNeighbor returns how many nodes have exactly one
// unique neighbor.
func (s *DgraphStore) CountNodesWithSingleNeighbor(ctx context.Context) (int, error) {
	var out struct {
		Rows []countResp `json:"single_neighbor_count"`
	}

	if err := s.read(ctx, "count single-neighbor nodes", queryCountSingleNeighbor, nil, &out); err != nil {
		return 0, err
	}

	return firstCount(out.Rows), nil
}

package store

import (
	"context"

	"github.com/lexigraph/lexigraph/internal/metrics"
	"github.com/lexigraph/lexigraph/internal/models"
)

// expandNeighbor mirrors one neighbor object in an expansion response. Facet
// keys are fixed by the queried predicate.
type expandNeighbor struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	OutID    string `json:"to|id"`
	OutLabel string `json:"to|label"`
	InID     string `json:"~to|id"`
	InLabel  string `json:"~to|label"`
}

type expandResp struct {
	Expand []struct {
		To  []expandNeighbor `json:"to"`
		Rev []expandNeighbor `json:"~to"`
	} `json:"expand"`
}

// ExpandOneHop returns the direct neighbors of nodeID in the given direction.
// Combined facet values are split into relation id/label lists. When
// relationFilter is non-empty, only edges whose relation id list intersects
// the filter are returned.
func (s *DgraphStore) ExpandOneHop(
	ctx context.Context,
	nodeID string,
	direction models.Direction,
	relationFilter []string,
) ([]models.NeighborEdge, error) {
	query := queryExpandOut
	if direction == models.DirectionIn {
		query = queryExpandIn
	}

	metrics.ExpandCalls.WithLabelValues(string(direction)).Inc()

	var out expandResp
	if err := s.read(ctx, "expand one hop", query, map[string]string{"$id": nodeID}, &out); err != nil {
		return nil, err
	}

	return collectEdges(out, direction, relationFilter), nil
}

func collectEdges(resp expandResp, direction models.Direction, relationFilter []string) []models.NeighborEdge {
	var raw []expandNeighbor
	for _, root := range resp.Expand {
		raw = append(raw, root.To...)
		raw = append(raw, root.Rev...)
	}

	edges := make([]models.NeighborEdge, 0, len(raw))

	for _, n := range raw {
		facetID, facetLabel := n.OutID, n.OutLabel
		if direction == models.DirectionIn {
			facetID, facetLabel = n.InID, n.InLabel
		}

		edge := models.NeighborEdge{
			NeighborID:     n.ID,
			NeighborLabel:  n.Label,
			RelationIDs:    splitCombined(facetID),
			RelationLabels: splitCombined(facetLabel),
		}

		if edge.NeighborLabel == "" {
			edge.NeighborLabel = edge.NeighborID
		}

		if len(relationFilter) > 0 && !intersects(edge.RelationIDs, relationFilter) {
			continue
		}

		edges = append(edges, edge)
	}

	return edges
}

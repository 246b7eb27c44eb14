// Package models defines data types for the lexical knowledge graph.
package models

// NodeRef is the id/label pair returned by query operations.
type NodeRef struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// NodeCount pairs a node with its stored unique-neighbor count.
type NodeCount struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
	Count int    `json:"count"`
}

// Direction selects which side of an edge a one-hop expansion follows.
type Direction string

const (
	// DirectionOut expands edges where the node is the source.
	DirectionOut Direction = "out"
	// DirectionIn expands edges where the node is the target.
	DirectionIn Direction = "in"
)

// NeighborEdge is one edge returned by a one-hop expansion. A single stored
// edge may carry several relation types when the converter combined parallel
// relations between the same ordered pair.
type NeighborEdge struct {
	NeighborID     string   `json:"neighbor_id"`
	NeighborLabel  string   `json:"neighbor_label"`
	RelationIDs    []string `json:"relation_ids"`
	RelationLabels []string `json:"relation_labels"`
}

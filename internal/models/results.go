package models

import "time"

// TraversalMode selects which polarity class a distant-node traversal returns.
type TraversalMode string

const (
	// ModeSynonym returns nodes reached with an even number of antonym flips.
	ModeSynonym TraversalMode = "synonym"
	// ModeAntonym returns nodes reached with an odd number of antonym flips.
	ModeAntonym TraversalMode = "antonym"
)

// SharedConnection records one third node C and the edge types both the query
// node and the similar node share toward (or from) it.
type SharedConnection struct {
	ViaNode   string   `json:"via_node"`
	EdgeTypes []string `json:"edge_types"`
}

// SimilarNode is one result of a similarity query: a node plus every shared
// connection that qualifies it.
type SimilarNode struct {
	ID                string             `json:"id"`
	Label             string             `json:"label"`
	SharedConnections []SharedConnection `json:"shared_connections"`
}

// ConvertStats summarizes one conversion run.
type ConvertStats struct {
	RecordsRead   int64         `json:"records_read"`
	RowsSkipped   int64         `json:"rows_skipped"`
	Nodes         int64         `json:"nodes"`
	Edges         int64         `json:"edges"`
	Relationships int64         `json:"relationships"`
	Batches       int64         `json:"batches"`
	BytesWritten  int64         `json:"bytes_written"`
	Duration      time.Duration `json:"duration_ns"`
}

// Package query implements the client-side traversal algorithms: distant
// synonym/antonym discovery, structural similarity, shortest path and node
// relabeling. All of them compose repeated single-hop expansions against the
// external graph store; none of them touch the ingestion pipeline.
package query

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/lexigraph/lexigraph/internal/models"
)

// Traversal safety limits.
const (
	maxTraverseDepth   = 8  // caps polarity BFS depth
	maxPathDepth       = 10 // caps shortest-path search depth per side
	defaultConcurrency = 8  // in-flight expansions per BFS level
)

// Store is the graph-store interface the query engine depends on.
type Store interface {
	ExpandOneHop(ctx context.Context, nodeID string, direction models.Direction, relationFilter []string) ([]models.NeighborEdge, error)
	NodeExists(ctx context.Context, nodeID string) (bool, error)
	GetNode(ctx context.Context, nodeID string) (*models.NodeRef, error)
	UpdateLabel(ctx context.Context, nodeID, newLabel string) error
}

// PolarityTable partitions relation ids into synonym-like, antonym-like and
// unwalkable classes. It is traversal-time configuration, not stored state.
type PolarityTable struct {
	synonyms []string
	antonyms []string
}

// NewPolarityTable builds a table from explicit relation id sets.
func NewPolarityTable(synonyms, antonyms []string) *PolarityTable {
	return &PolarityTable{synonyms: synonyms, antonyms: antonyms}
}

// DefaultPolarityTable classifies the ConceptNet synonym/antonym relations.
func DefaultPolarityTable() *PolarityTable {
	return NewPolarityTable([]string{"/r/Synonym"}, []string{"/r/Antonym"})
}

// Classify inspects an edge's relation id list. A synonym-like relation wins
// over an antonym-like one when a combined edge carries both.
func (t *PolarityTable) Classify(relationIDs []string) (walkable, flip bool) {
	for _, id := range relationIDs {
		for _, s := range t.synonyms {
			if id == s {
				return true, false
			}
		}
	}

	for _, id := range relationIDs {
		for _, a := range t.antonyms {
			if id == a {
				return true, true
			}
		}
	}

	return false, false
}

// walkable returns the full set of traversable relation ids, used as the
// store-side expansion filter.
func (t *PolarityTable) walkable() []string {
	out := make([]string, 0, len(t.synonyms)+len(t.antonyms))
	out = append(out, t.synonyms...)
	out = append(out, t.antonyms...)
	return out
}

// Engine runs traversal queries against a Store.
type Engine struct {
	store       Store
	polarity    *PolarityTable
	log         *logrus.Logger
	concurrency int
}

// Option configures an Engine.
type Option func(*Engine)

// WithPolarityTable overrides the relation classification table.
func WithPolarityTable(t *PolarityTable) Option {
	return func(e *Engine) { e.polarity = t }
}

// WithConcurrency bounds in-flight store expansions per BFS level.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// NewEngine creates a query engine.
func NewEngine(store Store, log *logrus.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:       store,
		polarity:    DefaultPolarityTable(),
		log:         log,
		concurrency: defaultConcurrency,
	}

	for _, o := range opts {
		o(e)
	}

	return e
}

// Package store provides the client for the external Dgraph graph store:
// one-hop expansion, point lookups, label updates and aggregate queries.
//
// The store is an external collaborator. Every failure here is surfaced as a
// models.LookupError — an expansion failure is never an empty neighbor list.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/dgo/v230"
	"github.com/dgraph-io/dgo/v230/protos/api"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/lexigraph/lexigraph/internal/convert"
	"github.com/lexigraph/lexigraph/internal/models"
)

const defaultQueryTimeout = 30 * time.Second

// maxMessageSize raises the gRPC message caps; bulk graphs produce large
// result payloads.
const maxMessageSize = 1 << 30

// DgraphStore is the Dgraph-backed graph store client.
type DgraphStore struct {
	dg   *dgo.Dgraph
	conn *grpc.ClientConn
	log  *logrus.Logger
}

// NewDgraphStore creates a store client for the given alpha address
// (host:port). The connection is established lazily on first use.
func NewDgraphStore(addr string, log *logrus.Logger) (*DgraphStore, error) {
	conn, err := grpc.NewClient(
		addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(maxMessageSize),
			grpc.MaxCallSendMsgSize(maxMessageSize),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("dialing dgraph at %s: %w", addr, err)
	}

	return &DgraphStore{
		dg:   dgo.NewDgraphClient(api.NewDgraphClient(conn)),
		conn: conn,
		log:  log,
	}, nil
}

// Close releases the underlying connection.
func (s *DgraphStore) Close() error {
	return s.conn.Close()
}

// withTimeout creates a context with the default query timeout.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultQueryTimeout)
}

// read executes a read-only query and unmarshals the JSON response into out.
func (s *DgraphStore) read(ctx context.Context, op, query string, vars map[string]string, out any) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	txn := s.dg.NewReadOnlyTxn().BestEffort()

	resp, err := txn.QueryWithVars(ctx, query, vars)
	if err != nil {
		return &models.LookupError{Op: op, NodeID: vars["$id"], Err: err}
	}

	if err := json.Unmarshal(resp.Json, out); err != nil {
		return &models.LookupError{Op: op, NodeID: vars["$id"], Err: fmt.Errorf("decoding response: %w", err)}
	}

	return nil
}

type countResp struct {
	Count int `json:"count"`
}

func firstCount(rows []countResp) int {
	if len(rows) == 0 {
		return 0
	}
	return rows[0].Count
}

// NodeExists reports whether a node with the given external id is stored.
func (s *DgraphStore) NodeExists(ctx context.Context, nodeID string) (bool, error) {
	var out struct {
		NodeExists []countResp `json:"node_exists"`
	}

	if err := s.read(ctx, "node exists", queryNodeExists, map[string]string{"$id": nodeID}, &out); err != nil {
		return false, err
	}

	return firstCount(out.NodeExists) > 0, nil
}

// GetNode returns the node's id/label pair, or models.ErrNodeNotFound.
func (s *DgraphStore) GetNode(ctx context.Context, nodeID string) (*models.NodeRef, error) {
	var out struct {
		Node []models.NodeRef `json:"node"`
	}

	if err := s.read(ctx, "get node", queryGetNode, map[string]string{"$id": nodeID}, &out); err != nil {
		return nil, err
	}

	if len(out.Node) == 0 {
		return nil, models.ErrNodeNotFound
	}

	return &out.Node[0], nil
}

// UpdateLabel atomically replaces a node's label. The node's id predicate is
// untouched. Returns models.ErrNodeNotFound when no node matches; the upsert
// condition guarantees no partial effect either way.
func (s *DgraphStore) UpdateLabel(ctx context.Context, nodeID, newLabel string) error {
	exists, err := s.NodeExists(ctx, nodeID)
	if err != nil {
		return err
	}

	if !exists {
		return models.ErrNodeNotFound
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	nquad := fmt.Sprintf("uid(node) <label> \"%s\" .", convert.EscapeLiteral(newLabel))

	req := &api.Request{
		Query: queryRenameUpsert,
		Vars:  map[string]string{"$id": nodeID},
		Mutations: []*api.Mutation{{
			SetNquads: []byte(nquad),
			Cond:      "@if(eq(len(node), 1))",
		}},
		CommitNow: true,
	}

	txn := s.dg.NewTxn()
	defer txn.Discard(ctx) //nolint:errcheck // no-op after CommitNow.

	if _, err := txn.Do(ctx, req); err != nil {
		return &models.LookupError{Op: "update label", NodeID: nodeID, Err: err}
	}

	s.log.WithFields(logrus.Fields{
		"node_id": nodeID,
	}).Debug("store.label_updated")

	return nil
}

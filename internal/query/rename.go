package query

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/lexigraph/lexigraph/internal/metrics"
)

// RenameNode replaces the label of an existing node. The node id itself is
// immutable; only the human-readable label changes.
func (e *Engine) RenameNode(ctx context.Context, nodeID, newLabel string) error {
	timer := prometheus.NewTimer(metrics.QueryDuration.WithLabelValues("rename_node"))
	defer timer.ObserveDuration()

	if err := e.store.UpdateLabel(ctx, nodeID, newLabel); err != nil {
		return err
	}

	e.log.WithFields(logrus.Fields{
		"node":  nodeID,
		"label": newLabel,
	}).Info("node renamed")
	return nil
}

// Package convert transforms a tabular knowledge-graph dump into a
// deduplicated, escaped, compressed statement stream for bulk loading.
//
// The pipeline is a single forward pass: a reader stage feeds parse/escape
// workers, and one sequencing stage owns dedup, relation combining and batch
// emission. Because the sequencer is the only writer, every node declaration
// reaches the sink before any edge that references it.
package convert

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/lexigraph/lexigraph/internal/metrics"
	"github.com/lexigraph/lexigraph/internal/models"
)

// Relation ids containing these markers additionally emit dedicated polarity
// predicates, which the traversal engine's store queries rely on.
const (
	SynonymMarker = "/r/Synonym"
	AntonymMarker = "/r/Antonym"
)

// relationWindow bounds how many distinct node pairs accumulate before their
// combined edge statements are flushed.
const relationWindow = 50_000

// combinedSeparator joins parallel relation ids/labels into one facet value.
const combinedSeparator = "<;>"

// scanBufSize allows long rows; some dump labels run to megabytes.
const scanBufSize = 16 << 20

// Options configures a Converter. Zero values select defaults.
type Options struct {
	BatchSize        int  // statements per flush; 0 adapts to statement size
	CompressionLevel int  // gzip level; 0 selects the throughput default (2)
	Workers          int  // parse/escape workers; 0 selects 4
	StrictRows       bool // abort on malformed rows instead of skip-and-count
}

// Converter runs bulk ingestion conversions.
type Converter struct {
	opts Options
	log  *logrus.Logger
}

// New creates a Converter.
func New(opts Options, log *logrus.Logger) *Converter {
	if opts.CompressionLevel == 0 {
		opts.CompressionLevel = 2
	}

	if opts.Workers <= 0 {
		opts.Workers = 4
	}

	return &Converter{opts: opts, log: log}
}

// ConvertFile converts a gzipped TSV dump into a gzipped statement file.
// On any failure the partial output is removed: an incomplete statement
// stream must never be left on disk looking complete.
func (c *Converter) ConvertFile(ctx context.Context, inPath, outPath string) (*models.ConvertStats, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer in.Close() //nolint:errcheck // read-only file.

	gzr, err := gzip.NewReader(bufio.NewReaderSize(in, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("opening gzip input: %w", err)
	}
	defer gzr.Close() //nolint:errcheck // read-only stream.

	out, err := os.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}

	stats, err := c.Convert(ctx, gzr, out)
	if err != nil {
		out.Close()        //nolint:errcheck // already failing.
		os.Remove(outPath) //nolint:errcheck // best-effort cleanup.

		return nil, err
	}

	if err := out.Close(); err != nil {
		os.Remove(outPath) //nolint:errcheck // best-effort cleanup.

		return nil, fmt.Errorf("closing output: %w", err)
	}

	return stats, nil
}

type numberedLine struct {
	n    int
	text string
}

// parsedWork is a record after the parallel stages: ids sanitized, literals
// escaped, labels chosen. The sequencer consumes these in arrival order.
type parsedWork struct {
	srcRaw, tgtRaw     string
	srcToken, tgtToken string
	srcIDLit, tgtIDLit string
	srcLabel, tgtLabel models.Label // escaped display labels
	relRaw             string
	relIDLit           string
	relLabelLit        string
}

// Convert reads raw TSV rows from r (header line included) and writes the
// compressed statement stream to w.
func (c *Converter) Convert(ctx context.Context, r io.Reader, w io.Writer) (*models.ConvertStats, error) {
	runID := uuid.New().String()
	start := time.Now()

	log := c.log.WithField("run_id", runID)
	log.WithFields(logrus.Fields{
		"workers":           c.opts.Workers,
		"compression_level": c.opts.CompressionLevel,
	}).Info("convert.start")

	em, err := newEmitter(w, c.opts.CompressionLevel, c.opts.BatchSize, c.log)
	if err != nil {
		return nil, err
	}

	var skipped atomic.Int64

	cache := newEscapeCache()
	seq := newSequencer(em, cache)

	g, gctx := errgroup.WithContext(ctx)

	lines := make(chan numberedLine, 1024)
	works := make(chan *parsedWork, 1024)

	g.Go(func() error {
		defer close(lines)
		return readLines(gctx, r, lines)
	})

	g.Go(func() error {
		defer close(works)

		wg, wctx := errgroup.WithContext(gctx)
		for i := 0; i < c.opts.Workers; i++ {
			wg.Go(func() error {
				return c.runWorker(wctx, cache, lines, works, &skipped)
			})
		}

		return wg.Wait()
	})

	g.Go(func() error {
		for pw := range works {
			if err := seq.process(pw); err != nil {
				return err
			}
		}

		return seq.finish()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := seq.stats()
	stats.RowsSkipped = skipped.Load()
	stats.Duration = time.Since(start)

	metrics.ConvertRowsSkipped.Add(float64(stats.RowsSkipped))

	log.WithFields(logrus.Fields{
		"records":       stats.RecordsRead,
		"skipped":       stats.RowsSkipped,
		"nodes":         stats.Nodes,
		"edges":         stats.Edges,
		"relationships": stats.Relationships,
		"batches":       stats.Batches,
		"bytes":         stats.BytesWritten,
		"duration":      stats.Duration.Round(time.Millisecond).String(),
	}).Info("convert.done")

	return stats, nil
}

func readLines(ctx context.Context, r io.Reader, out chan<- numberedLine) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1<<20), scanBufSize)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		if lineNo == 1 {
			continue // header
		}

		select {
		case out <- numberedLine{n: lineNo, text: sc.Text()}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading input at line %d: %w", lineNo, err)
	}

	return nil
}

// runWorker parses rows and performs the CPU-heavy per-record work:
// sanitizing ids, choosing labels, escaping literals. The escape cache is the
// only state shared between workers.
func (c *Converter) runWorker(
	ctx context.Context,
	cache *escapeCache,
	in <-chan numberedLine,
	out chan<- *parsedWork,
	skipped *atomic.Int64,
) error {
	for line := range in {
		rec, err := ParseRow(line.text, line.n)
		if err != nil {
			if c.opts.StrictRows {
				return err
			}

			skipped.Add(1)

			continue
		}

		pw := &parsedWork{
			srcRaw:   rec.SourceID,
			tgtRaw:   rec.TargetID,
			srcToken: SanitizeID(rec.SourceID),
			tgtToken: SanitizeID(rec.TargetID),
			relRaw:   rec.RelationID,
			relIDLit: cache.Escape(rec.RelationID),
		}

		pw.srcIDLit = cache.Escape(rec.SourceID)
		pw.tgtIDLit = cache.Escape(rec.TargetID)

		if lbl := PickLabel(pw.srcToken, rec.SourceLabel); lbl.Valid {
			pw.srcLabel = models.Label{Text: cache.Escape(lbl.Text), Valid: true}
		}

		if lbl := PickLabel(pw.tgtToken, rec.TargetLabel); lbl.Valid {
			pw.tgtLabel = models.Label{Text: cache.Escape(lbl.Text), Valid: true}
		}

		if rec.RelationLabel.Valid {
			pw.relLabelLit = cache.Escape(rec.RelationLabel.Text)
		}

		select {
		case out <- pw:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

type pairKey struct {
	src, tgt string
}

type relEntry struct {
	idRaw    string
	idLit    string
	labelLit string
}

// sequencer is the single-writer stage: it owns the dedup set, the pending
// relation window, neighbor tracking and the emitter. Running it on one
// goroutine makes exactly-once node declaration and node-before-edge ordering
// structural properties rather than locking disciplines.
type sequencer struct {
	em    *emitter
	cache *escapeCache
	dedup *dedupSet

	unlabeled map[string]string // raw id -> token, declared without a label
	pending   map[pairKey][]relEntry
	pairOrder []pairKey

	outgoing map[string]map[string]struct{}
	incoming map[string]map[string]struct{}

	records       int64
	edges         int64
	relationships int64
}

func newSequencer(em *emitter, cache *escapeCache) *sequencer {
	return &sequencer{
		em:        em,
		cache:     cache,
		dedup:     newDedupSet(),
		unlabeled: make(map[string]string),
		pending:   make(map[pairKey][]relEntry, relationWindow),
		outgoing:  make(map[string]map[string]struct{}, 1<<20),
		incoming:  make(map[string]map[string]struct{}, 1<<20),
	}
}

func (s *sequencer) process(pw *parsedWork) error {
	s.records++
	metrics.ConvertRecords.Inc()

	if err := s.declareNode(pw.srcRaw, pw.srcToken, pw.srcIDLit, pw.srcLabel); err != nil {
		return err
	}

	if err := s.declareNode(pw.tgtRaw, pw.tgtToken, pw.tgtIDLit, pw.tgtLabel); err != nil {
		return err
	}

	addNeighbor(s.outgoing, pw.srcToken, pw.tgtToken)
	addNeighbor(s.incoming, pw.tgtToken, pw.srcToken)

	key := pairKey{src: pw.srcToken, tgt: pw.tgtToken}
	if _, ok := s.pending[key]; !ok {
		s.pairOrder = append(s.pairOrder, key)
	}

	s.pending[key] = append(s.pending[key], relEntry{
		idRaw:    pw.relRaw,
		idLit:    pw.relIDLit,
		labelLit: pw.relLabelLit,
	})

	if len(s.pending) >= relationWindow {
		return s.flushRelations()
	}

	return nil
}

// declareNode emits the id statement (and label, when present) exactly once
// per distinct node, and backfills labels for nodes first seen without one.
func (s *sequencer) declareNode(rawID, token, idLit string, label models.Label) error {
	first, err := s.dedup.Declare(rawID, token)
	if err != nil {
		return err
	}

	if first {
		if err := s.em.Add(`_:` + token + ` <id> "` + idLit + `" .`); err != nil {
			return err
		}

		metrics.ConvertNodes.Inc()

		if label.Valid {
			return s.em.Add(`_:` + token + ` <label> "` + label.Text + `" .`)
		}

		s.unlabeled[rawID] = token

		return nil
	}

	if label.Valid {
		if tok, ok := s.unlabeled[rawID]; ok {
			delete(s.unlabeled, rawID)
			return s.em.Add(`_:` + tok + ` <label> "` + label.Text + `" .`)
		}
	}

	return nil
}

// flushRelations emits one combined edge statement per pending node pair,
// plus dedicated synonym/antonym predicates where the relation calls for
// them. Pairs flush in first-seen order, keeping output deterministic for a
// given arrival order.
func (s *sequencer) flushRelations() error {
	for _, key := range s.pairOrder {
		entries := s.pending[key]

		seenSyn, seenAnt := false, false

		ids := make([]string, 0, len(entries))
		labels := make([]string, 0, len(entries))

		for _, e := range entries {
			ids = append(ids, e.idLit)
			labels = append(labels, e.labelLit)

			if !seenSyn && strings.Contains(e.idRaw, SynonymMarker) {
				seenSyn = true

				if err := s.em.Add(`_:` + key.src + ` <synonym> _:` + key.tgt + ` .`); err != nil {
					return err
				}
			}

			if !seenAnt && strings.Contains(e.idRaw, AntonymMarker) {
				seenAnt = true

				if err := s.em.Add(`_:` + key.src + ` <antonym> _:` + key.tgt + ` .`); err != nil {
					return err
				}
			}
		}

		stmt := `_:` + key.src + ` <to> _:` + key.tgt +
			` (id="` + strings.Join(ids, combinedSeparator) +
			`", label="` + strings.Join(labels, combinedSeparator) + `") .`

		if err := s.em.Add(stmt); err != nil {
			return err
		}

		s.edges++
		s.relationships += int64(len(entries))
		metrics.ConvertEdges.Inc()
	}

	s.pending = make(map[pairKey][]relEntry, relationWindow)
	s.pairOrder = s.pairOrder[:0]

	return nil
}

// finish flushes pending relations, emits default labels for nodes that
// never received one, emits per-node unique-neighbor counts, and closes the
// emitter.
func (s *sequencer) finish() error {
	if err := s.flushRelations(); err != nil {
		return err
	}

	for rawID, token := range s.unlabeled {
		lit := s.cache.Escape(DefaultLabel(rawID))
		if err := s.em.Add(`_:` + token + ` <label> "` + lit + `" .`); err != nil {
			return err
		}
	}

	if err := s.emitNeighborCounts(); err != nil {
		return err
	}

	return s.em.Close()
}

func (s *sequencer) emitNeighborCounts() error {
	for token, out := range s.outgoing {
		total := len(out)

		for n := range s.incoming[token] {
			if _, ok := out[n]; !ok {
				total++
			}
		}

		if err := s.em.Add(fmt.Sprintf(`_:%s <unique_neighbors_count> "%d"^^<xs:int> .`, token, total)); err != nil {
			return err
		}

		delete(s.incoming, token)
	}

	for token, in := range s.incoming {
		if err := s.em.Add(fmt.Sprintf(`_:%s <unique_neighbors_count> "%d"^^<xs:int> .`, token, len(in))); err != nil {
			return err
		}
	}

	return nil
}

func (s *sequencer) stats() *models.ConvertStats {
	return &models.ConvertStats{
		RecordsRead:   s.records,
		Nodes:         int64(s.dedup.Len()),
		Edges:         s.edges,
		Relationships: s.relationships,
		Batches:       s.em.Batches(),
		BytesWritten:  s.em.BytesWritten(),
	}
}

func addNeighbor(m map[string]map[string]struct{}, from, to string) {
	set, ok := m[from]
	if !ok {
		set = make(map[string]struct{}, 4)
		m[from] = set
	}

	set[to] = struct{}{}
}

package convert

import (
	"strings"

	"github.com/lexigraph/lexigraph/internal/models"
)

// Input column layout of a CSKG-style TSV dump. Column 0 is a per-row edge id
// the converter does not use; trailing label columns are optional.
const (
	colSource        = 1
	colRelation      = 2
	colTarget        = 3
	colSourceLabel   = 4
	colTargetLabel   = 5
	colRelationLabel = 6

	minColumns = 4
)

// ParseRow parses one tab-separated input row into an edge record. It is
// pure: no shared state, same row always yields the same record.
//
// The row is split on tabs only. Pipe and quote bytes inside label columns
// are literal text here; escaping happens at emission time.
func ParseRow(line string, lineNo int) (*models.EdgeRecord, error) {
	cols := strings.Split(line, "\t")
	if len(cols) < minColumns {
		return nil, &models.ParseError{Line: lineNo, Reason: "too few columns"}
	}

	rec := &models.EdgeRecord{
		SourceID:   cols[colSource],
		RelationID: cols[colRelation],
		TargetID:   cols[colTarget],
	}

	if rec.SourceID == "" {
		return nil, &models.ParseError{Line: lineNo, Reason: "empty source id"}
	}

	if rec.RelationID == "" {
		return nil, &models.ParseError{Line: lineNo, Reason: "empty relation id"}
	}

	if rec.TargetID == "" {
		return nil, &models.ParseError{Line: lineNo, Reason: "empty target id"}
	}

	if len(cols) > colSourceLabel {
		rec.SourceLabel = models.NewLabel(cols[colSourceLabel])
	}

	if len(cols) > colTargetLabel {
		rec.TargetLabel = models.NewLabel(cols[colTargetLabel])
	}

	if len(cols) > colRelationLabel {
		rec.RelationLabel = models.NewLabel(cols[colRelationLabel])
	}

	return rec, nil
}

// PickLabel selects the display label from a raw label value that may carry
// pipe-separated alternatives. The alternative whose first occurrence in the
// node token is leftmost wins; if none occurs in the token, there is no label.
func PickLabel(token string, raw models.Label) models.Label {
	if !raw.Valid {
		return models.NoLabel
	}

	if !strings.Contains(raw.Text, "|") {
		return raw
	}

	best := ""
	bestPos := -1

	for _, alt := range strings.Split(raw.Text, "|") {
		if alt == "" {
			continue
		}

		pos := strings.Index(token, alt)
		if pos == -1 {
			continue
		}

		if bestPos == -1 || pos < bestPos {
			best = alt
			bestPos = pos
		}
	}

	if bestPos == -1 {
		return models.NoLabel
	}

	return models.Label{Text: best, Valid: true}
}

// DefaultLabel derives a fallback label from a raw node id: the last
// path-like segment longer than one byte, or the id itself.
func DefaultLabel(id string) string {
	parts := strings.FieldsFunc(id, func(r rune) bool {
		return r == '_' || r == '-' || r == ':' || r == '/'
	})

	for i := len(parts) - 1; i >= 0; i-- {
		if len(parts[i]) > 1 {
			return parts[i]
		}
	}

	return id
}

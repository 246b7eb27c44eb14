package models

// Label is a display string that may be absent. Absence is distinct from an
// empty string: an absent label produces no label statement at all during
// conversion.
type Label struct {
	Text  string
	Valid bool
}

// NewLabel returns a present label. An empty input is treated as absent,
// matching the dump format where empty columns mean "no label".
func NewLabel(s string) Label {
	if s == "" {
		return Label{}
	}
	return Label{Text: s, Valid: true}
}

// NoLabel is the absent-label sentinel.
var NoLabel = Label{}

// EdgeRecord is one parsed input row: a directed edge with optional labels
// on both endpoints and on the relation itself.
type EdgeRecord struct {
	SourceID      string
	TargetID      string
	RelationID    string
	SourceLabel   Label
	TargetLabel   Label
	RelationLabel Label
}

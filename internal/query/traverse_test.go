package query

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/lexigraph/lexigraph/internal/models"
)

const (
	synRel = "/r/Synonym"
	antRel = "/r/Antonym"
)

func TestPolarityTableClassify(t *testing.T) {
	table := DefaultPolarityTable()

	tests := []struct {
		name         string
		relationIDs  []string
		wantWalkable bool
		wantFlip     bool
	}{
		{"synonym", []string{synRel}, true, false},
		{"antonym", []string{antRel}, true, true},
		{"unrelated", []string{"/r/IsA"}, false, false},
		{"synonym among others", []string{"/r/IsA", synRel}, true, false},
		{"both polarities favors synonym", []string{antRel, synRel}, true, false},
		{"empty", nil, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			walkable, flip := table.Classify(tt.relationIDs)
			if walkable != tt.wantWalkable || flip != tt.wantFlip {
				t.Errorf("Classify(%v) = (%v, %v), want (%v, %v)",
					tt.relationIDs, walkable, flip, tt.wantWalkable, tt.wantFlip)
			}
		})
	}
}

func TestDistantNodesDoubleAntonym(t *testing.T) {
	// X -antonym- Y -antonym- Z: two flips cancel, so Z is a distant
	// synonym of X, not a distant antonym.
	store := fixtureStore([]testEdge{
		{"X", "Y", []string{antRel}},
		{"Y", "Z", []string{antRel}},
	}, map[string]string{"X": "x", "Y": "y", "Z": "z"})
	e := NewEngine(store, quietLogger())

	antonyms, err := e.DistantNodes(context.Background(), "X", 2, models.ModeAntonym)
	if err != nil {
		t.Fatalf("DistantNodes antonym: %v", err)
	}
	if len(antonyms) != 0 {
		t.Errorf("expected no antonyms at distance 2, got %v", resultIDs(antonyms))
	}

	synonyms, err := e.DistantNodes(context.Background(), "X", 2, models.ModeSynonym)
	if err != nil {
		t.Fatalf("DistantNodes synonym: %v", err)
	}
	if got := resultIDs(synonyms); !reflect.DeepEqual(got, []string{"Z"}) {
		t.Errorf("synonyms at distance 2 = %v, want [Z]", got)
	}
	if synonyms[0].Label != "z" {
		t.Errorf("label = %q, want %q", synonyms[0].Label, "z")
	}
}

func TestDistantNodesExactDepth(t *testing.T) {
	store := fixtureStore([]testEdge{
		{"a", "b", []string{synRel}},
		{"b", "c", []string{synRel}},
		{"c", "d", []string{antRel}},
	}, nil)
	e := NewEngine(store, quietLogger())

	tests := []struct {
		distance int
		mode     models.TraversalMode
		want     []string
	}{
		{1, models.ModeSynonym, []string{"b"}},
		{2, models.ModeSynonym, []string{"c"}},
		{3, models.ModeSynonym, nil},
		{3, models.ModeAntonym, []string{"d"}},
		{4, models.ModeSynonym, nil},
	}

	for _, tt := range tests {
		got, err := e.DistantNodes(context.Background(), "a", tt.distance, tt.mode)
		if err != nil {
			t.Fatalf("DistantNodes(a, %d, %s): %v", tt.distance, tt.mode, err)
		}
		if ids := resultIDs(got); !reflect.DeepEqual(ids, tt.want) {
			t.Errorf("DistantNodes(a, %d, %s) = %v, want %v", tt.distance, tt.mode, ids, tt.want)
		}
	}
}

func TestDistantNodesFirstPathWins(t *testing.T) {
	// t is reachable at depth 2 through both a synonym path (via p) and an
	// antonym path (via q). The first discovery fixes its polarity.
	store := fixtureStore([]testEdge{
		{"s", "p", []string{synRel}},
		{"s", "q", []string{antRel}},
		{"p", "t", []string{synRel}},
		{"q", "t", []string{synRel}},
	}, nil)
	e := NewEngine(store, quietLogger())

	synonyms, err := e.DistantNodes(context.Background(), "s", 2, models.ModeSynonym)
	if err != nil {
		t.Fatalf("DistantNodes: %v", err)
	}
	if got := resultIDs(synonyms); !reflect.DeepEqual(got, []string{"t"}) {
		t.Errorf("synonyms = %v, want [t]", got)
	}

	antonyms, err := e.DistantNodes(context.Background(), "s", 2, models.ModeAntonym)
	if err != nil {
		t.Fatalf("DistantNodes: %v", err)
	}
	if len(antonyms) != 0 {
		t.Errorf("antonyms = %v, want none", resultIDs(antonyms))
	}
}

func TestDistantNodesStartExcluded(t *testing.T) {
	// a-b-a cycles must not report the start node as its own synonym.
	store := fixtureStore([]testEdge{
		{"a", "b", []string{synRel}},
		{"b", "a", []string{synRel}},
	}, nil)
	e := NewEngine(store, quietLogger())

	got, err := e.DistantNodes(context.Background(), "a", 2, models.ModeSynonym)
	if err != nil {
		t.Fatalf("DistantNodes: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", resultIDs(got))
	}
}

func TestDistantNodesUnknownStart(t *testing.T) {
	store := fixtureStore([]testEdge{{"a", "b", []string{synRel}}}, nil)
	e := NewEngine(store, quietLogger())

	_, err := e.DistantNodes(context.Background(), "missing", 1, models.ModeSynonym)
	if !errors.Is(err, models.ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}
}

func TestDistantNodesInvalidDistance(t *testing.T) {
	store := fixtureStore([]testEdge{{"a", "b", []string{synRel}}}, nil)
	e := NewEngine(store, quietLogger())

	for _, distance := range []int{0, -1, maxTraverseDepth + 1} {
		if _, err := e.DistantNodes(context.Background(), "a", distance, models.ModeSynonym); err == nil {
			t.Errorf("distance %d: expected error", distance)
		}
	}
}

func TestDistantNodesStoreErrorAborts(t *testing.T) {
	wantErr := errors.New("connection reset")
	store := fixtureStore([]testEdge{{"a", "b", []string{synRel}}}, nil)
	store.expandFn = func(context.Context, string, models.Direction, []string) ([]models.NeighborEdge, error) {
		return nil, wantErr
	}
	e := NewEngine(store, quietLogger())

	_, err := e.DistantNodes(context.Background(), "a", 2, models.ModeSynonym)
	if !errors.Is(err, wantErr) {
		t.Errorf("expected %v, got %v", wantErr, err)
	}
}

package store

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/lexigraph/lexigraph/internal/models"
)

func TestSplitCombined(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "single value", in: "/r/IsA", want: []string{"/r/IsA"}},
		{name: "combined", in: "/r/IsA<;>/r/RelatedTo", want: []string{"/r/IsA", "/r/RelatedTo"}},
		{name: "empty", in: "", want: []string{""}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := splitCombined(tc.in); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("splitCombined(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestIntersects(t *testing.T) {
	if !intersects([]string{"a", "b"}, []string{"b", "c"}) {
		t.Error("expected overlap on b")
	}

	if intersects([]string{"a"}, []string{"b"}) {
		t.Error("expected no overlap")
	}

	if intersects(nil, []string{"a"}) {
		t.Error("nil values never intersect")
	}
}

const expandFixture = `{
  "expand": [
    {
      "to": [
        {"id": "/c/en/set", "label": "set", "to|id": "/r/IsA", "to|label": "is a"},
        {"id": "/c/en/void", "label": "", "to|id": "/r/Synonym<;>/r/RelatedTo", "to|label": "synonym<;>related to"}
      ]
    }
  ]
}`

func TestCollectEdgesOut(t *testing.T) {
	var resp expandResp
	if err := json.Unmarshal([]byte(expandFixture), &resp); err != nil {
		t.Fatalf("decoding fixture: %v", err)
	}

	edges := collectEdges(resp, models.DirectionOut, nil)
	if len(edges) != 2 {
		t.Fatalf("got %d edges, want 2", len(edges))
	}

	if edges[0].NeighborID != "/c/en/set" || edges[0].RelationIDs[0] != "/r/IsA" {
		t.Errorf("first edge = %+v", edges[0])
	}

	// Missing labels fall back to the id; combined facets split into lists.
	if edges[1].NeighborLabel != "/c/en/void" {
		t.Errorf("label fallback = %q", edges[1].NeighborLabel)
	}

	if !reflect.DeepEqual(edges[1].RelationIDs, []string{"/r/Synonym", "/r/RelatedTo"}) {
		t.Errorf("relation ids = %v", edges[1].RelationIDs)
	}
}

func TestCollectEdgesFilter(t *testing.T) {
	var resp expandResp
	if err := json.Unmarshal([]byte(expandFixture), &resp); err != nil {
		t.Fatalf("decoding fixture: %v", err)
	}

	edges := collectEdges(resp, models.DirectionOut, []string{"/r/Synonym"})
	if len(edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(edges))
	}

	if edges[0].NeighborID != "/c/en/void" {
		t.Errorf("filtered edge = %+v", edges[0])
	}
}

const expandInFixture = `{
  "expand": [
    {
      "~to": [
        {"id": "/c/en/zero", "label": "zero", "~to|id": "/r/DefinedAs", "~to|label": "defined as"}
      ]
    }
  ]
}`

func TestCollectEdgesIn(t *testing.T) {
	var resp expandResp
	if err := json.Unmarshal([]byte(expandInFixture), &resp); err != nil {
		t.Fatalf("decoding fixture: %v", err)
	}

	edges := collectEdges(resp, models.DirectionIn, nil)
	if len(edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(edges))
	}

	if edges[0].NeighborID != "/c/en/zero" || edges[0].RelationIDs[0] != "/r/DefinedAs" {
		t.Errorf("edge = %+v", edges[0])
	}
}

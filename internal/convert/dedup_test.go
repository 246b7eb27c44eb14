package convert

import (
	"errors"
	"testing"

	"github.com/lexigraph/lexigraph/internal/models"
)

func TestDedupDeclareOnce(t *testing.T) {
	d := newDedupSet()

	// Same id declared many times in mixed orders yields exactly one first.
	ids := []string{"a", "b", "a", "c", "b", "a", "c", "c"}
	firsts := 0

	for _, id := range ids {
		first, err := d.Declare(id, SanitizeID(id))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first {
			firsts++
		}
	}

	if firsts != 3 {
		t.Errorf("got %d first declarations, want 3", firsts)
	}

	if d.Len() != 3 {
		t.Errorf("got %d distinct nodes, want 3", d.Len())
	}
}

func TestDedupCollisionFatal(t *testing.T) {
	d := newDedupSet()

	if _, err := d.Declare("id-one", "tok"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := d.Declare("id-two", "tok")

	var ce *models.CollisionError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CollisionError, got %v", err)
	}

	if ce.Token != "tok" || ce.FirstID != "id-one" || ce.SecondID != "id-two" {
		t.Errorf("collision details = %+v", ce)
	}
}

package convert

import "github.com/lexigraph/lexigraph/internal/models"

// dedupSet decides, for each candidate node declaration, whether it is the
// first sighting of that id. It lives inside the single sequencing stage of
// the pipeline, so it needs no locking; it does need to stay compact, since
// it holds every distinct node id for the whole run.
//
// The set also owns collision detection: two distinct raw ids mapping to one
// token would silently merge nodes, so that is fatal.
type dedupSet struct {
	seen  map[string]struct{} // raw ids already declared
	owner map[string]string   // token -> raw id that claimed it
}

func newDedupSet() *dedupSet {
	return &dedupSet{
		seen:  make(map[string]struct{}, 1<<20),
		owner: make(map[string]string, 1<<20),
	}
}

// Declare reports whether rawID is seen for the first time. Declaring the
// same id any number of times, in any order, yields true exactly once.
func (d *dedupSet) Declare(rawID, token string) (bool, error) {
	if prev, claimed := d.owner[token]; claimed {
		if prev != rawID {
			return false, &models.CollisionError{Token: token, FirstID: prev, SecondID: rawID}
		}
	} else {
		d.owner[token] = rawID
	}

	if _, ok := d.seen[rawID]; ok {
		return false, nil
	}

	d.seen[rawID] = struct{}{}

	return true, nil
}

// Len returns the number of distinct nodes declared so far.
func (d *dedupSet) Len() int { return len(d.seen) }

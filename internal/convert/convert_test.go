package convert

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

const scenarioTSV = "id\tnode1\trelation\tnode2\tnode1_label\tnode2_label\trelation_label\n" +
	"e1\t/c/en/zero\t/r/DefinedAs\t/c/en/empty_set\tzero\tempty set\tdefined as\n" +
	"e2\t/c/en/zero\t/r/IsA\t/c/en/set\tzero\tset\tis a\n"

func runConvert(t *testing.T, opts Options, tsv string) (*bytes.Buffer, []string) {
	t.Helper()

	var out bytes.Buffer

	c := New(opts, quietLog())

	stats, err := c.Convert(context.Background(), strings.NewReader(tsv), &out)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	if stats == nil {
		t.Fatal("nil stats")
	}

	lines := strings.Split(strings.TrimRight(gunzip(t, out.Bytes()), "\n"), "\n")

	return &out, lines
}

func countPrefix(lines []string, contains string) int {
	n := 0
	for _, l := range lines {
		if strings.Contains(l, contains) {
			n++
		}
	}
	return n
}

func TestConvertScenario(t *testing.T) {
	var out bytes.Buffer

	c := New(Options{Workers: 1}, quietLog())

	stats, err := c.Convert(context.Background(), strings.NewReader(scenarioTSV), &out)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	if stats.RecordsRead != 2 || stats.RowsSkipped != 0 {
		t.Errorf("records=%d skipped=%d, want 2/0", stats.RecordsRead, stats.RowsSkipped)
	}

	if stats.Nodes != 3 || stats.Edges != 2 {
		t.Errorf("nodes=%d edges=%d, want 3/2", stats.Nodes, stats.Edges)
	}

	lines := strings.Split(strings.TrimRight(gunzip(t, out.Bytes()), "\n"), "\n")

	if got := countPrefix(lines, " <id> "); got != 3 {
		t.Errorf("got %d node declarations, want 3", got)
	}

	if got := countPrefix(lines, " <to> "); got != 2 {
		t.Errorf("got %d edge statements, want 2", got)
	}

	if got := countPrefix(lines, " <label> "); got != 3 {
		t.Errorf("got %d label statements, want 3", got)
	}

	// Every edge must appear after both endpoint declarations.
	declared := make(map[string]bool)

	for _, l := range lines {
		fields := strings.Fields(l)
		if len(fields) < 3 {
			t.Fatalf("malformed statement %q", l)
		}

		switch fields[1] {
		case "<id>":
			declared[fields[0]] = true
		case "<to>":
			if !declared[fields[0]] || !declared[fields[2]] {
				t.Errorf("edge %q precedes an endpoint declaration", l)
			}
		}
	}

	zeroTok := "_:" + SanitizeID("/c/en/zero")

	if got := countPrefix(lines, zeroTok+" <id> "); got != 1 {
		t.Errorf("source node declared %d times, want exactly 1", got)
	}
}

func TestConvertSkipsAndCountsMalformedRows(t *testing.T) {
	tsv := "id\tnode1\trelation\tnode2\n" +
		"e1\ta\t/r/IsA\tb\n" +
		"bad-row\n" +
		"e2\t\t/r/IsA\tb\n" +
		"e3\tb\t/r/IsA\tc\n"

	var out bytes.Buffer

	c := New(Options{Workers: 1}, quietLog())

	stats, err := c.Convert(context.Background(), strings.NewReader(tsv), &out)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	if stats.RecordsRead != 2 {
		t.Errorf("records = %d, want 2", stats.RecordsRead)
	}

	if stats.RowsSkipped != 2 {
		t.Errorf("skipped = %d, want 2", stats.RowsSkipped)
	}
}

func TestConvertStrictRowsAborts(t *testing.T) {
	tsv := "id\tnode1\trelation\tnode2\n" +
		"e1\ta\t/r/IsA\tb\n" +
		"bad-row\n"

	var out bytes.Buffer

	c := New(Options{Workers: 1, StrictRows: true}, quietLog())

	if _, err := c.Convert(context.Background(), strings.NewReader(tsv), &out); err == nil {
		t.Fatal("expected error for malformed row in strict mode")
	}
}

func TestConvertEmitsPolarityPredicates(t *testing.T) {
	tsv := "id\tnode1\trelation\tnode2\n" +
		"e1\ta\t/r/Synonym\tb\n" +
		"e2\ta\t/r/Antonym\tc\n" +
		"e3\ta\t/r/IsA\td\n"

	_, lines := runConvert(t, Options{Workers: 1}, tsv)

	if got := countPrefix(lines, " <synonym> "); got != 1 {
		t.Errorf("got %d synonym statements, want 1", got)
	}

	if got := countPrefix(lines, " <antonym> "); got != 1 {
		t.Errorf("got %d antonym statements, want 1", got)
	}
}

func TestConvertCombinesParallelRelations(t *testing.T) {
	tsv := "id\tnode1\trelation\tnode2\trel1\trel2\trel_label\n" +
		"e1\ta\t/r/IsA\tb\t\t\tis a\n" +
		"e2\ta\t/r/RelatedTo\tb\t\t\trelated to\n"

	_, lines := runConvert(t, Options{Workers: 1}, tsv)

	var edge string
	for _, l := range lines {
		if strings.Contains(l, " <to> ") {
			edge = l
			break
		}
	}

	if edge == "" {
		t.Fatal("no edge statement emitted")
	}

	if got := countPrefix(lines, " <to> "); got != 1 {
		t.Errorf("got %d edge statements, want the pair combined into 1", got)
	}

	if !strings.Contains(edge, "/r/IsA<;>/r/RelatedTo") {
		t.Errorf("combined facet ids missing: %q", edge)
	}

	if !strings.Contains(edge, "is a<;>related to") {
		t.Errorf("combined facet labels missing: %q", edge)
	}
}

func TestConvertBackfillsAndDefaultsLabels(t *testing.T) {
	tsv := "id\tnode1\trelation\tnode2\tlbl1\tlbl2\n" +
		"e1\t/c/en/dog\t/r/IsA\t/c/en/animal\n" +
		"e2\t/c/en/dog\t/r/RelatedTo\t/c/en/pet\tdog\n"

	_, lines := runConvert(t, Options{Workers: 1}, tsv)

	dogTok := "_:" + SanitizeID("/c/en/dog")

	if got := countPrefix(lines, dogTok+" <label> \"dog\""); got != 1 {
		t.Errorf("backfilled label emitted %d times, want 1", got)
	}

	// Nodes that never saw a label get a default derived from the id.
	animalTok := "_:" + SanitizeID("/c/en/animal")

	if got := countPrefix(lines, animalTok+" <label> \"animal\""); got != 1 {
		t.Errorf("default label for animal emitted %d times, want 1", got)
	}
}

func TestConvertEmitsNeighborCounts(t *testing.T) {
	tsv := "id\tnode1\trelation\tnode2\n" +
		"e1\ta\t/r/IsA\tb\n" +
		"e2\tb\t/r/IsA\ta\n" +
		"e3\ta\t/r/IsA\tc\n"

	_, lines := runConvert(t, Options{Workers: 1}, tsv)

	// a has neighbors {b, c}; b and c have {a}.
	if got := countPrefix(lines, `_:a <unique_neighbors_count> "2"`); got != 1 {
		t.Errorf("neighbor count for a: %d statements", got)
	}

	if got := countPrefix(lines, `_:b <unique_neighbors_count> "1"`); got != 1 {
		t.Errorf("neighbor count for b: %d statements", got)
	}
}

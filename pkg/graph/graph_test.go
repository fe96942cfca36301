package graph

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/paperlens/backend/pkg/common"
)

// fakeStore serves fixture neighbors from maps keyed by anchor paper id.
// When failQueries is set every neighbor query returns an error while point
// lookups keep working.
type fakeStore struct {
	papers      map[string]*common.Paper
	authors     map[string][]common.AuthorNeighbor
	citing      map[string][]common.Paper
	cited       map[string][]common.Paper
	knowledge   map[string][]common.KnowledgeNeighbor
	content     map[string][]common.ContentNeighbor
	failQueries bool
}

var errFixture = errors.New("fixture query failure")

func (f *fakeStore) GetPaper(_ context.Context, id string) (*common.Paper, error) {
	return f.papers[id], nil
}

func (f *fakeStore) AuthorNeighbors(_ context.Context, id string, limit int) ([]common.AuthorNeighbor, error) {
	if f.failQueries {
		return nil, errFixture
	}
	return capSlice(f.authors[id], limit), nil
}

func (f *fakeStore) CitingPapers(_ context.Context, id string, limit int) ([]common.Paper, error) {
	if f.failQueries {
		return nil, errFixture
	}
	return capSlice(f.citing[id], limit), nil
}

func (f *fakeStore) CitedPapers(_ context.Context, id string, limit int) ([]common.Paper, error) {
	if f.failQueries {
		return nil, errFixture
	}
	return capSlice(f.cited[id], limit), nil
}

func (f *fakeStore) KnowledgeSimilarPapers(_ context.Context, id string, limit int) ([]common.KnowledgeNeighbor, error) {
	if f.failQueries {
		return nil, errFixture
	}
	return capSlice(f.knowledge[id], limit), nil
}

func (f *fakeStore) ContentSimilarPapers(_ context.Context, id string, limit int) ([]common.ContentNeighbor, error) {
	if f.failQueries {
		return nil, errFixture
	}
	return capSlice(f.content[id], limit), nil
}

func capSlice[T any](s []T, limit int) []T {
	if limit < len(s) {
		return s[:limit]
	}
	return s
}

func paper(id string) common.Paper {
	return common.Paper{ID: id, Title: "Paper " + id}
}

func authorNeighbor(id string, shared int) common.AuthorNeighbor {
	return common.AuthorNeighbor{
		Paper:             paper(id),
		SharedAuthorCount: shared,
		SharedAuthorNames: []string{"A. Author"},
	}
}

// denseStore builds a corpus where the center and every level-1 paper have
// neighbors in all four relations, so one fixture covers every mode.
func denseStore(centerID string, fanout int) *fakeStore {
	f := &fakeStore{
		papers:    map[string]*common.Paper{},
		authors:   map[string][]common.AuthorNeighbor{},
		citing:    map[string][]common.Paper{},
		cited:     map[string][]common.Paper{},
		knowledge: map[string][]common.KnowledgeNeighbor{},
		content:   map[string][]common.ContentNeighbor{},
	}
	center := paper(centerID)
	f.papers[centerID] = &center

	anchors := []string{centerID}
	for i := 0; i < fanout; i++ {
		anchors = append(anchors, fmt.Sprintf("l1-%d", i))
	}
	for _, anchor := range anchors {
		for i := 0; i < fanout; i++ {
			var id string
			if anchor == centerID {
				id = fmt.Sprintf("l1-%d", i)
			} else {
				id = fmt.Sprintf("%s-l2-%d", anchor, i)
			}
			p := paper(id)
			f.papers[id] = &p
			f.authors[anchor] = append(f.authors[anchor], authorNeighbor(id, 2))
			if i%2 == 0 {
				f.citing[anchor] = append(f.citing[anchor], p)
			} else {
				f.cited[anchor] = append(f.cited[anchor], p)
			}
			f.knowledge[anchor] = append(f.knowledge[anchor], common.KnowledgeNeighbor{
				Paper: p, SimilarityScore: 0.7, KnowledgeConceptCount: 3,
			})
			f.content[anchor] = append(f.content[anchor], common.ContentNeighbor{
				Paper: p, SimilarityScore: 0.6,
			})
		}
	}
	return f
}

func TestGenerateUnsupportedMode(t *testing.T) {
	t.Parallel()

	b := NewBuilder(denseStore("c", 2))
	_, err := b.Generate(context.Background(), "c", Mode("citations"), 2, 30)

	var modeErr *UnsupportedModeError
	if !errors.As(err, &modeErr) {
		t.Fatalf("got %v, want UnsupportedModeError", err)
	}
	if modeErr.Mode != "citations" {
		t.Fatalf("got mode %q, want %q", modeErr.Mode, "citations")
	}
}

func TestGenerateCenterNotFound(t *testing.T) {
	t.Parallel()

	b := NewBuilder(denseStore("c", 2))
	_, err := b.Generate(context.Background(), "missing", ModeAuthor, 2, 30)

	var nfErr *NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("got %v, want NotFoundError", err)
	}
	if nfErr.PaperID != "missing" {
		t.Fatalf("got paper id %q, want %q", nfErr.PaperID, "missing")
	}
}

func TestGenerateCenterOnly(t *testing.T) {
	t.Parallel()

	center := paper("lonely")
	b := NewBuilder(&fakeStore{papers: map[string]*common.Paper{"lonely": &center}})

	res, err := b.Generate(context.Background(), "lonely", ModeSimilar, 3, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TotalNodes != 1 || res.TotalEdges != 0 {
		t.Fatalf("got %d nodes / %d edges, want 1 / 0", res.TotalNodes, res.TotalEdges)
	}
	n := res.Nodes[0]
	if n.ID != "lonely" || n.Level != 0 || n.Color != colorCenter || n.Size != 20 {
		t.Fatalf("unexpected center node: %+v", n)
	}
}

func TestGenerateGraphInvariants(t *testing.T) {
	t.Parallel()

	for _, mode := range Modes() {
		mode := mode
		t.Run(string(mode), func(t *testing.T) {
			t.Parallel()

			const maxNodes = 20
			b := NewBuilder(denseStore("c", 6))
			res, err := b.Generate(context.Background(), "c", mode, 2, maxNodes)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if res.TotalNodes != len(res.Nodes) || res.TotalEdges != len(res.Edges) {
				t.Fatalf("totals %d/%d do not match slices %d/%d",
					res.TotalNodes, res.TotalEdges, len(res.Nodes), len(res.Edges))
			}
			if res.TotalNodes > maxNodes {
				t.Fatalf("got %d nodes, budget is %d", res.TotalNodes, maxNodes)
			}
			if res.Mode != mode || res.CenterPaperID != "c" {
				t.Fatalf("unexpected result header: mode=%q center=%q", res.Mode, res.CenterPaperID)
			}

			seen := map[string]int{}
			centerCount := 0
			for _, n := range res.Nodes {
				seen[n.ID]++
				if n.Level == 0 {
					centerCount++
					if n.ID != "c" {
						t.Fatalf("level-0 node is %q, want center", n.ID)
					}
				}
				if n.Paper == nil || n.Paper.ID != n.ID {
					t.Fatalf("node %q has inconsistent paper metadata", n.ID)
				}
			}
			if centerCount != 1 {
				t.Fatalf("got %d level-0 nodes, want exactly 1", centerCount)
			}
			for id, count := range seen {
				if count != 1 {
					t.Fatalf("paper %q appears %d times", id, count)
				}
			}
			if len(res.Edges) != len(res.Nodes)-1 {
				t.Fatalf("got %d edges for %d nodes, want one per non-center node",
					len(res.Edges), len(res.Nodes))
			}
			for _, e := range res.Edges {
				if seen[e.Source] == 0 || seen[e.Target] == 0 {
					t.Fatalf("edge %s->%s references a missing node", e.Source, e.Target)
				}
				if e.Weight < 0 || e.Weight > 1 {
					t.Fatalf("edge weight %f out of range", e.Weight)
				}
				if e.Meta == nil {
					t.Fatalf("edge %s->%s has no metadata", e.Source, e.Target)
				}
			}
		})
	}
}

func TestGenerateDepthOneSkipsSecondLevel(t *testing.T) {
	t.Parallel()

	b := NewBuilder(denseStore("c", 4))
	res, err := b.Generate(context.Background(), "c", ModeAuthor, 1, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, n := range res.Nodes {
		if n.Level > 1 {
			t.Fatalf("node %q at level %d, depth 1 must stop after level 1", n.ID, n.Level)
		}
	}
	for _, e := range res.Edges {
		if e.Level > 1 {
			t.Fatalf("edge %s->%s at level %d, depth 1 must stop after level 1", e.Source, e.Target, e.Level)
		}
	}
}

func TestGenerateRepeatable(t *testing.T) {
	t.Parallel()

	b := NewBuilder(denseStore("c", 5))
	for _, mode := range Modes() {
		first, err := b.Generate(context.Background(), "c", mode, 2, 20)
		if err != nil {
			t.Fatalf("mode %s: unexpected error: %v", mode, err)
		}
		second, err := b.Generate(context.Background(), "c", mode, 2, 20)
		if err != nil {
			t.Fatalf("mode %s: unexpected error: %v", mode, err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("mode %s: repeated generation differs:\nfirst:  %+v\nsecond: %+v", mode, first, second)
		}
	}
}

func TestGenerateSecondLevel(t *testing.T) {
	t.Parallel()

	b := NewBuilder(denseStore("c", 3))
	res, err := b.Generate(context.Background(), "c", ModeKeyKnowledge, 2, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	levels := map[int]int{}
	for _, n := range res.Nodes {
		levels[n.Level]++
	}
	if levels[2] == 0 {
		t.Fatalf("got no level-2 nodes, levels: %v", levels)
	}
	for _, n := range res.Nodes {
		if n.Level == 2 && (n.Color != colorLevelTwo || n.Size != 10) {
			t.Fatalf("level-2 node %q has color %q size %d", n.ID, n.Color, n.Size)
		}
	}
	for _, e := range res.Edges {
		if e.Level == 2 && e.Color != edgeColorLevelTwo {
			t.Fatalf("level-2 edge has color %q", e.Color)
		}
	}
}

func TestGenerateNodeBudget(t *testing.T) {
	t.Parallel()

	for _, maxNodes := range []int{1, 2, 5, 100} {
		maxNodes := maxNodes
		t.Run(fmt.Sprintf("max%d", maxNodes), func(t *testing.T) {
			t.Parallel()

			b := NewBuilder(denseStore("c", 8))
			res, err := b.Generate(context.Background(), "c", ModeSimilar, 3, maxNodes)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.TotalNodes > maxNodes {
				t.Fatalf("got %d nodes, budget is %d", res.TotalNodes, maxNodes)
			}
			if res.TotalNodes == 0 {
				t.Fatal("graph lost its center node")
			}
		})
	}
}

func TestGenerateDegradedQueries(t *testing.T) {
	t.Parallel()

	f := denseStore("c", 4)
	f.failQueries = true

	for _, mode := range Modes() {
		res, err := NewBuilder(f).Generate(context.Background(), "c", mode, 2, 30)
		if err != nil {
			t.Fatalf("mode %s: degraded queries must not fail generation: %v", mode, err)
		}
		if res.TotalNodes != 1 || res.TotalEdges != 0 {
			t.Fatalf("mode %s: got %d nodes / %d edges, want center only", mode, res.TotalNodes, res.TotalEdges)
		}
	}
}

func TestGenerateDeduplicatesAcrossLevels(t *testing.T) {
	t.Parallel()

	// l1-b's similar papers include the center and l1-a, both already in
	// the graph; only the fresh paper may be added.
	center := paper("c")
	a, bp, fresh := paper("l1-a"), paper("l1-b"), paper("fresh")
	f := &fakeStore{
		papers: map[string]*common.Paper{"c": &center},
		content: map[string][]common.ContentNeighbor{
			"c": {
				{Paper: a, SimilarityScore: 0.9},
				{Paper: bp, SimilarityScore: 0.8},
			},
			"l1-b": {
				{Paper: center, SimilarityScore: 0.9},
				{Paper: a, SimilarityScore: 0.8},
				{Paper: fresh, SimilarityScore: 0.7},
			},
		},
	}

	res, err := NewBuilder(f).Generate(context.Background(), "c", ModeSimilar, 2, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TotalNodes != 4 {
		t.Fatalf("got %d nodes, want 4 (center, two level-1, one level-2)", res.TotalNodes)
	}
	if res.TotalEdges != 3 {
		t.Fatalf("got %d edges, want 3", res.TotalEdges)
	}
}

func TestGenerateCitationEdgeDirection(t *testing.T) {
	t.Parallel()

	center := paper("c")
	src, dst := paper("upstream"), paper("downstream")
	f := &fakeStore{
		papers: map[string]*common.Paper{"c": &center},
		citing: map[string][]common.Paper{"c": {src}},
		cited:  map[string][]common.Paper{"c": {dst}},
	}

	res, err := NewBuilder(f).Generate(context.Background(), "c", ModeCiting, 1, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Edges) != 2 {
		t.Fatalf("got %d edges, want 2", len(res.Edges))
	}

	byTarget := map[string]Edge{}
	for _, e := range res.Edges {
		byTarget[e.Target] = e
	}
	in, ok := byTarget["c"]
	if !ok || in.Source != "upstream" {
		t.Fatalf("incoming citation must run upstream->c, got %+v", res.Edges)
	}
	out, ok := byTarget["downstream"]
	if !ok || out.Source != "c" {
		t.Fatalf("outgoing citation must run c->downstream, got %+v", res.Edges)
	}

	inMeta, ok := in.Meta.(CitationEdgeMeta)
	if !ok || inMeta.CitationType != "incoming" {
		t.Fatalf("got incoming meta %+v", in.Meta)
	}
	outMeta, ok := out.Meta.(CitationEdgeMeta)
	if !ok || outMeta.CitationType != "outgoing" {
		t.Fatalf("got outgoing meta %+v", out.Meta)
	}
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	for _, mode := range Modes() {
		got, err := ParseMode(string(mode))
		if err != nil || got != mode {
			t.Fatalf("ParseMode(%q) = %q, %v", mode, got, err)
		}
	}
	if _, err := ParseMode("references"); err == nil {
		t.Fatal("ParseMode must reject unknown modes")
	}
}

func TestClampWeight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.42, 0.42},
		{1, 1},
		{1.7, 1},
	}
	for _, tc := range tests {
		if got := clampWeight(tc.in); got != tc.want {
			t.Fatalf("clampWeight(%f) = %f, want %f", tc.in, got, tc.want)
		}
	}
}

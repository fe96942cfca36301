package graph

import (
	"context"
	"fmt"

	"github.com/paperlens/backend/pkg/common"
	"github.com/paperlens/backend/pkg/logger"
	"github.com/paperlens/backend/pkg/store"
)

// Node is one paper in a generated graph, decorated with its visual
// attributes. The full paper snapshot rides along as metadata for the
// detail panel on the frontend.
type Node struct {
	ID    string        `json:"id"`
	Label string        `json:"label"`
	Type  string        `json:"type"`
	Size  int           `json:"size"`
	Color string        `json:"color"`
	Level int           `json:"level"`
	Paper *common.Paper `json:"metadata"`
}

// Edge is one relationship in a generated graph. For citations the edge
// runs from the citing paper to the cited paper; for the other relations it
// runs from the paper that discovered the neighbor to the neighbor.
type Edge struct {
	Source   string   `json:"source"`
	Target   string   `json:"target"`
	Type     string   `json:"type"`
	Weight   float64  `json:"weight"`
	Label    string   `json:"label"`
	Color    string   `json:"color"`
	Relation string   `json:"relation"`
	Level    int      `json:"level"`
	Meta     EdgeMeta `json:"metadata"`
}

// Result is a complete, presentation-ready graph for one generate call.
type Result struct {
	Nodes         []Node `json:"nodes"`
	Edges         []Edge `json:"edges"`
	Mode          Mode   `json:"mode"`
	CenterPaperID string `json:"center_paper_id"`
	TotalNodes    int    `json:"total_nodes"`
	TotalEdges    int    `json:"total_edges"`
}

// scoredNeighbor is one candidate produced by a relation strategy, already
// scored and carrying its edge metadata. reversed marks edges that run from
// the neighbor to the anchor (papers citing the anchor).
type scoredNeighbor struct {
	paper    common.Paper
	weight   float64
	label    string
	relation string
	variant  string
	reversed bool
	meta     EdgeMeta
}

// relationStrategy finds and scores neighbors for one relation type. A
// strategy never fails: repository errors are logged and reduced to an
// empty result so one broken relation query cannot abort graph generation.
type relationStrategy interface {
	edgeType() string
	neighbors(ctx context.Context, anchorID string, limit, level int) []scoredNeighbor
	secondaryLimit() int
}

// Builder generates relationship graphs around a center paper. Builders are
// stateless apart from the store handle and safe for concurrent use; every
// Generate call computes its graph from scratch.
type Builder struct {
	store      store.PaperStore
	strategies map[Mode]relationStrategy
}

// NewBuilder creates a Builder reading from the given store.
func NewBuilder(s store.PaperStore) *Builder {
	return &Builder{
		store: s,
		strategies: map[Mode]relationStrategy{
			ModeAuthor:       &authorStrategy{store: s},
			ModeCiting:       &citationStrategy{store: s},
			ModeKeyKnowledge: &knowledgeStrategy{store: s},
			ModeSimilar:      &similarStrategy{store: s},
		},
	}
}

// Generate builds the relation graph for the given center paper and mode.
//
// depth below 2 stops after level 1; the caller is expected to have
// validated depth (1..3) and maxNodes (1..100) already. The level-1
// expansion gets half the node budget (the citation strategy splits its
// share between the two directions); each level-1 node then gets a small
// fixed budget for level 2. Candidates are admitted one at a time while the
// node budget allows, so a strategy may be asked for more neighbors than
// end up in the graph — pre-truncating the batches instead would change
// which candidates win the remaining slots.
//
// Generate fails only when the center paper is missing or the mode is
// unknown. Degraded neighbor queries show up as a sparser graph, not as an
// error.
func (b *Builder) Generate(ctx context.Context, paperID string, mode Mode, depth, maxNodes int) (*Result, error) {
	strat, ok := b.strategies[mode]
	if !ok {
		return nil, &UnsupportedModeError{Mode: string(mode)}
	}

	center, err := b.store.GetPaper(ctx, paperID)
	if err != nil {
		return nil, fmt.Errorf("failed to load center paper: %w", err)
	}
	if center == nil {
		return nil, &NotFoundError{PaperID: paperID}
	}

	t := newTraversal(mode, paperID, maxNodes)
	t.addCenter(center)

	for _, n := range strat.neighbors(ctx, paperID, maxNodes/2, 1) {
		t.insert(paperID, n, 1, strat.edgeType())
	}

	if depth >= 2 {
		// Snapshot the level-1 nodes before expanding: papers discovered
		// at level 2 are terminal and never expanded in the same pass.
		parents := make([]string, len(t.levelOne))
		copy(parents, t.levelOne)

		for _, parentID := range parents {
			if t.full() {
				break
			}
			for _, n := range strat.neighbors(ctx, parentID, strat.secondaryLimit(), 2) {
				t.insert(parentID, n, 2, strat.edgeType())
			}
		}
	}

	res := t.result()
	logger.Debug("[Graph] Generated graph",
		"mode", mode, "center", paperID, "depth", depth,
		"nodes", res.TotalNodes, "edges", res.TotalEdges,
	)
	return res, nil
}

type traversal struct {
	mode     Mode
	centerID string
	maxNodes int
	nodes    []Node
	edges    []Edge
	visited  map[string]struct{}
	levelOne []string
}

func newTraversal(mode Mode, centerID string, maxNodes int) *traversal {
	return &traversal{
		mode:     mode,
		centerID: centerID,
		maxNodes: maxNodes,
		visited:  make(map[string]struct{}),
	}
}

func (t *traversal) full() bool {
	return len(t.nodes) >= t.maxNodes
}

func (t *traversal) addCenter(p *common.Paper) {
	t.nodes = append(t.nodes, Node{
		ID:    p.ID,
		Label: truncateLabel(p.Title, 0),
		Type:  "paper",
		Size:  nodeSize(0),
		Color: nodeColor(t.mode, 0, ""),
		Level: 0,
		Paper: p,
	})
	t.visited[p.ID] = struct{}{}
}

// insert admits one candidate: skipped when already visited or when the
// node budget is exhausted. The edge is only recorded together with its
// node, so edges never reference papers outside the node set.
func (t *traversal) insert(parentID string, n scoredNeighbor, level int, edgeType string) {
	if _, seen := t.visited[n.paper.ID]; seen {
		return
	}
	if t.full() {
		return
	}

	paper := n.paper
	t.nodes = append(t.nodes, Node{
		ID:    paper.ID,
		Label: truncateLabel(paper.Title, level),
		Type:  "paper",
		Size:  nodeSize(level),
		Color: nodeColor(t.mode, level, n.variant),
		Level: level,
		Paper: &paper,
	})
	t.visited[paper.ID] = struct{}{}
	if level == 1 {
		t.levelOne = append(t.levelOne, paper.ID)
	}

	source, target := parentID, paper.ID
	if n.reversed {
		source, target = paper.ID, parentID
	}
	t.edges = append(t.edges, Edge{
		Source:   source,
		Target:   target,
		Type:     edgeType,
		Weight:   clampWeight(n.weight),
		Label:    n.label,
		Color:    edgeColor(t.mode, level, n.variant),
		Relation: n.relation,
		Level:    level,
		Meta:     n.meta,
	})
}

func (t *traversal) result() *Result {
	nodes := t.nodes
	if nodes == nil {
		nodes = []Node{}
	}
	edges := t.edges
	if edges == nil {
		edges = []Edge{}
	}
	return &Result{
		Nodes:         nodes,
		Edges:         edges,
		Mode:          t.mode,
		CenterPaperID: t.centerID,
		TotalNodes:    len(nodes),
		TotalEdges:    len(edges),
	}
}

func clampWeight(w float64) float64 {
	if w < 0 {
		return 0
	}
	if w > 1 {
		return 1
	}
	return w
}

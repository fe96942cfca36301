package graph

import (
	"context"
	"fmt"

	"github.com/paperlens/backend/pkg/common"
	"github.com/paperlens/backend/pkg/logger"
	"github.com/paperlens/backend/pkg/store"
)

const (
	variantIncoming = "incoming"
	variantOutgoing = "outgoing"
)

// citationStrategy finds papers on both sides of the citation relation. The
// two directions are queried independently, each with half the limit, and
// either one may degrade without affecting the other.
type citationStrategy struct {
	store store.PaperStore
}

func (s *citationStrategy) edgeType() string { return "cites" }

// secondaryLimit is split between the two directions, 3 papers each.
func (s *citationStrategy) secondaryLimit() int { return 6 }

func (s *citationStrategy) neighbors(ctx context.Context, anchorID string, limit, level int) []scoredNeighbor {
	half := limit / 2
	out := make([]scoredNeighbor, 0, limit)

	incoming, err := s.store.CitingPapers(ctx, anchorID, half)
	if err != nil {
		logger.Error("[Graph] Citing paper query failed", "paper_id", anchorID, "err", err)
		incoming = nil
	}
	for _, p := range incoming {
		out = append(out, s.neighbor(p, level, true))
	}

	outgoing, err := s.store.CitedPapers(ctx, anchorID, half)
	if err != nil {
		logger.Error("[Graph] Cited paper query failed", "paper_id", anchorID, "err", err)
		outgoing = nil
	}
	for _, p := range outgoing {
		out = append(out, s.neighbor(p, level, false))
	}

	return out
}

func (s *citationStrategy) neighbor(p common.Paper, level int, incoming bool) scoredNeighbor {
	variant := variantOutgoing
	if incoming {
		variant = variantIncoming
	}

	citationType := variant
	strength := "medium"
	var relation string
	switch {
	case level >= 2 && incoming:
		citationType = "second_order_incoming"
		strength = "weak"
		relation = fmt.Sprintf("Indirect citation via '%s'", shortTitle(p.Title, 20))
	case level >= 2:
		citationType = "second_order_outgoing"
		strength = "weak"
		relation = fmt.Sprintf("Indirect citation to '%s'", shortTitle(p.Title, 20))
	case incoming:
		relation = fmt.Sprintf("Paper '%s' cites the center paper", shortTitle(p.Title, 30))
	default:
		relation = fmt.Sprintf("Center paper cites '%s'", shortTitle(p.Title, 30))
	}

	return scoredNeighbor{
		paper:    p,
		weight:   1.0,
		label:    "cites",
		relation: relation,
		variant:  variant,
		reversed: incoming,
		meta: CitationEdgeMeta{
			CitationType:         citationType,
			RelationshipStrength: strength,
		},
	}
}

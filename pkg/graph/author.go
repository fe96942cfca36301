package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/paperlens/backend/pkg/logger"
	"github.com/paperlens/backend/pkg/store"
)

// authorStrategy finds papers sharing at least one author with the anchor.
type authorStrategy struct {
	store store.PaperStore
}

func (s *authorStrategy) edgeType() string { return "author" }

func (s *authorStrategy) secondaryLimit() int { return 5 }

func (s *authorStrategy) neighbors(ctx context.Context, anchorID string, limit, level int) []scoredNeighbor {
	rows, err := s.store.AuthorNeighbors(ctx, anchorID, limit)
	if err != nil {
		logger.Error("[Graph] Author neighbor query failed", "paper_id", anchorID, "err", err)
		return nil
	}

	out := make([]scoredNeighbor, 0, len(rows))
	for _, r := range rows {
		out = append(out, scoredNeighbor{
			paper:    r.Paper,
			weight:   min(float64(r.SharedAuthorCount)/5.0, 1.0),
			label:    "same author",
			relation: authorRelation(r.SharedAuthorNames, level),
			meta: AuthorEdgeMeta{
				SharedAuthorCount:     r.SharedAuthorCount,
				SharedAuthorNames:     r.SharedAuthorNames,
				AvgAuthorProductivity: r.AvgAuthorProductivity,
				SameCluster:           r.SameCluster,
				CollaborationStrength: collaborationStrength(r.SharedAuthorCount),
			},
		})
	}
	return out
}

func collaborationStrength(sharedCount int) string {
	switch {
	case sharedCount >= 3:
		return "strong"
	case sharedCount == 2:
		return "medium"
	default:
		return "weak"
	}
}

func authorRelation(names []string, level int) string {
	shown := 3
	verb := "co-authored this paper"
	if level >= 2 {
		shown = 2
		verb = "also authored this paper"
	}

	listed := names
	if len(names) > shown {
		listed = names[:shown]
	}
	text := strings.Join(listed, ", ")
	if extra := len(names) - shown; extra > 0 {
		text = fmt.Sprintf("%s and %d more", text, extra)
	}
	return fmt.Sprintf("%s %s", text, verb)
}

package graph

import (
	"context"
	"fmt"

	"github.com/paperlens/backend/pkg/logger"
	"github.com/paperlens/backend/pkg/store"
)

// similarStrategy finds papers by the composite content score blending
// embedding similarity with cluster, topic and spatial signals. Scoring and
// the 0.1 floor live in the store query.
type similarStrategy struct {
	store store.PaperStore
}

func (s *similarStrategy) edgeType() string { return "similar" }

func (s *similarStrategy) secondaryLimit() int { return 5 }

func (s *similarStrategy) neighbors(ctx context.Context, anchorID string, limit, level int) []scoredNeighbor {
	rows, err := s.store.ContentSimilarPapers(ctx, anchorID, limit)
	if err != nil {
		logger.Error("[Graph] Content similarity query failed", "paper_id", anchorID, "err", err)
		return nil
	}

	out := make([]scoredNeighbor, 0, len(rows))
	for _, r := range rows {
		similarityType := "content_based"
		relation := fmt.Sprintf("%.1f%% similarity to center paper", r.SimilarityScore*100)
		if level >= 2 {
			similarityType = "indirect"
			relation = fmt.Sprintf("Indirect similarity %.1f%%", r.SimilarityScore*100)
		}

		out = append(out, scoredNeighbor{
			paper:    r.Paper,
			weight:   r.SimilarityScore,
			label:    fmt.Sprintf("similarity: %.2f", r.SimilarityScore),
			relation: relation,
			meta: SimilarityEdgeMeta{
				SimilarityScore:      r.SimilarityScore,
				SimilarityType:       similarityType,
				RelationshipStrength: contentStrength(r.SimilarityScore),
			},
		})
	}
	return out
}

func contentStrength(score float64) string {
	switch {
	case score > 0.8:
		return "strong"
	case score > 0.5:
		return "medium"
	default:
		return "weak"
	}
}

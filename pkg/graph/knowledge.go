package graph

import (
	"context"
	"fmt"

	"github.com/paperlens/backend/pkg/logger"
	"github.com/paperlens/backend/pkg/store"
)

// knowledgeStrategy finds papers whose averaged key-knowledge embeddings sit
// close to the anchor's. The similarity floor of 0.3 is enforced by the
// store query.
type knowledgeStrategy struct {
	store store.PaperStore
}

func (s *knowledgeStrategy) edgeType() string { return "key_knowledge" }

func (s *knowledgeStrategy) secondaryLimit() int { return 5 }

func (s *knowledgeStrategy) neighbors(ctx context.Context, anchorID string, limit, level int) []scoredNeighbor {
	rows, err := s.store.KnowledgeSimilarPapers(ctx, anchorID, limit)
	if err != nil {
		logger.Error("[Graph] Knowledge similarity query failed", "paper_id", anchorID, "err", err)
		return nil
	}

	out := make([]scoredNeighbor, 0, len(rows))
	for _, r := range rows {
		similarityType := "embedding_based"
		relation := fmt.Sprintf("%.1f%% knowledge similarity based on embeddings", r.SimilarityScore*100)
		if level >= 2 {
			similarityType = "indirect_embedding"
			relation = fmt.Sprintf("Indirect knowledge similarity %.1f%%", r.SimilarityScore*100)
		}

		out = append(out, scoredNeighbor{
			paper:    r.Paper,
			weight:   r.SimilarityScore,
			label:    "shared knowledge",
			relation: relation,
			meta: KnowledgeEdgeMeta{
				SimilarityScore:       r.SimilarityScore,
				KnowledgeConceptCount: r.KnowledgeConceptCount,
				SimilarityType:        similarityType,
				RelationshipStrength:  knowledgeStrength(r.SimilarityScore),
			},
		})
	}
	return out
}

func knowledgeStrength(score float64) string {
	switch {
	case score > 0.8:
		return "strong"
	case score > 0.6:
		return "medium"
	default:
		return "weak"
	}
}

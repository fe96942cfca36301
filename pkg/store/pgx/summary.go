package pgx

import (
	"context"

	"github.com/paperlens/backend/pkg/common"
)

const relationSummarySQL = `SELECT
	(SELECT COUNT(DISTINCT a2.paper_id)
		FROM authors a1
		JOIN authors a2 ON a2.name = a1.name
		WHERE a1.paper_id = $1 AND a2.paper_id <> $1) AS author_neighbor_count,
	(SELECT COUNT(*) FROM citations WHERE cited_id = $1) AS citing_count,
	(SELECT COUNT(*) FROM citations WHERE citing_id = $1) AS cited_count,
	(SELECT COUNT(*) FROM key_knowledge WHERE paper_id = $1) AS key_knowledge_count,
	(SELECT embedding IS NOT NULL FROM papers WHERE paper_id = $1) AS has_embedding`

// RelationSummary counts the relation candidates around one paper in a
// single round trip. The caller is expected to have checked that the paper
// exists.
func (s *PaperDBStore) RelationSummary(ctx context.Context, id string) (*common.RelationSummary, error) {
	var (
		out          common.RelationSummary
		hasEmbedding *bool
	)
	err := s.conn.QueryRow(ctx, relationSummarySQL, id).Scan(
		&out.AuthorNeighborCount,
		&out.CitingCount,
		&out.CitedCount,
		&out.KeyKnowledgeCount,
		&hasEmbedding,
	)
	if err != nil {
		return nil, err
	}
	if hasEmbedding != nil {
		out.HasEmbedding = *hasEmbedding
	}
	return &out, nil
}

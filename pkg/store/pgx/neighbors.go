package pgx

import (
	"context"

	"github.com/paperlens/backend/pkg/common"
)

const authorNeighborsSQL = `WITH anchor AS (
	SELECT cluster FROM papers WHERE paper_id = $1
), anchor_authors AS (
	SELECT DISTINCT name FROM authors WHERE paper_id = $1
), author_output AS (
	SELECT a.name, COUNT(DISTINCT a.paper_id) AS paper_count
	FROM authors a
	JOIN anchor_authors aa ON aa.name = a.name
	GROUP BY a.name
), related AS (
	SELECT ` + paperCols + `,
		COUNT(DISTINCT a.name) AS shared_authors_count,
		array_agg(DISTINCT a.name) AS shared_author_names,
		AVG(ao.paper_count) AS avg_author_productivity,
		(anchor.cluster IS NOT NULL AND p.cluster IS NOT DISTINCT FROM anchor.cluster) AS same_cluster
	FROM papers p
	JOIN authors a ON a.paper_id = p.paper_id
	JOIN anchor_authors aa ON aa.name = a.name
	JOIN author_output ao ON ao.name = a.name
	CROSS JOIN anchor
	WHERE p.paper_id <> $1
	GROUP BY p.paper_id, anchor.cluster
)
SELECT * FROM related
ORDER BY shared_authors_count DESC, same_cluster DESC, citation_count DESC, avg_author_productivity DESC
LIMIT $2`

// AuthorNeighbors finds papers sharing at least one author with the anchor
// paper. Productivity is the mean, over the shared authors, of each author's
// total paper count in the corpus.
func (s *PaperDBStore) AuthorNeighbors(ctx context.Context, id string, limit int) ([]common.AuthorNeighbor, error) {
	rows, err := s.conn.Query(ctx, authorNeighborsSQL, id, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []common.AuthorNeighbor
	for rows.Next() {
		var (
			row          paperRow
			sharedCount  int64
			sharedNames  []string
			productivity float64
			sameCluster  bool
		)
		targets := append(row.scanTargets(), &sharedCount, &sharedNames, &productivity, &sameCluster)
		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}
		out = append(out, common.AuthorNeighbor{
			Paper:                 row.toPaper(),
			SharedAuthorCount:     int(sharedCount),
			SharedAuthorNames:     sharedNames,
			AvgAuthorProductivity: productivity,
			SameCluster:           sameCluster,
		})
	}
	return out, rows.Err()
}

const citingPapersSQL = `SELECT ` + paperCols + `
FROM papers p
JOIN citations c ON c.citing_id = p.paper_id
WHERE c.cited_id = $1
ORDER BY p.citation_count DESC, p.created_at DESC
LIMIT $2`

const citedPapersSQL = `SELECT ` + paperCols + `
FROM papers p
JOIN citations c ON c.cited_id = p.paper_id
WHERE c.citing_id = $1
ORDER BY p.citation_count DESC, p.created_at DESC
LIMIT $2`

// CitingPapers returns papers that cite the anchor paper.
func (s *PaperDBStore) CitingPapers(ctx context.Context, id string, limit int) ([]common.Paper, error) {
	return s.queryPapers(ctx, citingPapersSQL, id, limit)
}

// CitedPapers returns papers the anchor paper cites.
func (s *PaperDBStore) CitedPapers(ctx context.Context, id string, limit int) ([]common.Paper, error) {
	return s.queryPapers(ctx, citedPapersSQL, id, limit)
}

func (s *PaperDBStore) queryPapers(ctx context.Context, sql string, args ...any) ([]common.Paper, error) {
	rows, err := s.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []common.Paper
	for rows.Next() {
		var row paperRow
		if err := rows.Scan(row.scanTargets()...); err != nil {
			return nil, err
		}
		out = append(out, row.toPaper())
	}
	return out, rows.Err()
}

const knowledgeSimilarSQL = `WITH center AS (
	SELECT AVG(embedding) AS avg_embedding
	FROM key_knowledge
	WHERE paper_id = $1 AND embedding IS NOT NULL
), candidates AS (
	SELECT ` + paperCols + `,
		AVG(kk.embedding) AS paper_avg_embedding,
		COUNT(kk.id) AS knowledge_count
	FROM papers p
	JOIN key_knowledge kk ON kk.paper_id = p.paper_id
	WHERE p.paper_id <> $1 AND kk.embedding IS NOT NULL
	GROUP BY p.paper_id
), scored AS (
	SELECT c.*, 1 - (c.paper_avg_embedding <=> center.avg_embedding) AS similarity_score
	FROM candidates c
	CROSS JOIN center
	WHERE center.avg_embedding IS NOT NULL
)
SELECT paper_id, title, abstract, cluster, topic, authority_score, citation_count,
	author_count, x, y, z, source_key, created_at, knowledge_count, similarity_score
FROM scored
WHERE similarity_score > 0.3
ORDER BY similarity_score DESC
LIMIT $2`

// KnowledgeSimilarPapers compares the anchor's mean key-knowledge embedding
// against the mean key-knowledge embedding of every other paper that has at
// least one extracted concept. Candidates at or below 0.3 similarity are
// filtered out here, not by the caller.
func (s *PaperDBStore) KnowledgeSimilarPapers(ctx context.Context, id string, limit int) ([]common.KnowledgeNeighbor, error) {
	rows, err := s.conn.Query(ctx, knowledgeSimilarSQL, id, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []common.KnowledgeNeighbor
	for rows.Next() {
		var (
			row            paperRow
			knowledgeCount int64
			similarity     float64
		)
		targets := append(row.scanTargets(), &knowledgeCount, &similarity)
		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}
		out = append(out, common.KnowledgeNeighbor{
			Paper:                 row.toPaper(),
			SimilarityScore:       similarity,
			KnowledgeConceptCount: int(knowledgeCount),
		})
	}
	return out, rows.Err()
}

const contentSimilarSQL = `WITH anchor AS (
	SELECT embedding, cluster, topic, x, y, z FROM papers WHERE paper_id = $1
), scored AS (
	SELECT ` + paperCols + `,
		0.5 * CASE WHEN p.embedding IS NOT NULL AND anchor.embedding IS NOT NULL
			THEN 1 - (p.embedding <=> anchor.embedding) ELSE 0 END
		+ 0.3 * CASE WHEN p.cluster IS NOT NULL AND p.cluster = anchor.cluster THEN 1 ELSE 0 END
		+ 0.2 * CASE WHEN p.topic IS NOT NULL AND p.topic = anchor.topic THEN 1 ELSE 0 END
		+ 0.1 * CASE WHEN p.x IS NOT NULL AND anchor.x IS NOT NULL
			THEN GREATEST(0, (100 - sqrt(power(p.x - anchor.x, 2) + power(p.y - anchor.y, 2) + power(p.z - anchor.z, 2))) / 100)
			ELSE 0 END AS similarity_score
	FROM papers p
	CROSS JOIN anchor
	WHERE p.paper_id <> $1
)
SELECT paper_id, title, abstract, cluster, topic, authority_score, citation_count,
	author_count, x, y, z, source_key, created_at, similarity_score
FROM scored
WHERE similarity_score > 0.1
ORDER BY similarity_score DESC, citation_count DESC, created_at DESC
LIMIT $2`

// ContentSimilarPapers ranks every other paper by the composite content
// score: embedding cosine similarity, same-cluster and same-topic bonuses,
// and a proximity term in the 3D projection. Missing embeddings or missing
// coordinates contribute zero to their term.
func (s *PaperDBStore) ContentSimilarPapers(ctx context.Context, id string, limit int) ([]common.ContentNeighbor, error) {
	rows, err := s.conn.Query(ctx, contentSimilarSQL, id, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []common.ContentNeighbor
	for rows.Next() {
		var (
			row        paperRow
			similarity float64
		)
		targets := append(row.scanTargets(), &similarity)
		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}
		out = append(out, common.ContentNeighbor{
			Paper:           row.toPaper(),
			SimilarityScore: similarity,
		})
	}
	return out, rows.Err()
}

package pgx

import (
	"context"
	"fmt"

	"github.com/paperlens/backend/pkg/common"
	"github.com/paperlens/backend/pkg/logger"

	"github.com/pgvector/pgvector-go"
)

const upsertPaperSQL = `INSERT INTO papers (
	paper_id, title, abstract, cluster, topic, authority_score,
	citation_count, x, y, z, embedding, source_key
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (paper_id) DO UPDATE SET
	title = EXCLUDED.title,
	abstract = EXCLUDED.abstract,
	cluster = EXCLUDED.cluster,
	topic = EXCLUDED.topic,
	authority_score = EXCLUDED.authority_score,
	citation_count = EXCLUDED.citation_count,
	x = EXCLUDED.x,
	y = EXCLUDED.y,
	z = EXCLUDED.z,
	embedding = EXCLUDED.embedding,
	source_key = EXCLUDED.source_key`

const deletePaperAuthorsSQL = `DELETE FROM authors WHERE paper_id = $1`

const insertAuthorSQL = `INSERT INTO authors (paper_id, name, position)
VALUES ($1, $2, $3)`

const insertCitationSQL = `INSERT INTO citations (citing_id, cited_id)
VALUES ($1, $2)
ON CONFLICT (citing_id, cited_id) DO NOTHING`

// UpsertPaper writes one imported paper record, replacing its author list
// and adding its outgoing citations. Citations referencing papers that have
// not been imported yet are kept; the citation queries join through the
// papers table, so dangling rows stay invisible until the target arrives.
func (s *PaperDBStore) UpsertPaper(ctx context.Context, rec common.PaperImport, embedding []float32) error {
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var x, y, z *float64
	if rec.Coordinates != nil {
		x, y, z = &rec.Coordinates.X, &rec.Coordinates.Y, &rec.Coordinates.Z
	}

	var embed *pgvector.Vector
	if len(embedding) > 0 {
		v := pgvector.NewVector(embedding)
		embed = &v
	}

	var sourceKey *string
	if rec.SourceKey != "" {
		sourceKey = &rec.SourceKey
	}

	_, err = tx.Exec(ctx, upsertPaperSQL,
		rec.ID, rec.Title, rec.Abstract, rec.Cluster, rec.Topic,
		rec.AuthorityScore, rec.CitationCount, x, y, z, embed, sourceKey,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert paper %s: %w", rec.ID, err)
	}

	if _, err := tx.Exec(ctx, deletePaperAuthorsSQL, rec.ID); err != nil {
		return fmt.Errorf("failed to clear authors for %s: %w", rec.ID, err)
	}
	for i, name := range rec.Authors {
		if name == "" {
			continue
		}
		if _, err := tx.Exec(ctx, insertAuthorSQL, rec.ID, name, i); err != nil {
			return fmt.Errorf("failed to insert author for %s: %w", rec.ID, err)
		}
	}

	for _, cited := range rec.CitedPaperIDs {
		if cited == "" || cited == rec.ID {
			continue
		}
		if _, err := tx.Exec(ctx, insertCitationSQL, rec.ID, cited); err != nil {
			return fmt.Errorf("failed to insert citation %s -> %s: %w", rec.ID, cited, err)
		}
	}

	logger.Debug("[Store] Upserted paper", "paper_id", rec.ID, "authors", len(rec.Authors), "citations", len(rec.CitedPaperIDs))

	return tx.Commit(ctx)
}

const deleteKeyKnowledgeSQL = `DELETE FROM key_knowledge WHERE paper_id = $1`

const insertKeyKnowledgeSQL = `INSERT INTO key_knowledge (paper_id, knowledge_text, confidence_score, embedding)
VALUES ($1, $2, $3, $4)`

// SaveKeyKnowledge replaces the extracted knowledge concepts of one paper.
func (s *PaperDBStore) SaveKeyKnowledge(
	ctx context.Context,
	paperID string,
	items []common.KeyKnowledge,
	embeddings [][]float32,
) error {
	if len(items) != len(embeddings) {
		return fmt.Errorf("key knowledge size mismatch: %d items, %d embeddings", len(items), len(embeddings))
	}

	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, deleteKeyKnowledgeSQL, paperID); err != nil {
		return fmt.Errorf("failed to clear key knowledge for %s: %w", paperID, err)
	}

	for i, item := range items {
		if item.Text == "" {
			continue
		}
		var embed *pgvector.Vector
		if len(embeddings[i]) > 0 {
			v := pgvector.NewVector(embeddings[i])
			embed = &v
		}
		if _, err := tx.Exec(ctx, insertKeyKnowledgeSQL, paperID, item.Text, item.Confidence, embed); err != nil {
			return fmt.Errorf("failed to insert key knowledge for %s: %w", paperID, err)
		}
	}

	logger.Debug("[Store] Saved key knowledge", "paper_id", paperID, "concepts", len(items))

	return tx.Commit(ctx)
}

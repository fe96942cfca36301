package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/paperlens/backend/internal/util"
	"github.com/paperlens/backend/pkg/ai"
	"github.com/paperlens/backend/pkg/common"
	"github.com/paperlens/backend/pkg/logger"
	paperstore "github.com/paperlens/backend/pkg/store/pgx"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

// IngestMsg is one import batch on the ingest queue.
type IngestMsg struct {
	CorrelationID string               `json:"correlation_id"`
	Papers        []common.PaperImport `json:"papers"`
}

const embedRetries = 3

// ProcessIngestMessage embeds and upserts every paper in one queue message.
// Papers are processed concurrently; the first failure aborts the batch so
// the delivery can be retried as a whole. Upserts are idempotent per paper
// id, so papers that finished before the failure are safe to redo.
func ProcessIngestMessage(
	ctx context.Context,
	aiClient ai.EmbeddingClient,
	conn *pgxpool.Pool,
	msg string,
) error {
	data := new(IngestMsg)
	if err := json.Unmarshal([]byte(msg), data); err != nil {
		return fmt.Errorf("failed to unmarshal ingest message: %w", err)
	}
	if len(data.Papers) == 0 {
		logger.Warn("[Queue] Ingest message without papers", "correlation_id", data.CorrelationID)
		return nil
	}

	logger.Info("[Queue] Processing ingest batch",
		"correlation_id", data.CorrelationID, "papers", len(data.Papers))

	store := paperstore.NewPaperDBStore(conn)

	eg, ectx := errgroup.WithContext(ctx)
	eg.SetLimit(4)
	for _, rec := range data.Papers {
		rec := rec
		eg.Go(func() error {
			if err := ingestPaper(ectx, aiClient, store, rec); err != nil {
				return fmt.Errorf("paper %s: %w", rec.ID, err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	logger.Info("[Queue] Ingest batch done",
		"correlation_id", data.CorrelationID, "papers", len(data.Papers))
	return nil
}

func ingestPaper(
	ctx context.Context,
	aiClient ai.EmbeddingClient,
	store *paperstore.PaperDBStore,
	rec common.PaperImport,
) error {
	abstractVec, err := util.RetryWithContext(ctx, embedRetries, func(ctx context.Context) ([]float32, error) {
		return aiClient.GenerateEmbedding(ctx, []byte(rec.Abstract))
	})
	if err != nil {
		return fmt.Errorf("failed to embed abstract: %w", err)
	}

	if err := store.UpsertPaper(ctx, rec, abstractVec); err != nil {
		return fmt.Errorf("failed to upsert paper: %w", err)
	}

	if len(rec.KeyKnowledge) == 0 {
		return nil
	}

	texts := make([][]byte, len(rec.KeyKnowledge))
	for i, kk := range rec.KeyKnowledge {
		texts[i] = []byte(kk.Text)
	}
	kkVecs, err := util.RetryWithContext(ctx, embedRetries, func(ctx context.Context) ([][]float32, error) {
		return aiClient.GenerateEmbeddings(ctx, texts)
	})
	if err != nil {
		return fmt.Errorf("failed to embed key knowledge: %w", err)
	}

	if err := store.SaveKeyKnowledge(ctx, rec.ID, rec.KeyKnowledge, kkVecs); err != nil {
		return fmt.Errorf("failed to save key knowledge: %w", err)
	}

	logger.Debug("[Queue] Ingested paper", "paper_id", rec.ID, "key_knowledge", len(rec.KeyKnowledge))
	return nil
}

package store

import (
	"context"

	"github.com/paperlens/backend/pkg/common"
)

// PaperStore defines the read interface the graph builder traverses. It
// answers point lookups and the four relation-specific neighbor queries.
//
// Every neighbor query may legally return an empty slice, either because
// nothing matched or because the underlying query degraded; callers cannot
// distinguish the two. Result ordering is part of the contract: each query
// orders by its relation-specific ranking, and that order decides which
// candidates win the remaining node-budget slots.
type PaperStore interface {
	// GetPaper returns the paper with the given id, or (nil, nil) when no
	// such paper exists.
	GetPaper(ctx context.Context, id string) (*common.Paper, error)

	// AuthorNeighbors returns papers sharing at least one author with the
	// anchor paper, ordered by shared-author count, same-cluster flag,
	// citation count and average author productivity (all descending).
	AuthorNeighbors(ctx context.Context, id string, limit int) ([]common.AuthorNeighbor, error)

	// CitingPapers returns papers that cite the anchor paper, ordered by
	// the candidate's citation count, then recency.
	CitingPapers(ctx context.Context, id string, limit int) ([]common.Paper, error)

	// CitedPapers returns papers the anchor paper cites, ordered by the
	// candidate's citation count, then recency.
	CitedPapers(ctx context.Context, id string, limit int) ([]common.Paper, error)

	// KnowledgeSimilarPapers returns papers whose mean key-knowledge
	// embedding has cosine similarity above 0.3 to the anchor's, ordered
	// by similarity descending.
	KnowledgeSimilarPapers(ctx context.Context, id string, limit int) ([]common.KnowledgeNeighbor, error)

	// ContentSimilarPapers returns papers whose composite content score
	// (embedding, cluster, topic, spatial) exceeds 0.1, ordered by the
	// composite score, citation count and recency (all descending).
	ContentSimilarPapers(ctx context.Context, id string, limit int) ([]common.ContentNeighbor, error)
}

// PaperIngest is the write side used by the ingest worker. Implementations
// must be idempotent per paper id so redelivered queue messages are safe.
type PaperIngest interface {
	// UpsertPaper inserts or replaces one paper record together with its
	// author list and outgoing citations. The embedding may be nil when
	// the paper has no abstract.
	UpsertPaper(ctx context.Context, rec common.PaperImport, embedding []float32) error

	// SaveKeyKnowledge replaces the extracted knowledge concepts of a
	// paper. items and embeddings run in parallel.
	SaveKeyKnowledge(ctx context.Context, paperID string, items []common.KeyKnowledge, embeddings [][]float32) error
}

package pgx

import (
	"context"
	"errors"
	"time"

	"github.com/paperlens/backend/pkg/common"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type pgxIConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgxv5.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgxv5.Row
	Begin(ctx context.Context) (pgxv5.Tx, error)
}

// PaperDBStore implements the store.PaperStore and store.PaperIngest
// interfaces on PostgreSQL with pgvector. All similarity ranking happens in
// SQL so result ordering is decided by the database, not by callers.
type PaperDBStore struct {
	conn pgxIConn
}

// NewPaperDBStore creates a PaperDBStore on an existing connection or pool.
func NewPaperDBStore(conn pgxIConn) *PaperDBStore {
	return &PaperDBStore{conn: conn}
}

// paperCols is the shared projection for all paper-returning queries. The
// surrounding query must alias the papers table as "p".
const paperCols = `p.paper_id, p.title, p.abstract, p.cluster, p.topic,
	p.authority_score, p.citation_count,
	(SELECT COUNT(*) FROM authors ac WHERE ac.paper_id = p.paper_id) AS author_count,
	p.x, p.y, p.z, p.source_key, p.created_at`

type paperRow struct {
	id             string
	title          string
	abstract       string
	cluster        *string
	topic          *string
	authorityScore float64
	citationCount  int64
	authorCount    int64
	x, y, z        *float64
	sourceKey      *string
	createdAt      time.Time
}

func (r *paperRow) scanTargets() []any {
	return []any{
		&r.id, &r.title, &r.abstract, &r.cluster, &r.topic,
		&r.authorityScore, &r.citationCount, &r.authorCount,
		&r.x, &r.y, &r.z, &r.sourceKey, &r.createdAt,
	}
}

func (r *paperRow) toPaper() common.Paper {
	p := common.Paper{
		ID:             r.id,
		Title:          r.title,
		Abstract:       r.abstract,
		Cluster:        r.cluster,
		Topic:          r.topic,
		AuthorityScore: r.authorityScore,
		CitationCount:  int(r.citationCount),
		AuthorCount:    int(r.authorCount),
		CreatedAt:      r.createdAt,
	}
	if r.sourceKey != nil {
		p.SourceKey = *r.sourceKey
	}
	if r.x != nil && r.y != nil && r.z != nil {
		p.Coordinates = &common.Coordinates{X: *r.x, Y: *r.y, Z: *r.z}
	}
	return p
}

const getPaperSQL = `SELECT ` + paperCols + `
FROM papers p
WHERE p.paper_id = $1`

const getPaperAuthorsSQL = `SELECT name
FROM authors
WHERE paper_id = $1
ORDER BY position`

// GetPaper returns the paper with the given id, including its ordered
// author list, or (nil, nil) when the paper does not exist.
func (s *PaperDBStore) GetPaper(ctx context.Context, id string) (*common.Paper, error) {
	var row paperRow
	err := s.conn.QueryRow(ctx, getPaperSQL, id).Scan(row.scanTargets()...)
	if err != nil {
		if errors.Is(err, pgxv5.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	paper := row.toPaper()

	rows, err := s.conn.Query(ctx, getPaperAuthorsSQL, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		paper.Authors = append(paper.Authors, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &paper, nil
}

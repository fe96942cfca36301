package common

import "time"

// Paper is a read-only snapshot of one corpus record as stored in the
// database. It carries the descriptive attributes the graph builder and the
// API surface need; it is never mutated after being loaded.
//
// Cluster and Topic are assigned by the offline clustering pipeline and may
// be absent for papers that have not been clustered yet. Coordinates holds
// the paper's position in the reduced 3D embedding space, when available.
type Paper struct {
	ID             string       `json:"paper_id"`
	Title          string       `json:"title"`
	Abstract       string       `json:"abstract"`
	Authors        []string     `json:"authors,omitempty"`
	Cluster        *string      `json:"cluster,omitempty"`
	Topic          *string      `json:"topic,omitempty"`
	AuthorityScore float64      `json:"authority_score"`
	CitationCount  int          `json:"citation_count"`
	AuthorCount    int          `json:"author_count"`
	Coordinates    *Coordinates `json:"coordinates,omitempty"`
	SourceKey      string       `json:"-"`
	CreatedAt      time.Time    `json:"created_at"`
}

// Coordinates is a position in the 3D projection of the embedding space.
type Coordinates struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// AuthorNeighbor is a paper that shares at least one author with an anchor
// paper, together with the shared-author statistics computed by the store.
type AuthorNeighbor struct {
	Paper
	SharedAuthorCount     int      `json:"shared_authors_count"`
	SharedAuthorNames     []string `json:"shared_author_names"`
	AvgAuthorProductivity float64  `json:"avg_author_productivity"`
	SameCluster           bool     `json:"same_cluster"`
}

// KnowledgeNeighbor is a paper related to an anchor paper through the
// similarity of their averaged key-knowledge embeddings. The store only
// returns candidates with SimilarityScore above 0.3.
type KnowledgeNeighbor struct {
	Paper
	SimilarityScore       float64 `json:"similarity_score"`
	KnowledgeConceptCount int     `json:"knowledge_count"`
}

// ContentNeighbor is a paper related to an anchor paper through the
// composite content-similarity score (embedding, cluster, topic and spatial
// signals). The store only returns candidates with SimilarityScore above 0.1.
type ContentNeighbor struct {
	Paper
	SimilarityScore float64 `json:"similarity_score"`
}

// RelationSummary counts the relation candidates around one paper. It backs
// the per-mode availability hints shown before a graph is generated.
type RelationSummary struct {
	AuthorNeighborCount int  `json:"author_neighbor_count"`
	CitingCount         int  `json:"citing_count"`
	CitedCount          int  `json:"cited_count"`
	KeyKnowledgeCount   int  `json:"key_knowledge_count"`
	HasEmbedding        bool `json:"has_embedding"`
}

// KeyKnowledge is one extracted knowledge concept of a paper.
type KeyKnowledge struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// PaperImport is one paper record submitted through the import API and
// carried on the ingest queue. The worker embeds the abstract and the
// key-knowledge texts before the record is upserted.
type PaperImport struct {
	ID             string         `json:"paper_id" validate:"required"`
	Title          string         `json:"title" validate:"required"`
	Abstract       string         `json:"abstract"`
	Authors        []string       `json:"authors"`
	Cluster        *string        `json:"cluster"`
	Topic          *string        `json:"topic"`
	AuthorityScore float64        `json:"authority_score"`
	CitationCount  int            `json:"citation_count"`
	Coordinates    *Coordinates   `json:"coordinates"`
	CitedPaperIDs  []string       `json:"cited_paper_ids"`
	KeyKnowledge   []KeyKnowledge `json:"key_knowledge"`
	SourceKey      string         `json:"source_key"`
}

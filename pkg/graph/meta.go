package graph

// EdgeMeta is the relation-specific payload attached to an edge. Exactly one
// concrete type exists per relation tag, so consumers can switch on the type
// instead of probing an untyped map.
type EdgeMeta interface {
	isEdgeMeta()
}

// AuthorEdgeMeta describes a shared-author connection.
type AuthorEdgeMeta struct {
	SharedAuthorCount     int      `json:"shared_authors_count"`
	SharedAuthorNames     []string `json:"shared_author_names"`
	AvgAuthorProductivity float64  `json:"avg_author_productivity"`
	SameCluster           bool     `json:"same_cluster"`
	CollaborationStrength string   `json:"collaboration_strength"`
}

// CitationEdgeMeta describes a citation connection. CitationType is one of
// incoming, outgoing, second_order_incoming or second_order_outgoing.
type CitationEdgeMeta struct {
	CitationType         string `json:"citation_type"`
	RelationshipStrength string `json:"relationship_strength"`
}

// KnowledgeEdgeMeta describes a key-knowledge similarity connection.
type KnowledgeEdgeMeta struct {
	SimilarityScore       float64 `json:"similarity_score"`
	KnowledgeConceptCount int     `json:"knowledge_count"`
	SimilarityType        string  `json:"similarity_type"`
	RelationshipStrength  string  `json:"relationship_strength"`
}

// SimilarityEdgeMeta describes a composite content-similarity connection.
type SimilarityEdgeMeta struct {
	SimilarityScore      float64 `json:"similarity_score"`
	SimilarityType       string  `json:"similarity_type"`
	RelationshipStrength string  `json:"relationship_strength"`
}

func (AuthorEdgeMeta) isEdgeMeta()     {}
func (CitationEdgeMeta) isEdgeMeta()   {}
func (KnowledgeEdgeMeta) isEdgeMeta()  {}
func (SimilarityEdgeMeta) isEdgeMeta() {}

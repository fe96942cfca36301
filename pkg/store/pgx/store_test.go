package pgx

import (
	"testing"
	"time"
)

func TestPaperRowToPaper(t *testing.T) {
	cluster := "ml"
	sourceKey := "papers/abc.pdf"
	x, y, z := 1.5, -2.0, 0.25
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	row := paperRow{
		id:             "p1",
		title:          "A Paper",
		abstract:       "About things",
		cluster:        &cluster,
		authorityScore: 0.7,
		citationCount:  12,
		authorCount:    3,
		x:              &x, y: &y, z: &z,
		sourceKey: &sourceKey,
		createdAt: created,
	}

	p := row.toPaper()
	if p.ID != "p1" || p.Title != "A Paper" || p.CitationCount != 12 || p.AuthorCount != 3 {
		t.Fatalf("unexpected paper: %+v", p)
	}
	if p.Cluster == nil || *p.Cluster != "ml" {
		t.Fatalf("cluster not carried over: %+v", p.Cluster)
	}
	if p.Topic != nil {
		t.Fatalf("expected nil topic, got %v", *p.Topic)
	}
	if p.SourceKey != sourceKey {
		t.Fatalf("got source key %q, want %q", p.SourceKey, sourceKey)
	}
	if p.Coordinates == nil || p.Coordinates.X != x || p.Coordinates.Y != y || p.Coordinates.Z != z {
		t.Fatalf("coordinates not carried over: %+v", p.Coordinates)
	}
	if !p.CreatedAt.Equal(created) {
		t.Fatalf("got created at %v, want %v", p.CreatedAt, created)
	}
}

func TestPaperRowToPaperPartialCoordinates(t *testing.T) {
	x := 1.0
	row := paperRow{id: "p2", title: "No position", x: &x}

	p := row.toPaper()
	if p.Coordinates != nil {
		t.Fatalf("partial coordinates must map to nil, got %+v", p.Coordinates)
	}
	if p.SourceKey != "" {
		t.Fatalf("expected empty source key, got %q", p.SourceKey)
	}
}

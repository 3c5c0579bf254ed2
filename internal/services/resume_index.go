package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/rameshbanala/resume-analyzer/internal/models"
)

const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 50
)

// Embedder turns text into a vector.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// ResumeIndexer keeps a semantic index of stored resumes.
type ResumeIndexer interface {
	IndexResume(ctx context.Context, resume *models.Resume) error
	Search(ctx context.Context, query string, limit int) ([]models.SearchHit, error)
}

type resumeIndexer struct {
	embedder Embedder
	store    VectorStore
	chunker  TextChunker
}

func NewResumeIndexer(embedder Embedder, store VectorStore, chunker TextChunker) ResumeIndexer {
	return &resumeIndexer{
		embedder: embedder,
		store:    store,
		chunker:  chunker,
	}
}

// IndexResume implements ResumeIndexer.
func (ri *resumeIndexer) IndexResume(ctx context.Context, resume *models.Resume) error {
	resumeID := strconv.FormatUint(uint64(resume.ID), 10)

	text := SearchableText(&resume.ResumeRecord)
	if text == "" {
		return nil
	}

	pieces := ri.chunker.ChunkText(text, DefaultChunkSize, DefaultChunkOverlap)
	chunks := make([]ResumeChunk, 0, len(pieces))
	for i, piece := range pieces {
		embedding, err := ri.embedder.GenerateEmbedding(ctx, piece)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d of resume %s: %w", i, resumeID, err)
		}
		chunks = append(chunks, ResumeChunk{
			ResumeID:   resumeID,
			ChunkIndex: i,
			Text:       piece,
			Embedding:  embedding,
		})
	}

	if err := ri.store.UpsertChunks(ctx, chunks); err != nil {
		return err
	}

	log.Printf("✅ Indexed resume %s (%d chunks)", resumeID, len(chunks))
	return nil
}

// Search implements ResumeIndexer. Each resume appears once, with its best score.
func (ri *resumeIndexer) Search(ctx context.Context, query string, limit int) ([]models.SearchHit, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	embedding, err := ri.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	// over-fetch because several chunks may belong to one resume
	matches, err := ri.store.SearchSimilar(ctx, embedding, limit*3)
	if err != nil {
		return nil, err
	}

	hits := []models.SearchHit{}
	seen := make(map[string]bool)
	for _, m := range matches {
		if m.ResumeID == "" || seen[m.ResumeID] {
			continue
		}
		seen[m.ResumeID] = true
		hits = append(hits, models.SearchHit{
			ResumeID: m.ResumeID,
			Score:    m.Score,
			Snippet:  m.Text,
		})
		if len(hits) == limit {
			break
		}
	}

	return hits, nil
}

// SearchableText flattens the parts of a record worth matching against.
func SearchableText(r *models.ResumeRecord) string {
	var sections []string

	if r.Summary != nil {
		sections = append(sections, *r.Summary)
	}
	if len(r.TechnicalSkills) > 0 {
		sections = append(sections, "Technical skills: "+strings.Join(r.TechnicalSkills, ", "))
	}
	if len(r.SoftSkills) > 0 {
		sections = append(sections, "Soft skills: "+strings.Join(r.SoftSkills, ", "))
	}
	for _, w := range r.WorkExperience {
		line := strings.TrimSpace(fmt.Sprintf("%s at %s %s", w.Role, w.Company, w.Duration))
		if len(w.Description) > 0 {
			line += "\n" + strings.Join(w.Description, "\n")
		}
		sections = append(sections, line)
	}
	for _, p := range r.Projects {
		line := p.Name
		if p.Description != "" {
			line += ": " + p.Description
		}
		if len(p.Technologies) > 0 {
			line += " (" + strings.Join(p.Technologies, ", ") + ")"
		}
		sections = append(sections, line)
	}
	for _, c := range r.Certifications {
		sections = append(sections, strings.TrimSpace(c.Name+" "+c.Issuer))
	}

	return strings.TrimSpace(strings.Join(sections, "\n\n"))
}

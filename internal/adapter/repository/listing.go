package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/armaan-yadav/apna-resume/internal/domain"
)

// queryJSON runs a SQL that returns a single json value and unmarshals it
// into out.
func queryJSON(ctx context.Context, pool *pgxpool.Pool, out interface{}, sql string, args ...interface{}) error {
	var raw []byte
	if err := pool.QueryRow(ctx, sql, args...).Scan(&raw); err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// ListByOwner returns summaries of an owner's resumes, newest first.
func (r *ResumeRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.ResumeSummary, error) {
	out := []domain.ResumeSummary{}
	err := queryJSON(ctx, r.pool, &out, `
		SELECT coalesce(json_agg(json_build_object(
			'id', r.id,
			'first_name', coalesce(r.document->>'firstName', ''),
			'last_name', coalesce(r.document->>'lastName', ''),
			'job_title', coalesce(r.document->>'jobTitle', ''),
			'template', coalesce(r.document->>'template', ''),
			'updated_at', r.updated_at
		) ORDER BY r.updated_at DESC), '[]')
		FROM resumes r WHERE r.owner_id = $1`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list resumes for %s: %w", ownerID, err)
	}
	for i := range out {
		out[i].Template = resolvedTemplate(out[i].Template)
	}
	return out, nil
}

// ListByOwner returns summaries of an owner's resumes, newest first.
func (m *MemoryRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.ResumeSummary, error) {
	m.mu.RLock()
	ids := make([]string, 0)
	updated := make(map[string]time.Time)
	for id, owner := range m.owners {
		if owner == ownerID {
			ids = append(ids, id)
			updated[id] = m.updated[id]
		}
	}
	m.mu.RUnlock()
	sort.Slice(ids, func(i, j int) bool {
		a, b := updated[ids[i]], updated[ids[j]]
		if !a.Equal(b) {
			return a.After(b)
		}
		return ids[i] < ids[j]
	})

	out := make([]domain.ResumeSummary, 0, len(ids))
	for _, id := range ids {
		doc, err := m.FetchResume(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.ResumeSummary{
			ID:        id,
			FirstName: doc.FirstName,
			LastName:  doc.LastName,
			JobTitle:  doc.JobTitle,
			Template:  resolvedTemplate(doc.Template),
			UpdatedAt: updated[id],
		})
	}
	return out, nil
}

package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/armaan-yadav/apna-resume/internal/model"
)

// ResumeRecord is one row of the resumes table.
type ResumeRecord struct {
	ID        uuid.UUID    `json:"id"`
	OwnerID   string       `json:"owner_id"`
	Document  model.Resume `json:"document"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// ResumeSummary is a dashboard entry for one of an owner's resumes.
type ResumeSummary struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	JobTitle  string    `json:"job_title"`
	Template  string    `json:"template"`
	UpdatedAt time.Time `json:"updated_at"`
}

package domain

import (
	"context"
	"io"
)

// ResumeUpload is one multipart file as received by the upload endpoint.
type ResumeUpload struct {
	OriginalName string
	ContentType  string
	Size         int64
	Content      io.Reader
}

type ResumeUploadResult struct {
	Resume    *ResumeFile `json:"resume"`
	Parsed    bool        `json:"parsed"`
	Candidate *Candidate  `json:"candidate"`
}

// ProfilePatch is the canonical partial profile derived from a parser
// response. Zero values mean "not present in the résumé".
type ProfilePatch struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Skills       []string
	Education    []Education
	Experience   int
	Projects     []Project
	PortfolioURL string
	LinkedInURL  string
	Address      *Address
}

// ResumeStorage persists résumé binaries. Keys are slash-separated relative paths.
type ResumeStorage interface {
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

type ResumeUsecase interface {
	Upload(ctx context.Context, candidateID string, file *ResumeUpload) (*ResumeUploadResult, error)
	Reparse(ctx context.Context, candidateID string) (*ResumeUploadResult, error)
	OpenResume(ctx context.Context, candidateID string) (io.ReadCloser, *ResumeFile, error)
	OpenApplicantResume(ctx context.Context, recruiterID, jobID, candidateID string) (io.ReadCloser, *ResumeFile, error)
}

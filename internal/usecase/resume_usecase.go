package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/resumeparser"
	"go-jobboard-backend/pkg/security"
	"go-jobboard-backend/pkg/security/antivirus"
	"go-jobboard-backend/pkg/storage"

	"github.com/google/uuid"
)

// ResumeParser extracts structured fields from a résumé document.
type ResumeParser interface {
	Parse(ctx context.Context, filename string, r io.Reader) (*resumeparser.Result, error)
}

type ResumeConfig struct {
	Policy             security.ResumePolicy
	ExperienceCapYears int
}

type resumeUsecase struct {
	candidateRepo domain.CandidateRepository
	jobRepo       domain.JobRepository
	storage       domain.ResumeStorage
	parser        ResumeParser
	scanner       antivirus.Scanner
	audit         *security.AuditLogger
	cfg           ResumeConfig
	now           func() time.Time
}

func NewResumeUsecase(
	candidateRepo domain.CandidateRepository,
	jobRepo domain.JobRepository,
	store domain.ResumeStorage,
	parser ResumeParser,
	scanner antivirus.Scanner,
	audit *security.AuditLogger,
	cfg ResumeConfig,
) domain.ResumeUsecase {
	if scanner == nil {
		scanner = antivirus.NewNoOpScanner()
	}
	if len(cfg.Policy.AllowedMIMETypes) == 0 {
		cfg.Policy.AllowedMIMETypes = []string{"application/pdf"}
	}
	return &resumeUsecase{
		candidateRepo: candidateRepo,
		jobRepo:       jobRepo,
		storage:       store,
		parser:        parser,
		scanner:       scanner,
		audit:         audit,
		cfg:           cfg,
		now:           time.Now,
	}
}

// Upload validates, scans and stores the document, records the reference on
// the candidate, then parses and merges. A parse failure yields parsed=false
// and leaves the stored reference in place.
func (uc *resumeUsecase) Upload(ctx context.Context, candidateID string, file *domain.ResumeUpload) (*domain.ResumeUploadResult, error) {
	candidate, err := loadActiveCandidate(ctx, uc.candidateRepo, candidateID)
	if err != nil {
		return nil, err
	}

	// 1. Validate before anything is written
	data, err := uc.readUpload(file)
	if err != nil {
		return nil, err
	}
	head := data
	if len(head) > security.SniffLength {
		head = head[:security.SniffLength]
	}
	check := security.ValidateResume(uc.cfg.Policy, file.OriginalName, file.ContentType, int64(len(data)), head)
	if !check.Valid {
		uc.audit.LogUploadRejected(ctx, candidateID, check.Error)
		return nil, apperror.Validation(apperror.ReasonUnsupportedFileType, "Unsupported file: "+check.Error)
	}

	// 2. Malware scan, fail closed
	scan := uc.scanner.Scan(ctx, file.OriginalName, bytes.NewReader(data))
	if scan.Infected || scan.Error != nil {
		if scan.Error != nil {
			logger.Log.Error("resume scan failed", "candidate_id", candidateID, "scanner", scan.ScannerName, "error", scan.Error)
		}
		uc.audit.LogMalwareDetected(ctx, candidateID, scan.ScannerName, scan.ThreatName)
		return nil, apperror.Validation(apperror.ReasonMalwareDetected, "File was rejected by the malware scan")
	}

	// 3. Store under a generated name
	key := path.Join("resumes", candidateID, uuid.NewString()+check.Extension)
	contentType := strings.ToLower(strings.TrimSpace(strings.Split(file.ContentType, ";")[0]))
	if err := uc.storage.Save(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return nil, apperror.Persistence(apperror.ReasonStorageFailed, "Failed to store resume", err)
	}

	// 4. Record the reference unconditionally
	ref := &domain.ResumeFile{
		Filename:     path.Base(key),
		OriginalName: sanitizeFilename(file.OriginalName),
		Path:         key,
		Size:         int64(len(data)),
		UploadDate:   uc.now().UTC(),
	}
	if err := uc.candidateRepo.UpdateResume(ctx, candidateID, ref); err != nil {
		if delErr := uc.storage.Delete(ctx, key); delErr != nil {
			logger.Log.Warn("orphaned resume file", "key", key, "error", delErr)
		}
		return nil, apperror.Persistence(apperror.ReasonStorageFailed, "Failed to record resume", err)
	}

	previous := candidate.Resume
	candidate.Resume = ref
	if previous != nil && previous.Path != "" && previous.Path != key {
		if err := uc.storage.Delete(ctx, previous.Path); err != nil {
			logger.Log.Warn("failed to delete replaced resume", "key", previous.Path, "error", err)
		}
	}

	// 5. Parse and merge
	return uc.parseAndMerge(ctx, candidate, data)
}

// Reparse runs parse and merge again on the stored document.
func (uc *resumeUsecase) Reparse(ctx context.Context, candidateID string) (*domain.ResumeUploadResult, error) {
	candidate, err := loadActiveCandidate(ctx, uc.candidateRepo, candidateID)
	if err != nil {
		return nil, err
	}
	rc, err := uc.openStored(ctx, candidate)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return uc.parseAndMerge(ctx, candidate, data)
}

func (uc *resumeUsecase) OpenResume(ctx context.Context, candidateID string) (io.ReadCloser, *domain.ResumeFile, error) {
	candidate, err := loadActiveCandidate(ctx, uc.candidateRepo, candidateID)
	if err != nil {
		return nil, nil, err
	}
	rc, err := uc.openStored(ctx, candidate)
	if err != nil {
		return nil, nil, err
	}
	return rc, candidate.Resume, nil
}

// OpenApplicantResume lets the job's owner read the résumé of someone who
// applied to it.
func (uc *resumeUsecase) OpenApplicantResume(ctx context.Context, recruiterID, jobID, candidateID string) (io.ReadCloser, *domain.ResumeFile, error) {
	job, err := loadOwnedJob(ctx, uc.jobRepo, recruiterID, jobID)
	if err != nil {
		return nil, nil, err
	}
	if !job.HasApplicant(candidateID) {
		return nil, nil, apperror.NotFoundReason(apperror.ReasonApplicantNotFound, "Candidate has not applied to this job")
	}

	candidate, err := uc.candidateRepo.GetByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, apperror.NotFound("Candidate not found")
		}
		return nil, nil, apperror.Internal(err)
	}
	rc, err := uc.openStored(ctx, candidate)
	if err != nil {
		return nil, nil, err
	}
	return rc, candidate.Resume, nil
}

func (uc *resumeUsecase) openStored(ctx context.Context, candidate *domain.Candidate) (io.ReadCloser, error) {
	if candidate.Resume == nil || candidate.Resume.Path == "" {
		return nil, apperror.NotFoundReason(apperror.ReasonNoResumeOnFile, "No resume on file")
	}
	rc, err := uc.storage.Open(ctx, candidate.Resume.Path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperror.NotFoundReason(apperror.ReasonNoResumeOnFile, "Stored resume file is missing")
		}
		return nil, apperror.Internal(err)
	}
	return rc, nil
}

func (uc *resumeUsecase) parseAndMerge(ctx context.Context, candidate *domain.Candidate, data []byte) (*domain.ResumeUploadResult, error) {
	result := &domain.ResumeUploadResult{Resume: candidate.Resume, Candidate: candidate}
	if uc.parser == nil {
		return result, nil
	}

	parsed, err := uc.parser.Parse(ctx, candidate.Resume.OriginalName, bytes.NewReader(data))
	if err != nil {
		logger.Log.Warn("resume parsing failed",
			"candidate_id", candidate.ID,
			"error", err,
		)
		return result, nil
	}

	patch := TransformParsedResume(parsed, uc.cfg.ExperienceCapYears)
	merged := MergeProfile(*candidate, patch)
	merged.ProfileCompleteness = domain.ProfileCompleteness(&merged)
	merged.UpdatedAt = uc.now().UTC()

	if err := uc.candidateRepo.Update(ctx, &merged); err != nil {
		return nil, apperror.Persistence(apperror.ReasonProfileSaveFailed,
			"Resume was stored but the parsed profile could not be saved", err)
	}

	result.Parsed = true
	result.Candidate = &merged
	return result, nil
}

// readUpload buffers the upload, reading at most one byte past the limit so
// oversize files are detected without reading them fully.
func (uc *resumeUsecase) readUpload(file *domain.ResumeUpload) ([]byte, error) {
	if file == nil || file.Content == nil {
		return nil, apperror.BadRequest("Resume file is required")
	}
	r := file.Content
	if limit := uc.cfg.Policy.MaxSize; limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperror.BadRequest("Failed to read uploaded file")
	}
	return data, nil
}

func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
	if len(name) > 255 {
		name = name[:255]
	}
	if name == "." || name == "/" || name == "" {
		return "resume"
	}
	return name
}

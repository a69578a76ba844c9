package usecase

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/security"

	"github.com/xuri/excelize/v2"
)

const applicantSheet = "Applicants"

var applicantColumns = []string{"CANDIDATE", "EMAIL", "STATUS", "APPLIED AT", "RESUME", "COVER LETTER"}

func (uc *applicationUsecase) ExportApplicants(ctx context.Context, recruiterID, jobID string) ([]byte, string, error) {
	job, err := loadOwnedJob(ctx, uc.jobRepo, recruiterID, jobID)
	if err != nil {
		return nil, "", err
	}
	applicants, err := uc.applicationRepo.ListApplicants(ctx, jobID)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	data, err := renderApplicantWorkbook(job, applicants)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	uc.audit.Log(ctx, security.AuditEvent{
		Event:     security.EventApplicantsExported,
		ActorID:   recruiterID,
		ActorRole: domain.RoleRecruiter,
		Details:   map[string]any{"job_id": jobID, "rows": len(applicants)},
	})

	filename := fmt.Sprintf("applicants_%s_%s.xlsx", shortID(jobID), uc.now().Format("20060102_150405"))
	return data, filename, nil
}

func renderApplicantWorkbook(job *domain.Job, applicants []domain.Applicant) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", applicantSheet); err != nil {
		return nil, err
	}

	// Row 1 carries the job title, row 2 the headers
	_ = f.SetCellValue(applicantSheet, "A1", job.Title)
	for i, name := range applicantColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(applicantSheet, cell, name)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(applicantColumns), 2)
	_ = f.SetCellStyle(applicantSheet, "A2", endCell, headerStyle)

	for rowIdx, a := range applicants {
		resume := "no"
		if a.HasResume {
			resume = "yes"
		}
		values := []any{
			a.CandidateName,
			a.CandidateEmail,
			a.Status,
			a.AppliedAt.UTC().Format(time.RFC3339),
			resume,
			a.CoverLetter,
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+3)
			_ = f.SetCellValue(applicantSheet, cell, v)
		}
	}

	for i := range applicantColumns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(applicantSheet, colName, colName, 24)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

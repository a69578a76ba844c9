package domain

import (
	"context"
	"time"
)

// MinimumAge is the youngest a candidate may be when registering.
const MinimumAge = 18

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

type Education struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	GraduationYear *int   `json:"graduation_year,omitempty"`
	Grade          string `json:"grade"`
}

type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	URL          string   `json:"url"`
	Technologies []string `json:"technologies"`
}

type SalaryRange struct {
	Min      float64 `json:"min" validate:"gte=0"`
	Max      float64 `json:"max" validate:"gte=0"`
	Currency string  `json:"currency" validate:"omitempty,len=3"`
}

// ResumeFile is the stored résumé reference. It is written before parsing
// starts and is never removed by a parse failure.
type ResumeFile struct {
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	Path         string    `json:"path"`
	Size         int64     `json:"size"`
	UploadDate   time.Time `json:"upload_date"`
}

type Candidate struct {
	ID                  string      `json:"id"`
	Email               string      `json:"email"`
	PasswordHash        string      `json:"-"`
	FirstName           string      `json:"first_name"`
	LastName            string      `json:"last_name"`
	Phone               string      `json:"phone"`
	DateOfBirth         time.Time   `json:"date_of_birth"`
	Address             Address     `json:"address"`
	Experience          int         `json:"experience"`
	Skills              []string    `json:"skills"`
	Education           []Education `json:"education"`
	Projects            []Project   `json:"projects"`
	PortfolioURL        string      `json:"portfolio_url"`
	LinkedInURL         string      `json:"linkedin_url"`
	PreferredJobType    string      `json:"preferred_job_type"`
	ExpectedSalary      SalaryRange `json:"expected_salary"`
	PreferredLocations  []string    `json:"preferred_locations"`
	Resume              *ResumeFile `json:"resume,omitempty"`
	ProfileCompleteness int         `json:"profile_completeness"`
	IsActive            bool        `json:"is_active"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

func (c *Candidate) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// Age returns the number of whole years between dob and now.
func Age(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// ProfileCompleteness scores nine equally weighted fields and rounds to the
// nearest integer. Experience counts only when above zero.
func ProfileCompleteness(c *Candidate) int {
	checks := []bool{
		c.FirstName != "",
		c.LastName != "",
		c.Email != "",
		c.Phone != "",
		!c.DateOfBirth.IsZero(),
		c.Address.City != "",
		c.Experience > 0,
		len(c.Skills) > 0,
		len(c.Education) > 0,
	}
	filled := 0
	for _, ok := range checks {
		if ok {
			filled++
		}
	}
	return (filled*100 + len(checks)/2) / len(checks)
}

// CandidateRegistration is the payload for POST /candidates/register
type CandidateRegistration struct {
	Email       string  `json:"email" validate:"required,email,max=254"`
	Password    string  `json:"password" validate:"required,min=8,max=72"`
	FirstName   string  `json:"first_name" validate:"required,max=50,valid_name"`
	LastName    string  `json:"last_name" validate:"required,max=50,valid_name"`
	Phone       string  `json:"phone" validate:"required,valid_phone"`
	DateOfBirth string  `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Address     Address `json:"address"`
}

// CandidateProfileUpdate carries optional fields; nil means "leave unchanged".
type CandidateProfileUpdate struct {
	FirstName          *string      `json:"first_name" validate:"omitempty,max=50,valid_name"`
	LastName           *string      `json:"last_name" validate:"omitempty,max=50,valid_name"`
	Phone              *string      `json:"phone" validate:"omitempty,valid_phone"`
	Address            *Address     `json:"address"`
	Experience         *int         `json:"experience" validate:"omitempty,gte=0,lte=60"`
	Skills             []string     `json:"skills" validate:"omitempty,max=100,dive,max=60"`
	Education          []Education  `json:"education" validate:"omitempty,max=20"`
	Projects           []Project    `json:"projects" validate:"omitempty,max=50"`
	PortfolioURL       *string      `json:"portfolio_url" validate:"omitempty,url"`
	LinkedInURL        *string      `json:"linkedin_url" validate:"omitempty,linkedin_url"`
	PreferredJobType   *string      `json:"preferred_job_type" validate:"omitempty,job_type"`
	ExpectedSalary     *SalaryRange `json:"expected_salary"`
	PreferredLocations []string     `json:"preferred_locations" validate:"omitempty,max=20"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72,nefield=CurrentPassword"`
}

type CandidateRepository interface {
	Create(ctx context.Context, c *Candidate) error
	GetByID(ctx context.Context, id string) (*Candidate, error)
	GetByEmail(ctx context.Context, email string) (*Candidate, error)
	// Update writes profile fields and completeness; it does not touch the
	// resume reference, password or active flag.
	Update(ctx context.Context, c *Candidate) error
	UpdateResume(ctx context.Context, id string, resume *ResumeFile) error
	UpdatePassword(ctx context.Context, id, hash string) error
	Deactivate(ctx context.Context, id string) error
}

type CandidateUsecase interface {
	Register(ctx context.Context, req *CandidateRegistration) (*Candidate, error)
	GetProfile(ctx context.Context, id string) (*Candidate, error)
	UpdateProfile(ctx context.Context, id string, req *CandidateProfileUpdate) (*Candidate, error)
	ChangePassword(ctx context.Context, id string, req *ChangePasswordRequest) error
	Deactivate(ctx context.Context, id string) error
}

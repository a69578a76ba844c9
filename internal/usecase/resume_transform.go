package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/resumeparser"
)

// DefaultExperienceCapYears bounds the experience estimate.
const DefaultExperienceCapYears = 10

var yearsPattern = regexp.MustCompile(`(?i)(\d+)\s*year`)

// Key aliases the parser uses for the same field
var (
	degreeKeys      = []string{"degree", "qualification"}
	institutionKeys = []string{"institution", "university", "school"}
	yearKeys        = []string{"year", "graduationYear", "graduation_year"}
	gradeKeys       = []string{"grade", "gpa"}

	projectNameKeys = []string{"name", "title"}
	projectDescKeys = []string{"description", "summary"}
	projectURLKeys  = []string{"url", "link"}
	projectTechKeys = []string{"technologies", "tech_stack"}
)

// TransformParsedResume maps a parser response onto the profile schema.
// It performs no I/O and returns the same patch for the same input.
func TransformParsedResume(res *resumeparser.Result, experienceCap int) domain.ProfilePatch {
	var patch domain.ProfilePatch
	if res == nil {
		return patch
	}
	if experienceCap <= 0 {
		experienceCap = DefaultExperienceCapYears
	}

	patch.FirstName, patch.LastName = splitFullName(res.Name)
	patch.Email = strings.TrimSpace(res.Email)
	patch.Phone = strings.TrimSpace(res.Phone)
	patch.Skills = cleanStrings(res.Skills)
	patch.Education = transformEducation(res.Education)
	patch.Experience = estimateExperience(res.Experience, experienceCap)
	patch.Projects = transformProjects(res.Projects)

	patch.PortfolioURL = strings.TrimSpace(res.Portfolio)
	if patch.PortfolioURL == "" {
		patch.PortfolioURL = strings.TrimSpace(res.Website)
	}
	patch.LinkedInURL = strings.TrimSpace(res.LinkedIn)

	if res.Location != nil {
		patch.Address = &domain.Address{
			City:    strings.TrimSpace(res.Location.City),
			State:   strings.TrimSpace(res.Location.State),
			Country: strings.TrimSpace(res.Location.Country),
		}
	}
	return patch
}

// splitFullName takes the first token as the first name and joins the rest
// with single spaces.
func splitFullName(full string) (string, string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func cleanStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func transformEducation(entries []map[string]any) []domain.Education {
	out := make([]domain.Education, 0, len(entries))
	for _, e := range entries {
		edu := domain.Education{
			Degree:         firstString(e, degreeKeys),
			Institution:    firstString(e, institutionKeys),
			GraduationYear: firstYear(e, yearKeys),
			Grade:          firstString(e, gradeKeys),
		}
		if edu.Degree == "" && edu.Institution == "" {
			continue
		}
		out = append(out, edu)
	}
	return out
}

// estimateExperience sums the first "<N> year" match of each duration and
// caps the total. Zero means no estimate.
func estimateExperience(entries []map[string]any, maxYears int) int {
	total := 0
	for _, e := range entries {
		duration, _ := e["duration"].(string)
		m := yearsPattern.FindStringSubmatch(duration)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		total += n
	}
	if total > maxYears {
		total = maxYears
	}
	return total
}

func transformProjects(entries []map[string]any) []domain.Project {
	out := make([]domain.Project, 0, len(entries))
	for _, e := range entries {
		p := domain.Project{
			Name:         firstString(e, projectNameKeys),
			Description:  firstString(e, projectDescKeys),
			URL:          firstString(e, projectURLKeys),
			Technologies: firstStringList(e, projectTechKeys),
		}
		if p.Name == "" && p.Description == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// firstString returns the first alias holding a non-empty value. Numbers
// are formatted without a trailing ".0".
func firstString(m map[string]any, keys []string) string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// firstYear accepts a JSON number or a numeric string.
func firstYear(m map[string]any, keys []string) *int {
	for _, k := range keys {
		switch v := m[k].(type) {
		case float64:
			if v > 0 {
				y := int(v)
				return &y
			}
		case string:
			if y, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && y > 0 {
				return &y
			}
		}
	}
	return nil
}

// firstStringList accepts a JSON array of strings or a comma-separated string.
func firstStringList(m map[string]any, keys []string) []string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case []any:
			items := make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok {
					items = append(items, s)
				}
			}
			if out := cleanStrings(items); len(out) > 0 {
				return out
			}
		case string:
			if out := cleanStrings(strings.Split(v, ",")); len(out) > 0 {
				return out
			}
		}
	}
	return []string{}
}

package usecase

import (
	"strings"

	"go-jobboard-backend/internal/domain"
)

// MergeProfile folds a résumé patch into an existing profile without
// discarding anything the candidate entered:
//   - scalars are filled only when empty (experience when zero)
//   - skills are unioned, first occurrence wins
//   - education and projects are appended
//   - address keys present in the patch overwrite the existing ones
//
// The input candidate is not modified.
func MergeProfile(c domain.Candidate, p domain.ProfilePatch) domain.Candidate {
	fillEmpty(&c.FirstName, p.FirstName)
	fillEmpty(&c.LastName, p.LastName)
	fillEmpty(&c.Email, p.Email)
	fillEmpty(&c.Phone, p.Phone)
	fillEmpty(&c.PortfolioURL, p.PortfolioURL)
	fillEmpty(&c.LinkedInURL, p.LinkedInURL)
	if c.Experience == 0 && p.Experience > 0 {
		c.Experience = p.Experience
	}

	c.Skills = unionSkills(c.Skills, p.Skills)
	c.Education = append(append([]domain.Education{}, c.Education...), p.Education...)
	c.Projects = append(append([]domain.Project{}, c.Projects...), p.Projects...)

	if p.Address != nil {
		overwriteNonEmpty(&c.Address.City, p.Address.City)
		overwriteNonEmpty(&c.Address.State, p.Address.State)
		overwriteNonEmpty(&c.Address.Country, p.Address.Country)
		overwriteNonEmpty(&c.Address.Street, p.Address.Street)
		overwriteNonEmpty(&c.Address.ZipCode, p.Address.ZipCode)
	}
	return c
}

func fillEmpty(dst *string, v string) {
	if strings.TrimSpace(*dst) == "" && v != "" {
		*dst = v
	}
}

func overwriteNonEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// unionSkills appends incoming skills not already present. Comparison is on
// the trimmed, case-folded value. Existing entries are kept as stored;
// incoming ones are trimmed and blank ones dropped.
func unionSkills(existing, incoming []string) []string {
	out := make([]string, 0, len(existing)+len(incoming))
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	for _, s := range existing {
		seen[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
		out = append(out, s)
	}
	for _, s := range incoming {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

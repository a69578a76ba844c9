package validation

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	// Letters, spaces and the punctuation that appears in real names: . ' -
	nameRegex = regexp.MustCompile(`^[\p{L} .'-]+$`)

	// Optional +, then 7-15 digits; spaces, dashes and parentheses are ignored
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// JobTypes are the accepted values for Candidate.PreferredJobType and Job.Type.
var JobTypes = []string{"full-time", "part-time", "contract", "internship", "remote"}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("valid_phone", ValidPhone)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
	_ = v.RegisterValidation("linkedin_url", LinkedInURL)
	_ = v.RegisterValidation("job_type", JobType)
}

// New returns a validator with the custom tags registered.
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// ValidName rejects digits and symbols. Empty values pass; combine with required.
func ValidName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return nameRegex.MatchString(val)
}

func ValidPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return phoneRegex.MatchString(NormalizePhone(val))
}

// NormalizePhone strips the formatting characters people type into phone fields.
func NormalizePhone(val string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '.':
			return -1
		}
		return r
	}, val)
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return false
		}
	}
	return true
}

// LinkedInURL accepts http(s) URLs on linkedin.com or any of its subdomains.
func LinkedInURL(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	u, err := url.Parse(val)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == "linkedin.com" || strings.HasSuffix(host, ".linkedin.com")
}

func JobType(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	for _, t := range JobTypes {
		if val == t {
			return true
		}
	}
	return false
}

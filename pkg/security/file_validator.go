package security

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// SniffLength is how many leading bytes ValidateResume needs to see.
const SniffLength = 3072

// FileValidationResult contains the result of file validation
type FileValidationResult struct {
	Valid        bool
	Extension    string
	DetectedMIME string
	Error        string
}

// Magic byte signatures for résumé document types
var magicBytes = map[string][][]byte{
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},                         // %PDF
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}}, // OLE Compound Document
	".docx": {{0x50, 0x4B, 0x03, 0x04}},                         // ZIP (PK..)
}

// Extensions accepted for each declared MIME type
var mimeExtensions = map[string][]string{
	"application/pdf":    {".pdf"},
	"application/msword": {".doc"},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {".docx"},
}

// ResumePolicy is the upload surface's accepted document set.
type ResumePolicy struct {
	AllowedMIMETypes []string
	MaxSize          int64
}

func (p ResumePolicy) allows(mime string) bool {
	for _, m := range p.AllowedMIMETypes {
		if strings.EqualFold(m, mime) {
			return true
		}
	}
	return false
}

// ValidateResume runs every check that must pass before a résumé is stored:
// 1. declared MIME type is in the policy
// 2. extension matches the declared type
// 3. size is within the policy maximum
// 4. leading bytes carry the expected magic signature
// 5. sniffed content type agrees with the declared one
func ValidateResume(policy ResumePolicy, filename, declaredMIME string, size int64, head []byte) FileValidationResult {
	declared := normalizeMIME(declaredMIME)
	result := FileValidationResult{}

	if !policy.allows(declared) {
		result.Error = fmt.Sprintf("content type %q is not accepted", declaredMIME)
		return result
	}

	ext := strings.ToLower(filepath.Ext(filename))
	result.Extension = ext
	if !extensionMatches(declared, ext) {
		result.Error = fmt.Sprintf("file extension %q does not match %s", ext, declared)
		return result
	}

	if size <= 0 {
		result.Error = "file is empty"
		return result
	}
	if policy.MaxSize > 0 && size > policy.MaxSize {
		result.Error = fmt.Sprintf("file exceeds the %d byte limit", policy.MaxSize)
		return result
	}

	if !validateMagicBytes(ext, head) {
		result.Error = "file content does not match extension (potential file spoofing detected)"
		return result
	}

	detected := mimetype.Detect(head)
	result.DetectedMIME = detected.String()
	if !sniffAgrees(declared, detected) {
		result.Error = "detected content type " + normalizeMIME(detected.String()) + " does not match " + declared
		return result
	}

	result.Valid = true
	return result
}

func normalizeMIME(m string) string {
	if i := strings.IndexByte(m, ';'); i >= 0 {
		m = m[:i]
	}
	return strings.ToLower(strings.TrimSpace(m))
}

func extensionMatches(mime, ext string) bool {
	for _, e := range mimeExtensions[mime] {
		if e == ext {
			return true
		}
	}
	return false
}

// sniffAgrees walks the detected type's parents so a .docx detected as
// application/zip still matches its declared Word type.
func sniffAgrees(declared string, detected *mimetype.MIME) bool {
	for m := detected; m != nil; m = m.Parent() {
		if m.Is(declared) {
			return true
		}
		if declared == "application/vnd.openxmlformats-officedocument.wordprocessingml.document" && m.Is("application/zip") {
			return true
		}
		if declared == "application/msword" && m.Is("application/x-ole-storage") {
			return true
		}
	}
	return false
}

// validateMagicBytes checks if file content starts with expected magic bytes
func validateMagicBytes(ext string, data []byte) bool {
	if len(data) < 4 {
		return false
	}
	signatures, ok := magicBytes[ext]
	if !ok {
		return false
	}
	for _, sig := range signatures {
		if len(data) >= len(sig) && bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}

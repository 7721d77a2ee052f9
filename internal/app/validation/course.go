package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"coursecatalog/internal/app/models"
)

// User-facing messages, one per field rule. The wording is shared with the
// client-side form hints, but the server re-checks everything since the
// form is also reachable via direct POST.
const (
	MsgCode        = "Course code must be alphanumeric and max 6 characters."
	MsgName        = "Course name is required and must be max 60 characters."
	MsgProgression = "Progression must be one of A, B or C."
	MsgSyllabus    = "Syllabus must be a valid URL starting with https."
)

var validate = validator.New()

// Result holds the outcome of validating raw course input.
type Result struct {
	Valid     bool
	Errors    []string
	Sanitized models.CourseInput
}

// ValidateCourseInput trims all fields and runs the four field rules
// independently, never short-circuiting. Errors lists the failed rules in
// field order (code, name, progression, syllabus). Sanitized always
// carries the trimmed values, valid or not, so a failed submission can be
// echoed back into the form.
func ValidateCourseInput(raw models.CourseInput) Result {
	sanitized := models.CourseInput{
		Code:        strings.TrimSpace(raw.Code),
		Name:        strings.TrimSpace(raw.Name),
		Syllabus:    strings.TrimSpace(raw.Syllabus),
		Progression: strings.TrimSpace(raw.Progression),
	}

	var errs []string
	if validate.Var(sanitized.Code, "required,alphanum,max=6") != nil {
		errs = append(errs, MsgCode)
	}
	if validate.Var(sanitized.Name, "required,max=60") != nil {
		errs = append(errs, MsgName)
	}
	if validate.Var(sanitized.Progression, "required,oneof=A B C") != nil {
		errs = append(errs, MsgProgression)
	}
	if validate.Var(sanitized.Syllabus, "required,url,startswith=https://") != nil {
		errs = append(errs, MsgSyllabus)
	}

	return Result{
		Valid:     len(errs) == 0,
		Errors:    errs,
		Sanitized: sanitized,
	}
}

// EchoMap returns the sanitized values keyed by form field name, used to
// repopulate the form after a failed submission.
func (r Result) EchoMap() map[string]string {
	return map[string]string{
		"coursecode":  r.Sanitized.Code,
		"coursename":  r.Sanitized.Name,
		"syllabus":    r.Sanitized.Syllabus,
		"progression": r.Sanitized.Progression,
	}
}

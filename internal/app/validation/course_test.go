package validation

import (
	"reflect"
	"testing"

	"coursecatalog/internal/app/models"
)

func TestValidateCourseInputValid(t *testing.T) {
	result := ValidateCourseInput(models.CourseInput{
		Code:        "  CS101 ",
		Name:        " Intro to CS ",
		Syllabus:    " https://example.com/cs101 ",
		Progression: " A ",
	})
	if !result.Valid {
		t.Fatalf("expected valid input, got errors: %v", result.Errors)
	}
	want := models.CourseInput{
		Code:        "CS101",
		Name:        "Intro to CS",
		Syllabus:    "https://example.com/cs101",
		Progression: "A",
	}
	if result.Sanitized != want {
		t.Fatalf("expected sanitized %+v, got %+v", want, result.Sanitized)
	}
}

func TestValidateCourseInputAllRulesFail(t *testing.T) {
	result := ValidateCourseInput(models.CourseInput{
		Code:        "TOOLONGCODE",
		Name:        "",
		Progression: "Z",
		Syllabus:    "http://x.com",
	})
	if result.Valid {
		t.Fatalf("expected invalid input")
	}
	want := []string{MsgCode, MsgName, MsgProgression, MsgSyllabus}
	if !reflect.DeepEqual(result.Errors, want) {
		t.Fatalf("expected errors %v, got %v", want, result.Errors)
	}
}

func TestValidateCourseInputIndependentRules(t *testing.T) {
	valid := models.CourseInput{
		Code:        "DT162G",
		Name:        "Web Development",
		Syllabus:    "https://example.com/dt162g",
		Progression: "B",
	}

	cases := []struct {
		name   string
		mutate func(*models.CourseInput)
		want   string
	}{
		{"empty code", func(in *models.CourseInput) { in.Code = "" }, MsgCode},
		{"non-alphanumeric code", func(in *models.CourseInput) { in.Code = "DT-62G" }, MsgCode},
		{"code too long", func(in *models.CourseInput) { in.Code = "DT162GX" }, MsgCode},
		{"empty name", func(in *models.CourseInput) { in.Name = "   " }, MsgName},
		{"name too long", func(in *models.CourseInput) {
			long := ""
			for i := 0; i < 61; i++ {
				long += "x"
			}
			in.Name = long
		}, MsgName},
		{"bad progression", func(in *models.CourseInput) { in.Progression = "D" }, MsgProgression},
		{"lowercase progression", func(in *models.CourseInput) { in.Progression = "a" }, MsgProgression},
		{"http syllabus", func(in *models.CourseInput) { in.Syllabus = "http://example.com" }, MsgSyllabus},
		{"relative syllabus", func(in *models.CourseInput) { in.Syllabus = "example.com/syllabus" }, MsgSyllabus},
		{"empty syllabus", func(in *models.CourseInput) { in.Syllabus = "" }, MsgSyllabus},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := valid
			tc.mutate(&input)
			result := ValidateCourseInput(input)
			if result.Valid {
				t.Fatalf("expected invalid input")
			}
			if len(result.Errors) != 1 || result.Errors[0] != tc.want {
				t.Fatalf("expected single error %q, got %v", tc.want, result.Errors)
			}
		})
	}
}

func TestValidateCourseInputMissingFieldsTreatedAsEmpty(t *testing.T) {
	result := ValidateCourseInput(models.CourseInput{})
	if result.Valid {
		t.Fatalf("expected empty input to be invalid")
	}
	if len(result.Errors) != 4 {
		t.Fatalf("expected all four rules to fail, got %v", result.Errors)
	}
}

func TestValidateCourseInputTrimIdempotent(t *testing.T) {
	raw := models.CourseInput{
		Code:        " cs1 ",
		Name:        "  Basics  ",
		Syllabus:    " https://example.com ",
		Progression: "C ",
	}
	first := ValidateCourseInput(raw)
	second := ValidateCourseInput(first.Sanitized)
	if first.Valid != second.Valid {
		t.Fatalf("expected same outcome for raw and sanitized input")
	}
	if second.Sanitized != first.Sanitized {
		t.Fatalf("expected sanitized input to be a fixed point, got %+v then %+v",
			first.Sanitized, second.Sanitized)
	}
}

func TestEchoMapUsesFormFieldNames(t *testing.T) {
	result := ValidateCourseInput(models.CourseInput{
		Code:        "CS101",
		Name:        "Intro",
		Syllabus:    "https://example.com",
		Progression: "A",
	})
	echo := result.EchoMap()
	want := map[string]string{
		"coursecode":  "CS101",
		"coursename":  "Intro",
		"syllabus":    "https://example.com",
		"progression": "A",
	}
	if !reflect.DeepEqual(echo, want) {
		t.Fatalf("expected echo %v, got %v", want, echo)
	}
}

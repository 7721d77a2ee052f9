package models

import "time"

// Progression represents the course level tag.
type Progression string

const (
	ProgressionA Progression = "A"
	ProgressionB Progression = "B"
	ProgressionC Progression = "C"
)

// Valid reports whether the progression is one of the allowed levels.
func (p Progression) Valid() bool {
	return p == ProgressionA || p == ProgressionB || p == ProgressionC
}

// Course represents a course record in the catalog.
type Course struct {
	ID          int64       `db:"id"`
	Code        string      `db:"coursecode"`
	Name        string      `db:"coursename"`
	Syllabus    string      `db:"syllabus"`
	Progression Progression `db:"progression"`
	CreatedAt   time.Time   `db:"created_at"`
	UpdatedAt   *time.Time  `db:"updated_at"` // Pointer to handle NULL
}

// EffectiveTime is the timestamp used for recency ordering: the last
// update when one exists, otherwise the creation time.
func (c *Course) EffectiveTime() time.Time {
	if c.UpdatedAt != nil {
		return *c.UpdatedAt
	}
	return c.CreatedAt
}

// CourseInput holds raw course form fields before validation. Field names
// match the HTML form and the courses table columns.
type CourseInput struct {
	Code        string `form:"coursecode"`
	Name        string `form:"coursename"`
	Syllabus    string `form:"syllabus"`
	Progression string `form:"progression"`
}

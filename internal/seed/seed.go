package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"coursecatalog/internal/db"
)

// sampleCourses populate an empty catalog in development mode so the list
// view has something to show.
var sampleCourses = []struct {
	code        string
	name        string
	syllabus    string
	progression string
}{
	{"DT162G", "JavaScript-based Web Development", "https://www.miun.se/utbildning/kursplaner-och-utbildningsplaner/dt162g/", "A"},
	{"DT057G", "Web Development Fundamentals", "https://www.miun.se/utbildning/kursplaner-och-utbildningsplaner/dt057g/", "A"},
	{"DT093G", "Backend Development with Databases", "https://www.miun.se/utbildning/kursplaner-och-utbildningsplaner/dt093g/", "B"},
}

// CreateDefaultData inserts the sample courses when the table is empty.
// Intended for development mode only.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	var count int
	if err := database.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count courses before seeding: %w", err)
	}
	if count > 0 {
		lgr.Debug().Int("count", count).Msg("Courses already present, skipping seed")
		return nil
	}

	err := database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for _, course := range sampleCourses {
			_, err := tx.Exec(ctx,
				`INSERT INTO courses (coursecode, coursename, syllabus, progression) VALUES ($1, $2, $3, $4)`,
				course.code, course.name, course.syllabus, course.progression)
			if err != nil {
				return fmt.Errorf("failed to seed course %s: %w", course.code, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	lgr.Info().Int("count", len(sampleCourses)).Msg("Seeded sample courses")
	return nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"coursecatalog/internal/app/models"
	"coursecatalog/internal/pkg/apperrors"
	"coursecatalog/internal/pkg/logger"
)

// ErrCourseNotFound is returned when a course is not found.
var ErrCourseNotFound = apperrors.ErrCourseNotFound

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	// Use squirrel instance with placeholder format
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListAll retrieves all courses ordered by most recent activity first:
// the last update when one exists, otherwise the creation time.
func (r *CourseRepository) ListAll(ctx context.Context) ([]*models.Course, error) {
	sql, args, err := r.sb.Select("id", "coursecode", "coursename", "syllabus", "progression", "created_at", "updated_at").
		From("courses").
		OrderBy("COALESCE(updated_at, created_at) DESC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course := &models.Course{}
		if err := rows.Scan(&course.ID, &course.Code, &course.Name, &course.Syllabus,
			&course.Progression, &course.CreatedAt, &course.UpdatedAt); err != nil {
			logger.Error().Err(err).Msg("Error scanning course row during list")
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating course rows")
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, nil
}

// Count returns the total number of course records.
func (r *CourseRepository) Count(ctx context.Context) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("courses").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building count courses SQL")
		return 0, fmt.Errorf("failed to build count courses query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error executing count courses query")
		return 0, fmt.Errorf("error counting courses: %w", err)
	}

	return count, nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select("id", "coursecode", "coursename", "syllabus", "progression", "created_at", "updated_at").
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get course by ID SQL")
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course := &models.Course{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.Code, &course.Name,
		&course.Syllabus, &course.Progression, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}

	return course, nil
}

// Insert creates a new course from sanitized input and returns its id.
// created_at is set by the table default at the storage layer; updated_at
// stays NULL until the first update.
func (r *CourseRepository) Insert(ctx context.Context, input models.CourseInput) (int64, error) {
	sql, args, err := r.sb.Insert("courses").
		Columns("coursecode", "coursename", "syllabus", "progression").
		Values(input.Code, input.Name, input.Syllabus, input.Progression).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building insert course SQL")
		return 0, fmt.Errorf("failed to build insert course query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing insert course query")
		return 0, fmt.Errorf("error inserting course: %w", err)
	}

	return id, nil
}

// Update replaces all four user fields of an existing course as a unit and
// stamps updated_at.
func (r *CourseRepository) Update(ctx context.Context, id int64, input models.CourseInput) error {
	sql, args, err := r.sb.Update("courses").
		SetMap(map[string]interface{}{
			"coursecode":  input.Code,
			"coursename":  input.Name,
			"syllabus":    input.Syllabus,
			"progression": input.Progression,
			"updated_at":  squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update course SQL")
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", id).Msg("Error executing update course query")
		return fmt.Errorf("error updating course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		// ID did not exist
		return ErrCourseNotFound
	}

	return nil
}

// Delete deletes a course by ID. Deleting an absent id is not an error.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building delete course SQL")
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("courseID", id).Msg("Error executing delete course query")
		return fmt.Errorf("error deleting course: %w", err)
	}

	return nil
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"coursecatalog/internal/app/models"
	"coursecatalog/internal/app/validation"
	"coursecatalog/internal/pkg/apperrors"
)

// DefaultMaxCourses bounds the catalog when no cap is configured. The cap
// exists to bound an otherwise unbounded public write surface.
const DefaultMaxCourses = 15

// CourseStore is the persistence boundary used by the course service.
type CourseStore interface {
	ListAll(ctx context.Context) ([]*models.Course, error)
	Count(ctx context.Context) (int, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	Insert(ctx context.Context, input models.CourseInput) (int64, error)
	Update(ctx context.Context, id int64, input models.CourseInput) error
	Delete(ctx context.Context, id int64) error
}

// CourseService defines the interface for course lifecycle operations
type CourseService interface {
	ListCourses(ctx context.Context) ([]*models.Course, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	CreateCourse(ctx context.Context, raw models.CourseInput) (int64, error)
	UpdateCourse(ctx context.Context, id int64, raw models.CourseInput) error
	DeleteCourse(ctx context.Context, id int64) error
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	store      CourseStore
	maxCourses int
	logger     zerolog.Logger
}

// NewCourseService creates a new course service instance
func NewCourseService(store CourseStore, maxCourses int, lgr zerolog.Logger) CourseService {
	if maxCourses <= 0 {
		maxCourses = DefaultMaxCourses
	}
	return &courseServiceImpl{
		store:      store,
		maxCourses: maxCourses,
		logger:     lgr,
	}
}

// ListCourses retrieves all courses ordered by most recent activity first
func (s *courseServiceImpl) ListCourses(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return courses, nil
}

// GetCourse retrieves a course by ID
func (s *courseServiceImpl) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}

// CreateCourse validates raw input, enforces the record cap, and inserts a
// new course. Validation failure yields a ValidationError carrying the
// messages and the sanitized echo; a full catalog yields ErrCatalogFull.
//
// The count-then-insert cap check is a read-then-write race: two near
// simultaneous creates can both pass it and overshoot the cap by one.
// Accepted for this system's risk profile.
func (s *courseServiceImpl) CreateCourse(ctx context.Context, raw models.CourseInput) (int64, error) {
	result := validation.ValidateCourseInput(raw)
	if !result.Valid {
		return 0, apperrors.NewValidationError(result.Errors, result.EchoMap())
	}

	count, err := s.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("error checking course count: %w", err)
	}
	if count >= s.maxCourses {
		s.logger.Warn().Int("count", count).Int("max", s.maxCourses).Msg("Course cap reached, create rejected")
		return 0, apperrors.NewCustomError(apperrors.ErrCatalogFull,
			fmt.Sprintf("You can only add up to %d courses.", s.maxCourses))
	}

	id, err := s.store.Insert(ctx, result.Sanitized)
	if err != nil {
		return 0, fmt.Errorf("error creating course: %w", err)
	}
	return id, nil
}

// UpdateCourse validates raw input and replaces an existing course's
// fields as a unit.
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id int64, raw models.CourseInput) error {
	result := validation.ValidateCourseInput(raw)
	if !result.Valid {
		return apperrors.NewValidationError(result.Errors, result.EchoMap())
	}

	if err := s.store.Update(ctx, id, result.Sanitized); err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error updating course: %w", err)
	}
	return nil
}

// DeleteCourse deletes a course by ID. Deleting an absent id is a no-op
// success, so the operation is idempotent.
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	return nil
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"coursecatalog/internal/app/models"
	"coursecatalog/internal/app/validation"
	"coursecatalog/internal/pkg/apperrors"
)

// fakeStore is an in-memory CourseStore that records calls.
type fakeStore struct {
	courses map[int64]*models.Course
	nextID  int64

	insertCalls int
	updateCalls int
	deleteCalls int
	countCalls  int

	countErr  error
	insertErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{courses: map[int64]*models.Course{}, nextID: 1}
}

func (s *fakeStore) ListAll(ctx context.Context) ([]*models.Course, error) {
	var out []*models.Course
	for _, c := range s.courses {
		out = append(out, c)
	}
	return out, nil
}

func (s *fakeStore) Count(ctx context.Context) (int, error) {
	s.countCalls++
	if s.countErr != nil {
		return 0, s.countErr
	}
	return len(s.courses), nil
}

func (s *fakeStore) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	course, ok := s.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

func (s *fakeStore) Insert(ctx context.Context, input models.CourseInput) (int64, error) {
	s.insertCalls++
	if s.insertErr != nil {
		return 0, s.insertErr
	}
	id := s.nextID
	s.nextID++
	s.courses[id] = &models.Course{
		ID:          id,
		Code:        input.Code,
		Name:        input.Name,
		Syllabus:    input.Syllabus,
		Progression: models.Progression(input.Progression),
		CreatedAt:   time.Now(),
	}
	return id, nil
}

func (s *fakeStore) Update(ctx context.Context, id int64, input models.CourseInput) error {
	s.updateCalls++
	course, ok := s.courses[id]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	now := time.Now()
	course.Code = input.Code
	course.Name = input.Name
	course.Syllabus = input.Syllabus
	course.Progression = models.Progression(input.Progression)
	course.UpdatedAt = &now
	return nil
}

func (s *fakeStore) Delete(ctx context.Context, id int64) error {
	s.deleteCalls++
	delete(s.courses, id)
	return nil
}

func newService(store *fakeStore, max int) CourseService {
	return NewCourseService(store, max, zerolog.Nop())
}

func validInput() models.CourseInput {
	return models.CourseInput{
		Code:        "CS101",
		Name:        "Intro to CS",
		Syllabus:    "https://example.com/cs101",
		Progression: "A",
	}
}

func TestCreateCourseInsertsSanitizedInput(t *testing.T) {
	store := newFakeStore()
	svc := newService(store, 15)

	raw := models.CourseInput{
		Code:        "  CS101 ",
		Name:        " Intro to CS ",
		Syllabus:    " https://example.com/cs101 ",
		Progression: " A ",
	}
	id, err := svc.CreateCourse(context.Background(), raw)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	course, err := svc.GetCourse(context.Background(), id)
	if err != nil {
		t.Fatalf("get after create: %v", err)
	}
	if course.Code != "CS101" || course.Name != "Intro to CS" ||
		course.Syllabus != "https://example.com/cs101" || course.Progression != models.ProgressionA {
		t.Fatalf("expected sanitized fields to round trip, got %+v", course)
	}
	if course.UpdatedAt != nil {
		t.Fatalf("expected no update timestamp on a fresh record")
	}
	if course.CreatedAt.IsZero() {
		t.Fatalf("expected creation timestamp to be set")
	}
}

func TestCreateCourseValidationFailureSkipsStore(t *testing.T) {
	store := newFakeStore()
	svc := newService(store, 15)

	_, err := svc.CreateCourse(context.Background(), models.CourseInput{
		Code:        "TOOLONGCODE",
		Name:        "",
		Progression: "Z",
		Syllabus:    "http://x.com",
	})
	var ve *apperrors.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Messages) != 4 {
		t.Fatalf("expected all four messages, got %v", ve.Messages)
	}
	if ve.Messages[0] != validation.MsgCode {
		t.Fatalf("expected field-ordered messages, got %v", ve.Messages)
	}
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected error to match ErrValidationFailed")
	}
	if store.insertCalls != 0 || store.countCalls != 0 {
		t.Fatalf("validation failure must not reach the store")
	}
}

func TestCreateCourseCapReached(t *testing.T) {
	store := newFakeStore()
	svc := newService(store, 3)

	for i := 0; i < 3; i++ {
		if _, err := svc.CreateCourse(context.Background(), validInput()); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	_, err := svc.CreateCourse(context.Background(), validInput())
	if !errors.Is(err, apperrors.ErrCatalogFull) {
		t.Fatalf("expected ErrCatalogFull, got %v", err)
	}
	if err.Error() != "You can only add up to 3 courses." {
		t.Fatalf("unexpected cap message: %q", err.Error())
	}
	if len(store.courses) != 3 {
		t.Fatalf("cap hit must not insert, have %d records", len(store.courses))
	}
}

func TestCreateCourseCountFailure(t *testing.T) {
	store := newFakeStore()
	store.countErr = errors.New("connection reset")
	svc := newService(store, 15)

	_, err := svc.CreateCourse(context.Background(), validInput())
	if err == nil {
		t.Fatalf("expected storage error to surface")
	}
	if store.insertCalls != 0 {
		t.Fatalf("count failure must not insert")
	}
}

func TestUpdateCourseSetsTimestampAndKeepsIdentity(t *testing.T) {
	store := newFakeStore()
	svc := newService(store, 15)

	id, err := svc.CreateCourse(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	created, _ := svc.GetCourse(context.Background(), id)
	createdAt := created.CreatedAt

	updated := validInput()
	updated.Progression = "B"
	if err := svc.UpdateCourse(context.Background(), id, updated); err != nil {
		t.Fatalf("update: %v", err)
	}

	course, err := svc.GetCourse(context.Background(), id)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if course.Progression != models.ProgressionB {
		t.Fatalf("expected progression B, got %s", course.Progression)
	}
	if course.UpdatedAt == nil {
		t.Fatalf("expected update timestamp to be set")
	}
	if course.UpdatedAt.Before(createdAt) {
		t.Fatalf("update timestamp must not precede creation")
	}
	if course.ID != id || !course.CreatedAt.Equal(createdAt) {
		t.Fatalf("update must not change id or creation time")
	}
}

func TestUpdateCourseValidationFailureCarriesEcho(t *testing.T) {
	store := newFakeStore()
	svc := newService(store, 15)

	err := svc.UpdateCourse(context.Background(), 1, models.CourseInput{
		Code:        " BAD CODE ",
		Name:        "Name",
		Syllabus:    "https://example.com",
		Progression: "A",
	})
	var ve *apperrors.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Sanitized["coursecode"] != "BAD CODE" {
		t.Fatalf("expected trimmed echo of the rejected value, got %v", ve.Sanitized)
	}
	if store.updateCalls != 0 {
		t.Fatalf("validation failure must not reach the store")
	}
}

func TestUpdateCourseNotFound(t *testing.T) {
	svc := newService(newFakeStore(), 15)

	err := svc.UpdateCourse(context.Background(), 42, validInput())
	if !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestDeleteCourseIdempotent(t *testing.T) {
	store := newFakeStore()
	svc := newService(store, 15)

	id, err := svc.CreateCourse(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.DeleteCourse(context.Background(), id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	// Deleting the same id again is still a success.
	if err := svc.DeleteCourse(context.Background(), id); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if len(store.courses) != 0 {
		t.Fatalf("expected empty store, have %d records", len(store.courses))
	}
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"coursecatalog/internal/app/models"
	"coursecatalog/internal/app/services"
	"coursecatalog/internal/pkg/apperrors"
	"coursecatalog/internal/pkg/flash"
)

// Messages carried across redirects after mutations.
const (
	msgCourseAdded   = "Course added successfully."
	msgCourseUpdated = "Course updated successfully."
	msgCourseDeleted = "Course deleted successfully."
	msgInvalidID     = "Invalid course id."
	msgStorageFail   = "Something went wrong. Please try again."
)

// CourseController handles the course record lifecycle: list, create,
// edit, update, delete. Every mutation redirects with a flash message so a
// page reload never re-triggers it.
type CourseController struct {
	courseService services.CourseService
	logger        zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService, lgr zerolog.Logger) *CourseController {
	return &CourseController{
		courseService: courseService,
		logger:        lgr,
	}
}

// parseID parses a course id taken from a URL path segment. The segment is
// attacker-controllable free text, so only non-negative integers pass.
func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseUint(raw, 10, 63)
	if err != nil {
		return 0, false
	}
	return int64(id), true
}

// List renders the course list together with any pending flash messages.
func (c *CourseController) List(ctx *gin.Context) {
	courses, err := c.courseService.ListCourses(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list courses")
		ctx.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"Title":   "Error",
			"Status":  http.StatusInternalServerError,
			"Message": "Could not load the course list.",
		})
		return
	}

	ctx.HTML(http.StatusOK, "index.html", gin.H{
		"Title":    "Courses",
		"Courses":  courses,
		"Messages": c.drainFlash(ctx),
	})
}

// NewForm renders an empty creation form.
func (c *CourseController) NewForm(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "form.html", gin.H{
		"Title":    "Add course",
		"Fields":   map[string]string{},
		"Messages": c.drainFlash(ctx),
	})
}

// Create handles course creation from the submitted form.
func (c *CourseController) Create(ctx *gin.Context) {
	var raw models.CourseInput
	if err := ctx.ShouldBind(&raw); err != nil {
		// Missing fields bind as empty strings; anything else is a
		// malformed body.
		c.logger.Warn().Err(err).Msg("Failed to bind create course form")
	}

	mailbox := flash.New(ctx)
	_, err := c.courseService.CreateCourse(ctx.Request.Context(), raw)
	if err != nil {
		var ve *apperrors.ValidationError
		switch {
		case errors.As(err, &ve):
			c.pushFlash(mailbox, flash.SeverityError, ve.Messages...)
		case errors.Is(err, apperrors.ErrCatalogFull):
			c.pushFlash(mailbox, flash.SeverityError, err.Error())
		default:
			c.logger.Error().Err(err).Msg("Failed to create course")
			c.pushFlash(mailbox, flash.SeverityError, msgStorageFail)
		}
		ctx.Redirect(http.StatusSeeOther, "/")
		return
	}

	c.pushFlash(mailbox, flash.SeveritySuccess, msgCourseAdded)
	ctx.Redirect(http.StatusSeeOther, "/")
}

// EditForm renders the form pre-filled with an existing course. A stashed
// draft from a failed update takes precedence over the stored record.
func (c *CourseController) EditForm(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		c.renderBadRequest(ctx)
		return
	}

	course, err := c.courseService.GetCourse(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			ctx.HTML(http.StatusNotFound, "error.html", gin.H{
				"Title":   "Not found",
				"Status":  http.StatusNotFound,
				"Message": "No such course.",
			})
			return
		}
		c.logger.Error().Err(err).Int64("courseID", id).Msg("Failed to load course for editing")
		ctx.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"Title":   "Error",
			"Status":  http.StatusInternalServerError,
			"Message": "Could not load the course.",
		})
		return
	}

	fields := map[string]string{
		"coursecode":  course.Code,
		"coursename":  course.Name,
		"syllabus":    course.Syllabus,
		"progression": string(course.Progression),
	}

	mailbox := flash.New(ctx)
	if draft, found, err := mailbox.TakeDraft(id); err != nil {
		c.logger.Error().Err(err).Int64("courseID", id).Msg("Failed to read form draft")
	} else if found {
		fields = draft
	}

	ctx.HTML(http.StatusOK, "form.html", gin.H{
		"Title":     "Edit course",
		"EditingID": id,
		"Fields":    fields,
		"Messages":  c.drainFlash(ctx),
	})
}

// Update handles course updates from the submitted form. On validation
// failure the raw body is stashed as a recoverable draft and the user is
// sent back to the edit form.
func (c *CourseController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		c.renderBadRequest(ctx)
		return
	}

	var raw models.CourseInput
	if err := ctx.ShouldBind(&raw); err != nil {
		c.logger.Warn().Err(err).Int64("courseID", id).Msg("Failed to bind update course form")
	}

	mailbox := flash.New(ctx)
	err := c.courseService.UpdateCourse(ctx.Request.Context(), id, raw)
	if err != nil {
		var ve *apperrors.ValidationError
		switch {
		case errors.As(err, &ve):
			c.pushFlash(mailbox, flash.SeverityError, ve.Messages...)
			if err := mailbox.SaveDraft(id, ve.Sanitized); err != nil {
				c.logger.Error().Err(err).Int64("courseID", id).Msg("Failed to stash form draft")
			}
			ctx.Redirect(http.StatusSeeOther, "/form/"+strconv.FormatInt(id, 10))
		case errors.Is(err, apperrors.ErrCourseNotFound):
			ctx.HTML(http.StatusNotFound, "error.html", gin.H{
				"Title":   "Not found",
				"Status":  http.StatusNotFound,
				"Message": "No such course.",
			})
		default:
			c.logger.Error().Err(err).Int64("courseID", id).Msg("Failed to update course")
			c.pushFlash(mailbox, flash.SeverityError, msgStorageFail)
			ctx.Redirect(http.StatusSeeOther, "/form/"+strconv.FormatInt(id, 10))
		}
		return
	}

	if err := mailbox.ClearDraft(id); err != nil {
		c.logger.Error().Err(err).Int64("courseID", id).Msg("Failed to clear form draft")
	}
	c.pushFlash(mailbox, flash.SeveritySuccess, msgCourseUpdated)
	ctx.Redirect(http.StatusSeeOther, "/")
}

// Delete handles course deletion. A malformed id redirects with an error
// flash without touching the store; deleting an absent id still succeeds.
func (c *CourseController) Delete(ctx *gin.Context) {
	mailbox := flash.New(ctx)

	id, ok := parseID(ctx.Param("id"))
	if !ok {
		c.pushFlash(mailbox, flash.SeverityError, msgInvalidID)
		ctx.Redirect(http.StatusSeeOther, "/")
		return
	}

	if err := c.courseService.DeleteCourse(ctx.Request.Context(), id); err != nil {
		c.logger.Error().Err(err).Int64("courseID", id).Msg("Failed to delete course")
		c.pushFlash(mailbox, flash.SeverityError, msgStorageFail)
		ctx.Redirect(http.StatusSeeOther, "/")
		return
	}

	c.pushFlash(mailbox, flash.SeveritySuccess, msgCourseDeleted)
	ctx.Redirect(http.StatusSeeOther, "/")
}

func (c *CourseController) renderBadRequest(ctx *gin.Context) {
	ctx.HTML(http.StatusBadRequest, "error.html", gin.H{
		"Title":   "Bad request",
		"Status":  http.StatusBadRequest,
		"Message": "Course id must be a number.",
	})
}

func (c *CourseController) drainFlash(ctx *gin.Context) map[string][]string {
	messages, err := flash.New(ctx).DrainAll()
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to drain flash messages")
		return map[string][]string{}
	}
	return messages
}

func (c *CourseController) pushFlash(mailbox *flash.Mailbox, severity string, messages ...string) {
	if err := mailbox.Push(severity, messages...); err != nil {
		c.logger.Error().Err(err).Msg("Failed to push flash message")
	}
}

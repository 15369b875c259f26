package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"exam_scheduler/internal/model"
	"exam_scheduler/internal/schedule"
	"exam_scheduler/internal/service"
)

type handlers struct {
	svc    Services
	logger *zap.Logger
}

// writeError maps engine errors onto HTTP statuses. Store failures fall
// through to 500 with a generic body; they are logged, never exposed.
func (h *handlers) writeError(c *gin.Context, err error) {
	var validation schedule.ValidationErrors
	if errors.As(err, &validation) {
		msgs := make([]string, len(validation))
		for i, v := range validation {
			msgs[i] = v.Error()
		}
		c.JSON(http.StatusBadRequest, gin.H{"errors": msgs})
		return
	}

	switch {
	case errors.Is(err, service.ErrSlotNotFound),
		errors.Is(err, service.ErrCourseNotFound),
		errors.Is(err, service.ErrStudentNotFound),
		errors.Is(err, service.ErrTeacherNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSlotUnavailable),
		errors.Is(err, service.ErrInvalidStateTransition),
		errors.Is(err, service.ErrCallAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInsufficientCapacity),
		errors.Is(err, service.ErrNoSelectedStudents),
		errors.Is(err, model.ErrInvalidMark):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrWrongPassword):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotCourseOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	token, err := h.svc.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(sessionCookie, token, 0, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"msg": "login success"})
}

func (h *handlers) logout(c *gin.Context) {
	token, _ := c.Cookie(sessionCookie)
	if err := h.svc.Auth.Logout(c.Request.Context(), token); err != nil {
		h.writeError(c, err)
		return
	}
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"msg": "logout success"})
}

func (h *handlers) studentProfile(c *gin.Context) {
	student, err := h.svc.Users.StudentProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

func (h *handlers) studentExams(c *gin.Context) {
	exams, err := h.svc.Users.StudentExams(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if exams == nil {
		exams = []*model.StudentExam{}
	}
	c.JSON(http.StatusOK, exams)
}

func (h *handlers) availableSlots(c *gin.Context) {
	slots, err := h.svc.Booking.AvailableSlots(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

type slotKeyRequest struct {
	CourseID string `json:"course_id" binding:"required"`
	SlotDate string `json:"slot_date" binding:"required"`
	SlotHour string `json:"slot_hour" binding:"required"`
}

func (r *slotKeyRequest) key() model.SlotKey {
	return model.SlotKey{CourseID: r.CourseID, SlotDate: r.SlotDate, SlotHour: r.SlotHour}
}

func (h *handlers) bookSlot(c *gin.Context) {
	var req slotKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if err := h.svc.Booking.Book(c.Request.Context(), c.Param("id"), req.key()); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "slot booked"})
}

func (h *handlers) cancelSlot(c *gin.Context) {
	var req slotKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if err := h.svc.Booking.Cancel(c.Request.Context(), req.key()); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "booking cancelled"})
}

func (h *handlers) teacherProfile(c *gin.Context) {
	if c.GetString(principalKey) != c.Param("id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "not authorized for this teacher"})
		return
	}

	teacher, course, err := h.svc.Users.TeacherProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := gin.H{"id": teacher.ID, "name": teacher.Name, "surname": teacher.Surname}
	if course != nil {
		resp["course_id"] = course.ID
		resp["course_name"] = course.Name
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handlers) resultsOverview(c *gin.Context) {
	examDate := c.Query("exam_date")
	if examDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exam_date is required"})
		return
	}

	call := model.CallKey{CourseID: c.Param("course"), ExamDate: examDate}
	statuses, err := h.svc.Results.Overview(c.Request.Context(), call)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if statuses == nil {
		statuses = []*model.StudentStatus{}
	}
	c.JSON(http.StatusOK, statuses)
}

func (h *handlers) selectableStudents(c *gin.Context) {
	students, err := h.svc.Results.SelectableStudents(c.Request.Context(), c.Param("course"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if students == nil {
		students = []*model.Student{}
	}
	c.JSON(http.StatusOK, students)
}

type createCallRequest struct {
	ExamDate            string               `json:"exam_date" binding:"required"`
	SlotDurationMinutes int                  `json:"slot_duration_minutes" binding:"required,min=1"`
	Entries             []model.SessionEntry `json:"entries" binding:"required"`
	SelectedStudents    []string             `json:"selected_students" binding:"required"`
}

func (h *handlers) createCall(c *gin.Context) {
	var req createCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	// Non-multiple durations are corrected here, before the generator runs,
	// the same way the entry form rounds them up.
	entries := make([]model.SessionEntry, len(req.Entries))
	for i, entry := range req.Entries {
		entry.TotalDurationMinutes = schedule.RoundUpToSlot(entry.TotalDurationMinutes, req.SlotDurationMinutes)
		entries[i] = entry
	}

	session := model.ExamSession{
		CourseID:            c.Param("course"),
		ExamDate:            req.ExamDate,
		SlotDurationMinutes: req.SlotDurationMinutes,
		Entries:             entries,
	}

	slots, err := h.svc.Exams.CreateCall(c.Request.Context(), c.GetString(principalKey), session, req.SelectedStudents)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, slots)
}

type recordResultRequest struct {
	StudentID string `json:"stud_id" binding:"required"`
	SlotDate  string `json:"slot_date" binding:"required"`
	SlotHour  string `json:"slot_hour" binding:"required"`
	Mark      string `json:"mark" binding:"required"`
}

func (h *handlers) recordResult(c *gin.Context) {
	var req recordResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	mark, err := model.ParseMark(req.Mark)
	if err != nil {
		h.writeError(c, err)
		return
	}

	slotKey := model.SlotKey{CourseID: c.Param("course"), SlotDate: req.SlotDate, SlotHour: req.SlotHour}
	outcome, err := h.svc.Results.RecordResult(c.Request.Context(), slotKey, req.StudentID, mark)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if outcome.PassedFlagErr != nil {
		// The mark is saved; only the dependent enrollment write failed.
		c.JSON(http.StatusOK, gin.H{
			"status":  "partial",
			"warning": "mark saved, but the passed flag could not be updated",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "passed": outcome.PassedUpdated})
}

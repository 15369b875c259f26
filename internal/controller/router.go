// Package controller exposes the services over HTTP: JSON handlers, session
// cookie auth for teachers, and the error-to-status mapping.
package controller

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"exam_scheduler/internal/service"
)

// Services bundles everything the router needs.
type Services struct {
	Auth    *service.AuthService
	Users   *service.UserService
	Booking *service.BookingService
	Exams   *service.ExamService
	Results *service.ResultsService
}

// NewRouter builds the API router. Student routes follow the original
// unauthenticated shape; teacher routes require a valid session cookie.
func NewRouter(svc Services, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	h := &handlers{svc: svc, logger: logger}

	api := router.Group("/api")
	{
		api.POST("/login", h.login)
		api.POST("/logout", h.logout)

		students := api.Group("/students")
		{
			students.GET("/:id", h.studentProfile)
			students.GET("/:id/exams", h.studentExams)
			students.GET("/:id/slots", h.availableSlots)
			students.PUT("/:id/slots", h.bookSlot)
			students.DELETE("/:id/slots", h.cancelSlot)
		}

		teachers := api.Group("/teachers", TeacherAuth(svc.Auth))
		{
			teachers.GET("/:id", h.teacherProfile)
			teachers.GET("/:id/courses/:course/overview", h.resultsOverview)
			teachers.GET("/:id/courses/:course/selectables", h.selectableStudents)
			teachers.POST("/:id/courses/:course/slots", h.createCall)
			teachers.PUT("/:id/courses/:course/slots", h.recordResult)
		}
	}

	return router
}

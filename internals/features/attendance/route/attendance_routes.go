// file: internals/features/attendance/route/attendance_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tutorku_backend/internals/constants"
	"tutorku_backend/internals/features/attendance/controller"
	authMiddleware "tutorku_backend/internals/middlewares/auth"
)

func AttendanceRoutes(api fiber.Router, db *gorm.DB) {
	lessonHandler := &controller.LessonHandler{DB: db}
	attendanceHandler := &controller.AttendanceHandler{DB: db}

	l := api.Group("/lessons")
	l.Get("/", lessonHandler.List)
	l.Get("/:id/attendances", attendanceHandler.ListByLesson)

	teacherOnly := authMiddleware.OnlyRolesSlice(
		constants.RoleErrorTeacher("jadwal & absensi"),
		constants.TeacherAndAbove,
	)
	l.Post("/", teacherOnly, lessonHandler.Create)
	l.Post("/:id/status", teacherOnly, lessonHandler.SetStatus)
	l.Post("/:id/attendances", teacherOnly, attendanceHandler.Record)
}

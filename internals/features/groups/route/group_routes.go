// file: internals/features/groups/route/group_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tutorku_backend/internals/constants"
	"tutorku_backend/internals/features/groups/controller"
	authMiddleware "tutorku_backend/internals/middlewares/auth"
)

func GroupRoutes(api fiber.Router, db *gorm.DB) {
	groupHandler := &controller.StudyGroupHandler{DB: db}
	memberHandler := &controller.StudyGroupMemberHandler{DB: db}

	g := api.Group("/groups")

	// semua user login boleh lihat detail grup
	g.Get("/:id", groupHandler.GetByID)
	g.Get("/:id/members", memberHandler.ListMembers)

	// mutasi hanya untuk teacher/admin
	teacherOnly := authMiddleware.OnlyRolesSlice(
		constants.RoleErrorTeacher("kelola grup"),
		constants.TeacherAndAbove,
	)
	g.Get("/", teacherOnly, groupHandler.List)
	g.Post("/", teacherOnly, groupHandler.Create)
	g.Patch("/:id", teacherOnly, groupHandler.Update)
	g.Delete("/:id", teacherOnly, groupHandler.Delete)
	g.Post("/:id/members", teacherOnly, memberHandler.AddMember)
	g.Delete("/:id/members/:member_id", teacherOnly, memberHandler.RemoveMember)
}

package handler

import "github.com/gin-gonic/gin"

// Handlers bundles everything RegisterRoutes mounts.
type Handlers struct {
	Student    *StudentHandler
	Instructor *InstructorHandler
	Registrar  *RegistrarHandler
	Catalog    *CatalogHandler
	Metrics    *MetricsHandler
}

// RegisterRoutes mounts the enrollment API on api, keeping the legacy path shapes.
func RegisterRoutes(api *gin.RouterGroup, h Handlers) {
	student := api.Group("/student")
	student.GET("/available_classes", h.Student.AvailableClasses)
	student.POST("/enroll_in_class/student/:student_id/class/:class_code/section/:section_number", h.Student.Enroll)
	student.DELETE("/drop_class/student/:student_id/class/:class_code/section/:section_number", h.Student.DropClass)
	student.GET("/waitlist_position/student/:student_id/class/:class_code/section/:section_number", h.Student.WaitlistPosition)
	student.DELETE("/remove_from_waitlist/student/:student_id/class/:class_code/section/:section_number", h.Student.LeaveWaitlist)

	instructor := api.Group("/instructor")
	instructor.GET("/enrollment/instructor/:instructor_id", h.Instructor.Roster)
	instructor.GET("/enrollment/instructor/:instructor_id/export", h.Instructor.ExportRoster)
	instructor.GET("/dropped/instructor/:instructor_id/class/:class_code/section/:section_number", h.Instructor.Dropped)
	instructor.DELETE("/drop_student/student/:student_id/class/:class_code/section/:section_number", h.Instructor.DropStudent)
	instructor.GET("/waitlist_for_class/instructor/:instructor_id/class/:class_code/section/:section_number", h.Instructor.Waitlist)

	registrar := api.Group("/registrar")
	registrar.POST("/new_class", h.Registrar.NewClass)
	registrar.DELETE("/remove_class/code/:class_code/section/:section_number", h.Registrar.RemoveClass)
	registrar.PUT("/change_instructor/class/:class_code/section/:section_number/new_instructor/:instructor_id", h.Registrar.ChangeInstructor)
	registrar.PUT("/freeze_enrollment/class/:class_code/section/:section_number", h.Registrar.FreezeEnrollment)

	api.GET("/all_classes", h.Catalog.AllClasses)
	api.GET("/student_details/:student_id", h.Catalog.StudentDetails)
	api.GET("/student_enrollment/:student_id", h.Catalog.StudentEnrollment)
	api.GET("/waitlist", h.Catalog.Waitlist)

	if h.Metrics != nil {
		api.GET("/metrics/summary", h.Metrics.Summary)
	}
}

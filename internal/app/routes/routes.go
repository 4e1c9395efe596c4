package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/institute/internal/app/controllers"
	"github.com/yigit/institute/internal/app/models"
	"github.com/yigit/institute/internal/middleware"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Auth    *controllers.AuthController
	Teacher *controllers.TeacherController
	Course  *controllers.CourseController
	Batch   *controllers.BatchController
	Student *controllers.StudentController
	Report  *controllers.ReportController
}

// SetupRouter configures all application routes under /api/v1
func SetupRouter(router *gin.Engine, ctrl Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	adminOnly := authMiddleware.RoleRequired(models.RoleAdmin)
	adminOrStudent := authMiddleware.RoleRequired(models.RoleAdmin, models.RoleStudent)
	adminOrTeacher := authMiddleware.RoleRequired(models.RoleAdmin, models.RoleTeacher)

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", ctrl.Auth.Login)
		auth.POST("/register", ctrl.Auth.Register)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	authProtected := authenticated.Group("/auth")
	{
		authProtected.GET("/users", adminOnly, ctrl.Auth.ListUsers)
		authProtected.GET("/admin-data", adminOnly, ctrl.Auth.AdminData)
		authProtected.GET("/teacher-data", adminOrTeacher, ctrl.Auth.TeacherData)
	}

	teachers := authenticated.Group("/teachers")
	{
		teachers.GET("", ctrl.Teacher.ListTeachers)
		teachers.GET("/:id", ctrl.Teacher.GetTeacher)
		teachers.POST("", adminOnly, ctrl.Teacher.CreateTeacher)
		teachers.PUT("/:id", adminOnly, ctrl.Teacher.UpdateTeacher)
		teachers.DELETE("/:id", adminOnly, ctrl.Teacher.DeleteTeacher)
	}

	courses := authenticated.Group("/courses")
	{
		courses.GET("", ctrl.Course.ListCourses)
		courses.GET("/:id", ctrl.Course.GetCourse)
		courses.POST("", adminOnly, ctrl.Course.CreateCourse)
		courses.PUT("/:id", adminOnly, ctrl.Course.UpdateCourse)
		courses.DELETE("/:id", adminOnly, ctrl.Course.DeleteCourse)
	}

	batches := authenticated.Group("/batches")
	{
		batches.GET("", ctrl.Batch.ListBatches)
		batches.GET("/:id", ctrl.Batch.GetBatch)
		batches.POST("", adminOnly, ctrl.Batch.CreateBatch)
		batches.PUT("/:id", adminOnly, ctrl.Batch.UpdateBatch)
		batches.DELETE("/:id", adminOnly, ctrl.Batch.DeleteBatch)
	}

	students := authenticated.Group("/students")
	{
		students.GET("", ctrl.Student.ListStudents)
		students.GET("/courses", ctrl.Course.AvailableCourses)
		students.GET("/:id", ctrl.Student.GetStudent)
		students.GET("/:id/batches", ctrl.Student.StudentBatches)
		students.POST("", adminOnly, ctrl.Student.CreateStudent)
		students.POST("/enroll", adminOrStudent, ctrl.Student.Enroll)
		students.PUT("/:id", adminOrStudent, ctrl.Student.UpdateStudent)
		students.DELETE("/:id", adminOnly, ctrl.Student.DeleteStudent)
	}

	authenticated.GET("/reports/students", adminOrTeacher, ctrl.Report.StudentReport)
	authenticated.GET("/admin/reports/students", adminOrTeacher, ctrl.Report.StudentReport)
}

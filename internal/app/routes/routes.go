// Package routes wires controllers to URL paths and applies the
// authentication and authorization middleware.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/emre/classtrack/internal/app/controllers"
	"github.com/emre/classtrack/internal/app/models/dto"
	"github.com/emre/classtrack/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	courseController *controllers.CourseController,
	attendanceController *controllers.AttendanceController,
	marksController *controllers.MarksController,
	riskController *controllers.RiskController,
	reportController *controllers.ReportController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// Everything below requires a valid token
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)

		// Student management (teacher only)
		students := authenticated.Group("/students")
		{
			students.GET("", authMiddleware.RequirePermission(middleware.ActionViewStudents), studentController.GetAllStudents)
			students.POST("", authMiddleware.RequirePermission(middleware.ActionManageStudents), studentController.CreateStudent)
			students.GET("/roll/:rollNumber", authMiddleware.RequirePermission(middleware.ActionViewStudents), studentController.GetStudentByRollNumber)
			students.GET("/:id", authMiddleware.RequirePermission(middleware.ActionViewStudents), studentController.GetStudentByID)
			students.PUT("/:id", authMiddleware.RequirePermission(middleware.ActionManageStudents), studentController.UpdateStudent)
			students.DELETE("/:id", authMiddleware.RequirePermission(middleware.ActionManageStudents), studentController.DeleteStudent)

			// Per-student record views and analysis
			students.GET("/:id/attendance", authMiddleware.RequirePermission(middleware.ActionViewRecords), attendanceController.GetStudentAttendance)
			students.GET("/:id/marks", authMiddleware.RequirePermission(middleware.ActionViewRecords), marksController.GetStudentMarks)
			students.GET("/:id/courses", authMiddleware.RequirePermission(middleware.ActionViewRecords), courseController.GetStudentCourses)
			students.GET("/:id/risk", authMiddleware.RequirePermission(middleware.ActionAnalyzeAnyRisk), riskController.AnalyzeStudent)
		}

		// Courses (listing is open to students, mutation is not)
		courses := authenticated.Group("/courses")
		{
			courses.GET("", authMiddleware.RequirePermission(middleware.ActionViewCourses), courseController.GetAllCourses)
			courses.GET("/:id", authMiddleware.RequirePermission(middleware.ActionViewCourses), courseController.GetCourseByID)
			courses.POST("", authMiddleware.RequirePermission(middleware.ActionManageCourses), courseController.CreateCourse)
			courses.PUT("/:id", authMiddleware.RequirePermission(middleware.ActionManageCourses), courseController.UpdateCourse)
			courses.DELETE("/:id", authMiddleware.RequirePermission(middleware.ActionManageCourses), courseController.DeleteCourse)
		}

		// Attendance records (teacher only)
		attendance := authenticated.Group("/attendance")
		attendance.Use(authMiddleware.RequirePermission(middleware.ActionManageRecords))
		{
			attendance.GET("", attendanceController.GetAllAttendance)
			attendance.POST("", attendanceController.CreateAttendance)
			attendance.GET("/:id", attendanceController.GetAttendanceByID)
			attendance.PUT("/:id", attendanceController.UpdateAttendance)
			attendance.DELETE("/:id", attendanceController.DeleteAttendance)
		}

		// Marks records (teacher only)
		marks := authenticated.Group("/marks")
		marks.Use(authMiddleware.RequirePermission(middleware.ActionManageRecords))
		{
			marks.GET("", marksController.GetAllMarks)
			marks.POST("", marksController.CreateMarks)
			marks.GET("/:id", marksController.GetMarksByID)
			marks.PUT("/:id", marksController.UpdateMarks)
			marks.DELETE("/:id", marksController.DeleteMarks)
		}

		// Risk analysis (teacher only)
		risk := authenticated.Group("/risk")
		{
			risk.GET("/students/:rollNumber", authMiddleware.RequirePermission(middleware.ActionAnalyzeAnyRisk), riskController.AnalyzeByRollNumber)
			risk.POST("/custom", authMiddleware.RequirePermission(middleware.ActionClassifyCustom), riskController.ClassifyCustom)
		}

		// CSV import and export (teacher only)
		reports := authenticated.Group("/reports")
		{
			reports.POST("/import", authMiddleware.RequirePermission(middleware.ActionImportRecords), reportController.ImportRecords)
			reports.GET("/export", authMiddleware.RequirePermission(middleware.ActionExportRecords), reportController.ExportRecords)
			reports.GET("/export/:rollNumber", authMiddleware.RequirePermission(middleware.ActionExportRecords), reportController.ExportStudentRecords)
		}

		// Self-service routes for the authenticated student
		me := authenticated.Group("/me")
		{
			me.GET("/attendance", authMiddleware.RequirePermission(middleware.ActionViewOwnRecords), attendanceController.GetMyAttendance)
			me.GET("/marks", authMiddleware.RequirePermission(middleware.ActionViewOwnRecords), marksController.GetMyMarks)
			me.GET("/courses", authMiddleware.RequirePermission(middleware.ActionViewOwnRecords), courseController.GetMyCourses)
			me.GET("/risk", authMiddleware.RequirePermission(middleware.ActionAnalyzeOwnRisk), riskController.AnalyzeMyRisk)
			me.GET("/risk/courses", authMiddleware.RequirePermission(middleware.ActionAnalyzeOwnRisk), riskController.AnalyzeMyRiskPerCourse)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Success: true,
			Data:    gin.H{"status": "ok"},
		})
	})
}

package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdemir/coursedesk/internal/app/controllers"
	"github.com/mdemir/coursedesk/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	gradeController *controllers.GradeController,
	professorController *controllers.ProfessorController,
	noteController *controllers.NoteController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login/professor", authController.LoginProfessor)
		auth.POST("/login/student", authController.LoginStudent)
	}

	// Registration is open; accounts gain capabilities only after
	// login (and, for professors, approval)
	v1.POST("/professor", professorController.Register)
	v1.POST("/student", authController.RegisterStudent)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	courses := authenticated.Group("/course")
	{
		courses.GET("/:courseId", courseController.GetCourse)
		courses.GET("/professor/:professorId", courseController.GetCoursesByProfessor)
		courses.GET("/student/:studentId", courseController.GetCoursesByStudent)
		courses.GET("/manage/:studentId", courseController.GetAllCoursesForStudent)
		courses.GET("/students/:courseId", courseController.GetCourseStudents)

		// Students join and drop themselves, row-level
		coursesStudent := courses.Group("")
		coursesStudent.Use(authMiddleware.StudentRequired())
		{
			coursesStudent.POST("/:courseId/join", courseController.JoinCourse)
			coursesStudent.DELETE("/:courseId/join", courseController.LeaveCourse)
		}

		// Course administration is professor territory
		coursesProfessor := courses.Group("")
		coursesProfessor.Use(authMiddleware.ProfessorRequired())
		{
			coursesProfessor.POST("", courseController.CreateCourse)
			coursesProfessor.PATCH("/:courseId", courseController.UpdateCourse)
			coursesProfessor.DELETE("", courseController.DeleteCourse)
		}
	}

	grades := authenticated.Group("/grade")
	{
		grades.GET("/:courseId", gradeController.GetLedger)
		grades.GET("/student/:studentId", gradeController.GetStudentMarks)

		gradesProfessor := grades.Group("")
		gradesProfessor.Use(authMiddleware.ProfessorRequired())
		{
			gradesProfessor.POST("/:courseId", gradeController.CreateLedger)
			gradesProfessor.PATCH("/:courseId", gradeController.UpdateLedger)
			gradesProfessor.DELETE("/:courseId", gradeController.DeleteLedger)
		}
	}

	notes := authenticated.Group("/notes")
	{
		notes.GET("/course/:courseId", noteController.GetNotesByCourse)
		notes.GET("/:noteId", noteController.GetNote)
		notes.POST("", noteController.CreateNote)
		notes.PATCH("/:noteId", noteController.UpdateNote)
		notes.DELETE("/:noteId", noteController.DeleteNote)
	}

	professors := authenticated.Group("/professor")
	{
		professors.GET("/:id", professorController.GetProfessor)
		professors.GET("/list/:department", professorController.GetProfessorNames)

		// Approval is reserved for the department head
		professorsHOD := professors.Group("")
		professorsHOD.Use(authMiddleware.HODRequired())
		{
			professorsHOD.GET("/approve/:department", professorController.GetPendingProfessors)
			professorsHOD.PATCH("/approve", professorController.ApproveProfessor)
			professorsHOD.DELETE("/:id", professorController.DeleteProfessor)
		}
	}
}

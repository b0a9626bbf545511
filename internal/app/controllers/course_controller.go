package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mdemir/coursedesk/internal/app/models"
	"github.com/mdemir/coursedesk/internal/app/models/dto"
	"github.com/mdemir/coursedesk/internal/app/services"
	"github.com/mdemir/coursedesk/internal/middleware"
)

// CourseController handles course registry and enrollment operations
type CourseController struct {
	courseService     *services.CourseService
	enrollmentService *services.EnrollmentService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService, enrollmentService *services.EnrollmentService) *CourseController {
	return &CourseController{
		courseService:     courseService,
		enrollmentService: enrollmentService,
	}
}

// parseIDParam parses a path parameter as a positive int64
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// bindJSON binds the request body and writes the validation response
// on failure
func bindJSON(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}
	return true
}

// toCourseSummary converts a Course model to the listing DTO
func toCourseSummary(course *models.Course) dto.CourseSummary {
	return dto.CourseSummary{
		ID:         course.ID,
		Department: course.Department,
		Semester:   course.Semester,
		Year:       course.Year,
		Course:     course.Name,
	}
}

// CreateCourse handles creating a new course
// @Summary Create a new course
// @Description Creates a course with an optional initial roster. The assigned professor must be approved.
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 403 {object} dto.ErrorResponse "Professor not approved"
// @Failure 409 {object} dto.ErrorResponse "Course already exists"
// @Router /course [post]
// @Security BearerAuth
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if !bindJSON(ctx, &req) {
		return
	}

	course := &models.Course{
		Department:  req.Department,
		Semester:    req.Semester,
		Year:        req.Year,
		Name:        req.Course,
		ProfessorID: req.ProfessorID,
	}

	if err := c.courseService.CreateCourse(ctx.Request.Context(), course, req.Students); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(course))
}

// GetCourse handles retrieving a course with its roster
// @Summary Get course by ID
// @Description Retrieves a course with professor and roster resolved to names
// @Tags courses
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /course/{courseId} [get]
// @Security BearerAuth
func (c *CourseController) GetCourse(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourse(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}

// GetCoursesByProfessor handles listing a professor's courses
// @Summary List courses by professor
// @Description Retrieves the professor's courses in creation order, rosters omitted
// @Tags courses
// @Produce json
// @Param professorId path int true "Professor ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseSummary} "Courses retrieved successfully"
// @Router /course/professor/{professorId} [get]
// @Security BearerAuth
func (c *CourseController) GetCoursesByProfessor(ctx *gin.Context) {
	professorID, ok := parseIDParam(ctx, "professorId")
	if !ok {
		return
	}

	courses, err := c.courseService.ListCoursesForProfessor(ctx.Request.Context(), professorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	summaries := make([]dto.CourseSummary, 0, len(courses))
	for _, course := range courses {
		summaries = append(summaries, toCourseSummary(course))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summaries))
}

// GetCoursesByStudent handles listing the courses a student joined
// @Summary List a student's joined courses
// @Description Retrieves only the courses the student is actively enrolled in
// @Tags courses
// @Produce json
// @Param studentId path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]models.CourseListing} "Courses retrieved successfully"
// @Router /course/student/{studentId} [get]
// @Security BearerAuth
func (c *CourseController) GetCoursesByStudent(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	listings, err := c.courseService.ListCoursesForStudent(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(listings))
}

// GetAllCoursesForStudent handles the course catalogue with joined flags
// @Summary List all courses with the student's joined flag
// @Description Retrieves every course annotated with whether the student has joined, recomputed per request
// @Tags courses
// @Produce json
// @Param studentId path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]models.CourseListing} "Courses retrieved successfully"
// @Router /course/manage/{studentId} [get]
// @Security BearerAuth
func (c *CourseController) GetAllCoursesForStudent(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	listings, err := c.courseService.ListAllCourses(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(listings))
}

// GetCourseStudents handles retrieving the active roster names
// @Summary Get course roster
// @Description Retrieves the names of the actively enrolled students
// @Tags courses
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentName} "Roster retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /course/students/{courseId} [get]
// @Security BearerAuth
func (c *CourseController) GetCourseStudents(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	students, err := c.courseService.GetRosterNames(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	names := make([]dto.StudentName, 0, len(students))
	for _, st := range students {
		names = append(names, dto.StudentName{ID: st.ID, Name: st.Name})
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(names))
}

// UpdateCourse handles the wholesale roster replace
// @Summary Replace course roster
// @Description Replaces the roster with the given student set, guarded by the course version the caller read
// @Tags courses
// @Accept json
// @Produce json
// @Param courseId path int true "Course ID"
// @Param request body dto.ReplaceRosterRequest true "New roster and version"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Roster replaced successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Version is stale"
// @Router /course/{courseId} [patch]
// @Security BearerAuth
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	var req dto.ReplaceRosterRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if req.ID != courseID {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Course ID mismatch").
			WithDetails("Body id must match the path course ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.courseService.ReplaceRoster(ctx.Request.Context(), courseID, req.Students, req.Version); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Roster updated"}))
}

// DeleteCourse handles deleting a course
// @Summary Delete a course
// @Description Deletes a course. Rejected while a grade ledger exists for it.
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.DeleteCourseRequest true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Course deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Course has a grade ledger"
// @Router /course [delete]
// @Security BearerAuth
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	var req dto.DeleteCourseRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.courseService.DeleteCourse(ctx.Request.Context(), req.ID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Course deleted"}))
}

// JoinCourse handles a student joining a course
// @Summary Join a course
// @Description Enrolls the student in the course as a row-level add
// @Tags courses
// @Accept json
// @Produce json
// @Param courseId path int true "Course ID"
// @Param request body dto.EnrollmentRequest true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Joined successfully"
// @Failure 404 {object} dto.ErrorResponse "Course or student not found"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled"
// @Router /course/{courseId}/join [post]
// @Security BearerAuth
func (c *CourseController) JoinCourse(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	var req dto.EnrollmentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.enrollmentService.Join(ctx.Request.Context(), courseID, req.StudentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Joined course"}))
}

// LeaveCourse handles a student dropping a course
// @Summary Drop a course
// @Description Removes the student from the active roster. Existing grade rows are retained.
// @Tags courses
// @Accept json
// @Produce json
// @Param courseId path int true "Course ID"
// @Param request body dto.EnrollmentRequest true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Dropped successfully"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Not enrolled"
// @Router /course/{courseId}/join [delete]
// @Security BearerAuth
func (c *CourseController) LeaveCourse(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	var req dto.EnrollmentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.enrollmentService.Drop(ctx.Request.Context(), courseID, req.StudentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Dropped course"}))
}

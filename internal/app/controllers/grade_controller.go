package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdemir/coursedesk/internal/app/models/dto"
	"github.com/mdemir/coursedesk/internal/app/services"
	"github.com/mdemir/coursedesk/internal/middleware"
)

// GradeController handles grade ledger operations
type GradeController struct {
	gradeService *services.GradeService
}

// NewGradeController creates a new GradeController
func NewGradeController(gradeService *services.GradeService) *GradeController {
	return &GradeController{gradeService: gradeService}
}

// GetLedger handles retrieving a course's grade ledger
// @Summary Get grade ledger
// @Description Retrieves the course's ledger with per-student mark rows, names and enrollment flags resolved
// @Tags grades
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.GradeLedger} "Ledger retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "No ledger for the course yet"
// @Router /grade/{courseId} [get]
// @Security BearerAuth
func (c *GradeController) GetLedger(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	ledger, err := c.gradeService.GetLedger(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(ledger))
}

// GetStudentMarks handles the cross-course grade listing for a student
// @Summary Get a student's marks across courses
// @Description Retrieves (course, mark row) pairs from every ledger that has a row for the student. Empty list when none.
// @Tags grades
// @Produce json
// @Param studentId path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentMark} "Marks retrieved successfully"
// @Router /grade/student/{studentId} [get]
// @Security BearerAuth
func (c *GradeController) GetStudentMarks(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	marks, err := c.gradeService.GetStudentMarks(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(marks))
}

// CreateLedger handles creating the ledger for a course
// @Summary Create grade ledger
// @Description Creates the course's ledger. With no mark rows in the body, seeds one zero-valued row per actively enrolled student. Totals are always recomputed server-side.
// @Tags grades
// @Accept json
// @Produce json
// @Param courseId path int true "Course ID"
// @Param request body dto.CreateLedgerRequest false "Initial mark rows"
// @Success 201 {object} dto.APIResponse{data=models.GradeLedger} "Ledger created successfully"
// @Failure 400 {object} dto.ErrorResponse "Mark component out of range or duplicate row"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Ledger already exists"
// @Router /grade/{courseId} [post]
// @Security BearerAuth
func (c *GradeController) CreateLedger(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	// An empty body is valid and means "seed from the roster"
	var req dto.CreateLedgerRequest
	if ctx.Request.ContentLength > 0 {
		if !bindJSON(ctx, &req) {
			return
		}
	}

	ledger, err := c.gradeService.CreateLedger(ctx.Request.Context(), courseID, req.Marks)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(ledger))
}

// UpdateLedger handles the wholesale mark-row replace
// @Summary Replace grade ledger rows
// @Description Replaces the ledger's mark rows, guarded by the ledger version the caller read
// @Tags grades
// @Accept json
// @Produce json
// @Param courseId path int true "Course ID"
// @Param request body dto.ReplaceLedgerRequest true "Ledger ID, mark rows and version"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Ledger updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid mark rows"
// @Failure 404 {object} dto.ErrorResponse "No ledger for the course"
// @Failure 409 {object} dto.ErrorResponse "Version is stale"
// @Router /grade/{courseId} [patch]
// @Security BearerAuth
func (c *GradeController) UpdateLedger(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	var req dto.ReplaceLedgerRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.gradeService.ReplaceLedger(ctx.Request.Context(), courseID, req.ID, req.Version, req.Marks); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Ledger updated"}))
}

// DeleteLedger handles deleting a course's ledger
// @Summary Delete grade ledger
// @Description Removes the course's ledger and all its mark rows
// @Tags grades
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Ledger deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "No ledger for the course"
// @Router /grade/{courseId} [delete]
// @Security BearerAuth
func (c *GradeController) DeleteLedger(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	if err := c.gradeService.DeleteLedger(ctx.Request.Context(), courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Ledger deleted"}))
}

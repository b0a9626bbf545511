package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdemir/coursedesk/internal/app/models/dto"
	"github.com/mdemir/coursedesk/internal/app/services"
	"github.com/mdemir/coursedesk/internal/middleware"
)

// ProfessorController handles professor registration, approval and
// listing
type ProfessorController struct {
	authService      *services.AuthService
	professorService *services.ProfessorService
}

// NewProfessorController creates a new ProfessorController
func NewProfessorController(authService *services.AuthService, professorService *services.ProfessorService) *ProfessorController {
	return &ProfessorController{
		authService:      authService,
		professorService: professorService,
	}
}

// Register handles a new professor registration
// @Summary Register a professor
// @Description Registers a professor account. The account stays pending until the department head approves it.
// @Tags professors
// @Accept json
// @Produce json
// @Param request body dto.RegisterProfessorRequest true "Professor information"
// @Success 201 {object} dto.APIResponse{data=models.Professor} "Professor registered successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 409 {object} dto.ErrorResponse "Username already taken"
// @Router /professor [post]
func (c *ProfessorController) Register(ctx *gin.Context) {
	var req dto.RegisterProfessorRequest
	if !bindJSON(ctx, &req) {
		return
	}

	professor, err := c.authService.RegisterProfessor(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(professor))
}

// GetProfessor handles retrieving a professor by ID
// @Summary Get professor by ID
// @Tags professors
// @Produce json
// @Param id path int true "Professor ID"
// @Success 200 {object} dto.APIResponse{data=models.Professor} "Professor retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Professor not found"
// @Router /professor/{id} [get]
// @Security BearerAuth
func (c *ProfessorController) GetProfessor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	professor, err := c.professorService.GetProfessor(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(professor))
}

// GetPendingProfessors handles listing a department's pending registrations
// @Summary List pending professors
// @Description Retrieves the department's professors awaiting approval. Department head only.
// @Tags professors
// @Produce json
// @Param department path string true "Department"
// @Success 200 {object} dto.APIResponse{data=[]models.Professor} "Pending professors retrieved successfully"
// @Failure 403 {object} dto.ErrorResponse "Department head access required"
// @Router /professor/approve/{department} [get]
// @Security BearerAuth
func (c *ProfessorController) GetPendingProfessors(ctx *gin.Context) {
	pending, err := c.professorService.ListPending(ctx.Request.Context(), ctx.Param("department"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(pending))
}

// GetProfessorNames handles the name-only department listing
// @Summary List professor names
// @Description Retrieves id and name of every professor in the department
// @Tags professors
// @Produce json
// @Param department path string true "Department"
// @Success 200 {object} dto.APIResponse{data=[]dto.ProfessorName} "Professor names retrieved successfully"
// @Router /professor/list/{department} [get]
// @Security BearerAuth
func (c *ProfessorController) GetProfessorNames(ctx *gin.Context) {
	professors, err := c.professorService.ListNames(ctx.Request.Context(), ctx.Param("department"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	names := make([]dto.ProfessorName, 0, len(professors))
	for _, p := range professors {
		names = append(names, dto.ProfessorName{ID: p.ID, Name: p.Name})
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(names))
}

// ApproveProfessor handles the department head approving a registration
// @Summary Approve a professor
// @Description Assigns a role to a pending professor. Department head only.
// @Tags professors
// @Accept json
// @Produce json
// @Param request body dto.ApproveProfessorRequest true "Professor ID and role"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Professor approved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid role"
// @Failure 403 {object} dto.ErrorResponse "Department head access required"
// @Failure 404 {object} dto.ErrorResponse "Professor not found"
// @Router /professor/approve [patch]
// @Security BearerAuth
func (c *ProfessorController) ApproveProfessor(ctx *gin.Context) {
	var req dto.ApproveProfessorRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.professorService.Approve(ctx.Request.Context(), req.ID, req.Role); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Professor approved"}))
}

// DeleteProfessor handles rejecting or removing a professor
// @Summary Delete a professor
// @Description Removes a professor registration. Department head only.
// @Tags professors
// @Produce json
// @Param id path int true "Professor ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Professor deleted successfully"
// @Failure 403 {object} dto.ErrorResponse "Department head access required"
// @Failure 404 {object} dto.ErrorResponse "Professor not found"
// @Router /professor/{id} [delete]
// @Security BearerAuth
func (c *ProfessorController) DeleteProfessor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.professorService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Professor deleted"}))
}

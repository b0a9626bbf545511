package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdemir/coursedesk/internal/app/models"
	"github.com/mdemir/coursedesk/internal/app/models/dto"
	"github.com/mdemir/coursedesk/internal/app/services"
	"github.com/mdemir/coursedesk/internal/middleware"
)

// NoteController handles shared course notes
type NoteController struct {
	noteService *services.NoteService
}

// NewNoteController creates a new NoteController
func NewNoteController(noteService *services.NoteService) *NoteController {
	return &NoteController{noteService: noteService}
}

// GetNotesByCourse handles listing a course's notes
// @Summary List notes for a course
// @Tags notes
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Note} "Notes retrieved successfully"
// @Router /notes/course/{courseId} [get]
// @Security BearerAuth
func (c *NoteController) GetNotesByCourse(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	notes, err := c.noteService.ListNotes(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(notes))
}

// GetNote handles retrieving a single note
// @Summary Get note by ID
// @Tags notes
// @Produce json
// @Param noteId path int true "Note ID"
// @Success 200 {object} dto.APIResponse{data=models.Note} "Note retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Router /notes/{noteId} [get]
// @Security BearerAuth
func (c *NoteController) GetNote(ctx *gin.Context) {
	noteID, ok := parseIDParam(ctx, "noteId")
	if !ok {
		return
	}

	note, err := c.noteService.GetNote(ctx.Request.Context(), noteID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(note))
}

// CreateNote handles adding a note to a course
// @Summary Create a note
// @Description Adds a note to a course. An identical title and body on the same course is rejected.
// @Tags notes
// @Accept json
// @Produce json
// @Param request body dto.CreateNoteRequest true "Note content"
// @Success 201 {object} dto.APIResponse{data=models.Note} "Note created successfully"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Note already exists"
// @Router /notes [post]
// @Security BearerAuth
func (c *NoteController) CreateNote(ctx *gin.Context) {
	var req dto.CreateNoteRequest
	if !bindJSON(ctx, &req) {
		return
	}

	note := &models.Note{
		CourseID: req.CourseID,
		Title:    req.Title,
		Body:     req.Body,
	}

	if err := c.noteService.CreateNote(ctx.Request.Context(), note); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(note))
}

// UpdateNote handles replacing a note's title and body
// @Summary Update a note
// @Tags notes
// @Accept json
// @Produce json
// @Param noteId path int true "Note ID"
// @Param request body dto.UpdateNoteRequest true "New title and body"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Note updated successfully"
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Router /notes/{noteId} [patch]
// @Security BearerAuth
func (c *NoteController) UpdateNote(ctx *gin.Context) {
	noteID, ok := parseIDParam(ctx, "noteId")
	if !ok {
		return
	}

	var req dto.UpdateNoteRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.noteService.UpdateNote(ctx.Request.Context(), noteID, req.Title, req.Body); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Note updated"}))
}

// DeleteNote handles removing a note
// @Summary Delete a note
// @Tags notes
// @Produce json
// @Param noteId path int true "Note ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Note deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Router /notes/{noteId} [delete]
// @Security BearerAuth
func (c *NoteController) DeleteNote(ctx *gin.Context) {
	noteID, ok := parseIDParam(ctx, "noteId")
	if !ok {
		return
	}

	if err := c.noteService.DeleteNote(ctx.Request.Context(), noteID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Note deleted"}))
}

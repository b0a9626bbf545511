package dto

// CreateNoteRequest is the body for POST /notes
type CreateNoteRequest struct {
	CourseID int64  `json:"course" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body" binding:"required"`
}

// UpdateNoteRequest is the body for PATCH /notes/:noteId
type UpdateNoteRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

package dto

// MarkRowInput is one student's component scores as submitted by the
// caller. Totals are never accepted from input.
type MarkRowInput struct {
	StudentID  int64 `json:"studentId" binding:"required"`
	Test       int   `json:"test"`
	Seminar    int   `json:"seminar"`
	Assignment int   `json:"assignment"`
	Attendance int   `json:"attendance"`
}

// CreateLedgerRequest is the body for POST /grade/:courseId. An empty
// Marks slice seeds one zero-valued row per actively enrolled student.
type CreateLedgerRequest struct {
	Marks []MarkRowInput `json:"marks"`
}

// ReplaceLedgerRequest is the body for PATCH /grade/:courseId
type ReplaceLedgerRequest struct {
	ID      int64          `json:"id" binding:"required"`
	Marks   []MarkRowInput `json:"marks" binding:"required"`
	Version int64          `json:"version" binding:"required"`
}

// StudentMark is one (course, mark row) pair in a student's
// cross-course grade listing
type StudentMark struct {
	CourseID   int64  `json:"courseId"`
	CourseName string `json:"course"`
	Test       int    `json:"test"`
	Seminar    int    `json:"seminar"`
	Assignment int    `json:"assignment"`
	Attendance int    `json:"attendance"`
	Total      int    `json:"total"`
}

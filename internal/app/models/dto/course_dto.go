package dto

// CreateCourseRequest is the body for POST /course
type CreateCourseRequest struct {
	Department  string  `json:"department" binding:"required"`
	Semester    string  `json:"semester" binding:"required"`
	Year        int     `json:"year" binding:"required"`
	Course      string  `json:"course" binding:"required"`
	ProfessorID int64   `json:"professor" binding:"required"`
	Students    []int64 `json:"students"`
}

// ReplaceRosterRequest is the body for PATCH /course/:courseId.
// Version is the course version the caller read; the write fails with
// a stale-version conflict when it no longer matches.
type ReplaceRosterRequest struct {
	ID       int64   `json:"id" binding:"required"`
	Students []int64 `json:"students" binding:"required"`
	Version  int64   `json:"version" binding:"required"`
}

// DeleteCourseRequest is the body for DELETE /course
type DeleteCourseRequest struct {
	ID int64 `json:"id" binding:"required"`
}

// EnrollmentRequest is the body for join/drop on a course
type EnrollmentRequest struct {
	StudentID int64 `json:"studentId" binding:"required"`
}

// CourseSummary is the roster-free listing shape
type CourseSummary struct {
	ID            int64  `json:"id"`
	Department    string `json:"department"`
	Semester      string `json:"semester"`
	Year          int    `json:"year"`
	Course        string `json:"course"`
	ProfessorName string `json:"professorName,omitempty"`
}

// StudentName is a resolved roster entry
type StudentName struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

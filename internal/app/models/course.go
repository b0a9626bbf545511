package models

import "time"

// Course represents one offering of a course: a department, a term
// (semester + year), a name and an assigned professor. The roster
// lives in the enrollments table and is resolved on demand.
type Course struct {
	ID          int64     `json:"id" db:"id"`
	Department  string    `json:"department" db:"department"`
	Semester    string    `json:"semester" db:"semester"`
	Year        int       `json:"year" db:"year"`
	Name        string    `json:"course" db:"name"`
	ProfessorID int64     `json:"professorId" db:"professor_id"`
	Version     int64     `json:"version" db:"version"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Professor *Professor `json:"professor,omitempty"`
	Students  []*Student `json:"students,omitempty"`
}

// CourseListing is a read-side projection joining a course with its
// professor's name, optionally annotated with one student's current
// membership. Always computed fresh from the enrollments table.
type CourseListing struct {
	ID            int64  `json:"id"`
	Department    string `json:"department"`
	Semester      string `json:"semester"`
	Year          int    `json:"year"`
	Name          string `json:"course"`
	ProfessorName string `json:"professorName"`
	Joined        bool   `json:"joined"`
}

// Enrollment represents the (course, student) membership row. A drop
// flips Active instead of deleting the row so grade history keeps a
// valid reference.
type Enrollment struct {
	ID        int64     `json:"id" db:"id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	Active    bool      `json:"active" db:"active"`
	JoinedAt  time.Time `json:"joinedAt" db:"joined_at"`
}

package models

// GradeLedger holds the mark rows for one course. At most one ledger
// exists per course row; the database enforces this.
type GradeLedger struct {
	ID       int64      `json:"id" db:"id"`
	CourseID int64      `json:"courseId" db:"course_id"`
	Version  int64      `json:"version" db:"version"`
	Marks    []*MarkRow `json:"marks"`
}

// MarkRow is one student's component scores within a ledger. Total is
// always recomputed from the components at write time, never taken
// from caller input.
type MarkRow struct {
	ID         int64  `json:"id" db:"id"`
	LedgerID   int64  `json:"-" db:"ledger_id"`
	StudentID  int64  `json:"studentId" db:"student_id"`
	Test       int    `json:"test" db:"test"`
	Seminar    int    `json:"seminar" db:"seminar"`
	Assignment int    `json:"assignment" db:"assignment"`
	Attendance int    `json:"attendance" db:"attendance"`
	Total      int    `json:"total" db:"total"`

	// Resolved for responses
	StudentName string `json:"name,omitempty"`
	Enrolled    bool   `json:"enrolled"`
}

// StudentMark pairs a course with one of the student's mark rows,
// produced by the cross-ledger aggregation
type StudentMark struct {
	CourseID   int64
	CourseName string
	Row        MarkRow
}

// ComputeTotal returns the derived total for the row's components
func (m *MarkRow) ComputeTotal() int {
	return m.Test + m.Seminar + m.Assignment + m.Attendance
}

// ComponentsInRange reports whether every component is within bounds
func (m *MarkRow) ComponentsInRange() bool {
	for _, v := range []int{m.Test, m.Seminar, m.Assignment, m.Attendance} {
		if v < MarkComponentMin || v > MarkComponentMax {
			return false
		}
	}
	return true
}

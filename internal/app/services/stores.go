package services

import (
	"context"

	"github.com/mdemir/coursedesk/internal/app/models"
)

// Store interfaces consumed by the services. The repositories package
// provides the PostgreSQL implementations; tests substitute in-memory
// fakes.

// CourseStore is the persistence surface for the course registry
type CourseStore interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	ExistsDuplicate(ctx context.Context, department, name, semester string, year int, professorID int64) (bool, error)
	ListByProfessor(ctx context.Context, professorID int64) ([]*models.Course, error)
	ListWithJoined(ctx context.Context, studentID int64) ([]*models.CourseListing, error)
	ListJoined(ctx context.Context, studentID int64) ([]*models.CourseListing, error)
	RosterStudents(ctx context.Context, courseID int64) ([]*models.Student, error)
	SetRoster(ctx context.Context, courseID int64, studentIDs []int64, version int64) error
	Delete(ctx context.Context, id int64) error
}

// EnrollmentStore is the persistence surface for roster membership
type EnrollmentStore interface {
	IsEnrolled(ctx context.Context, courseID, studentID int64) (bool, error)
	EverEnrolled(ctx context.Context, courseID, studentID int64) (bool, error)
	Join(ctx context.Context, courseID, studentID int64) error
	Drop(ctx context.Context, courseID, studentID int64) error
}

// GradeStore is the persistence surface for grade ledgers
type GradeStore interface {
	GetByCourse(ctx context.Context, courseID int64) (*models.GradeLedger, error)
	ExistsForCourse(ctx context.Context, courseID int64) (bool, error)
	Create(ctx context.Context, ledger *models.GradeLedger) error
	Replace(ctx context.Context, ledgerID, version int64, marks []*models.MarkRow) error
	Delete(ctx context.Context, courseID int64) error
	ListByStudent(ctx context.Context, studentID int64) ([]*models.StudentMark, error)
}

// ProfessorStore is the persistence surface for professor identities
type ProfessorStore interface {
	Create(ctx context.Context, professor *models.Professor) error
	GetByID(ctx context.Context, id int64) (*models.Professor, error)
	GetByUsername(ctx context.Context, username string) (*models.Professor, error)
	ListPendingByDepartment(ctx context.Context, department string) ([]*models.Professor, error)
	ListNamesByDepartment(ctx context.Context, department string) ([]*models.Professor, error)
	UpdateRole(ctx context.Context, id int64, role string) error
	Delete(ctx context.Context, id int64) error
}

// StudentStore is the persistence surface for student identities
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByUsername(ctx context.Context, username string) (*models.Student, error)
	MissingIDs(ctx context.Context, ids []int64) ([]int64, error)
}

// NoteStore is the persistence surface for course notes
type NoteStore interface {
	ListByCourse(ctx context.Context, courseID int64) ([]*models.Note, error)
	GetByID(ctx context.Context, id int64) (*models.Note, error)
	ExistsDuplicate(ctx context.Context, courseID int64, title, body string) (bool, error)
	Create(ctx context.Context, note *models.Note) error
	Update(ctx context.Context, id int64, title, body string) error
	Delete(ctx context.Context, id int64) error
}

package models

// AccountKind distinguishes the two login surfaces
type AccountKind string

const (
	KindProfessor AccountKind = "professor"
	KindStudent   AccountKind = "student"
)

// Professor roles. An empty role means the registration is still
// pending departmental approval.
const (
	RoleProfessor = "professor"
	RoleHOD       = "HOD"
)

// Mark component bounds. Each of the four components is an integer in
// [MarkComponentMin, MarkComponentMax]; the total is their sum.
const (
	MarkComponentMin = 0
	MarkComponentMax = 3
)

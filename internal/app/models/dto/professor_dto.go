package dto

// RegisterProfessorRequest is the body for POST /professor
type RegisterProfessorRequest struct {
	Username      string `json:"username" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Qualification string `json:"qualification" binding:"required"`
	Department    string `json:"department" binding:"required"`
	Password      string `json:"password" binding:"required,min=8"`
}

// ApproveProfessorRequest is the body for PATCH /professor/approve
type ApproveProfessorRequest struct {
	ID   int64  `json:"id" binding:"required"`
	Role string `json:"role" binding:"required"`
}

// ProfessorName is a name-only listing entry
type ProfessorName struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// RegisterStudentRequest is the body for POST /student
type RegisterStudentRequest struct {
	Username string `json:"username" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

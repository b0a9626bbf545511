package dto

// LoginRequest is the body for the login endpoints
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the authenticated identity plus an access
// token for the boundary. Services only ever see the explicit
// identity, never ambient state.
type LoginResponse struct {
	ID         int64  `json:"_id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	Token      string `json:"token"`
	ExpiresIn  int    `json:"expiresIn"`
}

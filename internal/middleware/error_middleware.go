package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdemir/coursedesk/internal/app/models/dto"
	"github.com/mdemir/coursedesk/internal/pkg/apperrors"
)

// HandleAPIError maps service errors onto HTTP responses. Controllers
// never pick status codes themselves; every error funnels through
// here so the mapping stays in one place.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrMarkOutOfRange), errors.Is(err, apperrors.ErrDuplicateMarkRow):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, err)

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, err)
	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, err)
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrInvalidFormat):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, err)

	case errors.Is(err, apperrors.ErrProfessorNotApproved):
		respondError(c, http.StatusForbidden, dto.ErrorCodeNotApproved, err)
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, err)

	case errors.Is(err, apperrors.ErrCourseNotFound), errors.Is(err, apperrors.ErrLedgerNotFound),
		errors.Is(err, apperrors.ErrProfessorNotFound), errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrNoteNotFound), errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, err)

	// Drops and replaces of memberships that are not there are
	// conflicts with current state, not missing resources
	case errors.Is(err, apperrors.ErrNotEnrolled):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, err)

	case errors.Is(err, apperrors.ErrStaleVersion):
		respondError(c, http.StatusConflict, dto.ErrorCodeStaleVersion, err)

	case errors.Is(err, apperrors.ErrCourseAlreadyExists), errors.Is(err, apperrors.ErrLedgerAlreadyExists),
		errors.Is(err, apperrors.ErrAlreadyEnrolled), errors.Is(err, apperrors.ErrUsernameTaken),
		errors.Is(err, apperrors.ErrNoteAlreadyExists), errors.Is(err, apperrors.ErrCourseHasGrades),
		errors.Is(err, apperrors.ErrResourceAlreadyExists), errors.Is(err, apperrors.ErrConflict):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, err)

	case errors.Is(err, apperrors.ErrTimeout):
		respondError(c, http.StatusGatewayTimeout, dto.ErrorCodeStoreTimeout, err)

	default:
		c.JSON(http.StatusInternalServerError, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		})
	}
}

// respondError writes the envelope with the sentinel's message. A
// wrapped CustomError keeps its own message and details.
func respondError(c *gin.Context, status int, code dto.ErrorCode, err error) {
	detail := dto.NewErrorDetail(code, err.Error())

	var custom *apperrors.CustomError
	if errors.As(err, &custom) {
		detail.Message = custom.Message
		if custom.Details != nil {
			detail = detail.WithDetails(custom.Details)
		}
	}

	c.JSON(status, dto.APIResponse{Error: detail})
}

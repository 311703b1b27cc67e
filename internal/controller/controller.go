// Package controller holds the boundary translation shared by the student
// and club route handlers: every internal failure leaves as a stable code
// plus a human-readable message, nothing else.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Servals/internal/dto"
	"github.com/lshigami/Servals/internal/lifecycle"
	"github.com/lshigami/Servals/internal/service"
)

// RespondError maps a service error to its HTTP shape. Conflicts (the caller
// raced or repeated themselves) are 409, ordering and window refusals 403,
// unknown records 404, and everything unexpected a bare 500.
func RespondError(ctx *gin.Context, err error) {
	if rej, ok := lifecycle.AsRejection(err); ok {
		ctx.JSON(statusFor(rej.Code), dto.ErrorResponse{Code: string(rej.Code), Message: rej.Message})
		return
	}
	if errors.Is(err, service.ErrTestNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	if errors.Is(err, service.ErrInconsistentState) {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "something went wrong"})
}

func statusFor(code lifecycle.Code) int {
	switch code {
	case lifecycle.CodeAlreadyApplied, lifecycle.CodeAlreadyAttempted, lifecycle.CodeTransitionFailed:
		return http.StatusConflict
	case lifecycle.CodeNotApplied, lifecycle.CodeNotStarted, lifecycle.CodeNotYetOpen, lifecycle.CodeWindowClosed:
		return http.StatusForbidden
	case lifecycle.CodeReadFailed:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// statusForError maps a failure kind to its HTTP status.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domainerror.ErrUnauthorizedCategoryReference):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainerror.ErrValidation):
		if v, ok := domainerror.AsValidationError(err); ok && v.Rule.IsConflict() {
			return http.StatusConflict
		}
		return http.StatusBadRequest
	case errors.Is(err, domainerror.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error body for err. Internal errors are logged and
// their message is not exposed.
func respondError(ctx *gin.Context, err error, code, message string) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(ctx.Request.Context(), "Request failed",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)
		ctx.JSON(status, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	response := dto.ErrorResponse{
		Error: message,
		Code:  code,
	}
	if v, ok := domainerror.AsValidationError(err); ok {
		response.Field = v.Field
		response.Rule = string(v.Rule)
		if message == "" {
			response.Error = v.Message
		}
	}
	if response.Error == "" {
		response.Error = err.Error()
	}
	ctx.JSON(status, response)
}

// requireUser returns the authenticated user or writes a 401.
func requireUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}

// pathID parses the :id route parameter or writes a 400.
func pathID(ctx *gin.Context, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + resource + " ID format",
			Field: "id",
			Rule:  "format",
		})
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the request body or writes a 400.
func bindJSON(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return false
	}
	return true
}

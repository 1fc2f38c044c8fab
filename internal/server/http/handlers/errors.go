package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/commerce-admin/internal/domain/errors"
	"github.com/polkiloo/commerce-admin/internal/server/http/dto"
)

// writeError aborts the request with the status matching err. Internal causes
// are attached to the gin context for the request logger and never returned.
func writeError(c *gin.Context, err error) {
	status, kind := classify(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		message = dto.InternalErrorDetail
	}
	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Status:    status,
		Error:     kind,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidStateTransition):
		return http.StatusBadRequest, dto.KindInvalidState
	case errors.Is(err, domainErrors.ErrValidation):
		return http.StatusBadRequest, dto.KindValidation
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound, dto.KindNotFound
	case errors.Is(err, domainErrors.ErrConflict):
		return http.StatusConflict, dto.KindConflict
	default:
		return http.StatusInternalServerError, dto.KindInternal
	}
}

// errMalformedBody is reported for request bodies that are not valid JSON.
var errMalformedBody = fmt.Errorf("%w: malformed request body", domainErrors.ErrValidation)

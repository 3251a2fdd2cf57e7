package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/storeaudit/internal/dto"
	"github.com/lshigami/storeaudit/internal/service"
	"github.com/rs/zerolog/log"
)

// HintStartNewAudit tells clients a missing audit cannot be resumed.
const HintStartNewAudit = "start_new_audit"

// WriteError maps service errors onto status codes. Unexpected errors keep
// their message so write failures reach the user verbatim.
func WriteError(ctx *gin.Context, op string, err error) {
	status, resp := http.StatusInternalServerError, dto.ErrorResponse{Message: op + " failed", Details: []string{err.Error()}}

	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrFieldNotApplicable),
		errors.Is(err, service.ErrInvalidChoice),
		errors.Is(err, service.ErrUnknownAnswerType),
		errors.Is(err, service.ErrNotPhotoQuestion):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrUnsupportedMedia):
		status = http.StatusUnsupportedMediaType
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrAuditNotFound):
		status = http.StatusNotFound
		resp.Hint = HintStartNewAudit
	case errors.Is(err, service.ErrTemplateNotFound),
		errors.Is(err, service.ErrUnknownQuestion):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrAuditClosed),
		errors.Is(err, service.ErrSaveInProgress),
		errors.Is(err, service.ErrSubmissionInProgress),
		errors.Is(err, service.ErrAlreadySubmitted):
		status = http.StatusConflict
	}

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("op", op).Str("path", ctx.FullPath()).Msg("Request failed")
	} else {
		log.Warn().Err(err).Str("op", op).Int("status", status).Msg("Request rejected")
	}
	ctx.JSON(status, resp)
}

// WriteBindError reports a malformed request body.
func WriteBindError(ctx *gin.Context, err error) {
	log.Warn().Err(err).Str("path", ctx.FullPath()).Msg("Failed to bind request")
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: TranslateValidationErrors(err)})
}

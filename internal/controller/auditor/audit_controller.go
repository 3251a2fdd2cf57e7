package auditor

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/storeaudit/internal/controller"
	"github.com/lshigami/storeaudit/internal/dto"
	"github.com/lshigami/storeaudit/internal/service"
	"github.com/rs/zerolog/log"
)

type AuditController struct {
	workspace service.WorkspaceService
}

func NewAuditController(workspace service.WorkspaceService) *AuditController {
	return &AuditController{workspace: workspace}
}

// CreateAudit godoc
// @Summary Start an audit
// @Description Starts a new audit of a store against a template. The caller becomes the auditor.
// @Tags Audits
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param audit body dto.AuditCreateDTO true "Store and template"
// @Success 201 {object} dto.AuditCreatedDTO
// @Failure 400 {object} dto.ErrorResponse "Store or template missing"
// @Failure 404 {object} dto.ErrorResponse "Template not found"
// @Failure 500 {object} dto.ErrorResponse "Audit could not be created"
// @Router /audits [post]
func (c *AuditController) CreateAudit(ctx *gin.Context) {
	var req dto.AuditCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.WriteBindError(ctx, err)
		return
	}
	created, err := c.workspace.Start(ctx.Request.Context(), controller.SessionFrom(ctx), req)
	if err != nil {
		controller.WriteError(ctx, "Create audit", err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// GetAudit godoc
// @Summary Get an audit
// @Tags Audits
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param audit_id path string true "Audit ID"
// @Success 200 {object} dto.AuditResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Audit not found (hint: start_new_audit)"
// @Router /audits/{audit_id} [get]
func (c *AuditController) GetAudit(ctx *gin.Context) {
	auditID, ok := controller.ParseUUIDParam(ctx, "audit_id")
	if !ok {
		return
	}
	audit, err := c.workspace.GetAudit(ctx.Request.Context(), controller.SessionFrom(ctx), auditID)
	if err != nil {
		controller.WriteError(ctx, "Get audit", err)
		return
	}
	ctx.JSON(http.StatusOK, audit)
}

// GetDraft godoc
// @Summary Get the answer draft of an audit
// @Description One entry per template question in display order. refresh=true reloads saved answers first.
// @Tags Audits
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param audit_id path string true "Audit ID"
// @Param refresh query bool false "Reload saved answers into the draft"
// @Success 200 {object} dto.DraftResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Audit not found"
// @Router /audits/{audit_id}/draft [get]
func (c *AuditController) GetDraft(ctx *gin.Context) {
	auditID, ok := controller.ParseUUIDParam(ctx, "audit_id")
	if !ok {
		return
	}
	refresh, _ := strconv.ParseBool(ctx.DefaultQuery("refresh", "false"))
	draft, err := c.workspace.GetDraft(ctx.Request.Context(), controller.SessionFrom(ctx), auditID, refresh)
	if err != nil {
		controller.WriteError(ctx, "Get draft", err)
		return
	}
	ctx.JSON(http.StatusOK, draft)
}

// SetAnswer godoc
// @Summary Update one draft answer
// @Description Only the fields sent are changed. Score questions take pass, fair, fail or na in value_text.
// @Tags Audits
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param audit_id path string true "Audit ID"
// @Param question_id path string true "Question ID"
// @Param answer body dto.AnswerPatchDTO true "Fields to change"
// @Success 200 {object} dto.DraftEntryDTO
// @Failure 400 {object} dto.ErrorResponse "Field not applicable or invalid choice"
// @Failure 404 {object} dto.ErrorResponse "Audit or question not found"
// @Failure 409 {object} dto.ErrorResponse "Audit already submitted"
// @Router /audits/{audit_id}/draft/{question_id} [patch]
func (c *AuditController) SetAnswer(ctx *gin.Context) {
	auditID, ok := controller.ParseUUIDParam(ctx, "audit_id")
	if !ok {
		return
	}
	questionID, ok := controller.ParseUUIDParam(ctx, "question_id")
	if !ok {
		return
	}
	var patch dto.AnswerPatchDTO
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		controller.WriteBindError(ctx, err)
		return
	}
	entry, err := c.workspace.SetAnswer(ctx.Request.Context(), controller.SessionFrom(ctx), auditID, questionID, patch)
	if err != nil {
		controller.WriteError(ctx, "Update answer", err)
		return
	}
	ctx.JSON(http.StatusOK, entry)
}

// UploadPhoto godoc
// @Summary Attach a photo to a photo question
// @Description Uploads the image to object storage and stores its link in the draft. JPEG, PNG, WebP, HEIC or GIF up to 10 MiB.
// @Tags Audits
// @Accept multipart/form-data
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param audit_id path string true "Audit ID"
// @Param question_id path string true "Question ID"
// @Param photo formData file true "Photo"
// @Success 200 {object} dto.DraftEntryDTO
// @Failure 400 {object} dto.ErrorResponse "Not a photo question or file too large"
// @Failure 415 {object} dto.ErrorResponse "Unsupported image format"
// @Router /audits/{audit_id}/photos/{question_id} [post]
func (c *AuditController) UploadPhoto(ctx *gin.Context) {
	auditID, ok := controller.ParseUUIDParam(ctx, "audit_id")
	if !ok {
		return
	}
	questionID, ok := controller.ParseUUIDParam(ctx, "question_id")
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("photo")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Missing photo file", Details: []string{err.Error()}})
		return
	}
	if fileHeader.Size > service.MaxPhotoBytes {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Photo is too large"})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Msg("UploadPhoto: failed to open multipart file")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Could not read photo"})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, service.MaxPhotoBytes+1))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Could not read photo", Details: []string{err.Error()}})
		return
	}

	entry, err := c.workspace.AttachPhoto(ctx.Request.Context(), controller.SessionFrom(ctx), auditID, questionID, data)
	if err != nil {
		controller.WriteError(ctx, "Upload photo", err)
		return
	}
	ctx.JSON(http.StatusOK, entry)
}

// SaveDraft godoc
// @Summary Save the draft
// @Description Writes every answered question in one batch. Repeating a save does not create duplicates.
// @Tags Audits
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param audit_id path string true "Audit ID"
// @Success 200 {object} dto.SaveResponseDTO
// @Failure 409 {object} dto.ErrorResponse "Save already running or audit submitted"
// @Failure 500 {object} dto.ErrorResponse "Save failed"
// @Router /audits/{audit_id}/save [post]
func (c *AuditController) SaveDraft(ctx *gin.Context) {
	auditID, ok := controller.ParseUUIDParam(ctx, "audit_id")
	if !ok {
		return
	}
	resp, err := c.workspace.Save(ctx.Request.Context(), controller.SessionFrom(ctx), auditID)
	if err != nil {
		controller.WriteError(ctx, "Save", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SubmitAudit godoc
// @Summary Submit an audit
// @Description Saves the draft, closes the audit and exports the PDF report. Export problems are returned as warnings; the audit stays submitted.
// @Tags Audits
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param audit_id path string true "Audit ID"
// @Success 200 {object} dto.SubmitResponseDTO
// @Failure 409 {object} dto.ErrorResponse "Already submitted or submission running"
// @Failure 500 {object} dto.ErrorResponse "Submission failed, audit stays editable"
// @Router /audits/{audit_id}/submit [post]
func (c *AuditController) SubmitAudit(ctx *gin.Context) {
	auditID, ok := controller.ParseUUIDParam(ctx, "audit_id")
	if !ok {
		return
	}
	resp, err := c.workspace.Submit(ctx.Request.Context(), controller.SessionFrom(ctx), auditID)
	if err != nil {
		if errors.Is(err, service.ErrAlreadySubmitted) {
			log.Info().Str("auditID", auditID.String()).Msg("SubmitAudit: repeated submit rejected")
		}
		controller.WriteError(ctx, "Submit", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListFiles godoc
// @Summary List generated files of an audit
// @Tags Audits
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param audit_id path string true "Audit ID"
// @Success 200 {array} dto.AuditFileDTO
// @Failure 404 {object} dto.ErrorResponse "Audit not found"
// @Router /audits/{audit_id}/files [get]
func (c *AuditController) ListFiles(ctx *gin.Context) {
	auditID, ok := controller.ParseUUIDParam(ctx, "audit_id")
	if !ok {
		return
	}
	files, err := c.workspace.ListFiles(ctx.Request.Context(), controller.SessionFrom(ctx), auditID)
	if err != nil {
		controller.WriteError(ctx, "List files", err)
		return
	}
	ctx.JSON(http.StatusOK, files)
}

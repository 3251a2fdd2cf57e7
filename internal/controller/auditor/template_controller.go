package auditor

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lshigami/storeaudit/internal/controller"
	"github.com/lshigami/storeaudit/internal/dto"
	"github.com/lshigami/storeaudit/internal/service"
)

type TemplateController struct {
	catalogService service.CatalogService
}

func NewTemplateController(catalogService service.CatalogService) *TemplateController {
	return &TemplateController{catalogService: catalogService}
}

// ListTemplates godoc
// @Summary List active audit templates
// @Description Active templates ordered by name and version. With store_id, only templates assigned to those stores or to no store.
// @Tags Templates
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param store_id query []string false "Store IDs to scope the catalog to" collectionFormat(multi)
// @Success 200 {array} dto.TemplateSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid store ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /templates [get]
func (c *TemplateController) ListTemplates(ctx *gin.Context) {
	var storeIDs []uuid.UUID
	for _, raw := range ctx.QueryArray("store_id") {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part == "" {
				continue
			}
			id, err := uuid.Parse(part)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid store_id format", Details: []string{part}})
				return
			}
			storeIDs = append(storeIDs, id)
		}
	}

	templates, err := c.catalogService.ListActiveTemplates(ctx.Request.Context(), storeIDs)
	if err != nil {
		controller.WriteError(ctx, "List templates", err)
		return
	}
	ctx.JSON(http.StatusOK, templates)
}

// GetTemplate godoc
// @Summary Get a template with its sections and questions
// @Tags Templates
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param template_id path string true "Template ID"
// @Success 200 {object} dto.TemplateResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid template ID"
// @Failure 404 {object} dto.ErrorResponse "Template not found"
// @Router /templates/{template_id} [get]
func (c *TemplateController) GetTemplate(ctx *gin.Context) {
	templateID, ok := controller.ParseUUIDParam(ctx, "template_id")
	if !ok {
		return
	}
	tmpl, err := c.catalogService.GetTemplateDetails(ctx.Request.Context(), templateID)
	if err != nil {
		controller.WriteError(ctx, "Get template", err)
		return
	}
	ctx.JSON(http.StatusOK, tmpl)
}

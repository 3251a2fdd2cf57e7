package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/storeaudit/internal/controller"
	"github.com/lshigami/storeaudit/internal/dto"
	"github.com/lshigami/storeaudit/internal/service"
)

type AdminTemplateController struct {
	adminTemplateService service.AdminTemplateService
}

func NewAdminTemplateController(adminTemplateService service.AdminTemplateService) *AdminTemplateController {
	return &AdminTemplateController{adminTemplateService: adminTemplateService}
}

// CreateTemplate godoc
// @Summary (Admin) Create an audit template
// @Description Creates a template with all its sections and questions. Sort orders and question codes must be unique; score questions need max_points above 0.
// @Tags Admin - Templates
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param X-User-Role header string true "Must be admin"
// @Param template body dto.TemplateCreateDTO true "Template with sections and questions"
// @Success 201 {object} dto.TemplateResponseDTO "Template created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/templates [post]
func (c *AdminTemplateController) CreateTemplate(ctx *gin.Context) {
	var req dto.TemplateCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.WriteBindError(ctx, err)
		return
	}

	resp, err := c.adminTemplateService.CreateTemplate(ctx.Request.Context(), controller.SessionFrom(ctx), req)
	if err != nil {
		controller.WriteError(ctx, "Create template", err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// RetireTemplate godoc
// @Summary (Admin) Retire an audit template
// @Description Removes the template from the catalog. Existing audits keep working.
// @Tags Admin - Templates
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param X-User-Role header string true "Must be admin"
// @Param template_id path string true "Template ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Failure 404 {object} dto.ErrorResponse "Template not found"
// @Router /admin/templates/{template_id}/retire [post]
func (c *AdminTemplateController) RetireTemplate(ctx *gin.Context) {
	templateID, ok := controller.ParseUUIDParam(ctx, "template_id")
	if !ok {
		return
	}
	if err := c.adminTemplateService.RetireTemplate(ctx.Request.Context(), controller.SessionFrom(ctx), templateID); err != nil {
		controller.WriteError(ctx, "Retire template", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Template retired"})
}

package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/builder-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/builder-service/internal/app"
	"github.com/jsamuelsen/builder-service/internal/domain"
)

// PhoneAssembler is the application behaviour the phone handler needs.
type PhoneAssembler interface {
	Assemble(ctx context.Context, preset string) (*app.PhoneAssembly, error)
	Presets() []domain.PhonePreset
}

// PhoneHandler handles phone assembly endpoints.
type PhoneHandler struct {
	service PhoneAssembler
}

// NewPhoneHandler creates a phone handler.
func NewPhoneHandler(service PhoneAssembler) *PhoneHandler {
	return &PhoneHandler{service: service}
}

func toPhoneResponse(a *app.PhoneAssembly) *dto.PhoneResponse {
	return &dto.PhoneResponse{
		Preset:            string(a.Preset),
		SimType:           a.Phone.SimType(),
		NetworkConnection: a.Phone.NetworkConnection(),
		Country:           a.Phone.Country(),
		Roaming:           a.Phone.Roaming(),
		Manual:            a.Manual.Describe(),
	}
}

// CreatePhone handles POST /api/v1/phones.
func (h *PhoneHandler) CreatePhone(c *gin.Context) {
	var req dto.PhoneRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	h.assemble(c, http.StatusCreated, req.Preset)
}

// GetPreset handles GET /api/v1/phones/presets/:preset.
// Unknown presets are 404.
func (h *PhoneHandler) GetPreset(c *gin.Context) {
	h.assemble(c, http.StatusOK, c.Param("preset"))
}

// ListPresets handles GET /api/v1/phones/presets.
func (h *PhoneHandler) ListPresets(c *gin.Context) {
	presets := h.service.Presets()

	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = string(p)
	}

	c.JSON(http.StatusOK, dto.PresetsResponse{Presets: names})
}

func (h *PhoneHandler) assemble(c *gin.Context, status int, preset string) {
	assembly, err := h.service.Assemble(c.Request.Context(), preset)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(status, toPhoneResponse(assembly))
}

// RegisterPhoneRoutes registers phone routes on the given router group.
func (h *PhoneHandler) RegisterPhoneRoutes(rg *gin.RouterGroup) {
	phones := rg.Group("/phones")
	phones.POST("", h.CreatePhone)
	phones.GET("/presets", h.ListPresets)
	phones.GET("/presets/:preset", h.GetPreset)
}

package handler

import (
	"errors"
	"net/http"

	"marketsync-agent/internal/core/logger"
	mpdomain "marketsync-agent/internal/features/marketplaces/domain"
	"marketsync-agent/internal/features/sync/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SyncHandler exposes the sync orchestrator to the local agent UI.
type SyncHandler struct {
	service *service.SyncService
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(s *service.SyncService) *SyncHandler {
	return &SyncHandler{
		service: s,
	}
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is the error description, shown to the user verbatim.
	Message string `json:"message"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
}

func rayID(c *fiber.Ctx) string {
	id, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return id
}

func (h *SyncHandler) provider(c *fiber.Ctx) (mpdomain.Provider, error) {
	return mpdomain.ParseProvider(c.Params("provider"))
}

// SyncNow handles the request to run a full sync for one provider.
// @Summary Run sync now
// @Description Pulls products and orders from the marketplace and pushes them to the panel.
// @Produce json
// @Param provider path string true "Marketplace provider"
// @Success 200 {object} domain.SyncResult
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /api/sync/{provider} [post]
func (h *SyncHandler) SyncNow(c *fiber.Ctx) error {
	provider, err := h.provider(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Message: err.Error(), RayID: rayID(c)})
	}

	result, err := h.service.SyncNow(c.UserContext(), provider)
	if err != nil {
		logger.Get().Error("sync failed",
			zap.String("provider", provider.String()),
			zap.String("ray_id", rayID(c)),
			zap.Error(err),
		)

		status := http.StatusBadGateway
		if errors.Is(err, service.ErrCredentialsIncomplete) || errors.Is(err, service.ErrSyncNotSupported) {
			status = http.StatusBadRequest
		}
		return c.Status(status).JSON(ErrorResponse{Message: err.Error(), RayID: rayID(c)})
	}

	return c.Status(http.StatusOK).JSON(result)
}

// TestConnection handles the request to probe a provider's credentials.
// @Summary Test provider connection
// @Produce json
// @Param provider path string true "Marketplace provider"
// @Success 200 {object} domain.TestResult
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /api/test/{provider} [post]
func (h *SyncHandler) TestConnection(c *fiber.Ctx) error {
	provider, err := h.provider(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Message: err.Error(), RayID: rayID(c)})
	}

	result, err := h.service.TestProvider(c.UserContext(), provider)
	if err != nil {
		return c.Status(http.StatusBadGateway).JSON(ErrorResponse{Message: err.Error(), RayID: rayID(c)})
	}

	return c.Status(http.StatusOK).JSON(result)
}

// SafeConfig handles the request for the masked connection config.
// @Summary Get masked provider config
// @Produce json
// @Param provider path string true "Marketplace provider"
// @Success 200 {object} domain.SafeConfig
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /api/config/{provider} [get]
func (h *SyncHandler) SafeConfig(c *fiber.Ctx) error {
	provider, err := h.provider(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Message: err.Error(), RayID: rayID(c)})
	}

	safe, err := h.service.SafeConfig(c.UserContext(), provider)
	if err != nil {
		return c.Status(http.StatusBadGateway).JSON(ErrorResponse{Message: err.Error(), RayID: rayID(c)})
	}

	return c.Status(http.StatusOK).JSON(safe)
}

// Status handles the request for the last recorded sync outcome.
// @Summary Get last sync status
// @Produce json
// @Param provider path string true "Marketplace provider"
// @Success 200 {object} domain.SyncStatus
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/status/{provider} [get]
func (h *SyncHandler) Status(c *fiber.Ctx) error {
	provider, err := h.provider(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Message: err.Error(), RayID: rayID(c)})
	}

	status, err := h.service.Status(c.UserContext(), provider)
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{Message: err.Error(), RayID: rayID(c)})
	}

	return c.Status(http.StatusOK).JSON(status)
}

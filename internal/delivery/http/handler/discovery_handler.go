package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/provider-discovery/internal/pkg/utils"
	"github.com/provider-discovery/internal/pkg/validator"
	"github.com/provider-discovery/internal/usecase"
	"github.com/provider-discovery/internal/usecase/dto"
	"go.uber.org/zap"
)

// DiscoveryHandler - обработчик запросов поиска провайдеров
type DiscoveryHandler struct {
	discoveryUC *usecase.DiscoveryUseCase
	logger      *zap.Logger
}

// NewDiscoveryHandler - создание нового DiscoveryHandler
func NewDiscoveryHandler(discoveryUC *usecase.DiscoveryUseCase, logger *zap.Logger) *DiscoveryHandler {
	return &DiscoveryHandler{
		discoveryUC: discoveryUC,
		logger:      logger,
	}
}

// Discover - поиск провайдеров вокруг точки наблюдателя
// @Summary Поиск провайдеров
// @Description Возвращает провайдеров вокруг точки с учётом уровня детализации и фильтра категории
// @Tags discovery
// @Accept json
// @Produce json
// @Param request body dto.DiscoverRequest true "Параметры поиска"
// @Success 200 {object} utils.SuccessResponse{data=dto.DiscoverResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/discovery/search [post]
func (h *DiscoveryHandler) Discover(c *fiber.Ctx) error {
	var req dto.DiscoverRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.discoveryUC.Discover(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}

// Categories - таблица нормализации категорий
// @Summary Категории услуг
// @Description Возвращает канонические категории с синонимами и версией таблицы
// @Tags discovery
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.CategoriesResponse}
// @Router /api/v1/discovery/categories [get]
func (h *DiscoveryHandler) Categories(c *fiber.Ctx) error {
	result := h.discoveryUC.Categories(c.Context())

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result.Categories),
	})
}

// Quote - оценка стоимости для конкретного провайдера
// @Summary Оценка стоимости
// @Description Оценивает стоимость вызова провайдера из заданной точки
// @Tags discovery
// @Produce json
// @Param id path string true "ID провайдера"
// @Param lat query number true "Широта точки"
// @Param lon query number true "Долгота точки"
// @Success 200 {object} utils.SuccessResponse{data=dto.QuoteResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/providers/{id}/quote [get]
func (h *DiscoveryHandler) Quote(c *fiber.Ctx) error {
	req := dto.QuoteRequest{
		ProviderID: c.Params("id"),
		Lat:        c.QueryFloat("lat"),
		Lon:        c.QueryFloat("lon"),
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.discoveryUC.Quote(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

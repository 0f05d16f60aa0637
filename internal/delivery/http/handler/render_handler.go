package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/provider-discovery/internal/domain"
	"github.com/provider-discovery/internal/mapview"
	"github.com/provider-discovery/internal/pkg/utils"
	"github.com/provider-discovery/internal/pkg/validator"
	"github.com/provider-discovery/internal/usecase/dto"
	"go.uber.org/zap"
)

// RenderHandler - отладочный обработчик кластеризации: прогоняет позиции
// через клиентский движок рендера, чтобы подстройку порогов можно было
// смотреть без мобильного клиента
type RenderHandler struct {
	engine *mapview.Engine
	logger *zap.Logger
}

// NewRenderHandler - создание нового RenderHandler
func NewRenderHandler(engine *mapview.Engine, logger *zap.Logger) *RenderHandler {
	return &RenderHandler{
		engine: engine,
		logger: logger,
	}
}

// Render - кластеризация набора позиций для одной отрисовки
// @Summary Отладочная кластеризация
// @Description Разбивает позиции на одиночные маркеры и кластеры для текущего уровня детализации
// @Tags debug
// @Accept json
// @Produce json
// @Param request body dto.RenderRequest true "Позиции и состояние карты"
// @Success 200 {object} utils.SuccessResponse{data=dto.RenderResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/discovery/render [post]
func (h *RenderHandler) Render(c *fiber.Ctx) error {
	var req dto.RenderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	items := make([]domain.ResultItem, 0, len(req.Items))
	for _, in := range req.Items {
		items = append(items, domain.ResultItem{
			Provider: domain.Provider{
				ID:       in.ID,
				MainType: domain.MainType(in.MainType),
				SubType:  in.SubType,
				Lat:      in.Lat,
				Lon:      in.Lon,
			},
		})
	}

	set := h.engine.Build(items, req.DetailLevel, req.ActiveID)

	resp := dto.RenderResponse{
		Markers:   make([]dto.RenderMarker, 0, len(set.Singles)),
		Clusters:  make([]dto.RenderCluster, 0, len(set.Clusters)),
		Threshold: h.engine.Threshold(req.DetailLevel),
		Expanded:  h.engine.Expanded(req.DetailLevel),
	}

	for _, item := range set.Singles {
		active := item.Provider.ID == req.ActiveID
		resp.Markers = append(resp.Markers, dto.RenderMarker{
			ID:       item.Provider.ID,
			Lat:      item.Provider.Lat,
			Lon:      item.Provider.Lon,
			MainType: string(item.Provider.MainType),
			SubType:  item.Provider.SubType,
			IsActive: active,
			Glyph:    h.engine.MarkerIcon(item, active).Glyph,
		})
	}
	for _, node := range set.Clusters {
		resp.Clusters = append(resp.Clusters, dto.RenderCluster{
			Lat:                  node.Anchor.Lat,
			Lon:                  node.Anchor.Lon,
			MainType:             string(node.MainType),
			SubType:              node.SubType,
			Count:                node.Count,
			ExpansionDetailLevel: node.ExpansionDetailLevel,
			MemberIDs:            node.MemberIDs,
			Glyph:                h.engine.ClusterIcon(node).Glyph,
		})
	}

	return utils.SendSuccess(c, resp, &utils.Meta{
		Total: len(resp.Markers) + len(resp.Clusters),
	})
}

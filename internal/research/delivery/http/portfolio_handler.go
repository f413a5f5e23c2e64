package http

import (
	"net/http"

	"stock-research-service/internal/research/dto"
	"stock-research-service/internal/research/service"
	"stock-research-service/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PortfolioHandler handles HTTP requests for portfolio recommendations.
type PortfolioHandler struct {
	portfolioService service.PortfolioService
	logger           *logger.Logger
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService service.PortfolioService, logger *logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService, logger: logger}
}

// RegisterRoutes registers the portfolio routes to the Echo group.
func (h *PortfolioHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/recommendation", h.GetRecommendation)
}

// GetRecommendation godoc
// @Summary Get a portfolio recommendation
// @Description Analyzes the holdings, debates candidate sectors and returns the recommended addition
// @Tags portfolio
// @Accept  json
// @Produce  json
// @Param   request  body    dto.PortfolioRecommendationRequest  true  "Current holdings and preferences"
// @Success 200 {object} dto.PortfolioRecommendation
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /portfolio/recommendation [post]
func (h *PortfolioHandler) GetRecommendation(c echo.Context) error {
	var req dto.PortfolioRecommendationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	recommendation, err := h.portfolioService.Recommend(c.Request().Context(), &req)
	if err != nil {
		return writeResearchError(c, h.logger, "portfolio", err)
	}
	return c.JSON(http.StatusOK, recommendation)
}

package http

import (
	"net/http"

	"stock-research-service/internal/research/dto"
	"stock-research-service/internal/research/service"
	"stock-research-service/pkg/logger"

	"github.com/labstack/echo/v4"
)

// WatchlistHandler handles HTTP requests for the research watchlist.
type WatchlistHandler struct {
	watchlistService service.WatchlistService
	logger           *logger.Logger
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(watchlistService service.WatchlistService, logger *logger.Logger) *WatchlistHandler {
	return &WatchlistHandler{watchlistService: watchlistService, logger: logger}
}

// RegisterRoutes registers the watchlist routes to the Echo group.
func (h *WatchlistHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/:ticker", h.AddTicker)
	g.DELETE("/:ticker", h.RemoveTicker)
}

// AddTicker godoc
// @Summary Add a ticker to the watchlist
// @Description Registers a ticker for scheduled recurring research
// @Tags watchlist
// @Produce  json
// @Param   ticker  path    string  true   "Stock ticker"
// @Param   mode    query   string  false  "Research mode (quick, standard, deep)"
// @Success 204 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /watchlist/{ticker} [post]
func (h *WatchlistHandler) AddTicker(c echo.Context) error {
	ticker := c.Param("ticker")
	mode := dto.ResearchMode(c.QueryParam("mode"))

	if err := h.watchlistService.Add(c.Request().Context(), ticker, mode); err != nil {
		if service.IsConfigError(err) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		h.logger.Error("Failed to add watchlist entry", logger.StringField("ticker", ticker), logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to add ticker"})
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveTicker godoc
// @Summary Remove a ticker from the watchlist
// @Description Deactivates a ticker so it is skipped by the scheduler
// @Tags watchlist
// @Produce  json
// @Param   ticker  path    string  true  "Stock ticker"
// @Success 204 {object} nil
// @Failure 500 {object} dto.ErrorResponse
// @Router /watchlist/{ticker} [delete]
func (h *WatchlistHandler) RemoveTicker(c echo.Context) error {
	ticker := c.Param("ticker")
	if err := h.watchlistService.Remove(c.Request().Context(), ticker); err != nil {
		h.logger.Error("Failed to remove watchlist entry", logger.StringField("ticker", ticker), logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to remove ticker"})
	}
	return c.NoContent(http.StatusNoContent)
}

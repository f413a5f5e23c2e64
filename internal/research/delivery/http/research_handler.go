package http

import (
	"errors"
	"net/http"

	"stock-research-service/internal/research/dto"
	"stock-research-service/internal/research/repository"
	"stock-research-service/internal/research/service"
	"stock-research-service/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ResearchHandler handles HTTP requests for single-ticker research.
type ResearchHandler struct {
	researchService service.ResearchService
	logger          *logger.Logger
}

// NewResearchHandler creates a new ResearchHandler.
func NewResearchHandler(researchService service.ResearchService, logger *logger.Logger) *ResearchHandler {
	return &ResearchHandler{researchService: researchService, logger: logger}
}

// RegisterRoutes registers the research routes to the Echo group.
func (h *ResearchHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/:ticker", h.RunResearch)
	g.GET("/:ticker", h.GetLatestReport)
}

// RunResearch godoc
// @Summary Run research for a ticker
// @Description Runs the full debate pipeline and returns the generated report
// @Tags research
// @Produce  json
// @Param   ticker  path    string  true   "Stock ticker"
// @Param   mode    query   string  false  "Research mode (quick, standard, deep)"
// @Success 200 {object} dto.ResearchReport
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /research/{ticker} [post]
func (h *ResearchHandler) RunResearch(c echo.Context) error {
	ticker := c.Param("ticker")
	mode := dto.ResearchMode(c.QueryParam("mode"))
	if mode == "" {
		mode = dto.ModeStandard
	}

	report, err := h.researchService.Research(c.Request().Context(), ticker, mode)
	if err != nil {
		return writeResearchError(c, h.logger, ticker, err)
	}
	return c.JSON(http.StatusOK, report)
}

// GetLatestReport godoc
// @Summary Get the latest report for a ticker
// @Description Returns the most recent stored research report
// @Tags research
// @Produce  json
// @Param   ticker  path    string  true  "Stock ticker"
// @Success 200 {object} dto.ResearchReport
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /research/{ticker} [get]
func (h *ResearchHandler) GetLatestReport(c echo.Context) error {
	ticker := c.Param("ticker")
	report, err := h.researchService.GetLatestReport(c.Request().Context(), ticker)
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "No report found for ticker"})
		}
		h.logger.Error("Failed to load report", logger.StringField("ticker", ticker), logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, report)
}

// writeResearchError maps service errors to HTTP responses. Oracle
// failures are upstream faults, so they surface as 502.
func writeResearchError(c echo.Context, log *logger.Logger, ticker string, err error) error {
	switch {
	case service.IsConfigError(err):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case service.IsOracleError(err):
		log.Error("Research failed at oracle", logger.StringField("ticker", ticker), logger.ErrorField(err))
		return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
	default:
		log.Error("Research failed", logger.StringField("ticker", ticker), logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
}

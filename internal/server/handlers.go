package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/deusflow/telconews/internal/news"
	"github.com/deusflow/telconews/internal/slides"
)

type newsRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type presentationRequest struct {
	News *news.AggregateResult `json:"news"`
}

type presentationResponse struct {
	Slides []slides.Slide `json:"slides"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(c echo.Context) error {
	stats := s.status.GetStats()

	status := "ok"
	code := http.StatusOK
	if healthy, _ := stats["is_healthy"].(bool); !healthy {
		status = "error"
		code = http.StatusServiceUnavailable
	}

	return c.JSON(code, map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	})
}

func (s *Server) handleStatus(c echo.Context) error {
	resp := map[string]interface{}{"pipeline": s.status.GetStats()}
	if s.quota != nil {
		resp["quota"] = s.quota.Stats()
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleNews(c echo.Context) error {
	var req newsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if strings.TrimSpace(req.StartDate) == "" || strings.TrimSpace(req.EndDate) == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "startDate and endDate are required"})
	}
	r, err := news.ParseDateRange(strings.TrimSpace(req.StartDate), strings.TrimSpace(req.EndDate))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := s.agg.Run(c.Request().Context(), r)
	if err != nil {
		s.log.Error("news request failed", "error", err, "request_id", c.Response().Header().Get(echo.HeaderXRequestID))
		return c.JSON(http.StatusBadGateway, errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) handlePresentation(c echo.Context) error {
	var req presentationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if req.News == nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "news is required"})
	}
	return c.JSON(http.StatusOK, presentationResponse{Slides: slides.Build(*req.News)})
}

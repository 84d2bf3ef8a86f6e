package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/odwoodruff/pet-training-service/internal/service"
)

type TrainerHandler struct {
	svc service.TrainerService
}

func NewTrainerHandler(svc service.TrainerService) *TrainerHandler {
	return &TrainerHandler{svc: svc}
}

func (h *TrainerHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/trainers", h.List)
}

func (h *TrainerHandler) List(c echo.Context) error {
	trainers, err := h.svc.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, trainers)
}

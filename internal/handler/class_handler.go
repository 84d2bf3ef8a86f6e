package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/odwoodruff/pet-training-service/internal/dto"
	"github.com/odwoodruff/pet-training-service/internal/models"
	"github.com/odwoodruff/pet-training-service/internal/repository"
	"github.com/odwoodruff/pet-training-service/internal/service"
)

type ClassHandler struct {
	svc service.ClassService
}

func NewClassHandler(svc service.ClassService) *ClassHandler {
	return &ClassHandler{svc: svc}
}

// Routes live under /api/sessions for compatibility with the existing
// front-end, which calls classes "sessions".
func (h *ClassHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/sessions")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.GET("/trainer/:trainerId", h.ListByTrainer)
}

func (h *ClassHandler) List(c echo.Context) error {
	q := repository.ClassQuery{
		Search:    c.QueryParam("search"),
		SortBy:    strings.ToLower(c.QueryParam("sortBy")),
		SortOrder: strings.ToLower(c.QueryParam("sortOrder")),
	}

	if v := c.QueryParam("trainerId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid trainerId")
		}
		trainerID := uint(id)
		q.TrainerID = &trainerID
	}
	if v := c.QueryParam("minPrice"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid minPrice")
		}
		q.MinPrice = &p
	}
	if v := c.QueryParam("maxPrice"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid maxPrice")
		}
		q.MaxPrice = &p
	}

	classes, err := h.svc.List(c.Request().Context(), q)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, classes)
}

func (h *ClassHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid class id")
	}

	class, err := h.svc.Get(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, class)
}

func (h *ClassHandler) Create(c echo.Context) error {
	var class models.Class
	if err := c.Bind(&class); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if class.Name == "" || class.TrainerID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "name and trainer_id are required")
	}

	if err := h.svc.Create(c.Request().Context(), &class); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, class)
}

func (h *ClassHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid class id")
	}

	var class models.Class
	if err := c.Bind(&class); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.svc.Update(c.Request().Context(), uint(id), &class); err != nil {
		switch {
		case errors.Is(err, service.ErrClassIDMismatch):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrClassNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, class)
}

func (h *ClassHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid class id")
	}

	if err := h.svc.Delete(c.Request().Context(), uint(id)); err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "class deleted"})
}

func (h *ClassHandler) ListByTrainer(c echo.Context) error {
	trainerID, err := strconv.ParseUint(c.Param("trainerId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid trainer id")
	}

	classes, err := h.svc.ListByTrainer(c.Request().Context(), uint(trainerID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, classes)
}

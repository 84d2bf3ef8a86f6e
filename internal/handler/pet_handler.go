package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/odwoodruff/pet-training-service/internal/models"
	"github.com/odwoodruff/pet-training-service/internal/service"
)

type PetHandler struct {
	svc service.PetService
}

func NewPetHandler(svc service.PetService) *PetHandler {
	return &PetHandler{svc: svc}
}

func (h *PetHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/pets")
	g.GET("", h.List)
	g.GET("/customer/:customerId", h.ListByCustomer)
	// Older front-end builds fetch by "owner".
	g.GET("/owner/:customerId", h.ListByCustomer)
	g.POST("", h.Create)
}

func (h *PetHandler) List(c echo.Context) error {
	pets, err := h.svc.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pets)
}

func (h *PetHandler) ListByCustomer(c echo.Context) error {
	customerID, err := strconv.ParseUint(c.Param("customerId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid customer id")
	}

	pets, err := h.svc.ListByCustomer(c.Request().Context(), uint(customerID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pets)
}

func (h *PetHandler) Create(c echo.Context) error {
	var pet models.Pet
	if err := c.Bind(&pet); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if pet.Name == "" || pet.CustomerID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "name and customer_id are required")
	}

	if err := h.svc.Create(c.Request().Context(), &pet); err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, pet)
}

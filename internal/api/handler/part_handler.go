package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voltworks/ev-service-api/internal/core/domain"
	"github.com/voltworks/ev-service-api/internal/core/ports"
)

// PartHandler handles the spare parts inventory.
type PartHandler struct {
	inventory ports.InventoryService
}

func NewPartHandler(inventory ports.InventoryService) *PartHandler {
	return &PartHandler{inventory: inventory}
}

type createPartRequest struct {
	SKU          string  `json:"sku"           validate:"required"`
	Name         string  `json:"name"          validate:"required"`
	Category     string  `json:"category"`
	UnitPrice    float64 `json:"unit_price"    validate:"gte=0"`
	InitialStock int     `json:"initial_stock" validate:"gte=0"`
}

type adjustStockRequest struct {
	// Delta is positive for restock, negative for consumption.
	Delta int `json:"delta" validate:"required"`
}

type partListResponse struct {
	Parts []*domain.Part `json:"parts"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// Create handles POST /v1/parts.
//
// @Summary      Create an inventory part
// @Tags         parts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPartRequest  true  "Part details"
// @Success      201   {object}  domain.Part
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/parts [post]
func (h *PartHandler) Create(c echo.Context) error {
	var req createPartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	part, err := h.inventory.CreatePart(c.Request().Context(), ports.CreatePartInput{
		SKU:          req.SKU,
		Name:         req.Name,
		Category:     req.Category,
		UnitPrice:    req.UnitPrice,
		InitialStock: req.InitialStock,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, part)
}

// Get handles GET /v1/parts/:sku.
//
// @Summary      Get a part by SKU
// @Tags         parts
// @Produce      json
// @Security     BearerAuth
// @Param        sku  path      string  true  "Part SKU"
// @Success      200  {object}  domain.Part
// @Failure      404  {object}  map[string]string
// @Router       /v1/parts/{sku} [get]
func (h *PartHandler) Get(c echo.Context) error {
	part, err := h.inventory.GetPart(c.Request().Context(), c.Param("sku"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, part)
}

// List handles GET /v1/parts.
//
// @Summary      List inventory parts
// @Tags         parts
// @Produce      json
// @Security     BearerAuth
// @Param        category  query     string  false  "Filter by category"
// @Param        search    query     string  false  "Partial match on SKU or name"
// @Param        page      query     int     false  "Page (1-based)"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  partListResponse
// @Router       /v1/parts [get]
func (h *PartHandler) List(c echo.Context) error {
	filter := ports.ListPartsFilter{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 20),
	}

	parts, total, err := h.inventory.ListParts(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, partListResponse{
		Parts: parts,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	})
}

// AdjustStock handles POST /v1/parts/:sku/adjust.
//
// @Summary      Adjust part stock
// @Tags         parts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        sku   path      string              true  "Part SKU"
// @Param        body  body      adjustStockRequest  true  "Stock delta"
// @Success      200   {object}  domain.Part
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/parts/{sku}/adjust [post]
func (h *PartHandler) AdjustStock(c echo.Context) error {
	var req adjustStockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	part, err := h.inventory.AdjustStock(c.Request().Context(), c.Param("sku"), req.Delta)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, part)
}

// Delete handles DELETE /v1/parts/:sku.
//
// @Summary      Delete a part
// @Tags         parts
// @Security     BearerAuth
// @Param        sku  path  string  true  "Part SKU"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/parts/{sku} [delete]
func (h *PartHandler) Delete(c echo.Context) error {
	if err := h.inventory.DeletePart(c.Request().Context(), c.Param("sku")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

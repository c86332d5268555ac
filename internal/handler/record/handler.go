package record

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/arogyavax/internal/handler"
	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/service/record"
	"github.com/jwalitptl/arogyavax/internal/service/stock"
	apperrors "github.com/jwalitptl/arogyavax/pkg/errors"
)

// Handler serves vaccination recording and hospital stock.
type Handler struct {
	records *record.Service
	stock   *stock.Service
}

func NewHandler(records *record.Service, stock *stock.Service) *Handler {
	return &Handler{records: records, stock: stock}
}

func (h *Handler) RegisterRoutes(g handler.Groups) {
	g.Staff.POST("/record-vaccine", h.RecordVaccine)
	g.Authenticated.GET("/stock", h.ListStock)
	g.Staff.POST("/stock/add", h.AddStock)
}

func (h *Handler) RecordVaccine(c *gin.Context) {
	var req model.RecordVaccineRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondError(c, err)
		return
	}

	resp, err := h.records.RecordVaccine(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.Created(c, resp.Message, resp)
}

func (h *Handler) ListStock(c *gin.Context) {
	var hospitalID *int64
	if raw := c.Query("hospital_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			handler.RespondError(c, apperrors.BadRequest("invalid hospital_id", err))
			return
		}
		hospitalID = &id
	}

	rows, err := h.stock.List(c.Request.Context(), hospitalID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.OK(c, rows)
}

func (h *Handler) AddStock(c *gin.Context) {
	var req model.AddStockRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondError(c, err)
		return
	}

	row, err := h.stock.Add(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.Created(c, "Stock updated successfully", row)
}

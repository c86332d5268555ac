package catalogue

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/arogyavax/internal/handler"
	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/service/catalogue"
)

type Handler struct {
	svc *catalogue.Service
}

func NewHandler(svc *catalogue.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g handler.Groups) {
	g.Public.GET("/vaccines", h.ListVaccines)
	g.Public.GET("/hospitals", h.ListHospitals)
	g.Authenticated.POST("/hospitals", h.RegisterHospital)
	g.Admin.POST("/admin/vaccines", h.CreateVaccine)
}

func (h *Handler) ListVaccines(c *gin.Context) {
	vaccines, err := h.svc.Vaccines(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.OK(c, vaccines)
}

func (h *Handler) CreateVaccine(c *gin.Context) {
	var req model.CreateVaccineRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondError(c, err)
		return
	}

	vaccine, err := h.svc.CreateVaccine(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.Created(c, "Vaccine added successfully", vaccine)
}

func (h *Handler) ListHospitals(c *gin.Context) {
	hospitals, err := h.svc.ApprovedHospitals(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.OK(c, hospitals)
}

func (h *Handler) RegisterHospital(c *gin.Context) {
	var req model.CreateHospitalRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondError(c, err)
		return
	}

	hospital, err := h.svc.RegisterHospital(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.Created(c, "Hospital registered, awaiting approval", hospital)
}

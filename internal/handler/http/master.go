package http

import (
	"net/http"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/master"
	"github.com/AiDinaAgustin/microservice-payroll/internal/handler/http/response"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/pagination"
)

// MasterHandler serves one master-data resource. All three resources share it.
type MasterHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	service master.Service
	// labels for response messages, e.g. "Position" and "Positions"
	singular, plural string
}

func NewMasterHandler(service master.Service, singular, plural string) MasterHandler {
	return &masterHandlerImpl{service: service, singular: singular, plural: plural}
}

func (h *masterHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	page, err := pagination.FromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items, total, err := h.service.List(r.Context(), tenantID, master.Filter{Params: page, Search: r.URL.Query().Get("search")})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, h.plural+" retrieved", items, total)
}

func (h *masterHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	item, err := h.service.Get(r.Context(), tenantID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, h.singular+" retrieved", item)
}

func (h *masterHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	var req master.CreateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	item, err := h.service.Create(r.Context(), tenantID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, h.singular+" created", item)
}

func (h *masterHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req master.UpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	req.ID = id

	item, err := h.service.Update(r.Context(), tenantID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, h.singular+" updated", item)
}

func (h *masterHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), tenantID, id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, h.singular+" deleted", nil)
}

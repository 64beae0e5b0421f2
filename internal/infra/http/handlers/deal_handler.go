package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type DealHandler struct {
	UC      *usecase.DealUseCase
	Reports *usecase.ReportUseCase
	log     *logrus.Entry
}

func NewDealHandler(uc *usecase.DealUseCase, reports *usecase.ReportUseCase, log *logrus.Logger) *DealHandler {
	return &DealHandler{UC: uc, Reports: reports, log: log.WithField("handler", "deal")}
}

func (h *DealHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/pipeline", h.Pipeline)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Patch("/{id}/stage", h.MoveStage)
	r.Delete("/{id}", h.Delete)
}

func (h *DealHandler) List(w http.ResponseWriter, r *http.Request) {
	deals, err := h.UC.List(r.Context(), usecase.DealFilter{Stage: r.URL.Query().Get("stage")})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, deals)
}

// Pipeline returns one column per stage, in pipeline order.
func (h *DealHandler) Pipeline(w http.ResponseWriter, r *http.Request) {
	cols, err := h.Reports.Pipeline(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, cols)
}

func (h *DealHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateDealInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, h.log, err)
		return
	}

	deal, err := h.UC.Create(r.Context(), input)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, deal)
}

func (h *DealHandler) Get(w http.ResponseWriter, r *http.Request) {
	deal, err := h.UC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, deal)
}

func (h *DealHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateDealInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, h.log, err)
		return
	}

	deal, err := h.UC.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, deal)
}

func (h *DealHandler) MoveStage(w http.ResponseWriter, r *http.Request) {
	var input usecase.MoveStageInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, h.log, err)
		return
	}

	deal, err := h.UC.MoveStage(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, deal)
}

func (h *DealHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.UC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

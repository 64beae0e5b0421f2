package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type InvoiceHandler struct {
	UC      *usecase.InvoiceUseCase
	Reports *usecase.ReportUseCase
	log     *logrus.Entry
}

func NewInvoiceHandler(uc *usecase.InvoiceUseCase, reports *usecase.ReportUseCase, log *logrus.Logger) *InvoiceHandler {
	return &InvoiceHandler{UC: uc, Reports: reports, log: log.WithField("handler", "invoice")}
}

func (h *InvoiceHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/summary", h.Summary)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Post("/{id}/send", h.Send)
	r.Delete("/{id}", h.Delete)
}

// List handles GET /invoices?search=&status=
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	invoices, err := h.UC.List(r.Context(), usecase.InvoiceFilter{
		Search: q.Get("search"),
		Status: q.Get("status"),
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, invoices)
}

func (h *InvoiceHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Reports.InvoiceSummary(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateInvoiceInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, h.log, err)
		return
	}

	invoice, err := h.UC.Create(r.Context(), input)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, invoice)
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.UC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}

func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateInvoiceInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, h.log, err)
		return
	}

	invoice, err := h.UC.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}

// Send answers 202: the e-mail goes out asynchronously.
func (h *InvoiceHandler) Send(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.UC.Send(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusAccepted, invoice)
}

func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.UC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecalculateItem handles POST /invoice-drafts/items: it applies one field
// edit to a draft line and returns the line with its total.
func (h *InvoiceHandler) RecalculateItem(w http.ResponseWriter, r *http.Request) {
	var input usecase.RecalculateItemInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, h.log, err)
		return
	}

	item, err := h.UC.RecalculateItem(r.Context(), input)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

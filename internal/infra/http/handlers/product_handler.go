package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type ProductHandler struct {
	UC      *usecase.ProductUseCase
	Reports *usecase.ReportUseCase
	log     *logrus.Entry
}

func NewProductHandler(uc *usecase.ProductUseCase, reports *usecase.ReportUseCase, log *logrus.Logger) *ProductHandler {
	return &ProductHandler{UC: uc, Reports: reports, log: log.WithField("handler", "product")}
}

func (h *ProductHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/categories", h.Categories)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Post("/{id}/toggle", h.Toggle)
	r.Delete("/{id}", h.Delete)
}

// List handles GET /products?category=&active=true
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	activeOnly, _ := strconv.ParseBool(q.Get("active"))

	products, err := h.UC.List(r.Context(), usecase.ProductFilter{
		Category:   q.Get("category"),
		ActiveOnly: activeOnly,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Reports.ProductCategories(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateProductInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, h.log, err)
		return
	}

	product, err := h.UC.Create(r.Context(), input)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.UC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateProductInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, h.log, err)
		return
	}

	product, err := h.UC.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	product, err := h.UC.ToggleActive(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.UC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type ReportHandler struct {
	UC  *usecase.ReportUseCase
	log *logrus.Entry
}

func NewReportHandler(uc *usecase.ReportUseCase, log *logrus.Logger) *ReportHandler {
	return &ReportHandler{UC: uc, log: log.WithField("handler", "report")}
}

func (h *ReportHandler) Routes(r chi.Router) {
	r.Get("/dashboard", h.Dashboard)
	r.Get("/analytics", h.Analytics)
	r.Get("/export.xlsx", h.Export)
}

func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.UC.Dashboard(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *ReportHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	a, err := h.UC.Analytics(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// Export buffers the workbook so a failure can still produce a JSON error.
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.UC.Export(r.Context(), &buf); err != nil {
		writeError(w, h.log, err)
		return
	}

	name := fmt.Sprintf("crm-report-%s.xlsx", h.UC.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

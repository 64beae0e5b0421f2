package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

// BrokerStatus is satisfied by queue.RabbitMQ.
type BrokerStatus interface {
	IsClosed() bool
}

type HealthHandler struct {
	Counts    func() map[string]int
	RabbitMQ  BrokerStatus
	Mail      bool
	StartTime time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Records      map[string]int    `json:"records"`
	Dependencies map[string]string `json:"dependencies"`
}

// NewHealthHandler takes a nil broker when RabbitMQ is not configured.
func NewHealthHandler(counts func() map[string]int, rabbitMQ BrokerStatus, mailConfigured bool) *HealthHandler {
	return &HealthHandler{
		Counts:    counts,
		RabbitMQ:  rabbitMQ,
		Mail:      mailConfigured,
		StartTime: time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	if h.RabbitMQ != nil {
		if h.RabbitMQ.IsClosed() {
			deps["rabbitmq"] = "unhealthy: connection closed"
		} else {
			deps["rabbitmq"] = "healthy"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	if h.Mail {
		deps["smtp"] = "configured"
	} else {
		deps["smtp"] = "not configured"
	}

	status := "healthy"
	for _, v := range deps {
		if v != "healthy" && v != "configured" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	response := HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Records:      h.Counts(),
		Dependencies: deps,
	}

	w.Header().Set("Content-Type", "application/json")
	if status == "degraded" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	json.NewEncoder(w).Encode(response)
}

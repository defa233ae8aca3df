package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/finsight/ledgerparse/internal/api/middleware"
	"github.com/finsight/ledgerparse/internal/domain"
)

// MessageExtractor parses one alert message. *sms.Extractor satisfies it.
type MessageExtractor interface {
	Extract(ctx context.Context, message string) domain.ParsedSMSData
}

// SMSHandler serves synchronous single-message extraction.
type SMSHandler struct {
	extractor MessageExtractor
	log       zerolog.Logger
}

func NewSMSHandler(extractor MessageExtractor, log zerolog.Logger) *SMSHandler {
	return &SMSHandler{extractor: extractor, log: log}
}

// Extract handles POST /api/sms with body {"message": "..."}.
func (h *SMSHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Message is required")
		return
	}

	rec := h.extractor.Extract(r.Context(), req.Message)

	h.log.Info().
		Str("merchant", rec.Merchant).
		Int("confidence", rec.Confidence).
		Msg("SMS extraction served")

	middleware.WriteJSON(w, http.StatusOK, rec)
}

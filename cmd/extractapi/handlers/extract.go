// Package handlers provides HTTP handlers for the extraction API,
// grounded on the teacher's handlers.RetrievalHandler shape
// (cmd/knowledge-engine-api/handlers/retrieval.go).
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/freightlayer/extraction-engine/internal/model"
	"github.com/freightlayer/extraction-engine/internal/observability"
	"github.com/freightlayer/extraction-engine/pkg/extraction"
)

// ExtractHandler serves the extraction endpoints over HTTP.
type ExtractHandler struct {
	logger *observability.Logger
	client *extraction.Client
}

// NewExtractHandler builds an ExtractHandler.
func NewExtractHandler(logger *observability.Logger, client *extraction.Client) *ExtractHandler {
	return &ExtractHandler{logger: logger, client: client}
}

// ExtractRequestDTO is the wire shape of POST /v1/extract.
type ExtractRequestDTO struct {
	SourceRef              string `json:"sourceRef"`
	Subject                string `json:"subject,omitempty"`
	BodyText               string `json:"bodyText,omitempty"`
	PDFText                string `json:"pdfText,omitempty"`
	SenderIdentity         string `json:"senderIdentity,omitempty"`
	OriginalSenderIdentity string `json:"originalSenderIdentity,omitempty"`
	CarrierHint            string `json:"carrierHint,omitempty"`
	DocumentType           string `json:"documentType,omitempty"`
}

// Extract handles POST /v1/extract: runs the pipeline over one input and
// returns the full extraction record as JSON.
func (h *ExtractHandler) Extract(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var reqDTO ExtractRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if reqDTO.SourceRef == "" {
		h.writeError(w, http.StatusBadRequest, "sourceRef is required", "")
		return
	}

	in := model.Input{
		SourceRef:              reqDTO.SourceRef,
		Subject:                reqDTO.Subject,
		BodyText:               reqDTO.BodyText,
		PDFText:                reqDTO.PDFText,
		SenderIdentity:         reqDTO.SenderIdentity,
		OriginalSenderIdentity: reqDTO.OriginalSenderIdentity,
		CarrierHint:            reqDTO.CarrierHint,
		DocumentType:           reqDTO.DocumentType,
	}

	record, err := h.client.Extract(ctx, in)
	if err != nil {
		h.logger.Error().Err(err).Str("source_ref", in.SourceRef).Msg("extraction failed")
		h.writeError(w, http.StatusInternalServerError, "extraction failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(record); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (h *ExtractHandler) writeError(w http.ResponseWriter, status int, message, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := map[string]string{"error": message}
	if detail != "" {
		resp["detail"] = detail
	}
	json.NewEncoder(w).Encode(resp)
}

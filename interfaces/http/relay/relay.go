// Package relay forwards uploaded images to an external image-analysis
// endpoint and passes the numeric result through. It performs no
// validation beyond forwarding and is unrelated to the form service.
package relay

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go.uber.org/zap"

	"formforge-backend/pkg/common"
)

// Handler relays POST /analyze requests to the upstream analysis service
type Handler struct {
	upstreamURL string
	client      *http.Client
	logger      *zap.Logger
}

// NewHandler creates a relay handler for the given upstream URL
func NewHandler(upstreamURL string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		upstreamURL: upstreamURL,
		client:      &http.Client{Timeout: 30 * time.Second},
		logger:      logger,
	}
}

// AnalyzeResult is the upstream response shape passed through to callers
type AnalyzeResult struct {
	Fingers int `json:"fingers"`
}

// Analyze handles POST /analyze. The image arrives either as a multipart
// file upload ("image") or as a base64 data-URL form field ("image");
// both are forwarded unchanged in shape to the upstream endpoint.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	// Multipart file upload
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		h.forwardFile(w, r, file, header.Filename)
		return
	}

	// Base64 data-URL form field
	if encoded := r.FormValue("image"); encoded != "" {
		h.forwardForm(w, r, encoded)
		return
	}

	common.RespondError(w, http.StatusBadRequest, "VALIDATION", "no image received")
}

// forwardFile re-wraps the uploaded file as the multipart "file" field the
// upstream expects
func (h *Handler) forwardFile(w http.ResponseWriter, r *http.Request, file io.Reader, filename string) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		h.fail(w, err)
		return
	}
	if _, err := io.Copy(part, file); err != nil {
		h.fail(w, err)
		return
	}
	if err := writer.Close(); err != nil {
		h.fail(w, err)
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, h.upstreamURL, &body)
	if err != nil {
		h.fail(w, err)
		return
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	h.relay(w, req)
}

// forwardForm passes the base64 payload through as a urlencoded form field
func (h *Handler) forwardForm(w http.ResponseWriter, r *http.Request, encoded string) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("image", encoded); err != nil {
		h.fail(w, err)
		return
	}
	if err := writer.Close(); err != nil {
		h.fail(w, err)
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, h.upstreamURL, &body)
	if err != nil {
		h.fail(w, err)
		return
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	h.relay(w, req)
}

func (h *Handler) relay(w http.ResponseWriter, req *http.Request) {
	resp, err := h.client.Do(req)
	if err != nil {
		h.fail(w, err)
		return
	}
	defer resp.Body.Close()

	var result AnalyzeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		h.fail(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	json.NewEncoder(w).Encode(result)
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	h.logger.Error("image analysis relay failed", zap.Error(err))
	common.RespondError(w, http.StatusBadGateway, "EXTERNAL", "image analysis failed")
}

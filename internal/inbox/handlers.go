package inbox

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"quickcap/internal/logging"
	"quickcap/internal/model"
	"quickcap/internal/sink"
)

type errorResponse struct {
	Error string `json:"error"`
}

type captureResponse struct {
	ID   string `json:"id"`
	File string `json:"file"`
}

type healthzResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func healthz(start time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthzResponse{
			Status:        "ok",
			UptimeSeconds: time.Since(start).Seconds(),
		})
	}
}

// captureHandler accepts the endpoint sink's payload and appends the body to
// today's daily note under dir.
func captureHandler(dir string, files *sink.FileSink, log logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p sink.Payload
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err := dec.Decode(&p); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}
		if strings.TrimSpace(p.Body) == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "body is required"})
			return
		}

		id := r.Header.Get(sink.CaptureIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		file, err := files.SaveNote(r.Context(), sink.FileRequest{
			Thought: p.Body,
			Path:    dir,
			Mode:    model.ModeDaily,
		})
		if err != nil {
			log.Error("capture write failed",
				logging.String("capture_id", id),
				logging.String("request_id", middleware.GetReqID(r.Context())),
				logging.Error(err),
			)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "write failed"})
			return
		}

		log.Info("capture received",
			logging.String("capture_id", id),
			logging.String("sent_at", p.Timestamp),
			logging.String("file", file),
		)
		writeJSON(w, http.StatusCreated, captureResponse{ID: id, File: file})
	}
}

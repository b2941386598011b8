package orchestrator

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the conversational endpoint.
func RegisterRoutes(r chi.Router, o *Orchestrator) {
	r.Post("/api/chat", func(w http.ResponseWriter, req *http.Request) {
		var in Input
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if in.UserID == "" || in.Message == "" {
			writeError(w, http.StatusBadRequest, "userId and message are required")
			return
		}

		out := o.Turn(req.Context(), in)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(out)
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

package actions

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the action invocation endpoint. The body is a
// flat bag of string parameters; the response mirrors the action's
// result envelope.
func RegisterRoutes(r chi.Router, router *Router) {
	r.Post("/api/actions/{action}", func(w http.ResponseWriter, req *http.Request) {
		action := chi.URLParam(req, "action")

		params := Params{}
		if req.Body != nil && req.ContentLength != 0 {
			if err := json.NewDecoder(req.Body).Decode(&params); err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string]string{"error": "invalid request body"})
				return
			}
		}

		result := router.Invoke(req.Context(), action, params)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(result.StatusCode)
		json.NewEncoder(w).Encode(result.Body)
	})
}

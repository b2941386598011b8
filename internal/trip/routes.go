package trip

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the trip API routes.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/api/trips", func(r chi.Router) {
		r.Post("/", handleCreate(store))
		r.Get("/", handleList(store))
		r.Get("/{id}", handleGetByID(store))
		r.Put("/{id}/fields", handleUpdateField(store))
		r.Put("/{id}/phase", handleUpdatePhase(store))
	})
}

type createRequest struct {
	OwnerID            string `json:"ownerId"`
	Name               string `json:"name"`
	InitialDestination string `json:"initialDestination"`
}

func handleCreate(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.OwnerID == "" {
			http.Error(w, `{"error":"ownerId is required"}`, http.StatusBadRequest)
			return
		}

		t, err := store.Create(r.Context(), req.OwnerID, req.Name, req.InitialDestination)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(t)
	}
}

func handleList(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID := r.URL.Query().Get("owner_id")
		if ownerID == "" {
			http.Error(w, `{"error":"owner_id is required"}`, http.StatusBadRequest)
			return
		}

		trips, err := store.ListByOwner(r.Context(), ownerID)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if trips == nil {
			trips = []Trip{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(trips)
	}
}

func handleGetByID(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		t, err := store.GetByID(r.Context(), id)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if t == nil {
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(t)
	}
}

type updateFieldRequest struct {
	Field string          `json:"field"`
	Value json.RawMessage `json:"value"`
}

func handleUpdateField(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req updateFieldRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Field == "" {
			http.Error(w, `{"error":"field is required"}`, http.StatusBadRequest)
			return
		}

		var value any
		if err := json.Unmarshal(req.Value, &value); err != nil {
			value = string(req.Value)
		}

		if err := store.UpdateField(r.Context(), id, Field(req.Field), value); err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		score, err := store.RecomputeScore(r.Context(), id)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		t, err := store.GetByID(r.Context(), id)
		if err != nil || t == nil {
			http.Error(w, `{"error":"trip not found"}`, http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"tripId":               id,
			"updatedField":         req.Field,
			"knowledgeScore":       score,
			"canAdvanceToPlanning": CanAdvanceToPlanning(t),
			"pendingQuestions":     PendingQuestions(t),
		})
	}
}

type updatePhaseRequest struct {
	Phase Phase `json:"phase"`
}

func handleUpdatePhase(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req updatePhaseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if !ValidPhase(req.Phase) {
			http.Error(w, `{"error":"invalid phase"}`, http.StatusBadRequest)
			return
		}

		t, err := store.GetByID(r.Context(), id)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if t == nil {
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
			return
		}

		if req.Phase == PhasePlanning && !CanAdvanceToPlanning(t) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{
				"error":         "cannot advance to PLANNING phase",
				"minimumScore":  MinimumKnowledgeScore,
				"currentScore":  t.KnowledgeScore,
				"pendingFields": PendingQuestions(t),
			})
			return
		}

		if err := store.UpdatePhase(r.Context(), id, req.Phase); err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"tripId":        id,
			"previousPhase": t.CurrentPhase,
			"currentPhase":  req.Phase,
		})
	}
}

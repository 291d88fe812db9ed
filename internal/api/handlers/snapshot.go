package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/almanac/internal/contracts"
	"github.com/wonny/almanac/internal/pipeline"
	"github.com/wonny/almanac/internal/snapshot"
	"github.com/wonny/almanac/pkg/logger"
)

// SnapshotHandler serves the snapshot, delta and ranking tables.
// Read-only: runs are triggered by the CLI or the scheduler, never over
// HTTP.
type SnapshotHandler struct {
	store  contracts.SnapshotStore
	engine *snapshot.Engine
	logger *logger.Logger
}

// NewSnapshotHandler creates a snapshot handler
func NewSnapshotHandler(store contracts.SnapshotStore, engine *snapshot.Engine, log *logger.Logger) *SnapshotHandler {
	return &SnapshotHandler{store: store, engine: engine, logger: log}
}

// GetSnapshot returns one generation's full table for a domain
func (h *SnapshotHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	domain := vars["domain"]
	gen := contracts.Generation(vars["generation"])

	if gen != contracts.GenerationCurrent && gen != contracts.GenerationPrevious {
		writeError(w, http.StatusBadRequest, "generation must be current or previous")
		return
	}

	snap, err := h.store.Load(r.Context(), domain, gen)
	if err != nil {
		if errors.Is(err, contracts.ErrSnapshotNotFound) {
			writeError(w, http.StatusNotFound, "snapshot not found")
			return
		}
		h.logger.WithError(err).Error("Failed to load snapshot")
		writeError(w, http.StatusInternalServerError, "failed to load snapshot")
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

// GetDeltas returns the per-entity deltas between generations
func (h *SnapshotHandler) GetDeltas(w http.ResponseWriter, r *http.Request) {
	domain := mux.Vars(r)["domain"]

	deltas, err := h.engine.Diff(r.Context(), domain)
	if err != nil {
		var insufficient *contracts.InsufficientHistoryError
		if errors.As(err, &insufficient) {
			// No prior period yet: an empty delta table, not a failure
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"domain": domain,
				"deltas": []contracts.DeltaRecord{},
				"note":   insufficient.Error(),
			})
			return
		}
		h.logger.WithError(err).Error("Failed to diff snapshots")
		writeError(w, http.StatusInternalServerError, "failed to diff snapshots")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"domain": domain,
		"deltas": deltas,
	})
}

// GetPowerRankings returns the current power ranking table
func (h *SnapshotHandler) GetPowerRankings(w http.ResponseWriter, r *http.Request) {
	h.rankedCurrent(w, r, func(teams []contracts.TeamMetrics) interface{} {
		return pipeline.PowerRankings(teams)
	})
}

// GetPythag returns the current pythagorean over/under table
func (h *SnapshotHandler) GetPythag(w http.ResponseWriter, r *http.Request) {
	h.rankedCurrent(w, r, func(teams []contracts.TeamMetrics) interface{} {
		return pipeline.PythagOverUnder(teams)
	})
}

// GetMovers returns the delta-ranked weekly movers
func (h *SnapshotHandler) GetMovers(w http.ResponseWriter, r *http.Request) {
	domain := mux.Vars(r)["domain"]

	deltas, err := h.engine.Diff(r.Context(), domain)
	if err != nil {
		var insufficient *contracts.InsufficientHistoryError
		if errors.As(err, &insufficient) {
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"domain": domain,
				"movers": []interface{}{},
				"note":   insufficient.Error(),
			})
			return
		}
		h.logger.WithError(err).Error("Failed to diff snapshots")
		writeError(w, http.StatusInternalServerError, "failed to diff snapshots")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"domain": domain,
		"movers": pipeline.WeeklyMovers(deltas),
	})
}

// rankedCurrent loads the current snapshot and applies a ranking view
func (h *SnapshotHandler) rankedCurrent(w http.ResponseWriter, r *http.Request, view func([]contracts.TeamMetrics) interface{}) {
	domain := mux.Vars(r)["domain"]

	snap, err := h.store.Load(r.Context(), domain, contracts.GenerationCurrent)
	if err != nil {
		if errors.Is(err, contracts.ErrSnapshotNotFound) {
			writeError(w, http.StatusNotFound, "no current snapshot for domain")
			return
		}
		h.logger.WithError(err).Error("Failed to load snapshot")
		writeError(w, http.StatusInternalServerError, "failed to load snapshot")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"domain":  domain,
		"ranking": view(snap.Records),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

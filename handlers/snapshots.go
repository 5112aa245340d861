package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/fontaine-sante/scos/logger"
)

func (a *API) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	names, err := a.Store.Snapshots()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"snapshots": names})
}

// CreateSnapshot refreshes the JSON mirror and backs it up.
func (a *API) CreateSnapshot(w http.ResponseWriter, r *http.Request) {
	a.mirrorMaterials()
	a.mirrorSuppliers()
	a.mirrorWarehouses()
	a.mirrorPricing()

	name, err := a.Store.Snapshot()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	logger.Get().Info("mirror snapshot created", zap.String("snapshot", name))
	respondJSON(w, http.StatusCreated, map[string]string{"snapshot": name})
}

type restoreReq struct {
	Snapshot string `json:"snapshot"`
}

// RestoreSnapshot rolls the JSON mirror back to a named snapshot. It
// only touches the mirror files; the database is left as is.
func (a *API) RestoreSnapshot(w http.ResponseWriter, r *http.Request) {
	var req restoreReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := a.Store.Restore(req.Snapshot); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	logger.Get().Info("mirror snapshot restored", zap.String("snapshot", req.Snapshot))
	respondJSON(w, http.StatusOK, map[string]string{"restored": req.Snapshot})
}

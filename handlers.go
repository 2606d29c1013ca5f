package railwaycodes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mikeqfu/railwaycodes-utils/mileage"
	"github.com/mikeqfu/railwaycodes-utils/source"
)

type healthResponse struct {
	Status string `json:"status"`
}

type apiError struct {
	Error string `json:"error"`
}

type connectionResponse struct {
	Start        string   `json:"start"`
	End          string   `json:"end"`
	Found        bool     `json:"found"`
	StartMileage *string  `json:"startMileage"`
	EndMileage   *string  `json:"endMileage"`
	StartMiles   *float64 `json:"startMiles"`
	EndMiles     *float64 `json:"endMiles"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// handleConnection resolves the connection point between two ELRs.
// No discoverable connection is a normal outcome: a 200 with
// found=false and null mileages, distinct from fetch/parse failures.
func handleConnection(res *Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, err := normalizeELR(r.URL.Query().Get("start"), "a start ELR")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
			return
		}
		end, err := normalizeELR(r.URL.Query().Get("end"), "an end ELR")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
			return
		}
		sm, em, err := res.ResolveConnection(start, end)
		if err != nil {
			writeJSON(w, errorStatus(err), apiError{Error: err.Error()})
			return
		}
		resp := connectionResponse{Start: start, End: end}
		if sm != nil && em != nil {
			resp.Found = true
			s, e := sm.String(), em.String()
			sd, ed := sm.Decimal(), em.Decimal()
			resp.StartMileage, resp.EndMileage = &s, &e
			resp.StartMiles, resp.EndMiles = &sd, &ed
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleMileageFile(store MileageFileStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		elr, err := normalizeELR(chi.URLParam(r, "elr"), "an ELR")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
			return
		}
		f, err := store.MileageFile(elr)
		if err != nil {
			writeJSON(w, errorStatus(err), apiError{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, f)
	}
}

func errorStatus(err error) int {
	var fe *source.FetchError
	if errors.As(err, &fe) {
		return http.StatusBadGateway
	}
	var se *mileage.StructuralMismatchError
	if errors.As(err, &se) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

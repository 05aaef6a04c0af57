package restserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"github.com/glazecalc/glazecalc/internal/constants"
	"github.com/glazecalc/glazecalc/pkg/estimate"
	"github.com/glazecalc/glazecalc/pkg/report"
	"github.com/glazecalc/glazecalc/pkg/responseformat"
	"github.com/glazecalc/glazecalc/pkg/units"
)

var errUnknownPreset = errors.New("unknown preset")

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
	formatter  *responseformat.Formatter
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		formatter:  responseformat.NewFormatter(),
	}
}

// GetHealth reports liveness and the running version.
func (h *Handlers) GetHealth(w http.ResponseWriter, req *http.Request) {
	h.formatter.WriteResponse(w, req, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": constants.Version,
	})
}

// GetPresets lists the calibration presets available to estimate requests.
func (h *Handlers) GetPresets(w http.ResponseWriter, req *http.Request) {
	builtin := make(map[string]bool)
	for _, p := range estimate.Presets() {
		builtin[p.Name] = true
	}

	presets := make([]PresetResponse, 0, len(h.controller.presets))
	for name, cal := range h.controller.presets {
		presets = append(presets, PresetResponse{
			Name:        name,
			Calibration: cal,
			BuiltIn:     builtin[name],
		})
	}
	sort.Slice(presets, func(i, j int) bool { return presets[i].Name < presets[j].Name })

	h.formatter.WriteResponse(w, req, http.StatusOK, presets)
}

// PostEstimate runs one estimation from a flat parameter set.
func (h *Handlers) PostEstimate(w http.ResponseWriter, req *http.Request) {
	var payload EstimateRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		h.formatter.WriteError(w, req, http.StatusBadRequest, "bad_request", "invalid JSON payload")
		return
	}

	door, glass, cal, recess, err := h.controller.resolveInputs(payload)
	if err != nil {
		h.writeEngineError(w, req, err)
		return
	}

	result, err := h.controller.estimator.Estimate(door, glass, cal, recess)
	if err != nil {
		h.writeEngineError(w, req, err)
		return
	}

	h.formatter.WriteResponse(w, req, http.StatusOK, result)
}

// PostSweep runs a batch of estimations across a dimension range.
func (h *Handlers) PostSweep(w http.ResponseWriter, req *http.Request) {
	var payload SweepAPIRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		h.formatter.WriteError(w, req, http.StatusBadRequest, "bad_request", "invalid JSON payload")
		return
	}

	door, glass, cal, recess, err := h.controller.resolveInputs(payload.EstimateRequest)
	if err != nil {
		h.writeEngineError(w, req, err)
		return
	}

	table, err := h.controller.estimator.Sweep(estimate.SweepRequest{
		Door:        door,
		Glass:       glass,
		Calibration: cal,
		Recess:      recess,
		Axis:        estimate.SweepAxis(payload.Axis),
		From:        payload.From,
		To:          payload.To,
		Step:        payload.Step,
		Panels:      payload.Panels,
	})
	if err != nil {
		if isEngineError(err) {
			h.writeEngineError(w, req, err)
		} else {
			// Malformed sweep parameters (bad axis, empty range, ...).
			h.formatter.WriteError(w, req, http.StatusUnprocessableEntity, "invalid_sweep", err.Error())
		}
		return
	}

	h.formatter.WriteResponse(w, req, http.StatusOK, table)
}

// PostDatasheet runs one estimation and returns it as a PDF datasheet.
func (h *Handlers) PostDatasheet(w http.ResponseWriter, req *http.Request) {
	var payload DatasheetRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		h.formatter.WriteError(w, req, http.StatusBadRequest, "bad_request", "invalid JSON payload")
		return
	}

	door, glass, cal, recess, err := h.controller.resolveInputs(payload.EstimateRequest)
	if err != nil {
		h.writeEngineError(w, req, err)
		return
	}

	result, err := h.controller.estimator.Estimate(door, glass, cal, recess)
	if err != nil {
		h.writeEngineError(w, req, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="estimate.pdf"`)
	meta := report.DatasheetMeta{
		Project: payload.Project,
		Author:  payload.Author,
		Title:   payload.Title,
		Notes:   payload.Notes,
	}
	if err := report.WriteDatasheet(w, meta, door, result); err != nil {
		h.controller.logger.Errorf("datasheet generation failed: %v", err)
	}
}

func isEngineError(err error) bool {
	return errors.Is(err, units.ErrInvalidUnit) ||
		errors.Is(err, estimate.ErrNonPositiveDimension) ||
		errors.Is(err, estimate.ErrDegenerateCalibration) ||
		errors.Is(err, estimate.ErrNumericOverflow) ||
		errors.Is(err, errUnknownPreset)
}

// writeEngineError maps engine errors onto HTTP statuses. Validation
// failures are 422; anything unrecognized is a 500.
func (h *Handlers) writeEngineError(w http.ResponseWriter, req *http.Request, err error) {
	code := "internal_error"
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, units.ErrInvalidUnit):
		code, status = "invalid_unit", http.StatusUnprocessableEntity
	case errors.Is(err, estimate.ErrNonPositiveDimension):
		code, status = "non_positive_dimension", http.StatusUnprocessableEntity
	case errors.Is(err, estimate.ErrDegenerateCalibration):
		code, status = "degenerate_calibration", http.StatusUnprocessableEntity
	case errors.Is(err, estimate.ErrNumericOverflow):
		code, status = "numeric_overflow", http.StatusUnprocessableEntity
	case errors.Is(err, errUnknownPreset):
		code, status = "unknown_preset", http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		h.controller.logger.Errorf("estimate request failed: %v", err)
	}
	h.formatter.WriteError(w, req, status, code, err.Error())
}

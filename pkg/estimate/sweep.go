package estimate

import (
	"fmt"
	"math"

	"github.com/glazecalc/glazecalc/pkg/units"
)

// SweepAxis selects which dimension a sweep varies.
type SweepAxis string

const (
	SweepWidth  SweepAxis = "width"
	SweepHeight SweepAxis = "height"
)

// maxSweepPoints bounds a single sweep request.
const maxSweepPoints = 10000

// SweepRequest describes a batch of estimations varying one dimension
// across a range for one or more panel counts. The non-swept dimension is
// taken from Door; everything else is held fixed.
type SweepRequest struct {
	Door        DoorSpec             `json:"door"`
	Glass       GlassSpec            `json:"glass"`
	Calibration ReferenceCalibration `json:"calibration"`
	Recess      RecessConfig         `json:"recess"`

	Axis   SweepAxis `json:"axis"`
	From   float64   `json:"from"`
	To     float64   `json:"to"`
	Step   float64   `json:"step"`
	Panels []int     `json:"panels"`
}

// SweepTable is the result grid: one row per swept dimension value, one
// column per panel count. UBTU[i][j] is the estimate at Values[i] with
// Panels[j] panels.
type SweepTable struct {
	Axis    SweepAxis        `json:"axis"`
	Unit    units.LengthUnit `json:"unit"`
	Panels  []int            `json:"panels"`
	Values  []float64        `json:"values"`
	UMetric [][]float64      `json:"u_metric"`
	UBTU    [][]float64      `json:"u_btu"`
}

// Sweep applies Estimate across the requested range. It is a pure batch of
// independent estimation calls; any single failure aborts the sweep.
func (e *Estimator) Sweep(req SweepRequest) (*SweepTable, error) {
	if req.Axis != SweepWidth && req.Axis != SweepHeight {
		return nil, fmt.Errorf("unknown sweep axis %q", req.Axis)
	}
	if req.Step <= 0 {
		return nil, fmt.Errorf("sweep step must be positive, got %v", req.Step)
	}
	if req.To < req.From {
		return nil, fmt.Errorf("sweep range is empty: from %v to %v", req.From, req.To)
	}
	if len(req.Panels) == 0 {
		return nil, fmt.Errorf("sweep needs at least one panel count")
	}
	if n := (req.To-req.From)/req.Step + 1; n > maxSweepPoints {
		return nil, fmt.Errorf("sweep would produce %.0f points, limit is %d", math.Floor(n), maxSweepPoints)
	}

	table := &SweepTable{
		Axis:   req.Axis,
		Unit:   req.Door.Unit,
		Panels: append([]int(nil), req.Panels...),
	}

	for v := req.From; v <= req.To+req.Step*1e-9; v += req.Step {
		rowMetric := make([]float64, len(req.Panels))
		rowBTU := make([]float64, len(req.Panels))

		for j, panels := range req.Panels {
			door := req.Door
			door.Panels = panels
			switch req.Axis {
			case SweepWidth:
				door.Width = v
			case SweepHeight:
				door.Height = v
			}

			result, err := e.Estimate(door, req.Glass, req.Calibration, req.Recess)
			if err != nil {
				return nil, fmt.Errorf("sweep at %s=%v panels=%d: %w", req.Axis, v, panels, err)
			}
			rowMetric[j] = result.UMetric
			rowBTU[j] = result.UBTU
		}

		table.Values = append(table.Values, v)
		table.UMetric = append(table.UMetric, rowMetric)
		table.UBTU = append(table.UBTU, rowBTU)
	}

	return table, nil
}

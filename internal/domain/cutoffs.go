package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// CutoffBand is one severity band of a cutoff table: values up to and
// including Upper classify as (Label, Severity). The final band of a table
// is open-ended (Upper = +Inf).
type CutoffBand struct {
	Upper    float64  `json:"upper"`
	Label    string   `json:"label"`
	Severity Severity `json:"severity"`
}

// MarshalJSON renders the open-ended band's +Inf upper bound as null,
// which encoding/json cannot represent as a number.
func (b CutoffBand) MarshalJSON() ([]byte, error) {
	type wire struct {
		Upper    *float64 `json:"upper"`
		Label    string   `json:"label"`
		Severity Severity `json:"severity"`
	}
	w := wire{Label: b.Label, Severity: b.Severity}
	if !math.IsInf(b.Upper, 1) {
		w.Upper = &b.Upper
	}
	return json.Marshal(w)
}

// CutoffTable maps one index's value range onto severity bands. Bands are
// ascending by upper bound. Direction records which end of the range is
// adverse: HigherIsWorse tables carry non-decreasing severities, mirrored
// LowerIsWorse tables (eGDR, Hb/RDW, HPR) non-increasing ones. Both run
// through the same classify contract; there is no second code path.
type CutoffTable struct {
	Index     IndexCode    `json:"index"`
	Direction Direction    `json:"direction"`
	Bands     []CutoffBand `json:"bands"`
}

// Validate checks the structural invariants of the table. A malformed table
// is a configuration fault: fatal at engine construction, never per-request.
func (t *CutoffTable) Validate() error {
	if !t.Index.IsValid() {
		return fmt.Errorf("cutoff table validation: unknown index code %q", t.Index)
	}

	if !t.Direction.IsValid() {
		return fmt.Errorf("cutoff table validation for %s: invalid direction %q", t.Index, t.Direction)
	}

	if len(t.Bands) < 2 {
		return fmt.Errorf("cutoff table validation for %s: need at least 2 bands, got %d", t.Index, len(t.Bands))
	}

	last := t.Bands[len(t.Bands)-1]
	if !math.IsInf(last.Upper, 1) {
		return fmt.Errorf("cutoff table validation for %s: final band must be open-ended", t.Index)
	}

	for i, b := range t.Bands {
		if !b.Severity.Present() {
			return fmt.Errorf("cutoff table validation for %s: band %d has severity %d outside 0-3", t.Index, i, b.Severity)
		}
		if b.Label == "" {
			return fmt.Errorf("cutoff table validation for %s: band %d has empty label", t.Index, i)
		}
		if i == 0 {
			continue
		}
		prev := t.Bands[i-1]
		if b.Upper <= prev.Upper {
			return fmt.Errorf("cutoff table validation for %s: band %d upper bound %.4g not ascending", t.Index, i, b.Upper)
		}
		switch t.Direction {
		case HigherIsWorse:
			if b.Severity < prev.Severity {
				return fmt.Errorf("cutoff table validation for %s: severity must be non-decreasing, band %d breaks order", t.Index, i)
			}
		case LowerIsWorse:
			if b.Severity > prev.Severity {
				return fmt.Errorf("cutoff table validation for %s: severity must be non-increasing, band %d breaks order", t.Index, i)
			}
		}
	}

	return nil
}

// Classify maps a value onto the first band whose upper bound covers it.
// Total for all finite inputs: values past every bounded band land in the
// final open-ended band.
func (t *CutoffTable) Classify(value float64) CutoffBand {
	for _, b := range t.Bands {
		if value <= b.Upper {
			return b
		}
	}
	return t.Bands[len(t.Bands)-1]
}

package domain

import (
	"fmt"
	"strconv"
	"time"
)

// DomainResult is the aggregated outcome for one physiological domain.
// Score is always in [0,25]. A domain with zero computable members scores
// 0 with the NA label so absence stays distinct from zero risk.
type DomainResult struct {
	Name    DomainName  `json:"name"`
	Members []IndexCode `json:"members"`
	Present int         `json:"present"`
	Score   float64     `json:"score"`
	Label   string      `json:"label"`
	Comment string      `json:"comment"`
}

// Report is the complete best-effort scoring result handed to a rendering
// collaborator. Every entity inside it is computed fresh per request and
// never survives the request.
type Report struct {
	ID            string         `json:"id"`
	PatientName   string         `json:"patient_name"`
	Date          string         `json:"date"`
	Age           *float64       `json:"age,omitempty"`
	Sex           Sex            `json:"sex"`
	Diabetes      bool           `json:"diabetes"`
	Indices       []DerivedIndex `json:"indices"`
	Domains       []DomainResult `json:"domains"`
	TotalScore    float64        `json:"total_score"`
	RiskCategory  RiskCategory   `json:"risk_category"`
	GeneratedAt   time.Time      `json:"generated_at"`
	EngineVersion string         `json:"engine_version"`
}

// Index returns the derived index with the given code, if the report
// carries one.
func (r *Report) Index(code IndexCode) (DerivedIndex, bool) {
	for _, idx := range r.Indices {
		if idx.Code == code {
			return idx, true
		}
	}
	return DerivedIndex{}, false
}

// Domain returns the aggregated result for the named domain.
func (r *Report) Domain(name DomainName) (DomainResult, bool) {
	for _, d := range r.Domains {
		if d.Name == name {
			return d, true
		}
	}
	return DomainResult{}, false
}

// FormatValue renders an index value for display, "NA" when absent.
func (d DerivedIndex) FormatValue() string {
	if d.Value == nil {
		return "NA"
	}
	return strconv.FormatFloat(*d.Value, 'f', 2, 64)
}

// Flatten renders the report as a flat key/value document so any renderer
// or storage collaborator can consume it without knowing the Go types.
func (r *Report) Flatten() map[string]string {
	out := map[string]string{
		"report_id":      r.ID,
		"patient_name":   r.PatientName,
		"date":           r.Date,
		"sex":            r.Sex.String(),
		"diabetes":       strconv.FormatBool(r.Diabetes),
		"total_score":    strconv.FormatFloat(r.TotalScore, 'f', 1, 64),
		"risk_category":  r.RiskCategory.String(),
		"generated_at":   r.GeneratedAt.UTC().Format(time.RFC3339),
		"engine_version": r.EngineVersion,
	}
	if r.Age != nil {
		out["age"] = strconv.FormatFloat(*r.Age, 'f', 0, 64)
	}
	for _, idx := range r.Indices {
		key := "index." + string(idx.Code)
		out[key+".value"] = idx.FormatValue()
		out[key+".severity"] = idx.Severity.String()
		out[key+".label"] = idx.Label
	}
	for _, d := range r.Domains {
		key := "domain." + string(d.Name)
		out[key+".score"] = strconv.FormatFloat(d.Score, 'f', 1, 64)
		out[key+".label"] = d.Label
		out[key+".comment"] = d.Comment
	}
	return out
}

// KeyIndexLines renders the "Key Indices (with severity)" report section:
// one formatted line per index in catalog order.
func (r *Report) KeyIndexLines() []string {
	lines := make([]string, 0, len(r.Indices))
	for _, idx := range r.Indices {
		lines = append(lines, fmt.Sprintf("%s: %s (%s)", idx.Code, idx.FormatValue(), idx.Label))
	}
	return lines
}

package service

import (
	"fmt"
	"math"

	"github.com/metabo-score-server/internal/domain"
)

// CutoffRegistry holds the immutable per-index cutoff tables and the fixed
// domain membership lists. It is built once at engine construction and
// validated there; a malformed table is fatal at startup, never per-request.
type CutoffRegistry struct {
	tables  map[domain.IndexCode]*domain.CutoffTable
	domains map[domain.DomainName][]domain.IndexCode
}

// NewCutoffRegistry builds a registry from the given tables, validating
// every table and checking that each catalog index is covered exactly once
// across the four domains.
func NewCutoffRegistry(tables []*domain.CutoffTable) (*CutoffRegistry, error) {
	r := &CutoffRegistry{
		tables:  make(map[domain.IndexCode]*domain.CutoffTable, len(tables)),
		domains: domainMembers(),
	}

	for _, t := range tables {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("cutoff registry: %w", err)
		}
		if _, dup := r.tables[t.Index]; dup {
			return nil, fmt.Errorf("cutoff registry: duplicate table for index %s", t.Index)
		}
		r.tables[t.Index] = t
	}

	for _, code := range domain.AllIndices() {
		if _, ok := r.tables[code]; !ok {
			return nil, fmt.Errorf("cutoff registry: missing table for index %s", code)
		}
	}

	return r, nil
}

// NewDefaultCutoffRegistry builds the registry from the built-in tables.
func NewDefaultCutoffRegistry() (*CutoffRegistry, error) {
	return NewCutoffRegistry(defaultCutoffTables())
}

// Table returns the cutoff table for an index.
func (r *CutoffRegistry) Table(code domain.IndexCode) (*domain.CutoffTable, bool) {
	t, ok := r.tables[code]
	return t, ok
}

// DomainMembers returns the fixed member list of a domain.
func (r *CutoffRegistry) DomainMembers(name domain.DomainName) []domain.IndexCode {
	return r.domains[name]
}

// domainMembers defines the four fixed physiological domains.
func domainMembers() map[domain.DomainName][]domain.IndexCode {
	return map[domain.DomainName][]domain.IndexCode{
		domain.DomainInflammation: {
			domain.IndexNLR, domain.IndexPLR, domain.IndexSII, domain.IndexSIRI, domain.IndexAISI,
		},
		domain.DomainOxidative: {
			domain.IndexRDW, domain.IndexRPR, domain.IndexRAR,
			domain.IndexHbRDW, domain.IndexMCVHb, domain.IndexHPR,
		},
		domain.DomainEndothelial: {
			domain.IndexMHR, domain.IndexNHR,
		},
		domain.DomainMetabolic: {
			domain.IndexTyG, domain.IndexMETSIR, domain.IndexAIP,
			domain.IndexHSI, domain.IndexFIB4, domain.IndexEGDR,
		},
	}
}

// rising builds a higher-is-worse table from three bounded bands plus the
// open-ended severe band. Band i carries ordinal i.
func rising(code domain.IndexCode, labels [4]string, uppers [3]float64) *domain.CutoffTable {
	return buildTable(code, domain.HigherIsWorse, labels, uppers, func(i int) int { return i })
}

// falling builds the mirrored lower-is-worse table: severities descend as
// the value rises, band i carrying ordinal 3-i.
func falling(code domain.IndexCode, labels [4]string, uppers [3]float64) *domain.CutoffTable {
	return buildTable(code, domain.LowerIsWorse, labels, uppers, func(i int) int { return len(labels) - 1 - i })
}

// buildTable assembles a four-band ladder from labels, bounded uppers, and a
// band-index-to-ordinal mapping. An out-of-range ordinal degrades the band
// to NA, which registry validation rejects at startup.
func buildTable(code domain.IndexCode, dir domain.Direction, labels [4]string, uppers [3]float64, ordinal func(int) int) *domain.CutoffTable {
	bands := make([]domain.CutoffBand, 0, len(labels))
	for i, label := range labels {
		upper := math.Inf(1)
		if i < len(uppers) {
			upper = uppers[i]
		}
		sev, err := domain.SeverityFromOrdinal(ordinal(i))
		if err != nil {
			sev = domain.SeverityNA
		}
		bands = append(bands, domain.CutoffBand{Upper: upper, Label: label, Severity: sev})
	}
	return &domain.CutoffTable{Index: code, Direction: dir, Bands: bands}
}

// defaultCutoffTables returns the built-in severity bands for all indices.
// Band labels are the clinical wording printed on the report; the ordinal
// carried next to each label is what aggregation consumes.
func defaultCutoffTables() []*domain.CutoffTable {
	return []*domain.CutoffTable{
		rising(domain.IndexNLR,
			[4]string{"Normal", "Mild", "Moderate", "Severe"},
			[3]float64{2.0, 3.0, 5.0}),
		rising(domain.IndexPLR,
			[4]string{"Normal", "Mild", "Moderate", "Severe"},
			[3]float64{150, 200, 300}),
		rising(domain.IndexSII,
			[4]string{"Normal", "Mild", "Moderate", "Severe"},
			[3]float64{500, 800, 1200}),
		rising(domain.IndexSIRI,
			[4]string{"Normal", "Mild", "Moderate", "Severe"},
			[3]float64{1.0, 1.8, 3.0}),
		rising(domain.IndexAISI,
			[4]string{"Normal", "Mild", "Moderate", "Severe"},
			[3]float64{300, 600, 1000}),

		rising(domain.IndexRDW,
			[4]string{"Normal", "Mildly high", "Moderately high", "Severely high"},
			[3]float64{14.5, 16.0, 18.0}),
		rising(domain.IndexRPR,
			[4]string{"Normal", "Mildly high", "Moderately high", "Severely high"},
			[3]float64{0.06, 0.08, 0.12}),
		rising(domain.IndexRAR,
			[4]string{"Normal", "Mildly high", "Moderately high", "Severely high"},
			[3]float64{3.4, 4.0, 5.0}),
		falling(domain.IndexHbRDW,
			[4]string{"Severely low", "Moderately low", "Mildly low", "Normal"},
			[3]float64{0.70, 0.90, 1.00}),
		rising(domain.IndexMCVHb,
			[4]string{"Normal", "Mildly high", "Moderately high", "Severely high"},
			[3]float64{6.5, 7.5, 8.5}),
		falling(domain.IndexHPR,
			[4]string{"Severely low", "Moderately low", "Mildly low", "Normal"},
			[3]float64{0.030, 0.040, 0.050}),

		rising(domain.IndexMHR,
			[4]string{"Normal", "Mildly high", "Moderately high", "Severely high"},
			[3]float64{0.010, 0.014, 0.020}),
		rising(domain.IndexNHR,
			[4]string{"Normal", "Mildly high", "Moderately high", "Severely high"},
			[3]float64{0.10, 0.15, 0.22}),

		rising(domain.IndexTyG,
			[4]string{"Normal", "Borderline high", "Moderate high", "High"},
			[3]float64{8.5, 9.0, 9.5}),
		rising(domain.IndexMETSIR,
			[4]string{"Normal", "Borderline high", "Moderate high", "High"},
			[3]float64{40, 45, 55}),
		rising(domain.IndexAIP,
			[4]string{"Normal", "Borderline", "Moderate high", "High"},
			[3]float64{0.11, 0.21, 0.40}),
		rising(domain.IndexHSI,
			[4]string{"Normal", "Borderline", "Moderate", "Severe"},
			[3]float64{30, 36, 42}),
		rising(domain.IndexFIB4,
			[4]string{"Normal", "Mild", "Indeterminate", "High"},
			[3]float64{1.45, 2.0, 3.25}),
		falling(domain.IndexEGDR,
			[4]string{"Very low", "Moderate low", "Mildly low", "Normal"},
			[3]float64{4.0, 6.0, 8.0}),
	}
}

package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metabo-score-server/internal/domain"
)

// fullMeasurement carries every input the calculator can consume.
func fullMeasurement() *domain.PatientMeasurement {
	return &domain.PatientMeasurement{
		Age:          ptr(52.0),
		Sex:          domain.SexFemale,
		Diabetes:     true,
		Hypertension: true,

		WBC:           ptr(10.0),
		NeutrophilPct: ptr(50.0),
		LymphocytePct: ptr(20.0),
		MonocytePct:   ptr(5.0),
		Platelets:     ptr(250.0),

		Hemoglobin: ptr(14.0),
		MCV:        ptr(90.0),
		RDW:        ptr(13.0),
		Albumin:    ptr(4.2),

		FastingGlucose: ptr(110.0),
		Triglycerides:  ptr(180.0),
		HDL:            ptr(50.0),

		AST:   ptr(20.0),
		ALT:   ptr(40.0),
		HbA1c: ptr(8.0),

		Weight: ptr(80.0),
		Height: ptr(160.0),
		Waist:  ptr(100.0),
		Hip:    ptr(105.0),
	}
}

func TestCalculatorFormulas(t *testing.T) {
	c := NewCalculatorService()
	m := fullMeasurement()

	// ANC=5, ALC=2, AMC=0.5 from WBC=10 and the differential percentages.
	tests := []struct {
		code domain.IndexCode
		want float64
	}{
		{domain.IndexNLR, 2.5},
		{domain.IndexPLR, 125},
		{domain.IndexSII, 625},
		{domain.IndexSIRI, 1.25},
		{domain.IndexAISI, 312.5},
		{domain.IndexRDW, 13.0},
		{domain.IndexRPR, 0.052},
		{domain.IndexRAR, 13.0 / 4.2},
		{domain.IndexHbRDW, 14.0 / 13.0},
		{domain.IndexMCVHb, 90.0 / 14.0},
		{domain.IndexHPR, 0.056},
		{domain.IndexMHR, 0.01},
		{domain.IndexNHR, 0.1},
		{domain.IndexTyG, math.Log(180 * 110 / 2.0)},
		{domain.IndexAIP, math.Log10((180 / 88.57) / (50 / 38.67))},
		// HSI = 8*(40/20) + 31.25 + 2 (female) + 2 (diabetic)
		{domain.IndexHSI, 51.25},
		{domain.IndexFIB4, 52.0 * 20 / (250 * math.Sqrt(40))},
		// eGDR = 21.16 - 0.09*100 - 3.41*1 - 0.55*8
		{domain.IndexEGDR, 4.35},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			got := c.Compute(tt.code, m)
			require.NotNil(t, got, "index %s should be computable", tt.code)
			assert.InDelta(t, tt.want, *got, 1e-9)
		})
	}
}

func TestCalculatorMETSIR(t *testing.T) {
	c := NewCalculatorService()
	m := fullMeasurement()

	got := c.Compute(domain.IndexMETSIR, m)
	require.NotNil(t, got)
	want := math.Log(2*110+180.0) * 31.25 / math.Log(50)
	assert.InDelta(t, want, *got, 1e-9)
}

func TestCalculatorWorkedExamples(t *testing.T) {
	c := NewCalculatorService()
	m := fullMeasurement()

	tyg := c.Compute(domain.IndexTyG, m)
	require.NotNil(t, tyg)
	assert.InDelta(t, 9.2003, *tyg, 1e-3)

	egdr := c.Compute(domain.IndexEGDR, m)
	require.NotNil(t, egdr)
	assert.InDelta(t, 4.35, *egdr, 1e-9)
}

func TestCalculatorAbsencePropagation(t *testing.T) {
	c := NewCalculatorService()

	tests := []struct {
		name   string
		mutate func(*domain.PatientMeasurement)
		absent []domain.IndexCode
	}{
		{
			name:   "Missing WBC drops every differential-derived index",
			mutate: func(m *domain.PatientMeasurement) { m.WBC = nil },
			absent: []domain.IndexCode{
				domain.IndexNLR, domain.IndexPLR, domain.IndexSII, domain.IndexSIRI,
				domain.IndexAISI, domain.IndexMHR, domain.IndexNHR,
			},
		},
		{
			name:   "Missing HDL drops endothelial and lipid indices",
			mutate: func(m *domain.PatientMeasurement) { m.HDL = nil },
			absent: []domain.IndexCode{domain.IndexMHR, domain.IndexNHR, domain.IndexMETSIR, domain.IndexAIP},
		},
		{
			name:   "Missing height drops BMI-dependent indices",
			mutate: func(m *domain.PatientMeasurement) { m.Height = nil },
			absent: []domain.IndexCode{domain.IndexMETSIR, domain.IndexHSI},
		},
		{
			name:   "Missing HbA1c drops eGDR",
			mutate: func(m *domain.PatientMeasurement) { m.HbA1c = nil },
			absent: []domain.IndexCode{domain.IndexEGDR},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := fullMeasurement()
			tt.mutate(m)
			values := c.ComputeAll(m)
			for _, code := range tt.absent {
				assert.Nil(t, values[code], "index %s should be absent", code)
			}
		})
	}
}

func TestCalculatorDivisionGuards(t *testing.T) {
	c := NewCalculatorService()

	// Zero lymphocytes: every ALC-denominator index must be absent, not Inf.
	m := fullMeasurement()
	m.LymphocytePct = ptr(0.0)
	for _, code := range []domain.IndexCode{domain.IndexNLR, domain.IndexPLR, domain.IndexSII, domain.IndexSIRI, domain.IndexAISI} {
		assert.Nil(t, c.Compute(code, m), "index %s must guard zero denominator", code)
	}

	// Negative platelets: ratio guard.
	m = fullMeasurement()
	m.Platelets = ptr(-1.0)
	assert.Nil(t, c.Compute(domain.IndexRPR, m))
	assert.Nil(t, c.Compute(domain.IndexFIB4, m))
}

func TestCalculatorLogGuards(t *testing.T) {
	c := NewCalculatorService()

	m := fullMeasurement()
	m.Triglycerides = ptr(0.0)
	assert.Nil(t, c.Compute(domain.IndexTyG, m), "ln of non-positive argument must yield absent")
	assert.Nil(t, c.Compute(domain.IndexAIP, m))

	// HDL=1 makes ln(HDL)=0: METS-IR denominator guard.
	m = fullMeasurement()
	m.HDL = ptr(1.0)
	assert.Nil(t, c.Compute(domain.IndexMETSIR, m))
}

func TestCalculatorNeverYieldsNaNOrInf(t *testing.T) {
	c := NewCalculatorService()

	snapshots := []*domain.PatientMeasurement{
		{},
		fullMeasurement(),
		{WBC: ptr(0.0), NeutrophilPct: ptr(0.0), LymphocytePct: ptr(0.0)},
		{Triglycerides: ptr(-5.0), HDL: ptr(-5.0), FastingGlucose: ptr(-5.0)},
	}

	for _, m := range snapshots {
		for code, v := range c.ComputeAll(m) {
			if v == nil {
				continue
			}
			assert.False(t, math.IsNaN(*v) || math.IsInf(*v, 0), "index %s produced non-finite value", code)
		}
	}
}

func TestCalculatorUnknownIndex(t *testing.T) {
	c := NewCalculatorService()
	assert.Nil(t, c.Compute("XYZ", fullMeasurement()))
}

package service

import (
	"math"

	"github.com/metabo-score-server/internal/domain"
)

// Conversion constants for the Atherogenic Index of Plasma, mg/dL to
// mmol/L. The AIP is computed from mmol-converted concentrations; the
// raw mg/dL ratio variant seen in older revisions is not used.
const (
	tgMgPerMmol  = 88.57
	hdlMgPerMmol = 38.67
)

// eGDR regression constants (waist-circumference model):
// eGDR = 21.16 - 0.09*Waist - 3.41*Hypertension - 0.55*HbA1c.
const (
	egdrIntercept = 21.16
	egdrWaistCoef = 0.09
	egdrHTNCoef   = 3.41
	egdrHbA1cCoef = 0.55
)

// CalculatorService derives every biomarker index from a measurement
// snapshot. Each index is a pure function of a minimal input subset; an
// absent required input or a non-positive denominator/log argument makes
// the index absent. No formula ever yields NaN or Inf.
type CalculatorService struct{}

// NewCalculatorService creates a new derived quantity calculator
func NewCalculatorService() *CalculatorService {
	return &CalculatorService{}
}

// indexFormula computes one index value from a measurement, nil if absent.
type indexFormula func(m *domain.PatientMeasurement) *float64

// ComputeAll evaluates every index in catalog order.
func (c *CalculatorService) ComputeAll(m *domain.PatientMeasurement) map[domain.IndexCode]*float64 {
	out := make(map[domain.IndexCode]*float64, len(indexFormulas))
	for code, formula := range indexFormulas {
		out[code] = formula(m)
	}
	return out
}

// Compute evaluates a single index, nil when the index is unknown or any
// required input is absent.
func (c *CalculatorService) Compute(code domain.IndexCode, m *domain.PatientMeasurement) *float64 {
	formula, ok := indexFormulas[code]
	if !ok {
		return nil
	}
	return formula(m)
}

var indexFormulas = map[domain.IndexCode]indexFormula{
	domain.IndexNLR:    nlr,
	domain.IndexPLR:    plr,
	domain.IndexSII:    sii,
	domain.IndexSIRI:   siri,
	domain.IndexAISI:   aisi,
	domain.IndexRDW:    rdwRaw,
	domain.IndexRPR:    rpr,
	domain.IndexRAR:    rar,
	domain.IndexHbRDW:  hbRDW,
	domain.IndexMCVHb:  mcvHb,
	domain.IndexHPR:    hpr,
	domain.IndexMHR:    mhr,
	domain.IndexNHR:    nhr,
	domain.IndexTyG:    tyg,
	domain.IndexMETSIR: metsIR,
	domain.IndexAIP:    aip,
	domain.IndexHSI:    hsi,
	domain.IndexFIB4:   fib4,
	domain.IndexEGDR:   egdr,
}

// Absolute differential counts in 10^3/uL, computed only when WBC is
// present.

func anc(m *domain.PatientMeasurement) *float64 {
	return scale(m.WBC, m.NeutrophilPct)
}

func alc(m *domain.PatientMeasurement) *float64 {
	return scale(m.WBC, m.LymphocytePct)
}

func amc(m *domain.PatientMeasurement) *float64 {
	return scale(m.WBC, m.MonocytePct)
}

// scale computes count*pct/100 when both inputs are present.
func scale(count, pct *float64) *float64 {
	if count == nil || pct == nil {
		return nil
	}
	return val(*count * *pct / 100)
}

// Inflammation indices.

func nlr(m *domain.PatientMeasurement) *float64 {
	return ratio(anc(m), alc(m))
}

func plr(m *domain.PatientMeasurement) *float64 {
	return ratio(m.Platelets, alc(m))
}

func sii(m *domain.PatientMeasurement) *float64 {
	return ratio(product(m.Platelets, anc(m)), alc(m))
}

func siri(m *domain.PatientMeasurement) *float64 {
	return ratio(product(anc(m), amc(m)), alc(m))
}

// aisi uses the four-factor definition ANC*AMC*PLT/ALC.
func aisi(m *domain.PatientMeasurement) *float64 {
	return ratio(product(product(anc(m), amc(m)), m.Platelets), alc(m))
}

// Oxidative / RBC indices.

func rdwRaw(m *domain.PatientMeasurement) *float64 {
	if m.RDW == nil {
		return nil
	}
	return val(*m.RDW)
}

func rpr(m *domain.PatientMeasurement) *float64 {
	return ratio(m.RDW, m.Platelets)
}

func rar(m *domain.PatientMeasurement) *float64 {
	return ratio(m.RDW, m.Albumin)
}

func hbRDW(m *domain.PatientMeasurement) *float64 {
	return ratio(m.Hemoglobin, m.RDW)
}

func mcvHb(m *domain.PatientMeasurement) *float64 {
	return ratio(m.MCV, m.Hemoglobin)
}

func hpr(m *domain.PatientMeasurement) *float64 {
	return ratio(m.Hemoglobin, m.Platelets)
}

// Endothelial indices: absolute counts over HDL-C in mg/dL.

func mhr(m *domain.PatientMeasurement) *float64 {
	return ratio(amc(m), m.HDL)
}

func nhr(m *domain.PatientMeasurement) *float64 {
	return ratio(anc(m), m.HDL)
}

// Metabolic / liver / glycemic indices.

func tyg(m *domain.PatientMeasurement) *float64 {
	if m.Triglycerides == nil || m.FastingGlucose == nil {
		return nil
	}
	return ln(*m.Triglycerides * *m.FastingGlucose / 2)
}

func metsIR(m *domain.PatientMeasurement) *float64 {
	bmi := m.BMI()
	if m.FastingGlucose == nil || m.Triglycerides == nil || m.HDL == nil || bmi == nil {
		return nil
	}
	num := ln(2 * *m.FastingGlucose + *m.Triglycerides)
	den := ln(*m.HDL)
	if num == nil || den == nil || *den == 0 {
		return nil
	}
	return val(*num * *bmi / *den)
}

func aip(m *domain.PatientMeasurement) *float64 {
	if m.Triglycerides == nil || m.HDL == nil {
		return nil
	}
	tgMmol := *m.Triglycerides / tgMgPerMmol
	hdlMmol := *m.HDL / hdlMgPerMmol
	if hdlMmol <= 0 || tgMmol <= 0 {
		return nil
	}
	return val(math.Log10(tgMmol / hdlMmol))
}

func hsi(m *domain.PatientMeasurement) *float64 {
	bmi := m.BMI()
	if m.ALT == nil || m.AST == nil || *m.AST <= 0 || bmi == nil {
		return nil
	}
	v := 8 * *m.ALT / *m.AST + *bmi
	if m.IsFemale() {
		v += 2
	}
	if m.Diabetes {
		v += 2
	}
	return val(v)
}

func fib4(m *domain.PatientMeasurement) *float64 {
	if m.Age == nil || m.AST == nil || m.Platelets == nil || m.ALT == nil {
		return nil
	}
	if *m.Platelets <= 0 || *m.ALT <= 0 {
		return nil
	}
	return val(*m.Age * *m.AST / (*m.Platelets * math.Sqrt(*m.ALT)))
}

func egdr(m *domain.PatientMeasurement) *float64 {
	if m.Waist == nil || m.HbA1c == nil {
		return nil
	}
	htn := 0.0
	if m.Hypertension {
		htn = 1
	}
	return val(egdrIntercept - egdrWaistCoef * *m.Waist - egdrHTNCoef*htn - egdrHbA1cCoef * *m.HbA1c)
}

// ratio divides with a guard: absent operands or a non-positive
// denominator yield absent.
func ratio(num, den *float64) *float64 {
	if num == nil || den == nil || *den <= 0 {
		return nil
	}
	return val(*num / *den)
}

// product multiplies two optional values.
func product(a, b *float64) *float64 {
	if a == nil || b == nil {
		return nil
	}
	return val(*a * *b)
}

// ln guards the logarithm against non-positive arguments.
func ln(x float64) *float64 {
	if x <= 0 {
		return nil
	}
	return val(math.Log(x))
}

// val boxes a finite float; any NaN/Inf that slipped past a guard is
// forced to absent rather than propagated.
func val(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

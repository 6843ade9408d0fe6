// Package service implements the metabolic scoring pipeline: input
// normalization, derived index calculation, severity classification,
// domain aggregation, and overall risk synthesis.
package service

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/metabo-score-server/internal/domain"
)

// NormalizerService coerces raw intake fields into a PatientMeasurement.
// It is a total function over arbitrary scalar input: any field that fails
// numeric coercion becomes absent, boolean flags default to false, and the
// sex enumeration falls back to the non-female branch. It never fails.
type NormalizerService struct {
	logger *logrus.Logger
}

// NewNormalizerService creates a new input normalizer
func NewNormalizerService(logger *logrus.Logger) *NormalizerService {
	return &NormalizerService{logger: logger}
}

// Normalize builds a measurement snapshot from a raw field map.
func (n *NormalizerService) Normalize(raw map[string]any) *domain.PatientMeasurement {
	m := &domain.PatientMeasurement{
		Name:         coerceString(raw[domain.FieldName]),
		Date:         coerceString(raw[domain.FieldDate]),
		Sex:          coerceSex(raw[domain.FieldSex]),
		Diabetes:     coerceBool(raw[domain.FieldDiabetes]),
		Hypertension: coerceBool(raw[domain.FieldHypertension]),

		Age:           coerceFloat(raw[domain.FieldAge]),
		WBC:           coerceFloat(raw[domain.FieldWBC]),
		NeutrophilPct: coerceFloat(raw[domain.FieldNeutrophilPct]),
		LymphocytePct: coerceFloat(raw[domain.FieldLymphocytePct]),
		MonocytePct:   coerceFloat(raw[domain.FieldMonocytePct]),
		Platelets:     coerceFloat(raw[domain.FieldPlatelets]),

		Hemoglobin: coerceFloat(raw[domain.FieldHemoglobin]),
		MCV:        coerceFloat(raw[domain.FieldMCV]),
		RDW:        coerceFloat(raw[domain.FieldRDW]),
		Albumin:    coerceFloat(raw[domain.FieldAlbumin]),

		FastingGlucose:   coerceFloat(raw[domain.FieldGlucose]),
		Triglycerides:    coerceFloat(raw[domain.FieldTriglycerides]),
		HDL:              coerceFloat(raw[domain.FieldHDL]),
		TotalCholesterol: coerceFloat(raw[domain.FieldTotalChol]),

		AST:   coerceFloat(raw[domain.FieldAST]),
		ALT:   coerceFloat(raw[domain.FieldALT]),
		HbA1c: coerceFloat(raw[domain.FieldHbA1c]),

		Weight: coerceFloat(raw[domain.FieldWeight]),
		Height: coerceFloat(raw[domain.FieldHeight]),
		Waist:  coerceFloat(raw[domain.FieldWaist]),
		Hip:    coerceFloat(raw[domain.FieldHip]),
	}

	n.logger.WithFields(logrus.Fields{
		"patient_name": m.Name,
		"sex":          m.Sex.String(),
		"diabetes":     m.Diabetes,
		"hypertension": m.Hypertension,
	}).Debug("Normalized patient measurement snapshot")

	return m
}

// coerceFloat attempts numeric conversion of an arbitrary scalar. Anything
// non-numeric, non-finite, or missing yields nil, never an error.
func coerceFloat(v any) *float64 {
	var f float64
	switch t := v.(type) {
	case nil:
		return nil
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint32:
		f = float64(t)
	case uint64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// coerceBool defaults to false for anything but an affirmative value.
func coerceBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "y", "1":
			return true
		}
		return false
	case float64:
		return t == 1
	case int:
		return t == 1
	default:
		return false
	}
}

// coerceSex resolves the closed two-valued enumeration; unrecognized
// values take the non-female branch.
func coerceSex(v any) domain.Sex {
	s, ok := v.(string)
	if !ok {
		return domain.SexMale
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "f", "female":
		return domain.SexFemale
	default:
		return domain.SexMale
	}
}

func coerceString(v any) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

package service

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metabo-score-server/internal/domain"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestNormalizerNumericCoercion(t *testing.T) {
	n := NewNormalizerService(testLogger())

	tests := []struct {
		name   string
		raw    any
		want   *float64
		absent bool
	}{
		{"Float", 7.5, ptr(7.5), false},
		{"Int", 7, ptr(7.0), false},
		{"Int64", int64(7), ptr(7.0), false},
		{"Uint32", uint32(7), ptr(7.0), false},
		{"Uint64", uint64(7), ptr(7.0), false},
		{"Numeric string", "7.5", ptr(7.5), false},
		{"Padded numeric string", "  7.5 ", ptr(7.5), false},
		{"JSON number", json.Number("7.5"), ptr(7.5), false},
		{"Garbage string", "seven", nil, true},
		{"Empty string", "", nil, true},
		{"Nil", nil, nil, true},
		{"Bool is not numeric", true, nil, true},
		{"NaN", math.NaN(), nil, true},
		{"Inf", math.Inf(1), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := n.Normalize(map[string]any{domain.FieldWBC: tt.raw})
			if tt.absent {
				assert.Nil(t, m.WBC)
			} else {
				require.NotNil(t, m.WBC)
				assert.Equal(t, *tt.want, *m.WBC)
			}
		})
	}
}

func TestNormalizerBooleanCoercion(t *testing.T) {
	n := NewNormalizerService(testLogger())

	tests := []struct {
		name string
		raw  any
		want bool
	}{
		{"Bool true", true, true},
		{"Bool false", false, false},
		{"Yes string", "yes", true},
		{"True string", "TRUE", true},
		{"One string", "1", true},
		{"No string", "no", false},
		{"Garbage", "maybe", false},
		{"Numeric one", 1, true},
		{"Numeric zero", 0, false},
		{"Missing", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := n.Normalize(map[string]any{domain.FieldDiabetes: tt.raw})
			assert.Equal(t, tt.want, m.Diabetes)
		})
	}
}

func TestNormalizerSexCoercion(t *testing.T) {
	n := NewNormalizerService(testLogger())

	tests := []struct {
		name string
		raw  any
		want domain.Sex
	}{
		{"F", "F", domain.SexFemale},
		{"female lower", "female", domain.SexFemale},
		{"M", "M", domain.SexMale},
		{"male", "male", domain.SexMale},
		{"Unrecognized defaults to non-female", "other", domain.SexMale},
		{"Missing defaults to non-female", nil, domain.SexMale},
		{"Non-string defaults to non-female", 1, domain.SexMale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := n.Normalize(map[string]any{domain.FieldSex: tt.raw})
			assert.Equal(t, tt.want, m.Sex)
		})
	}
}

func TestNormalizerNeverFails(t *testing.T) {
	n := NewNormalizerService(testLogger())

	// Every field garbage, missing, or wrong-typed: still a full snapshot.
	m := n.Normalize(map[string]any{
		domain.FieldWBC:      "not-a-number",
		domain.FieldAge:      []string{"boom"},
		domain.FieldSex:      42,
		domain.FieldDiabetes: "perhaps",
		"unknown_field":      struct{}{},
	})

	require.NotNil(t, m)
	assert.Nil(t, m.WBC)
	assert.Nil(t, m.Age)
	assert.Equal(t, domain.SexMale, m.Sex)
	assert.False(t, m.Diabetes)
}

func TestMeasurementBMI(t *testing.T) {
	m := &domain.PatientMeasurement{Weight: ptr(80.0), Height: ptr(160.0)}
	bmi := m.BMI()
	require.NotNil(t, bmi)
	assert.InDelta(t, 31.25, *bmi, 1e-9)

	assert.Nil(t, (&domain.PatientMeasurement{Weight: ptr(80.0)}).BMI())
	assert.Nil(t, (&domain.PatientMeasurement{Weight: ptr(80.0), Height: ptr(0.0)}).BMI())
}

func ptr(f float64) *float64 {
	return &f
}

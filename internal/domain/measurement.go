package domain

// Raw input field names accepted by the normalizer. These mirror the intake
// form of the reporting front-end; every field is optional.
const (
	FieldName          = "name"
	FieldDate          = "date"
	FieldAge           = "age"
	FieldSex           = "sex"
	FieldDiabetes      = "diabetes"
	FieldHypertension  = "hypertension"
	FieldWBC           = "wbc"
	FieldNeutrophilPct = "neutrophil_pct"
	FieldLymphocytePct = "lymphocyte_pct"
	FieldMonocytePct   = "monocyte_pct"
	FieldPlatelets     = "platelets"
	FieldHemoglobin    = "hemoglobin"
	FieldMCV           = "mcv"
	FieldRDW           = "rdw"
	FieldAlbumin       = "albumin"
	FieldGlucose       = "fasting_glucose"
	FieldTriglycerides = "triglycerides"
	FieldHDL           = "hdl"
	FieldTotalChol     = "total_cholesterol"
	FieldAST           = "ast"
	FieldALT           = "alt"
	FieldHbA1c         = "hba1c"
	FieldWeight        = "weight"
	FieldHeight        = "height"
	FieldWaist         = "waist"
	FieldHip           = "hip"
)

// PatientMeasurement is an immutable snapshot of one patient's laboratory
// measurements and anthropometrics. Numeric fields are pointers: nil means
// the field was missing or unparseable at the intake boundary. A snapshot
// is created once per report request and discarded with the report.
type PatientMeasurement struct {
	// Identity fields, passed through to the report verbatim.
	Name string `json:"name"`
	Date string `json:"date"`

	Age          *float64 `json:"age,omitempty"`
	Sex          Sex      `json:"sex"`
	Diabetes     bool     `json:"diabetes"`
	Hypertension bool     `json:"hypertension"`

	// CBC differential. WBC and absolute counts in 10^3/uL, percentages 0-100.
	WBC           *float64 `json:"wbc,omitempty"`
	NeutrophilPct *float64 `json:"neutrophil_pct,omitempty"`
	LymphocytePct *float64 `json:"lymphocyte_pct,omitempty"`
	MonocytePct   *float64 `json:"monocyte_pct,omitempty"`
	Platelets     *float64 `json:"platelets,omitempty"`

	// RBC line and albumin. Hemoglobin g/dL, MCV fL, RDW %, albumin g/dL.
	Hemoglobin *float64 `json:"hemoglobin,omitempty"`
	MCV        *float64 `json:"mcv,omitempty"`
	RDW        *float64 `json:"rdw,omitempty"`
	Albumin    *float64 `json:"albumin,omitempty"`

	// Lipid panel and glycemic markers, mg/dL except HbA1c (%).
	FastingGlucose   *float64 `json:"fasting_glucose,omitempty"`
	Triglycerides    *float64 `json:"triglycerides,omitempty"`
	HDL              *float64 `json:"hdl,omitempty"`
	TotalCholesterol *float64 `json:"total_cholesterol,omitempty"`

	// Liver enzymes, U/L.
	AST *float64 `json:"ast,omitempty"`
	ALT *float64 `json:"alt,omitempty"`

	HbA1c *float64 `json:"hba1c,omitempty"`

	// Anthropometrics: weight kg, height/waist/hip cm.
	Weight *float64 `json:"weight,omitempty"`
	Height *float64 `json:"height,omitempty"`
	Waist  *float64 `json:"waist,omitempty"`
	Hip    *float64 `json:"hip,omitempty"`
}

// BMI derives body mass index (kg/m^2) from weight and height. Returns nil
// when either input is absent or height is non-positive.
func (m *PatientMeasurement) BMI() *float64 {
	if m.Weight == nil || m.Height == nil || *m.Height <= 0 {
		return nil
	}
	h := *m.Height / 100
	bmi := *m.Weight / (h * h)
	return &bmi
}

// IsFemale reports whether sex-adjusted formulas should take the female
// branch. The enumeration is closed; anything but F is the other branch.
func (m *PatientMeasurement) IsFemale() bool {
	return m.Sex == SexFemale
}

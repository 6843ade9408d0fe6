package domain

// IndexCode identifies one derived biomarker index.
type IndexCode string

const (
	IndexNLR    IndexCode = "NLR"
	IndexPLR    IndexCode = "PLR"
	IndexSII    IndexCode = "SII"
	IndexSIRI   IndexCode = "SIRI"
	IndexAISI   IndexCode = "AISI"
	IndexRDW    IndexCode = "RDW"
	IndexRPR    IndexCode = "RPR"
	IndexRAR    IndexCode = "RAR"
	IndexHbRDW  IndexCode = "Hb/RDW"
	IndexMCVHb  IndexCode = "MCV/Hb"
	IndexHPR    IndexCode = "HPR"
	IndexMHR    IndexCode = "MHR"
	IndexNHR    IndexCode = "NHR"
	IndexTyG    IndexCode = "TyG"
	IndexMETSIR IndexCode = "METS-IR"
	IndexAIP    IndexCode = "AIP"
	IndexHSI    IndexCode = "HSI"
	IndexFIB4   IndexCode = "FIB-4"
	IndexEGDR   IndexCode = "eGDR"
)

// AllIndices lists every index in report order, grouped by domain.
func AllIndices() []IndexCode {
	return []IndexCode{
		IndexNLR, IndexPLR, IndexSII, IndexSIRI, IndexAISI,
		IndexRDW, IndexRPR, IndexRAR, IndexHbRDW, IndexMCVHb, IndexHPR,
		IndexMHR, IndexNHR,
		IndexTyG, IndexMETSIR, IndexAIP, IndexHSI, IndexFIB4, IndexEGDR,
	}
}

// IsValid reports whether the index code is part of the fixed catalog.
func (c IndexCode) IsValid() bool {
	_, ok := indexFullForms[c]
	return ok
}

// String returns the short display name of the index.
func (c IndexCode) String() string {
	return string(c)
}

// FullForm returns the expanded name printed in the report's "Full Forms"
// section, or the short code itself when unknown.
func (c IndexCode) FullForm() string {
	if ff, ok := indexFullForms[c]; ok {
		return ff
	}
	return string(c)
}

var indexFullForms = map[IndexCode]string{
	IndexNLR:    "Neutrophil-to-Lymphocyte Ratio",
	IndexPLR:    "Platelet-to-Lymphocyte Ratio",
	IndexSII:    "Systemic Immune-Inflammation Index",
	IndexSIRI:   "Systemic Inflammation Response Index",
	IndexAISI:   "Aggregate Index of Systemic Inflammation",
	IndexRDW:    "Red Cell Distribution Width",
	IndexRPR:    "RDW-to-Platelet Ratio",
	IndexRAR:    "RDW-to-Albumin Ratio",
	IndexHbRDW:  "Hemoglobin-to-RDW Ratio",
	IndexMCVHb:  "Mean Corpuscular Volume-to-Hemoglobin Ratio",
	IndexHPR:    "Hemoglobin-to-Platelet Ratio",
	IndexMHR:    "Monocyte-to-HDL Ratio",
	IndexNHR:    "Neutrophil-to-HDL Ratio",
	IndexTyG:    "Triglyceride-Glucose Index",
	IndexMETSIR: "Metabolic Score for Insulin Resistance",
	IndexAIP:    "Atherogenic Index of Plasma",
	IndexHSI:    "Hepatic Steatosis Index",
	IndexFIB4:   "Fibrosis-4 Index",
	IndexEGDR:   "Estimated Glucose Disposal Rate",
}

// Formula returns the canonical formula of the index in display form.
func (c IndexCode) Formula() string {
	return indexFormulaText[c]
}

var indexFormulaText = map[IndexCode]string{
	IndexNLR:    "ANC / ALC",
	IndexPLR:    "Platelets / ALC",
	IndexSII:    "Platelets x ANC / ALC",
	IndexSIRI:   "ANC x AMC / ALC",
	IndexAISI:   "ANC x AMC x Platelets / ALC",
	IndexRDW:    "RDW (raw %)",
	IndexRPR:    "RDW / Platelets",
	IndexRAR:    "RDW / Albumin",
	IndexHbRDW:  "Hemoglobin / RDW",
	IndexMCVHb:  "MCV / Hemoglobin",
	IndexHPR:    "Hemoglobin / Platelets",
	IndexMHR:    "AMC / HDL-C",
	IndexNHR:    "ANC / HDL-C",
	IndexTyG:    "ln(TG x FastingGlucose / 2)",
	IndexMETSIR: "ln(2 x FastingGlucose + TG) x BMI / ln(HDL-C)",
	IndexAIP:    "log10(TG[mmol/L] / HDL-C[mmol/L])",
	IndexHSI:    "8 x ALT/AST + BMI + 2(female) + 2(diabetic)",
	IndexFIB4:   "Age x AST / (Platelets x sqrt(ALT))",
	IndexEGDR:   "21.16 - 0.09 x Waist - 3.41 x HTN - 0.55 x HbA1c",
}

// DerivedIndex is one computed biomarker index inside a report. Value is
// nil when any required input was absent or a formula guard tripped; such
// indices classify as NA and never enter a domain denominator.
type DerivedIndex struct {
	Code     IndexCode `json:"code"`
	Value    *float64  `json:"value,omitempty"`
	Severity Severity  `json:"severity"`
	Label    string    `json:"label"`
}

// Present reports whether the index value was computable.
func (d DerivedIndex) Present() bool {
	return d.Value != nil
}

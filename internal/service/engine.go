package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/metabo-score-server/internal/domain"
)

// EngineVersion identifies the scoring pipeline revision stamped on every
// report.
const EngineVersion = "1.0.0"

// ScoringEngine runs the complete pipeline: normalize raw intake fields,
// derive the biomarker indices, classify each into a severity band,
// aggregate severities into the four physiological domains, and synthesize
// the overall risk category.
//
// The engine holds no mutable state across invocations; every stage is a
// pure function of its input, so a host may call Score concurrently
// without synchronization. Patient data never produces an error: every
// unattainable index or domain renders as NA inside a best-effort report.
type ScoringEngine struct {
	logger     *logrus.Logger
	normalizer *NormalizerService
	calculator *CalculatorService
	classifier *ClassifierService
	aggregator *AggregatorService
}

// NewScoringEngine wires the pipeline stages over a validated cutoff
// registry and banding configuration. Configuration faults surface here,
// once, at startup.
func NewScoringEngine(logger *logrus.Logger, registry *CutoffRegistry, bands ScoringBands) (*ScoringEngine, error) {
	if err := bands.Validate(); err != nil {
		return nil, fmt.Errorf("scoring engine: %w", err)
	}

	return &ScoringEngine{
		logger:     logger,
		normalizer: NewNormalizerService(logger),
		calculator: NewCalculatorService(),
		classifier: NewClassifierService(logger, registry),
		aggregator: NewAggregatorService(logger, registry, bands),
	}, nil
}

// NewDefaultScoringEngine builds an engine with the built-in cutoff tables
// and canonical banding.
func NewDefaultScoringEngine(logger *logrus.Logger) (*ScoringEngine, error) {
	registry, err := NewDefaultCutoffRegistry()
	if err != nil {
		return nil, fmt.Errorf("scoring engine: %w", err)
	}
	return NewScoringEngine(logger, registry, DefaultScoringBands())
}

// Score computes a complete report from raw intake fields.
func (e *ScoringEngine) Score(raw map[string]any) *domain.Report {
	return e.ScoreMeasurement(e.normalizer.Normalize(raw))
}

// ScoreMeasurement computes a complete report from an already-normalized
// measurement snapshot.
func (e *ScoringEngine) ScoreMeasurement(m *domain.PatientMeasurement) *domain.Report {
	start := time.Now()

	values := e.calculator.ComputeAll(m)
	indices := e.classifier.ClassifyAll(values)
	domains := e.aggregator.Aggregate(indices)
	total, risk := e.aggregator.Synthesize(domains)

	report := &domain.Report{
		ID:            uuid.New().String(),
		PatientName:   m.Name,
		Date:          m.Date,
		Age:           m.Age,
		Sex:           m.Sex,
		Diabetes:      m.Diabetes,
		Indices:       indices,
		Domains:       domains,
		TotalScore:    total,
		RiskCategory:  risk,
		GeneratedAt:   time.Now().UTC(),
		EngineVersion: EngineVersion,
	}

	e.logger.WithFields(logrus.Fields{
		"report_id":       report.ID,
		"patient_name":    report.PatientName,
		"total_score":     report.TotalScore,
		"risk_category":   report.RiskCategory.String(),
		"present_indices": countPresent(indices),
		"processing_time": time.Since(start),
	}).Info("Completed metabolic health scoring")

	return report
}

// countPresent counts indices whose value was computable.
func countPresent(indices []domain.DerivedIndex) int {
	n := 0
	for _, idx := range indices {
		if idx.Present() {
			n++
		}
	}
	return n
}

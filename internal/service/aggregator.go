package service

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/metabo-score-server/internal/domain"
)

// ScoringBands holds the tunable banding thresholds: ascending domain
// score-to-label bounds over [0,25] and ascending total-to-risk bounds
// over [0,100]. Revision history disagreed on the exact values, so they
// live in configuration rather than as literals in the aggregator.
type ScoringBands struct {
	DomainMild     float64
	DomainModerate float64
	DomainSevere   float64
	RiskMild       float64
	RiskModerate   float64
	RiskHigh       float64
}

// DefaultScoringBands returns the canonical banding: domain 6/12/18,
// risk 20/40/70.
func DefaultScoringBands() ScoringBands {
	return ScoringBands{
		DomainMild:     6,
		DomainModerate: 12,
		DomainSevere:   18,
		RiskMild:       20,
		RiskModerate:   40,
		RiskHigh:       70,
	}
}

// Validate checks that both threshold triples ascend within range.
func (b ScoringBands) Validate() error {
	if !(0 < b.DomainMild && b.DomainMild < b.DomainModerate && b.DomainModerate < b.DomainSevere && b.DomainSevere < 25) {
		return domain.NewAPIError(domain.ErrConfiguration, "domain banding thresholds must ascend within (0,25)", "", "")
	}
	if !(0 < b.RiskMild && b.RiskMild < b.RiskModerate && b.RiskModerate < b.RiskHigh && b.RiskHigh < 100) {
		return domain.NewAPIError(domain.ErrConfiguration, "risk banding thresholds must ascend within (0,100)", "", "")
	}
	return nil
}

// Domain-wise narrative comments keyed by label, printed verbatim in the
// report's interpretation section.
var domainComments = map[string]string{
	"Normal":             "No significant derangement detected in this domain.",
	"Mild":               "Mild derangement; lifestyle correction and routine follow-up advised.",
	"Moderate":           "Moderate derangement; targeted metabolic intervention recommended.",
	"Severe":             "Severe derangement; prioritize clinical review of this domain.",
	domain.DomainLabelNA: "Insufficient data to evaluate this domain.",
}

// AggregatorService groups classified indices into the four fixed domains
// and scales mean severity to a 0-25 domain score.
type AggregatorService struct {
	logger   *logrus.Logger
	registry *CutoffRegistry
	bands    ScoringBands
}

// NewAggregatorService creates a new domain aggregator
func NewAggregatorService(logger *logrus.Logger, registry *CutoffRegistry, bands ScoringBands) *AggregatorService {
	return &AggregatorService{logger: logger, registry: registry, bands: bands}
}

// Aggregate produces the four domain results in report order.
func (a *AggregatorService) Aggregate(indices []domain.DerivedIndex) []domain.DomainResult {
	byCode := make(map[domain.IndexCode]domain.DerivedIndex, len(indices))
	for _, idx := range indices {
		byCode[idx.Code] = idx
	}

	results := make([]domain.DomainResult, 0, 4)
	for _, name := range domain.AllDomains() {
		members := a.registry.DomainMembers(name)
		sum, present := 0, 0
		for _, code := range members {
			idx, ok := byCode[code]
			if !ok || !idx.Severity.Present() {
				continue
			}
			sum += idx.Severity.Ordinal()
			present++
		}

		result := domain.DomainResult{
			Name:    name,
			Members: members,
			Present: present,
		}
		if present == 0 {
			result.Label = domain.DomainLabelNA
		} else {
			result.Score = round1(float64(sum) / float64(present*3) * 25)
			result.Label = a.domainLabel(result.Score)
		}
		result.Comment = domainComments[result.Label]
		results = append(results, result)

		a.logger.WithFields(logrus.Fields{
			"domain":  name.String(),
			"present": present,
			"score":   result.Score,
			"label":   result.Label,
		}).Debug("Aggregated domain score")
	}

	return results
}

// Synthesize sums domain scores into the 0-100 total and maps it onto the
// ordinal risk category. Domains labeled NA contribute 0.
func (a *AggregatorService) Synthesize(domains []domain.DomainResult) (float64, domain.RiskCategory) {
	total := 0.0
	for _, d := range domains {
		total += d.Score
	}
	total = round1(total)

	switch {
	case total < a.bands.RiskMild:
		return total, domain.RiskVeryLow
	case total < a.bands.RiskModerate:
		return total, domain.RiskMild
	case total < a.bands.RiskHigh:
		return total, domain.RiskModerate
	default:
		return total, domain.RiskHigh
	}
}

// domainLabel maps a 0-25 domain score onto its qualitative label.
func (a *AggregatorService) domainLabel(score float64) string {
	switch {
	case score < a.bands.DomainMild:
		return "Normal"
	case score < a.bands.DomainModerate:
		return "Mild"
	case score < a.bands.DomainSevere:
		return "Moderate"
	default:
		return "Severe"
	}
}

// round1 rounds to one decimal place.
func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

package service

import (
	"github.com/sirupsen/logrus"

	"github.com/metabo-score-server/internal/domain"
)

// ClassifierService maps derived index values onto severity bands using
// the cutoff registry. Classification is total: an absent value yields NA,
// any finite value lands in some band of its index table.
type ClassifierService struct {
	logger   *logrus.Logger
	registry *CutoffRegistry
}

// NewClassifierService creates a new severity classifier
func NewClassifierService(logger *logrus.Logger, registry *CutoffRegistry) *ClassifierService {
	return &ClassifierService{logger: logger, registry: registry}
}

// Classify resolves one index value into a DerivedIndex with severity and
// band label. An absent value, or an index without a table, classifies NA.
func (s *ClassifierService) Classify(code domain.IndexCode, value *float64) domain.DerivedIndex {
	if value == nil {
		return domain.DerivedIndex{
			Code:     code,
			Severity: domain.SeverityNA,
			Label:    domain.DomainLabelNA,
		}
	}

	table, ok := s.registry.Table(code)
	if !ok {
		s.logger.WithField("index", code.String()).Warn("No cutoff table for index, classifying as NA")
		return domain.DerivedIndex{
			Code:     code,
			Value:    value,
			Severity: domain.SeverityNA,
			Label:    domain.DomainLabelNA,
		}
	}

	band := table.Classify(*value)
	return domain.DerivedIndex{
		Code:     code,
		Value:    value,
		Severity: band.Severity,
		Label:    band.Label,
	}
}

// ClassifyAll resolves the full index map in catalog order.
func (s *ClassifierService) ClassifyAll(values map[domain.IndexCode]*float64) []domain.DerivedIndex {
	indices := make([]domain.DerivedIndex, 0, len(values))
	for _, code := range domain.AllIndices() {
		indices = append(indices, s.Classify(code, values[code]))
	}
	return indices
}

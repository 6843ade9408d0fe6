package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/metabo-score-server/internal/domain"
	"github.com/metabo-score-server/internal/service"
)

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"version":   service.EngineVersion,
	})
}

// handleScore computes a metabolic health report from raw intake fields.
// Malformed or missing patient fields never fail the request; they degrade
// to NA entries inside the report. Only an unreadable body is rejected.
func (s *Server) handleScore(c *gin.Context) {
	requestID := c.GetString("request_id")

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest,
			domain.NewAPIError(domain.ErrInvalidInput, "request body must be a JSON object", err.Error(), requestID))
		return
	}

	report := s.engine.Score(raw)
	s.reportCache.Add(report.ID, report)

	s.logger.WithFields(logrus.Fields{
		"request_id":    requestID,
		"report_id":     report.ID,
		"total_score":   report.TotalScore,
		"risk_category": report.RiskCategory.String(),
	}).Info("Scored patient measurement")

	c.JSON(http.StatusOK, report)
}

// handleGetReport returns a recently computed report by ID from the
// in-process cache.
func (s *Server) handleGetReport(c *gin.Context) {
	requestID := c.GetString("request_id")
	id := c.Param("id")

	report, ok := s.reportCache.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound,
			domain.NewAPIError(domain.ErrNotFound, "report not found or expired", id, requestID))
		return
	}

	c.JSON(http.StatusOK, report)
}

// indexCatalogEntry describes one index for the catalog endpoint.
type indexCatalogEntry struct {
	Code      string              `json:"code"`
	FullForm  string              `json:"full_form"`
	Formula   string              `json:"formula"`
	Domain    string              `json:"domain"`
	Direction string              `json:"direction"`
	Bands     []domain.CutoffBand `json:"bands"`
}

// handleIndexCatalog lists every index with its full form, domain, and
// severity bands.
func (s *Server) handleIndexCatalog(c *gin.Context) {
	byIndex := make(map[domain.IndexCode]domain.DomainName)
	for _, name := range domain.AllDomains() {
		for _, code := range s.registry.DomainMembers(name) {
			byIndex[code] = name
		}
	}

	entries := make([]indexCatalogEntry, 0, len(domain.AllIndices()))
	for _, code := range domain.AllIndices() {
		entry := indexCatalogEntry{
			Code:     code.String(),
			FullForm: code.FullForm(),
			Formula:  code.Formula(),
			Domain:   byIndex[code].String(),
		}
		if table, ok := s.registry.Table(code); ok {
			entry.Direction = table.Direction.String()
			entry.Bands = table.Bands
		}
		entries = append(entries, entry)
	}

	c.JSON(http.StatusOK, gin.H{"indices": entries})
}

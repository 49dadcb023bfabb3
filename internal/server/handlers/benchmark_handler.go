package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/sortbench/internal/benchmark"
	"github.com/mamadbah2/sortbench/internal/domain/models"
	"github.com/mamadbah2/sortbench/internal/sorting"
)

// MaxSortRecords caps POST /sort payloads; the quadratic sorts get slow well before it.
const MaxSortRecords = 20000

// RunHistory looks up the most recent benchmark run.
type RunHistory interface {
	LatestRun(ctx context.Context) (*models.RunSummary, error)
}

// SortRequest is the body of POST /sort.
type SortRequest struct {
	Algorithm string           `json:"algorithm" binding:"required"`
	Services  []models.Service `json:"services"`
}

// SortResponse is returned by POST /sort.
type SortResponse struct {
	Algorithm string           `json:"algorithm"`
	Label     string           `json:"label"`
	ElapsedMs float64          `json:"elapsed_ms"`
	Services  []models.Service `json:"services"`
}

// AlgorithmView describes one selectable algorithm.
type AlgorithmView struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// BenchmarkHandler exposes benchmark results and on-demand sorting over HTTP.
type BenchmarkHandler struct {
	history RunHistory
	logger  *zap.Logger
}

// NewBenchmarkHandler constructs the HTTP handler adapter.
func NewBenchmarkHandler(history RunHistory, logger *zap.Logger) *BenchmarkHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BenchmarkHandler{history: history, logger: logger}
}

// Algorithms lists the available sort algorithms.
func (h *BenchmarkHandler) Algorithms(c *gin.Context) {
	all := sorting.All()
	views := make([]AlgorithmView, 0, len(all))
	for _, a := range all {
		views = append(views, AlgorithmView{Key: a.Key, Label: a.Label})
	}
	c.JSON(http.StatusOK, gin.H{"algorithms": views})
}

// LatestRun returns the summary of the last finished run.
func (h *BenchmarkHandler) LatestRun(c *gin.Context) {
	summary, err := h.history.LatestRun(c.Request.Context())
	if err != nil {
		h.logger.Error("failed loading latest run", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load latest run"})
		return
	}
	if summary == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no run recorded yet"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Sort sorts the posted services with the requested algorithm and reports the elapsed time.
func (h *BenchmarkHandler) Sort(c *gin.Context) {
	var req SortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid sort payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	algo, err := sorting.Lookup(req.Algorithm)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.Services) > MaxSortRecords {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "too many services"})
		return
	}

	sorted, ms := benchmark.Sort(algo.Sort, req.Services)
	if sorted == nil {
		sorted = []models.Service{}
	}

	h.logger.Debug("sorted on request", zap.String("algorithm", algo.Key), zap.Int("records", len(sorted)), zap.Float64("elapsed_ms", ms))

	c.JSON(http.StatusOK, SortResponse{
		Algorithm: algo.Key,
		Label:     algo.Label,
		ElapsedMs: ms,
		Services:  sorted,
	})
}

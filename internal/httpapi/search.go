package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Martin212038201938/FunnyFunnel/internal/bus"
	"github.com/Martin212038201938/FunnyFunnel/internal/lead"
	"github.com/Martin212038201938/FunnyFunnel/internal/stepstone"
)

type searchRequest struct {
	Keywords    string `json:"keywords"`
	Location    string `json:"location"`
	Radius      int    `json:"radius"`
	AgeDays     int    `json:"date_filter"`
	TitleFilter string `json:"job_title_filter"`
	MaxPages    int    `json:"max_pages"`
	MaxResults  int    `json:"max_results"`
}

func (s *Server) searchStepstone(c *gin.Context) {
	req := searchRequest{Radius: 30, MaxPages: 1, MaxResults: 10}
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ungültige Anfrage: " + err.Error()})
		return
	}
	if req.Keywords == "" {
		req.Keywords = s.searchKeywords
	}
	if req.MaxResults <= 0 {
		req.MaxResults = 10
	}

	postings, err := s.searcher.Search(c.Request.Context(), stepstone.SearchParams{
		Keywords:    req.Keywords,
		Location:    req.Location,
		Radius:      req.Radius,
		MaxPages:    req.MaxPages,
		AgeDays:     req.AgeDays,
		TitleFilter: req.TitleFilter,
	})
	if err != nil {
		s.log.Error("stepstone search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
			"jobs":    []lead.Posting{},
		})
		return
	}

	if len(postings) > req.MaxResults {
		postings = postings[:req.MaxResults]
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(postings),
		"jobs":    postings,
	})
}

type importRequest struct {
	Jobs []lead.Posting `json:"jobs"`
}

func (s *Server) importStepstone(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ungültige Anfrage: " + err.Error()})
		return
	}
	if len(req.Jobs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Keine Jobs zum Importieren"})
		return
	}

	imported, skipped := 0, 0
	for _, job := range req.Jobs {
		if job.SourceURL != "" {
			exists, err := s.db.ExistsBySourceURL(job.SourceURL)
			if err != nil {
				s.fail(c, err)
				return
			}
			if exists {
				skipped++
				continue
			}
		}

		title := job.Title
		if title == "" {
			title = "Unbekannter Titel"
		}
		if _, err := s.db.InsertLead(&lead.Lead{
			Title:       title,
			Source:      job.Source,
			SourceURL:   job.SourceURL,
			Keywords:    job.Keywords,
			Preview:     job.Preview,
			CompanyName: job.CompanyName,
			Status:      lead.StatusNew,
		}); err != nil {
			s.fail(c, err)
			return
		}
		imported++
	}

	s.bus.Publish(bus.Event{
		Kind:      bus.KindImportFinished,
		Timestamp: time.Now(),
		Payload:   bus.ImportResult{Imported: imported, Skipped: skipped},
	})
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"imported": imported,
		"skipped":  skipped,
		"message":  fmt.Sprintf("%d Leads importiert, %d übersprungen (bereits vorhanden)", imported, skipped),
	})
}

func (s *Server) stepstoneRegions(c *gin.Context) {
	c.JSON(http.StatusOK, stepstone.Regions)
}

func (s *Server) stepstoneKeywords(c *gin.Context) {
	c.JSON(http.StatusOK, stepstone.AIKeywords)
}

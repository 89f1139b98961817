// Package httpapi serves the REST surface of the lead tracker daemon.
package httpapi

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Martin212038201938/FunnyFunnel/internal/bus"
	"github.com/Martin212038201938/FunnyFunnel/internal/lead"
	"github.com/Martin212038201938/FunnyFunnel/internal/research"
	"github.com/Martin212038201938/FunnyFunnel/internal/stepstone"
	"github.com/Martin212038201938/FunnyFunnel/internal/store"
)

// defaultSearchKeywords is used when neither the request nor the config
// names a keyword phrase.
const defaultSearchKeywords = "KI AI GenAI Copilot"

// Searcher is the job board search dependency of the API.
type Searcher interface {
	Search(ctx context.Context, p stepstone.SearchParams) ([]lead.Posting, error)
}

// Params carries the dependencies of a Server.
type Params struct {
	DB         *store.DB
	Bus        *bus.Bus
	Researcher research.Researcher
	Searcher   Searcher
	Log        *zap.Logger

	// Sender identity for cover letters, overridable per request.
	Sender research.LetterSender

	// Default keyword phrase for searches without one.
	SearchKeywords string
}

// Server implements the REST handlers.
type Server struct {
	db         *store.DB
	bus        *bus.Bus
	researcher research.Researcher
	searcher   Searcher
	log        *zap.Logger

	sender         research.LetterSender
	searchKeywords string
}

// New builds a Server from its dependencies.
func New(p Params) *Server {
	keywords := p.SearchKeywords
	if keywords == "" {
		keywords = defaultSearchKeywords
	}
	return &Server{
		db:             p.DB,
		bus:            p.Bus,
		researcher:     p.Researcher,
		searcher:       p.Searcher,
		log:            p.Log,
		sender:         p.Sender,
		searchKeywords: keywords,
	}
}

// Router wires all routes into a gin engine.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(requestID(), accessLog(s.log), gin.Recovery())

	r.GET("/healthz", s.health)

	api := r.Group("/api")
	{
		api.GET("/leads", s.listLeads)
		api.POST("/leads", s.createLead)
		api.GET("/leads/export", s.exportLeads)
		api.GET("/leads/:id", s.getLead)
		api.PUT("/leads/:id", s.updateLead)
		api.DELETE("/leads/:id", s.deleteLead)
		api.POST("/leads/:id/activate", s.activateLead)
		api.POST("/leads/:id/research", s.researchLead)
		api.POST("/leads/:id/generate-letter", s.generateLetter)
		api.PUT("/leads/:id/status", s.updateLeadStatus)

		api.GET("/stats", s.stats)
		api.GET("/status-options", s.statusOptions)
		api.POST("/seed-demo", s.seedDemo)

		api.POST("/stepstone/search", s.searchStepstone)
		api.POST("/stepstone/import", s.importStepstone)
		api.GET("/stepstone/regions", s.stepstoneRegions)
		api.GET("/stepstone/keywords", s.stepstoneKeywords)

		api.GET("/events", s.events)
	}

	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}

package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Martin212038201938/FunnyFunnel/internal/bus"
	"github.com/Martin212038201938/FunnyFunnel/internal/export"
	"github.com/Martin212038201938/FunnyFunnel/internal/lead"
	"github.com/Martin212038201938/FunnyFunnel/internal/research"
	"github.com/Martin212038201938/FunnyFunnel/internal/store"
)

func (s *Server) listLeads(c *gin.Context) {
	status := lead.Status(c.Query("status"))
	keyword := c.Query("keyword")

	leads, err := s.db.ListLeads(status, keyword)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, leads)
}

type createLeadRequest struct {
	Title     string   `json:"titel"`
	Source    string   `json:"quelle"`
	SourceURL string   `json:"quelle_url"`
	Keywords  []string `json:"keywords"`
	Preview   string   `json:"textvorschau"`
	Company   string   `json:"firmenname"`
}

func (s *Server) createLead(c *gin.Context) {
	var req createLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ungültige Anfrage: " + err.Error()})
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Titel ist erforderlich"})
		return
	}

	created, err := s.db.InsertLead(&lead.Lead{
		Title:       req.Title,
		Source:      req.Source,
		SourceURL:   req.SourceURL,
		Keywords:    req.Keywords,
		Preview:     req.Preview,
		CompanyName: req.Company,
		Status:      lead.StatusNew,
	})
	if err != nil {
		s.fail(c, err)
		return
	}

	s.publishLead(bus.KindLeadCreated, created)
	c.JSON(http.StatusCreated, created)
}

func (s *Server) getLead(c *gin.Context) {
	l, ok := s.leadByID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, l)
}

type leadUpdateRequest struct {
	Title           *string      `json:"titel"`
	SourceURL       *string      `json:"quelle_url"`
	Keywords        *[]string    `json:"keywords"`
	Preview         *string      `json:"textvorschau"`
	FullText        *string      `json:"volltext"`
	CompanyName     *string      `json:"firmenname"`
	CompanyWebsite  *string      `json:"firmen_website"`
	CompanyAddress  *string      `json:"firmen_adresse"`
	CompanyEmail    *string      `json:"firmen_email"`
	ContactName     *string      `json:"ansprechpartner_name"`
	ContactRole     *string      `json:"ansprechpartner_rolle"`
	ContactLinkedIn *string      `json:"ansprechpartner_linkedin"`
	ContactSource   *string      `json:"ansprechpartner_quelle"`
	Letter          *string      `json:"anschreiben"`
	Status          *lead.Status `json:"status"`
}

func (s *Server) updateLead(c *gin.Context) {
	id, ok := s.paramID(c)
	if !ok {
		return
	}

	var req leadUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ungültige Anfrage: " + err.Error()})
		return
	}
	if req.Status != nil && !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ungültiger Status"})
		return
	}

	updated, err := s.db.UpdateLead(id, &store.LeadUpdate{
		Title:           req.Title,
		SourceURL:       req.SourceURL,
		Keywords:        req.Keywords,
		Preview:         req.Preview,
		FullText:        req.FullText,
		CompanyName:     req.CompanyName,
		CompanyWebsite:  req.CompanyWebsite,
		CompanyAddress:  req.CompanyAddress,
		CompanyEmail:    req.CompanyEmail,
		ContactName:     req.ContactName,
		ContactRole:     req.ContactRole,
		ContactLinkedIn: req.ContactLinkedIn,
		ContactSource:   req.ContactSource,
		Letter:          req.Letter,
		Status:          req.Status,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	if updated == nil {
		s.notFound(c)
		return
	}

	s.publishLead(bus.KindLeadUpdated, updated)
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteLead(c *gin.Context) {
	id, ok := s.paramID(c)
	if !ok {
		return
	}

	deleted, err := s.db.DeleteLead(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if !deleted {
		s.notFound(c)
		return
	}

	s.bus.Publish(bus.Event{
		Kind:      bus.KindLeadDeleted,
		Timestamp: time.Now(),
		Payload:   bus.LeadRef{ID: id},
	})
	c.JSON(http.StatusOK, gin.H{"message": "Lead gelöscht"})
}

func (s *Server) activateLead(c *gin.Context) {
	l, ok := s.leadByID(c)
	if !ok {
		return
	}
	if !l.CanActivate() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Lead ist bereits aktiviert"})
		return
	}

	updated, err := s.db.UpdateStatus(l.ID, lead.StatusActivated)
	if err != nil {
		s.fail(c, err)
		return
	}

	s.publishLead(bus.KindLeadUpdated, updated)
	c.JSON(http.StatusOK, updated)
}

func (s *Server) researchLead(c *gin.Context) {
	l, ok := s.leadByID(c)
	if !ok {
		return
	}

	company := l.CompanyName
	if company == "" {
		company = "Unbekannt"
	}

	result, err := s.researcher.Research(c.Request.Context(), company, l.Title, "")
	if err != nil {
		s.log.Error("research failed", zap.Int64("lead_id", l.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Recherche fehlgeschlagen: %v", err)})
		return
	}

	upd := &store.LeadUpdate{}
	setIf(&upd.CompanyWebsite, result.CompanyWebsite)
	setIf(&upd.CompanyAddress, result.CompanyAddress)
	setIf(&upd.CompanyEmail, result.CompanyEmail)
	setIf(&upd.ContactName, result.ContactName)
	setIf(&upd.ContactRole, result.ContactRole)
	if result.ContactLinkedIn != "" {
		setIf(&upd.ContactLinkedIn, result.ContactLinkedIn)
		setIf(&upd.ContactSource, "LinkedIn (via Recherche)")
	}
	status := lead.StatusResearched
	upd.Status = &status

	updated, err := s.db.UpdateLead(l.ID, upd)
	if err != nil {
		s.fail(c, err)
		return
	}

	s.publishLead(bus.KindLeadResearched, updated)
	c.JSON(http.StatusOK, updated)
}

// setIf points dst at v unless v is empty. Empty research fields must not
// overwrite data already on the lead.
func setIf(dst **string, v string) {
	if v != "" {
		*dst = &v
	}
}

type generateLetterRequest struct {
	SenderName    string `json:"absender_name"`
	SenderCompany string `json:"absender_firma"`
}

func (s *Server) generateLetter(c *gin.Context) {
	l, ok := s.leadByID(c)
	if !ok {
		return
	}
	if !l.CanGenerateLetter() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Lead muss zuerst recherchiert werden"})
		return
	}

	var req generateLetterRequest
	_ = c.ShouldBindJSON(&req)

	sender := s.sender
	if req.SenderName != "" {
		sender.Name = req.SenderName
	}
	if req.SenderCompany != "" {
		sender.Company = req.SenderCompany
	}

	letter := research.ComposeLetter(l, sender)
	status := lead.StatusLetter
	updated, err := s.db.UpdateLead(l.ID, &store.LeadUpdate{Letter: &letter, Status: &status})
	if err != nil {
		s.fail(c, err)
		return
	}

	s.publishLead(bus.KindLeadLetter, updated)
	c.JSON(http.StatusOK, updated)
}

type statusRequest struct {
	Status lead.Status `json:"status"`
}

func (s *Server) updateLeadStatus(c *gin.Context) {
	id, ok := s.paramID(c)
	if !ok {
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ungültiger Status"})
		return
	}

	updated, err := s.db.UpdateStatus(id, req.Status)
	if err != nil {
		s.fail(c, err)
		return
	}
	if updated == nil {
		s.notFound(c)
		return
	}

	s.publishLead(bus.KindLeadUpdated, updated)
	c.JSON(http.StatusOK, updated)
}

func (s *Server) exportLeads(c *gin.Context) {
	leads, err := s.db.ListLeads("", "")
	if err != nil {
		s.fail(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.Filename(time.Now())))
	c.Status(http.StatusOK)

	if err := export.WriteCSV(c.Writer, leads); err != nil {
		s.log.Error("csv export failed", zap.Error(err))
	}
}

func (s *Server) stats(c *gin.Context) {
	stats, err := s.db.Stats()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) statusOptions(c *gin.Context) {
	c.JSON(http.StatusOK, lead.Statuses())
}

func (s *Server) seedDemo(c *gin.Context) {
	created, err := s.db.SeedDemo()
	if err != nil {
		s.fail(c, err)
		return
	}

	s.bus.Publish(bus.Event{
		Kind:      bus.KindSeedFinished,
		Timestamp: time.Now(),
		Payload:   bus.ImportResult{Imported: created},
	})
	c.JSON(http.StatusOK, gin.H{
		"created": created,
		"message": fmt.Sprintf("%d Demo-Leads angelegt", created),
	})
}

func (s *Server) paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ungültige Lead-ID"})
		return 0, false
	}
	return id, true
}

func (s *Server) leadByID(c *gin.Context) (*lead.Lead, bool) {
	id, ok := s.paramID(c)
	if !ok {
		return nil, false
	}
	l, err := s.db.GetLead(id)
	if err != nil {
		s.fail(c, err)
		return nil, false
	}
	if l == nil {
		s.notFound(c)
		return nil, false
	}
	return l, true
}

func (s *Server) notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Lead nicht gefunden"})
}

func (s *Server) fail(c *gin.Context, err error) {
	s.log.Error("request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Interner Fehler"})
}

func (s *Server) publishLead(kind string, l *lead.Lead) {
	s.bus.Publish(bus.Event{
		Kind:      kind,
		Timestamp: time.Now(),
		Payload:   bus.LeadRef{ID: l.ID, Status: string(l.Status)},
	})
}

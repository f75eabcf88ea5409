package ui

import (
	"context"
	"html/template"
	"net/http"
	"time"

	"statcalc/domain/core"
	domainStats "statcalc/domain/stats"
	"statcalc/internal"
	"statcalc/internal/calculator"
	"statcalc/internal/engine"
	"statcalc/internal/errors"

	"github.com/gin-gonic/gin"
)

// Server is the JSON API over the statistics engine and live calculator
// sessions.
type Server struct {
	router    *gin.Engine
	engine    *engine.Engine
	store     *calculator.Store
	templates *template.Template
	decimals  int
	logger    *internal.Logger
}

// ServerConfig holds the API server dependencies.
type ServerConfig struct {
	Engine   *engine.Engine
	Store    *calculator.Store
	Decimals int
	Logger   *internal.Logger
}

// NewServer creates the API server with its routes registered.
func NewServer(config ServerConfig) (*Server, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse templates")
	}
	logger := config.Logger
	if logger == nil {
		logger = internal.DefaultLogger
	}

	s := &Server{
		router:    gin.Default(),
		engine:    config.Engine,
		store:     config.Store,
		templates: templates,
		decimals:  config.Decimals,
		logger:    logger.With("Server"),
	}
	s.setupRoutes()
	return s, nil
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/formulas", s.handleFormulas)

	api := s.router.Group("/api")
	{
		api.GET("/statistics", s.handleListStatistics)
		api.POST("/statistics/:kind", s.handleComputeStatistic)
		api.POST("/summary", s.handleSummary)

		api.POST("/calculators", s.handleCreateCalculator)
		api.GET("/calculators/:id", s.handleGetCalculator)
		api.POST("/calculators/:id/keys", s.handlePressKeys)
		api.PUT("/calculators/:id/params", s.handleSetParams)
		api.DELETE("/calculators/:id", s.handleDeleteCalculator)
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves the API on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	return serve(ctx, s.logger, addr, s.router, shutdownTimeout)
}

func (s *Server) respondError(c *gin.Context, err error) {
	appErr := errors.FromDomain(err)
	status := errors.HTTPStatus(appErr)
	if status >= http.StatusInternalServerError {
		s.logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	} else {
		s.logger.Debug("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{
		"error": appErr.Error(),
		"code":  appErr.Code,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"sessions": s.store.Len(),
	})
}

func (s *Server) handleFormulas(c *gin.Context) {
	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, gin.H{"formulas": engine.Reference()})
		return
	}
	renderTemplate(c.Writer, s.templates, s.logger, "formulas.html", newFormulasPage())
}

func (s *Server) handleListStatistics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"statistics":  s.engine.Definitions(),
		"margins":     engine.MarginOptions(),
		"confidences": engine.ConfidenceLevels(),
	})
}

func (s *Server) handleComputeStatistic(c *gin.Context) {
	kind, err := domainStats.ParseKind(c.Param("kind"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	def, err := s.engine.Definition(kind)
	if err != nil {
		s.respondError(c, err)
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		s.respondError(c, errors.Wrap(err, "failed to read request body"))
		return
	}
	in, err := parseInput(body)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !kind.IsDescriptive() {
		in = s.withDefaultParams(in)
	}

	result, err := s.engine.Compute(kind, in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	formula, _ := s.engine.Formula(kind, in)

	c.JSON(http.StatusOK, gin.H{
		"kind":      kind,
		"input":     in,
		"result":    result,
		"formatted": result.Format(s.decimals),
		"label":     calculator.ResultLine(def, result, s.decimals),
		"formula":   formula.String(),
	})
}

// withDefaultParams fills margin and confidence from the picker defaults
// when a sample-size request leaves them out.
func (s *Server) withDefaultParams(in engine.Input) engine.Input {
	defaults := s.store.Defaults()
	if in.Margin == "" {
		in.Margin = defaults.DefaultMargin
	}
	if in.Confidence == "" {
		in.Confidence = defaults.DefaultZ
	}
	return in
}

func (s *Server) handleSummary(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		s.respondError(c, errors.Wrap(err, "failed to read request body"))
		return
	}
	in, err := parseInput(body)
	if err != nil {
		s.respondError(c, err)
		return
	}

	summary := s.engine.Summarize(in.Data)
	formatted := make(map[domainStats.Kind]string, len(summary.Results))
	for kind, r := range summary.Results {
		formatted[kind] = r.Format(s.decimals)
	}
	c.JSON(http.StatusOK, gin.H{
		"numbers":   summary.Numbers,
		"results":   summary.Results,
		"formatted": formatted,
	})
}

func (s *Server) handleCreateCalculator(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		s.respondError(c, errors.Wrap(err, "failed to read request body"))
		return
	}
	kind, err := parseCalculatorKind(body)
	if err != nil {
		s.respondError(c, err)
		return
	}
	calc, err := s.store.Create(kind)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, calc.Snapshot())
}

func (s *Server) lookup(c *gin.Context) (*calculator.Calculator, bool) {
	id, err := core.ParseSessionID(c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return nil, false
	}
	calc, err := s.store.Get(id)
	if err != nil {
		s.respondError(c, err)
		return nil, false
	}
	return calc, true
}

func (s *Server) handleGetCalculator(c *gin.Context) {
	calc, ok := s.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, calc.Snapshot())
}

func (s *Server) handlePressKeys(c *gin.Context) {
	calc, ok := s.lookup(c)
	if !ok {
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		s.respondError(c, errors.Wrap(err, "failed to read request body"))
		return
	}
	keys, err := parseKeys(body)
	if err != nil {
		s.respondError(c, err)
		return
	}
	for _, key := range keys {
		if err := calc.Press(key); err != nil {
			s.respondError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, calc.Snapshot())
}

func (s *Server) handleSetParams(c *gin.Context) {
	calc, ok := s.lookup(c)
	if !ok {
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		s.respondError(c, errors.Wrap(err, "failed to read request body"))
		return
	}
	params, err := parseParams(body)
	if err != nil {
		s.respondError(c, err)
		return
	}
	for _, p := range params {
		field := engine.Field(p[0])
		// Modal pickers only accept a choice while open.
		if err := calc.OpenPicker(field); err != nil {
			s.respondError(c, err)
			return
		}
		if err := calc.Choose(field, p[1]); err != nil {
			s.respondError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, calc.Snapshot())
}

func (s *Server) handleDeleteCalculator(c *gin.Context) {
	id, err := core.ParseSessionID(c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	if err := s.store.Delete(id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

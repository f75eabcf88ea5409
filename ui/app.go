package ui

import (
	"context"
	"html/template"
	"net/http"
	"net/url"
	"time"

	domainStats "statcalc/domain/stats"
	"statcalc/internal"
	"statcalc/internal/calculator"
	"statcalc/internal/engine"
	"statcalc/internal/errors"
	"statcalc/internal/picker"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// App is the HTML keypad application. It keeps no sessions: the whole
// calculator state travels in the page URL and every key press replays it
// through a fresh calculator.
type App struct {
	router    *chi.Mux
	engine    *engine.Engine
	opts      calculator.Options
	templates *template.Template
	logger    *internal.Logger
}

// Config holds UI application configuration
type Config struct {
	Engine      *engine.Engine
	Calculators calculator.Options
	Logger      *internal.Logger
}

// Query parameters carrying calculator state between requests.
const (
	paramOpened    = "opened"
	paramEvaluated = "evaluated"
)

var stateFields = []engine.Field{
	engine.FieldData,
	engine.FieldPopulation,
	engine.FieldMargin,
	engine.FieldConfidence,
}

type indexPage struct {
	Title       string
	Definitions []engine.Definition
}

type calcPage struct {
	Title  string
	Calc   calculator.State
	Hidden url.Values
	Error  string
}

// NewApp creates a new UI application
func NewApp(config Config) (*App, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse templates")
	}
	logger := config.Logger
	if logger == nil {
		logger = internal.DefaultLogger
	}

	app := &App{
		router:    chi.NewRouter(),
		engine:    config.Engine,
		opts:      config.Calculators,
		templates: templates,
		logger:    logger.With("UI"),
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/formulas", a.handleFormulas)
	a.router.Get("/calc/{kind}", a.handleCalculator)
	a.router.Post("/calc/{kind}", a.handleCalculatorAction)
}

// Handler exposes the router, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.router
}

// Run serves the app on addr until ctx is cancelled.
func (a *App) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	return serve(ctx, a.logger, addr, a.router, shutdownTimeout)
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, a.templates, a.logger, "index.html", indexPage{
		Title:       "Calculadoras",
		Definitions: a.engine.Definitions(),
	})
}

func (a *App) handleFormulas(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, a.templates, a.logger, "formulas.html", newFormulasPage())
}

func (a *App) handleCalculator(w http.ResponseWriter, r *http.Request) {
	kind, err := domainStats.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		a.renderError(w, err)
		return
	}
	calc, err := a.restore(kind, r.URL.Query())
	if err != nil {
		a.renderError(w, err)
		return
	}

	state := calc.Snapshot()
	renderTemplate(w, a.templates, a.logger, "calc.html", calcPage{
		Title:  state.Title,
		Calc:   state,
		Hidden: a.encodeState(calc, true),
	})
}

// handleCalculatorAction applies one key press or picker action to the state
// posted with the form and redirects to the resulting page.
func (a *App) handleCalculatorAction(w http.ResponseWriter, r *http.Request) {
	kind, err := domainStats.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		a.renderError(w, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		a.renderError(w, errors.InvalidInput("malformed form"))
		return
	}
	calc, err := a.restore(kind, r.PostForm)
	if err != nil {
		a.renderError(w, err)
		return
	}

	field := engine.Field(r.PostForm.Get("field"))
	keepResult := false
	switch {
	case r.PostForm.Has("key"):
		key := r.PostForm.Get("key")
		err = calc.Press(key)
		keepResult = key == engine.KeyEquals
	case r.PostForm.Get("action") == "open":
		err = calc.OpenPicker(field)
		keepResult = true
	case r.PostForm.Has("value"):
		err = calc.Choose(field, r.PostForm.Get("value"))
	default:
		err = errors.InvalidInput("no action given")
	}
	if err != nil {
		a.renderError(w, err)
		return
	}

	target := url.URL{Path: "/calc/" + kind.String(), RawQuery: a.encodeState(calc, keepResult).Encode()}
	http.Redirect(w, r, target.String(), http.StatusSeeOther)
}

// restore rebuilds a calculator from encoded state. Entry text is replayed
// key by key so it is held to the same keypad as live input.
func (a *App) restore(kind domainStats.Kind, state url.Values) (*calculator.Calculator, error) {
	calc, err := calculator.New(a.engine, kind, a.opts)
	if err != nil {
		return nil, err
	}
	snapshot := calc.Snapshot()

	for _, p := range snapshot.Pickers {
		value := state.Get(string(p.Field))
		if value == "" || value == p.Selected.Value {
			continue
		}
		if err := calc.OpenPicker(p.Field); err != nil {
			return nil, err
		}
		if err := calc.Choose(p.Field, value); err != nil {
			return nil, err
		}
	}
	if opened := state.Get(paramOpened); opened != "" {
		if err := calc.OpenPicker(engine.Field(opened)); err != nil {
			return nil, err
		}
	}

	if err := calc.Type(state.Get(string(snapshot.Entry))); err != nil {
		return nil, err
	}
	if state.Get(paramEvaluated) == "1" {
		calc.Evaluate()
	}
	return calc, nil
}

// encodeState captures everything restore needs. The result is replayed
// only when keepResult is set, so a page never shows a result for input that
// changed after "=".
func (a *App) encodeState(calc *calculator.Calculator, keepResult bool) url.Values {
	state := calc.Snapshot()
	values := url.Values{}
	for _, f := range stateFields {
		if v := state.Input.Get(f); v != "" {
			values.Set(string(f), v)
		}
	}
	if a.opts.Surface == picker.KindModal {
		for _, p := range state.Pickers {
			if p.Open {
				values.Set(paramOpened, string(p.Field))
			}
		}
	}
	if keepResult && state.Result != nil {
		values.Set(paramEvaluated, "1")
	}
	return values
}

func (a *App) renderError(w http.ResponseWriter, err error) {
	appErr := errors.FromDomain(err)
	status := errors.HTTPStatus(appErr)
	if status >= http.StatusInternalServerError {
		a.logger.Error("%v", err)
	} else {
		a.logger.Debug("%v", err)
	}
	http.Error(w, appErr.Error(), status)
}

package container

import (
	"fmt"

	"statcalc/internal"
	"statcalc/internal/calculator"
	"statcalc/internal/config"
	"statcalc/internal/engine"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	Engine      *engine.Engine
	Calculators calculator.Options
	Store       *calculator.Store
}

// New wires the engine and calculator store from configuration
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	logger := internal.NewLogger(cfg.Logging.Level)
	eng := engine.New(engine.Options{ModeOrder: cfg.Calculators.ModeOrder})

	margin, z := cfg.Calculators.CalculatorDefaults()
	opts := calculator.Options{
		Surface:       cfg.Calculators.PickerSurface,
		Decimals:      cfg.Calculators.DecimalPlaces,
		DefaultMargin: margin,
		DefaultZ:      z,
	}

	c := &Container{
		Config:      cfg,
		Logger:      logger,
		Engine:      eng,
		Calculators: opts,
		Store:       calculator.NewStore(eng, opts, logger),
	}

	logger.With("Container").Debug("engine ready (mode order %s, %s pickers, %d decimals)",
		eng.ModeOrder(), opts.Surface, opts.Decimals)
	return c, nil
}

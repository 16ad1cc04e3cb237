package animation

// Config holds the tunables a Core is constructed with: cache budget,
// tessellation worker count, and the fill/curve-fit defaults paintFill
// falls back to when a PaintEdit doesn't override them. Grounded on the
// teacher's functional-options convention (gogpu-gg/options.go).
type Config struct {
	cacheBudgetMB       int
	tessellationWorkers int
	fillFitPrecision    float64
	curveFitMaxError    float64
}

// Option configures a Core during construction.
type Option func(*Config)

// defaultConfig uses paintFill's defaultFitPrecision and the 2.0 curve-fit
// tolerance that vector's brush elements default to.
func defaultConfig() Config {
	return Config{
		cacheBudgetMB:       64,
		tessellationWorkers: 4,
		fillFitPrecision:    defaultFitPrecision,
		curveFitMaxError:    2.0,
	}
}

// WithCacheBudgetMB bounds how much serialized drawing data the layer
// cache keeps resident before evicting, per StreamLayerCache's budget.
func WithCacheBudgetMB(mb int) Option {
	return func(c *Config) { c.cacheBudgetMB = mb }
}

// WithTessellationWorkers records a tessellation worker count on the
// Config. Core creates no render.CanvasRenderer and does not read the
// value; render.WithWorkerLimit is what bounds render.Draw's concurrency.
func WithTessellationWorkers(n int) Option {
	return func(c *Config) { c.tessellationWorkers = n }
}

// WithFillFitPrecision sets the default curve-fit precision paintFill uses
// when a PaintEdit's FillOptions doesn't supply FillOptFitPrecision.
func WithFillFitPrecision(p float64) Option {
	return func(c *Config) { c.fillFitPrecision = p }
}

// WithCurveFitMaxError sets the max error geo.FitCurve is allowed when
// fitting freehand/path input outside of fill (e.g. BrushElement outlines).
func WithCurveFitMaxError(e float64) Option {
	return func(c *Config) { c.curveFitMaxError = e }
}

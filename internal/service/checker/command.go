package checker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/oshokin/shabbat-check/internal/config"
	"github.com/oshokin/shabbat-check/internal/domain/zmanim"
	"github.com/oshokin/shabbat-check/internal/location"
	"github.com/oshokin/shabbat-check/internal/logger"
	"github.com/oshokin/shabbat-check/internal/report"
	"github.com/oshokin/shabbat-check/internal/solar"
	"github.com/oshokin/shabbat-check/internal/window"
)

// Options controls a single evaluation.
type Options struct {
	// ConfigPath pins SHABBAT.md; empty means search from WorkDir upward.
	ConfigPath string
	// WorkDir is where the upward search starts; empty means the process working directory.
	WorkDir string
	// Now is the evaluated instant. It is converted into the configured zone.
	Now time.Time
	// Format selects the report encoding.
	Format report.Format
	// Output receives the report; nil means stdout.
	Output io.Writer
	// Resolver overrides the default location chain.
	Resolver *location.Resolver
	// Calculator overrides the NOAA calculator, e.g. with a solar.Cache.
	Calculator solar.Calculator
}

// Evaluation is the full state of one run.
type Evaluation struct {
	// DirectivesPath is the file the directives were read from.
	DirectivesPath string
	// Directives are the parsed values.
	Directives *config.Directives
	// Override is set when the life-safety override short-circuited the run;
	// every field below is then zero.
	Override bool
	// Location is the configured zone.
	Location *time.Location
	// Now is the evaluated instant in Location.
	Now time.Time
	// Resolution is the coordinate used for the solar computation.
	Resolution location.Resolution
	// Times are today's solar events.
	Times solar.Times
	// Result is the window evaluation.
	Result zmanim.Result
}

var (
	// ErrInvalidTimezone is returned when the configured zone cannot be loaded.
	ErrInvalidTimezone = errors.New("invalid timezone")
	// errNowRequired is returned when no instant is supplied.
	errNowRequired = errors.New("evaluation instant must be provided")
)

// Run evaluates the window, writes the report and returns the exit code.
// Fatal conditions return an error and write nothing.
func Run(ctx context.Context, opts *Options) (int, error) {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "checker")

	eval, err := Evaluate(ctx, opts)
	if err != nil {
		return report.ExitFatal, err
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	rep := eval.Report()
	if err = report.Write(out, opts.Format, rep); err != nil {
		return report.ExitFatal, err
	}

	return rep.ExitCode(), nil
}

// Evaluate runs the pipeline without writing anything.
func Evaluate(ctx context.Context, opts *Options) (*Evaluation, error) {
	if opts.Now.IsZero() {
		return nil, errNowRequired
	}

	path, err := locateDirectives(opts.ConfigPath, opts.WorkDir)
	if err != nil {
		return nil, err
	}

	directives, err := config.LoadDirectives(path)
	if err != nil {
		return nil, fmt.Errorf("load directives: %w", err)
	}

	eval := &Evaluation{
		DirectivesPath: path,
		Directives:     directives,
	}

	// The override skips every computation, including timezone validation.
	if directives.LifeSafetyOverride {
		logger.WarnKV(ctx, "Life-safety override is active, window forced inactive", "directives", path)

		eval.Override = true

		return eval, nil
	}

	loc, err := time.LoadLocation(directives.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidTimezone, directives.Timezone, err)
	}

	ctx = logger.WithKV(ctx, "timezone", directives.Timezone)

	eval.Location = loc
	eval.Now = opts.Now.In(loc)

	resolver := opts.Resolver
	if resolver == nil {
		resolver = location.NewResolver()
	}

	eval.Resolution = resolver.Resolve(ctx, &location.Request{
		Timezone:  directives.Timezone,
		Latitude:  directives.Latitude,
		Longitude: directives.Longitude,
		At:        eval.Now,
	})

	var calculator solar.Calculator = solar.NOAA{}
	if opts.Calculator != nil {
		calculator = opts.Calculator
	}

	eval.Times = calculator.Compute(eval.Resolution.Coordinate, eval.Now)

	eval.Result = window.Evaluate(&window.Input{
		Now:    eval.Now,
		Pause:  zmanim.ParsePauseTrigger(directives.PauseTrigger),
		Resume: zmanim.ParseResumeTrigger(directives.ResumeTrigger),
		Times:  eval.Times,
	})

	logger.DebugKV(ctx, "Window evaluated",
		"now", eval.Now.Format(time.RFC3339),
		"sunset", eval.Times.Sunset.Clock(),
		"nightfall", eval.Times.Nightfall.Clock(),
		"pause_at", eval.Result.PauseAt.Clock(),
		"resume_at", eval.Result.ResumeAt.Clock(),
		"phase", eval.Result.Phase.String(),
	)

	return eval, nil
}

// Report converts the evaluation into a printable report.
func (e *Evaluation) Report() *report.Report {
	if e.Override {
		return report.Overridden()
	}

	return &report.Report{
		Timezone: e.Directives.Timezone,
		Location: e.Resolution,
		Result:   e.Result,
	}
}

// locateDirectives returns the explicit path or searches upward from workDir.
func locateDirectives(explicit, workDir string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}

		workDir = wd
	}

	return config.FindDirectives(workDir)
}

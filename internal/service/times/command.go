package times

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/oshokin/shabbat-check/internal/domain/zmanim"
	"github.com/oshokin/shabbat-check/internal/logger"
	"github.com/oshokin/shabbat-check/internal/service/checker"
	"github.com/oshokin/shabbat-check/internal/solar"
	"github.com/oshokin/shabbat-check/internal/window"
)

// Options controls the times table.
type Options struct {
	// Check holds the evaluation inputs shared with the one-shot check.
	Check checker.Options
	// Referencers are the engines to cross-check against; nil means solar.DefaultReferencers.
	Referencers []solar.Referencer

	// colors overrides the default palette.
	colors *palette
}

// palette holds the colors of the table. Colored text only ever ends a line,
// so tabwriter never counts escape codes in a column width.
type palette struct {
	// title marks the section headings.
	title *color.Color
	// active marks the phase inside the window.
	active *color.Color
	// inactive marks every other phase.
	inactive *color.Color
}

func newPalette() *palette {
	return &palette{
		title:    color.New(color.Bold),
		active:   color.New(color.FgRed),
		inactive: color.New(color.FgGreen),
	}
}

// Run prints today's events, the window boundaries and the reference cross-check.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "times")

	eval, err := checker.Evaluate(ctx, &opts.Check)
	if err != nil {
		return err
	}

	out := opts.Check.Output
	if out == nil {
		out = os.Stdout
	}

	if eval.Override {
		_, err = fmt.Fprintf(out, "%s life-safety override is set in %s, no times computed\n",
			color.YellowString("!"), eval.DirectivesPath)

		return err
	}

	referencers := opts.Referencers
	if referencers == nil {
		referencers = solar.DefaultReferencers()
	}

	refs := make([]solar.Reference, 0, len(referencers))
	for _, r := range referencers {
		ref := r.Reference(eval.Resolution.Coordinate, eval.Now)
		refs = append(refs, ref)

		logger.DebugKV(ctx, "Reference computed", "engine", ref.Engine, "sunset", ref.Sunset, "nightfall", ref.Nightfall)
	}

	colors := opts.colors
	if colors == nil {
		colors = newPalette()
	}

	return render(out, colors, eval, refs)
}

// render writes the human table.
func render(out io.Writer, colors *palette, eval *checker.Evaluation, refs []solar.Reference) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s\n", colors.title.Sprintf("%s (%s)", eval.Now.Format("Monday, 02 Jan 2006"), eval.Directives.Timezone))
	fmt.Fprintf(tw, "location\t%s\t%s\n", eval.Resolution.Coordinate, eval.Resolution.Source)
	fmt.Fprintf(tw, "candle lighting\t%s\t\n", window.CandleLighting(eval.Times.Sunset).Clock())
	fmt.Fprintf(tw, "sunset\t%s\t\n", eval.Times.Sunset.Clock())
	fmt.Fprintf(tw, "nightfall\t%s\t\n", eval.Times.Nightfall.Clock())
	fmt.Fprintf(tw, "pause at\t%s\t%s\n", eval.Result.PauseAt.Clock(), eval.Directives.PauseTrigger)
	fmt.Fprintf(tw, "resume at\t%s\t%s\n", eval.Result.ResumeAt.Clock(), eval.Directives.ResumeTrigger)
	fmt.Fprintf(tw, "status\t%s\n", colors.phase(eval.Result.Phase))

	if len(refs) > 0 {
		fmt.Fprintf(tw, "\n%s\n", colors.title.Sprint("cross-check"))
		fmt.Fprintf(tw, "engine\tsunset\tΔ\tnightfall\tΔ\n")

		for _, ref := range refs {
			sunset, sunsetDelta := compare(eval.Times.Sunset, ref.Sunset, eval.Now)
			nightfall, nightfallDelta := compare(eval.Times.Nightfall, ref.Nightfall, eval.Now)

			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", ref.Engine, sunset, sunsetDelta, nightfall, nightfallDelta)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write times: %w", err)
	}

	return nil
}

// phase colors the window phase.
func (p *palette) phase(ph zmanim.Phase) string {
	if ph == zmanim.PhaseInWindow {
		return p.active.Sprint(ph.String())
	}

	return p.inactive.Sprint(ph.String())
}

// compare formats a reference instant and its signed distance from the NOAA time.
func compare(noaa zmanim.TimeOfDay, ref, day time.Time) (string, string) {
	if ref.IsZero() {
		return "n/a", ""
	}

	delta := ref.Sub(noaa.On(day)).Round(time.Second)

	return zmanim.TimeOfDayFromTime(ref).Clock(), fmt.Sprintf("%+ds", int(delta/time.Second))
}

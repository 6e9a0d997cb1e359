package times

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/shabbat-check/internal/config"
	"github.com/oshokin/shabbat-check/internal/domain/zmanim"
	"github.com/oshokin/shabbat-check/internal/service/checker"
	"github.com/oshokin/shabbat-check/internal/solar"
)

func init() {
	color.NoColor = true
}

// fixedReferencer reports the NOAA times shifted by a constant.
type fixedReferencer struct {
	shift time.Duration
	drop  bool
}

func (f fixedReferencer) Name() string { return "fixed" }

func (f fixedReferencer) Reference(coord zmanim.Coordinate, at time.Time) solar.Reference {
	times := solar.NOAA{}.Compute(coord, at)

	ref := solar.Reference{
		Engine: f.Name(),
		Sunset: times.Sunset.On(at).Add(f.shift),
	}

	if !f.drop {
		ref.Nightfall = times.Nightfall.On(at).Add(f.shift)
	}

	return ref
}

// directivesDir writes SHABBAT.md into a temporary directory.
func directivesDir(t *testing.T, contents string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DirectivesFilename), []byte(contents), 0o600))

	return dir
}

// friday returns 2024-09-13 19:00 in New York.
func friday(t *testing.T) time.Time {
	t.Helper()

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	return time.Date(2024, time.September, 13, 19, 0, 0, 0, loc)
}

// TestRun_Table prints the events, the window and the engine deltas.
// At 19:00 the default sunset trigger (19:07:38) has not fired yet.
func TestRun_Table(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := Run(context.Background(), &Options{
		Check: checker.Options{
			WorkDir: directivesDir(t, "- timezone: America/New_York\n"),
			Now:     friday(t),
			Output:  &out,
		},
		Referencers: []solar.Referencer{fixedReferencer{shift: 30 * time.Second, drop: true}},
	})

	require.NoError(t, err)

	text := out.String()
	require.Contains(t, text, "Friday, 13 Sep 2024 (America/New_York)")
	require.Contains(t, text, "40.7100,-74.0100")
	require.Contains(t, text, "table")
	require.Contains(t, text, "19:07:38")
	require.Contains(t, text, "19:35:08")
	require.Contains(t, text, "BEFORE_WINDOW")
	require.Contains(t, text, "+30s")
	require.Contains(t, text, "n/a")
}

// forcedPalette returns the default palette with colors switched on or off.
func forcedPalette(enabled bool) *palette {
	p := newPalette()

	for _, c := range []*color.Color{p.title, p.active, p.inactive} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

// TestRun_ColorsKeepAlignment lays out the same columns with and without escape codes.
func TestRun_ColorsKeepAlignment(t *testing.T) {
	t.Parallel()

	dir := directivesDir(t, "- timezone: America/New_York\n")
	escapes := regexp.MustCompile("\x1b\\[[0-9;]*m")

	outputs := make(map[bool]string, 2)

	for _, enabled := range []bool{true, false} {
		var out bytes.Buffer

		err := Run(context.Background(), &Options{
			Check: checker.Options{
				WorkDir: dir,
				Now:     friday(t),
				Output:  &out,
			},
			Referencers: []solar.Referencer{fixedReferencer{shift: 30 * time.Second}},
			colors:      forcedPalette(enabled),
		})
		require.NoError(t, err)

		outputs[enabled] = out.String()
	}

	require.Contains(t, outputs[true], "\x1b[")
	require.Equal(t, outputs[false], escapes.ReplaceAllString(outputs[true], ""))
}

// TestRun_Override prints a notice instead of times.
func TestRun_Override(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := Run(context.Background(), &Options{
		Check: checker.Options{
			WorkDir: directivesDir(t, "- life_safety_override: true\n"),
			Now:     friday(t),
			Output:  &out,
		},
	})

	require.NoError(t, err)
	require.Contains(t, out.String(), "life-safety override is set")
	require.NotContains(t, out.String(), "sunset")
}

// TestRun_InvalidTimezone propagates evaluation errors.
func TestRun_InvalidTimezone(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), &Options{
		Check: checker.Options{
			WorkDir: directivesDir(t, "- timezone: Mars/Olympus\n"),
			Now:     friday(t),
			Output:  &bytes.Buffer{},
		},
	})

	require.ErrorIs(t, err, checker.ErrInvalidTimezone)
}

// TestCompare formats signed deltas.
func TestCompare(t *testing.T) {
	t.Parallel()

	day := friday(t)
	noaa := zmanim.TimeOfDay{Hour: 19, Minute: 7, Second: 38}

	clock, delta := compare(noaa, noaa.On(day).Add(-12*time.Second), day)
	require.Equal(t, "19:07:26", clock)
	require.Equal(t, "-12s", delta)

	clock, delta = compare(noaa, time.Time{}, day)
	require.Equal(t, "n/a", clock)
	require.Empty(t, delta)
}

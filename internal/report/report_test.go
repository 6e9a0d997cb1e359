package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/shabbat-check/internal/domain/zmanim"
	"github.com/oshokin/shabbat-check/internal/location"
)

// activeReport is an evaluated report with the window open.
func activeReport() *Report {
	return &Report{
		Timezone: "America/New_York",
		Location: location.Resolution{
			Coordinate: zmanim.Coordinate{Latitude: 40.71, Longitude: -74.01},
			Source:     location.SourceTable,
		},
		Result: zmanim.Result{
			PauseAt:  zmanim.TimeOfDay{Hour: 18, Minute: 49, Second: 38},
			ResumeAt: zmanim.TimeOfDay{Hour: 19, Minute: 35, Second: 8},
			Phase:    zmanim.PhaseInWindow,
		},
	}
}

// TestWriteLines checks the exact three-line output and exit codes.
func TestWriteLines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	r := activeReport()
	require.NoError(t, Write(&buf, FormatLines, r))
	require.Equal(t, "pause_at=18:49\nresume_at=19:35\nis_shabbat=1\n", buf.String())
	require.Equal(t, ExitActive, r.ExitCode())

	buf.Reset()

	r.Result.Phase = zmanim.PhaseAfterWindow
	require.NoError(t, Write(&buf, FormatLines, r))
	require.Equal(t, "pause_at=18:49\nresume_at=19:35\nis_shabbat=0\n", buf.String())
	require.Equal(t, ExitInactive, r.ExitCode())
}

// TestWriteLines_Override prints exactly the two fixed lines.
func TestWriteLines_Override(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	r := Overridden()

	// A stale result must not leak into an overridden report.
	r.Result.Phase = zmanim.PhaseInWindow

	require.NoError(t, Write(&buf, FormatLines, r))
	require.Equal(t, "life_safety_override=true\nis_shabbat=0\n", buf.String())
	require.Equal(t, ExitInactive, r.ExitCode())
}

// TestWriteYAML decodes the YAML output back into a map.
func TestWriteYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, Write(&buf, FormatYAML, activeReport()))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, "18:49", got["pause_at"])
	require.Equal(t, "19:35", got["resume_at"])
	require.Equal(t, true, got["is_shabbat"])
	require.Equal(t, "IN_WINDOW", got["phase"])
	require.Equal(t, "table", got["location_source"])
	require.InDelta(t, -74.01, got["longitude"], 1e-9)

	buf.Reset()
	require.NoError(t, Write(&buf, FormatYAML, Overridden()))
	require.Equal(t, "life_safety_override: true\nis_shabbat: false\n", buf.String())
}

// TestWriteJSON decodes the protojson output back into a struct.
func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, Write(&buf, FormatJSON, activeReport()))

	var msg structpb.Struct
	require.NoError(t, protojson.Unmarshal(buf.Bytes(), &msg))

	got := msg.AsMap()
	require.Equal(t, "18:49", got["pause_at"])
	require.Equal(t, true, got["is_shabbat"])
	require.Equal(t, "America/New_York", got["timezone"])
	require.InDelta(t, 40.71, got["latitude"], 1e-9)

	buf.Reset()
	require.NoError(t, Write(&buf, FormatJSON, Overridden()))
	require.NoError(t, protojson.Unmarshal(buf.Bytes(), &msg))
	require.Equal(t, map[string]any{"life_safety_override": true, "is_shabbat": false}, msg.AsMap())
}

// TestParseFormat accepts known names and rejects the rest.
func TestParseFormat(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Format{"": FormatLines, "lines": FormatLines, " YAML ": FormatYAML, "json": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := ParseFormat("xml")
	require.ErrorIs(t, err, ErrUnknownFormat)
	require.ErrorIs(t, Write(&bytes.Buffer{}, Format("xml"), activeReport()), ErrUnknownFormat)
}

package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/shabbat-check/internal/domain/zmanim"
	"github.com/oshokin/shabbat-check/internal/location"
)

// Exit codes of the one-shot check.
const (
	// ExitInactive means the window is closed or overridden.
	ExitInactive = 0
	// ExitFatal means the check could not run.
	ExitFatal = 1
	// ExitActive means the window is open.
	ExitActive = 2
)

// Format selects the output encoding.
type Format string

const (
	// FormatLines prints key=value lines.
	FormatLines Format = "lines"
	// FormatYAML prints a YAML document.
	FormatYAML Format = "yaml"
	// FormatJSON prints a JSON object.
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for an unsupported --format value.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatLines, FormatYAML, FormatJSON:
		return f, nil
	case "":
		return FormatLines, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownFormat)
	}
}

// Report is everything one run has to say.
type Report struct {
	// Override is set when the life-safety override short-circuited the run.
	Override bool
	// Timezone is the configured zone.
	Timezone string
	// Location is the resolved coordinate and its source.
	Location location.Resolution
	// Result is the window evaluation; meaningless when Override is set.
	Result zmanim.Result
}

// Overridden returns the report for a run short-circuited by the override.
func Overridden() *Report {
	return &Report{Override: true}
}

// IsActive reports whether the window is open for this run.
func (r *Report) IsActive() bool {
	return !r.Override && r.Result.IsActive()
}

// ExitCode maps the report to the process exit code.
func (r *Report) ExitCode() int {
	if r.IsActive() {
		return ExitActive
	}

	return ExitInactive
}

// overrideDocument is the structured shape of an overridden run.
type overrideDocument struct {
	LifeSafetyOverride bool `yaml:"life_safety_override"`
	IsShabbat          bool `yaml:"is_shabbat"`
}

// resultDocument is the structured shape of an evaluated run.
type resultDocument struct {
	PauseAt        string  `yaml:"pause_at"`
	ResumeAt       string  `yaml:"resume_at"`
	IsShabbat      bool    `yaml:"is_shabbat"`
	Phase          string  `yaml:"phase"`
	Timezone       string  `yaml:"timezone"`
	Latitude       float64 `yaml:"latitude"`
	Longitude      float64 `yaml:"longitude"`
	LocationSource string  `yaml:"location_source"`
}

// toDocument flattens an evaluated report.
func (r *Report) toDocument() *resultDocument {
	return &resultDocument{
		PauseAt:        r.Result.PauseAt.String(),
		ResumeAt:       r.Result.ResumeAt.String(),
		IsShabbat:      r.IsActive(),
		Phase:          r.Result.Phase.String(),
		Timezone:       r.Timezone,
		Latitude:       r.Location.Latitude,
		Longitude:      r.Location.Longitude,
		LocationSource: string(r.Location.Source),
	}
}

// Write renders r to w in format f.
func Write(w io.Writer, f Format, r *Report) error {
	switch f {
	case FormatLines, "":
		return writeLines(w, r)
	case FormatYAML:
		return writeYAML(w, r)
	case FormatJSON:
		return writeJSON(w, r)
	default:
		return fmt.Errorf("%q: %w", f, ErrUnknownFormat)
	}
}

// writeLines prints the key=value lines.
func writeLines(w io.Writer, r *Report) error {
	var b strings.Builder

	if r.Override {
		b.WriteString("life_safety_override=true\n")
	} else {
		fmt.Fprintf(&b, "pause_at=%s\n", r.Result.PauseAt)
		fmt.Fprintf(&b, "resume_at=%s\n", r.Result.ResumeAt)
	}

	fmt.Fprintf(&b, "is_shabbat=%d\n", boolToInt(r.IsActive()))

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// writeYAML encodes the structured document as YAML.
func writeYAML(w io.Writer, r *Report) error {
	var doc any = r.toDocument()
	if r.Override {
		doc = &overrideDocument{LifeSafetyOverride: true}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush yaml report: %w", err)
	}

	return nil
}

// writeJSON encodes the structured document as JSON through protojson.
func writeJSON(w io.Writer, r *Report) error {
	fields := map[string]any{
		"is_shabbat": r.IsActive(),
	}

	if r.Override {
		fields["life_safety_override"] = true
	} else {
		doc := r.toDocument()

		fields["pause_at"] = doc.PauseAt
		fields["resume_at"] = doc.ResumeAt
		fields["phase"] = doc.Phase
		fields["timezone"] = doc.Timezone
		fields["latitude"] = doc.Latitude
		fields["longitude"] = doc.Longitude
		fields["location_source"] = doc.LocationSource
	}

	msg, err := structpb.NewStruct(fields)
	if err != nil {
		return fmt.Errorf("build json report: %w", err)
	}

	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode json report: %w", err)
	}

	if _, err = w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}

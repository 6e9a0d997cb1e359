package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// DirectivesFilename is the markdown file holding the directives.
	DirectivesFilename = "SHABBAT.md"
	// DefaultTimezone is used when the file names no timezone.
	DefaultTimezone = "America/New_York"
	// DefaultPauseTrigger opens the window at sunset.
	DefaultPauseTrigger = "shkia"
	// DefaultResumeTrigger closes the window at nightfall.
	DefaultResumeTrigger = "tzait"

	// templatePermissions is the mode of a freshly written SHABBAT.md.
	templatePermissions = 0o644
)

// Directive keys recognized in SHABBAT.md.
const (
	keyTimezone      = "timezone"
	keyPauseTrigger  = "pause_trigger"
	keyResumeTrigger = "resume_trigger"
	keyOverride      = "life_safety_override"
	keyLatitude      = "latitude"
	keyLat           = "lat"
	keyLongitude     = "longitude"
	keyLon           = "lon"
)

var (
	// ErrConfigNotFound is returned when no SHABBAT.md exists in the directory chain.
	ErrConfigNotFound = errors.New(DirectivesFilename + " not found")
	// ErrTemplateExists is returned when init would overwrite an existing file.
	ErrTemplateExists = errors.New("file already exists")

	// overridePattern finds the boolean anywhere in the override line.
	overridePattern = regexp.MustCompile(`(?i)true|false`)
)

// Directives are the values read from SHABBAT.md, kept as strings where the
// consumer decides how lenient to be.
type Directives struct {
	// Timezone is the IANA zone identifier.
	Timezone string
	// PauseTrigger is the raw pause trigger, e.g. "candle-lighting".
	PauseTrigger string
	// ResumeTrigger is the raw resume trigger, e.g. "havdalah".
	ResumeTrigger string
	// LifeSafetyOverride forces the window inactive and skips every computation.
	LifeSafetyOverride bool
	// Latitude is the raw explicit latitude, empty when absent.
	Latitude string
	// Longitude is the raw explicit longitude, empty when absent.
	Longitude string
}

// DefaultDirectives returns the values used for absent keys.
func DefaultDirectives() *Directives {
	return &Directives{
		Timezone:      DefaultTimezone,
		PauseTrigger:  DefaultPauseTrigger,
		ResumeTrigger: DefaultResumeTrigger,
	}
}

// ParseDirectives reads "- key: value" lines. Keys are case-insensitive,
// unknown lines are ignored and later occurrences win. Empty values are ignored.
func ParseDirectives(r io.Reader) (*Directives, error) {
	d := DefaultDirectives()

	// Lines have no length limit: SHABBAT.md may carry long prose paragraphs.
	reader := bufio.NewReader(r)

	for {
		raw, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read directives: %w", err)
		}

		d.apply(strings.TrimSpace(raw))

		if err != nil {
			return d, nil
		}
	}
}

// apply records the directive on line, if any.
func (d *Directives) apply(line string) {
	key, value, ok := splitDirective(line)
	if !ok {
		return
	}

	if key == keyOverride {
		if m := overridePattern.FindString(line); m != "" {
			d.LifeSafetyOverride = strings.EqualFold(m, "true")
		}

		return
	}

	if value == "" {
		return
	}

	switch key {
	case keyTimezone:
		d.Timezone = value
	case keyPauseTrigger:
		d.PauseTrigger = value
	case keyResumeTrigger:
		d.ResumeTrigger = value
	case keyLatitude, keyLat:
		d.Latitude = value
	case keyLongitude, keyLon:
		d.Longitude = value
	}
}

// splitDirective splits "- key: value" into a lower-cased key and a trimmed value.
func splitDirective(line string) (string, string, bool) {
	rest, ok := strings.CutPrefix(line, "- ")
	if !ok {
		return "", "", false
	}

	key, value, ok := strings.Cut(rest, ":")
	if !ok {
		return "", "", false
	}

	return strings.ToLower(strings.TrimSpace(key)), strings.TrimSpace(value), true
}

// LoadDirectives parses the file at path.
func LoadDirectives(path string) (*Directives, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrConfigNotFound)
		}

		return nil, fmt.Errorf("open directives: %w", err)
	}

	defer func() {
		_ = f.Close()
	}()

	return ParseDirectives(f)
}

// FindDirectives looks for SHABBAT.md in startDir, then in each parent up to the root.
func FindDirectives(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve start directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, DirectivesFilename)
		if info, statErr := os.Stat(candidate); statErr == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrConfigNotFound
		}

		dir = parent
	}
}

// template is written by WriteTemplate.
const template = `# Shabbat

Pause automated work from candle lighting on Friday until nightfall on Saturday.

- timezone: %s
- pause_trigger: candle-lighting
- resume_trigger: tzait
- life_safety_override: false

For accurate times add ` + "`- latitude: <degrees>`" + ` and ` + "`- longitude: <degrees>`" + ` lines.
Without them the location is approximated from the timezone.
`

// WriteTemplate writes a starter SHABBAT.md to path for timezone.
// An existing file is only replaced when force is set.
func WriteTemplate(path, timezone string, force bool) error {
	if timezone == "" {
		timezone = DefaultTimezone
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, ErrTemplateExists)
		}
	}

	if err := os.WriteFile(filepath.Clean(path), fmt.Appendf(nil, template, timezone), templatePermissions); err != nil {
		return fmt.Errorf("write template: %w", err)
	}

	return nil
}

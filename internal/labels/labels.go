// Package labels loads the human-readable vocabulary of a report.
package labels

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "en"

//go:embed labels.yml
var catalogYAML []byte

// Labels holds the templates for one locale.
type Labels struct {
	ReportTitleText     string `yaml:"report_title"`
	GeneratedTmpl       string `yaml:"generated"`
	TimestampLayout     string `yaml:"timestamp_layout"`
	WalkTitleTmpl       string `yaml:"walk_title"`
	AnalysingTmpl       string `yaml:"analysing"`
	IndividualFilesText string `yaml:"individual_files"`
	AnalysisOfTmpl      string `yaml:"analysis_of"`
	MissingFileTmpl     string `yaml:"missing_file"`
	BinaryMarkerText    string `yaml:"binary_marker"`
	ContentHeaderTmpl   string `yaml:"content_header"`
	EndOfFileText       string `yaml:"end_of_file"`
	ReadErrorTmpl       string `yaml:"read_error"`
	SavedTmpl           string `yaml:"saved"`
}

// Catalog maps locale names (e.g. "en") to their labels.
type Catalog map[string]Labels

// ParseCatalog decodes a YAML catalog.
func ParseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("error parsing label catalog: %w", err)
	}
	for name, l := range c {
		if missing := l.missing(); len(missing) > 0 {
			return nil, fmt.Errorf("locale %q is missing labels: %s", name, strings.Join(missing, ", "))
		}
	}
	return c, nil
}

// Load returns the embedded labels for locale. An empty locale means
// DefaultLocale.
func Load(locale string) (*Labels, error) {
	c, err := ParseCatalog(catalogYAML)
	if err != nil {
		return nil, err
	}
	if locale == "" {
		locale = DefaultLocale
	}
	l, ok := c[strings.ToLower(locale)]
	if !ok {
		return nil, fmt.Errorf("unknown locale %q (available: %s)", locale, strings.Join(c.Locales(), ", "))
	}
	return &l, nil
}

// Locales lists the catalog's locale names, sorted.
func (c Catalog) Locales() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (l Labels) missing() []string {
	var out []string
	check := func(key, v string) {
		if v == "" {
			out = append(out, key)
		}
	}
	check("report_title", l.ReportTitleText)
	check("generated", l.GeneratedTmpl)
	check("timestamp_layout", l.TimestampLayout)
	check("walk_title", l.WalkTitleTmpl)
	check("analysing", l.AnalysingTmpl)
	check("individual_files", l.IndividualFilesText)
	check("analysis_of", l.AnalysisOfTmpl)
	check("missing_file", l.MissingFileTmpl)
	check("binary_marker", l.BinaryMarkerText)
	check("content_header", l.ContentHeaderTmpl)
	check("end_of_file", l.EndOfFileText)
	check("read_error", l.ReadErrorTmpl)
	check("saved", l.SavedTmpl)
	return out
}

func (l *Labels) ReportTitle() string     { return l.ReportTitleText }
func (l *Labels) IndividualFiles() string { return l.IndividualFilesText }
func (l *Labels) BinaryMarker() string    { return l.BinaryMarkerText }
func (l *Labels) EndOfFile() string       { return l.EndOfFileText }

func (l *Labels) Generated(t time.Time) string {
	return fmt.Sprintf(l.GeneratedTmpl, t.Format(l.TimestampLayout))
}

func (l *Labels) WalkTitle(root string) string   { return fmt.Sprintf(l.WalkTitleTmpl, root) }
func (l *Labels) Analysing(root string) string   { return fmt.Sprintf(l.AnalysingTmpl, root) }
func (l *Labels) AnalysisOf(path string) string  { return fmt.Sprintf(l.AnalysisOfTmpl, path) }
func (l *Labels) MissingFile(path string) string { return fmt.Sprintf(l.MissingFileTmpl, path) }
func (l *Labels) ContentHeader(n int) string     { return fmt.Sprintf(l.ContentHeaderTmpl, n) }
func (l *Labels) ReadError(err error) string     { return fmt.Sprintf(l.ReadErrorTmpl, err) }
func (l *Labels) Saved(path string) string       { return fmt.Sprintf(l.SavedTmpl, path) }

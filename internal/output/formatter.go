package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Formatter renders a report into bytes
type Formatter interface {
	Name() string
	Format(r *Report) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(r *Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(r *Report) ([]byte, error) { return f.F(r) }

var formatters = map[string]Formatter{
	"console": ConsoleFormatter{},
	"plain":   ConsoleFormatter{Plain: true},
	"json":    JSONFormatter{Pretty: true},
	"csv":     CSVFormatter{},
	"yaml":    YAMLFormatter{},
}

var aliases = map[string]string{
	"table": "console",
	"text":  "plain",
	"yml":   "yaml",
}

// GetFormatterByName returns the formatter registered under name or one of its aliases,
// or nil when none matches.
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if target, ok := aliases[name]; ok {
		name = target
	}
	return formatters[name]
}

// AvailableFormatterNames lists registered formatter names in sorted order
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists accepted aliases in sorted order
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Write renders r with the named formatter to w
func Write(w io.Writer, format string, r *Report) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unsupported format: %s (valid: %s)", format, strings.Join(AvailableFormatterNames(), ", "))
	}
	data, err := f.Format(r)
	if err != nil {
		return fmt.Errorf("failed to format %s output: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// WriteFormatted renders r and saves it in dir as finplan_report_<timestamp>.<ext>,
// returning the file name
func WriteFormatted(f Formatter, r *Report, dir, ext string) (string, error) {
	data, err := f.Format(r)
	if err != nil {
		return "", err
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	stamp := r.GeneratedAt
	if stamp.IsZero() {
		stamp = time.Now()
	}
	filename := filepath.Join(dir, fmt.Sprintf("finplan_report_%s.%s", stamp.Format("20060102_150405"), ext))
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return filename, nil
}

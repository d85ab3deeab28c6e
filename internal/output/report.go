package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Formatter renders worksheet results in one output format
type Formatter interface {
	Name() string
	Format(results *domain.WorksheetResult) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(results *domain.WorksheetResult) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(results *domain.WorksheetResult) ([]byte, error) {
	return f.F(results)
}

var registry = []Formatter{
	ConsoleFormatter{},
	ConsoleVerboseFormatter{},
	CSVSummarizer{},
	CSVDetailedFormatter{},
	JSONFormatter{Pretty: true},
	HTMLFormatter{},
	MarkdownFormatter{},
	PrettyFormatter{},
}

var aliases = map[string]string{
	"verbose":         "console",
	"console-verbose": "console",
	"text":            "console",
	"summary":         "console-lite",
	"md":              "markdown",
}

// GetFormatterByName returns the formatter registered under name or alias, or nil
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if target, ok := aliases[name]; ok {
		name = target
	}
	for _, f := range registry {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// AvailableFormatterNames lists registered formatter names
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(registry))
	for _, f := range registry {
		names = append(names, f.Name())
	}
	return names
}

// AvailableFormatAliases lists accepted alternative format names
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for alias := range aliases {
		names = append(names, alias)
	}
	sort.Strings(names)
	return names
}

// Extension returns the file extension for a formatter's output
func Extension(f Formatter) string {
	switch f.Name() {
	case "csv", "detailed-csv":
		return "csv"
	case "json":
		return "json"
	case "html":
		return "html"
	case "markdown":
		return "md"
	default:
		return "txt"
	}
}

// WriteFormatted renders results and writes them to a timestamped file in the
// working directory, returning the file name
func WriteFormatted(f Formatter, results *domain.WorksheetResult, ext string) (string, error) {
	data, err := f.Format(results)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("fincalc_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := WriteFile(filename, data); err != nil {
		return "", err
	}
	return filename, nil
}

// WriteFile writes data to path, creating parent directories as needed
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// FormatAmount formats money with two decimals and thousands separators
func FormatAmount(amount decimal.Decimal) string {
	fixed := amount.Round(2).StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	whole, frac, _ := strings.Cut(fixed, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return sign + fixed
	}
	return sign + humanize.Comma(n) + "." + frac
}

// FormatPercentage formats a value that is already a percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatRate formats a fraction (0.22) as a percentage (22.00%)
func FormatRate(rate decimal.Decimal) string {
	return FormatPercentage(rate.Mul(decimal.NewFromInt(100)))
}

// BoundLabel describes a tax bracket's range
func BoundLabel(b domain.TaxBracket) string {
	if b.Unbounded() {
		return FormatAmount(b.LowerBound) + " and above"
	}
	return FormatAmount(b.LowerBound) + " to " + FormatAmount(*b.UpperBound)
}

func intToString(i int) string {
	return strconv.Itoa(i)
}

package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/fincalc/internal/domain"
)

// HTMLFormatter produces a standalone HTML report suitable for printing
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"amt":    FormatAmount,
	"pct":    FormatPercentage,
	"rate":   FormatRate,
	"bounds": BoundLabel,
	"label":  itemName,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(results *domain.WorksheetResult) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.WorksheetResult
		Title       string
		Assumptions []string
	}{results, worksheetTitle(results), DefaultAssumptions}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

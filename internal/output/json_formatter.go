package output

import (
	"encoding/json"

	"github.com/rgehrsitz/fincalc/internal/domain"
)

// JSONFormatter writes the full results as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(results *domain.WorksheetResult) ([]byte, error) {
	return EncodeJSON(results, j.Pretty)
}

// EncodeJSON marshals v, indented when pretty, and ends the document with a
// newline so it can be written straight to a terminal or file
func EncodeJSON(v any, pretty bool) ([]byte, error) {
	var data []byte
	var err error
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

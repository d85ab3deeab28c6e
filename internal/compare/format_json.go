package compare

import (
	"fmt"

	"github.com/rgehrsitz/fincalc/internal/output"
)

// JSONFormatter writes a comparison set as a JSON document
type JSONFormatter struct {
	Pretty bool
}

// Format encodes the base loan, the alternatives with their deltas and the
// recommendations
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	data, err := output.EncodeJSON(compSet, jf.Pretty)
	if err != nil {
		return "", fmt.Errorf("failed to encode comparison for %s: %w", compSet.BaseLoanName, err)
	}
	return string(data), nil
}

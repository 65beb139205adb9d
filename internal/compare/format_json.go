package compare

import (
	"bytes"
	"encoding/json"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// Format generates JSON output for comparison results. Currency symbols in
// recommendation text are written as-is rather than escaped.
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if jf.Pretty {
		enc.SetIndent("", "  ")
	}

	if err := enc.Encode(compSet); err != nil {
		return "", err
	}

	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vulnissimo/vulnissimo/internal/types"
)

// encodeJSON serializes result with indent spaces per level. A negative
// indent produces compact output. The encoding always ends with a newline.
func encodeJSON(result *types.ScanResult, indent int) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	if indent < 0 {
		data, err = json.Marshal(result)
	} else {
		data, err = json.MarshalIndent(result, "", strings.Repeat(" ", indent))
	}

	if err != nil {
		return nil, fmt.Errorf("encoding scan result: %w", err)
	}

	return append(data, '\n'), nil
}

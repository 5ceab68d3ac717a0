package output

import (
	"encoding/json"

	"github.com/da11an/repo-query-surface/internal/errors"
	"github.com/da11an/repo-query-surface/internal/insights"
)

// JSONGenerator emits the full record set for the serve mode and
// external tooling. Field order follows the record declarations.
type JSONGenerator struct{}

func (j *JSONGenerator) Render(rep *insights.Report) (string, error) {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, errors.CodeRenderFailed, "encoding report")
	}
	return string(data) + "\n", nil
}

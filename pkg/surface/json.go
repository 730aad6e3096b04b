package surface

import (
	"encoding/json"
	"io"

	"github.com/botlane/botlane/pkg/matchup"
	"github.com/botlane/botlane/pkg/scoring"
)

// JSONRenderer marshals results to indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(w io.Writer, ranking *scoring.Ranking) error {
	return encode(w, ranking)
}

func (r *JSONRenderer) RenderDiff(w io.Writer, diff *matchup.Diff) error {
	return encode(w, diff)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

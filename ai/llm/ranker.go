package llm

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/picko-ai/picko/ai"
	"github.com/picko-ai/picko/core"
)

// Ranker implements ai.Ranker with a single prompt over a numbered listing.
type Ranker struct {
	caller *caller
	logger *slog.Logger
}

var _ ai.Ranker = (*Ranker)(nil)

type rankResponse struct {
	Recommendations *[]rankEntry `json:"recommendations"`
}

type rankEntry struct {
	Rank       lenientInt `json:"rank"`
	ToolNumber lenientInt `json:"tool_number"`
	Reason     string     `json:"reason"`
}

// lenientInt accepts a JSON number or a numeric string; models emit both.
type lenientInt int

func (n *lenientInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*n = lenientInt(v)
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = lenientInt(v)
	return nil
}

// RankTools returns the model's picks in the order it listed them.
// An empty tools slice returns no picks without calling the model.
func (r *Ranker) RankTools(ctx context.Context, task string, tools []*core.Tool) ([]ai.Recommendation, error) {
	if len(tools) == 0 {
		return []ai.Recommendation{}, nil
	}

	raw, err := r.caller.generate(ctx, "rank", buildRankPrompt(task, tools))
	if err != nil {
		return nil, err
	}
	r.logger.Debug("rank response", "response", truncate(raw, 200))

	var result rankResponse
	if err := decodeObject(raw, &result); err != nil {
		r.logger.Warn("error parsing rank response", "response", truncate(raw, 200), "err", err)
		return nil, err
	}
	if result.Recommendations == nil {
		return nil, fmt.Errorf("%w: missing recommendations", ai.ErrMalformedResponse)
	}

	picks := make([]ai.Recommendation, 0, len(*result.Recommendations))
	for _, entry := range *result.Recommendations {
		picks = append(picks, ai.Recommendation{
			Rank:       int(entry.Rank),
			ToolNumber: int(entry.ToolNumber),
			Reason:     entry.Reason,
		})
	}

	r.logger.Debug("ranked tools", "listed", len(tools), "picks", len(picks))
	return picks, nil
}

// Package chat implements the conversational assistant. A message either
// carries search intent, in which case filters are extracted and the search
// pipeline runs, or it is answered in persona by the generative model.
package chat

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/carikost/carikost/internal/domain/listing"
	"github.com/carikost/carikost/internal/domain/search"
	apperrors "github.com/carikost/carikost/pkg/errors"
	"github.com/carikost/carikost/pkg/metrics"
)

// Response is the chat answer. Results and Filters are set when the message
// resolved to a search; Message and Type "chat" otherwise.
type Response struct {
	Type    string              `json:"type,omitempty"`
	Message string              `json:"message,omitempty"`
	Results []listing.Result    `json:"results,omitempty"`
	Filters *listing.Filters    `json:"filters,omitempty"`
	Usage   *metrics.TokenUsage `json:"tokenUsage,omitempty"`
}

// Service answers chat messages.
type Service interface {
	Respond(ctx context.Context, message string) (Response, error)
}

type service struct {
	gen      search.GenClient
	searcher search.Service
	logger   *slog.Logger
}

// NewService wires the assistant to the generative model and the search
// pipeline.
func NewService(gen search.GenClient, searcher search.Service, logger *slog.Logger) Service {
	return &service{
		gen:      gen,
		searcher: searcher,
		logger:   logger.With("component", "chat.service"),
	}
}

func (s *service) Respond(ctx context.Context, message string) (Response, error) {
	if strings.TrimSpace(message) == "" {
		return Response{}, apperrors.Wrap("invalid_input", "message is required", nil)
	}

	if filters, usage := s.extractFilters(ctx, message); filters != nil {
		results, err := s.searcher.Search(ctx, *filters)
		if err != nil {
			return Response{}, err
		}
		return Response{Results: results, Filters: filters, Usage: usage}, nil
	}

	return s.converse(ctx, message), nil
}

// filtersWire is the schema the extraction prompt asks the model to emit.
type filtersWire struct {
	Location   string   `json:"location"`
	MaxBudget  int      `json:"maxBudget"`
	Facilities []string `json:"facilities"`
	Type       string   `json:"type"`
}

// extractFilters asks the model whether the message carries search criteria.
// Any failure means no criteria: the message falls through to conversation.
func (s *service) extractFilters(ctx context.Context, message string) (*listing.Filters, *metrics.TokenUsage) {
	res, err := s.gen.GenerateContent(ctx, buildExtractionPrompt(message))
	if err != nil {
		s.logger.Warn("filter extraction failed", "error", err)
		return nil, nil
	}

	raw, ok := extractJSONObject(res.Text)
	if !ok {
		return nil, nil
	}
	var wire filtersWire
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		s.logger.Warn("filter extraction returned invalid JSON", "error", err)
		return nil, nil
	}
	if strings.TrimSpace(wire.Location) == "" && wire.MaxBudget <= 0 {
		return nil, nil
	}

	filters := listing.Filters{
		Location:   wire.Location,
		MaxBudget:  wire.MaxBudget,
		Facilities: wire.Facilities,
		Category:   listing.ParseRequestedCategory(wire.Type),
	}
	if filters.MaxBudget <= 0 {
		filters.MaxBudget = 1_000_000
	}
	if filters.Facilities == nil {
		filters.Facilities = []string{}
	}
	usage := res.Usage
	return &filters, &usage
}

// converse answers in persona. Model failures degrade to a canned apology so
// chat never errors outward.
func (s *service) converse(ctx context.Context, message string) Response {
	res, err := s.gen.GenerateContent(ctx, buildPersonaPrompt(message))
	if err != nil {
		s.logger.Warn("persona reply failed", "error", err)
		return Response{Type: "chat", Message: apologyReply}
	}

	reply := cleanReply(res.Text)
	lower := strings.ToLower(message)
	if strings.Contains(lower, "kos") || strings.Contains(lower, "kost") {
		reply += "\n\n" + recommendationsFor(lower)
	}
	usage := res.Usage
	return Response{Type: "chat", Message: reply, Usage: &usage}
}

// cleanReply strips markdown bold markers and collapses double newlines, the
// same normalization the assistant has always applied to model output.
func cleanReply(text string) string {
	text = markdownBoldRe.ReplaceAllString(text, "$1")
	return strings.ReplaceAll(text, "\n\n", "\n")
}

// extractJSONObject locates the first top-level JSON object literal in text
// by brace matching, tracking string literals so braces inside quoted values
// do not unbalance the scan.
func extractJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

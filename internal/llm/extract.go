package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/search"
)

// Extraction is the raw structured guess produced by the extractor. Each
// field is a short descriptive string or the "unknown" sentinel. Confidence
// is deliberately absent here; it is computed by the triage package.
type Extraction struct {
	IssueType      string `json:"issue_type"`
	Severity       string `json:"severity"`
	AffectedSystem string `json:"affected_system"`
}

// UnknownExtraction is the substitute used whenever the extractor fails or
// returns something unparseable.
func UnknownExtraction() Extraction {
	return Extraction{
		IssueType:      domain.ValueUnknown,
		Severity:       domain.ValueUnknown,
		AffectedSystem: domain.ValueUnknown,
	}
}

const extractPrompt = `You are an information extraction system.

Extract the following fields only from the given text:
- issue_type: what type of problem is described
- severity: low, medium, high, critical (or "unknown" if not clearly stated)
- affected_system: the system or component affected

Infer values only when the text clearly implies them. Do NOT guess.
If a field is unclear, set it to "unknown".

Return JSON ONLY in this format:
{
  "issue_type": "",
  "severity": "",
  "affected_system": ""
}

TEXT:
%q`

// ExtractFields asks the extractor to structure a ticket description.
// Failures are recovered locally by substituting the all-unknown result, so
// the triage path always receives well-formed input and never sees an
// error from this call.
func (c *Client) ExtractFields(ctx context.Context, description string) Extraction {
	content, err := c.chat(ctx, fmt.Sprintf(extractPrompt, description))
	if err != nil {
		c.logger.Warn("extraction call failed, substituting unknown", zap.Error(err))
		c.metrics.RecordLLMCall("extract", "error")
		return UnknownExtraction()
	}

	raw, ok := extractJSON(content)
	if !ok {
		c.logger.Warn("extraction output has no JSON object", zap.String("content", truncate(content, 200)))
		c.metrics.RecordLLMCall("extract", "degraded")
		return UnknownExtraction()
	}
	var extraction Extraction
	if err := json.Unmarshal(raw, &extraction); err != nil {
		c.logger.Warn("extraction output unparseable", zap.Error(err))
		c.metrics.RecordLLMCall("extract", "degraded")
		return UnknownExtraction()
	}
	c.metrics.RecordLLMCall("extract", "ok")
	return extraction
}

const fixPrompt = `Generate a short practical fix for this issue.
Return ONLY the fix sentence. No JSON.

Issue:
%s`

// GenerateFix asks for a one-sentence remediation. Unlike extraction this
// surfaces errors: the caller only invokes it for tickets already decided
// as auto-resolvable and chooses how to degrade.
func (c *Client) GenerateFix(ctx context.Context, description string) (string, error) {
	fix, err := c.chat(ctx, fmt.Sprintf(fixPrompt, description))
	if err != nil {
		c.metrics.RecordLLMCall("fix", "error")
		return "", err
	}
	c.metrics.RecordLLMCall("fix", "ok")
	return fix, nil
}

const parseQueryPrompt = `Extract ONLY these two fields from the search query:

1. status: one of "open", "need_review", "closed"
2. severity: one of "low", "medium", "high", "critical"

RULES:
- If a field is not mentioned, return "none".
- Do NOT infer anything.
- Do NOT extract any other field.
- Return ONLY the following JSON:

{
  "status": "",
  "severity": ""
}

QUERY:
%q`

// ParseSearchQuery turns a natural-language search into the two supported
// facets. Malformed output maps to the unconstrained facets, never an
// error.
func (c *Client) ParseSearchQuery(ctx context.Context, query string) search.Facets {
	content, err := c.chat(ctx, fmt.Sprintf(parseQueryPrompt, query))
	if err != nil {
		c.logger.Warn("query parse call failed, searching unfiltered", zap.Error(err))
		c.metrics.RecordLLMCall("parse_query", "error")
		return search.Unconstrained()
	}

	raw, ok := extractJSON(content)
	if !ok {
		c.metrics.RecordLLMCall("parse_query", "degraded")
		return search.Unconstrained()
	}
	var facets search.Facets
	if err := json.Unmarshal(raw, &facets); err != nil {
		c.metrics.RecordLLMCall("parse_query", "degraded")
		return search.Unconstrained()
	}
	c.metrics.RecordLLMCall("parse_query", "ok")
	return facets.Normalize()
}

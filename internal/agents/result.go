package agents

import (
	"encoding/json"
	"strings"
	"time"

	"minerva/internal/adapters/ai"
)

// TaskOutput is the parsed result of one task. Exactly one of Structured or
// Raw is populated: Structured when the model returned a JSON object, Raw
// otherwise. Parsing happens once, at task completion.
type TaskOutput struct {
	Role       AnalysisRole           `json:"role"`
	Structured map[string]interface{} `json:"structured,omitempty"`
	Raw        string                 `json:"raw,omitempty"`
	Usage      ai.Usage               `json:"usage"`
	Duration   time.Duration          `json:"duration"`
}

// IsStructured reports whether the model output parsed as a JSON object.
func (o *TaskOutput) IsStructured() bool {
	return o.Structured != nil
}

// ParseContent classifies raw model text as structured JSON or free text.
// Markdown code fences around the payload are stripped before parsing.
func ParseContent(content string) (map[string]interface{}, string) {
	cleaned := stripCodeFence(content)

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &obj); err == nil {
		return obj, ""
	}

	return nil, content
}

// stripCodeFence removes a surrounding ```json ... ``` (or bare ```) fence.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		// Drop the language tag on the opening fence line.
		first := strings.TrimSpace(trimmed[:idx])
		if first == "" || !strings.ContainsAny(first, "{[") {
			trimmed = trimmed[idx+1:]
		}
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")

	return strings.TrimSpace(trimmed)
}

// AnalysisResult is the final product of a crew run. Error is set instead of
// the analysis fields when the run failed entirely; callers never see a
// panic or a raised error from Analyze.
type AnalysisResult struct {
	RunID       string                 `json:"run_id"`
	Ticker      string                 `json:"ticker"`
	Analysis    map[string]interface{} `json:"analysis,omitempty"`
	Tasks       []*TaskOutput          `json:"tasks,omitempty"`
	RiskMetrics map[string]interface{} `json:"risk_metrics,omitempty"`
	Usage       ai.Usage               `json:"usage"`
	GeneratedAt time.Time              `json:"generated_at"`
	Error       string                 `json:"error,omitempty"`
}

// finalAnalysis shapes the terminal task output for the result. Structured
// output passes through; free text is wrapped so downstream consumers always
// get a map.
func finalAnalysis(out *TaskOutput, generatedAt time.Time) map[string]interface{} {
	if out == nil {
		return nil
	}
	if out.IsStructured() {
		return out.Structured
	}

	return map[string]interface{}{
		"raw_analysis": out.Raw,
		"generated_at": generatedAt.UTC().Format(time.RFC3339),
	}
}

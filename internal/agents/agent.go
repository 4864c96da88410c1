package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"minerva/internal/adapters/ai"
	"minerva/internal/metrics"
	"minerva/internal/tools"
	"minerva/pkg/errors"
	"minerva/pkg/logger"
)

// Agent executes one role's task: it gathers data from the role's permitted
// tools, assembles the prompt, calls the model with retry on transient
// connectivity failures, and parses the response. Every lifecycle stage is
// published to the progress channel.
type Agent struct {
	config   RoleConfig
	client   ai.ChatClient
	registry *tools.Registry
	progress *ProgressChannel
	retry    RetryPolicy
	recorder *metrics.Recorder
	log      *logger.Logger

	model       string
	temperature float64
	maxTokens   int
}

// AgentParams carries the shared wiring a crew hands to each of its agents.
type AgentParams struct {
	Client      ai.ChatClient
	Registry    *tools.Registry
	Progress    *ProgressChannel
	Retry       RetryPolicy
	Recorder    *metrics.Recorder
	Logger      *logger.Logger
	Model       string
	Temperature float64
	MaxTokens   int
}

// NewAgent constructs an agent for one role.
func NewAgent(config RoleConfig, params AgentParams) *Agent {
	log := params.Logger
	if log == nil {
		log = logger.Get()
	}

	return &Agent{
		config:      config,
		client:      params.Client,
		registry:    params.Registry,
		progress:    params.Progress,
		retry:       params.Retry,
		recorder:    params.Recorder,
		log:         log.With("component", "agent", "role", config.Role.String()),
		model:       params.Model,
		temperature: params.Temperature,
		maxTokens:   params.MaxTokens,
	}
}

// Execute runs the task end to end. It returns an error only when the model
// call itself fails after retries; tool failures degrade into error payloads
// inside the prompt and never abort the task.
func (a *Agent) Execute(ctx context.Context, task *Task) (*TaskOutput, error) {
	started := time.Now()

	a.progress.Publish(ProgressEvent{
		Role:    a.config.Role,
		Message: fmt.Sprintf("Starting task: %s", firstLine(task.Description)),
		Status:  StatusStart,
	})

	toolData := a.gatherToolData(ctx, task.Ticker)

	a.progress.Publish(ProgressEvent{
		Role:    a.config.Role,
		Message: "Analyzing data...",
		Status:  StatusProgress,
	})

	req := ai.ChatRequest{
		Model:       a.model,
		Messages:    a.buildMessages(task, toolData),
		Temperature: a.temperature,
		MaxTokens:   a.maxTokens,
	}

	policy := a.retry
	policy.OnRetry = func(attempt int, err error) {
		a.log.Warnw("model call failed, retrying", "attempt", attempt, "error", err)
		a.recorder.ModelRetry(a.config.Role.String())
		a.progress.Publish(ProgressEvent{
			Role:    a.config.Role,
			Message: fmt.Sprintf("Model call failed (attempt %d), retrying: %v", attempt, err),
			Status:  StatusProgress,
		})
	}

	var resp *ai.ChatResponse
	err := policy.Do(ctx, func(ctx context.Context) error {
		var callErr error
		resp, callErr = a.client.Chat(ctx, req)
		return callErr
	})
	if err != nil {
		a.progress.Publish(ProgressEvent{
			Role:    a.config.Role,
			Message: fmt.Sprintf("Task failed: %v", err),
			Status:  StatusProgress,
		})
		return nil, errors.Wrapf(err, "agent %s", a.config.Role)
	}

	structured, raw := ParseContent(resp.Content)
	output := &TaskOutput{
		Role:       a.config.Role,
		Structured: structured,
		Raw:        raw,
		Usage:      resp.Usage,
		Duration:   time.Since(started),
	}

	a.recorder.TaskExecuted(a.config.Role.String(), output.Duration)
	a.recorder.TokensUsed(resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	a.log.Infow("task completed",
		"duration", output.Duration,
		"structured", output.IsStructured(),
		"tokens", resp.Usage.TotalTokens,
	)

	a.progress.Publish(ProgressEvent{
		Role:    a.config.Role,
		Message: "Task completed",
		Status:  StatusComplete,
		Result:  completionResult(output),
	})

	return output, nil
}

// gatherToolData executes each permitted tool and keys the payloads by tool
// name. Failures are folded into error payloads so the model still sees what
// went wrong.
func (a *Agent) gatherToolData(ctx context.Context, ticker string) map[string]interface{} {
	if a.registry == nil || len(a.config.Tools) == 0 {
		return nil
	}

	data := make(map[string]interface{}, len(a.config.Tools))
	for _, name := range a.config.Tools {
		tool, ok := a.registry.Get(name)
		if !ok {
			data[name] = map[string]interface{}{"error": fmt.Sprintf("tool %s is not available", name)}
			continue
		}

		payload, err := tool.Execute(ctx, toolArgs(name, ticker))
		if err != nil {
			a.log.Warnw("tool execution failed", "tool", name, "error", err)
			data[name] = map[string]interface{}{"error": err.Error()}
			continue
		}
		data[name] = payload
	}

	return data
}

// toolArgs maps a tool name to its invocation arguments for a ticker.
func toolArgs(name, ticker string) map[string]interface{} {
	if name == tools.ToolSearch {
		return map[string]interface{}{
			"query": fmt.Sprintf("%s stock market news and analysis", ticker),
		}
	}
	return map[string]interface{}{"ticker": ticker}
}

// buildMessages assembles the system and user prompts for the model call.
func (a *Agent) buildMessages(task *Task, toolData map[string]interface{}) []ai.Message {
	system := fmt.Sprintf("You are %s.\nGoal: %s\n%s", a.config.Name, a.config.Goal, a.config.Backstory)

	var user strings.Builder
	if task.Context != "" {
		user.WriteString("Previous analysis:\n")
		user.WriteString(task.Context)
		user.WriteString("\n\n")
	}
	user.WriteString(task.Description)

	if len(toolData) > 0 {
		user.WriteString("\n\nTool data:\n")
		if encoded, err := json.MarshalIndent(toolData, "", "  "); err == nil {
			user.Write(encoded)
		}
	}

	return []ai.Message{
		{Role: ai.RoleSystem, Content: system},
		{Role: ai.RoleUser, Content: user.String()},
	}
}

// completionResult shapes a task output for its completion event.
func completionResult(out *TaskOutput) map[string]interface{} {
	if out.IsStructured() {
		return out.Structured
	}
	return map[string]interface{}{"raw": out.Raw}
}

// firstLine truncates a task description to its first line for event text.
func firstLine(s string) string {
	if idx := strings.Index(s, "\n"); idx >= 0 {
		return s[:idx]
	}
	return s
}

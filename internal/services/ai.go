package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"taskboard/internal/models"
)

type AIService struct {
	client *openai.Client
}

// TaskSuggestion is a best-effort description/priority pair for a task.
type TaskSuggestion struct {
	Description string
	Priority    string
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// Suggest asks the model for a description and priority for a task.
// The reply is free text; parsing is tolerant and falls back to
// defaults rather than failing.
func (s *AIService) Suggest(ctx context.Context, title, description string) (*TaskSuggestion, error) {
	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4oMini,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: buildSuggestionPrompt(title, description),
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from openai")
	}

	return parseSuggestion(resp.Choices[0].Message.Content, title), nil
}

func buildSuggestionPrompt(title, description string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Suggest an improved description and a priority for this task.\n\nTitle: %s\n", title)
	if description != "" {
		fmt.Fprintf(&b, "Current description: %s\n", description)
	}
	b.WriteString("\nReply with exactly two lines:\nDescription: <one sentence>\nPriority: <high, medium or low>")
	return b.String()
}

// parseSuggestion scans the reply for "Description:" and "Priority:"
// lines (case-insensitive). Anything unusable keeps the default.
func parseSuggestion(content, title string) *TaskSuggestion {
	suggestion := &TaskSuggestion{
		Description: fmt.Sprintf("Complete the task: %s", title),
		Priority:    models.PriorityMedium,
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "description:"):
			if value := strings.TrimSpace(line[len("description:"):]); value != "" {
				suggestion.Description = value
			}
		case strings.HasPrefix(lower, "priority:"):
			value := strings.ToLower(strings.TrimSpace(line[len("priority:"):]))
			switch value {
			case models.PriorityHigh, models.PriorityMedium, models.PriorityLow:
				suggestion.Priority = value
			}
		}
	}

	return suggestion
}

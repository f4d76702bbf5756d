// Package ai provides an advisory plausibility check of submitted bills.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/Aurelio-One/p9/internal/domain/bill"
)

// AuditResult is the advisory outcome for one bill.
type AuditResult struct {
	Decision   string   `json:"decision"` // plausible, suspicious
	Confidence float64  `json:"confidence"`
	Reasons    []string `json:"reasons"`
}

// Auditor checks whether a bill's amount is plausible for its expense type
// and commentary. Results are advisory and never block persistence.
type Auditor struct {
	client      *openai.Client
	model       string
	temperature float32
	logger      *zap.Logger
}

// NewAuditor creates a new Auditor.
func NewAuditor(apiKey, model string, temperature float32, logger *zap.Logger) *Auditor {
	return &Auditor{
		client:      openai.NewClient(apiKey),
		model:       model,
		temperature: temperature,
		logger:      logger,
	}
}

// AuditBill evaluates one bill.
func (a *Auditor) AuditBill(ctx context.Context, b bill.Bill) (*AuditResult, error) {
	a.logger.Debug("Auditing bill",
		zap.String("bill_id", b.ID),
		zap.String("type", b.Type),
		zap.Float64("amount", b.Amount))

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: a.temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You review employee expense bills. Judge whether the amount is plausible for the expense type and commentary. Always respond with valid JSON.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: a.buildPrompt(b),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		a.logger.Error("OpenAI API call failed", zap.Error(err))
		return nil, fmt.Errorf("OpenAI API call failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	var result AuditResult
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &result); err != nil {
		a.logger.Error("Failed to parse audit response",
			zap.Error(err),
			zap.String("content", resp.Choices[0].Message.Content))
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &result, nil
}

func (a *Auditor) buildPrompt(b bill.Bill) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Expense type: %s\n", b.Type)
	fmt.Fprintf(&sb, "Name: %s\n", b.Name)
	fmt.Fprintf(&sb, "Date: %s\n", b.Date)
	fmt.Fprintf(&sb, "Amount: %.2f EUR (VAT %s, pct %d)\n", b.Amount, b.VAT, b.Pct)
	fmt.Fprintf(&sb, "Commentary: %s\n", b.Commentary)
	sb.WriteString(`Respond with JSON: {"decision": "plausible"|"suspicious", "confidence": 0.0-1.0, "reasons": ["..."]}`)
	return sb.String()
}

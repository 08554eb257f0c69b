package ai

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/afyasync/afyasync/backend/internal/config"
	"github.com/afyasync/afyasync/backend/internal/model/chat"
	"github.com/afyasync/afyasync/backend/internal/model/profile"
	"github.com/afyasync/afyasync/backend/internal/service/conversation"
)

// Service generates companion replies and affirmations through the
// configured chat model.
type Service struct {
	chatModel model.ChatModel
	cfg       config.AIConfig
	chain     compose.Runnable[map[string]any, *schema.Message]
}

// NewService builds the responder on top of an Ark chat model.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{
		chatModel: chatModel,
		cfg:       cfg,
		chain:     runnable,
	}, nil
}

// Respond generates the companion reply for one user turn. The reply may
// end with the crisis marker per the safety protocol in the system prompt;
// stripping and acting on it is the caller's concern.
func (s *Service) Respond(ctx context.Context, message, language string, history []conversation.HistoryTurn, hints *profile.Hints) (string, error) {
	input := map[string]any{
		"system":  BuildSystemPrompt(language, hints),
		"history": buildHistoryMessages(history),
		"query":   message,
	}

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to run chat chain: %w", err)
	}

	log.Printf("[ai] generated response, language=%s, length=%d", language, len(response.Content))
	return response.Content, nil
}

func buildHistoryMessages(history []conversation.HistoryTurn) []*schema.Message {
	if len(history) == 0 {
		return nil
	}

	messages := make([]*schema.Message, 0, len(history))
	for _, turn := range history {
		switch turn.Role {
		case chat.RoleUser:
			messages = append(messages, schema.UserMessage(turn.Content))
		case chat.RoleAssistant:
			messages = append(messages, schema.AssistantMessage(turn.Content, nil))
		}
	}

	return messages
}

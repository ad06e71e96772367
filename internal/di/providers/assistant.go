package providers

import (
	"github.com/samber/do/v2"

	"github.com/librasys/librasys-server/internal/assistant"
	"github.com/librasys/librasys-server/internal/config"
	"github.com/librasys/librasys-server/internal/logger"
)

// AssistantClientHandle wraps the optional generative-language client.
// Client is nil when no API key is configured; the assistant service
// then answers with its fixed "not configured" reply.
type AssistantClientHandle struct {
	Client assistant.Client
}

// ProvideAssistantClient provides the Gemini client when configured.
func ProvideAssistantClient(i do.Injector) (*AssistantClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.Assistant.Enabled() {
		log.Info("Assistant disabled: no API key configured")
		return &AssistantClientHandle{}, nil
	}

	client := assistant.NewGeminiClient(
		cfg.Assistant.APIKey,
		cfg.Assistant.Model,
		cfg.Assistant.BaseURL,
		log.Logger,
	)

	log.Info("Assistant client ready", "model", cfg.Assistant.Model)

	return &AssistantClientHandle{Client: client}, nil
}

package bootstrap

import (
	"context"
	"time"

	"github.com/iqbaldf/chatline/internal/config"
	"github.com/iqbaldf/chatline/internal/provider"
	"github.com/iqbaldf/chatline/internal/service"
	"github.com/iqbaldf/chatline/internal/store"
)

// ServiceContext holds all service dependencies
type ServiceContext struct {
	Config config.Config

	// Conversation persistence
	Store store.ConversationStore

	// Attachment payload offload, nil when object storage is not configured
	Attachments *store.AttachmentStore

	// Provider adapters keyed by model id
	Registry *provider.Registry

	// Services
	MetricsService service.MetricsInterface
}

// NewServiceContext creates a new service context with all dependencies
func NewServiceContext(c config.Config) *ServiceContext {
	timeout := time.Duration(c.Chat.RequestTimeoutSec) * time.Second

	// Gemini is the primary provider: unknown model ids and fallback retries
	// land here
	registry := provider.NewRegistry(provider.NewGeminiAdapter(c.Providers.Gemini, timeout))
	registry.Register(provider.NewClaudeAdapter(c.Providers.Claude, timeout))
	registry.Register(provider.NewGLMAdapter(c.Providers.GLM, timeout))

	var conversationStore store.ConversationStore
	switch c.Storage.Backend {
	case "redis":
		conversationStore = store.NewRedisStore(c.Storage.Redis)
	default:
		conversationStore = store.NewMemoryStore()
	}

	var attachments *store.AttachmentStore
	if c.Storage.Minio.Endpoint != "" {
		as, err := store.NewAttachmentStore(context.Background(), c.Storage.Minio)
		if err != nil {
			panic("Failed to initialize attachment store: " + err.Error())
		}
		attachments = as
	}

	return &ServiceContext{
		Config:         c,
		Store:          conversationStore,
		Attachments:    attachments,
		Registry:       registry,
		MetricsService: service.NewMetricsService(),
	}
}

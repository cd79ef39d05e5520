package chat_fx

import (
	"log"
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"chatgate/internal/api/controllers"
	"chatgate/internal/repositories"
	"chatgate/internal/services"
	mem "chatgate/pkg/memcache"
	"chatgate/pkg/utils"
)

var Module = fx.Provide(
	provideChatHistoryRepo,
	provideCompletionClient,
	provideQuotaService,
	provideChatService,
	controllers.NewChatController)

func provideChatHistoryRepo(db *gorm.DB) repositories.IChatHistoryRepository {
	return repositories.NewChatHistoryRepository(db)
}

// provideCompletionClient picks the provider from AI_PROVIDER. OpenAI is the
// default; set AI_PROVIDER=gemini to use Google's models instead.
func provideCompletionClient() utils.CompletionClientInterface {
	if os.Getenv("AI_PROVIDER") == "gemini" {
		client, err := utils.NewGeminiCompletionClient(os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"))
		if err != nil {
			log.Fatalf("Failed to init Gemini client: %v", err)
		}
		return client
	}
	return utils.NewOpenAICompletionClient(os.Getenv("OPENAI_API_KEY"), os.Getenv("OPENAI_BASE_URL"))
}

func provideQuotaService(subRepo repositories.ISubscriptionRepository, locks *mem.AccountLocks) services.QuotaServiceInterface {
	return services.NewQuotaService(subRepo, locks)
}

func provideChatService(
	quotaService services.QuotaServiceInterface,
	subRepo repositories.ISubscriptionRepository,
	historyRepo repositories.IChatHistoryRepository,
	completion utils.CompletionClientInterface,
	locks *mem.AccountLocks,
) services.ChatServiceInterface {
	return services.NewChatService(quotaService, subRepo, historyRepo, completion, locks)
}

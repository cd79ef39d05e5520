package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"chatgate/internal/api/controllers"
	"chatgate/internal/repositories"
	"chatgate/internal/services"
)

var Module = fx.Provide(
	provideAccountRepo, provideAccountService, controllers.NewAccountController)

func provideAccountRepo(db *gorm.DB) repositories.IAccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideAccountService(
	accountRepo repositories.IAccountRepository,
	subRepo repositories.ISubscriptionRepository,
	historyRepo repositories.IChatHistoryRepository,
) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, subRepo, historyRepo)
}

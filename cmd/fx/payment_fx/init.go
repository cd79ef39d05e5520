package payment_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"chatgate/internal/api/controllers"
	"chatgate/internal/catalog"
	"chatgate/internal/repositories"
	"chatgate/internal/services"
	mem "chatgate/pkg/memcache"
)

var Module = fx.Provide(
	provideSubscriptionRepo,
	providePaymentService,
	providePlanService,
	controllers.NewPaymentController)

func provideSubscriptionRepo(db *gorm.DB) repositories.ISubscriptionRepository {
	return repositories.NewSubscriptionRepository(db)
}

func providePaymentService(subRepo repositories.ISubscriptionRepository, plans *catalog.Catalog, locks *mem.AccountLocks) services.PaymentServiceInterface {
	return services.NewPaymentService(subRepo, plans, locks)
}

func providePlanService(plans *catalog.Catalog) services.PlanServiceInterface {
	return services.NewPlanService(plans)
}

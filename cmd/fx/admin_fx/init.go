package admin_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"chatgate/internal/api/controllers"
	"chatgate/internal/catalog"
	"chatgate/internal/repositories"
	"chatgate/internal/services"
)

var Module = fx.Provide(
	provideAnalyticsRepo,
	provideAnalyticsService,
	controllers.NewAdminController,
	controllers.NewHealthController)

func provideAnalyticsRepo(db *gorm.DB) repositories.IAnalyticsRepository {
	return repositories.NewAnalyticsRepository(db)
}

func provideAnalyticsService(repo repositories.IAnalyticsRepository, plans *catalog.Catalog) services.AnalyticsServiceInterface {
	return services.NewAnalyticsService(repo, plans)
}

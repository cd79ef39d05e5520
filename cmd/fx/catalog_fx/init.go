package catalog_fx

import (
	"go.uber.org/fx"

	"chatgate/internal/catalog"
)

var Module = fx.Provide(provideCatalog)

func provideCatalog() *catalog.Catalog {
	return catalog.Default()
}

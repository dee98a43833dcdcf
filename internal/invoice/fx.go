package invoice

import (
	"github.com/smallbiznis/invoiceboard/internal/invoice/repository"
	"github.com/smallbiznis/invoiceboard/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewQueryService),
	fx.Provide(service.NewMutationService),
)

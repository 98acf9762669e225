package cmd

import (
	"log/slog"

	"mealmarket/internal/adapters/out/notify"
	"mealmarket/internal/adapters/out/postgres"
	"mealmarket/internal/adapters/out/postgres/georepo"
	"mealmarket/internal/core/application/usecases/commands"
	"mealmarket/internal/core/application/usecases/queries"
	"mealmarket/internal/core/ports"
	"mealmarket/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	dispatcher *notify.ChannelDispatcher
	logger     *slog.Logger
	config     Config
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	sink ports.NotificationSink,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		dispatcher: notify.NewChannelDispatcher(sink, logger, config.NotificationQueueSize),
		logger:     logger,
		config:     config,
	}
}

// Dispatcher returns the notification dispatcher for lifecycle control.
func (c *CompositionRoot) Dispatcher() *notify.ChannelDispatcher {
	return c.dispatcher
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceOrderCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateApproveSubscriptionRequestCommandHandler() commands.ApproveSubscriptionRequestCommandHandler {
	var f commands.SubscriptionUoWFactory = FuncSubscriptionUoWFactory(func() commands.SubscriptionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApproveSubscriptionRequestCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateRejectSubscriptionRequestCommandHandler() commands.RejectSubscriptionRequestCommandHandler {
	var f commands.SubscriptionUoWFactory = FuncSubscriptionUoWFactory(func() commands.SubscriptionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRejectSubscriptionRequestCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateExpireSubscriptionRequestsCommandHandler() commands.ExpireSubscriptionRequestsCommandHandler {
	var f commands.SubscriptionUoWFactory = FuncSubscriptionUoWFactory(func() commands.SubscriptionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewExpireSubscriptionRequestsCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateQuoteDeliveryQueryHandler() queries.QuoteDeliveryQueryHandler {
	return queries.NewQuoteDeliveryQueryHandler(georepo.NewGormCoordinateResolver(c.gormDB))
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateExpireSubscriptionRequestsCommandHandler(),
		c.config.RequestMaxAge,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncSubscriptionUoWFactory func() commands.SubscriptionUoW

func (f FuncSubscriptionUoWFactory) Create() commands.SubscriptionUoW {
	return f()
}

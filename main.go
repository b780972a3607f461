package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/middleware"

	"github.com/appetiteclub/kitchenboard/internal/board"
	"github.com/appetiteclub/kitchenboard/internal/events"
	"github.com/appetiteclub/kitchenboard/pkg"
)

const (
	appNamespace = "KITCHENBOARD"
	appName      = "kitchenboard"
	appVersion   = "0.1.0"
)

func main() {
	config, err := apt.LoadConfig(appNamespace, os.Args[1:])
	if err != nil {
		log.Fatalf("Cannot setup %s(%s): %v", appName, appVersion, err)
	}

	logLevel, _ := config.GetString("log.level")
	logger := apt.NewLogger(logLevel)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	orderURL, _ := config.GetString("services.order.url")
	if orderURL == "" {
		orderURL = "http://localhost:8084"
	}
	orderClient := apt.NewServiceClient(orderURL)
	orderDA := board.NewOrderDataAccess(orderClient)

	store := board.NewOrderStore(orderDA, logger)
	pageSizeStr, _ := config.GetString("board.page_size")
	if pageSize, err := strconv.Atoi(pageSizeStr); err == nil {
		store.SetPageSize(pageSize)
	}

	coordinatorOpts := []board.CoordinatorOption{}
	if strict, _ := config.GetString("board.strict_item_edits"); strict == "true" {
		coordinatorOpts = append(coordinatorOpts, board.WithUnknownItemPolicy(board.RejectUnknownEdits))
	}

	natsURL, _ := config.GetString("nats.url")
	var lifecycles []interface{}
	if natsURL != "" {
		publisher, err := pkg.NewNATSPublisher(natsURL)
		if err != nil {
			log.Fatalf("Cannot connect to NATS publisher: %v", err)
		}
		coordinatorOpts = append(coordinatorOpts, board.WithPublisher(publisher))

		subscriber, err := pkg.NewNATSSubscriber(natsURL)
		if err != nil {
			log.Fatalf("Cannot connect to NATS subscriber: %v", err)
		}
		lifecycles = append(lifecycles, events.NewOrderEventSubscriber(subscriber, store, logger))
	} else {
		logger.Info("NATS not configured, board refreshes on mutation only")
	}

	coordinator := board.NewCoordinator(orderDA, store, logger, coordinatorOpts...)

	handler := board.NewHandler(store, coordinator, config, logger)

	if err := store.Warm(ctx); err != nil {
		logger.Errorf("cannot warm order store: %v", err)
	}

	stack := middleware.DefaultStack(middleware.StackOptions{
		Logger:      logger,
		DisableCORS: false,
	})

	options := []apt.Option{
		apt.WithConfig(config),
		apt.WithLogger(logger),
		apt.WithHTTPMiddleware(stack...),
		apt.WithHTTPServerModules("web.port", handler),
		apt.WithLifecycle(lifecycles...),
		apt.WithHealthChecks(appName),
	}

	ms := apt.NewMicro(options...)
	logger.Infof("Starting %s(%s)", appName, appVersion)

	if err := ms.Run(ctx); err != nil {
		log.Fatalf("%s(%s) stopped: %v", appName, appVersion, err)
	}

	logger.Infof("%s(%s) stopped", appName, appVersion)
}

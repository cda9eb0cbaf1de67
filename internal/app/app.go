package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/trustedwear/storefront/config"
	"github.com/trustedwear/storefront/internal/adapter/catalog"
	"github.com/trustedwear/storefront/internal/adapter/httphandler"
	"github.com/trustedwear/storefront/internal/adapter/kafka"
	"github.com/trustedwear/storefront/internal/adapter/storage"
	"github.com/trustedwear/storefront/internal/core/service"
	"github.com/trustedwear/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type App struct {
	ctx        context.Context
	cfg        config.Config
	eventSerde schema.Serde
	kv         storage.KV
	sqldb      *storage.SQLDB
	catalog    *catalog.Catalog
	producer   kafka.ClientEventsProducer
	processor  *kafka.TrendingProcessor
	view       *kafka.TrendingView
	store      *service.Store
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initCatalog()
	app.initSerde()
	app.initOutboundAdapters()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initCatalog() {
	const op = "App.initCatalog"

	c, err := catalog.Load()
	if err != nil {
		app.fallDown(op, err)
	}
	app.catalog = c
}

func (app *App) initSerde() {
	const op = "App.initSerde"

	srClient, err := sr.NewClient(sr.URLs(app.cfg.Broker.SchemaRegistryURLs...))
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	subject := app.cfg.Broker.ClientEventsTopic + "-value"
	eventSerde, err := schema.NewSerdeClientEventV1(
		app.ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.eventSerde = eventSerde
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	kv, err := storage.OpenKV(app.cfg.SessionDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.kv = kv

	if dsn := app.cfg.OrdersDB; dsn != "" {
		sqldb, err := storage.NewSQLDB(app.ctx, dsn)
		if err != nil {
			app.fallDown(op, err)
		}
		app.sqldb = &sqldb
	}

	seedBrokers := app.cfg.Broker.SeedBrokers
	topic := app.cfg.Broker.ClientEventsTopic

	producer, err := kafka.NewClientEventsProducer(
		kafka.ProducerClientOpt(app.ctx, seedBrokers, topic),
		kafka.ProducerEncoderOpt(app.eventSerde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.producer = producer

	processor, err := kafka.NewTrendingProc(
		seedBrokers, topic, app.cfg.Broker.TrendingGroup, app.eventSerde,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.processor = processor

	view, err := kafka.NewTrendingView(seedBrokers, app.cfg.Broker.TrendingGroup)
	if err != nil {
		app.fallDown(op, err)
	}
	app.view = view
}

func (app *App) initCoreService() {
	session := storage.NewSessionRepository(app.kv)

	var orders *storage.OrdersRepository
	if app.sqldb != nil {
		r := storage.NewOrdersRepository(app.sqldb)
		orders = &r
	}

	if orders != nil {
		app.store = service.New(session, app.catalog, app.producer, *orders)
	} else {
		app.store = service.New(session, app.catalog, app.producer, nil)
	}
	app.store.Restore(app.ctx)
}

func (app *App) initInboundAdapters() {
	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, app.catalog)
	httphandler.RegisterCart(mux, app.store, app.catalog)
	httphandler.RegisterAuth(mux, app.store)
	httphandler.RegisterOrders(mux, app.store)
	httphandler.RegisterTrending(mux, app.view, app.catalog)

	handler := httphandler.LogRequests(httphandler.AllowJSON(mux))
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

// Run starts the http server, the trending processor and the trending view.
// Blocks until the processor reports ready.
func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)
	go app.view.Run(app.ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go app.processor.Run(app.ctx, stopFn, &wg)
	wg.Wait()

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.processor.Close()
	app.producer.Close()
	app.kv.Close()
	if app.sqldb != nil {
		app.sqldb.Close()
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}

package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/dsmarket/product-service/config"
	"github.com/dsmarket/product-service/internal/adapter/httphandler"
	"github.com/dsmarket/product-service/internal/adapter/kafka"
	"github.com/dsmarket/product-service/internal/adapter/objectstore"
	"github.com/dsmarket/product-service/internal/adapter/storage"
	"github.com/dsmarket/product-service/internal/adapter/token"
	"github.com/dsmarket/product-service/internal/core/domain"
	"github.com/dsmarket/product-service/internal/core/service"
	"github.com/dsmarket/product-service/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type App struct {
	ctx        context.Context
	cfg        config.Config
	sqldb      storage.SQLDB
	producer   kafka.StockEventsProducer
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initStorage()
	app.initProducer()
	app.initHTTPServer()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	sqldb, err := storage.NewSQLDB(app.ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.sqldb = sqldb
}

func (app *App) initProducer() {
	const op = "App.initProducer"

	cfg := app.cfg.Broker

	srClient, err := sr.NewClient(sr.URLs(cfg.SchemaRegistryURLs...))
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	serde, err := schema.NewSerdeStockEventV1(
		app.ctx,
		schema.SubjectOpt(cfg.StockEventsTopic+"-value"),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	producer, err := kafka.NewStockEventsProducer(
		kafka.ProducerClientOpt(app.ctx, cfg.SeedBrokers, cfg.StockEventsTopic),
		kafka.ProducerEncoderOpt(serde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.producer = producer
}

func (app *App) initHTTPServer() {
	const op = "App.initHTTPServer"

	files, err := objectstore.NewS3Storage(
		app.ctx,
		app.cfg.ObjectStorage.Endpoint,
		app.cfg.ObjectStorage.AccessKey,
		app.cfg.ObjectStorage.SecretKey,
		app.cfg.ObjectStorage.Bucket,
		app.cfg.ObjectStorage.BaseURL,
		app.cfg.ObjectStorage.UseSSL,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	products := storage.NewProductsRepository(app.sqldb)
	categories := storage.NewCategoriesRepository(app.sqldb)

	catalog := service.NewCatalogService(products)
	reservations := service.NewReservationService(products, app.producer)
	categoryManager := service.NewCategoryService(categories)

	validator := token.NewJWTValidator(app.cfg.Auth.TokenSecret)
	sellerOnly := httphandler.RequireRole(
		validator, domain.RoleAdmin, domain.RoleSeller,
	)

	mux := http.NewServeMux()
	httphandler.RegisterHealth(mux)
	httphandler.RegisterProducts(mux, catalog, files, sellerOnly)
	httphandler.RegisterReservations(mux, reservations)
	httphandler.RegisterCategories(mux, categoryManager, sellerOnly)

	handler := httphandler.Recover(httphandler.AllowJSON(mux))
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.producer.Close()
	app.sqldb.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}

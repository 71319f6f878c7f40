package internal

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inbackru/v35-sub000/internal/adapters/cache"
	"github.com/inbackru/v35-sub000/internal/adapters/feedfetcher"
	postgres_adapter "github.com/inbackru/v35-sub000/internal/adapters/postgres"
	rabbitmq_adapter "github.com/inbackru/v35-sub000/internal/adapters/rabbitmq"
	sheets_adapter "github.com/inbackru/v35-sub000/internal/adapters/sheets"
	"github.com/inbackru/v35-sub000/internal/configs"
	"github.com/inbackru/v35-sub000/internal/constants"
	"github.com/inbackru/v35-sub000/internal/core/domain"
	"github.com/inbackru/v35-sub000/internal/core/port"
	"github.com/inbackru/v35-sub000/internal/core/usecase"
	"github.com/inbackru/v35-sub000/pkg/postgres"
	"github.com/inbackru/v35-sub000/pkg/rabbitmq/rabbitmq_common"
	"github.com/inbackru/v35-sub000/pkg/rabbitmq/rabbitmq_consumer"
	"github.com/inbackru/v35-sub000/pkg/rabbitmq/rabbitmq_producer"
)

// App – структура приложения
type App struct {
	config        *configs.AppConfig
	dbPool        *pgxpool.Pool
	eventProducer *rabbitmq_producer.Publisher

	// Сценарий, который приложение запускает само
	fetchFeedUseCase *usecase.FetchFeedUseCase
	feedSpec         domain.FeedSpec

	// Сценарий каталога; доступен и через одноразовый режим запроса
	catalogUseCase *usecase.CatalogQueryUseCase

	// Входящие порты (слушатели событий)
	importListener port.EventListenerPort
}

// NewApp создает новый экземпляр приложения.
// Это "Composition Root", где все зависимости создаются и связываются.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	catalogConfig, err := configs.LoadCatalogConfig(appConfig.Catalog.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("error loading catalog configuration: %w", err)
	}

	// 1. Низкоуровневые зависимости
	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: appConfig.Database.URL})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	log.Println("Successfully connected to PostgreSQL pool!")

	producerCfg := rabbitmq_producer.PublisherConfig{
		Config:                   rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
		ExchangeName:             constants.ExchangeName,
		ExchangeType:             "direct",
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
	}
	eventProducer, err := rabbitmq_producer.NewPublisher(producerCfg)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create event producer: %w", err)
	}
	log.Println("RabbitMQ Event Producer initialized.")

	// 2. Исходящие адаптеры
	feedFetcher, feedSpec, err := buildFeedSource(appConfig)
	if err != nil {
		eventProducer.Close()
		dbPool.Close()
		return nil, err
	}

	importQueueAdapter, err := rabbitmq_adapter.NewImportQueueAdapter(eventProducer, constants.RoutingKeyListingImport)
	if err != nil {
		eventProducer.Close()
		dbPool.Close()
		return nil, fmt.Errorf("failed to create import queue adapter: %w", err)
	}
	lastImportRepo, err := postgres_adapter.NewLastImportRepository(dbPool)
	if err != nil {
		eventProducer.Close()
		dbPool.Close()
		return nil, fmt.Errorf("failed to create last import repository: %w", err)
	}
	listingSource, err := postgres_adapter.NewListingSourceAdapter(dbPool)
	if err != nil {
		eventProducer.Close()
		dbPool.Close()
		return nil, fmt.Errorf("failed to create listing source adapter: %w", err)
	}
	rateProvider, err := postgres_adapter.NewRateProviderAdapter(dbPool)
	if err != nil {
		eventProducer.Close()
		dbPool.Close()
		return nil, fmt.Errorf("failed to create rate provider adapter: %w", err)
	}
	listingStorage, err := postgres_adapter.NewListingStorageAdapter(dbPool)
	if err != nil {
		eventProducer.Close()
		dbPool.Close()
		return nil, fmt.Errorf("failed to create listing storage adapter: %w", err)
	}

	// Рабочий набор каталога живет под TTL-снапшотом; ядро каталога
	// про кеш не знает.
	cachedSource := cache.NewSnapshotSource(listingSource, appConfig.Catalog.SnapshotTTL, nil)
	log.Println("All outgoing adapters initialized.")

	// 3. Use cases
	fetchFeedUseCase := usecase.NewFetchFeedUseCase(feedFetcher, importQueueAdapter, lastImportRepo)
	importUseCase := usecase.NewImportListingUseCase(listingStorage)
	catalogUseCase := usecase.NewCatalogQueryUseCase(cachedSource, rateProvider, catalogConfig.Cashback.Config, catalogConfig.Policy())
	log.Println("All use cases initialized.")

	// 4. Входящие адаптеры
	importConsumerCfg := rabbitmq_consumer.ConsumerConfig{
		Config:              rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
		QueueName:           constants.QueueListingImport,
		RoutingKeyForBind:   constants.RoutingKeyListingImport,
		ExchangeNameForBind: constants.ExchangeName,
		PrefetchCount:       5,
		DurableQueue:        true,
		ConsumerTag:         "listing-import-adapter",
		DeclareQueue:        true,
	}
	importListener, err := rabbitmq_adapter.NewImportConsumerAdapter(importConsumerCfg, importUseCase)
	if err != nil {
		eventProducer.Close()
		dbPool.Close()
		return nil, err
	}
	log.Println("Import Events Listener initialized.")

	return &App{
		config:           appConfig,
		dbPool:           dbPool,
		eventProducer:    eventProducer,
		fetchFeedUseCase: fetchFeedUseCase,
		feedSpec:         feedSpec,
		catalogUseCase:   catalogUseCase,
		importListener:   importListener,
	}, nil
}

// buildFeedSource выбирает реализацию фида по конфигурации.
func buildFeedSource(cfg *configs.AppConfig) (port.FeedFetcherPort, domain.FeedSpec, error) {
	spec := domain.FeedSpec{Name: cfg.Feed.Name}

	switch cfg.Feed.Mode {
	case constants.FeedModeSheets:
		reader, err := sheets_adapter.NewFeedReader(context.Background(), cfg.Feed.CredentialsPath)
		if err != nil {
			return nil, spec, fmt.Errorf("failed to create sheets feed reader: %w", err)
		}
		spec.SpreadsheetID = cfg.Feed.SpreadsheetID
		spec.ReadRange = cfg.Feed.ReadRange
		return reader, spec, nil
	default:
		spec.URL = cfg.Feed.URL
		domainName, err := allowedDomainOf(cfg.Feed.URL)
		if err != nil {
			return nil, spec, err
		}
		return feedfetcher.NewFeedFetcherAdapter(domainName, 2*time.Second), spec, nil
	}
}

// NewQueryApp собирает урезанное приложение для одноразового запроса
// каталога: только PostgreSQL и сценарий каталога, без очередей и фидов.
func NewQueryApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	catalogConfig, err := configs.LoadCatalogConfig(appConfig.Catalog.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("error loading catalog configuration: %w", err)
	}

	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: appConfig.Database.URL})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	listingSource, err := postgres_adapter.NewListingSourceAdapter(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create listing source adapter: %w", err)
	}
	rateProvider, err := postgres_adapter.NewRateProviderAdapter(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create rate provider adapter: %w", err)
	}
	cachedSource := cache.NewSnapshotSource(listingSource, appConfig.Catalog.SnapshotTTL, nil)

	catalogUseCase := usecase.NewCatalogQueryUseCase(cachedSource, rateProvider, catalogConfig.Cashback.Config, catalogConfig.Policy())

	return &App{
		config:         appConfig,
		dbPool:         dbPool,
		catalogUseCase: catalogUseCase,
	}, nil
}

// Close освобождает ресурсы урезанного приложения.
func (a *App) Close() {
	if a.dbPool != nil {
		a.dbPool.Close()
	}
}

// allowedDomainOf достает хост из URL фида для ограничения коллектора.
func allowedDomainOf(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return "", fmt.Errorf("invalid feed URL %q", rawURL)
	}
	return parsed.Hostname(), nil
}

// StartFeedImport запускает прогон импорта фида в фоне.
func (a *App) StartFeedImport(ctx context.Context) {
	log.Println("App: Initiating feed import...")
	go func() {
		if err := a.fetchFeedUseCase.Execute(ctx, a.feedSpec); err != nil {
			log.Printf("App: Feed import for '%s' finished with error: %v", a.feedSpec.Name, err)
		} else {
			log.Printf("App: Feed import for '%s' finished successfully.", a.feedSpec.Name)
		}
	}()
}

// RunQuery выполняет один запрос каталога и возвращает результат.
// Используется одноразовым режимом CLI.
func (a *App) RunQuery(ctx context.Context, params map[string][]string) domain.CatalogResult {
	return a.catalogUseCase.Execute(ctx, params)
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())

	var wg sync.WaitGroup

	defer func() {
		log.Println("App: Shutdown sequence initiated...")

		log.Println("App: Waiting for background processes to finish...")
		wg.Wait()
		log.Println("App: All background processes finished.")

		if a.importListener != nil {
			if err := a.importListener.Close(); err != nil {
				log.Printf("App: Error closing import listener: %v\n", err)
			}
		}
		if a.eventProducer != nil {
			if err := a.eventProducer.Close(); err != nil {
				log.Printf("App: Error closing event producer: %v\n", err)
			}
		}
		if a.dbPool != nil {
			a.dbPool.Close()
			log.Println("App: PostgreSQL pool closed.")
		}
		log.Println("Application shut down gracefully.")
	}()

	log.Println("Application is starting...")

	a.StartFeedImport(appCtx)

	consumerErrors := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Println("App: Starting Import Events Listener...")
		if err := a.importListener.Start(appCtx); err != nil {
			log.Printf("App: Import Events Listener stopped with an unexpected error: %v", err)
			consumerErrors <- fmt.Errorf("import listener error: %w", err)
		} else {
			log.Println("App: Import Events Listener stopped gracefully due to context cancellation.")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Println("Application running. Waiting for signals or consumer error...")
	select {
	case receivedSignal := <-quit:
		log.Printf("App: Received signal: %s. Shutting down...\n", receivedSignal)
	case err := <-consumerErrors:
		log.Printf("App: A critical component failed: %v. Shutting down...\n", err)
	}

	cancelApp()

	return nil
}

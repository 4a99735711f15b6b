package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"projectFlow/internal/blobstore"
	"projectFlow/internal/config"
	"projectFlow/internal/credentials"
	"projectFlow/internal/handlers"
	"projectFlow/internal/logger"
	"projectFlow/internal/middleware"
	"projectFlow/internal/models"
	"projectFlow/internal/repository"
	"projectFlow/internal/repository/inmemory"
	"projectFlow/internal/repository/postgres"
	"projectFlow/internal/service"
	"projectFlow/internal/worker"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config    *config.Config
	server    *http.Server
	router    *chi.Mux
	store     repository.Store
	services  *service.Services
	scheduler *worker.TimerScheduler
	sessions  *handlers.SessionRegistry
	shutdowns []func() // функции для graceful shutdown
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

// Init собирает зависимости: логгер, хранилище, вложения, планировщик, сервисы и роутер
func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}

	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	if err := a.initStore(ctx); err != nil {
		return err
	}

	blobs, err := blobstore.NewOS(a.config.Attachments.Dir)
	if err != nil {
		logger.Error("App: Не удалось подготовить каталог вложений", err)
		return err
	}

	a.scheduler = worker.NewTimerScheduler()
	a.shutdowns = append(a.shutdowns, a.scheduler.Stop)

	a.services = service.New(a.store, blobs, credentials.NewHasher(bcrypt.DefaultCost), a.newAutomation())
	a.sessions = handlers.NewSessionRegistry()
	a.router = a.routes()

	a.server = &http.Server{
		Addr:              a.config.GetServerAddr(),
		Handler:           otelhttp.NewHandler(a.router, "projectflow"),
		ReadTimeout:       a.config.Server.ReadTimeout,
		ReadHeaderTimeout: a.config.Server.ReadTimeout,
	}

	logger.Info("App: Инициализация завершена",
		zap.String("repository", a.config.Repository.Type),
		zap.String("addr", a.server.Addr))
	return nil
}

func (a *App) initStore(ctx context.Context) error {
	switch a.config.Repository.Type {
	case config.RepositoryPostgres:
		db := a.config.Database
		if err := postgres.Migrate(db.URL); err != nil {
			return fmt.Errorf("миграции: %w", err)
		}

		storage, err := postgres.New(ctx, db.URL, postgres.PoolConfig{
			MaxConns:        db.MaxConnections,
			MinConns:        db.MinConnections,
			MaxConnIdleTime: db.IdleTimeout,
		})
		if err != nil {
			return fmt.Errorf("подключение к PostgreSQL: %w", err)
		}
		a.shutdowns = append(a.shutdowns, storage.Close)
		a.store = storage
	default:
		logger.Info("App: Используется хранилище в памяти")
		a.store = inmemory.New()
	}
	return nil
}

func (a *App) newAutomation() *service.AutomationService {
	opts := []service.AutomationOption{
		service.WithExecutionDelay(a.config.Automation.ExecutionDelay),
		service.WithOnExecuted(func(rule models.AutomationRule) {
			logger.Info("App: Правило выполнено",
				zap.String("rule_id", rule.ID.String()),
				zap.String("rule", rule.Description()),
				zap.Int("executions", rule.ExecutionCount))
		}),
	}
	if a.config.Automation.ExampleRules {
		opts = append(opts, service.WithExampleRules())
	}
	return service.NewAutomationService(a.scheduler, opts...)
}

func (a *App) routes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.Loopback)
	r.Use(middleware.CORS(a.config.Server.CORSOrigins))
	r.Use(middleware.RateLimit(a.config.Server.RateLimit))

	h := handlers.NewHandler(handlers.Services{
		Users:       a.services.Users,
		Projects:    a.services.Projects,
		Columns:     a.services.Columns,
		Tasks:       a.services.Tasks,
		Labels:      a.services.Labels,
		Members:     a.services.Members,
		Attachments: a.services.Attachments,
		Automation:  a.services.Automation,
		Ordering:    a.services.Ordering,
		Health:      a.services,
	}, a.sessions)

	r.Route("/api", h.Routes)
	return r
}

// Run запускает HTTP-сервер и планировщик, при отмене ctx корректно останавливает оба
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("App: Сервер запущен", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("App: Ошибка сервера", err)
			return fmt.Errorf("http сервер: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return a.scheduler.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("App: Остановка сервера...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			logger.Error("App: Ошибка остановки сервера", err)
			return fmt.Errorf("остановка сервера: %w", err)
		}
		return nil
	})

	err := g.Wait()
	a.Shutdown()
	return err
}

// Shutdown выполняет функции завершения в обратном порядке
func (a *App) Shutdown() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
	a.shutdowns = nil
}

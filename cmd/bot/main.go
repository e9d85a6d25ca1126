package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/Freeeeeet/doctor_booking/internal/app"
	"github.com/Freeeeeet/doctor_booking/internal/config"
	"github.com/Freeeeeet/doctor_booking/internal/controller"
	"github.com/Freeeeeet/doctor_booking/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/doctor_booking/internal/controller/httpapi"
	"github.com/Freeeeeet/doctor_booking/internal/controller/state"
	"github.com/Freeeeeet/doctor_booking/internal/events"
	"github.com/Freeeeeet/doctor_booking/internal/metrics"
	"github.com/Freeeeeet/doctor_booking/internal/repository"
	"github.com/Freeeeeet/doctor_booking/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(serve())
}

// serve возвращает код выхода, отложенные вызовы выполняются до os.Exit
func serve() int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return 1
	}

	logger, err := app.NewLogger(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Printf("Failed to create logger: %v", err)
		return 1
	}
	defer logger.Sync()

	logger.Sugar().Infow("Starting doctor booking service",
		"environment", cfg.Environment,
		"timezone", cfg.Location().String(),
		"http_addr", cfg.HTTPAddr,
		"telegram_enabled", cfg.TelegramToken != "",
		"rabbitmq_enabled", cfg.RabbitMQ.Enabled)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = run(ctx, cfg, logger)
	if code := exitCode(err); code != 0 {
		logger.Error("Service stopped with error", zap.Error(err))
		return code
	}
	logger.Info("Service stopped")
	return 0
}

// exitCode считает штатную остановку по сигналу успешной
func exitCode(err error) int {
	if err == nil || errors.Is(err, context.Canceled) {
		return 0
	}
	return 1
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		return fmt.Errorf("create db pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping db: %w", err)
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsDir, logger)
	if err != nil {
		return err
	}
	if err := migrator.Run(ctx); err != nil {
		migrator.Close()
		return err
	}
	migrator.Close()

	clock := service.NewSystemClock(cfg.Location())
	collector := metrics.NewCollector()

	// Репозитории
	doctorRepo := repository.NewDoctorRepository(pool, logger)
	scheduleRepo := repository.NewScheduleRepository(pool, logger)
	bookingRepo := repository.NewBookingRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	// Сервисы
	doctorService, err := service.NewDoctorService(doctorRepo, cfg.DoctorCacheSize, logger)
	if err != nil {
		return err
	}
	resolver := service.NewScheduleResolver(scheduleRepo, logger)
	availabilityService := service.NewAvailabilityService(resolver, bookingRepo, clock, logger)

	var (
		publisher service.EventPublisher
		amqpConn  *amqp.Connection
	)
	if cfg.RabbitMQ.Enabled {
		amqpConn, err = events.Dial(cfg.RabbitMQ, logger)
		if err != nil {
			return err
		}
		defer amqpConn.Close()

		eventPublisher, err := events.NewPublisher(amqpConn, cfg.RabbitMQ.Exchange, collector, logger)
		if err != nil {
			return err
		}
		defer eventPublisher.Close()
		publisher = eventPublisher
	}

	bookingService := service.NewBookingService(bookingRepo, availabilityService, doctorService, publisher, collector, clock, logger)
	queueService := service.NewQueueService(bookingRepo, clock, logger)
	userService := service.NewUserService(userRepo, logger)

	dialogs := state.NewManager(cfg.DialogTTL)

	scheduler := app.NewScheduler(doctorService, cfg.DoctorCacheRefresh, logger).
		WithDialogSweeper(dialogs, cfg.DialogTTL/2)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	g, gctx := errgroup.WithContext(ctx)

	// HTTP API
	server := httpapi.NewServer(httpapi.ServerConfig{
		Addr:           cfg.HTTPAddr,
		RequestTimeout: cfg.RequestTimeout,
		Metrics:        collector.Handler(),
		Recorder:       collector,
	}, httpapi.NewHandler(doctorService, availabilityService, bookingService, queueService, clock), logger)

	g.Go(server.Start)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	// Команды персонала из очереди
	if amqpConn != nil {
		listener, err := events.NewStaffListener(amqpConn, cfg.RabbitMQ.StaffQueue, bookingService, logger)
		if err != nil {
			return err
		}
		if err := listener.Start(gctx); err != nil {
			return err
		}
		g.Go(func() error {
			<-gctx.Done()
			return listener.Stop()
		})
	}

	// Telegram бот
	if cfg.TelegramToken != "" {
		botInstance, err := bot.New(cfg.TelegramToken, bot.WithErrorsHandler(func(err error) {
			logger.Warn("Telegram bot error", zap.Error(err))
		}))
		if err != nil {
			return fmt.Errorf("create telegram bot: %w", err)
		}

		botController := controller.NewBotController(botInstance, &callbacktypes.Handler{
			UserService:         userService,
			DoctorService:       doctorService,
			AvailabilityService: availabilityService,
			BookingService:      bookingService,
			QueueService:        queueService,
			StateManager:        dialogs,
			Clock:               clock,
			Logger:              logger,
			BookingHorizonDays:  cfg.BookingHorizonDays,
		})
		if err := botController.RegisterHandlers(gctx); err != nil {
			logger.Warn("Bot started without commands menu", zap.Error(err))
		}

		g.Go(func() error {
			return botController.Start(gctx)
		})
	} else {
		logger.Warn("TELEGRAM_TOKEN is empty, Telegram bot disabled")
	}

	return g.Wait()
}

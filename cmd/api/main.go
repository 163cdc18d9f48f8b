package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Zaebanec/NexusGear/internal/config"
	"github.com/Zaebanec/NexusGear/internal/handler"
	"github.com/Zaebanec/NexusGear/internal/infra/db"
	"github.com/Zaebanec/NexusGear/internal/infra/notify"
	infraRepo "github.com/Zaebanec/NexusGear/internal/infra/repository"
	"github.com/Zaebanec/NexusGear/internal/logging"
	repo "github.com/Zaebanec/NexusGear/internal/repository"
	"github.com/Zaebanec/NexusGear/internal/server"
	"github.com/Zaebanec/NexusGear/internal/usecase"
	"github.com/Zaebanec/NexusGear/internal/validator"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

func main() {
	//.envは無くてもよい
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("load .env", "err", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	log := logging.New("nexusgear-api", cfg.LogFile, logging.LevelFromEnv(cfg.GoEnv))
	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		return err
	}
	if cfg.DBAutoMigrate {
		if err := db.RunMigrations(gormDB); err != nil {
			return err
		}
		log.Info("migrations applied")
	}

	//カート（memory / redis）
	var carts repo.CartRepository
	switch cfg.CartBackend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPass})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return err
		}
		carts = infraRepo.NewCartRedisRepository(rdb, cfg.CartTTL)
	default:
		carts = infraRepo.NewCartMemoryRepository()
	}

	//通知先
	notifiers, closeNotifiers, err := buildNotifiers(cfg, log)
	if err != nil {
		return err
	}
	defer closeNotifiers()

	//Repository（GORM実装）
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	uow := infraRepo.NewUnitOfWorkFactory(gormDB)

	//Usecase
	orderUC := usecase.NewOrderUsecase(uow, carts, notifiers, log, usecase.WithNotifyTimeout(cfg.NotifyTimeout))
	adminOrderUC := usecase.NewAdminOrderUsecase(uow, log)
	cartUC := usecase.NewCartUsecase(carts, productRepo)
	catalogUC := usecase.NewCatalogUsecase(categoryRepo, productRepo)
	authUC := usecase.NewAuthUsecase(cfg, userRepo, validator.NewTelegramInitData(cfg.BotToken, cfg.InitDataMaxAge))

	//Handler
	e := server.New(cfg, log, server.Handlers{
		Checkout:     handler.NewCheckoutHandler(orderUC),
		Auth:         handler.NewAuthHandler(authUC),
		Catalog:      handler.NewCatalogHandler(catalogUC),
		Cart:         handler.NewCartHandler(cartUC, orderUC),
		Orders:       handler.NewOrderHandler(orderUC),
		AdminOrders:  handler.NewAdminOrderHandler(adminOrderUC),
		AdminCatalog: handler.NewAdminCatalogHandler(catalogUC),
	})

	return server.Start(ctx, e, ":"+cfg.Port, log)
}

// Telegramは必須、RabbitMQ/Kafkaは設定があれば足す
func buildNotifiers(cfg config.Config, log *slog.Logger) (notify.Multi, func(), error) {
	var (
		out     notify.Multi
		closers []func() error
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				log.Warn("close notifier", "err", err)
			}
		}
	}

	tg, err := notify.NewTelegramNotifier(cfg.BotToken, "", cfg.NotifyTimeout)
	if err != nil {
		//botが落ちていても注文は受ける
		log.Warn("telegram notifier disabled", "err", err)
	} else {
		out = append(out, tg)
	}

	if cfg.RabbitURL != "" {
		conn, err := amqp.Dial(cfg.RabbitURL)
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		closers = append(closers, conn.Close)
		ch, err := conn.Channel()
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		closers = append(closers, ch.Close)
		pub, err := notify.NewRabbitPublisher(ch, cfg.RabbitExchange)
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		out = append(out, pub)
	}

	if len(cfg.KafkaBrokers) > 0 {
		pub := notify.NewKafkaPublisher(cfg.KafkaTopic, cfg.KafkaBrokers...)
		closers = append(closers, pub.Close)
		out = append(out, pub)
	}

	return out, closeAll, nil
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"app/internal/config"
	"app/internal/handler"
	"app/internal/infra/db"
	"app/internal/infra/memory"
	infraRepo "app/internal/infra/repository"
	"app/internal/lock"
	"app/internal/obs"
	repo "app/internal/repository"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	//.envは無くてもよい
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := obs.InitLogger(cfg.LogLevel)

	//在庫ロック
	locker, closeLocker, err := newLocker(cfg)
	if err != nil {
		return err
	}
	defer closeLocker()

	//Repository生成
	st, err := newStores(cfg)
	if err != nil {
		return err
	}

	//Usecase生成
	inventoryUC := usecase.NewInventoryUsecase(st.inventory, st.adjustments, st.tx, locker)
	productUC := usecase.NewProductUsecase(st.products, st.inventory, st.tx, locker, cfg.CapacityPolicy)
	categoryUC := usecase.NewCategoryUsecase(st.categories, st.tx)

	//Handler生成
	e := server.New(logger, server.Handlers{
		Inventory: handler.NewInventoryHandler(inventoryUC),
		Product:   handler.NewProductHandler(productUC, categoryUC),
		Category:  handler.NewCategoryHandler(categoryUC),
		Health:    handler.NewHealthHandler(st.ping),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//Server起動
	return server.Start(ctx, e, cfg.Addr())
}

type stores struct {
	inventory   repo.InventoryRepository
	products    repo.ProductRepository
	categories  repo.CategoryRepository
	adjustments repo.AdjustmentRepository
	tx          repo.TransactionManager
	ping        handler.Pinger
}

func newStores(cfg config.Config) (stores, error) {
	if cfg.DBDriver == "memory" {
		slog.Warn("using in-memory store, data is lost on restart")
		m := memory.NewStore()
		return stores{
			inventory:   m.Inventory(),
			products:    m.Products(),
			categories:  m.Categories(),
			adjustments: m.Adjustments(),
			tx:          m,
			ping:        func(context.Context) error { return nil },
		}, nil
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		return stores{}, err
	}
	if err := db.Migrate(gormDB); err != nil {
		return stores{}, err
	}

	//GORM実装
	return stores{
		inventory:   infraRepo.NewInventoryGormRepository(gormDB),
		products:    infraRepo.NewProductGormRepository(gormDB),
		categories:  infraRepo.NewCategoryGormRepository(gormDB),
		adjustments: infraRepo.NewAdjustmentGormRepository(gormDB),
		tx:          infraRepo.NewTxManagerGorm(gormDB),
		ping: func(ctx context.Context) error {
			return db.Ping(ctx, gormDB)
		},
	}, nil
}

func newLocker(cfg config.Config) (lock.Locker, func(), error) {
	if cfg.LockBackend != config.LockBackendRedis {
		return lock.NewLocalLocker(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	slog.Info("using redis inventory lock", "addr", cfg.RedisAddr, "ttl", cfg.LockTTL)
	return lock.NewRedisLocker(client, cfg.LockTTL), func() { _ = client.Close() }, nil
}

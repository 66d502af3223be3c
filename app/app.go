package app

import (
	"os"
	"os/signal"
	"syscall"

	"freight-marketplace-api/config"
	"freight-marketplace-api/internal/addressbook"
	"freight-marketplace-api/internal/controller"
	"freight-marketplace-api/internal/notify"
	"freight-marketplace-api/internal/repo"
	"freight-marketplace-api/internal/service"
	"freight-marketplace-api/pkg/http_server"
	"freight-marketplace-api/pkg/postgres"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/labstack/echo"
	"go.uber.org/zap"
)

func runMigrations(postgresDB *postgres.Postgres, log *zap.Logger) {
	driver, err := pgmigrate.WithInstance(postgresDB.Database, &pgmigrate.Config{})
	if err != nil {
		log.Fatal("migration driver init failed", zap.Error(err))
	}

	migrations, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		log.Fatal("migration setup failed", zap.Error(err))
	}

	if err := migrations.Up(); err != nil {
		if err == migrate.ErrNoChange {
			log.Info("no change made by migration scripts")
		} else {
			log.Fatal("migration failed", zap.Error(err))
		}
	}
}

func Run() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal("config load failed", zap.Error(err))
	}

	log.Info("connecting database")
	postgresDB, err := postgres.NewDB(cfg.Postgres.URL)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer postgresDB.Close()

	log.Info("running migrations")
	runMigrations(postgresDB, log)

	repositories := repo.NewRepositories(postgresDB)

	dispatcher := notify.NewDispatcher(repositories.Notification, log.Named("notify"), cfg.Notify.QueueSize)
	dispatcher.Start()
	defer dispatcher.Stop()

	enricher := addressbook.NewEnricher(repositories.Address, log.Named("addressbook"))

	services := service.NewServices(repositories, dispatcher, enricher)
	handler := echo.New()

	log.Info("setup routes")
	controller.SetupRoutesHandlers(handler, services)

	log.Info("starting server", zap.String("address", cfg.Server.Address))
	httpServer := http_server.New(handler, cfg.Server.Address)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("got signal", zap.String("signal", s.String()))
	case err = <-httpServer.Notify():
		log.Error("server error", zap.Error(err))
	}

	log.Info("shutting down")
	if err := httpServer.Shutdown(); err != nil {
		log.Error("shutdown error", zap.Error(err))
	} else {
		log.Info("successful shutdown")
	}
}

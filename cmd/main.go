package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/api"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/config"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/database"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/metrics"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/service"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/service/catalog_service"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/service/cf_service"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/service/solved_service"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/service/user_service"
	log "github.com/sirupsen/logrus"
)

var (
	apiConfig *api.Api
	cfg       config.Config
	syncJob   *solved_service.SyncJob
)

func initLogger(level log.Level) {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
		PadLevelText:  false,
	})
	log.SetLevel(level)
}

func initDatabase() *pgxpool.Pool {
	// create a connection pool to the database
	pool, err := pgxpool.New(context.Background(), cfg.DBURL)
	if err != nil {
		panic(err)
	}
	return pool
}

func initCatalogService() *catalog_service.CatalogService {
	log.Info("initializing catalog service")
	cs := catalog_service.CatalogService{
		DatasetRoots:   cfg.DatasetRoots,
		CacheTTL:       cfg.CatalogTTL,
		StageCacheSize: cfg.StageCache,
	}
	cs.Start()
	return &cs
}

func initCfService() *cf_service.CfService {
	log.Info("initializing codeforces client")
	cf := cf_service.CfService{
		BaseURL: cfg.CfAPIBase,
		Timeout: cfg.CfTimeout,
	}
	cf.Start()
	return &cf
}

func initApi(pool *pgxpool.Pool) *api.Api {
	log.Info("initializing api config")
	db := database.NewStore(pool)
	cf := initCfService()

	us := user_service.UserService{DB: db, Judge: cf}
	us.Start()
	log.Info("user service created")

	ss := solved_service.SolvedService{DB: db, Judge: cf}
	ss.Start()
	log.Info("solved service created")

	syncJob = &solved_service.SyncJob{
		Service:  &ss,
		Schedule: cfg.SyncSchedule,
	}

	return &api.Api{
		DB:                   pool,
		CatalogServiceConfig: initCatalogService(),
		SolvedServiceConfig:  &ss,
		UserServiceConfig:    &us,
	}
}

func setup() *pgxpool.Pool {
	godotenv.Load()

	var err error
	cfg, err = config.Load()
	if err != nil {
		log.Fatalf("cannot load configuration, %v", err)
	}
	initLogger(cfg.LogLevel)

	service.InitializeServices()
	pool := initDatabase()
	apiConfig = initApi(pool)

	if err := syncJob.Start(); err != nil {
		log.Fatalf("cannot schedule solved sync, %v", err)
	}
	return pool
}

func setCors(router *chi.Mux) {
	router.Use(
		cors.Handler(
			cors.Options{
				AllowedOrigins:   []string{"https://*", "http://*"},
				AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
				AllowedHeaders:   []string{"*"},
				AllowCredentials: true,
				ExposedHeaders:   []string{"Link"},
				MaxAge:           300,
			},
		),
	)
	log.Info("cors options has been set")
}

func main() {
	pool := setup()
	defer pool.Close()

	// initialize a new router
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	router.Use(metrics.Middleware)
	setCors(router)

	// mount v1 router
	router.Mount("/v1", NewV1Router([]byte(cfg.JWTSecret)))
	router.Handle("/metrics", metrics.Handler())
	log.Info("v1 router has been mounted")

	log.Info("starting server")
	srv := http.Server{
		Handler:           router,
		Addr:              cfg.Address(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server cannot be started. Error: %v", err)
		}
	}()
	log.Infof("listening on %s", cfg.Address())

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("graceful shutdown failed, %v", err)
	}
	syncJob.Stop()
}

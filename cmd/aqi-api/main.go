package main

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	_ "aqi-api/configs"
	"aqi-api/internal/application/controller"
	"aqi-api/internal/application/middleware"
	"aqi-api/internal/application/processor"
	"aqi-api/internal/application/schedule"
	"aqi-api/internal/domain/entity"
	apigateway "aqi-api/internal/domain/gateway/api"
	cachegateway "aqi-api/internal/domain/gateway/cache"
	"aqi-api/internal/domain/gateway/db"
	"aqi-api/internal/domain/gateway/queue"
	"aqi-api/internal/domain/usecase/cityaqi"
	"aqi-api/internal/domain/usecase/forecast"
	"aqi-api/internal/domain/usecase/health"
	"aqi-api/internal/domain/usecase/ingest"
	"aqi-api/internal/infra/aws"
	"aqi-api/internal/infra/coordinates"
	"aqi-api/internal/infra/database/sqlc"
	"aqi-api/pkg/http"
	"aqi-api/pkg/log"
	"aqi-api/pkg/msg"
	"aqi-api/pkg/redis"
	"aqi-api/pkg/resource"
	"aqi-api/pkg/sqs"
)

const snapshotQueueWorker = "snapshot_refresh"

func main() {
	log.Info(msg.GetMessage("app.start"))

	ctx := context.Background()

	// Init infra
	database, err := sqlc.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	snapshotTTL := time.Duration(resource.GetInt("app.schedule.snapshot-ttl-minutes")) * time.Minute

	redisConfig := redis.NewRedisConfig().
		WithHost(resource.GetString("app.redis.host")).
		WithPort(resource.GetInt("app.redis.port")).
		WithPassword(resource.GetString("app.redis.password")).
		WithDatabase(resource.GetInt("app.redis.database")).
		WithCacheTTL("global_aqi", snapshotTTL)
	redisClient := redis.NewClient(redisConfig)

	snapshotCache := redis.NewCache(redisClient, redis.NewCacheOptions().
		WithCacheName("global_aqi").
		WithTTL(snapshotTTL))

	awsConfig, err := aws.LoadConfig(ctx)
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	sqsClient := aws.NewSqsClient(awsConfig)

	table, err := coordinates.Load(resource.GetString("app.coordinates.file"))
	if err != nil {
		// city lookups will answer 500 until the file is provided
		log.Warnf("Coordinate table unavailable: %v", err)
		table = entity.CoordinateTable{}
	}

	// Init Gateways
	mlTimeout := time.Duration(resource.GetInt("app.ml-server.timeout-seconds")) * time.Second
	forecastGateway := apigateway.NewForecastGateway(resource.GetString("app.ml-server.base-url"), http.ClientOptions{
		ConnectionTimeout: mlTimeout,
		ReadTimeout:       mlTimeout,
		RetryLogger:       http.ZapRetryLogger{},
	})

	airQualityTimeout := time.Duration(resource.GetInt("app.air-quality.timeout-seconds")) * time.Second
	airQualityGateway := apigateway.NewAirQualityGateway(resource.GetString("app.air-quality.base-url"), http.ClientOptions{
		ConnectionTimeout: airQualityTimeout,
		ReadTimeout:       airQualityTimeout,
		RetryLogger:       http.ZapRetryLogger{},
	})

	readingGateway := db.NewSQLCReadingGateway(database)
	queueSender := aws.NewSQSSenderAdapter(sqsClient)
	snapshotGateway := cachegateway.NewRedisSnapshotGateway(snapshotCache)

	dbHealthGateway := db.NewSQLCHealthDBGateway(database)
	queueHealthGateway := queue.NewQueueHealthGateway()
	cacheHealthGateway := cachegateway.NewRedisHealthGateway(redisClient)

	// Init UseCases
	forecastUseCase := forecast.NewForecastUseCase(forecastGateway)
	cityAQIUseCase := cityaqi.NewCityAQIUseCase(table, airQualityGateway, snapshotGateway,
		resource.GetInt("app.coordinates.snapshot-limit"), snapshotTTL)
	ingestUseCase := ingest.NewIngestUseCase(resource.GetString("app.queue.readings"), readingGateway, queueSender)
	healthUseCase := health.NewHealthUseCase(dbHealthGateway, queueHealthGateway, cacheHealthGateway)

	// Init queue worker
	snapshotProcessor := processor.NewSnapshotProcessor(cityAQIUseCase)
	worker, err := sqs.NewWorker(ctx, sqsClient, resource.GetString("app.queue.readings"), snapshotProcessor, &sqs.WorkerConfig{
		LogLevel: sqs.ErrorLevel,
	})
	if err != nil {
		log.Fatalf("Failed to create snapshot refresh worker: %v", err)
	}
	queueHealthGateway.RegisterWorker(snapshotQueueWorker, worker)
	go worker.Start(ctx)

	// Init HTTP chassis
	e := echo.New()
	middleware.SetupRequestLogger(e)
	api := e.Group(resource.GetString("app.server.context-path"))

	// Init Controllers
	healthController := controller.NewHealthController(api, healthUseCase)
	forecastController := controller.NewForecastController(api, forecastUseCase)
	cityAQIController := controller.NewCityAQIController(api, cityAQIUseCase)
	sensorController := controller.NewSensorController(api, ingestUseCase)

	// Init Routes
	healthController.InitHealthRoutes()
	forecastController.InitForecastRoutes()
	cityAQIController.InitCityAQIRoutes()
	sensorController.InitSensorRoutes()

	// Init Schedule
	snapshotScheduler := schedule.NewSnapshotScheduler(cityAQIUseCase, redisClient,
		resource.GetString("app.schedule.snapshot-cron"),
		resource.GetInt("app.schedule.lock-ttl-seconds"),
		resource.GetInt("app.schedule.lock-refresh-seconds"))
	snapshotScheduler.InitSnapshotScheduleTasks(ctx)

	// Start Routes
	e.Logger.Fatal(e.Start(":" + resource.GetString("app.server.port")))
	log.Info(msg.GetMessage("app.started"))
}

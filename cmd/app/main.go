package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"mealmarket/cmd"
	httpadapter "mealmarket/internal/adapters/in/http"
	"mealmarket/internal/adapters/out/kafka"
	"mealmarket/internal/adapters/out/postgres/georepo"
	"mealmarket/internal/adapters/out/postgres/orderrepo"
	"mealmarket/internal/adapters/out/postgres/planrepo"
	"mealmarket/internal/adapters/out/postgres/subscriptionrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	configs := getConfigs()

	gormDB := mustOpenDB(configs)

	sink, err := kafka.NewSaramaNotificationSink(
		[]string{configs.KafkaHost}, configs.KafkaNotificationsTopic)
	if err != nil {
		log.Fatalf("Failed to connect to Kafka: %v", err)
	}
	defer sink.Close()

	app := cmd.NewCompositionRoot(configs, gormDB, sink, logger)

	app.Dispatcher().Start()
	defer app.Dispatcher().Stop()

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                goDotEnvVariable("HTTP_PORT"),
		DBHost:                  goDotEnvVariable("DB_HOST"),
		DBPort:                  goDotEnvVariable("DB_PORT"),
		DBUser:                  goDotEnvVariable("DB_USER"),
		DBPassword:              goDotEnvVariable("DB_PASSWORD"),
		DBName:                  goDotEnvVariable("DB_NAME"),
		DBSslMode:               goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:               goDotEnvVariable("KAFKA_HOST"),
		KafkaNotificationsTopic: goDotEnvVariable("KAFKA_NOTIFICATIONS_TOPIC"),
		RequestMaxAge:           durationEnvVariable("SUBSCRIPTION_REQUEST_MAX_AGE", 72*time.Hour),
		NotificationQueueSize:   intEnvVariable("NOTIFICATION_QUEUE_SIZE", 1024),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func durationEnvVariable(key string, fallback time.Duration) time.Duration {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}

	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

func intEnvVariable(key string, fallback int) int {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

func mustOpenDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&subscriptionrepo.RequestDTO{},
		&planrepo.PlanDTO{},
		&georepo.KitchenLocationDTO{},
		&georepo.BuyerLocationDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpadapter.NewServer(
		app.CreateCancelOrderCommandHandler(),
		app.CreateAdvanceOrderCommandHandler(),
		app.CreateApproveSubscriptionRequestCommandHandler(),
		app.CreateRejectSubscriptionRequestCommandHandler(),
		app.CreateQuoteDeliveryQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}

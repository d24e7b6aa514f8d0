package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"logistic/cmd"
	inhttp "logistic/internal/adapters/in/http"
	"logistic/internal/adapters/out/postgres/addressrepo"
	"logistic/internal/adapters/out/postgres/credentialrepo"
	"logistic/internal/pkg/logger"
)

func main() {
	configs := getConfigs()

	zapLogger, err := logger.New(configs.LogLevel)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer func() {
		_ = zapLogger.Sync()
	}()

	gormDB, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", configs.RedisHost, configs.RedisPort),
	})

	app, err := cmd.NewCompositionRoot(configs, gormDB, redisClient, zapLogger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:            goDotEnvVariable("HTTP_PORT"),
		LogLevel:            goDotEnvVariable("LOG_LEVEL"),
		DBHost:              goDotEnvVariable("DB_HOST"),
		DBPort:              goDotEnvVariable("DB_PORT"),
		DBUser:              goDotEnvVariable("DB_USER"),
		DBPassword:          goDotEnvVariable("DB_PASSWORD"),
		DBName:              goDotEnvVariable("DB_NAME"),
		DBSslMode:           goDotEnvVariable("DB_SSLMODE"),
		RedisHost:           goDotEnvVariable("REDIS_HOST"),
		RedisPort:           goDotEnvVariable("REDIS_PORT"),
		CdekBaseURL:         goDotEnvVariable("CDEK_BASE_URL"),
		DellinBaseURL:       goDotEnvVariable("DELLIN_BASE_URL"),
		DellinTerminalsPath: goDotEnvVariable("DELLIN_TERMINALS_PATH"),
		PecomCalcURL:        goDotEnvVariable("PECOM_CALC_URL"),
		PecomTownsURL:       goDotEnvVariable("PECOM_TOWNS_URL"),
		DadataBaseURL:       goDotEnvVariable("DADATA_BASE_URL"),
		DadataToken:         goDotEnvVariable("DADATA_TOKEN"),
		DadataSecret:        goDotEnvVariable("DADATA_SECRET"),
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

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := gormDB.AutoMigrate(
		&credentialrepo.CredentialDTO{},
		&addressrepo.AddressCleanDTO{},
	); err != nil {
		return nil, err
	}

	return gormDB, nil
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := inhttp.NewServer(
		app.CreateCalculateDeliveryQueryHandler(),
		app.CreateSetCredentialCommandHandler(),
		app.CreateInvalidateLocationCommandHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}

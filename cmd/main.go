package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"stockroom/internal/caching"
	"stockroom/internal/handlers"
	"stockroom/internal/jobs"
	"stockroom/internal/jobs/background"
	"stockroom/internal/middleware"
	"stockroom/internal/repositories"
	"stockroom/internal/services"
	"stockroom/pkg/database"
)

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32)
		log.Printf("WARNING: Using generated JWT secret")
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		if db, err := strconv.Atoi(raw); err == nil {
			redisDB = db
		}
	}

	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin"
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin"
	}
	minioBucket := os.Getenv("MINIO_BUCKET")
	if minioBucket == "" {
		minioBucket = "stockroom-photos"
	}
	minioUseSSL := os.Getenv("MINIO_USE_SSL") == "true"

	photoService, err := services.NewMinioPhotoService(minioEndpoint, minioAccessKey, minioSecretKey, minioBucket, minioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize photo storage: %v", err)
	}

	recordRepo := repositories.NewRecordRepo(pool)
	categorySetRepo := repositories.NewCategorySetRepo(pool)
	auditLogRepo := repositories.NewAuditLogRepo(pool)

	cacheService := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	catalogService := services.NewCatalogService(recordRepo, cacheService)
	recordService := services.NewRecordService(recordRepo, categorySetRepo, auditLogRepo, photoService, cacheService)
	transactionService := services.NewTransactionService(recordRepo, auditLogRepo, catalogService, cacheService)
	batchService := services.NewBatchService(recordRepo, categorySetRepo, auditLogRepo, catalogService, photoService, cacheService)
	categoryService := services.NewCategoryService(categorySetRepo, auditLogRepo, cacheService)
	auditService := services.NewAuditService(auditLogRepo)

	recordHandlers := handlers.NewRecordHandlers(catalogService, recordService)
	transactionHandlers := handlers.NewTransactionHandlers(transactionService)
	batchHandlers := handlers.NewBatchHandlers(batchService)
	categoryHandlers := handlers.NewCategoryHandlers(categoryService)
	auditHandlers := handlers.NewAuditHandlers(auditService)
	exportHandlers := handlers.NewExportHandlers(catalogService)
	healthHandlers := handlers.NewHealthHandlers(pool)

	lowStockChecker := jobs.NewLowStockChecker(catalogService)
	scheduler := background.NewJobScheduler(lowStockChecker, catalogService)
	jobHandlers := handlers.NewJobHandlers(scheduler)
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop scheduler: %v", err)
		}
	}()

	e := echo.New()
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	v1 := e.Group("/v1")
	v1.Use(middleware.JWTMiddleware(jwtSecret))

	v1.GET("/records", recordHandlers.ListRecords)
	v1.POST("/records", recordHandlers.CreateRecord)
	v1.GET("/records/:id", recordHandlers.GetRecord)
	v1.PUT("/records/:id", recordHandlers.UpdateRecord)
	v1.DELETE("/records/:id", recordHandlers.DeleteRecord)

	v1.POST("/records/:id/photos", recordHandlers.UploadPhoto)
	v1.DELETE("/records/:id/photos", recordHandlers.RemovePhoto)

	v1.GET("/folders", recordHandlers.ListFolders)
	v1.POST("/resolve", recordHandlers.ResolveVariant)

	v1.POST("/transactions/inbound", transactionHandlers.Inbound)
	v1.POST("/transactions/outbound", transactionHandlers.Outbound)

	v1.POST("/records/batch-delete", batchHandlers.BatchDelete)
	v1.POST("/records/batch-edit", batchHandlers.BatchEdit)
	v1.POST("/import/csv", batchHandlers.ImportCSV)
	v1.POST("/import/images", batchHandlers.ImportImages)

	v1.GET("/folders/:folder/categories", categoryHandlers.ListCategories)
	v1.POST("/folders/:folder/categories", categoryHandlers.AddCategory)
	v1.DELETE("/folders/:folder/categories/:name", categoryHandlers.RemoveCategory)

	v1.GET("/audit-logs", auditHandlers.ListAuditLogs)

	v1.GET("/jobs/status", jobHandlers.JobStatus)

	v1.GET("/export/csv", exportHandlers.ExportCatalog)
	v1.GET("/export/template", exportHandlers.ExportTemplate)

	port := 8080
	if raw := os.Getenv("PORT"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			port = parsed
		}
	}
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}

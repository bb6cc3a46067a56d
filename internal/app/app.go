package app

import (
	"database/sql"
	"fmt"
	"log"

	"pace/internal/cache"
	"pace/internal/config"
	"pace/internal/handlers"
	"pace/internal/jobs"
	"pace/internal/pdf"
	"pace/internal/repositories"
	"pace/internal/routes"
	"pace/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Ошибка подключения к БД: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия БД: %v", err)
		}
	}()

	// === Redis ===
	store, err := cache.NewRedisStore(cfg.Redis.URL)
	if err != nil {
		log.Fatal("Ошибка подключения к Redis: ", err)
	}

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	dailyLogRepo := repositories.NewDailyLogRepository(db)
	healthRepo := repositories.NewHealthMetricRepository(db)
	medicineRepo := repositories.NewMedicineRepository(db)
	foodRepo := repositories.NewFoodRepository(db)
	weightRepo := repositories.NewWeightRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)

	// === Services ===
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	telegramService := services.NewTelegramService(cfg.Telegram.BotToken)

	reportService := services.NewReportService(userRepo, taskRepo, dailyLogRepo, healthRepo, store)
	taskService := services.NewTaskService(taskRepo, userRepo, reportService)
	dailyLogService := services.NewDailyLogService(dailyLogRepo, userRepo, reportService)
	healthService := services.NewHealthService(healthRepo, dailyLogRepo, userRepo, reportService)
	medicineService := services.NewMedicineService(medicineRepo, userRepo)
	foodService := services.NewFoodService(foodRepo, userRepo)
	weightService := services.NewWeightService(weightRepo, userRepo)
	paymentService := services.NewPaymentService(paymentRepo, userRepo)

	pdfGen := pdf.NewReportGenerator()

	// === Jobs ===
	dispatcher := jobs.NewSummaryDispatcher(userRepo, dailyLogRepo, taskRepo, emailService, telegramService)
	if err := dispatcher.Start(cfg.Jobs.SummaryCron); err != nil {
		log.Fatal("Ошибка запуска планировщика: ", err)
	}
	defer dispatcher.Stop()

	// === Handlers ===
	taskHandler := handlers.NewTaskHandler(taskService)
	dailyLogHandler := handlers.NewDailyLogHandler(dailyLogService)
	healthHandler := handlers.NewHealthHandler(healthService)
	medicineHandler := handlers.NewMedicineHandler(medicineService)
	foodHandler := handlers.NewFoodHandler(foodService)
	weightHandler := handlers.NewWeightHandler(weightService)
	reportHandler := handlers.NewReportHandler(reportService, pdfGen)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	jobsHandler := handlers.NewJobsHandler(dispatcher)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	routes.SetupRoutes(
		router,
		[]byte(cfg.Auth.JWTSecret),
		taskHandler,
		dailyLogHandler,
		healthHandler,
		medicineHandler,
		foodHandler,
		weightHandler,
		reportHandler,
		paymentHandler,
		jobsHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Ошибка запуска сервера: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

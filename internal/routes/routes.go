package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"pace/internal/handlers"
	"pace/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	jwtSecret []byte,
	taskHandler *handlers.TaskHandler,
	dailyLogHandler *handlers.DailyLogHandler,
	healthHandler *handlers.HealthHandler,
	medicineHandler *handlers.MedicineHandler,
	foodHandler *handlers.FoodHandler,
	weightHandler *handlers.WeightHandler,
	reportHandler *handlers.ReportHandler,
	paymentHandler *handlers.PaymentHandler,
	jobsHandler *handlers.JobsHandler,
) *gin.Engine {

	// ---- public
	r.GET("/", func(c *gin.Context) {
		c.String(200, "PACE Backend is running")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ---- protected
	r.Use(middleware.AuthMiddleware(jwtSecret))

	api := r.Group("/api")

	todos := api.Group("/todos")
	{
		todos.GET("/", taskHandler.List)
		todos.POST("/", taskHandler.Create)
		todos.PUT("/:id", taskHandler.Update)
		todos.DELETE("/:id", taskHandler.Delete)
	}

	dailyLogs := api.Group("/daily-logs")
	{
		dailyLogs.GET("/", dailyLogHandler.Get)
		dailyLogs.POST("/", dailyLogHandler.Upsert)
	}

	healthMetrics := api.Group("/health-metrics")
	{
		healthMetrics.GET("/", healthHandler.Get)
		healthMetrics.POST("/", healthHandler.Log)
	}

	medicines := api.Group("/medicines")
	{
		medicines.GET("/", medicineHandler.List)
		medicines.POST("/", medicineHandler.Add)
		medicines.POST("/intake", medicineHandler.LogIntake)
		medicines.GET("/intake", medicineHandler.IntakeHistory)
		medicines.DELETE("/intake", medicineHandler.DeleteIntake)
		medicines.PUT("/:id", medicineHandler.Update)
		medicines.DELETE("/:id", medicineHandler.Delete)
	}

	food := api.Group("/food")
	{
		food.GET("/", foodHandler.ListByDate)
		food.POST("/", foodHandler.Log)
		food.DELETE("/:id", foodHandler.Delete)
	}

	weight := api.Group("/weight")
	{
		weight.GET("/", weightHandler.History)
		weight.POST("/", weightHandler.Log)
	}

	reports := api.Group("/reports")
	{
		reports.GET("/stats", reportHandler.GetStats)
		reports.GET("/calendar", reportHandler.GetCalendar)
		reports.GET("/export", reportHandler.ExportPDF)
	}

	payments := api.Group("/payments")
	{
		payments.POST("/create-order", paymentHandler.CreateOrder)
		payments.POST("/verify", paymentHandler.Verify)
		payments.GET("/status", paymentHandler.Status)
	}

	api.POST("/jobs/trigger-summary", jobsHandler.TriggerSummary)

	return r
}

package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"collections-service/internal/app/handlers"
	"collections-service/internal/app/middleware"
	"collections-service/internal/pkg/config"
	mongodb "collections-service/internal/pkg/db/mongo"
	"collections-service/internal/pkg/downstream"
	"collections-service/internal/pkg/notification"
	"collections-service/internal/pkg/store/impl/applications"
	"collections-service/internal/pkg/store/impl/camdetails"
	"collections-service/internal/pkg/store/impl/collections"
	"collections-service/internal/pkg/store/impl/disbursals"
	"collections-service/internal/pkg/store/impl/employees"
	"collections-service/internal/pkg/store/impl/leads"
	"collections-service/internal/pkg/store/impl/sanctions"
	"collections-service/internal/pkg/store/repository"
	collectionsvc "collections-service/internal/service/collections"
)

func SetupRouter(cfg *config.AppConfig, mongoClient *mongodb.MongoClient, redisClient *redis.Client) *gin.Engine {
	server := gin.Default()
	server.Use(middleware.AttachTraceID())

	redisAdapter := repository.NewRedisStoreAdapter(redisClient)

	collectionsRepo := collections.NewCollectionRecordRepository(mongoClient)
	disbursalsRepo := disbursals.NewDisbursalsRepository(mongoClient)
	sanctionsRepo := sanctions.NewSanctionsRepository(mongoClient)
	applicationsRepo := applications.NewApplicationsRepository(mongoClient)
	leadsRepo := leads.NewLeadsRepository(mongoClient)
	employeesRepo := employees.NewEmployeesRepository(mongoClient)
	camDetailsRepo := camdetails.NewCamDetailsRepository(mongoClient)

	emailClient := notification.NewEmailClient(cfg.Email)
	bankVerifier := downstream.NewBankVerificationClient(cfg.BankVerification)

	activationService := collectionsvc.NewActivationService(collectionsRepo, leadsRepo, emailClient, cfg.Email.PortalLink)
	projectionService := collectionsvc.NewProjectionService(
		collectionsRepo,
		disbursalsRepo,
		sanctionsRepo,
		applicationsRepo,
		leadsRepo,
		employeesRepo,
		camDetailsRepo,
		redisAdapter,
	)
	updateService := collectionsvc.NewUpdateService(collectionsRepo, projectionService, redisAdapter)

	collectionHandler := handlers.NewCollectionHandler(activationService, projectionService, updateService, bankVerifier)
	healthCheckHandler := handlers.NewHealthCheckHandler()

	api := server.Group("/api/collections")
	api.GET("/health", healthCheckHandler.HealthCheck)

	protected := api.Group("")
	protected.Use(middleware.Authenticate(cfg.Auth.JWTSecret))
	protected.POST("/", collectionHandler.CreateActiveLead)
	protected.GET("/active", collectionHandler.ActiveLeads)
	protected.GET("/active/:loanNo", collectionHandler.GetActiveLead)
	protected.PATCH("/active/:loanNo", collectionHandler.UpdateActiveLead)
	protected.GET("/closed", collectionHandler.ClosedLeads)
	protected.POST("/verify-bank", collectionHandler.VerifyBank)

	return server
}

package app

import (
	"database/sql"
	"fmt"
	"log"

	"gestalba/internal/config"
	"gestalba/internal/handlers"
	"gestalba/internal/pdf"
	"gestalba/internal/repositories"
	"gestalba/internal/routes"
	"gestalba/internal/services"
	"gestalba/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "gestalba/docs"
)

func Run() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("[app] no .env file loaded: %v", err)
	}
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to reach database: ", err)
	}

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	verificationRepo := repositories.NewVerificationRepository(db)
	clientRepo := repositories.NewClientRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	noteRepo := repositories.NewDeliveryNoteRepository(db)
	companyRepo := repositories.NewCompanyRepository(db)
	logoRepo := repositories.NewLogoRepository(db)

	// === Services ===
	authService := services.NewAuthService(cfg.JWT.Secret)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	verificationService := services.NewVerificationService(userRepo, verificationRepo, emailService)
	userService := services.NewUserService(userRepo, verificationService, authService)
	clientService := services.NewClientService(clientRepo)
	projectService := services.NewProjectService(projectRepo, clientRepo)

	pdfGen := pdf.NewDeliveryNoteGenerator(cfg.Company.Name)
	pinataClient := utils.NewPinataClient(cfg.Pinata.APIKey, cfg.Pinata.APISecret, cfg.Pinata.DryRun)

	noteService := services.NewDeliveryNoteService(noteRepo, clientRepo, projectRepo, pdfGen, pinataClient)
	companyService := services.NewCompanyService(companyRepo)
	logoService := services.NewLogoService(logoRepo, userRepo)

	// === Handlers ===
	userHandler := handlers.NewUserHandler(userService)
	verifyHandler := handlers.NewVerifyHandler(verificationService)
	clientHandler := handlers.NewClientHandler(clientService)
	projectHandler := handlers.NewProjectHandler(projectService)
	noteHandler := handlers.NewDeliveryNoteHandler(noteService)
	companyHandler := handlers.NewCompanyHandler(companyService, userService)
	logoHandler := handlers.NewLogoHandler(logoService, cfg.Files.RootDir, cfg.Files.PublicURL)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Uploaded logos are served back as static files.
	router.Static("/public", cfg.Files.RootDir)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	routes.SetupRoutes(
		router,
		cfg.JWT.Secret,
		userHandler,
		verifyHandler,
		clientHandler,
		projectHandler,
		noteHandler,
		companyHandler,
		logoHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Failed to start server: ", err)
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

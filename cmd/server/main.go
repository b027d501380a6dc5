package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/maheshrc27/autogram/configs"
	"github.com/maheshrc27/autogram/internal/api/handlers"
	"github.com/maheshrc27/autogram/internal/api/middleware"
	job "github.com/maheshrc27/autogram/internal/jobs"
	"github.com/maheshrc27/autogram/internal/platform"
	"github.com/maheshrc27/autogram/internal/queue"
	"github.com/maheshrc27/autogram/internal/repository"
	"github.com/maheshrc27/autogram/internal/service"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	postRepo := repository.NewPostRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	accountRepo := repository.NewAccountRepository(db)

	graphClient := platform.NewGraphClient(cfg.GraphAPIBaseURL)

	authService := service.NewAuthService(*cfg)
	r2Service := service.NewR2Service(*cfg)
	tokenManager := service.NewTokenManager(*cfg, graphClient, accountRepo)
	publisherService := service.NewPublisher(graphClient, accountRepo, postRepo, tokenManager, r2Service)
	generatorService := service.NewContentGenerator(templateRepo,
		service.NewAzureOpenAIStrategy(cfg.AzureOpenAI),
		service.NewLocalInferenceStrategy(cfg.LocalInferenceURI, cfg.GenerationModel),
	)
	composerService := service.NewImageComposer(cfg.ContentDir, cfg.FontPath)
	postService := service.NewPostService(postRepo, composerService, cfg.ContentDir)
	templateService := service.NewTemplateService(templateRepo)
	accountService := service.NewAccountService(*cfg, accountRepo, tokenManager)

	authMiddleware := middleware.NewAuthMiddleware(*cfg)

	auth := handlers.NewAuthHandler(*cfg, authService)
	app.Get("/login", auth.Login)
	app.Get("/login/callback", auth.LoginCallbackHandler)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	generate := handlers.NewGenerateHandler(generatorService)
	api.Post("/generate-content", generate.GenerateContent)

	post := handlers.NewPostHandler(postService, client)
	api.Post("/posts/create", post.CreatePost)
	api.Post("/publish-post/:id", post.PublishPost)
	api.Get("/posts", post.ListPosts)
	api.Post("/posts/remove", post.RemovePost)

	template := handlers.NewTemplateHandler(templateService)
	api.Get("/templates", template.ListTemplates)
	api.Post("/templates/create", template.CreateTemplate)
	api.Post("/templates/update", template.UpdateTemplate)
	api.Post("/templates/remove", template.RemoveTemplate)

	account := handlers.NewAccountHandler(accountService)
	api.Get("/accounts", account.ListAccounts)
	api.Post("/accounts/add", account.AddAccount)
	api.Post("/accounts/refresh", account.RefreshAccount)
	api.Post("/accounts/remove", account.RemoveAccount)

	// cron jobs
	refreshTokenJob := job.NewTokenRefreshJob(accountRepo, tokenManager)

	c := cron.New()
	c.AddFunc("@every 00h10m00s", refreshTokenJob.RefreshTokens)
	c.Start()

	scheduler := job.NewPostScheduler(cfg.PostFrequencyHours, generatorService, composerService, publisherService, postRepo)
	scheduler.Start()

	//queue
	queueW := queue.NewQueue(postRepo, publisherService)

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypePublishPost, queueW.HandlePublishPostTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db, scheduler)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB, scheduler *job.PostScheduler) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	scheduler.Stop()

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}

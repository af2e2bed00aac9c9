package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog/log"

	"github.com/monk-io/network-nexus-project/src/config"
	"github.com/monk-io/network-nexus-project/src/controllers"
	"github.com/monk-io/network-nexus-project/src/lib"
	"github.com/monk-io/network-nexus-project/src/middleware"
	"github.com/monk-io/network-nexus-project/src/repository"
	"github.com/monk-io/network-nexus-project/src/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	lib.SetupLogger(cfg.LogLevel)

	ctx := context.Background()

	mongoClient, err := lib.ConnectDB(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("Failed to disconnect MongoDB client")
		}
	}()

	db := mongoClient.Database(cfg.MongoDB)

	if err := lib.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure indexes")
	}

	redisClient, err := lib.ConnectCache(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Redis client")
		}
	}()

	users := repository.NewUserRepository(db)
	posts := repository.NewPostRepository(db)
	connections := repository.NewConnectionRepository(db)
	experiences := repository.NewExperienceRepository(db)
	educations := repository.NewEducationRepository(db)
	skills := repository.NewSkillRepository(db)
	feedCache := repository.NewFeedCache(redisClient)

	userController := controllers.NewUserController(users, connections, posts)
	postController := controllers.NewPostController(posts, users, connections, feedCache)
	connectionController := controllers.NewConnectionController(connections, users)
	experienceController := controllers.NewExperienceController(experiences, users)
	educationController := controllers.NewEducationController(educations, users)
	skillController := controllers.NewSkillController(skills, users)

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	protect := middleware.Protect(cfg.JWTSecret)

	routes.UserRoutes(app, userController, protect)
	routes.PostRoutes(app, postController, protect)
	routes.ConnectionRoutes(app, connectionController, protect)
	routes.ExperienceRoutes(app, experienceController, protect)
	routes.EducationRoutes(app, educationController, protect)
	routes.SkillRoutes(app, skillController, protect)

	app.Static("/", "./public")

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		log.Info().Msg("Shutting down server")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("Server shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Msg("Server is running")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Server stopped unexpectedly")
	}
}

// errorHandler turns unhandled errors into the uniform message envelope
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	if code == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("Unhandled error")
	}

	return c.Status(code).JSON(lib.MessageResponse(message))
}

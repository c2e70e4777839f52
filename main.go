package main

import (
	"log"

	"lms/config"
	"lms/database"
	assessmentRoutes "lms/routers/assessmentRoutes"
	authRoutes "lms/routers/authRoutes"
	certificateRoutes "lms/routers/certificateRoutes"
	hrRoutes "lms/routers/hrRoutes"
	learningRoutes "lms/routers/learningRoutes"
	managerRoutes "lms/routers/managerRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	learningRoutes.SetupLearningRoutes(app)
	assessmentRoutes.SetupAssessmentRoutes(app)
	certificateRoutes.SetupCertificateRoutes(app)
	managerRoutes.SetupManagerRoutes(app)
	hrRoutes.SetupHRRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}

package server

import (
	"flag"
	"fmt"
	"time"

	"civicmap/backend/auth"
	"civicmap/backend/classify"
	"civicmap/backend/db"
	"civicmap/backend/image"
	"civicmap/backend/metrics"
	"civicmap/backend/rabbitmq"

	"github.com/apex/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	EndPointHealth       = "/api/health"
	EndPointLogin        = "/api/login"
	EndPointReports      = "/api/reports"
	EndPointReportStatus = "/api/reports/:id/status"
	EndPointReport       = "/api/reports/:id"
	EndPointHeatmap      = "/api/reports/heatmap"
	EndPointStats        = "/api/stats"
	EndPointMetrics      = "/metrics"
)

var (
	serverPort    = flag.Int("port", 8080, "The port used by the service.")
	amqpURL       = flag.String("amqp_url", "", "RabbitMQ URL for report events. Empty disables publishing.")
	amqpExchange  = flag.String("amqp_exchange", "civicmap", "RabbitMQ exchange for report events.")
	amqpKey       = flag.String("amqp_routing_key", "report.created", "Routing key for report created events.")
	enableUploads = flag.Bool("enable_uploads", true, "Upload report photos to the image host.")
)

func StartService() {
	log.Info("Starting the service...")
	metrics.Register()

	pipeline = classify.NewDefaultPipeline()

	if *enableUploads {
		up, err := image.NewCloudinaryUploader()
		if err != nil {
			log.Warnf("Image hosting not configured, storing reports without photos: %v", err)
		} else {
			uploads = up
		}
	}

	if *amqpURL != "" {
		pub, err := rabbitmq.NewPublisher(*amqpURL, *amqpExchange, *amqpKey)
		if err != nil {
			log.Warnf("RabbitMQ publisher unavailable, report events disabled: %v", err)
		} else {
			publisher = pub
			defer publisher.Close()
		}
	}

	dbc, err := getServerDB()
	if err != nil {
		log.Fatalf("Error connecting to DB: %v", err)
	}
	if err := db.CreateTables(dbc); err != nil {
		log.Fatalf("Error setting up schema: %v", err)
	}
	store = db.NewReportStore(dbc)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowOrigins:     []string{"*"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET(EndPointHealth, Health)
	router.GET(EndPointMetrics, gin.WrapH(promhttp.Handler()))
	router.POST(EndPointLogin, Login)
	router.GET(EndPointReports, ListReports)
	router.POST(EndPointReports, CreateReport)
	router.GET(EndPointHeatmap, Heatmap)
	router.GET(EndPointStats, Stats)

	admin := router.Group("/", auth.Middleware())
	admin.PATCH(EndPointReportStatus, UpdateStatus)
	admin.DELETE(EndPointReport, DeleteReport)

	router.Run(fmt.Sprintf(":%d", *serverPort))
	log.Info("Finished the service. Should not ever being seen.")
}

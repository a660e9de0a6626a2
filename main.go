package main

import (
	"net/http"
	"os"

	"civicguard-be/agent"
	"civicguard-be/ai"
	"civicguard-be/capture"
	"civicguard-be/config"
	"civicguard-be/controllers"
	"civicguard-be/geo"
	"civicguard-be/location"
	"civicguard-be/models"
	"civicguard-be/routes"
	"civicguard-be/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found")
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	config.ConnectRedis()

	appStore := store.New()
	seedDemoUsers(appStore)

	locationService := location.NewService(envOr("LOCATION_DATA", "data/locations.json"))
	boundaryService := geo.NewBoundaries(envOr("BOUNDARY_DATA", "data/villageBoundaries.json"))

	genai := ai.NewClientFromEnv()
	sessionManager := agent.NewManager(agent.Deps{
		Provider:   capture.NewFakeProvider(),
		Locations:  locationService,
		Summarizer: ai.NewSummarizer(genai),
		Classifier: ai.NewClassifier(genai),
		Emotion:    ai.NewAnalyzer(genai),
	})

	controllers.Init(controllers.Deps{
		Store:      appStore,
		Locations:  locationService,
		Boundaries: boundaryService,
		Sessions:   sessionManager,
		Assistant:  ai.NewAssistant(),
	})

	r := gin.Default()
	r.Use(cors.Default())

	routes.AuthRoutes(r)
	routes.IssueRoutes(r)
	routes.CommunityRoutes(r)
	routes.AgentRoutes(r)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	addr := ":" + envOr("PORT", "8080")
	if err := r.Run(addr); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}

// seedDemoUsers creates the two accounts the demo flows expect: a leader
// for the console and a citizen reporter.
func seedDemoUsers(s *store.Store) {
	s.AddUser(models.User{
		Name:     "Ward Leader",
		Email:    "leader@civic.com",
		Role:     models.RoleLeader,
		District: "Coimbatore",
	})
	s.AddUser(models.User{
		Name:      "Demo Citizen",
		Email:     "citizen@civic.com",
		Role:      models.RoleCitizen,
		District:  "Coimbatore",
		Panchayat: "Pollachi",
		Village:   "Arasampalayam",
	})
}

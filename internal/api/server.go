package api

import (
	"errors"
	"net/http"

	"brewja/internal/analysis"
	"brewja/internal/brewery"
	"brewja/internal/monitoring"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Server is the presentation surface of the engine: a REST API plus a
// websocket feed of state snapshots. It never touches the ledgers directly,
// every mutation goes through an engine operation.
type Server struct {
	Router  *gin.Engine
	engine  *brewery.Engine
	advisor *analysis.Advisor
	metrics *monitoring.Metrics
	hub     *Hub
	log     *logrus.Logger

	jwtSecret string
}

// NewServer wires the engine to the HTTP surface. An empty jwtSecret
// disables authentication (single-operator desktop deployments).
func NewServer(engine *brewery.Engine, advisor *analysis.Advisor, metrics *monitoring.Metrics, log *logrus.Logger, jwtSecret string) *Server {
	if log == nil {
		log = logrus.New()
	}
	s := &Server{
		Router:    gin.Default(),
		engine:    engine,
		advisor:   advisor,
		metrics:   metrics,
		hub:       newHub(log),
		log:       log,
		jwtSecret: jwtSecret,
	}

	engine.OnChange = func(snap brewery.Snapshot) {
		if s.metrics != nil {
			s.metrics.ObserveSnapshot(snap)
		}
		s.hub.BroadcastSnapshot(snap)
	}
	go s.hub.run()

	s.setupRoutes()
	return s
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	// Health check
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "BrewJá API is running"})
	})

	s.Router.GET("/ws", s.handleWebSocket)

	v1 := s.Router.Group("/api/v1")
	if s.jwtSecret != "" {
		v1.Use(s.authMiddleware())
	}
	{
		v1.GET("/state", s.GetState)
		v1.GET("/history", s.GetHistory)

		// Raw-material inventory
		v1.GET("/materials", s.GetMaterials)
		v1.POST("/materials", s.ReceiveMaterial)
		v1.PUT("/materials/:id", s.UpdateMaterial)
		v1.DELETE("/materials/:id", s.DeleteMaterial)

		// Recipes
		v1.GET("/recipes", s.GetRecipes)
		v1.POST("/recipes", s.SaveRecipe)
		v1.DELETE("/recipes/:id", s.DeleteRecipe)

		// Tanks and batches
		v1.GET("/tanks", s.GetTanks)
		v1.POST("/tanks", s.CreateTank)
		v1.PUT("/tanks/:id", s.UpdateTank)
		v1.DELETE("/tanks/:id", s.DeleteTank)
		v1.POST("/tanks/:id/batch", s.StartBatch)
		v1.PUT("/tanks/:id/status", s.SetTankStatus)
		v1.PUT("/tanks/:id/quality-control", s.RecordQualityControl)
		v1.POST("/tanks/:id/finalize", s.FinalizeBatch)
		v1.POST("/tanks/:id/package/keg", s.PackageToKeg)
		v1.POST("/tanks/:id/package/bottles", s.PackageToBottles)
		v1.GET("/tanks/:id/analysis", s.AnalyzeTank)

		// Keg fleet
		v1.GET("/kegs", s.GetKegs)
		v1.POST("/kegs", s.CreateKeg)
		v1.POST("/kegs/:id/dispatch", s.DispatchKeg)
		v1.POST("/kegs/:id/return", s.ReturnKeg)
		v1.POST("/kegs/:id/bottle", s.BottleFromKeg)
		v1.GET("/kegs/:id/shelf-life", s.KegShelfLife)

		// Bottled stock
		v1.GET("/bottles", s.GetBottles)
		v1.POST("/bottles/sell", s.SellBottles)

		// Reports and analysis
		v1.GET("/reports/production", s.ProductionReport)
		v1.POST("/analysis/recipe-suggestion", s.SuggestRecipe)
	}
}

// authMiddleware validates JWT bearer tokens on the API group.
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(s.jwtSecret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// fail maps an engine failure kind to an HTTP status and counts the
// rejection.
func (s *Server) fail(c *gin.Context, err error) {
	if s.metrics != nil {
		s.metrics.RecordRejection(err)
	}
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, brewery.ErrNotFound), errors.Is(err, brewery.ErrLotNotFound):
		return http.StatusNotFound
	case errors.Is(err, brewery.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, brewery.ErrDuplicateKeg), errors.Is(err, brewery.ErrKegNotAvailable):
		return http.StatusConflict
	case errors.Is(err, brewery.ErrCapacityExceeded), errors.Is(err, brewery.ErrInsufficientStock):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/aebalz/mindful-journal/internal/cache"
	"github.com/aebalz/mindful-journal/pkg/database"
)

const healthPingTimeout = 2 * time.Second

// HealthHandler handles health check requests.
type HealthHandler struct {
	DB    *gorm.DB
	Cache cache.Cache
}

// NewHealthHandler creates a new HealthHandler. c may be nil.
func NewHealthHandler(db *gorm.DB, c cache.Cache) *HealthHandler {
	return &HealthHandler{DB: db, Cache: c}
}

// HealthCheckResponse defines the structure for the health check response.
type HealthCheckResponse struct {
	ServerStatus   string `json:"server_status"`
	DatabaseStatus string `json:"database_status"`
	CacheStatus    string `json:"cache_status"`
	Timestamp      string `json:"timestamp"`
}

// check pings the backing stores. Only a database failure makes the service unhealthy;
// the cache degrades to a no-op.
func (h *HealthHandler) check(ctx context.Context) (int, HealthCheckResponse) {
	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()

	response := HealthCheckResponse{
		ServerStatus:   "OK",
		DatabaseStatus: "OK",
		CacheStatus:    "disabled",
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	}
	if _, isRedis := h.Cache.(*cache.RedisCache); isRedis {
		response.CacheStatus = "OK"
		if err := h.Cache.Ping(ctx); err != nil {
			response.CacheStatus = "Error: " + err.Error()
		}
	}
	if err := database.PingDB(ctx, h.DB); err != nil {
		response.DatabaseStatus = "Error: " + err.Error()
		return http.StatusServiceUnavailable, response
	}
	return http.StatusOK, response
}

// @Summary API Health Check
// @Description Check the health of the API and database connection.
// @Tags Health
// @Produce json
// @Success 200 {object} HealthCheckResponse "Successfully checked health"
// @Failure 503 {object} HealthCheckResponse "Service unavailable if database ping fails"
// @Router /health [get]
// CheckHealthFiber is the health check endpoint handler for Fiber.
func (h *HealthHandler) CheckHealthFiber(c *fiber.Ctx) error {
	status, response := h.check(c.UserContext())
	return c.Status(status).JSON(response)
}

// CheckHealthGin is the health check endpoint handler for Gin.
func (h *HealthHandler) CheckHealthGin(c *gin.Context) {
	status, response := h.check(c.Request.Context())
	c.JSON(status, response)
}

package middleware

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"
	fibercors "github.com/gofiber/fiber/v2/middleware/cors"
)

var (
	corsHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader}
	corsMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
)

func allowsAll(origins []string) bool {
	return len(origins) == 0 || (len(origins) == 1 && origins[0] == "*")
}

// CORSGin allows the configured origins; a single "*" allows any.
func CORSGin(origins []string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	if allowsAll(origins) {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowHeaders = corsHeaders
	corsConfig.AllowMethods = corsMethods
	corsConfig.ExposeHeaders = []string{RequestIDHeader}
	return cors.New(corsConfig)
}

// CORSFiber is the fiber counterpart of CORSGin.
func CORSFiber(origins []string) fiber.Handler {
	corsConfig := fibercors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  strings.Join(corsHeaders, ", "),
		AllowMethods:  strings.Join(corsMethods, ", "),
		ExposeHeaders: RequestIDHeader,
	}
	if !allowsAll(origins) {
		corsConfig.AllowOrigins = strings.Join(origins, ",")
		corsConfig.AllowCredentials = true
	}
	return fibercors.New(corsConfig)
}

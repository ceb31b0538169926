// Package server exposes a Handler over HTTP.
package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rhartert/transit-router/handler"
	"github.com/rhartert/transit-router/parser"
)

// New returns a gin engine serving the following endpoints:
//
//	GET  /health
//	GET  /buses/:name
//	GET  /stops/:name
//	GET  /route?from=...&to=...
//	GET  /map (SVG image)
//	POST /answers (body: JSON array of stat requests)
//
// Answers have the same shape as the ones produced by the CLI. Requests about
// unknown routes or stops, and route requests between unconnected stops,
// respond with status 404.
func New(h *handler.Handler) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	r.Use(cors.New(config))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	r.GET("/buses/:name", func(c *gin.Context) {
		respond(c, h.Bus(0, c.Param("name")))
	})

	r.GET("/stops/:name", func(c *gin.Context) {
		respond(c, h.Stop(0, c.Param("name")))
	})

	r.GET("/route", func(c *gin.Context) {
		from, to := c.Query("from"), c.Query("to")
		if from == "" || to == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "query parameters from and to are required"})
			return
		}
		respond(c, h.Route(0, from, to))
	})

	r.GET("/map", func(c *gin.Context) {
		svg, ok := h.MapSVG()
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "map rendering is not configured"})
			return
		}
		c.Data(http.StatusOK, "image/svg+xml", []byte(svg))
	})

	r.POST("/answers", func(c *gin.Context) {
		requests, err := parser.ParseStatRequests(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, h.AnswerAll(requests))
	})

	return r
}

func respond(c *gin.Context, answer any) {
	if _, ok := answer.(handler.ErrorAnswer); ok {
		c.JSON(http.StatusNotFound, answer)
		return
	}
	c.JSON(http.StatusOK, answer)
}

package http

import (
	"net/http"
	"sort"

	"github.com/aescanero/trafficapi/internal/application/traffic"
	"github.com/aescanero/trafficapi/pkg/domain"
	"github.com/gin-gonic/gin"
)

// MessageResponse is the JSON banner returned by the root endpoint
type MessageResponse struct {
	Message string `json:"message"`
}

// handleRoot serves the banner: JSON for the random variant, an HTML page
// for the fixed one
func (s *Server) handleRoot(c *gin.Context) {
	if s.traffic.Variant() == traffic.VariantFixed {
		junctions := s.traffic.Junctions()
		sort.Strings(junctions)

		c.HTML(http.StatusOK, "index.html", gin.H{
			"Title":     "Smart Traffic Management",
			"Junctions": junctions,
		})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: domain.RootMessage})
}

// handleTraffic returns a freshly built snapshot
func (s *Server) handleTraffic(c *gin.Context) {
	c.JSON(http.StatusOK, s.traffic.Snapshot(c.Request.Context()))
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	resp := gin.H{
		"status":  "healthy",
		"variant": s.traffic.Variant(),
	}
	if s.publisher != nil {
		resp["feed"] = s.publisher.Status()
	}

	c.JSON(http.StatusOK, resp)
}

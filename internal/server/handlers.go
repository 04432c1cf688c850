package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mosaicdesk/bridge/internal/invoker"
	"github.com/mosaicdesk/bridge/internal/types"
)

// Handlers holds HTTP handler dependencies
type Handlers struct {
	invoker *invoker.Invoker
	prom    http.Handler
}

func newHandlers(inv *invoker.Invoker) *Handlers {
	return &Handlers{
		invoker: inv,
		prom:    promhttp.Handler(),
	}
}

// Root returns service identity
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "mosaicdesk-bridge",
		"version": "1.0.0",
		"endpoints": []string{
			"/health",
			"/capabilities",
			"/capabilities/discover",
			"/invoke",
			"/metrics",
		},
	})
}

// Health returns service health
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"registry": h.invoker.Registry().Stats(),
	})
}

// ListCapabilities returns all registered capability definitions
func (h *Handlers) ListCapabilities(c *gin.Context) {
	var category *types.Category
	if q := c.Query("category"); q != "" {
		cat := types.Category(q)
		category = &cat
	}

	c.JSON(http.StatusOK, gin.H{
		"capabilities": h.invoker.Registry().List(category),
	})
}

// DiscoverRequest is the body of POST /capabilities/discover
type DiscoverRequest struct {
	Intent string `json:"intent" binding:"required"`
	Limit  int    `json:"limit"`
}

// Discover finds capabilities relevant to an intent
func (h *Handlers) Discover(c *gin.Context) {
	var req DiscoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 5
	}

	c.JSON(http.StatusOK, gin.H{
		"capabilities": h.invoker.Registry().Discover(req.Intent, limit),
	})
}

// InvokeRequest is the body of POST /invoke
type InvokeRequest struct {
	Capability string                 `json:"capability" binding:"required"`
	Params     map[string]interface{} `json:"params"`
}

// Invoke runs a single capability invocation
func (h *Handlers) Invoke(c *gin.Context) {
	var req InvokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ictx := &types.Context{Origin: "http"}
	result := h.invoker.Invoke(c.Request.Context(), types.NewRequest(req.Capability, req.Params), ictx)

	c.JSON(statusFor(result), result)
}

// Metrics serves Prometheus metrics
func (h *Handlers) Metrics(c *gin.Context) {
	h.prom.ServeHTTP(c.Writer, c.Request)
}

// statusFor maps an outcome onto an HTTP status code.
func statusFor(result *types.Result) int {
	if result.Success {
		return http.StatusOK
	}
	switch result.Kind {
	case types.FailPrecondition:
		return http.StatusUnprocessableEntity
	case types.FailExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

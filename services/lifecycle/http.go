package lifecycle

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jlee061829/eventor/pkg/faults"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Lifecycle is the interface for the lifecycle query service.
type Lifecycle interface {
	Permissions(ctx context.Context, eventID string) (*Permissions, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provide the HTTP transport for.
	Service Lifecycle

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.GET("/events/:event_id/permissions", h.permissionsHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (s *httpHandler) permissionsHandler(c *gin.Context) {
	perms, err := s.Service.Permissions(c, c.Param("event_id"))
	if err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, perms)
}

package draft

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jlee061829/eventor/pkg/auth"
	"github.com/jlee061829/eventor/pkg/faults"
	"github.com/jlee061829/eventor/repos/records"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Draft is the interface for the draft service.
type Draft interface {
	StartDraft(ctx context.Context, callerUID, eventID string, seed *int64) (*records.Draft, error)
	PickPlayer(ctx context.Context, callerUID, eventID, teamID, playerID string) (*records.Draft, error)
	Draft(ctx context.Context, eventID string) (*records.Draft, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provide the HTTP transport for.
	Service Draft

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.POST("/events/:event_id/draft", h.startDraftHandler)
	r.POST("/events/:event_id/draft/picks", h.pickHandler)
	r.GET("/events/:event_id/draft", h.getDraftHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (s *httpHandler) startDraftHandler(c *gin.Context) {
	var request StartDraftRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
	}

	d, err := s.Service.StartDraft(c, auth.CallerUID(c), c.Param("event_id"), request.Seed)
	if err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *httpHandler) pickHandler(c *gin.Context) {
	var request PickRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	d, err := s.Service.PickPlayer(c, auth.CallerUID(c), c.Param("event_id"), request.TeamID, request.PlayerID)
	if err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *httpHandler) getDraftHandler(c *gin.Context) {
	d, err := s.Service.Draft(c, c.Param("event_id"))
	if err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, d)
}

package scores

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jlee061829/eventor/pkg/auth"
	"github.com/jlee061829/eventor/pkg/faults"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Scores is the interface for the score service.
type Scores interface {
	RecordScores(ctx context.Context, callerUID, eventID, subEventID string, entries map[string]string) (*RecordResult, error)
	Leaderboard(ctx context.Context, eventID string) ([]Standing, error)
	CompleteEvent(ctx context.Context, callerUID, eventID string) error
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provide the HTTP transport for.
	Service Scores

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.POST("/events/:event_id/sub-events/:sub_event_id/scores", h.recordScoresHandler)
	r.GET("/events/:event_id/leaderboard", h.leaderboardHandler)
	r.POST("/events/:event_id/complete", h.completeEventHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (s *httpHandler) recordScoresHandler(c *gin.Context) {
	var request RecordScoresRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	result, err := s.Service.RecordScores(c, auth.CallerUID(c), c.Param("event_id"), c.Param("sub_event_id"), request.Entries)
	if errors.Is(err, faults.ErrNoChanges) {
		c.JSON(http.StatusOK, gin.H{"result": "no changes"})
		return
	}
	if err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *httpHandler) leaderboardHandler(c *gin.Context) {
	standings, err := s.Service.Leaderboard(c, c.Param("event_id"))
	if err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, standings)
}

func (s *httpHandler) completeEventHandler(c *gin.Context) {
	if err := s.Service.CompleteEvent(c, auth.CallerUID(c), c.Param("event_id")); err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "event completed"})
}

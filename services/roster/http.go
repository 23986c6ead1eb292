package roster

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
	DELETE(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Roster is the interface for the roster service.
type Roster interface {
	AssignCaptain(ctx context.Context, callerUID, eventID, participantID string) (*records.Team, error)
	RemoveCaptain(ctx context.Context, callerUID, eventID, captainID string) error
	Teams(ctx context.Context, eventID string) ([]records.Team, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provide the HTTP transport for.
	Service Roster

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.POST("/events/:event_id/captains", h.assignCaptainHandler)
	r.DELETE("/events/:event_id/captains/:user_id", h.removeCaptainHandler)
	r.GET("/events/:event_id/teams", h.teamsHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (s *httpHandler) assignCaptainHandler(c *gin.Context) {
	var request AssignCaptainRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	team, err := s.Service.AssignCaptain(c, auth.CallerUID(c), c.Param("event_id"), request.ParticipantID)
	if err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, team)
}

func (s *httpHandler) removeCaptainHandler(c *gin.Context) {
	err := s.Service.RemoveCaptain(c, auth.CallerUID(c), c.Param("event_id"), c.Param("user_id"))
	if err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "captain removed"})
}

func (s *httpHandler) teamsHandler(c *gin.Context) {
	teams, err := s.Service.Teams(c, c.Param("event_id"))
	if err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, teams)
}

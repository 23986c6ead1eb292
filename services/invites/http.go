package invites

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

// Invites is the interface for the invitation service.
type Invites interface {
	InviteParticipant(ctx context.Context, callerUID, eventID, email string) (*records.Invite, error)
	AcceptInvite(ctx context.Context, callerUID, callerEmail, code string) (*records.Event, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provide the HTTP transport for.
	Service Invites

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.POST("/events/:event_id/invites", h.inviteHandler)
	r.POST("/accept", h.acceptHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (s *httpHandler) inviteHandler(c *gin.Context) {
	var request InviteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	invite, err := s.Service.InviteParticipant(c, auth.CallerUID(c), c.Param("event_id"), request.Email)
	if err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"result":  "invite sent",
		"eventId": invite.EventID,
		"email":   invite.Email,
	})
}

func (s *httpHandler) acceptHandler(c *gin.Context) {
	var request AcceptRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	ev, err := s.Service.AcceptInvite(c, auth.CallerUID(c), auth.CallerEmail(c), request.Code)
	if err != nil {
		c.JSON(faults.HTTPStatus(err), gin.H{"error": err.Error()})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"eventId": ev.ID, "status": ev.Status})
}

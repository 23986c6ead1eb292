package roster

// AssignCaptainRequest names the participant to promote.
type AssignCaptainRequest struct {
	ParticipantID string `json:"participantId" binding:"required"`
}

package scores

// RecordScoresRequest carries raw textual point values keyed by team id.
// An empty value clears the team's score for the sub-event.
type RecordScoresRequest struct {
	Entries map[string]string `json:"entries" binding:"required"`
}

package draft

// StartDraftRequest optionally pins the shuffle seed so an admin can rerun
// a draft order deterministically (dry runs, support tickets).
type StartDraftRequest struct {
	Seed *int64 `json:"seed,omitempty"`
}

// PickRequest names the team making the pick and the player picked.
type PickRequest struct {
	TeamID   string `json:"teamId" binding:"required"`
	PlayerID string `json:"playerId" binding:"required"`
}

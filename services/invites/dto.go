package invites

// InviteRequest names the email address to invite.
type InviteRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// AcceptRequest carries the code from the invitation link.
type AcceptRequest struct {
	Code string `json:"code" binding:"required"`
}

package models

import "time"

// Permission bits carried in the login server's JWT claims.
const (
	PermissionView int64 = 1 << iota
	PermissionEdit
)

// Editor represents an authenticated map client
type Editor struct {
	// From JWT claims
	ID          string `json:"id"`          // Converted from int64 user_id
	Username    string `json:"username"`    // JWT claim
	Email       string `json:"email"`       // JWT claim
	Permissions int64  `json:"permissions"` // JWT claim: bitwise permission flags

	// Connection state
	Connected   bool      `json:"connected"`
	ConnectedAt time.Time `json:"connected_at"`
	LastSeen    time.Time `json:"last_seen"`

	// Session state
	SessionID string `json:"session_id"`
}

// CanEdit checks whether the editor may change map terrain
func (e *Editor) CanEdit() bool {
	return e.Permissions&PermissionEdit != 0
}

// IsConnected checks if the editor is currently connected
func (e *Editor) IsConnected() bool {
	return e.Connected
}

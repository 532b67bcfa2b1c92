package tailscale

import (
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
)

// Status is the subset of `tailscale status --json` this module reads.
type Status struct {
	Self *PeerStatus            `json:"Self"`
	Peer map[string]*PeerStatus `json:"Peer"`
	User map[string]UserProfile `json:"User"`
}

// PeerStatus describes one node of the tailnet, including the local one.
type PeerStatus struct {
	UserID   *int64   `json:"UserID"`
	DNSName  string   `json:"DNSName"`
	HostName string   `json:"HostName"`
	Online   bool     `json:"Online"`
	Tags     []string `json:"Tags,omitempty"`
}

// UserProfile is an entry of the status "User" map.
type UserProfile struct {
	ID          int64  `json:"ID"`
	LoginName   string `json:"LoginName"`
	DisplayName string `json:"DisplayName"`
}

var (
	ErrMissingSelf   = errors.New("status has no Self entry")
	ErrMissingUserID = errors.New("status entry has no UserID")
)

// ParseStatus decodes status JSON and checks the fields every caller relies on.
func ParseStatus(data []byte) (*Status, error) {
	var status Status
	if err := sonic.Unmarshal(data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status: %w", err)
	}
	if status.Self == nil {
		return nil, ErrMissingSelf
	}
	if status.Self.UserID == nil {
		return nil, fmt.Errorf("self: %w", ErrMissingUserID)
	}
	return &status, nil
}

// SelfUserID returns the identity that owns the local node.
func (s *Status) SelfUserID() int64 {
	return *s.Self.UserID
}

// SelfLoginName returns the login of the local node's owner, or "" if the
// status did not include user profiles.
func (s *Status) SelfLoginName() string {
	for _, u := range s.User {
		if u.ID == s.SelfUserID() {
			return u.LoginName
		}
	}
	return ""
}

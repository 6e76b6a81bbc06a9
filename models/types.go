package models

import "time"

// Settings keys
const (
	SettingHost          = "host"
	SettingEndAt         = "endAt"
	SettingCurrentWinner = "currentWinner"
)

// Error reasons (machine-readable)
const (
	ReasonMissingField       = "missing_field"
	ReasonInvalidJSON        = "invalid_json"
	ReasonInvalidID          = "invalid_id"
	ReasonNotFound           = "not_found"
	ReasonAlreadyVoted       = "already_voted"
	ReasonUnauthorized       = "unauthorized"
	ReasonInvalidCredentials = "invalid_credentials"
	ReasonRateLimited        = "rate_limited"
	ReasonInternal           = "internal"
)

// Request types

type RegisterRequest struct {
	Name  string `json:"name"`
	Link  string `json:"link"`
	About string `json:"about"`
}

// VoteRequest body is optional; voterId falls back to X-Voter-Id or the client address
type VoteRequest struct {
	VoterID string `json:"voterId"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type DeclareWinnerRequest struct {
	WinnerID int64 `json:"winnerId"`
}

type SetHostRequest struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

// EndAt is a pointer so an absent field can be told apart from "" (unset)
type SetEndAtRequest struct {
	EndAt *string `json:"endAt"`
}

// Response types

type RegisterResponse struct {
	Message string  `json:"message"`
	Channel Channel `json:"channel"`
}

type VoteResponse struct {
	Message string `json:"message"`
	Votes   int    `json:"votes"`
}

type LoginResponse struct {
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SessionResponse struct {
	Admin     bool      `json:"admin"`
	ExpiresAt time.Time `json:"expires_at"`
}

type DeclareWinnerResponse struct {
	Message string `json:"message"`
	Winner  Winner `json:"winner"`
}

type HostResponse struct {
	Message string `json:"message"`
	Host    Host   `json:"hostChannel"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Domain types

type Channel struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Link      string    `json:"link"`
	About     string    `json:"about"`
	Votes     int       `json:"votes"`
	CreatedAt time.Time `json:"created_at"`
}

type Vote struct {
	ID        int64     `json:"id"`
	ChannelID int64     `json:"channel_id"`
	VoterKey  string    `json:"-"` // Never expose in JSON
	CreatedAt time.Time `json:"created_at"`
}

type Winner struct {
	ID         int64     `json:"id"`
	ChannelID  int64     `json:"channel_id"`
	Name       string    `json:"name"`
	Link       string    `json:"link"`
	About      string    `json:"about"`
	Votes      int       `json:"votes"`
	DeclaredAt time.Time `json:"declared_at"`
}

// Host is stored JSON-encoded under the "host" setting
type Host struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

type CompetitionStatus struct {
	Host            Host     `json:"host"`
	EndAt           string   `json:"endAt"`
	CurrentWinnerID *int64   `json:"currentWinner"`
	CurrentWinner   *Channel `json:"currentWinnerChannel,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

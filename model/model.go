// Package model defines the core domain types for the campus event service.
package model

import "time"

// Role gates what a signed-in user may do.
type Role string

const (
	RoleStudent          Role = "student"
	RoleFaculty          Role = "faculty"
	RoleKSACMember       Role = "ksac_member"
	RoleSocietyPresident Role = "society_president"
	RoleAdmin            Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleFaculty, RoleKSACMember, RoleSocietyPresident, RoleAdmin:
		return true
	}
	return false
}

// IsAdminTier reports whether r may manage other users' events, profiles and
// the banned word list.
func (r Role) IsAdminTier() bool {
	return r == RoleAdmin || r == RoleFaculty || r == RoleKSACMember
}

// CanTriage reports whether r may read and answer event requests.
func (r Role) CanTriage() bool {
	return r.IsAdminTier() || r == RoleSocietyPresident
}

// Event is a campus activity students can browse and register for.
type Event struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Category          string    `json:"category"`
	Date              string    `json:"date"`
	Time              string    `json:"time"`
	Venue             string    `json:"venue"`
	PosterURL         string    `json:"poster_url"`
	RegistrationURL   string    `json:"registration_url"`
	Society           string    `json:"society"`
	CreatedBy         *string   `json:"created_by"`
	IsLocked          bool      `json:"is_locked"`
	IsExpired         bool      `json:"is_expired"`
	LocationID        *string   `json:"location_id"`
	LocationLat       *float64  `json:"location_lat"`
	LocationLng       *float64  `json:"location_lng"`
	LocationAddress   *string   `json:"location_address"`
	RegistrationCount int       `json:"registration_count"`
	CreatedAt         time.Time `json:"created_at"`

	// PasswordHash is the bcrypt hash of the event password; never serialised.
	PasswordHash string `json:"-"`
}

// User is a registered account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	SocietyName  *string   `json:"society_name"`
	CreatedAt    time.Time `json:"created_at"`
	PasswordHash string    `json:"-"`
}

// Registration records that a user signed up for an event.
type Registration struct {
	ID           string    `json:"id"`
	EventID      string    `json:"event_id"`
	UserID       string    `json:"user_id"`
	UserEmail    string    `json:"user_email"`
	RegisteredAt time.Time `json:"registered_at"`
}

// RegisteredEvent is an event joined with the caller's registration.
type RegisteredEvent struct {
	Event
	RegisteredAt time.Time `json:"registered_at"`
	UserEmail    string    `json:"user_email"`
}

// Request statuses.
const (
	StatusPending   = "pending"
	StatusResponded = "responded"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
)

// ValidRequestStatus reports whether s is a status a request may be set to.
func ValidRequestStatus(s string) bool {
	switch s {
	case StatusPending, StatusResponded, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// EventRequest is a student's ask for a new event, triaged by the assistant.
type EventRequest struct {
	ID               string     `json:"id"`
	UserID           *string    `json:"user_id"`
	UserEmail        string     `json:"user_email"`
	UserName         *string    `json:"user_name"`
	RequestText      string     `json:"request_text"`
	CategoryDetected string     `json:"category_detected"`
	Sentiment        string     `json:"sentiment"`
	AutoResponse     string     `json:"auto_response"`
	Status           string     `json:"status"`
	AdminResponse    *string    `json:"admin_response"`
	AdminID          *string    `json:"admin_id"`
	AdminName        *string    `json:"admin_name"`
	SocietyName      *string    `json:"society_name"`
	CreatedAt        time.Time  `json:"created_at"`
	RespondedAt      *time.Time `json:"responded_at"`
}

// BannedWord blocks event creation when it appears in event text.
type BannedWord struct {
	ID           string    `json:"id"`
	Word         string    `json:"word"`
	Reason       string    `json:"reason"`
	AddedBy      *string   `json:"-"`
	AddedByEmail *string   `json:"added_by_email"`
	CreatedAt    time.Time `json:"created_at"`
}

// EventFilter narrows an event listing.
type EventFilter struct {
	Category    string
	Search      string
	ShowExpired bool
	From        string
	To          string
}

// RequestFilter narrows an event request listing.
type RequestFilter struct {
	Status string
	Days   int
}

// Stats summarises events and registrations.
type Stats struct {
	TotalEvents        int            `json:"total_events"`
	TotalRegistrations int            `json:"total_registrations"`
	CategoryStats      map[string]int `json:"category_stats"`
}

// RequestStats summarises event requests.
type RequestStats struct {
	TotalRequests   int            `json:"total_requests"`
	PendingRequests int            `json:"pending_requests"`
	CategoryStats   map[string]int `json:"category_stats"`
	SentimentStats  map[string]int `json:"sentiment_stats"`
}

// CategoryCount is one row of a GROUP BY category query.
type CategoryCount struct {
	Category string
	Count    int
}

// ─── Request payloads ─────────────────────────────────────────────────────────

// CreateEventRequest is the payload for creating a new event.
type CreateEventRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Date            string   `json:"date"`
	Time            string   `json:"time"`
	Venue           string   `json:"venue"`
	PosterURL       string   `json:"poster_url"`
	RegistrationURL string   `json:"registration_url"`
	Society         string   `json:"society"`
	EventPassword   string   `json:"event_password"`
	LocationID      *string  `json:"location_id"`
	LocationLat     *float64 `json:"location_lat"`
	LocationLng     *float64 `json:"location_lng"`
	LocationAddress *string  `json:"location_address"`
}

// RegisterRequest is the payload for registering for an event.
type RegisterRequest struct {
	EventPassword string `json:"event_password"`
	Email         string `json:"email"`
}

// ExpireRequest toggles an event's expired flag. A nil value means true.
type ExpireRequest struct {
	IsExpired *bool `json:"is_expired"`
}

// VerifyPasswordRequest checks an event password without registering.
type VerifyPasswordRequest struct {
	Password string `json:"password"`
}

// SignupRequest creates an account.
type SignupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	Role        Role   `json:"role"`
	SecretKey   string `json:"secret_key"`
	SocietyName string `json:"society_name"`
}

// LoginRequest authenticates an account.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries a bearer token and the signed-in user.
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// SubmitRequestPayload is a chatbot event request.
type SubmitRequestPayload struct {
	Request string `json:"request"`
}

// RespondRequestPayload answers an event request.
type RespondRequestPayload struct {
	Response string `json:"response"`
	Status   string `json:"status"`
}

// BannedWordRequest adds a banned word.
type BannedWordRequest struct {
	Word   string `json:"word"`
	Reason string `json:"reason"`
}

// EventDraft is the subset of event fields the scoring endpoints read.
type EventDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Venue       string `json:"venue"`
	Society     string `json:"society"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

package adoptions

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDeclined Status = "declined"
)

// IsResolved: approved y declined son terminales.
func (s Status) IsResolved() bool {
	return s == StatusApproved || s == StatusDeclined
}

// Role indica desde qué lado un usuario mira sus solicitudes.
type Role string

const (
	RoleOwner     Role = "owner"
	RoleRequester Role = "requester"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleOwner, RoleRequester:
		return Role(s), true
	default:
		return "", false
	}
}

// Request es una solicitud de adopción. La identidad lógica es (PetID, RequesterName);
// ID es solo un handle informativo.
type Request struct {
	ID string `json:"id,omitempty"`

	PetID         string `json:"petId"`
	RequesterName string `json:"requesterName"`
	OwnerName     string `json:"ownerName"` // denormalizado, informativo

	Message string    `json:"message,omitempty"`
	Status  Status    `json:"status"`
	Date    time.Time `json:"date"`

	SeenByRequester bool `json:"seenByRequester"`
	SeenByOwner     bool `json:"seenByOwner"`
}

type SendInput struct {
	PetID         string
	RequesterName string
	OwnerName     string
	Message       string
}

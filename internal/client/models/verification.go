package models

type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "pending"
	DocumentAccepted DocumentStatus = "accepted"
	DocumentRejected DocumentStatus = "rejected"
)

// VerificationDocument is one identity document uploaded by a landlord.
type VerificationDocument struct {
	ID              string         `json:"id"`
	IDType          string         `json:"idType"`
	FileRef         string         `json:"fileRef"`
	Status          DocumentStatus `json:"status"`
	RejectionReason string         `json:"rejectionReason,omitempty"`
}

type LandlordProfile struct {
	DisplayName  string `json:"displayName"`
	Email        string `json:"email"`
	ProfileImage string `json:"profileImage,omitempty"`
}

type Landlord struct {
	ID        string                 `json:"id"`
	Profile   LandlordProfile        `json:"profile"`
	Documents []VerificationDocument `json:"idDocuments"`
	Verified  bool                   `json:"verified"`
}

func (l Landlord) Key() string { return l.ID }

// Document returns the document with the given id.
func (l Landlord) Document(id string) (VerificationDocument, bool) {
	for _, d := range l.Documents {
		if d.ID == id {
			return d, true
		}
	}
	return VerificationDocument{}, false
}

// Approval is one element of the approval set submitted for a landlord.
type Approval struct {
	DocumentID string         `json:"docId"`
	Status     DocumentStatus `json:"status"`
	Reason     string         `json:"reason,omitempty"`
}

type VerifyRequest struct {
	LandlordID string     `json:"landlordId"`
	Approvals  []Approval `json:"approvals"`
}

type VerifyResponse struct {
	LandlordVerified bool                   `json:"landlordVerified"`
	Documents        []VerificationDocument `json:"idDocuments"`
	Message          string                 `json:"message,omitempty"`
}

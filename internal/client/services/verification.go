package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/rentadmin/internal/client/client"
	"github.com/dmitrijs2005/rentadmin/internal/client/models"
	"github.com/dmitrijs2005/rentadmin/internal/common"
)

type VerificationService interface {
	Pending(ctx context.Context) ([]models.Landlord, error)
	// Decide sets one document's status by submitting the landlord's whole
	// approval set with that document overridden.
	Decide(ctx context.Context, landlord models.Landlord, docID string, status models.DocumentStatus, reason string) (*models.VerifyResponse, error)
	DeleteDocument(ctx context.Context, landlordID, docID string) error
}

type verificationService struct {
	client client.Client
}

func NewVerificationService(c client.Client) VerificationService {
	return &verificationService{client: c}
}

func (s *verificationService) Pending(ctx context.Context) ([]models.Landlord, error) {
	return s.client.LandlordsForVerification(ctx)
}

func (s *verificationService) Decide(ctx context.Context, landlord models.Landlord, docID string, status models.DocumentStatus, reason string) (*models.VerifyResponse, error) {
	approvals, err := ApprovalSet(landlord, docID, status, reason)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.VerifyLandlord(ctx, models.VerifyRequest{LandlordID: landlord.ID, Approvals: approvals})
	if err != nil {
		return nil, fmt.Errorf("verify landlord %s: %w", landlord.ID, err)
	}
	return resp, nil
}

func (s *verificationService) DeleteDocument(ctx context.Context, landlordID, docID string) error {
	return s.client.DeleteLandlordDocument(ctx, landlordID, docID)
}

// ApprovalSet builds the approvals for every document of landlord, each with
// its current status, except docID which gets status and reason. Only a
// pending document can be decided, and rejecting needs a non-blank reason.
func ApprovalSet(landlord models.Landlord, docID string, status models.DocumentStatus, reason string) ([]models.Approval, error) {
	switch status {
	case models.DocumentAccepted:
		reason = ""
	case models.DocumentRejected:
		reason = strings.TrimSpace(reason)
		if reason == "" {
			return nil, common.ErrReasonRequired
		}
	default:
		return nil, fmt.Errorf("%w: documents can only be accepted or rejected", common.ErrorValidation)
	}
	doc, ok := landlord.Document(docID)
	if !ok {
		return nil, fmt.Errorf("document %s of landlord %s: %w", docID, landlord.ID, common.ErrorNotFound)
	}
	if doc.Status != models.DocumentPending {
		return nil, fmt.Errorf("%w: document %s is already %s", common.ErrInvalidTransition, docID, doc.Status)
	}

	approvals := make([]models.Approval, 0, len(landlord.Documents))
	for _, d := range landlord.Documents {
		a := models.Approval{DocumentID: d.ID, Status: d.Status, Reason: d.RejectionReason}
		if d.ID == docID {
			a.Status = status
			a.Reason = reason
		}
		approvals = append(approvals, a)
	}
	return approvals, nil
}

package screens

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/rentadmin/internal/client/dialog"
	"github.com/dmitrijs2005/rentadmin/internal/client/models"
	"github.com/dmitrijs2005/rentadmin/internal/client/services"
	"github.com/dmitrijs2005/rentadmin/internal/common"
	"github.com/dmitrijs2005/rentadmin/internal/logging"
)

// DocumentFetcher saves a document file locally. files.Downloader satisfies it.
type DocumentFetcher interface {
	Fetch(ctx context.Context, ref, prefix string) (string, error)
}

// VerificationScreen is the landlord identity-document queue. While a
// request for a landlord is outstanding that landlord is "acting" and a
// second action on it fails with common.ErrBusy.
type VerificationScreen struct {
	svc     services.VerificationService
	fetcher DocumentFetcher
	logger  logging.Logger

	mu        sync.Mutex
	landlords []models.Landlord
	acting    map[string]bool
	gen       uint64
	closed    bool
}

func NewVerificationScreen(svc services.VerificationService, fetcher DocumentFetcher, logger logging.Logger) *VerificationScreen {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &VerificationScreen{
		svc:     svc,
		fetcher: fetcher,
		logger:  logger,
		acting:  map[string]bool{},
	}
}

func (s *VerificationScreen) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	landlords, err := s.svc.Pending(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.gen {
		return nil
	}
	if err != nil {
		return err
	}
	s.landlords = landlords
	return nil
}

// Landlords returns a copy of the pending queue.
func (s *VerificationScreen) Landlords() []models.Landlord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Landlord, len(s.landlords))
	for i, l := range s.landlords {
		l.Documents = slices.Clone(l.Documents)
		out[i] = l
	}
	return out
}

func (s *VerificationScreen) Landlord(id string) (models.Landlord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return models.Landlord{}, fmt.Errorf("landlord %s: %w", id, common.ErrorNotFound)
	}
	l := s.landlords[i]
	l.Documents = slices.Clone(l.Documents)
	return l, nil
}

func (s *VerificationScreen) Acting(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acting[id]
}

func (s *VerificationScreen) index(id string) int {
	return slices.IndexFunc(s.landlords, func(l models.Landlord) bool { return l.ID == id })
}

// begin marks landlordID as acting and returns a copy of its row.
func (s *VerificationScreen) begin(landlordID string) (models.Landlord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return models.Landlord{}, ErrClosed
	}
	i := s.index(landlordID)
	if i < 0 {
		return models.Landlord{}, fmt.Errorf("landlord %s: %w", landlordID, common.ErrorNotFound)
	}
	if s.acting[landlordID] {
		return models.Landlord{}, fmt.Errorf("landlord %s: %w", landlordID, common.ErrBusy)
	}
	s.acting[landlordID] = true
	l := s.landlords[i]
	l.Documents = slices.Clone(l.Documents)
	return l, nil
}

func (s *VerificationScreen) end(landlordID string) {
	s.mu.Lock()
	delete(s.acting, landlordID)
	s.mu.Unlock()
}

func (s *VerificationScreen) Accept(ctx context.Context, landlordID, docID string) (*models.VerifyResponse, error) {
	return s.decide(ctx, landlordID, docID, models.DocumentAccepted, "")
}

// Reject needs a non-blank reason; a blank one fails with
// common.ErrReasonRequired and nothing is sent.
func (s *VerificationScreen) Reject(ctx context.Context, landlordID, docID, reason string) (*models.VerifyResponse, error) {
	return s.decide(ctx, landlordID, docID, models.DocumentRejected, reason)
}

func (s *VerificationScreen) decide(ctx context.Context, landlordID, docID string, status models.DocumentStatus, reason string) (*models.VerifyResponse, error) {
	landlord, err := s.begin(landlordID)
	if err != nil {
		return nil, err
	}
	defer s.end(landlordID)

	resp, err := s.svc.Decide(ctx, landlord, docID, status, reason)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return resp, nil
	}
	i := s.index(landlordID)
	switch {
	case i < 0:
	case resp.LandlordVerified:
		s.landlords = slices.Delete(s.landlords, i, i+1)
		s.logger.Info(ctx, "landlord verified", "landlord_id", landlordID)
	default:
		s.landlords[i].Documents = slices.Clone(resp.Documents)
	}
	return resp, nil
}

// DeleteDocument asks for confirmation and removes the document from the
// row once the server confirms the delete.
func (s *VerificationScreen) DeleteDocument(ctx context.Context, landlordID, docID string, c Confirmer) error {
	landlord, err := s.Landlord(landlordID)
	if err != nil {
		return err
	}
	doc, ok := landlord.Document(docID)
	if !ok {
		return fmt.Errorf("document %s: %w", docID, common.ErrorNotFound)
	}

	return confirm(ctx, c, dialog.Options{
		Title:        "Delete document",
		Message:      fmt.Sprintf("Delete %s document %s of %s?", doc.IDType, doc.ID, landlord.Profile.DisplayName),
		ConfirmLabel: "Delete",
		Destructive:  true,
		InitialFocus: dialog.FocusCancel,
		OnConfirm: func(ctx context.Context) error {
			if _, err := s.begin(landlordID); err != nil {
				return err
			}
			defer s.end(landlordID)

			if err := s.svc.DeleteDocument(ctx, landlordID, docID); err != nil {
				return err
			}

			s.mu.Lock()
			defer s.mu.Unlock()
			if i := s.index(landlordID); i >= 0 {
				s.landlords[i].Documents = slices.DeleteFunc(s.landlords[i].Documents,
					func(d models.VerificationDocument) bool { return d.ID == docID })
			}
			return nil
		},
	})
}

// Open downloads a document file and returns where it was saved.
func (s *VerificationScreen) Open(ctx context.Context, landlordID, docID string) (string, error) {
	if s.fetcher == nil {
		return "", fmt.Errorf("document downloads are not configured")
	}
	landlord, err := s.Landlord(landlordID)
	if err != nil {
		return "", err
	}
	doc, ok := landlord.Document(docID)
	if !ok {
		return "", fmt.Errorf("document %s: %w", docID, common.ErrorNotFound)
	}
	return s.fetcher.Fetch(ctx, doc.FileRef, landlordID+"-"+docID)
}

func (s *VerificationScreen) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

package screens

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/dmitrijs2005/rentadmin/internal/client/models"
	"github.com/dmitrijs2005/rentadmin/internal/client/services"
	"github.com/dmitrijs2005/rentadmin/internal/common"
	"github.com/dmitrijs2005/rentadmin/internal/testserver"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func landlord(id string, docs ...string) models.Landlord {
	l := models.Landlord{ID: id, Profile: models.LandlordProfile{DisplayName: "Landlord " + id}}
	for _, d := range docs {
		l.Documents = append(l.Documents, models.VerificationDocument{
			ID: d, IDType: "passport", FileRef: "/uploads/ids/" + d + ".jpg", Status: models.DocumentPending,
		})
	}
	return l
}

type fakeFetcher struct {
	ref, prefix string
}

func (f *fakeFetcher) Fetch(_ context.Context, ref, prefix string) (string, error) {
	f.ref, f.prefix = ref, prefix
	return "download/" + prefix, nil
}

func openVerification(t *testing.T, landlords ...models.Landlord) (*VerificationScreen, *testserver.Server, *fakeFetcher) {
	t.Helper()
	srv, c := backend(t)
	srv.Landlords = landlords

	f := &fakeFetcher{}
	s := NewVerificationScreen(services.NewVerificationService(c), f, nil)
	t.Cleanup(s.Close)
	require.NoError(t, s.Load(context.Background()))
	return s, srv, f
}

func TestVerificationScreen_ExampleScenario(t *testing.T) {
	fake := &scriptedVerification{
		resp: &models.VerifyResponse{
			LandlordVerified: false,
			Documents: []models.VerificationDocument{
				{ID: "1", Status: models.DocumentAccepted},
				{ID: "2", Status: models.DocumentPending},
			},
		},
	}
	s := NewVerificationScreen(fake, nil, nil)
	fake.pending = []models.Landlord{landlord("L", "1", "2")}
	require.NoError(t, s.Load(context.Background()))

	_, err := s.Accept(context.Background(), "L", "1")
	require.NoError(t, err)

	want := []models.Approval{
		{DocumentID: "1", Status: models.DocumentAccepted},
		{DocumentID: "2", Status: models.DocumentPending},
	}
	if diff := cmp.Diff(want, fake.lastApprovals); diff != "" {
		t.Errorf("approval set mismatch (-want +got):\n%s", diff)
	}

	l, err := s.Landlord("L")
	require.NoError(t, err, "landlord stays in the queue")
	assert.Equal(t, models.DocumentAccepted, l.Documents[0].Status)
	assert.Equal(t, models.DocumentPending, l.Documents[1].Status)
}

func TestVerificationScreen_VerifiedLandlordLeavesQueue(t *testing.T) {
	s, srv, _ := openVerification(t, landlord("L", "1", "2"), landlord("M", "3"))

	resp, err := s.Accept(context.Background(), "L", "2")
	require.NoError(t, err)
	assert.True(t, resp.LandlordVerified)

	ids := []string{}
	for _, l := range s.Landlords() {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []string{"M"}, ids)

	var sent models.VerifyRequest
	require.NoError(t, json.Unmarshal(srv.Requests()[1].Body, &sent))
	assert.Len(t, sent.Approvals, 2)
}

func TestVerificationScreen_RejectNeedsReason(t *testing.T) {
	s, srv, _ := openVerification(t, landlord("L", "1"))

	_, err := s.Reject(context.Background(), "L", "1", "   ")
	require.ErrorIs(t, err, common.ErrReasonRequired)
	assert.Zero(t, srv.Count(http.MethodPost, "/users/verify-landlord-id"))
	assert.False(t, s.Acting("L"))

	resp, err := s.Reject(context.Background(), "L", "1", "photo is blurry")
	require.NoError(t, err)
	assert.False(t, resp.LandlordVerified)
	l, err := s.Landlord("L")
	require.NoError(t, err)
	assert.Equal(t, models.DocumentRejected, l.Documents[0].Status)
	assert.Equal(t, "photo is blurry", l.Documents[0].RejectionReason)
}

func TestVerificationScreen_DecidedDocumentIsFinal(t *testing.T) {
	l := landlord("L", "1", "2")
	l.Documents[0].Status = models.DocumentRejected
	l.Documents[0].RejectionReason = "blurry"
	s, srv, _ := openVerification(t, l)

	_, err := s.Accept(context.Background(), "L", "1")
	require.ErrorIs(t, err, common.ErrInvalidTransition)
	_, err = s.Reject(context.Background(), "L", "1", "still blurry")
	require.ErrorIs(t, err, common.ErrInvalidTransition)

	assert.Zero(t, srv.Count(http.MethodPost, "/users/verify-landlord-id"))
	assert.False(t, s.Acting("L"))
	got, err := s.Landlord("L")
	require.NoError(t, err)
	assert.Equal(t, models.DocumentRejected, got.Documents[0].Status)
}

func TestVerificationScreen_ActingBlocksSecondAction(t *testing.T) {
	fake := &scriptedVerification{
		pending: []models.Landlord{landlord("L", "1", "2"), landlord("M", "3")},
		resp:    &models.VerifyResponse{},
		blockOn: "L",
		release: make(chan struct{}),
		entered: make(chan struct{}),
	}
	s := NewVerificationScreen(fake, nil, nil)
	require.NoError(t, s.Load(context.Background()))

	done := make(chan error, 1)
	go func() {
		_, err := s.Accept(context.Background(), "L", "1")
		done <- err
	}()
	<-fake.entered

	assert.True(t, s.Acting("L"))
	_, err := s.Accept(context.Background(), "L", "2")
	require.ErrorIs(t, err, common.ErrBusy)
	err = s.DeleteDocument(context.Background(), "L", "2", Direct)
	require.ErrorIs(t, err, common.ErrBusy)

	_, err = s.Accept(context.Background(), "M", "3")
	require.NoError(t, err, "other rows are not blocked")

	close(fake.release)
	require.NoError(t, <-done)
	assert.False(t, s.Acting("L"))
}

func TestVerificationScreen_DeleteDocument(t *testing.T) {
	s, srv, _ := openVerification(t, landlord("L", "1", "2"))

	srv.FailNext(http.MethodDelete, "/users/landlord-verification/:landlordId/doc/:docId", http.StatusInternalServerError, "disk")
	err := s.DeleteDocument(context.Background(), "L", "1", (&confirmer{yes: true}).confirm)
	require.Error(t, err)
	l, _ := s.Landlord("L")
	assert.Len(t, l.Documents, 2, "kept until the server confirms")

	c := &confirmer{yes: true}
	require.NoError(t, s.DeleteDocument(context.Background(), "L", "1", c.confirm))
	require.Len(t, c.shown, 1)
	assert.True(t, c.shown[0].Destructive)
	l, _ = s.Landlord("L")
	require.Len(t, l.Documents, 1)
	assert.Equal(t, "2", l.Documents[0].ID)

	require.ErrorIs(t, s.DeleteDocument(context.Background(), "L", "2", (&confirmer{}).confirm), ErrCanceled)
}

func TestVerificationScreen_Open(t *testing.T) {
	s, _, f := openVerification(t, landlord("L", "1"))

	p, err := s.Open(context.Background(), "L", "1")
	require.NoError(t, err)
	assert.Equal(t, "download/L-1", p)
	assert.Equal(t, "/uploads/ids/1.jpg", f.ref)

	_, err = s.Open(context.Background(), "L", "9")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

// scriptedVerification is a VerificationService returning canned answers.
// Decide for landlord blockOn signals entered and waits for release.
type scriptedVerification struct {
	pending []models.Landlord
	resp    *models.VerifyResponse

	blockOn string
	entered chan struct{}
	release chan struct{}

	mu            sync.Mutex
	lastApprovals []models.Approval
}

func (f *scriptedVerification) Pending(context.Context) ([]models.Landlord, error) {
	return f.pending, nil
}

func (f *scriptedVerification) Decide(_ context.Context, l models.Landlord, docID string, status models.DocumentStatus, reason string) (*models.VerifyResponse, error) {
	approvals, err := services.ApprovalSet(l, docID, status, reason)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.lastApprovals = approvals
	f.mu.Unlock()

	if f.blockOn != "" && l.ID == f.blockOn {
		close(f.entered)
		<-f.release
	}
	return f.resp, nil
}

func (f *scriptedVerification) DeleteDocument(context.Context, string, string) error {
	return nil
}

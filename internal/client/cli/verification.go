package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/rentadmin/internal/client/models"
)

const verifyUsage = "verify [reload|accept <landlord> <doc>|reject <landlord> <doc> [reason]|delete <landlord> <doc>|open <landlord> <doc>]"

// Verify runs a verification subcommand and prints the pending queue.
func (a *App) Verify(ctx context.Context, args []string) error {
	a.reports.SetVisible(false)
	s := a.verification
	if len(args) == 0 || args[0] == "reload" {
		if err := s.Load(ctx); err != nil {
			return err
		}
		return a.printLandlords(s.Landlords())
	}

	sub, rest := args[0], args[1:]
	if len(rest) < 2 {
		return usage(verifyUsage)
	}
	landlordID, docID := rest[0], rest[1]

	switch sub {
	case "accept":
		resp, err := s.Accept(ctx, landlordID, docID)
		if err != nil {
			return err
		}
		a.printVerifyResult(landlordID, resp)
	case "reject":
		reason := strings.Join(rest[2:], " ")
		if strings.TrimSpace(reason) == "" {
			r, err := getSimpleText(a.reader, "Rejection reason", a.out)
			if err != nil {
				return err
			}
			reason = r
		}
		resp, err := s.Reject(ctx, landlordID, docID, reason)
		if err != nil {
			return err
		}
		a.printVerifyResult(landlordID, resp)
	case "delete":
		if err := s.DeleteDocument(ctx, landlordID, docID, a.confirm); err != nil {
			return err
		}
		a.printf("Document %s deleted.\n", docID)
	case "open":
		path, err := s.Open(ctx, landlordID, docID)
		if err != nil {
			return err
		}
		a.printf("Saved to %s\n", path)
	default:
		return usage(verifyUsage)
	}
	return nil
}

func (a *App) printVerifyResult(landlordID string, resp *models.VerifyResponse) {
	if resp.LandlordVerified {
		a.printf("Landlord %s is verified and left the queue.\n", landlordID)
		return
	}
	a.printf("Landlord %s updated.\n", landlordID)
}

func (a *App) printLandlords(landlords []models.Landlord) error {
	if len(landlords) == 0 {
		a.println("No landlords waiting for verification.")
		return nil
	}
	t := newTable(a.out, "LANDLORD", "NAME", "EMAIL", "DOC", "TYPE", "STATUS", "REASON")
	for _, l := range landlords {
		if len(l.Documents) == 0 {
			t.row(l.ID, l.Profile.DisplayName, l.Profile.Email, "", "", "", "")
		}
		for _, d := range l.Documents {
			t.row(l.ID, l.Profile.DisplayName, l.Profile.Email, d.ID, d.IDType, string(d.Status), d.RejectionReason)
		}
	}
	return t.flush()
}

package interfaces

import (
	"context"

	"collections-service/internal/pkg/models"
	storemodels "collections-service/internal/pkg/store/models"
)

// ActivationServiceInterface gates the hand-off of a freshly disbursed loan
// into collections: at most one open sub-record per borrower at a time.
type ActivationServiceInterface interface {
	ActivateLead(ctx context.Context, pan, loanNo, leadNo string) (bool, error)
}

// ProjectionServiceInterface assembles the read-side views by explicit
// sequential fetch-and-merge against the collaborator repositories.
type ProjectionServiceInterface interface {
	ActiveLeads(ctx context.Context) ([]models.ActiveLeadSummary, int64, error)
	ActiveLeadDetail(ctx context.Context, loanNo string) (*models.ActiveLeadDetail, error)
	ClosedLeads(ctx context.Context) ([]models.ClosedLeadSummary, int64, error)
}

// SubRecordExpander is the slice of the projection service the update
// gateway reuses to re-validate referential state before a merge.
type SubRecordExpander interface {
	ExpandSubRecord(ctx context.Context, sub *storemodels.LoanSubRecord) (*models.ExpandedSubRecord, error)
}

type UpdateServiceInterface interface {
	UpdateSubRecord(ctx context.Context, loanNo string, req models.UpdateLeadRequest) (string, error)
}

// EmailSenderInterface is the outbound email collaborator.
type EmailSenderInterface interface {
	Send(ctx context.Context, recipientName, subject, recipient, verificationLink string) (*models.EmailResponse, error)
}

// BankVerifierInterface is the third-party bank-account verification
// collaborator.
type BankVerifierInterface interface {
	VerifyBankAccount(ctx context.Context, accountNumber, ifsc string) (models.BankVerificationResult, error)
}

package collections

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"collections-service/internal/pkg/logger"
	"collections-service/internal/pkg/models"
	storemodels "collections-service/internal/pkg/store/models"
	"collections-service/internal/service/interfaces"
)

const handoffEmailSubject = "Loan handed off to collections"

// ActivationService gates the hand-off of a freshly disbursed loan into
// collections. A borrower carries at most one open sub-record: the gate
// accepts only when no existing sub-record is still active.
type ActivationService struct {
	collectionsRepo interfaces.CollectionRecordRepoInterface
	leadsRepo       interfaces.LeadsRepoInterface
	emailSender     interfaces.EmailSenderInterface
	portalLink      string
}

func NewActivationService(
	collectionsRepo interfaces.CollectionRecordRepoInterface,
	leadsRepo interfaces.LeadsRepoInterface,
	emailSender interfaces.EmailSenderInterface,
	portalLink string,
) *ActivationService {
	return &ActivationService{
		collectionsRepo: collectionsRepo,
		leadsRepo:       leadsRepo,
		emailSender:     emailSender,
		portalLink:      portalLink,
	}
}

// ActivateLead decides whether the loan may enter collections.
//   - no root for the borrower: create one with the new sub-record, accept
//   - root exists and at least one sub-record is inactive: append, accept
//   - root exists and every sub-record is still active: reject
//
// Store failures propagate as typed errors; rejection is (false, nil).
func (s *ActivationService) ActivateLead(ctx context.Context, pan, loanNo, leadNo string) (bool, error) {
	record, err := s.collectionsRepo.FindByPAN(ctx, pan)
	if err != nil {
		var notFound *models.NotFoundError
		if !errors.As(err, &notFound) {
			return false, err
		}
	}

	sub := newSubRecord(loanNo, leadNo)

	if record == nil {
		if err := s.collectionsRepo.CreateRecord(ctx, pan, sub); err != nil {
			return false, err
		}
		s.notifyHandoff(ctx, leadNo)
		return true, nil
	}

	hasInactive := false
	for _, existing := range record.Data {
		if !existing.IsActive {
			hasInactive = true
			break
		}
	}
	if !hasInactive {
		logger.CtxInfo(ctx, "Activation rejected: borrower has an open loan",
			slog.String("pan", pan),
			slog.String("loanNo", loanNo),
		)
		return false, nil
	}

	if err := s.collectionsRepo.AppendSubRecord(ctx, pan, sub); err != nil {
		return false, err
	}
	s.notifyHandoff(ctx, leadNo)
	return true, nil
}

// A new sub-record is active but not yet disbursed; the update gateway
// flips isDisbursed once the disbursal is confirmed.
func newSubRecord(loanNo, leadNo string) storemodels.LoanSubRecord {
	now := time.Now().UTC()
	return storemodels.LoanSubRecord{
		LoanNo:      loanNo,
		LeadNo:      leadNo,
		IsActive:    true,
		PartialPaid: []storemodels.PartialPayment{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// notifyHandoff emails the borrower after an accepted activation. Delivery
// failure is logged only; the committed write is never rolled back.
func (s *ActivationService) notifyHandoff(ctx context.Context, leadNo string) {
	if s.emailSender == nil {
		return
	}

	lead, err := s.leadsRepo.FindByLeadNo(ctx, leadNo)
	if err != nil || lead == nil || lead.Email == "" {
		if err != nil {
			logger.CtxWarn(ctx, "Skipping hand-off email: lead lookup failed", slog.String("leadNo", leadNo))
		}
		return
	}

	if _, err := s.emailSender.Send(ctx, lead.FName, handoffEmailSubject, lead.Email, s.portalLink); err != nil {
		logger.CtxError(ctx, "Failed to send hand-off email", err,
			slog.String("leadNo", leadNo),
			slog.String("recipient", lead.Email),
		)
	}
}

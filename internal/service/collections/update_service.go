package collections

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"collections-service/internal/pkg/consts"
	"collections-service/internal/pkg/logger"
	"collections-service/internal/pkg/models"
	storemodels "collections-service/internal/pkg/store/models"
	"collections-service/internal/service/interfaces"
)

const (
	msgNoChanges = "No changes made. Record remains unchanged."
	msgUpdated   = "Record updated successfully."
)

// UpdateService applies agent-submitted mutations to one loan sub-record.
// A patch carrying a partial payment is append-only; anything else is a
// shallow merge of the present fields, written back atomically by loan
// number.
type UpdateService struct {
	collectionsRepo interfaces.CollectionRecordRepoInterface
	expander        interfaces.SubRecordExpander
	totalsCache     interfaces.LeadTotalInvalidatorInterface
	validate        *validator.Validate
}

func NewUpdateService(
	collectionsRepo interfaces.CollectionRecordRepoInterface,
	expander interfaces.SubRecordExpander,
	totalsCache interfaces.LeadTotalInvalidatorInterface,
) *UpdateService {
	return &UpdateService{
		collectionsRepo: collectionsRepo,
		expander:        expander,
		totalsCache:     totalsCache,
		validate:        validator.New(),
	}
}

func (s *UpdateService) UpdateSubRecord(
	ctx context.Context,
	loanNo string,
	req models.UpdateLeadRequest,
) (string, error) {
	_, sub, err := s.collectionsRepo.FindSubRecordByLoanNo(ctx, loanNo)
	if err != nil {
		return "", err
	}

	if req.Data == nil {
		logger.CtxInfo(ctx, "Empty update payload, record unchanged", slog.String("loanNo", loanNo))
		return msgNoChanges, nil
	}

	if err := s.validate.Struct(req.Data); err != nil {
		return "", models.NewValidationError(err.Error())
	}

	// Re-resolve the reference chain before mutating so a sub-record whose
	// upstream documents have gone inconsistent is caught here.
	if _, err := s.expander.ExpandSubRecord(ctx, sub); err != nil {
		return "", err
	}

	if req.Data.PartialPaid != nil {
		if err := s.pushPartialPayment(ctx, loanNo, req.Data); err != nil {
			return "", err
		}
	} else {
		applyPatch(sub, req.Data)
		if err := s.collectionsRepo.ReplaceSubRecord(ctx, loanNo, *sub); err != nil {
			return "", err
		}
	}

	s.invalidateTotals(ctx)
	return msgUpdated, nil
}

func (s *UpdateService) pushPartialPayment(
	ctx context.Context,
	loanNo string,
	patch *models.SubRecordPatch,
) error {
	input := patch.PartialPaid

	if err := s.validate.Struct(input); err != nil {
		return models.NewValidationError(err.Error())
	}

	requestedStatus := consts.RequestedStatusPartialPaid
	if patch.RequestedStatus != nil && *patch.RequestedStatus != consts.RequestedStatusNone {
		requestedStatus = *patch.RequestedStatus
	}

	payment := storemodels.PartialPayment{
		Date:            input.Date,
		Amount:          input.Amount,
		UTR:             input.UTR,
		IsPartlyPaid:    true,
		RequestedStatus: input.RequestedStatus,
	}

	return s.collectionsRepo.PushPartialPayment(ctx, loanNo, payment, requestedStatus)
}

// applyPatch shallow-merges the present patch fields over the stored
// sub-record. Absent fields keep their stored values.
func applyPatch(sub *storemodels.LoanSubRecord, patch *models.SubRecordPatch) {
	if patch.RequestedStatus != nil {
		sub.RequestedStatus = *patch.RequestedStatus
	}
	if patch.Amount != nil {
		sub.Amount = *patch.Amount
	}
	if patch.Discount != nil {
		sub.Discount = *patch.Discount
	}
	if patch.UTR != nil {
		sub.UTR = *patch.UTR
	}
	if patch.Date != nil {
		sub.Date = patch.Date
	}
	if patch.DPD != nil {
		sub.DPD = *patch.DPD
	}
	if patch.IsDisbursed != nil {
		sub.IsDisbursed = *patch.IsDisbursed
	}
	if patch.IsActive != nil {
		sub.IsActive = *patch.IsActive
	}
	if patch.IsClosed != nil {
		sub.IsClosed = *patch.IsClosed
	}
	if patch.IsSettled != nil {
		sub.IsSettled = *patch.IsSettled
	}
	if patch.IsWriteOff != nil {
		sub.IsWriteOff = *patch.IsWriteOff
	}
	if patch.Defaulted != nil {
		sub.Defaulted = *patch.Defaulted
	}
	if patch.IsVerified != nil {
		sub.IsVerified = *patch.IsVerified
	}
}

// Flag merges can move a record between the active and closed views, so
// both cached totals are dropped after a successful write.
func (s *UpdateService) invalidateTotals(ctx context.Context) {
	if s.totalsCache == nil {
		return
	}
	if err := s.totalsCache.InvalidateLeadTotals(ctx); err != nil {
		logger.CtxWarn(ctx, "Failed to invalidate cached lead totals")
	}
}

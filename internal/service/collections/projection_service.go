package collections

import (
	"context"
	"log/slog"
	"time"

	"collections-service/internal/pkg/consts"
	"collections-service/internal/pkg/log_messages"
	"collections-service/internal/pkg/logger"
	"collections-service/internal/pkg/models"
	storemodels "collections-service/internal/pkg/store/models"
	"collections-service/internal/service/interfaces"
)

const leadTotalsTTL = 30 * time.Second

// ProjectionService assembles the read-side views. Every cross-collection
// join is an explicit sequential fetch against the owning repository; a
// reference that does not resolve leaves its field nil rather than failing
// the whole projection.
type ProjectionService struct {
	collectionsRepo  interfaces.CollectionRecordRepoInterface
	disbursalsRepo   interfaces.DisbursalsRepoInterface
	sanctionsRepo    interfaces.SanctionsRepoInterface
	applicationsRepo interfaces.ApplicationsRepoInterface
	leadsRepo        interfaces.LeadsRepoInterface
	employeesRepo    interfaces.EmployeesRepoInterface
	camDetailsRepo   interfaces.CamDetailsRepoInterface
	totalsCache      interfaces.LeadTotalCacheInterface
}

func NewProjectionService(
	collectionsRepo interfaces.CollectionRecordRepoInterface,
	disbursalsRepo interfaces.DisbursalsRepoInterface,
	sanctionsRepo interfaces.SanctionsRepoInterface,
	applicationsRepo interfaces.ApplicationsRepoInterface,
	leadsRepo interfaces.LeadsRepoInterface,
	employeesRepo interfaces.EmployeesRepoInterface,
	camDetailsRepo interfaces.CamDetailsRepoInterface,
	totalsCache interfaces.LeadTotalCacheInterface,
) *ProjectionService {
	return &ProjectionService{
		collectionsRepo:  collectionsRepo,
		disbursalsRepo:   disbursalsRepo,
		sanctionsRepo:    sanctionsRepo,
		applicationsRepo: applicationsRepo,
		leadsRepo:        leadsRepo,
		employeesRepo:    employeesRepo,
		camDetailsRepo:   camDetailsRepo,
		totalsCache:      totalsCache,
	}
}

// ActiveLeads returns the active list rows plus the store-wide active total.
func (s *ProjectionService) ActiveLeads(ctx context.Context) ([]models.ActiveLeadSummary, int64, error) {
	total, err := s.cachedTotal(ctx, consts.ActiveLeadsTotalCacheKey, s.collectionsRepo.CountActiveRoots)
	if err != nil {
		return nil, 0, err
	}

	roots, err := s.collectionsRepo.FindActiveRoots(ctx)
	if err != nil {
		return nil, 0, err
	}

	rows := make([]models.ActiveLeadSummary, 0, len(roots))
	for _, root := range roots {
		row := models.ActiveLeadSummary{
			ID:        root.ID,
			UpdatedAt: root.UpdatedAt,
			Data: models.ActiveLeadRef{
				LeadNo: root.Data.LeadNo,
				LoanNo: root.Data.LoanNo,
			},
		}

		lead, err := s.leadsRepo.FindByLeadNo(ctx, root.Data.LeadNo)
		if err != nil {
			return nil, 0, err
		}
		if lead != nil {
			row.Lead = leadSummaryOf(lead)
		}

		cam, err := s.camDetailsRepo.FindByLeadNo(ctx, root.Data.LeadNo)
		if err != nil {
			return nil, 0, err
		}
		if cam != nil {
			row.CamDetails = &models.CamSummary{
				LoanRecommended: cam.Details.LoanRecommended,
				Salary:          cam.Details.ActualNetSalary,
			}
		}

		disbursedBy, err := s.disbursingEmployee(ctx, &root.Data)
		if err != nil {
			return nil, 0, err
		}
		row.DisbursedBy = disbursedBy

		rows = append(rows, row)
	}

	return rows, total, nil
}

// ActiveLeadDetail resolves one sub-record by loan number and expands its
// full reference chain.
func (s *ProjectionService) ActiveLeadDetail(ctx context.Context, loanNo string) (*models.ActiveLeadDetail, error) {
	pan, sub, err := s.collectionsRepo.FindSubRecordByLoanNo(ctx, loanNo)
	if err != nil {
		return nil, err
	}

	expanded, err := s.ExpandSubRecord(ctx, sub)
	if err != nil {
		return nil, err
	}

	return &models.ActiveLeadDetail{PAN: pan, Data: *expanded}, nil
}

// ExpandSubRecord resolves disbursal, sanction, application, lead,
// documents, approver and credit-assessment for one sub-record.
func (s *ProjectionService) ExpandSubRecord(
	ctx context.Context,
	sub *storemodels.LoanSubRecord,
) (*models.ExpandedSubRecord, error) {
	expanded := &models.ExpandedSubRecord{LoanSubRecord: *sub}

	if sub.Disbursal.IsZero() {
		return expanded, nil
	}

	disbursal, err := s.disbursalsRepo.FindByID(ctx, sub.Disbursal)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorExpandingSubRecord, err, slog.String("loanNo", sub.LoanNo))
		return nil, err
	}
	if disbursal == nil {
		return expanded, nil
	}

	detail := &models.DisbursalDetail{
		ID:          disbursal.ID,
		LeadNo:      disbursal.LeadNo,
		Amount:      disbursal.Amount,
		UTR:         disbursal.UTR,
		IsRejected:  disbursal.IsRejected,
		DisbursedAt: disbursal.DisbursedAt,
	}
	expanded.Disbursal = detail

	if !disbursal.DisbursedBy.IsZero() {
		employee, err := s.employeesRepo.FindByID(ctx, disbursal.DisbursedBy)
		if err != nil {
			return nil, err
		}
		if employee != nil {
			detail.DisbursedBy = &models.EmployeeName{FName: employee.FName, LName: employee.LName}
		}
	}

	if disbursal.Sanction.IsZero() {
		return expanded, nil
	}

	sanction, err := s.sanctionsRepo.FindByID(ctx, disbursal.Sanction)
	if err != nil {
		return nil, err
	}
	if sanction == nil {
		return expanded, nil
	}

	sanctionDetail := &models.SanctionDetail{
		ID:         sanction.ID,
		IsRejected: sanction.IsRejected,
	}
	detail.Sanction = sanctionDetail

	if !sanction.ApprovedBy.IsZero() {
		approver, err := s.employeesRepo.FindByID(ctx, sanction.ApprovedBy)
		if err != nil {
			return nil, err
		}
		sanctionDetail.ApprovedBy = approver
	}

	if sanction.Application.IsZero() {
		return expanded, nil
	}

	application, err := s.applicationsRepo.FindByID(ctx, sanction.Application)
	if err != nil {
		return nil, err
	}
	if application == nil {
		return expanded, nil
	}

	applicationDetail := &models.ApplicationDetail{ID: application.ID}
	sanctionDetail.Application = applicationDetail

	if !application.CreditManagerID.IsZero() {
		creditManager, err := s.employeesRepo.FindByID(ctx, application.CreditManagerID)
		if err != nil {
			return nil, err
		}
		applicationDetail.CreditManager = creditManager
	}
	if !application.RecommendedBy.IsZero() {
		recommender, err := s.employeesRepo.FindByID(ctx, application.RecommendedBy)
		if err != nil {
			return nil, err
		}
		applicationDetail.RecommendedBy = recommender
	}

	if application.Lead.IsZero() {
		return expanded, nil
	}

	lead, err := s.leadsRepo.FindByID(ctx, application.Lead)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return expanded, nil
	}

	leadDetail := &models.LeadDetail{Lead: *lead}
	applicationDetail.Lead = leadDetail

	if !lead.Documents.IsZero() {
		documents, err := s.leadsRepo.FindDocumentsByID(ctx, lead.Documents)
		if err != nil {
			return nil, err
		}
		leadDetail.Documents = documents
	}

	// CAM is keyed by the lead's identity, not the loan number.
	cam, err := s.camDetailsRepo.FindByLeadID(ctx, lead.ID)
	if err != nil {
		return nil, err
	}
	applicationDetail.Cam = cam

	return expanded, nil
}

// ClosedLeads returns the flattened closed sub-records, excluding any whose
// disbursal or sanction was rejected, plus the store-wide closed total.
func (s *ProjectionService) ClosedLeads(ctx context.Context) ([]models.ClosedLeadSummary, int64, error) {
	total, err := s.cachedTotal(ctx, consts.ClosedLeadsTotalCacheKey, s.collectionsRepo.CountClosedRecords)
	if err != nil {
		return nil, 0, err
	}

	closedRows, err := s.collectionsRepo.FindClosedSubRecords(ctx)
	if err != nil {
		return nil, 0, err
	}

	rows := make([]models.ClosedLeadSummary, 0, len(closedRows))
	for _, closed := range closedRows {
		var disbursal *storemodels.Disbursal
		if !closed.Data.Disbursal.IsZero() {
			disbursal, err = s.disbursalsRepo.FindByID(ctx, closed.Data.Disbursal)
			if err != nil {
				return nil, 0, err
			}
		}
		if disbursal != nil && disbursal.IsRejected {
			continue
		}

		if disbursal != nil && !disbursal.Sanction.IsZero() {
			sanction, err := s.sanctionsRepo.FindByID(ctx, disbursal.Sanction)
			if err != nil {
				return nil, 0, err
			}
			if sanction != nil && sanction.IsRejected {
				continue
			}
		}

		row := models.ClosedLeadSummary{LoanSubRecord: closed.Data}

		lead, err := s.leadsRepo.FindByLeadNo(ctx, closed.Data.LeadNo)
		if err != nil {
			return nil, 0, err
		}
		if lead != nil {
			row.Lead = leadSummaryOf(lead)
		}

		cam, err := s.camDetailsRepo.FindByLeadNo(ctx, closed.Data.LeadNo)
		if err != nil {
			return nil, 0, err
		}
		if cam != nil {
			row.CamDetails = &cam.Details
		}

		disbursedBy, err := s.employeeNameOf(ctx, disbursal)
		if err != nil {
			return nil, 0, err
		}
		row.DisbursedBy = disbursedBy

		rows = append(rows, row)
	}

	return rows, total, nil
}

func (s *ProjectionService) disbursingEmployee(
	ctx context.Context,
	sub *storemodels.LoanSubRecord,
) (*models.EmployeeName, error) {
	if sub.Disbursal.IsZero() {
		return nil, nil
	}
	disbursal, err := s.disbursalsRepo.FindByID(ctx, sub.Disbursal)
	if err != nil {
		return nil, err
	}
	return s.employeeNameOf(ctx, disbursal)
}

func (s *ProjectionService) employeeNameOf(
	ctx context.Context,
	disbursal *storemodels.Disbursal,
) (*models.EmployeeName, error) {
	if disbursal == nil || disbursal.DisbursedBy.IsZero() {
		return nil, nil
	}
	employee, err := s.employeesRepo.FindByID(ctx, disbursal.DisbursedBy)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, nil
	}
	return &models.EmployeeName{FName: employee.FName, LName: employee.LName}, nil
}

// cachedTotal serves the list total from redis when warm, otherwise counts
// and re-caches. A cache write failure only logs; the count still serves.
func (s *ProjectionService) cachedTotal(
	ctx context.Context,
	key string,
	count func(ctx context.Context) (int64, error),
) (int64, error) {
	if s.totalsCache != nil {
		if total, err := s.totalsCache.CachedLeadTotal(ctx, key); err == nil {
			return total, nil
		}
	}

	total, err := count(ctx)
	if err != nil {
		return 0, err
	}

	if s.totalsCache != nil {
		if err := s.totalsCache.CacheLeadTotal(ctx, key, total, leadTotalsTTL); err != nil {
			logger.CtxWarn(ctx, "Failed to cache lead total", slog.String("key", key))
		}
	}
	return total, nil
}

func leadSummaryOf(lead *storemodels.Lead) *models.LeadSummary {
	return &models.LeadSummary{
		FName:   lead.FName,
		MName:   lead.MName,
		LName:   lead.LName,
		Mobile:  lead.Mobile,
		Aadhaar: lead.Aadhaar,
		PAN:     lead.PAN,
		City:    lead.City,
		State:   lead.State,
		Source:  lead.Source,
	}
}

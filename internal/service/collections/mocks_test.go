package collections

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"collections-service/internal/pkg/consts"
	"collections-service/internal/pkg/models"
	storemodels "collections-service/internal/pkg/store/models"
)

type MockCollectionsRepo struct {
	mock.Mock
}

func (m *MockCollectionsRepo) FindByPAN(ctx context.Context, pan string) (*storemodels.CollectionRecord, error) {
	args := m.Called(ctx, pan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storemodels.CollectionRecord), args.Error(1)
}

func (m *MockCollectionsRepo) FindSubRecordByLoanNo(
	ctx context.Context,
	loanNo string,
) (string, *storemodels.LoanSubRecord, error) {
	args := m.Called(ctx, loanNo)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*storemodels.LoanSubRecord), args.Error(2)
}

func (m *MockCollectionsRepo) CreateRecord(ctx context.Context, pan string, sub storemodels.LoanSubRecord) error {
	args := m.Called(ctx, pan, sub)
	return args.Error(0)
}

func (m *MockCollectionsRepo) AppendSubRecord(ctx context.Context, pan string, sub storemodels.LoanSubRecord) error {
	args := m.Called(ctx, pan, sub)
	return args.Error(0)
}

func (m *MockCollectionsRepo) PushPartialPayment(
	ctx context.Context,
	loanNo string,
	payment storemodels.PartialPayment,
	requestedStatus consts.RequestedStatus,
) error {
	args := m.Called(ctx, loanNo, payment, requestedStatus)
	return args.Error(0)
}

func (m *MockCollectionsRepo) ReplaceSubRecord(
	ctx context.Context,
	loanNo string,
	sub storemodels.LoanSubRecord,
) error {
	args := m.Called(ctx, loanNo, sub)
	return args.Error(0)
}

func (m *MockCollectionsRepo) FindActiveRoots(ctx context.Context) ([]storemodels.ActiveRoot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storemodels.ActiveRoot), args.Error(1)
}

func (m *MockCollectionsRepo) FindClosedSubRecords(ctx context.Context) ([]storemodels.ClosedRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storemodels.ClosedRow), args.Error(1)
}

func (m *MockCollectionsRepo) CountActiveRoots(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCollectionsRepo) CountClosedRecords(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCollectionsRepo) SweepDPD(ctx context.Context, defaultThreshold int32) (int64, int64, error) {
	args := m.Called(ctx, defaultThreshold)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

type MockDisbursalsRepo struct {
	mock.Mock
}

func (m *MockDisbursalsRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*storemodels.Disbursal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storemodels.Disbursal), args.Error(1)
}

func (m *MockDisbursalsRepo) FindByLeadNo(ctx context.Context, leadNo string) (*storemodels.Disbursal, error) {
	args := m.Called(ctx, leadNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storemodels.Disbursal), args.Error(1)
}

type MockSanctionsRepo struct {
	mock.Mock
}

func (m *MockSanctionsRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*storemodels.Sanction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storemodels.Sanction), args.Error(1)
}

type MockApplicationsRepo struct {
	mock.Mock
}

func (m *MockApplicationsRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*storemodels.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storemodels.Application), args.Error(1)
}

type MockLeadsRepo struct {
	mock.Mock
}

func (m *MockLeadsRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*storemodels.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storemodels.Lead), args.Error(1)
}

func (m *MockLeadsRepo) FindByLeadNo(ctx context.Context, leadNo string) (*storemodels.Lead, error) {
	args := m.Called(ctx, leadNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storemodels.Lead), args.Error(1)
}

func (m *MockLeadsRepo) FindDocumentsByID(
	ctx context.Context,
	id primitive.ObjectID,
) (*storemodels.LeadDocuments, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storemodels.LeadDocuments), args.Error(1)
}

type MockEmployeesRepo struct {
	mock.Mock
}

func (m *MockEmployeesRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*storemodels.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storemodels.Employee), args.Error(1)
}

type MockCamDetailsRepo struct {
	mock.Mock
}

func (m *MockCamDetailsRepo) FindByLeadID(
	ctx context.Context,
	leadID primitive.ObjectID,
) (*storemodels.CamDetails, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storemodels.CamDetails), args.Error(1)
}

func (m *MockCamDetailsRepo) FindByLeadNo(ctx context.Context, leadNo string) (*storemodels.CamDetails, error) {
	args := m.Called(ctx, leadNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storemodels.CamDetails), args.Error(1)
}

type MockTotalsCache struct {
	mock.Mock
}

func (m *MockTotalsCache) CachedLeadTotal(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTotalsCache) CacheLeadTotal(ctx context.Context, key string, total int64, ttl time.Duration) error {
	args := m.Called(ctx, key, total, ttl)
	return args.Error(0)
}

func (m *MockTotalsCache) InvalidateLeadTotals(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(
	ctx context.Context,
	recipientName, subject, recipient, verificationLink string,
) (*models.EmailResponse, error) {
	args := m.Called(ctx, recipientName, subject, recipient, verificationLink)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EmailResponse), args.Error(1)
}

type MockExpander struct {
	mock.Mock
}

func (m *MockExpander) ExpandSubRecord(
	ctx context.Context,
	sub *storemodels.LoanSubRecord,
) (*models.ExpandedSubRecord, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExpandedSubRecord), args.Error(1)
}

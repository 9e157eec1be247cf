package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"collections-service/internal/pkg/consts"
	storemodels "collections-service/internal/pkg/store/models"
)

// CollectionStoreInterface is the generic repository surface typed to the
// borrower collection record, mocked in repository tests.
type CollectionStoreInterface interface {
	InsertOne(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (storemodels.CollectionRecord, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error)
	UpdateMany(
		ctx context.Context,
		filter interface{},
		update interface{},
		opts ...*options.UpdateOptions,
	) (*mongo.UpdateResult, error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
	AggregateAll(ctx context.Context, pipeline interface{}, result interface{}) error
}

// CollectionRecordRepoInterface is the typed store for borrower collection
// records and their embedded loan sub-records.
type CollectionRecordRepoInterface interface {
	FindByPAN(ctx context.Context, pan string) (*storemodels.CollectionRecord, error)
	FindSubRecordByLoanNo(ctx context.Context, loanNo string) (string, *storemodels.LoanSubRecord, error)
	CreateRecord(ctx context.Context, pan string, sub storemodels.LoanSubRecord) error
	AppendSubRecord(ctx context.Context, pan string, sub storemodels.LoanSubRecord) error
	PushPartialPayment(
		ctx context.Context,
		loanNo string,
		payment storemodels.PartialPayment,
		requestedStatus consts.RequestedStatus,
	) error
	ReplaceSubRecord(ctx context.Context, loanNo string, sub storemodels.LoanSubRecord) error
	FindActiveRoots(ctx context.Context) ([]storemodels.ActiveRoot, error)
	FindClosedSubRecords(ctx context.Context) ([]storemodels.ClosedRow, error)
	CountActiveRoots(ctx context.Context) (int64, error)
	CountClosedRecords(ctx context.Context) (int64, error)
	SweepDPD(ctx context.Context, defaultThreshold int32) (int64, int64, error)
}

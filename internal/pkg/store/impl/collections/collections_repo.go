package collections

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"collections-service/internal/pkg/consts"
	mongodb "collections-service/internal/pkg/db/mongo"
	"collections-service/internal/pkg/log_messages"
	"collections-service/internal/pkg/logger"
	"collections-service/internal/pkg/models"
	storemodels "collections-service/internal/pkg/store/models"
	"collections-service/internal/pkg/store/repository"
	"collections-service/internal/service/interfaces"
)

// CollectionRecordRepository owns the per-borrower collection documents.
// Loan numbers and settlement references are unique across the whole
// store; the precheck plus the unique pan index turn duplicates into
// ConflictError before anything is written.
type CollectionRecordRepository struct {
	repo interfaces.CollectionStoreInterface
}

func NewCollectionRecordRepository(client *mongodb.MongoClient) *CollectionRecordRepository {
	collection := client.Database.Collection(consts.CollectionRecords)
	repo := repository.NewMongoRepository[storemodels.CollectionRecord](collection)
	return &CollectionRecordRepository{repo: repo}
}

func NewCollectionRecordRepositoryWithInterface(repo interfaces.CollectionStoreInterface) *CollectionRecordRepository {
	return &CollectionRecordRepository{repo: repo}
}

func (r *CollectionRecordRepository) FindByPAN(ctx context.Context, pan string) (*storemodels.CollectionRecord, error) {
	record, err := r.repo.FindOne(ctx, bson.M{"pan": pan}, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NewNotFoundError("no collection record for borrower")
		}
		logger.CtxError(ctx, log_messages.ErrorFetchingCollectionRecord, err, slog.String("pan", pan))
		return nil, err
	}
	return &record, nil
}

// FindSubRecordByLoanNo returns the borrower pan and the one sub-record
// matching the loan number, projected with $elemMatch.
func (r *CollectionRecordRepository) FindSubRecordByLoanNo(
	ctx context.Context,
	loanNo string,
) (string, *storemodels.LoanSubRecord, error) {
	opt := options.FindOne().SetProjection(bson.M{
		"pan":       1,
		"updatedAt": 1,
		"data":      bson.M{"$elemMatch": bson.M{"loanNo": loanNo}},
	})

	record, err := r.repo.FindOne(ctx, bson.M{"data.loanNo": loanNo}, opt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			logger.CtxWarn(ctx, log_messages.LoanNumberNotFound, slog.String("loanNo", loanNo))
			return "", nil, models.NewNotFoundError("Loan number not found.")
		}
		logger.CtxError(ctx, log_messages.ErrorFetchingCollectionRecord, err, slog.String("loanNo", loanNo))
		return "", nil, err
	}
	if len(record.Data) == 0 {
		return "", nil, models.NewNotFoundError("Loan number not found.")
	}

	return record.PAN, &record.Data[0], nil
}

func (r *CollectionRecordRepository) CreateRecord(
	ctx context.Context,
	pan string,
	sub storemodels.LoanSubRecord,
) error {
	if err := r.checkLoanNoFree(ctx, sub.LoanNo); err != nil {
		return err
	}
	if err := r.checkUTRFree(ctx, sub.UTR); err != nil {
		return err
	}

	now := time.Now().UTC()
	record := storemodels.CollectionRecord{
		PAN:       pan,
		Data:      []storemodels.LoanSubRecord{sub},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.repo.InsertOne(ctx, record); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.NewConflictError("collection record already exists for borrower")
		}
		logger.CtxError(ctx, log_messages.ErrorCreatingCollectionRecord, err, slog.String("pan", pan))
		return err
	}

	logger.CtxInfo(ctx, "Created collection record",
		slog.String("pan", pan),
		slog.String("loanNo", sub.LoanNo),
	)
	return nil
}

func (r *CollectionRecordRepository) AppendSubRecord(
	ctx context.Context,
	pan string,
	sub storemodels.LoanSubRecord,
) error {
	if err := r.checkLoanNoFree(ctx, sub.LoanNo); err != nil {
		return err
	}
	if err := r.checkUTRFree(ctx, sub.UTR); err != nil {
		return err
	}

	update := bson.M{
		"$push": bson.M{"data": sub},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.repo.UpdateOne(ctx, bson.M{"pan": pan}, update)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorAppendingSubRecord, err, slog.String("pan", pan))
		return err
	}
	if result.MatchedCount == 0 {
		return models.NewNotFoundError("no collection record for borrower")
	}

	logger.CtxInfo(ctx, "Appended loan sub-record",
		slog.String("pan", pan),
		slog.String("loanNo", sub.LoanNo),
	)
	return nil
}

// PushPartialPayment appends one repayment entry and records the agent's
// pending status request. Existing entries are never touched.
func (r *CollectionRecordRepository) PushPartialPayment(
	ctx context.Context,
	loanNo string,
	payment storemodels.PartialPayment,
	requestedStatus consts.RequestedStatus,
) error {
	if err := r.checkUTRFree(ctx, payment.UTR); err != nil {
		return err
	}

	now := time.Now().UTC()
	update := bson.M{
		"$push": bson.M{"data.$.partialPaid": payment},
		"$set": bson.M{
			"data.$.requestedStatus": requestedStatus,
			"data.$.updatedAt":       now,
			"updatedAt":              now,
		},
	}

	result, err := r.repo.UpdateOne(ctx, bson.M{"data.loanNo": loanNo}, update)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorPushingPartialPayment, err, slog.String("loanNo", loanNo))
		return err
	}
	if result.MatchedCount == 0 {
		return models.NewNotFoundError("Loan number not found.")
	}

	logger.CtxInfo(ctx, "Pushed partial payment",
		slog.String("loanNo", loanNo),
		slog.Float64("amount", payment.Amount),
	)
	return nil
}

// ReplaceSubRecord writes the merged sub-record back atomically, keyed by
// loan number.
func (r *CollectionRecordRepository) ReplaceSubRecord(
	ctx context.Context,
	loanNo string,
	sub storemodels.LoanSubRecord,
) error {
	now := time.Now().UTC()
	sub.UpdatedAt = now

	update := bson.M{
		"$set": bson.M{
			"data.$":    sub,
			"updatedAt": now,
		},
	}

	result, err := r.repo.UpdateOne(ctx, bson.M{"data.loanNo": loanNo}, update)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorReplacingSubRecord, err, slog.String("loanNo", loanNo))
		return err
	}
	if result.MatchedCount == 0 {
		return models.NewNotFoundError("Loan number not found.")
	}

	logger.CtxInfo(ctx, "Replaced loan sub-record", slog.String("loanNo", loanNo))
	return nil
}

// FindActiveRoots selects roots holding at least one active disbursed
// unclosed sub-record and projects the first such element per root,
// newest roots first.
func (r *CollectionRecordRepository) FindActiveRoots(ctx context.Context) ([]storemodels.ActiveRoot, error) {
	elem := bson.M{"isActive": true, "isDisbursed": true, "isClosed": false}

	pipeline := []bson.M{
		{"$match": bson.M{"data": bson.M{"$elemMatch": elem}}},
		{"$project": bson.M{
			"pan":       1,
			"updatedAt": 1,
			"data": bson.M{
				"$arrayElemAt": bson.A{
					bson.M{
						"$filter": bson.M{
							"input": "$data",
							"as":    "item",
							"cond": bson.M{"$and": bson.A{
								bson.M{"$eq": bson.A{"$$item.isActive", true}},
								bson.M{"$eq": bson.A{"$$item.isDisbursed", true}},
								bson.M{"$eq": bson.A{"$$item.isClosed", false}},
							}},
						},
					},
					0,
				},
			},
		}},
		{"$sort": bson.M{"updatedAt": -1}},
	}

	var roots []storemodels.ActiveRoot
	if err := r.repo.AggregateAll(ctx, pipeline, &roots); err != nil {
		logger.CtxError(ctx, log_messages.ErrorBuildingActiveProjection, err)
		return nil, err
	}
	return roots, nil
}

// FindClosedSubRecords flattens every root and keeps the inactive closed
// sub-records, newest first by the sub-record's own update time.
func (r *CollectionRecordRepository) FindClosedSubRecords(ctx context.Context) ([]storemodels.ClosedRow, error) {
	pipeline := []bson.M{
		{"$unwind": "$data"},
		{"$match": bson.M{"data.isActive": false, "data.isClosed": true}},
		{"$sort": bson.M{"data.updatedAt": -1}},
		{"$project": bson.M{"pan": 1, "data": 1}},
	}

	var rows []storemodels.ClosedRow
	if err := r.repo.AggregateAll(ctx, pipeline, &rows); err != nil {
		logger.CtxError(ctx, log_messages.ErrorBuildingClosedProjection, err)
		return nil, err
	}
	return rows, nil
}

func (r *CollectionRecordRepository) CountActiveRoots(ctx context.Context) (int64, error) {
	count, err := r.repo.CountDocuments(ctx, bson.M{"data.isActive": true})
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorCountingCollectionRecords, err)
		return 0, err
	}
	return count, nil
}

func (r *CollectionRecordRepository) CountClosedRecords(ctx context.Context) (int64, error) {
	count, err := r.repo.CountDocuments(ctx, bson.M{"data.isActive": false, "data.isClosed": true})
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorCountingCollectionRecords, err)
		return 0, err
	}
	return count, nil
}

// SweepDPD bumps days-past-due on every open, disbursed sub-record and
// flags defaulted past the threshold. Returns (records bumped, records
// newly flagged).
func (r *CollectionRecordRepository) SweepDPD(ctx context.Context, defaultThreshold int32) (int64, int64, error) {
	openElem := bson.M{
		"e.isActive":    true,
		"e.isDisbursed": true,
		"e.isClosed":    false,
		"e.isSettled":   false,
		"e.isWriteOff":  false,
	}

	incResult, err := r.repo.UpdateMany(ctx,
		bson.M{"data": bson.M{"$elemMatch": bson.M{
			"isActive":    true,
			"isDisbursed": true,
			"isClosed":    false,
		}}},
		bson.M{"$inc": bson.M{"data.$[e].dpd": 1}},
		options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{openElem},
		}),
	)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorSweepingDPD, err)
		return 0, 0, err
	}

	defaultResult, err := r.repo.UpdateMany(ctx,
		bson.M{"data": bson.M{"$elemMatch": bson.M{
			"isActive":  true,
			"defaulted": false,
			"dpd":       bson.M{"$gte": defaultThreshold},
		}}},
		bson.M{"$set": bson.M{"data.$[d].defaulted": true}},
		options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{bson.M{
				"d.isActive":  true,
				"d.defaulted": false,
				"d.dpd":       bson.M{"$gte": defaultThreshold},
			}},
		}),
	)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorSweepingDPD, err)
		return incResult.ModifiedCount, 0, err
	}

	return incResult.ModifiedCount, defaultResult.ModifiedCount, nil
}

func (r *CollectionRecordRepository) checkLoanNoFree(ctx context.Context, loanNo string) error {
	count, err := r.repo.CountDocuments(ctx, bson.M{"data.loanNo": loanNo})
	if err != nil {
		return err
	}
	if count > 0 {
		logger.CtxWarn(ctx, log_messages.DuplicateLoanNumber, slog.String("loanNo", loanNo))
		return models.NewConflictError("loan number already exists in collections store")
	}
	return nil
}

// checkUTRFree scans both the sub-record and partial-payment level: a
// settlement reference may appear once anywhere in the store.
func (r *CollectionRecordRepository) checkUTRFree(ctx context.Context, utr string) error {
	if utr == "" {
		return nil
	}
	count, err := r.repo.CountDocuments(ctx, bson.M{"$or": bson.A{
		bson.M{"data.utr": utr},
		bson.M{"data.partialPaid.utr": utr},
	}})
	if err != nil {
		return err
	}
	if count > 0 {
		logger.CtxWarn(ctx, log_messages.DuplicateSettlementReference, slog.String("utr", utr))
		return models.NewConflictError("settlement reference already exists in collections store")
	}
	return nil
}

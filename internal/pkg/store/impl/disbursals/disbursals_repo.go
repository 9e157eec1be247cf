package disbursals

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"collections-service/internal/pkg/consts"
	mongodb "collections-service/internal/pkg/db/mongo"
	"collections-service/internal/pkg/logger"
	storemodels "collections-service/internal/pkg/store/models"
	"collections-service/internal/pkg/store/repository"
	"collections-service/internal/service/interfaces"
)

// DisbursalsRepository reads the disbursal documents owned by the payout
// subsystem. An unresolved reference yields (nil, nil).
type DisbursalsRepository struct {
	repo interfaces.DisbursalStoreInterface
}

func NewDisbursalsRepository(client *mongodb.MongoClient) *DisbursalsRepository {
	collection := client.Database.Collection(consts.DisbursalsCollection)
	repo := repository.NewMongoRepository[storemodels.Disbursal](collection)
	return &DisbursalsRepository{repo: repo}
}

func NewDisbursalsRepositoryWithInterface(repo interfaces.DisbursalStoreInterface) *DisbursalsRepository {
	return &DisbursalsRepository{repo: repo}
}

func (r *DisbursalsRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*storemodels.Disbursal, error) {
	disbursal, err := r.repo.FindOne(ctx, bson.M{"_id": id}, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.CtxError(ctx, "error fetching disbursal", err, slog.String("id", id.Hex()))
		return nil, err
	}
	return &disbursal, nil
}

func (r *DisbursalsRepository) FindByLeadNo(ctx context.Context, leadNo string) (*storemodels.Disbursal, error) {
	disbursal, err := r.repo.FindOne(ctx, bson.M{"leadNo": leadNo}, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.CtxError(ctx, "error fetching disbursal", err, slog.String("leadNo", leadNo))
		return nil, err
	}
	return &disbursal, nil
}

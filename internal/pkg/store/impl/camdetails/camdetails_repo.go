package camdetails

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

type CamDetailsRepository struct {
	repo interfaces.CamDetailsStoreInterface
}

func NewCamDetailsRepository(client *mongodb.MongoClient) *CamDetailsRepository {
	collection := client.Database.Collection(consts.CamDetailsCollection)
	repo := repository.NewMongoRepository[storemodels.CamDetails](collection)
	return &CamDetailsRepository{repo: repo}
}

func NewCamDetailsRepositoryWithInterface(repo interfaces.CamDetailsStoreInterface) *CamDetailsRepository {
	return &CamDetailsRepository{repo: repo}
}

func (r *CamDetailsRepository) FindByLeadID(
	ctx context.Context,
	leadID primitive.ObjectID,
) (*storemodels.CamDetails, error) {
	cam, err := r.repo.FindOne(ctx, bson.M{"leadId": leadID}, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.CtxError(ctx, "error fetching cam details", err, slog.String("leadId", leadID.Hex()))
		return nil, err
	}
	return &cam, nil
}

func (r *CamDetailsRepository) FindByLeadNo(ctx context.Context, leadNo string) (*storemodels.CamDetails, error) {
	cam, err := r.repo.FindOne(ctx, bson.M{"leadNo": leadNo}, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.CtxError(ctx, "error fetching cam details", err, slog.String("leadNo", leadNo))
		return nil, err
	}
	return &cam, nil
}

package applications

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

type ApplicationsRepository struct {
	repo interfaces.ApplicationStoreInterface
}

func NewApplicationsRepository(client *mongodb.MongoClient) *ApplicationsRepository {
	collection := client.Database.Collection(consts.ApplicationsCollection)
	repo := repository.NewMongoRepository[storemodels.Application](collection)
	return &ApplicationsRepository{repo: repo}
}

func NewApplicationsRepositoryWithInterface(repo interfaces.ApplicationStoreInterface) *ApplicationsRepository {
	return &ApplicationsRepository{repo: repo}
}

func (r *ApplicationsRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*storemodels.Application, error) {
	application, err := r.repo.FindOne(ctx, bson.M{"_id": id}, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.CtxError(ctx, "error fetching application", err, slog.String("id", id.Hex()))
		return nil, err
	}
	return &application, nil
}

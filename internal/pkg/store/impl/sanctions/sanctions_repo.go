package sanctions

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

type SanctionsRepository struct {
	repo interfaces.SanctionStoreInterface
}

func NewSanctionsRepository(client *mongodb.MongoClient) *SanctionsRepository {
	collection := client.Database.Collection(consts.SanctionsCollection)
	repo := repository.NewMongoRepository[storemodels.Sanction](collection)
	return &SanctionsRepository{repo: repo}
}

func NewSanctionsRepositoryWithInterface(repo interfaces.SanctionStoreInterface) *SanctionsRepository {
	return &SanctionsRepository{repo: repo}
}

func (r *SanctionsRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*storemodels.Sanction, error) {
	sanction, err := r.repo.FindOne(ctx, bson.M{"_id": id}, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.CtxError(ctx, "error fetching sanction", err, slog.String("id", id.Hex()))
		return nil, err
	}
	return &sanction, nil
}

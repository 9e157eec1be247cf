package employees

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

type EmployeesRepository struct {
	repo interfaces.EmployeeStoreInterface
}

func NewEmployeesRepository(client *mongodb.MongoClient) *EmployeesRepository {
	collection := client.Database.Collection(consts.EmployeesCollection)
	repo := repository.NewMongoRepository[storemodels.Employee](collection)
	return &EmployeesRepository{repo: repo}
}

func NewEmployeesRepositoryWithInterface(repo interfaces.EmployeeStoreInterface) *EmployeesRepository {
	return &EmployeesRepository{repo: repo}
}

func (r *EmployeesRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*storemodels.Employee, error) {
	employee, err := r.repo.FindOne(ctx, bson.M{"_id": id}, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.CtxError(ctx, "error fetching employee", err, slog.String("id", id.Hex()))
		return nil, err
	}
	return &employee, nil
}

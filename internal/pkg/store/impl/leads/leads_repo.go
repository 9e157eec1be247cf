package leads

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

// LeadsRepository reads lead identities and their uploaded documents. The
// two collections travel together because the detail projection always
// resolves them as a pair.
type LeadsRepository struct {
	leads     interfaces.LeadStoreInterface
	documents interfaces.LeadDocumentsStoreInterface
}

func NewLeadsRepository(client *mongodb.MongoClient) *LeadsRepository {
	leadsCollection := client.Database.Collection(consts.LeadsCollection)
	documentsCollection := client.Database.Collection(consts.DocumentsCollection)
	return &LeadsRepository{
		leads:     repository.NewMongoRepository[storemodels.Lead](leadsCollection),
		documents: repository.NewMongoRepository[storemodels.LeadDocuments](documentsCollection),
	}
}

func NewLeadsRepositoryWithInterface(
	leads interfaces.LeadStoreInterface,
	documents interfaces.LeadDocumentsStoreInterface,
) *LeadsRepository {
	return &LeadsRepository{leads: leads, documents: documents}
}

func (r *LeadsRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*storemodels.Lead, error) {
	lead, err := r.leads.FindOne(ctx, bson.M{"_id": id}, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.CtxError(ctx, "error fetching lead", err, slog.String("id", id.Hex()))
		return nil, err
	}
	return &lead, nil
}

func (r *LeadsRepository) FindByLeadNo(ctx context.Context, leadNo string) (*storemodels.Lead, error) {
	lead, err := r.leads.FindOne(ctx, bson.M{"leadNo": leadNo}, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.CtxError(ctx, "error fetching lead", err, slog.String("leadNo", leadNo))
		return nil, err
	}
	return &lead, nil
}

func (r *LeadsRepository) FindDocumentsByID(
	ctx context.Context,
	id primitive.ObjectID,
) (*storemodels.LeadDocuments, error) {
	docs, err := r.documents.FindOne(ctx, bson.M{"_id": id}, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.CtxError(ctx, "error fetching lead documents", err, slog.String("id", id.Hex()))
		return nil, err
	}
	return &docs, nil
}

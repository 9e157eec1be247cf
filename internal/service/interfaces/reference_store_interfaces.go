package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	storemodels "collections-service/internal/pkg/store/models"
)

// Generic-repository surfaces typed to the read-only reference
// collections, mocked in the repository tests.

type DisbursalStoreInterface interface {
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (storemodels.Disbursal, error)
}

type SanctionStoreInterface interface {
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (storemodels.Sanction, error)
}

type ApplicationStoreInterface interface {
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (storemodels.Application, error)
}

type LeadStoreInterface interface {
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (storemodels.Lead, error)
}

type LeadDocumentsStoreInterface interface {
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (storemodels.LeadDocuments, error)
}

type EmployeeStoreInterface interface {
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (storemodels.Employee, error)
}

type CamDetailsStoreInterface interface {
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (storemodels.CamDetails, error)
}

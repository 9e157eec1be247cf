package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	storemodels "collections-service/internal/pkg/store/models"
)

// Read-only repositories over collections owned by other subsystems.
// A reference that does not resolve yields (nil, nil), mirroring the
// loose joins of the upstream data: projections keep the field empty
// instead of failing.

type DisbursalsRepoInterface interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*storemodels.Disbursal, error)
	FindByLeadNo(ctx context.Context, leadNo string) (*storemodels.Disbursal, error)
}

type SanctionsRepoInterface interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*storemodels.Sanction, error)
}

type ApplicationsRepoInterface interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*storemodels.Application, error)
}

type LeadsRepoInterface interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*storemodels.Lead, error)
	FindByLeadNo(ctx context.Context, leadNo string) (*storemodels.Lead, error)
	FindDocumentsByID(ctx context.Context, id primitive.ObjectID) (*storemodels.LeadDocuments, error)
}

type EmployeesRepoInterface interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*storemodels.Employee, error)
}

type CamDetailsRepoInterface interface {
	FindByLeadID(ctx context.Context, leadID primitive.ObjectID) (*storemodels.CamDetails, error)
	FindByLeadNo(ctx context.Context, leadNo string) (*storemodels.CamDetails, error)
}

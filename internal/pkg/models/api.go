package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"collections-service/internal/pkg/consts"
	storemodels "collections-service/internal/pkg/store/models"
)

// Requests //

type ActivateLeadRequest struct {
	PAN    string `json:"pan" binding:"required"`
	LoanNo string `json:"loanNo" binding:"required"`
	LeadNo string `json:"leadNo" binding:"required"`
}

// PartialPaymentInput is one repayment entry submitted by a collection agent.
type PartialPaymentInput struct {
	Date            time.Time              `json:"date" validate:"required"`
	Amount          float64                `json:"amount" validate:"gt=0"`
	UTR             string                 `json:"utr,omitempty"`
	IsPartlyPaid    bool                   `json:"isPartlyPaid"`
	RequestedStatus consts.RequestedStatus `json:"requestedStatus,omitempty" validate:"omitempty,oneof=partialPaid"`
}

// SubRecordPatch carries either a partial-payment append or a shallow
// field merge; absent fields leave the stored value untouched.
type SubRecordPatch struct {
	PartialPaid     *PartialPaymentInput    `json:"partialPaid,omitempty" validate:"omitempty"`
	RequestedStatus *consts.RequestedStatus `json:"requestedStatus,omitempty" validate:"omitempty,oneof='' closed settled writeOff partialPaid"`
	Amount          *float64                `json:"amount,omitempty" validate:"omitempty,gte=0"`
	Discount        *float64                `json:"discount,omitempty" validate:"omitempty,gte=0"`
	UTR             *string                 `json:"utr,omitempty"`
	Date            *time.Time              `json:"date,omitempty"`
	DPD             *int32                  `json:"dpd,omitempty" validate:"omitempty,gte=0"`
	IsDisbursed     *bool                   `json:"isDisbursed,omitempty"`
	IsActive        *bool                   `json:"isActive,omitempty"`
	IsClosed        *bool                   `json:"isClosed,omitempty"`
	IsSettled       *bool                   `json:"isSettled,omitempty"`
	IsWriteOff      *bool                   `json:"isWriteOff,omitempty"`
	Defaulted       *bool                   `json:"defaulted,omitempty"`
	IsVerified      *bool                   `json:"isVerified,omitempty"`
}

type UpdateLeadRequest struct {
	Data *SubRecordPatch `json:"data,omitempty"`
}

// VerifyBankRequest is the agent-facing account check used before a
// settlement reference is recorded.
type VerifyBankRequest struct {
	AccountNumber string `json:"accountNumber" binding:"required"`
	IFSC          string `json:"ifsc" binding:"required"`
}

// Projections //

type EmployeeName struct {
	FName string `json:"fName"`
	LName string `json:"lName"`
}

type LeadSummary struct {
	FName   string `json:"fName"`
	MName   string `json:"mName,omitempty"`
	LName   string `json:"lName,omitempty"`
	Mobile  string `json:"mobile"`
	Aadhaar string `json:"aadhaar,omitempty"`
	PAN     string `json:"pan"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Source  string `json:"source,omitempty"`
}

// CamSummary is the credit-assessment slice shown on the active list.
type CamSummary struct {
	LoanRecommended float64 `json:"loanRecommended"`
	Salary          float64 `json:"salary"`
}

type ActiveLeadRef struct {
	LeadNo string `json:"leadNo"`
	LoanNo string `json:"loanNo"`
}

// ActiveLeadSummary is one row of the active-leads list projection.
type ActiveLeadSummary struct {
	ID          primitive.ObjectID `json:"_id"`
	UpdatedAt   time.Time          `json:"updatedAt"`
	Data        ActiveLeadRef      `json:"data"`
	Lead        *LeadSummary       `json:"lead,omitempty"`
	CamDetails  *CamSummary        `json:"camDetails,omitempty"`
	DisbursedBy *EmployeeName      `json:"disbursedBy,omitempty"`
}

// Detail projection //

type LeadDetail struct {
	storemodels.Lead
	Documents *storemodels.LeadDocuments `json:"documents,omitempty"`
}

type ApplicationDetail struct {
	ID            primitive.ObjectID      `json:"_id,omitempty"`
	Lead          *LeadDetail             `json:"lead,omitempty"`
	CreditManager *storemodels.Employee   `json:"creditManagerId,omitempty"`
	RecommendedBy *storemodels.Employee   `json:"recommendedBy,omitempty"`
	Cam           *storemodels.CamDetails `json:"cam,omitempty"`
}

type SanctionDetail struct {
	ID          primitive.ObjectID    `json:"_id,omitempty"`
	IsRejected  bool                  `json:"isRejected"`
	ApprovedBy  *storemodels.Employee `json:"approvedBy,omitempty"`
	Application *ApplicationDetail    `json:"application,omitempty"`
}

type DisbursalDetail struct {
	ID          primitive.ObjectID `json:"_id,omitempty"`
	LeadNo      string             `json:"leadNo,omitempty"`
	Amount      float64            `json:"amount,omitempty"`
	UTR         string             `json:"utr,omitempty"`
	IsRejected  bool               `json:"isRejected"`
	DisbursedAt *time.Time         `json:"disbursedAt,omitempty"`
	DisbursedBy *EmployeeName      `json:"disbursedBy,omitempty"`
	Sanction    *SanctionDetail    `json:"sanction,omitempty"`
}

// ExpandedSubRecord is a fully joined sub-record: every reference resolved
// through its owning repository, unresolvable references left nil.
type ExpandedSubRecord struct {
	storemodels.LoanSubRecord
	Disbursal *DisbursalDetail `json:"disbursal,omitempty"`
}

// ActiveLeadDetail is the response body of the active detail projection.
type ActiveLeadDetail struct {
	PAN  string            `json:"pan"`
	Data ExpandedSubRecord `json:"data"`
}

// ClosedLeadSummary re-roots a closed sub-record so the borrower wrapper
// disappears from the output.
type ClosedLeadSummary struct {
	storemodels.LoanSubRecord
	Lead        *LeadSummary         `json:"lead,omitempty"`
	CamDetails  *storemodels.CamInfo `json:"camDetails,omitempty"`
	DisbursedBy *EmployeeName        `json:"disbursedBy,omitempty"`
}

// Collaborator results //

type BankVerificationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// EmailResponse is the provider's acknowledgement, passed through verbatim.
type EmailResponse struct {
	RequestID string `json:"request_id,omitempty"`
	Message   string `json:"message,omitempty"`
}

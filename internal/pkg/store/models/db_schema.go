package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"collections-service/internal/pkg/consts"
)

// PartialPayment is one append-only repayment entry on a loan sub-record.
// Entries are never rewritten once pushed.
type PartialPayment struct {
	Date            time.Time              `bson:"date" json:"date"`
	Amount          float64                `bson:"amount" json:"amount"`
	UTR             string                 `bson:"utr,omitempty" json:"utr,omitempty"`
	IsPartlyPaid    bool                   `bson:"isPartlyPaid" json:"isPartlyPaid"`
	RequestedStatus consts.RequestedStatus `bson:"requestedStatus,omitempty" json:"requestedStatus,omitempty"`
}

// LoanSubRecord is the per-loan collection tracking entry embedded in a
// borrower's collection record. Terminal states retire it from the active
// view; it is never physically deleted.
type LoanSubRecord struct {
	Disbursal       primitive.ObjectID     `bson:"disbursal,omitempty" json:"disbursal,omitempty"`
	LeadNo          string                 `bson:"leadNo,omitempty" json:"leadNo,omitempty"`
	LoanNo          string                 `bson:"loanNo" json:"loanNo"`
	IsDisbursed     bool                   `bson:"isDisbursed" json:"isDisbursed"`
	Date            *time.Time             `bson:"date,omitempty" json:"date,omitempty"`
	Amount          float64                `bson:"amount" json:"amount"`
	Discount        float64                `bson:"discount" json:"discount"`
	UTR             string                 `bson:"utr,omitempty" json:"utr,omitempty"`
	PartialPaid     []PartialPayment       `bson:"partialPaid" json:"partialPaid"`
	RequestedStatus consts.RequestedStatus `bson:"requestedStatus,omitempty" json:"requestedStatus,omitempty"`
	IsActive        bool                   `bson:"isActive" json:"isActive"`
	IsClosed        bool                   `bson:"isClosed" json:"isClosed"`
	IsSettled       bool                   `bson:"isSettled" json:"isSettled"`
	IsWriteOff      bool                   `bson:"isWriteOff" json:"isWriteOff"`
	Defaulted       bool                   `bson:"defaulted" json:"defaulted"`
	IsVerified      bool                   `bson:"isVerified" json:"isVerified"`
	DPD             int32                  `bson:"dpd" json:"dpd"`
	CreatedAt       time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time              `bson:"updatedAt" json:"updatedAt"`
}

// CollectionRecord is the per-borrower root document. One root per PAN,
// created on the first hand-off to collections; data keeps insertion order.
type CollectionRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	PAN       string             `bson:"pan" json:"pan"`
	Data      []LoanSubRecord    `bson:"data" json:"data"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ActiveRoot is one row of the active-leads projection before the
// collaborator joins: the root identity plus its first active sub-record.
type ActiveRoot struct {
	ID        primitive.ObjectID `bson:"_id"`
	PAN       string             `bson:"pan"`
	UpdatedAt time.Time          `bson:"updatedAt"`
	Data      LoanSubRecord      `bson:"data"`
}

// ClosedRow is one flattened sub-record of the closed-leads projection.
type ClosedRow struct {
	PAN  string        `bson:"pan"`
	Data LoanSubRecord `bson:"data"`
}

// Documents below belong to other subsystems; this module only reads them
// while assembling projections.

type Disbursal struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	LeadNo      string             `bson:"leadNo,omitempty" json:"leadNo,omitempty"`
	Sanction    primitive.ObjectID `bson:"sanction,omitempty" json:"-"`
	DisbursedBy primitive.ObjectID `bson:"disbursedBy,omitempty" json:"-"`
	Amount      float64            `bson:"amount,omitempty" json:"amount,omitempty"`
	UTR         string             `bson:"utr,omitempty" json:"utr,omitempty"`
	IsRejected  bool               `bson:"isRejected" json:"isRejected"`
	DisbursedAt *time.Time         `bson:"disbursedAt,omitempty" json:"disbursedAt,omitempty"`
}

type Sanction struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Application     primitive.ObjectID `bson:"application,omitempty" json:"-"`
	ApprovedBy      primitive.ObjectID `bson:"approvedBy,omitempty" json:"-"`
	LoanRecommended float64            `bson:"loanRecommended,omitempty" json:"loanRecommended,omitempty"`
	IsRejected      bool               `bson:"isRejected" json:"isRejected"`
}

type Application struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Lead            primitive.ObjectID `bson:"lead,omitempty" json:"-"`
	CreditManagerID primitive.ObjectID `bson:"creditManagerId,omitempty" json:"-"`
	RecommendedBy   primitive.ObjectID `bson:"recommendedBy,omitempty" json:"-"`
}

type Lead struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	LeadNo    string             `bson:"leadNo" json:"leadNo"`
	FName     string             `bson:"fName" json:"fName"`
	MName     string             `bson:"mName,omitempty" json:"mName,omitempty"`
	LName     string             `bson:"lName,omitempty" json:"lName,omitempty"`
	Mobile    string             `bson:"mobile" json:"mobile"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Aadhaar   string             `bson:"aadhaar,omitempty" json:"aadhaar,omitempty"`
	PAN       string             `bson:"pan" json:"pan"`
	City      string             `bson:"city,omitempty" json:"city,omitempty"`
	State     string             `bson:"state,omitempty" json:"state,omitempty"`
	Source    string             `bson:"source,omitempty" json:"source,omitempty"`
	Documents primitive.ObjectID `bson:"documents,omitempty" json:"-"`
}

type LeadDocumentItem struct {
	Type     string `bson:"type" json:"type"`
	FileName string `bson:"fileName" json:"fileName"`
	Remarks  string `bson:"remarks,omitempty" json:"remarks,omitempty"`
}

type LeadDocuments struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Items []LeadDocumentItem `bson:"document,omitempty" json:"document,omitempty"`
}

type Employee struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	FName string             `bson:"fName" json:"fName"`
	LName string             `bson:"lName" json:"lName"`
	Email string             `bson:"email,omitempty" json:"email,omitempty"`
}

// CamInfo is the credit-assessment summary nested under camdetails.details.
type CamInfo struct {
	LoanRecommended float64 `bson:"loanRecommended" json:"loanRecommended"`
	ActualNetSalary float64 `bson:"actualNetSalary" json:"actualNetSalary"`
	EligibleTenure  int32   `bson:"eligibleTenure,omitempty" json:"eligibleTenure,omitempty"`
	Roi             float64 `bson:"roi,omitempty" json:"roi,omitempty"`
}

type CamDetails struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	LeadID  primitive.ObjectID `bson:"leadId,omitempty" json:"leadId,omitempty"`
	LeadNo  string             `bson:"leadNo" json:"leadNo"`
	Details CamInfo            `bson:"details" json:"details"`
}

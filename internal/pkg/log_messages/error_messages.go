package log_messages

const (
	ErrorFetchingCollectionRecord  = "error fetching collection record"
	ErrorCreatingCollectionRecord  = "error creating collection record"
	ErrorAppendingSubRecord        = "error appending loan sub-record"
	ErrorPushingPartialPayment     = "error pushing partial payment"
	ErrorReplacingSubRecord        = "error replacing loan sub-record"
	ErrorCountingCollectionRecords = "error counting collection records"
	ErrorBuildingActiveProjection  = "error building active-leads projection"
	ErrorBuildingClosedProjection  = "error building closed-leads projection"
	ErrorExpandingSubRecord        = "error expanding loan sub-record references"
	ErrorVerifyingBankAccount      = "error verifying bank account"
	ErrorSendingEmail              = "error sending email"
	ErrorSweepingDPD               = "error running dpd sweep"
	LoanNumberNotFound             = "loan number not found"
	DuplicateLoanNumber            = "duplicate loan number in collections store"
	DuplicateSettlementReference   = "duplicate settlement reference in collections store"
)

package consts

// RequestedStatus is a collection agent's pending terminal-transition request.
// It never flips a lifecycle flag by itself; back-office confirmation does.
type RequestedStatus string

const (
	RequestedStatusNone        RequestedStatus = ""
	RequestedStatusClosed      RequestedStatus = "closed"
	RequestedStatusSettled     RequestedStatus = "settled"
	RequestedStatusWriteOff    RequestedStatus = "writeOff"
	RequestedStatusPartialPaid RequestedStatus = "partialPaid"
)

const (
	RoleCollectionExecutive = "collectionExecutive"

	ActiveRoleContextKey = "activeRole"
)

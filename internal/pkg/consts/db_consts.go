package consts

const (
	CollectionRecords      = "collections"
	DisbursalsCollection   = "disbursals"
	SanctionsCollection    = "sanctions"
	ApplicationsCollection = "applications"
	LeadsCollection        = "leads"
	DocumentsCollection    = "documents"
	EmployeesCollection    = "employees"
	CamDetailsCollection   = "camdetails"
)

const (
	ActiveLeadsTotalCacheKey = "collections:totalActiveLeads"
	ClosedLeadsTotalCacheKey = "collections:totalClosedLeads"
)

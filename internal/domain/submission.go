package domain

// Submission is the raw registration form as received from the client.
// Struct tags drive the first validation pass; business rules (date
// whitelist, institution gating, amount cross-check) run afterwards.
type Submission struct {
	FullName         string   `json:"fullName" validate:"required,min=2"`
	Email            string   `json:"email" validate:"required,email"`
	Phone            string   `json:"phone" validate:"required"`
	Institution      string   `json:"institution" validate:"required"`
	College          string   `json:"college" validate:"required"`
	Department       string   `json:"department" validate:"required"`
	OtherDepartment  string   `json:"otherDepartment"`
	Year             string   `json:"year" validate:"required,oneof=First Second Third Fourth Final"`
	IsMember         string   `json:"isIsteMember" validate:"required,oneof=Yes No"`
	MembershipNumber string   `json:"isteRegistrationNumber"`
	StayPreference   string   `json:"stayPreference" validate:"required,oneof='With Stay' 'Without Stay'"`
	StayDates        []string `json:"stayDates"`
	AmbassadorCode   string   `json:"ambassadorCode"`
	TotalAmount      int      `json:"totalAmount" validate:"required,min=1"`
	TransactionID    string   `json:"transactionId" validate:"required,min=3"`
}

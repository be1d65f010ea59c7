package types

// LeadStatus tracks a lead through qualification
type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "New"
	LeadStatusWorking     LeadStatus = "Working"
	LeadStatusNurturing   LeadStatus = "Nurturing"
	LeadStatusQualified   LeadStatus = "Qualified"
	LeadStatusUnqualified LeadStatus = "Unqualified"
)

// LeadSource records where a lead came from
type LeadSource string

const (
	LeadSourceWeb             LeadSource = "Web"
	LeadSourcePhoneInquiry    LeadSource = "Phone Inquiry"
	LeadSourcePartnerReferral LeadSource = "Partner Referral"
	LeadSourcePurchasedList   LeadSource = "Purchased List"
	LeadSourceOther           LeadSource = "Other"
)

// LeadRating is the sales temperature of a lead
type LeadRating string

const (
	LeadRatingHot  LeadRating = "Hot"
	LeadRatingWarm LeadRating = "Warm"
	LeadRatingCold LeadRating = "Cold"
)

// Lead is a prospective customer not yet converted
type Lead struct {
	Base              `yaml:",inline"`
	FirstName         string     `json:"firstName" yaml:"firstName"`
	LastName          string     `json:"lastName" yaml:"lastName"`
	Company           string     `json:"company" yaml:"company"`
	Title             string     `json:"title,omitempty" yaml:"title,omitempty"`
	Email             string     `json:"email" yaml:"email"`
	Phone             string     `json:"phone,omitempty" yaml:"phone,omitempty"`
	Status            LeadStatus `json:"status" yaml:"status"`
	Source            LeadSource `json:"source" yaml:"source"`
	Rating            LeadRating `json:"rating,omitempty" yaml:"rating,omitempty"`
	AnnualRevenue     int64      `json:"annualRevenue,omitempty" yaml:"annualRevenue,omitempty"`
	NumberOfEmployees int        `json:"numberOfEmployees,omitempty" yaml:"numberOfEmployees,omitempty"`
	Industry          Industry   `json:"industry,omitempty" yaml:"industry,omitempty"`
	Address           *Address   `json:"address,omitempty" yaml:"address,omitempty"`
	Description       string     `json:"description,omitempty" yaml:"description,omitempty"`
	OwnerID           string     `json:"ownerId,omitempty" yaml:"ownerId,omitempty"`
}

// OpportunityStage is a step in the sales pipeline
type OpportunityStage string

const (
	StageProspecting        OpportunityStage = "Prospecting"
	StageQualification      OpportunityStage = "Qualification"
	StageNeedsAnalysis      OpportunityStage = "Needs Analysis"
	StageValueProposition   OpportunityStage = "Value Proposition"
	StagePerceptionAnalysis OpportunityStage = "Perception Analysis"
	StageProposal           OpportunityStage = "Proposal/Price Quote"
	StageNegotiation        OpportunityStage = "Negotiation/Review"
	StageClosedWon          OpportunityStage = "Closed Won"
	StageClosedLost         OpportunityStage = "Closed Lost"
)

// IsClosedWon reports the fully won stage
func (s OpportunityStage) IsClosedWon() bool { return s == StageClosedWon }

// IsClosedLost reports the fully lost stage
func (s OpportunityStage) IsClosedLost() bool { return s == StageClosedLost }

// Opportunity is a potential deal with an account
type Opportunity struct {
	Base        `yaml:",inline"`
	Name        string           `json:"name" yaml:"name"`
	AccountID   string           `json:"accountId" yaml:"accountId"`
	AccountName string           `json:"accountName,omitempty" yaml:"accountName,omitempty"`
	Stage       OpportunityStage `json:"stage" yaml:"stage"`
	Amount      int64            `json:"amount" yaml:"amount"`
	Probability int              `json:"probability" yaml:"probability"`
	CloseDate   string           `json:"closeDate" yaml:"closeDate"`
	Type        string           `json:"type,omitempty" yaml:"type,omitempty"`
	LeadSource  LeadSource       `json:"leadSource,omitempty" yaml:"leadSource,omitempty"`
	NextStep    string           `json:"nextStep,omitempty" yaml:"nextStep,omitempty"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	OwnerID     string           `json:"ownerId,omitempty" yaml:"ownerId,omitempty"`
}

// AccountType classifies the relationship with an account
type AccountType string

const (
	AccountTypeProspect AccountType = "Prospect"
	AccountTypeCustomer AccountType = "Customer"
	AccountTypePartner  AccountType = "Partner"
	AccountTypeOther    AccountType = "Other"
)

// Industry of a lead or account
type Industry string

const (
	IndustryTechnology    Industry = "Technology"
	IndustryFinance       Industry = "Finance"
	IndustryHealthcare    Industry = "Healthcare"
	IndustryManufacturing Industry = "Manufacturing"
	IndustryRetail        Industry = "Retail"
	IndustryEducation     Industry = "Education"
	IndustryOther         Industry = "Other"
)

// Account is a company the business works with
type Account struct {
	Base              `yaml:",inline"`
	Name              string      `json:"name" yaml:"name"`
	Type              AccountType `json:"type" yaml:"type"`
	Industry          Industry    `json:"industry,omitempty" yaml:"industry,omitempty"`
	AnnualRevenue     int64       `json:"annualRevenue,omitempty" yaml:"annualRevenue,omitempty"`
	NumberOfEmployees int         `json:"numberOfEmployees,omitempty" yaml:"numberOfEmployees,omitempty"`
	Website           string      `json:"website,omitempty" yaml:"website,omitempty"`
	Phone             string      `json:"phone,omitempty" yaml:"phone,omitempty"`
	BillingAddress    *Address    `json:"billingAddress,omitempty" yaml:"billingAddress,omitempty"`
	ShippingAddress   *Address    `json:"shippingAddress,omitempty" yaml:"shippingAddress,omitempty"`
	Description       string      `json:"description,omitempty" yaml:"description,omitempty"`
	OwnerID           string      `json:"ownerId,omitempty" yaml:"ownerId,omitempty"`
}

// Contact is a person working at an account
type Contact struct {
	Base           `yaml:",inline"`
	FirstName      string   `json:"firstName" yaml:"firstName"`
	LastName       string   `json:"lastName" yaml:"lastName"`
	AccountID      string   `json:"accountId" yaml:"accountId"`
	AccountName    string   `json:"accountName,omitempty" yaml:"accountName,omitempty"`
	Email          string   `json:"email" yaml:"email"`
	Phone          string   `json:"phone,omitempty" yaml:"phone,omitempty"`
	Mobile         string   `json:"mobile,omitempty" yaml:"mobile,omitempty"`
	Title          string   `json:"title,omitempty" yaml:"title,omitempty"`
	Department     string   `json:"department,omitempty" yaml:"department,omitempty"`
	MailingAddress *Address `json:"mailingAddress,omitempty" yaml:"mailingAddress,omitempty"`
	Description    string   `json:"description,omitempty" yaml:"description,omitempty"`
	OwnerID        string   `json:"ownerId,omitempty" yaml:"ownerId,omitempty"`
}

// ActivityType is the kind of interaction logged
type ActivityType string

const (
	ActivityCall    ActivityType = "Call"
	ActivityEmail   ActivityType = "Email"
	ActivityMeeting ActivityType = "Meeting"
	ActivityTask    ActivityType = "Task"
	ActivityNote    ActivityType = "Note"
)

// ActivityStatus tracks completion of an activity
type ActivityStatus string

const (
	ActivityPlanned   ActivityStatus = "Planned"
	ActivityCompleted ActivityStatus = "Completed"
	ActivityCancelled ActivityStatus = "Cancelled"
)

// RelatedToType names the entity kind an activity points at
type RelatedToType string

const (
	RelatedToLead        RelatedToType = "Lead"
	RelatedToOpportunity RelatedToType = "Opportunity"
	RelatedToAccount     RelatedToType = "Account"
	RelatedToContact     RelatedToType = "Contact"
	RelatedToCase        RelatedToType = "Case"
)

// Activity is a call, email, meeting, task or note attached to another record.
// RelatedToType and RelatedToID form one polymorphic reference.
type Activity struct {
	Base          `yaml:",inline"`
	Type          ActivityType   `json:"type" yaml:"type"`
	Subject       string         `json:"subject" yaml:"subject"`
	Description   string         `json:"description,omitempty" yaml:"description,omitempty"`
	Status        ActivityStatus `json:"status" yaml:"status"`
	DueDate       string         `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	RelatedToType RelatedToType  `json:"relatedToType" yaml:"relatedToType"`
	RelatedToID   string         `json:"relatedToId" yaml:"relatedToId"`
	OwnerID       string         `json:"ownerId,omitempty" yaml:"ownerId,omitempty"`
}

package types

// CampaignType is the channel of a marketing campaign
type CampaignType string

const (
	CampaignEmail      CampaignType = "Email"
	CampaignWebinar    CampaignType = "Webinar"
	CampaignConference CampaignType = "Conference"
	CampaignTradeShow  CampaignType = "Trade Show"
	CampaignDirectMail CampaignType = "Direct Mail"
	CampaignOther      CampaignType = "Other"
)

// CampaignStatus tracks campaign execution
type CampaignStatus string

const (
	CampaignPlanned    CampaignStatus = "Planned"
	CampaignInProgress CampaignStatus = "In Progress"
	CampaignCompleted  CampaignStatus = "Completed"
	CampaignAborted    CampaignStatus = "Aborted"
)

// Campaign is a marketing effort with budget and revenue figures
type Campaign struct {
	Base            `yaml:",inline"`
	Name            string         `json:"name" yaml:"name"`
	Type            CampaignType   `json:"type" yaml:"type"`
	Status          CampaignStatus `json:"status" yaml:"status"`
	StartDate       string         `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	EndDate         string         `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	BudgetedCost    int64          `json:"budgetedCost,omitempty" yaml:"budgetedCost,omitempty"`
	ActualCost      int64          `json:"actualCost,omitempty" yaml:"actualCost,omitempty"`
	ExpectedRevenue int64          `json:"expectedRevenue,omitempty" yaml:"expectedRevenue,omitempty"`
	ActualRevenue   int64          `json:"actualRevenue,omitempty" yaml:"actualRevenue,omitempty"`
	Description     string         `json:"description,omitempty" yaml:"description,omitempty"`
	OwnerID         string         `json:"ownerId,omitempty" yaml:"ownerId,omitempty"`
}

// CampaignMemberStatus is the response state of a member
type CampaignMemberStatus string

const (
	MemberSent      CampaignMemberStatus = "Sent"
	MemberResponded CampaignMemberStatus = "Responded"
	MemberAttended  CampaignMemberStatus = "Attended"
	MemberNoShow    CampaignMemberStatus = "No Show"
)

// Responded reports whether the status counts as a response
func (s CampaignMemberStatus) Responded() bool {
	return s == MemberResponded || s == MemberAttended
}

// CampaignMemberType names the collection MemberID points into
type CampaignMemberType string

const (
	MemberTypeLead    CampaignMemberType = "Lead"
	MemberTypeContact CampaignMemberType = "Contact"
)

// CampaignMember links a lead or contact to a campaign
type CampaignMember struct {
	Base         `yaml:",inline"`
	CampaignID   string               `json:"campaignId" yaml:"campaignId"`
	MemberType   CampaignMemberType   `json:"memberType" yaml:"memberType"`
	MemberID     string               `json:"memberId" yaml:"memberId"`
	Status       CampaignMemberStatus `json:"status" yaml:"status"`
	HasResponded bool                 `json:"hasResponded" yaml:"hasResponded"`
}

// EmailTemplateCategory groups email templates
type EmailTemplateCategory string

const (
	TemplateSales     EmailTemplateCategory = "Sales"
	TemplateService   EmailTemplateCategory = "Service"
	TemplateMarketing EmailTemplateCategory = "Marketing"
	TemplateOther     EmailTemplateCategory = "Other"
)

// EmailTemplate is a reusable HTML email
type EmailTemplate struct {
	Base        `yaml:",inline"`
	Name        string                `json:"name" yaml:"name"`
	Subject     string                `json:"subject" yaml:"subject"`
	HTMLBody    string                `json:"htmlBody" yaml:"htmlBody"`
	Category    EmailTemplateCategory `json:"category" yaml:"category"`
	IsActive    bool                  `json:"isActive" yaml:"isActive"`
	Description string                `json:"description,omitempty" yaml:"description,omitempty"`
}

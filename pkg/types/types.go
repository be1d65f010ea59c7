package types

import "time"

// CurrentDataVersion is stamped under KeyDataVersion after seeding
const CurrentDataVersion = "1.0.0"

// Reserved keys that do not hold entity collections
const (
	KeyAuthUser       = "crm_auth_user"
	KeyAuthToken      = "crm_auth_token"
	KeyDataVersion    = "crm_data_version"
	KeyRecentlyViewed = "crm_recently_viewed"
	KeyInitialized    = "crm_initialized"
)

// Collection is the persistence key of one entity collection
type Collection string

const (
	// Sales
	CollectionLeads         Collection = "crm_leads"
	CollectionOpportunities Collection = "crm_opportunities"
	CollectionAccounts      Collection = "crm_accounts"
	CollectionContacts      Collection = "crm_contacts"
	CollectionActivities    Collection = "crm_activities"

	// Service
	CollectionCases              Collection = "crm_cases"
	CollectionCaseComments       Collection = "crm_case_comments"
	CollectionCaseTimelineEvents Collection = "crm_case_timeline_events"
	CollectionKnowledgeArticles  Collection = "crm_knowledge_articles"
	CollectionArticleRatings     Collection = "crm_article_ratings"

	// Marketing
	CollectionCampaigns       Collection = "crm_campaigns"
	CollectionCampaignMembers Collection = "crm_campaign_members"
	CollectionEmailTemplates  Collection = "crm_email_templates"

	// Analytics
	CollectionDashboards Collection = "crm_dashboards"
	CollectionReports    Collection = "crm_reports"
)

// Collections lists every entity collection in seeding order
var Collections = []Collection{
	CollectionLeads,
	CollectionAccounts,
	CollectionOpportunities,
	CollectionContacts,
	CollectionActivities,
	CollectionCases,
	CollectionCaseComments,
	CollectionCaseTimelineEvents,
	CollectionKnowledgeArticles,
	CollectionArticleRatings,
	CollectionCampaigns,
	CollectionCampaignMembers,
	CollectionEmailTemplates,
	CollectionDashboards,
	CollectionReports,
}

// Short returns the key without the crm_ prefix (e.g. "leads")
func (c Collection) Short() string {
	const prefix = "crm_"
	s := string(c)
	if len(s) > len(prefix) && s[:len(prefix)] == prefix {
		return s[len(prefix):]
	}
	return s
}

// Entity is implemented by every record managed by a collection store
type Entity interface {
	GetID() string
}

// Base carries the identity and timestamps shared by all entities
type Base struct {
	ID          string    `json:"id" yaml:"id"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt"`
	CreatedByID string    `json:"createdById,omitempty" yaml:"createdById,omitempty"`
	UpdatedByID string    `json:"updatedById,omitempty" yaml:"updatedById,omitempty"`
}

// GetID returns the entity id
func (b Base) GetID() string {
	return b.ID
}

// Address is a postal address embedded in several entities
type Address struct {
	Street     string `json:"street,omitempty" yaml:"street,omitempty"`
	City       string `json:"city,omitempty" yaml:"city,omitempty"`
	State      string `json:"state,omitempty" yaml:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty" yaml:"postalCode,omitempty"`
	Country    string `json:"country,omitempty" yaml:"country,omitempty"`
}

// DateRange bounds a dashboard widget or report
type DateRange struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// SortDirection orders query results
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortSpec names a field and direction
type SortSpec struct {
	Field     string        `json:"field" yaml:"field"`
	Direction SortDirection `json:"direction" yaml:"direction"`
}

// UserRole is the role of a signed-in user
type UserRole string

const (
	RoleAdmin         UserRole = "admin"
	RoleSalesRep      UserRole = "sales_rep"
	RoleServiceAgent  UserRole = "service_agent"
	RoleMarketingUser UserRole = "marketing_user"
)

// User is the signed-in identity persisted under KeyAuthUser
type User struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Role      UserRole `json:"role"`
	Avatar    string   `json:"avatar,omitempty"`
}

// LoginCredentials is the input to a login attempt
type LoginCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

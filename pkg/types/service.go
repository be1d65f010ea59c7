package types

import "time"

// CaseStatus tracks a support case
type CaseStatus string

const (
	CaseStatusNew       CaseStatus = "New"
	CaseStatusWorking   CaseStatus = "Working"
	CaseStatusEscalated CaseStatus = "Escalated"
	CaseStatusOnHold    CaseStatus = "On Hold"
	CaseStatusClosed    CaseStatus = "Closed"
)

// IsClosed reports whether the status denotes closure
func (s CaseStatus) IsClosed() bool { return s == CaseStatusClosed }

// CasePriority ranks urgency
type CasePriority string

const (
	PriorityLow      CasePriority = "Low"
	PriorityMedium   CasePriority = "Medium"
	PriorityHigh     CasePriority = "High"
	PriorityCritical CasePriority = "Critical"
)

// CaseType classifies the request
type CaseType string

const (
	CaseTypeQuestion       CaseType = "Question"
	CaseTypeProblem        CaseType = "Problem"
	CaseTypeFeatureRequest CaseType = "Feature Request"
	CaseTypeOther          CaseType = "Other"
)

// CaseOrigin is the channel a case arrived through
type CaseOrigin string

const (
	OriginPhone CaseOrigin = "Phone"
	OriginEmail CaseOrigin = "Email"
	OriginWeb   CaseOrigin = "Web"
	OriginChat  CaseOrigin = "Chat"
)

// Case is a customer support request.
// ClosedDate is set only while Status is Closed.
type Case struct {
	Base        `yaml:",inline"`
	CaseNumber  string       `json:"caseNumber" yaml:"caseNumber"`
	Subject     string       `json:"subject" yaml:"subject"`
	Description string       `json:"description" yaml:"description"`
	Status      CaseStatus   `json:"status" yaml:"status"`
	Priority    CasePriority `json:"priority" yaml:"priority"`
	Type        CaseType     `json:"type" yaml:"type"`
	Origin      CaseOrigin   `json:"origin" yaml:"origin"`
	ContactID   string       `json:"contactId,omitempty" yaml:"contactId,omitempty"`
	AccountID   string       `json:"accountId,omitempty" yaml:"accountId,omitempty"`
	OwnerID     string       `json:"ownerId,omitempty" yaml:"ownerId,omitempty"`
	ClosedDate  *time.Time   `json:"closedDate,omitempty" yaml:"closedDate,omitempty"`
}

// CaseComment is a public or internal note on a case
type CaseComment struct {
	Base       `yaml:",inline"`
	CaseID     string `json:"caseId" yaml:"caseId"`
	Body       string `json:"body" yaml:"body"`
	IsInternal bool   `json:"isInternal" yaml:"isInternal"`
}

// ArticleStatus is the publication state of a knowledge article
type ArticleStatus string

const (
	ArticleDraft     ArticleStatus = "Draft"
	ArticlePublished ArticleStatus = "Published"
	ArticleArchived  ArticleStatus = "Archived"
)

// ArticleCategory groups knowledge articles
type ArticleCategory string

const (
	CategoryGettingStarted  ArticleCategory = "Getting Started"
	CategoryTroubleshooting ArticleCategory = "Troubleshooting"
	CategoryHowTo           ArticleCategory = "How To"
	CategoryFAQ             ArticleCategory = "FAQ"
	CategoryBestPractices   ArticleCategory = "Best Practices"
	CategoryOther           ArticleCategory = "Other"
)

// KnowledgeArticle is a self-service help article
type KnowledgeArticle struct {
	Base            `yaml:",inline"`
	Title           string          `json:"title" yaml:"title"`
	Summary         string          `json:"summary" yaml:"summary"`
	Content         string          `json:"content" yaml:"content"`
	Status          ArticleStatus   `json:"status" yaml:"status"`
	Category        ArticleCategory `json:"category" yaml:"category"`
	Tags            []string        `json:"tags" yaml:"tags"`
	ViewCount       int             `json:"viewCount" yaml:"viewCount"`
	HelpfulCount    int             `json:"helpfulCount" yaml:"helpfulCount"`
	NotHelpfulCount int             `json:"notHelpfulCount" yaml:"notHelpfulCount"`
	AuthorID        string          `json:"authorId,omitempty" yaml:"authorId,omitempty"`
}

// ArticleRating is one helpful/not helpful vote
type ArticleRating struct {
	Base      `yaml:",inline"`
	ArticleID string `json:"articleId" yaml:"articleId"`
	IsHelpful bool   `json:"isHelpful" yaml:"isHelpful"`
	UserID    string `json:"userId,omitempty" yaml:"userId,omitempty"`
}

// CaseTimelineEventType is the kind of entry on a case timeline
type CaseTimelineEventType string

const (
	TimelineComment      CaseTimelineEventType = "Comment"
	TimelineStatusChange CaseTimelineEventType = "StatusChange"
	TimelineEdit         CaseTimelineEventType = "Edit"
	TimelineNote         CaseTimelineEventType = "Note"
)

// CaseTimelineEvent is an entry in a case history
type CaseTimelineEvent struct {
	Base        `yaml:",inline"`
	CaseID      string                `json:"caseId" yaml:"caseId"`
	Type        CaseTimelineEventType `json:"type" yaml:"type"`
	Title       string                `json:"title" yaml:"title"`
	Description string                `json:"description" yaml:"description"`
}

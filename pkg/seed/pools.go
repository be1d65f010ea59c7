package seed

import "github.com/Lavescar-dev/salesforce-crm-demo/pkg/types"

var (
	firstNames = []string{
		"John", "Jane", "Michael", "Sarah", "David", "Emily", "Robert", "Lisa",
		"James", "Jennifer", "William", "Mary", "Richard", "Patricia", "Thomas",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
		"Rodriguez", "Martinez", "Anderson", "Taylor", "Thomas", "Moore", "Jackson",
	}
	companies = []string{
		"Acme Corp", "TechStart Inc", "Global Solutions", "Innovation Labs", "Enterprise Systems",
		"Digital Dynamics", "Future Tech", "Synergy Solutions", "Prime Industries", "Quantum Corp",
	}
	industries = []types.Industry{
		types.IndustryTechnology, types.IndustryFinance, types.IndustryHealthcare,
		types.IndustryManufacturing, types.IndustryRetail, types.IndustryEducation,
	}
	cities = []string{"New York", "San Francisco", "Chicago", "Austin", "Boston", "Seattle", "Denver"}

	leadTitles    = []string{"CEO", "CTO", "VP Sales", "Director", "Manager"}
	contactTitles = []string{"VP", "Director", "Manager", "Specialist", "Coordinator"}
	departments   = []string{"Sales", "Marketing", "IT", "Operations", "Finance"}

	leadStatuses = []types.LeadStatus{
		types.LeadStatusNew, types.LeadStatusWorking, types.LeadStatusNurturing,
		types.LeadStatusQualified, types.LeadStatusUnqualified,
	}
	leadSources = []types.LeadSource{
		types.LeadSourceWeb, types.LeadSourcePhoneInquiry, types.LeadSourcePartnerReferral,
		types.LeadSourcePurchasedList, types.LeadSourceOther,
	}
	leadRatings = []types.LeadRating{types.LeadRatingHot, types.LeadRatingWarm, types.LeadRatingCold}

	accountTypes = []types.AccountType{
		types.AccountTypeProspect, types.AccountTypeCustomer, types.AccountTypePartner, types.AccountTypeOther,
	}

	stages = []types.OpportunityStage{
		types.StageProspecting, types.StageQualification, types.StageNeedsAnalysis,
		types.StageValueProposition, types.StagePerceptionAnalysis, types.StageProposal,
		types.StageNegotiation, types.StageClosedWon, types.StageClosedLost,
	}
	quarters         = []string{"Q1", "Q2", "Q3", "Q4"}
	dealTiers        = []string{"Enterprise", "Premium", "Standard"}
	opportunityTypes = []string{"New Business", "Existing Business", "Renewal"}

	activityTypes = []types.ActivityType{
		types.ActivityCall, types.ActivityEmail, types.ActivityMeeting, types.ActivityTask, types.ActivityNote,
	}
	activityStatuses = []types.ActivityStatus{types.ActivityPlanned, types.ActivityCompleted, types.ActivityCancelled}
	activitySubjects = []string{"Follow-up call", "Demo presentation", "Contract review", "Discovery meeting"}

	caseStatuses = []types.CaseStatus{
		types.CaseStatusNew, types.CaseStatusWorking, types.CaseStatusEscalated,
		types.CaseStatusOnHold, types.CaseStatusClosed,
	}
	casePriorities = []types.CasePriority{types.PriorityLow, types.PriorityMedium, types.PriorityHigh, types.PriorityCritical}
	caseTypes      = []types.CaseType{types.CaseTypeQuestion, types.CaseTypeProblem, types.CaseTypeFeatureRequest, types.CaseTypeOther}
	caseOrigins    = []types.CaseOrigin{types.OriginPhone, types.OriginEmail, types.OriginWeb, types.OriginChat}
	caseSubjects   = []string{"Login issues", "Feature not working", "Data sync problem", "Performance degradation"}
	commentBodies  = []string{
		"Reached out to the customer for more details.",
		"Reproduced the issue in staging.",
		"Escalated to the engineering team.",
		"Customer confirmed the workaround helps.",
		"Waiting on logs from the customer.",
	}
	timelineTypes = []types.CaseTimelineEventType{
		types.TimelineComment, types.TimelineStatusChange, types.TimelineEdit, types.TimelineNote,
	}

	articleTitles = []string{
		"How to reset your password",
		"Getting started with the platform",
		"Troubleshooting login issues",
		"Best practices for data management",
		"How to create custom reports",
	}
	articleCategories = []types.ArticleCategory{
		types.CategoryGettingStarted, types.CategoryTroubleshooting, types.CategoryHowTo,
		types.CategoryFAQ, types.CategoryBestPractices,
	}
	articleStatuses = []types.ArticleStatus{types.ArticleDraft, types.ArticlePublished, types.ArticleArchived}
	articleTags     = []string{"setup", "configuration", "admin", "user", "integration"}

	campaignTypes = []types.CampaignType{
		types.CampaignEmail, types.CampaignWebinar, types.CampaignConference,
		types.CampaignTradeShow, types.CampaignDirectMail,
	}
	campaignStatuses = []types.CampaignStatus{
		types.CampaignPlanned, types.CampaignInProgress, types.CampaignCompleted, types.CampaignAborted,
	}
	campaignThemes = []string{"Product Launch", "Brand Awareness", "Lead Gen"}
	memberStatuses = []types.CampaignMemberStatus{
		types.MemberSent, types.MemberResponded, types.MemberAttended, types.MemberNoShow,
	}

	templateNames    = []string{"Welcome Email", "Product Launch", "Event Invitation", "Follow-up", "Thank You"}
	templateSubjects = []string{
		"Welcome to our platform!",
		"Exciting news from our team",
		"You're invited to our upcoming event",
		"Following up on our conversation",
	}
	templateCategories = []types.EmailTemplateCategory{
		types.TemplateSales, types.TemplateService, types.TemplateMarketing, types.TemplateOther,
	}
)

const (
	articleContent = "<h2>Introduction</h2><p>This article provides detailed information...</p>" +
		"<h2>Step-by-step guide</h2><ol><li>First step</li><li>Second step</li><li>Third step</li></ol>"
	templateBody = "<html><body><h1>Hello!</h1><p>This is a sample email template.</p>" +
		"<p>Best regards,<br>The Team</p></body></html>"
)

// Seeded records are owned by the mock users of the matching role
const (
	ownerSales     = "user_2"
	ownerService   = "user_3"
	ownerMarketing = "user_4"
	ownerAdmin     = "user_1"
)

/*
Package types defines the CRM entity records and the persistence keys they
are stored under.

Every entity embeds Base (id, createdAt, updatedAt and the optional
createdById/updatedById audit fields) and therefore satisfies Entity. Field
names serialize in camelCase for both JSON and YAML so stored data and
apply files share one shape.

# Entities

Sales (sales.go):
  - Lead: prospect with status, source and rating
  - Account: company with type, industry and addresses
  - Opportunity: deal on an account with stage, amount and probability
  - Contact: person at an account
  - Activity: task, call, email, meeting or note related to a lead,
    opportunity, account or contact

Service (service.go):
  - Case: support ticket for a contact, with a CASE- prefixed number
  - CaseComment: public or internal note on a case
  - CaseTimelineEvent: audit trail entry on a case
  - KnowledgeArticle: help article with views and helpful counts
  - ArticleRating: one helpful/not helpful vote on an article

Marketing (marketing.go):
  - Campaign: budget, spend, reach and revenue figures
  - CampaignMember: lead or contact enrolled in a campaign
  - EmailTemplate: subject and body with {{placeholders}}

Analytics (analytics.go):
  - Dashboard: grid of widgets bound to a data source
  - Report: tabular, summary or matrix report definition

# Keys

Each collection is one JSON array under a Collection key (crm_leads,
crm_case_comments, ...). Collections lists them in seeding order and
Short strips the crm_ prefix for display and lookup. Session and seed
state use KeyAuthUser, KeyAuthToken, KeyInitialized and KeyDataVersion.

Enumerations are string types with exported constants; values outside the
constants are stored as given.
*/
package types

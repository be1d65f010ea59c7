package seed

import (
	"errors"
	"fmt"

	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/types"
)

// Counts is the number of entities generated per collection
type Counts struct {
	Leads              int `yaml:"leads" toml:"leads"`
	Accounts           int `yaml:"accounts" toml:"accounts"`
	Opportunities      int `yaml:"opportunities" toml:"opportunities"`
	Contacts           int `yaml:"contacts" toml:"contacts"`
	Activities         int `yaml:"activities" toml:"activities"`
	Cases              int `yaml:"cases" toml:"cases"`
	CaseComments       int `yaml:"case_comments" toml:"case_comments"`
	CaseTimelineEvents int `yaml:"case_timeline_events" toml:"case_timeline_events"`
	KnowledgeArticles  int `yaml:"knowledge_articles" toml:"knowledge_articles"`
	ArticleRatings     int `yaml:"article_ratings" toml:"article_ratings"`
	Campaigns          int `yaml:"campaigns" toml:"campaigns"`
	CampaignMembers    int `yaml:"campaign_members" toml:"campaign_members"`
	EmailTemplates     int `yaml:"email_templates" toml:"email_templates"`
	Dashboards         int `yaml:"dashboards" toml:"dashboards"`
	Reports            int `yaml:"reports" toml:"reports"`
}

// DefaultCounts is the demo dataset size
func DefaultCounts() Counts {
	return Counts{
		Leads:              25,
		Accounts:           15,
		Opportunities:      20,
		Contacts:           30,
		Activities:         40,
		Cases:              20,
		CaseComments:       30,
		CaseTimelineEvents: 30,
		KnowledgeArticles:  15,
		ArticleRatings:     25,
		Campaigns:          10,
		CampaignMembers:    50,
		EmailTemplates:     8,
		Dashboards:         2,
		Reports:            3,
	}
}

// ErrNegativeCount is returned by Counts.Validate
var ErrNegativeCount = errors.New("seed: count must not be negative")

func (c *Counts) named() []struct {
	name string
	n    *int
} {
	return []struct {
		name string
		n    *int
	}{
		{"leads", &c.Leads},
		{"accounts", &c.Accounts},
		{"opportunities", &c.Opportunities},
		{"contacts", &c.Contacts},
		{"activities", &c.Activities},
		{"cases", &c.Cases},
		{"case_comments", &c.CaseComments},
		{"case_timeline_events", &c.CaseTimelineEvents},
		{"knowledge_articles", &c.KnowledgeArticles},
		{"article_ratings", &c.ArticleRatings},
		{"campaigns", &c.Campaigns},
		{"campaign_members", &c.CampaignMembers},
		{"email_templates", &c.EmailTemplates},
		{"dashboards", &c.Dashboards},
		{"reports", &c.Reports},
	}
}

// Validate reports every negative count
func (c Counts) Validate() error {
	var errs []error
	for _, f := range c.named() {
		if *f.n < 0 {
			errs = append(errs, fmt.Errorf("%w: %s = %d", ErrNegativeCount, f.name, *f.n))
		}
	}
	return errors.Join(errs...)
}

// clamped returns c with negative counts raised to zero
func (c Counts) clamped() Counts {
	for _, f := range c.named() {
		*f.n = max(*f.n, 0)
	}
	return c
}

// Dataset is one generated set of every collection
type Dataset struct {
	Leads              []types.Lead
	Accounts           []types.Account
	Opportunities      []types.Opportunity
	Contacts           []types.Contact
	Activities         []types.Activity
	Cases              []types.Case
	CaseComments       []types.CaseComment
	CaseTimelineEvents []types.CaseTimelineEvent
	KnowledgeArticles  []types.KnowledgeArticle
	ArticleRatings     []types.ArticleRating
	Campaigns          []types.Campaign
	CampaignMembers    []types.CampaignMember
	EmailTemplates     []types.EmailTemplate
	Dashboards         []types.Dashboard
	Reports            []types.Report
}

// Counts reports the size of every collection in the dataset
func (d *Dataset) Counts() Counts {
	return Counts{
		Leads:              len(d.Leads),
		Accounts:           len(d.Accounts),
		Opportunities:      len(d.Opportunities),
		Contacts:           len(d.Contacts),
		Activities:         len(d.Activities),
		Cases:              len(d.Cases),
		CaseComments:       len(d.CaseComments),
		CaseTimelineEvents: len(d.CaseTimelineEvents),
		KnowledgeArticles:  len(d.KnowledgeArticles),
		ArticleRatings:     len(d.ArticleRatings),
		Campaigns:          len(d.Campaigns),
		CampaignMembers:    len(d.CampaignMembers),
		EmailTemplates:     len(d.EmailTemplates),
		Dashboards:         len(d.Dashboards),
		Reports:            len(d.Reports),
	}
}

type idSet map[string]struct{}

func collect[T types.Entity](items []T) idSet {
	set := make(idSet, len(items))
	for _, item := range items {
		set[item.GetID()] = struct{}{}
	}
	return set
}

func (s idSet) has(id string) bool {
	_, ok := s[id]
	return ok
}

// Validate checks that ids are unique across the dataset and that every
// reference resolves. All problems are returned joined.
func (d *Dataset) Validate() error {
	var errs []error
	ref := func(kind, id, field, target string, ok bool) {
		if !ok {
			errs = append(errs, fmt.Errorf("%s %s: %s %q not found", kind, id, field, target))
		}
	}

	seen := make(idSet)
	unique := func(kind string, set []string) {
		for _, id := range set {
			if id == "" {
				errs = append(errs, fmt.Errorf("%s with empty id", kind))
				continue
			}
			if seen.has(id) {
				errs = append(errs, fmt.Errorf("%s %s: duplicate id", kind, id))
			}
			seen[id] = struct{}{}
		}
	}
	unique("lead", ids(d.Leads))
	unique("account", ids(d.Accounts))
	unique("opportunity", ids(d.Opportunities))
	unique("contact", ids(d.Contacts))
	unique("activity", ids(d.Activities))
	unique("case", ids(d.Cases))
	unique("case comment", ids(d.CaseComments))
	unique("timeline event", ids(d.CaseTimelineEvents))
	unique("article", ids(d.KnowledgeArticles))
	unique("rating", ids(d.ArticleRatings))
	unique("campaign", ids(d.Campaigns))
	unique("campaign member", ids(d.CampaignMembers))
	unique("email template", ids(d.EmailTemplates))
	unique("dashboard", ids(d.Dashboards))
	unique("report", ids(d.Reports))

	leads := collect(d.Leads)
	accounts := collect(d.Accounts)
	opps := collect(d.Opportunities)
	contacts := collect(d.Contacts)
	cases := collect(d.Cases)
	articles := collect(d.KnowledgeArticles)
	campaigns := collect(d.Campaigns)

	for _, o := range d.Opportunities {
		ref("opportunity", o.ID, "accountId", o.AccountID, accounts.has(o.AccountID))
	}
	for _, c := range d.Contacts {
		ref("contact", c.ID, "accountId", c.AccountID, accounts.has(c.AccountID))
	}
	for _, a := range d.Activities {
		var ok bool
		switch a.RelatedToType {
		case types.RelatedToLead:
			ok = leads.has(a.RelatedToID)
		case types.RelatedToOpportunity:
			ok = opps.has(a.RelatedToID)
		case types.RelatedToAccount:
			ok = accounts.has(a.RelatedToID)
		case types.RelatedToContact:
			ok = contacts.has(a.RelatedToID)
		case types.RelatedToCase:
			ok = cases.has(a.RelatedToID)
		}
		ref("activity", a.ID, string(a.RelatedToType), a.RelatedToID, ok)
	}
	for _, c := range d.Cases {
		if c.ContactID != "" {
			ref("case", c.ID, "contactId", c.ContactID, contacts.has(c.ContactID))
		}
		if c.AccountID != "" {
			ref("case", c.ID, "accountId", c.AccountID, accounts.has(c.AccountID))
		}
	}
	for _, c := range d.CaseComments {
		ref("case comment", c.ID, "caseId", c.CaseID, cases.has(c.CaseID))
	}
	for _, e := range d.CaseTimelineEvents {
		ref("timeline event", e.ID, "caseId", e.CaseID, cases.has(e.CaseID))
	}
	for _, r := range d.ArticleRatings {
		ref("rating", r.ID, "articleId", r.ArticleID, articles.has(r.ArticleID))
	}
	for _, m := range d.CampaignMembers {
		ref("campaign member", m.ID, "campaignId", m.CampaignID, campaigns.has(m.CampaignID))
		switch m.MemberType {
		case types.MemberTypeLead:
			ref("campaign member", m.ID, "memberId", m.MemberID, leads.has(m.MemberID))
		case types.MemberTypeContact:
			ref("campaign member", m.ID, "memberId", m.MemberID, contacts.has(m.MemberID))
		default:
			errs = append(errs, fmt.Errorf("campaign member %s: unknown member type %q", m.ID, m.MemberType))
		}
	}

	return errors.Join(errs...)
}

func ids[T types.Entity](items []T) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.GetID()
	}
	return out
}

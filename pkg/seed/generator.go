package seed

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/collection"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/query"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/types"
)

const dateLayout = "2006-01-02"

// Generator produces a referentially consistent demo dataset
type Generator struct {
	rng    *rand.Rand
	now    func() time.Time
	ids    collection.IDGenerator
	counts Counts

	used idSet
}

// NewGenerator returns a generator. A nil rng is seeded from the clock, a
// nil now uses time.Now and a nil ids uses time+random ids. Negative
// counts generate nothing.
func NewGenerator(rng *rand.Rand, now func() time.Time, ids collection.IDGenerator, counts Counts) *Generator {
	if now == nil {
		now = time.Now
	}
	if rng == nil {
		seed := uint64(now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if ids == nil {
		ids = collection.TimeRandomIDs{Now: now}
	}
	return &Generator{rng: rng, now: now, ids: ids, counts: counts.clamped()}
}

// NewRand returns a deterministic source for a configured seed
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate builds every collection. Referenced collections are generated
// before the ones pointing at them.
func (g *Generator) Generate() *Dataset {
	g.used = make(idSet)
	ds := &Dataset{}
	ds.Leads = g.leads(g.counts.Leads)
	ds.Accounts = g.accounts(g.counts.Accounts)
	ds.Opportunities = g.opportunities(ds.Accounts, g.counts.Opportunities)
	ds.Contacts = g.contacts(ds.Accounts, g.counts.Contacts)
	ds.Activities = g.activities(ds.Leads, ds.Opportunities, g.counts.Activities)
	ds.Cases = g.cases(ds.Contacts, g.counts.Cases)
	ds.CaseComments = g.caseComments(ds.Cases, g.counts.CaseComments)
	ds.CaseTimelineEvents = g.timelineEvents(ds.Cases, g.counts.CaseTimelineEvents)
	ds.KnowledgeArticles = g.articles(g.counts.KnowledgeArticles)
	ds.ArticleRatings = g.ratings(ds.KnowledgeArticles, g.counts.ArticleRatings)
	ds.Campaigns = g.campaigns(g.counts.Campaigns)
	ds.CampaignMembers = g.campaignMembers(ds.Campaigns, ds.Leads, ds.Contacts, g.counts.CampaignMembers)
	ds.EmailTemplates = g.emailTemplates(g.counts.EmailTemplates)
	ds.Dashboards = g.dashboards(g.counts.Dashboards)
	ds.Reports = g.reports(g.counts.Reports)
	return ds
}

func pick[T any](r *rand.Rand, items []T) T {
	return items[r.IntN(len(items))]
}

// between returns an int in [lo, hi]
func (g *Generator) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.IntN(hi-lo+1)
}

func (g *Generator) newID() string {
	for {
		id := g.ids.NewID()
		if id != "" && !g.used.has(id) {
			g.used[id] = struct{}{}
			return id
		}
	}
}

// base mints an id and a createdAt up to createdWithin days back, with
// updatedAt no earlier than createdAt and at most updatedWithin days back.
func (g *Generator) base(createdWithin, updatedWithin int, owner string) types.Base {
	now := g.now().UTC().Truncate(time.Millisecond)
	created := now.Add(-time.Duration(g.rng.Int64N(int64(createdWithin)*int64(24*time.Hour) + 1))).Truncate(time.Millisecond)
	updated := now.Add(-time.Duration(g.rng.Int64N(int64(updatedWithin)*int64(24*time.Hour) + 1))).Truncate(time.Millisecond)
	if updated.Before(created) {
		updated = created
	}
	return types.Base{ID: g.newID(), CreatedAt: created, UpdatedAt: updated, CreatedByID: owner, UpdatedByID: owner}
}

// date returns a day between daysAgo in the past and daysAhead in the future
func (g *Generator) date(daysAgo, daysAhead int) string {
	return g.now().UTC().AddDate(0, 0, g.between(-daysAgo, daysAhead)).Format(dateLayout)
}

func (g *Generator) phone() string {
	return fmt.Sprintf("(%d) %d-%d", g.between(200, 999), g.between(200, 999), g.between(1000, 9999))
}

func email(first, last string) string {
	return strings.ToLower(first) + "." + strings.ToLower(last) + "@example.com"
}

func (g *Generator) address(street string) *types.Address {
	return &types.Address{
		Street:     fmt.Sprintf("%d %s", g.between(100, 9999), street),
		City:       pick(g.rng, cities),
		State:      "CA",
		PostalCode: fmt.Sprintf("%d", g.between(10000, 99999)),
		Country:    "USA",
	}
}

func (g *Generator) leads(n int) []types.Lead {
	out := make([]types.Lead, 0, n)
	for i := 0; i < n; i++ {
		first, last := pick(g.rng, firstNames), pick(g.rng, lastNames)
		out = append(out, types.Lead{
			Base:              g.base(90, 30, ownerSales),
			FirstName:         first,
			LastName:          last,
			Company:           pick(g.rng, companies),
			Title:             pick(g.rng, leadTitles),
			Email:             email(first, last),
			Phone:             g.phone(),
			Status:            pick(g.rng, leadStatuses),
			Source:            pick(g.rng, leadSources),
			Rating:            pick(g.rng, leadRatings),
			AnnualRevenue:     int64(g.between(100_000, 10_000_000)),
			NumberOfEmployees: g.between(10, 1000),
			Industry:          pick(g.rng, industries),
			Address:           g.address("Main St"),
			Description:       "Interested in our enterprise solutions.",
			OwnerID:           ownerSales,
		})
	}
	return out
}

func (g *Generator) accounts(n int) []types.Account {
	out := make([]types.Account, 0, n)
	for i := 0; i < n; i++ {
		name := pick(g.rng, companies)
		out = append(out, types.Account{
			Base:              g.base(180, 30, ownerSales),
			Name:              name,
			Type:              pick(g.rng, accountTypes),
			Industry:          pick(g.rng, industries),
			AnnualRevenue:     int64(g.between(500_000, 50_000_000)),
			NumberOfEmployees: g.between(50, 5000),
			Website:           "www." + strings.ToLower(strings.ReplaceAll(name, " ", "")) + ".com",
			Phone:             g.phone(),
			BillingAddress:    g.address("Business Blvd"),
			Description:       "Key enterprise account.",
			OwnerID:           ownerSales,
		})
	}
	return out
}

// probability follows the stage: certain when won, zero when lost
func (g *Generator) probability(stage types.OpportunityStage) int {
	switch {
	case stage.IsClosedWon():
		return 100
	case stage.IsClosedLost():
		return 0
	default:
		return g.between(10, 90)
	}
}

func (g *Generator) opportunities(accounts []types.Account, n int) []types.Opportunity {
	if len(accounts) == 0 {
		return []types.Opportunity{}
	}
	out := make([]types.Opportunity, 0, n)
	for i := 0; i < n; i++ {
		account := pick(g.rng, accounts)
		stage := pick(g.rng, stages)
		out = append(out, types.Opportunity{
			Base:        g.base(120, 30, ownerSales),
			Name:        fmt.Sprintf("%s %s Deal", pick(g.rng, quarters), pick(g.rng, dealTiers)),
			AccountID:   account.ID,
			AccountName: account.Name,
			Stage:       stage,
			Amount:      int64(g.between(10_000, 500_000)),
			Probability: g.probability(stage),
			CloseDate:   g.date(0, 90),
			Type:        pick(g.rng, opportunityTypes),
			LeadSource:  pick(g.rng, leadSources),
			NextStep:    "Schedule demo call",
			Description: "Strategic opportunity for enterprise expansion.",
			OwnerID:     ownerSales,
		})
	}
	return out
}

func (g *Generator) contacts(accounts []types.Account, n int) []types.Contact {
	if len(accounts) == 0 {
		return []types.Contact{}
	}
	out := make([]types.Contact, 0, n)
	for i := 0; i < n; i++ {
		account := pick(g.rng, accounts)
		first, last := pick(g.rng, firstNames), pick(g.rng, lastNames)
		out = append(out, types.Contact{
			Base:        g.base(150, 30, ownerSales),
			FirstName:   first,
			LastName:    last,
			AccountID:   account.ID,
			AccountName: account.Name,
			Email:       email(first, last),
			Phone:       g.phone(),
			Mobile:      g.phone(),
			Title:       pick(g.rng, contactTitles),
			Department:  pick(g.rng, departments),
			Description: "Key decision maker.",
			OwnerID:     ownerSales,
		})
	}
	return out
}

func (g *Generator) activities(leads []types.Lead, opps []types.Opportunity, n int) []types.Activity {
	var kinds []types.RelatedToType
	if len(leads) > 0 {
		kinds = append(kinds, types.RelatedToLead)
	}
	if len(opps) > 0 {
		kinds = append(kinds, types.RelatedToOpportunity)
	}
	if len(kinds) == 0 {
		return []types.Activity{}
	}

	out := make([]types.Activity, 0, n)
	for i := 0; i < n; i++ {
		kind := pick(g.rng, kinds)
		var relatedID string
		if kind == types.RelatedToLead {
			relatedID = pick(g.rng, leads).ID
		} else {
			relatedID = pick(g.rng, opps).ID
		}
		out = append(out, types.Activity{
			Base:          g.base(60, 30, ownerSales),
			Type:          pick(g.rng, activityTypes),
			Subject:       pick(g.rng, activitySubjects),
			Description:   "Discussion about requirements.",
			Status:        pick(g.rng, activityStatuses),
			DueDate:       g.date(0, 30),
			RelatedToType: kind,
			RelatedToID:   relatedID,
			OwnerID:       ownerSales,
		})
	}
	return out
}

func (g *Generator) cases(contacts []types.Contact, n int) []types.Case {
	if len(contacts) == 0 {
		return []types.Case{}
	}
	numbers := make(map[string]struct{}, n)
	out := make([]types.Case, 0, n)
	for i := 0; i < n; i++ {
		contact := pick(g.rng, contacts)
		status := pick(g.rng, caseStatuses)
		b := g.base(90, 30, ownerService)

		number := query.CaseNumber(b.CreatedAt, g.rng)
		for {
			if _, taken := numbers[number]; !taken {
				break
			}
			number = query.CaseNumber(b.CreatedAt, g.rng)
		}
		numbers[number] = struct{}{}

		c := types.Case{
			Base:        b,
			CaseNumber:  number,
			Subject:     pick(g.rng, caseSubjects),
			Description: "Customer is experiencing issues with the system.",
			Status:      status,
			Priority:    pick(g.rng, casePriorities),
			Type:        pick(g.rng, caseTypes),
			Origin:      pick(g.rng, caseOrigins),
			ContactID:   contact.ID,
			AccountID:   contact.AccountID,
			OwnerID:     ownerService,
		}
		if status.IsClosed() {
			closed := b.UpdatedAt
			c.ClosedDate = &closed
		}
		out = append(out, c)
	}
	return out
}

func (g *Generator) caseComments(cases []types.Case, n int) []types.CaseComment {
	if len(cases) == 0 {
		return []types.CaseComment{}
	}
	out := make([]types.CaseComment, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, types.CaseComment{
			Base:       g.base(60, 30, ownerService),
			CaseID:     pick(g.rng, cases).ID,
			Body:       pick(g.rng, commentBodies),
			IsInternal: g.rng.IntN(3) == 0,
		})
	}
	return out
}

func (g *Generator) timelineEvents(cases []types.Case, n int) []types.CaseTimelineEvent {
	if len(cases) == 0 {
		return []types.CaseTimelineEvent{}
	}
	out := make([]types.CaseTimelineEvent, 0, n)
	for i := 0; i < n; i++ {
		c := pick(g.rng, cases)
		kind := pick(g.rng, timelineTypes)
		title, desc := "Case updated", "Fields were edited."
		switch kind {
		case types.TimelineComment:
			title, desc = "Comment added", pick(g.rng, commentBodies)
		case types.TimelineStatusChange:
			title, desc = "Status changed", fmt.Sprintf("Status set to %s.", c.Status)
		case types.TimelineNote:
			title, desc = "Internal note", "Agent left a note for the team."
		}
		out = append(out, types.CaseTimelineEvent{
			Base:        g.base(60, 30, ownerService),
			CaseID:      c.ID,
			Type:        kind,
			Title:       title,
			Description: desc,
		})
	}
	return out
}

func (g *Generator) articles(n int) []types.KnowledgeArticle {
	out := make([]types.KnowledgeArticle, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, types.KnowledgeArticle{
			Base:            g.base(180, 60, ownerService),
			Title:           pick(g.rng, articleTitles),
			Summary:         "A comprehensive guide to help you get started.",
			Content:         articleContent,
			Status:          pick(g.rng, articleStatuses),
			Category:        pick(g.rng, articleCategories),
			Tags:            []string{pick(g.rng, articleTags)},
			ViewCount:       g.between(0, 500),
			HelpfulCount:    g.between(0, 100),
			NotHelpfulCount: g.between(0, 20),
			AuthorID:        ownerService,
		})
	}
	return out
}

func (g *Generator) ratings(articles []types.KnowledgeArticle, n int) []types.ArticleRating {
	if len(articles) == 0 {
		return []types.ArticleRating{}
	}
	users := []string{ownerAdmin, ownerSales, ownerService, ownerMarketing}
	out := make([]types.ArticleRating, 0, n)
	for i := 0; i < n; i++ {
		user := pick(g.rng, users)
		out = append(out, types.ArticleRating{
			Base:      g.base(60, 60, user),
			ArticleID: pick(g.rng, articles).ID,
			IsHelpful: g.rng.IntN(4) != 0,
			UserID:    user,
		})
	}
	return out
}

// scale returns v multiplied by a factor drawn from [lo, hi]
func (g *Generator) scale(v int64, lo, hi float64) int64 {
	return int64(float64(v) * (lo + g.rng.Float64()*(hi-lo)))
}

func (g *Generator) campaigns(n int) []types.Campaign {
	out := make([]types.Campaign, 0, n)
	for i := 0; i < n; i++ {
		budget := int64(g.between(5_000, 50_000))
		expected := int64(g.between(20_000, 200_000))
		out = append(out, types.Campaign{
			Base:            g.base(120, 30, ownerMarketing),
			Name:            fmt.Sprintf("%s %s Campaign", pick(g.rng, quarters), pick(g.rng, campaignThemes)),
			Type:            pick(g.rng, campaignTypes),
			Status:          pick(g.rng, campaignStatuses),
			StartDate:       g.date(90, 0),
			EndDate:         g.date(0, 90),
			BudgetedCost:    budget,
			ActualCost:      g.scale(budget, 0.8, 1.2),
			ExpectedRevenue: expected,
			ActualRevenue:   g.scale(expected, 0.5, 1.5),
			Description:     "Strategic marketing campaign targeting enterprise customers.",
			OwnerID:         ownerMarketing,
		})
	}
	return out
}

func (g *Generator) campaignMembers(campaigns []types.Campaign, leads []types.Lead, contacts []types.Contact, n int) []types.CampaignMember {
	var kinds []types.CampaignMemberType
	if len(leads) > 0 {
		kinds = append(kinds, types.MemberTypeLead)
	}
	if len(contacts) > 0 {
		kinds = append(kinds, types.MemberTypeContact)
	}
	if len(campaigns) == 0 || len(kinds) == 0 {
		return []types.CampaignMember{}
	}

	out := make([]types.CampaignMember, 0, n)
	for i := 0; i < n; i++ {
		kind := pick(g.rng, kinds)
		var memberID string
		if kind == types.MemberTypeLead {
			memberID = pick(g.rng, leads).ID
		} else {
			memberID = pick(g.rng, contacts).ID
		}
		status := pick(g.rng, memberStatuses)
		out = append(out, types.CampaignMember{
			Base:         g.base(90, 30, ownerMarketing),
			CampaignID:   pick(g.rng, campaigns).ID,
			MemberType:   kind,
			MemberID:     memberID,
			Status:       status,
			HasResponded: status.Responded(),
		})
	}
	return out
}

func (g *Generator) emailTemplates(n int) []types.EmailTemplate {
	out := make([]types.EmailTemplate, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, types.EmailTemplate{
			Base:        g.base(180, 60, ownerMarketing),
			Name:        pick(g.rng, templateNames),
			Subject:     pick(g.rng, templateSubjects),
			HTMLBody:    templateBody,
			Category:    pick(g.rng, templateCategories),
			IsActive:    g.rng.Float64() > 0.2,
			Description: "Standard email template for customer communications.",
		})
	}
	return out
}

var dashboardTemplates = []struct {
	name, description string
	widgets           []types.DashboardWidget
}{
	{
		name:        "Sales Overview",
		description: "Pipeline health and lead flow.",
		widgets: []types.DashboardWidget{
			{ID: "w_pipeline", Type: types.WidgetFunnel, Title: "Pipeline by Stage", DataSource: types.SourceOpportunities,
				Config:   types.WidgetConfig{GroupBy: "stage", AggregateField: "amount", AggregateFunction: types.AggregateSum},
				Position: types.WidgetPosition{X: 0, Y: 0, W: 6, H: 4}},
			{ID: "w_lead_sources", Type: types.WidgetPie, Title: "Leads by Source", DataSource: types.SourceLeads,
				Config:   types.WidgetConfig{GroupBy: "source", AggregateFunction: types.AggregateCount},
				Position: types.WidgetPosition{X: 6, Y: 0, W: 6, H: 4}},
			{ID: "w_won", Type: types.WidgetMetric, Title: "Closed Won", DataSource: types.SourceOpportunities,
				Config: types.WidgetConfig{AggregateField: "amount", AggregateFunction: types.AggregateSum,
					Filters: map[string]string{"stage": string(types.StageClosedWon)}},
				Position: types.WidgetPosition{X: 0, Y: 4, W: 4, H: 2}},
		},
	},
	{
		name:        "Service Overview",
		description: "Case load by status and priority.",
		widgets: []types.DashboardWidget{
			{ID: "w_case_status", Type: types.WidgetBar, Title: "Cases by Status", DataSource: types.SourceCases,
				Config:   types.WidgetConfig{GroupBy: "status", AggregateFunction: types.AggregateCount},
				Position: types.WidgetPosition{X: 0, Y: 0, W: 6, H: 4}},
			{ID: "w_case_priority", Type: types.WidgetPie, Title: "Cases by Priority", DataSource: types.SourceCases,
				Config:   types.WidgetConfig{GroupBy: "priority", AggregateFunction: types.AggregateCount},
				Position: types.WidgetPosition{X: 6, Y: 0, W: 6, H: 4}},
		},
	},
}

func (g *Generator) dashboards(n int) []types.Dashboard {
	out := make([]types.Dashboard, 0, n)
	for i := 0; i < n; i++ {
		tmpl := dashboardTemplates[i%len(dashboardTemplates)]
		widgets := make([]types.DashboardWidget, len(tmpl.widgets))
		copy(widgets, tmpl.widgets)
		out = append(out, types.Dashboard{
			Base:        g.base(90, 30, ownerAdmin),
			Name:        tmpl.name,
			Description: tmpl.description,
			Widgets:     widgets,
			IsPublic:    i%2 == 0,
			OwnerID:     ownerAdmin,
		})
	}
	return out
}

var reportTemplates = []types.Report{
	{Name: "Open Opportunities", Type: types.ReportTabular, DataSource: types.SourceOpportunities,
		Fields: []string{"name", "accountName", "stage", "amount", "closeDate"},
		SortBy: &types.SortSpec{Field: "amount", Direction: types.SortDesc}},
	{Name: "Leads by Source", Type: types.ReportSummary, DataSource: types.SourceLeads,
		Fields: []string{"firstName", "lastName", "company", "source"}, GroupBy: []string{"source"}},
	{Name: "Cases by Priority", Type: types.ReportMatrix, DataSource: types.SourceCases,
		Fields: []string{"caseNumber", "subject", "status", "priority"}, GroupBy: []string{"priority", "status"}},
}

func (g *Generator) reports(n int) []types.Report {
	out := make([]types.Report, 0, n)
	for i := 0; i < n; i++ {
		r := reportTemplates[i%len(reportTemplates)]
		r.Base = g.base(90, 30, ownerAdmin)
		r.Fields = append([]string(nil), r.Fields...)
		r.GroupBy = append([]string(nil), r.GroupBy...)
		if r.SortBy != nil {
			sort := *r.SortBy
			r.SortBy = &sort
		}
		r.OwnerID = ownerAdmin
		out = append(out, r)
	}
	return out
}

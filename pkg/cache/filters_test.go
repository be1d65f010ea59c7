package cache

import (
	"context"
	"testing"

	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/collection"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/storage"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededLeads(t *testing.T) *Leads {
	t.Helper()
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	store := collection.New[types.Lead](kv, types.CollectionLeads)
	require.NoError(t, store.ReplaceAll(ctx, []types.Lead{
		{Base: types.Base{ID: "1"}, FirstName: "Ada", LastName: "Lovelace", Company: "Engines", Email: "ada@engines.io",
			Status: types.LeadStatusNew, Source: types.LeadSourceWeb, Rating: types.LeadRatingHot},
		{Base: types.Base{ID: "2"}, FirstName: "Grace", LastName: "Hopper", Company: "Navy", Email: "grace@navy.mil",
			Status: types.LeadStatusWorking, Source: types.LeadSourcePhoneInquiry, Rating: types.LeadRatingWarm},
		{Base: types.Base{ID: "3"}, FirstName: "Alan", LastName: "Turing", Company: "Bletchley", Email: "alan@bp.uk",
			Status: types.LeadStatusNew, Source: types.LeadSourceWeb, Rating: types.LeadRatingCold},
	}))
	leads, err := NewLeads(ctx, store)
	require.NoError(t, err)
	return leads
}

func ids[T types.Entity](items []T) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.GetID()
	}
	return out
}

func TestLeads_Query(t *testing.T) {
	leads := seededLeads(t)

	tests := []struct {
		name   string
		filter LeadFilter
		want   []string
	}{
		{name: "no filter", filter: LeadFilter{}, want: []string{"1", "2", "3"}},
		{name: "status", filter: LeadFilter{Status: types.LeadStatusNew}, want: []string{"1", "3"}},
		{name: "status and rating", filter: LeadFilter{Status: types.LeadStatusNew, Rating: types.LeadRatingCold}, want: []string{"3"}},
		{name: "source", filter: LeadFilter{Source: types.LeadSourcePhoneInquiry}, want: []string{"2"}},
		{name: "term matches company case-insensitively", filter: LeadFilter{Term: "NAVY"}, want: []string{"2"}},
		{name: "term matches email", filter: LeadFilter{Term: "bp.uk"}, want: []string{"3"}},
		{name: "term with status", filter: LeadFilter{Term: "a", Status: types.LeadStatusWorking}, want: []string{"2"}},
		{name: "nothing", filter: LeadFilter{Term: "zzz"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(leads.Query(tt.filter)))
		})
	}

	assert.Equal(t, []string{"1", "3"}, ids(leads.FilterByStatus(types.LeadStatusNew)))
}

func TestOpportunities_UpdateStage(t *testing.T) {
	ctx := context.Background()
	opps, err := NewOpportunities(ctx, collection.New[types.Opportunity](storage.NewMemoryStore(), types.CollectionOpportunities))
	require.NoError(t, err)

	opp, err := opps.Create(ctx, types.Opportunity{Name: "Deal", AccountID: "acc", Stage: types.StageProspecting, Probability: 10, Amount: 5000})
	require.NoError(t, err)

	tests := []struct {
		name            string
		stage           types.OpportunityStage
		wantProbability int
	}{
		{name: "open stage keeps probability", stage: types.StageNegotiation, wantProbability: 10},
		{name: "closed won", stage: types.StageClosedWon, wantProbability: 100},
		{name: "closed lost", stage: types.StageClosedLost, wantProbability: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found, err := opps.UpdateStage(ctx, opp.ID, tt.stage)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, tt.stage, got.Stage)
			assert.Equal(t, tt.wantProbability, got.Probability)
		})
	}

	assert.Len(t, opps.ByAccount("acc"), 1)
	assert.Len(t, opps.FilterByStage(types.StageClosedLost), 1)
	assert.Len(t, opps.Query(OpportunityFilter{MinAmount: 6000}), 0)
	assert.Len(t, opps.Query(OpportunityFilter{AccountID: "acc", MinAmount: 5000}), 1)
}

func TestActivities_ByRelatedTo(t *testing.T) {
	ctx := context.Background()
	store := collection.New[types.Activity](storage.NewMemoryStore(), types.CollectionActivities)
	require.NoError(t, store.ReplaceAll(ctx, []types.Activity{
		{Base: types.Base{ID: "1"}, Type: types.ActivityCall, Status: types.ActivityPlanned, RelatedToType: types.RelatedToLead, RelatedToID: "x"},
		{Base: types.Base{ID: "2"}, Type: types.ActivityEmail, Status: types.ActivityCompleted, RelatedToType: types.RelatedToAccount, RelatedToID: "x"},
		{Base: types.Base{ID: "3"}, Type: types.ActivityCall, Status: types.ActivityCompleted, RelatedToType: types.RelatedToLead, RelatedToID: "y"},
	}))
	acts, err := NewActivities(ctx, store)
	require.NoError(t, err)

	assert.Equal(t, []string{"1"}, ids(acts.ByRelatedTo(types.RelatedToLead, "x")))
	assert.Equal(t, []string{"1", "3"}, ids(acts.FilterByType(types.ActivityCall)))
	assert.Equal(t, []string{"2", "3"}, ids(acts.FilterByStatus(types.ActivityCompleted)))
}

func TestCampaigns_ROI(t *testing.T) {
	ctx := context.Background()
	store := collection.New[types.Campaign](storage.NewMemoryStore(), types.CollectionCampaigns)
	require.NoError(t, store.ReplaceAll(ctx, []types.Campaign{
		{Base: types.Base{ID: "c1"}, ActualCost: 1000, ActualRevenue: 3000, Status: types.CampaignCompleted},
		{Base: types.Base{ID: "c2"}, Status: types.CampaignPlanned},
	}))
	campaigns, err := NewCampaigns(ctx, store)
	require.NoError(t, err)

	roi, ok := campaigns.ROI("c1")
	require.True(t, ok)
	assert.InDelta(t, 200.0, roi, 0.001)

	roi, ok = campaigns.ROI("c2")
	require.True(t, ok)
	assert.Zero(t, roi)

	_, ok = campaigns.ROI("missing")
	assert.False(t, ok)

	assert.Len(t, campaigns.FilterByStatus(types.CampaignPlanned), 1)
}

func TestKnowledgeArticles_Search(t *testing.T) {
	ctx := context.Background()
	store := collection.New[types.KnowledgeArticle](storage.NewMemoryStore(), types.CollectionKnowledgeArticles)
	require.NoError(t, store.ReplaceAll(ctx, []types.KnowledgeArticle{
		{Base: types.Base{ID: "a1"}, Title: "Reset your password", Tags: []string{"login"}, Status: types.ArticlePublished},
		{Base: types.Base{ID: "a2"}, Title: "Billing FAQ", Summary: "Invoices explained", Tags: []string{"billing"}, Status: types.ArticleDraft},
	}))
	articles, err := NewKnowledgeArticles(ctx, store)
	require.NoError(t, err)

	assert.Equal(t, []string{"a1"}, ids(articles.Search("LOGIN")))
	assert.Equal(t, []string{"a2"}, ids(articles.Search("invoices")))
	assert.Equal(t, []string{"a1"}, ids(articles.FilterByStatus(types.ArticlePublished)))
	assert.Equal(t, []string{"a2"}, ids(articles.WithTag("billing")))
}

package seed

import (
	"context"
	"fmt"

	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/events"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/log"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/metrics"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/registry"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/storage"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/types"
)

// Apply replaces every collection with the dataset and reloads the caches
func Apply(ctx context.Context, reg *registry.Registry, ds *Dataset) error {
	writes := []struct {
		key   types.Collection
		write func() error
	}{
		{types.CollectionLeads, func() error { return reg.Leads.Store().ReplaceAll(ctx, ds.Leads) }},
		{types.CollectionAccounts, func() error { return reg.Accounts.Store().ReplaceAll(ctx, ds.Accounts) }},
		{types.CollectionOpportunities, func() error { return reg.Opportunities.Store().ReplaceAll(ctx, ds.Opportunities) }},
		{types.CollectionContacts, func() error { return reg.Contacts.Store().ReplaceAll(ctx, ds.Contacts) }},
		{types.CollectionActivities, func() error { return reg.Activities.Store().ReplaceAll(ctx, ds.Activities) }},
		{types.CollectionCases, func() error { return reg.Cases.Store().ReplaceAll(ctx, ds.Cases) }},
		{types.CollectionCaseComments, func() error { return reg.CaseComments.Store().ReplaceAll(ctx, ds.CaseComments) }},
		{types.CollectionCaseTimelineEvents, func() error {
			return reg.CaseTimelineEvents.Store().ReplaceAll(ctx, ds.CaseTimelineEvents)
		}},
		{types.CollectionKnowledgeArticles, func() error {
			return reg.KnowledgeArticles.Store().ReplaceAll(ctx, ds.KnowledgeArticles)
		}},
		{types.CollectionArticleRatings, func() error { return reg.ArticleRatings.Store().ReplaceAll(ctx, ds.ArticleRatings) }},
		{types.CollectionCampaigns, func() error { return reg.Campaigns.Store().ReplaceAll(ctx, ds.Campaigns) }},
		{types.CollectionCampaignMembers, func() error { return reg.CampaignMembers.Store().ReplaceAll(ctx, ds.CampaignMembers) }},
		{types.CollectionEmailTemplates, func() error { return reg.EmailTemplates.Store().ReplaceAll(ctx, ds.EmailTemplates) }},
		{types.CollectionDashboards, func() error { return reg.Dashboards.Store().ReplaceAll(ctx, ds.Dashboards) }},
		{types.CollectionReports, func() error { return reg.Reports.Store().ReplaceAll(ctx, ds.Reports) }},
	}

	for _, w := range writes {
		if err := w.write(); err != nil {
			return fmt.Errorf("failed to seed %s: %w", w.key, err)
		}
	}
	return reg.Reload(ctx)
}

// Bootstrap seeds the store when it has never been initialized, when the
// stored data version differs from the current one, or when force is set.
// It reports whether seeding ran.
func Bootstrap(ctx context.Context, kv storage.KV, reg *registry.Registry, gen *Generator, force bool) (bool, error) {
	logger := log.WithComponent("seed")

	initialized := storage.GetJSON(ctx, kv, types.KeyInitialized, false)
	version := storage.GetJSON(ctx, kv, types.KeyDataVersion, "")
	if !force && initialized && version == types.CurrentDataVersion {
		logger.Debug().Str("version", version).Msg("Data already initialized")
		return false, nil
	}

	ds := gen.Generate()
	if err := ds.Validate(); err != nil {
		return false, fmt.Errorf("generated dataset is inconsistent: %w", err)
	}
	if err := Apply(ctx, reg, ds); err != nil {
		return false, err
	}
	if err := storage.SetJSON(ctx, kv, types.KeyInitialized, true); err != nil {
		return true, err
	}
	if err := storage.SetJSON(ctx, kv, types.KeyDataVersion, types.CurrentDataVersion); err != nil {
		return true, err
	}

	metrics.SeedRunsTotal.Inc()
	reg.Broker().Publish(&events.Event{
		Type:    events.EventSeeded,
		Message: fmt.Sprintf("seeded data version %s", types.CurrentDataVersion),
	})

	counts := ds.Counts()
	logger.Info().
		Str("previous_version", version).
		Bool("forced", force).
		Int("leads", counts.Leads).
		Int("accounts", counts.Accounts).
		Int("opportunities", counts.Opportunities).
		Int("cases", counts.Cases).
		Int("campaigns", counts.Campaigns).
		Msg("Seed data initialized")
	return true, nil
}

// Reset empties every collection and forgets the initialization stamps so
// the next Bootstrap seeds again.
func Reset(ctx context.Context, kv storage.KV, reg *registry.Registry) error {
	for _, c := range reg.Collections() {
		if err := c.DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to clear %s: %w", c.Key(), err)
		}
	}
	if err := kv.Remove(ctx, types.KeyInitialized); err != nil {
		return err
	}
	if err := kv.Remove(ctx, types.KeyDataVersion); err != nil {
		return err
	}

	reg.Broker().Publish(&events.Event{Type: events.EventReset})
	logger := log.WithComponent("seed")
	logger.Info().Msg("Data reset")
	return nil
}

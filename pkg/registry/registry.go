// Package registry owns one collection store and cache per entity type,
// all sharing a single key-value substrate, id generator and clock.
package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/cache"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/collection"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/events"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/log"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/metrics"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/storage"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/types"
)

// ErrUnknownCollection is returned by Lookup for an unregistered name
var ErrUnknownCollection = errors.New("registry: unknown collection")

type options struct {
	preload bool
	ids     collection.IDGenerator
	now     func() time.Time
	broker  *events.Broker
}

// Option configures a Registry
type Option func(*options)

// WithPreload controls whether every cache loads on construction
func WithPreload(enabled bool) Option {
	return func(o *options) { o.preload = enabled }
}

// WithIDGenerator sets the id generator shared by every store
func WithIDGenerator(g collection.IDGenerator) Option {
	return func(o *options) { o.ids = g }
}

// WithClock sets the clock shared by every store
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithBroker publishes cache changes on b. New starts b if it is not
// running yet; stopping it stays with the caller.
func WithBroker(b *events.Broker) Option {
	return func(o *options) { o.broker = b }
}

// Registry holds the caches of every collection
type Registry struct {
	kv          storage.KV
	broker      *events.Broker
	ownsBroker  bool
	ids         collection.IDGenerator
	now         func() time.Time
	collections []cache.Collection
	byName      map[string]cache.Collection

	Leads              *cache.Leads
	Opportunities      *cache.Opportunities
	Accounts           *cache.Accounts
	Contacts           *cache.Contacts
	Activities         *cache.Activities
	Cases              *cache.Cases
	CaseComments       *cache.CaseComments
	CaseTimelineEvents *cache.CaseTimelineEvents
	KnowledgeArticles  *cache.KnowledgeArticles
	ArticleRatings     *cache.ArticleRatings
	Campaigns          *cache.Campaigns
	CampaignMembers    *cache.CampaignMembers
	EmailTemplates     *cache.EmailTemplates
	Dashboards         *cache.Dashboards
	Reports            *cache.Reports
}

// New builds every store and cache over kv
func New(ctx context.Context, kv storage.KV, opts ...Option) (*Registry, error) {
	o := options{preload: true, ids: collection.TimeRandomIDs{}, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	r := &Registry{
		kv:     kv,
		broker: o.broker,
		ids:    o.ids,
		now:    o.now,
		byName: make(map[string]cache.Collection),
	}
	if r.broker == nil {
		r.broker = events.NewBroker()
		r.broker.OnPublish(func(e *events.Event) {
			metrics.EventsPublishedTotal.WithLabelValues(string(e.Type)).Inc()
		})
		r.ownsBroker = true
	}
	r.broker.Start()

	if err := r.build(ctx, o.preload); err != nil {
		r.stopBroker()
		return nil, err
	}

	logger := log.WithComponent("registry")
	logger.Debug().Int("collections", len(r.collections)).Bool("preload", o.preload).Msg("Registry ready")
	return r, nil
}

func (r *Registry) build(ctx context.Context, preload bool) error {
	copts := []cache.Option{cache.WithAutoLoad(preload), cache.WithBroker(r.broker)}
	sopts := []collection.Option{collection.WithIDGenerator(r.ids), collection.WithClock(r.now)}

	var err error
	if r.Leads, err = cache.NewLeads(ctx, collection.New[types.Lead](r.kv, types.CollectionLeads, sopts...), copts...); err != nil {
		return err
	}
	if r.Accounts, err = cache.NewAccounts(ctx, collection.New[types.Account](r.kv, types.CollectionAccounts, sopts...), copts...); err != nil {
		return err
	}
	if r.Opportunities, err = cache.NewOpportunities(ctx, collection.New[types.Opportunity](r.kv, types.CollectionOpportunities, sopts...), copts...); err != nil {
		return err
	}
	if r.Contacts, err = cache.NewContacts(ctx, collection.New[types.Contact](r.kv, types.CollectionContacts, sopts...), copts...); err != nil {
		return err
	}
	if r.Activities, err = cache.NewActivities(ctx, collection.New[types.Activity](r.kv, types.CollectionActivities, sopts...), copts...); err != nil {
		return err
	}
	if r.Cases, err = cache.NewCases(ctx, collection.New[types.Case](r.kv, types.CollectionCases, sopts...), copts...); err != nil {
		return err
	}
	if r.CaseComments, err = cache.NewCaseComments(ctx, collection.New[types.CaseComment](r.kv, types.CollectionCaseComments, sopts...), copts...); err != nil {
		return err
	}
	if r.CaseTimelineEvents, err = cache.NewCaseTimelineEvents(ctx, collection.New[types.CaseTimelineEvent](r.kv, types.CollectionCaseTimelineEvents, sopts...), copts...); err != nil {
		return err
	}
	if r.KnowledgeArticles, err = cache.NewKnowledgeArticles(ctx, collection.New[types.KnowledgeArticle](r.kv, types.CollectionKnowledgeArticles, sopts...), copts...); err != nil {
		return err
	}
	if r.ArticleRatings, err = cache.NewArticleRatings(ctx, collection.New[types.ArticleRating](r.kv, types.CollectionArticleRatings, sopts...), copts...); err != nil {
		return err
	}
	if r.Campaigns, err = cache.NewCampaigns(ctx, collection.New[types.Campaign](r.kv, types.CollectionCampaigns, sopts...), copts...); err != nil {
		return err
	}
	if r.CampaignMembers, err = cache.NewCampaignMembers(ctx, collection.New[types.CampaignMember](r.kv, types.CollectionCampaignMembers, sopts...), copts...); err != nil {
		return err
	}
	if r.EmailTemplates, err = cache.NewEmailTemplates(ctx, collection.New[types.EmailTemplate](r.kv, types.CollectionEmailTemplates, sopts...), copts...); err != nil {
		return err
	}
	if r.Dashboards, err = cache.NewDashboards(ctx, collection.New[types.Dashboard](r.kv, types.CollectionDashboards, sopts...), copts...); err != nil {
		return err
	}
	if r.Reports, err = cache.NewReports(ctx, collection.New[types.Report](r.kv, types.CollectionReports, sopts...), copts...); err != nil {
		return err
	}

	// same order as types.Collections
	r.collections = []cache.Collection{
		r.Leads, r.Accounts, r.Opportunities, r.Contacts, r.Activities,
		r.Cases, r.CaseComments, r.CaseTimelineEvents, r.KnowledgeArticles, r.ArticleRatings,
		r.Campaigns, r.CampaignMembers, r.EmailTemplates,
		r.Dashboards, r.Reports,
	}
	for _, c := range r.collections {
		r.byName[c.Key()] = c
		r.byName[c.Name()] = c
		r.byName[c.Entity()] = c
	}
	return nil
}

// KV returns the shared substrate
func (r *Registry) KV() storage.KV {
	return r.kv
}

// Broker returns the broker change events are published on
func (r *Registry) Broker() *events.Broker {
	return r.broker
}

// IDs returns the shared id generator
func (r *Registry) IDs() collection.IDGenerator {
	return r.ids
}

// Now reads the shared clock
func (r *Registry) Now() time.Time {
	return r.now()
}

// Collections lists every cache in seeding order
func (r *Registry) Collections() []cache.Collection {
	out := make([]cache.Collection, len(r.collections))
	copy(out, r.collections)
	return out
}

// Lookup resolves a collection by key ("crm_leads"), short name ("leads")
// or entity kind ("lead")
func (r *Registry) Lookup(name string) (cache.Collection, error) {
	c, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, name)
	}
	return c, nil
}

// Reload refreshes every cache from storage
func (r *Registry) Reload(ctx context.Context) error {
	var errs []error
	for _, c := range r.collections {
		if err := c.Load(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Counts reports the cached size of every collection by short name
func (r *Registry) Counts() map[string]int {
	counts := make(map[string]int, len(r.collections))
	for _, c := range r.collections {
		counts[c.Name()] = c.Len()
	}
	return counts
}

// Close stops an owned broker and closes the substrate
func (r *Registry) Close() error {
	r.stopBroker()
	return r.kv.Close()
}

func (r *Registry) stopBroker() {
	if r.ownsBroker {
		r.broker.Stop()
	}
}

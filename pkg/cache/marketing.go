package cache

import (
	"context"

	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/collection"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/query"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/types"
)

// Campaigns caches the campaign collection
type Campaigns struct {
	*Cache[types.Campaign]
}

// NewCampaigns builds the campaign cache over store
func NewCampaigns(ctx context.Context, store *collection.Store[types.Campaign], opts ...Option) (*Campaigns, error) {
	c, err := build(ctx, store, "campaign", func(c types.Campaign) []string {
		return []string{c.Name, c.Description}
	}, opts)
	if err != nil {
		return nil, err
	}
	return &Campaigns{c}, nil
}

// FilterByStatus returns the campaigns in status
func (c *Campaigns) FilterByStatus(status types.CampaignStatus) []types.Campaign {
	return c.Filter(func(cp types.Campaign) bool { return cp.Status == status })
}

// ROI returns the percentage return of a cached campaign
func (c *Campaigns) ROI(id string) (float64, bool) {
	cp, ok := c.Find(id)
	if !ok {
		return 0, false
	}
	return query.ROI(float64(cp.ActualRevenue), float64(cp.ActualCost)), true
}

// CampaignMembers caches the campaign membership collection
type CampaignMembers struct {
	*Cache[types.CampaignMember]
}

// NewCampaignMembers builds the membership cache over store
func NewCampaignMembers(ctx context.Context, store *collection.Store[types.CampaignMember], opts ...Option) (*CampaignMembers, error) {
	c, err := build(ctx, store, "campaign_member", nil, opts)
	if err != nil {
		return nil, err
	}
	return &CampaignMembers{c}, nil
}

// ByCampaign returns the members of a campaign
func (m *CampaignMembers) ByCampaign(campaignID string) []types.CampaignMember {
	return m.Filter(func(cm types.CampaignMember) bool { return cm.CampaignID == campaignID })
}

// ByMember returns the campaigns memberships of one lead or contact
func (m *CampaignMembers) ByMember(kind types.CampaignMemberType, id string) []types.CampaignMember {
	return m.Filter(func(cm types.CampaignMember) bool {
		return cm.MemberType == kind && cm.MemberID == id
	})
}

// EmailTemplates caches the email template collection
type EmailTemplates struct {
	*Cache[types.EmailTemplate]
}

// NewEmailTemplates builds the template cache over store
func NewEmailTemplates(ctx context.Context, store *collection.Store[types.EmailTemplate], opts ...Option) (*EmailTemplates, error) {
	c, err := build(ctx, store, "email_template", func(t types.EmailTemplate) []string {
		return []string{t.Name, t.Subject}
	}, opts)
	if err != nil {
		return nil, err
	}
	return &EmailTemplates{c}, nil
}

// Active returns the templates available for sending
func (e *EmailTemplates) Active() []types.EmailTemplate {
	return e.Filter(func(t types.EmailTemplate) bool { return t.IsActive })
}

// FilterByCategory returns the templates in category
func (e *EmailTemplates) FilterByCategory(category types.EmailTemplateCategory) []types.EmailTemplate {
	return e.Filter(func(t types.EmailTemplate) bool { return t.Category == category })
}

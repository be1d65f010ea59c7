package cache

import (
	"context"

	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/collection"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/query"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/types"
)

// Leads caches the lead collection
type Leads struct {
	*Cache[types.Lead]
}

// NewLeads builds the lead cache over store
func NewLeads(ctx context.Context, store *collection.Store[types.Lead], opts ...Option) (*Leads, error) {
	c, err := build(ctx, store, "lead", func(l types.Lead) []string {
		return []string{l.FirstName, l.LastName, l.Company, l.Email}
	}, opts)
	if err != nil {
		return nil, err
	}
	return &Leads{c}, nil
}

// FilterByStatus returns the leads in status
func (l *Leads) FilterByStatus(status types.LeadStatus) []types.Lead {
	return l.Filter(func(lead types.Lead) bool { return lead.Status == status })
}

// LeadFilter narrows a lead listing. Zero fields match everything.
type LeadFilter struct {
	Status types.LeadStatus
	Source types.LeadSource
	Rating types.LeadRating
	Term   string
}

// Query applies every non-zero field of f
func (l *Leads) Query(f LeadFilter) []types.Lead {
	leads := l.Search(f.Term)
	return query.Filter(leads, func(lead types.Lead) bool {
		if f.Status != "" && lead.Status != f.Status {
			return false
		}
		if f.Source != "" && lead.Source != f.Source {
			return false
		}
		if f.Rating != "" && lead.Rating != f.Rating {
			return false
		}
		return true
	})
}

// Opportunities caches the opportunity collection
type Opportunities struct {
	*Cache[types.Opportunity]
}

// NewOpportunities builds the opportunity cache over store
func NewOpportunities(ctx context.Context, store *collection.Store[types.Opportunity], opts ...Option) (*Opportunities, error) {
	c, err := build(ctx, store, "opportunity", func(o types.Opportunity) []string {
		return []string{o.Name, o.AccountName}
	}, opts)
	if err != nil {
		return nil, err
	}
	return &Opportunities{c}, nil
}

// UpdateStage moves an opportunity to stage. Closing stages pin the
// probability to 100 (won) or 0 (lost).
func (o *Opportunities) UpdateStage(ctx context.Context, id string, stage types.OpportunityStage) (types.Opportunity, bool, error) {
	patch := map[string]any{"stage": stage}
	switch {
	case stage.IsClosedWon():
		patch["probability"] = 100
	case stage.IsClosedLost():
		patch["probability"] = 0
	}
	return o.Update(ctx, id, patch)
}

// FilterByStage returns the opportunities in stage
func (o *Opportunities) FilterByStage(stage types.OpportunityStage) []types.Opportunity {
	return o.Filter(func(opp types.Opportunity) bool { return opp.Stage == stage })
}

// ByAccount returns the opportunities of an account
func (o *Opportunities) ByAccount(accountID string) []types.Opportunity {
	return o.Filter(func(opp types.Opportunity) bool { return opp.AccountID == accountID })
}

// OpportunityFilter narrows an opportunity listing. Zero fields match
// everything.
type OpportunityFilter struct {
	Stage     types.OpportunityStage
	AccountID string
	MinAmount int64
}

// Query applies every non-zero field of f
func (o *Opportunities) Query(f OpportunityFilter) []types.Opportunity {
	return o.Filter(func(opp types.Opportunity) bool {
		if f.Stage != "" && opp.Stage != f.Stage {
			return false
		}
		if f.AccountID != "" && opp.AccountID != f.AccountID {
			return false
		}
		return opp.Amount >= f.MinAmount
	})
}

// Accounts caches the account collection
type Accounts struct {
	*Cache[types.Account]
}

// NewAccounts builds the account cache over store
func NewAccounts(ctx context.Context, store *collection.Store[types.Account], opts ...Option) (*Accounts, error) {
	c, err := build(ctx, store, "account", func(a types.Account) []string {
		return []string{a.Name, a.Website}
	}, opts)
	if err != nil {
		return nil, err
	}
	return &Accounts{c}, nil
}

// FilterByType returns the accounts of kind t
func (a *Accounts) FilterByType(t types.AccountType) []types.Account {
	return a.Filter(func(acct types.Account) bool { return acct.Type == t })
}

// Contacts caches the contact collection
type Contacts struct {
	*Cache[types.Contact]
}

// NewContacts builds the contact cache over store
func NewContacts(ctx context.Context, store *collection.Store[types.Contact], opts ...Option) (*Contacts, error) {
	c, err := build(ctx, store, "contact", func(c types.Contact) []string {
		return []string{c.FirstName, c.LastName, c.Email}
	}, opts)
	if err != nil {
		return nil, err
	}
	return &Contacts{c}, nil
}

// ByAccount returns the contacts of an account
func (c *Contacts) ByAccount(accountID string) []types.Contact {
	return c.Filter(func(contact types.Contact) bool { return contact.AccountID == accountID })
}

// Activities caches the activity collection
type Activities struct {
	*Cache[types.Activity]
}

// NewActivities builds the activity cache over store
func NewActivities(ctx context.Context, store *collection.Store[types.Activity], opts ...Option) (*Activities, error) {
	c, err := build(ctx, store, "activity", func(a types.Activity) []string {
		return []string{a.Subject, a.Description}
	}, opts)
	if err != nil {
		return nil, err
	}
	return &Activities{c}, nil
}

// ByRelatedTo returns the activities attached to one record
func (a *Activities) ByRelatedTo(kind types.RelatedToType, id string) []types.Activity {
	return a.Filter(func(act types.Activity) bool {
		return act.RelatedToType == kind && act.RelatedToID == id
	})
}

// FilterByType returns the activities of kind t
func (a *Activities) FilterByType(t types.ActivityType) []types.Activity {
	return a.Filter(func(act types.Activity) bool { return act.Type == t })
}

// FilterByStatus returns the activities in status
func (a *Activities) FilterByStatus(status types.ActivityStatus) []types.Activity {
	return a.Filter(func(act types.Activity) bool { return act.Status == status })
}

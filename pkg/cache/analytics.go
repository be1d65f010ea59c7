package cache

import (
	"context"

	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/collection"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/types"
)

// Dashboards caches the dashboard collection
type Dashboards struct {
	*Cache[types.Dashboard]
}

// NewDashboards builds the dashboard cache over store
func NewDashboards(ctx context.Context, store *collection.Store[types.Dashboard], opts ...Option) (*Dashboards, error) {
	c, err := build(ctx, store, "dashboard", func(d types.Dashboard) []string {
		return []string{d.Name, d.Description}
	}, opts)
	if err != nil {
		return nil, err
	}
	return &Dashboards{c}, nil
}

// Public returns the dashboards shared with every user
func (d *Dashboards) Public() []types.Dashboard {
	return d.Filter(func(db types.Dashboard) bool { return db.IsPublic })
}

// Reports caches the saved report collection
type Reports struct {
	*Cache[types.Report]
}

// NewReports builds the report cache over store
func NewReports(ctx context.Context, store *collection.Store[types.Report], opts ...Option) (*Reports, error) {
	c, err := build(ctx, store, "report", func(r types.Report) []string {
		return []string{r.Name, r.Description}
	}, opts)
	if err != nil {
		return nil, err
	}
	return &Reports{c}, nil
}

// ByDataSource returns the reports reading source
func (r *Reports) ByDataSource(source types.DataSource) []types.Report {
	return r.Filter(func(rp types.Report) bool { return rp.DataSource == source })
}

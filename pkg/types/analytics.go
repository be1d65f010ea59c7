package types

// WidgetType is the chart kind of a dashboard widget
type WidgetType string

const (
	WidgetBar    WidgetType = "bar"
	WidgetPie    WidgetType = "pie"
	WidgetLine   WidgetType = "line"
	WidgetFunnel WidgetType = "funnel"
	WidgetMetric WidgetType = "metric"
)

// DataSource names the collection a widget or report reads
type DataSource string

const (
	SourceLeads         DataSource = "leads"
	SourceOpportunities DataSource = "opportunities"
	SourceAccounts      DataSource = "accounts"
	SourceContacts      DataSource = "contacts"
	SourceCases         DataSource = "cases"
	SourceCampaigns     DataSource = "campaigns"
)

// Aggregate is the function applied by a widget
type Aggregate string

const (
	AggregateCount Aggregate = "count"
	AggregateSum   Aggregate = "sum"
	AggregateAvg   Aggregate = "avg"
)

// WidgetConfig describes how a widget groups and aggregates its source.
// Filters holds field equality constraints.
type WidgetConfig struct {
	GroupBy           string            `json:"groupBy,omitempty" yaml:"groupBy,omitempty"`
	AggregateField    string            `json:"aggregateField,omitempty" yaml:"aggregateField,omitempty"`
	AggregateFunction Aggregate         `json:"aggregateFunction,omitempty" yaml:"aggregateFunction,omitempty"`
	Filters           map[string]string `json:"filters,omitempty" yaml:"filters,omitempty"`
	DateRange         *DateRange        `json:"dateRange,omitempty" yaml:"dateRange,omitempty"`
}

// WidgetPosition places a widget on the dashboard grid
type WidgetPosition struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
	W int `json:"w" yaml:"w"`
	H int `json:"h" yaml:"h"`
}

// DashboardWidget is one chart on a dashboard
type DashboardWidget struct {
	ID         string         `json:"id" yaml:"id"`
	Type       WidgetType     `json:"type" yaml:"type"`
	Title      string         `json:"title" yaml:"title"`
	DataSource DataSource     `json:"dataSource" yaml:"dataSource"`
	Config     WidgetConfig   `json:"config" yaml:"config"`
	Position   WidgetPosition `json:"position" yaml:"position"`
}

// Dashboard is a named set of widgets
type Dashboard struct {
	Base        `yaml:",inline"`
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Widgets     []DashboardWidget `json:"widgets" yaml:"widgets"`
	IsPublic    bool              `json:"isPublic" yaml:"isPublic"`
	OwnerID     string            `json:"ownerId,omitempty" yaml:"ownerId,omitempty"`
}

// ReportType is the layout of a report
type ReportType string

const (
	ReportTabular ReportType = "tabular"
	ReportSummary ReportType = "summary"
	ReportMatrix  ReportType = "matrix"
)

// Report is a saved query over one data source
type Report struct {
	Base        `yaml:",inline"`
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Type        ReportType        `json:"type" yaml:"type"`
	DataSource  DataSource        `json:"dataSource" yaml:"dataSource"`
	Fields      []string          `json:"fields" yaml:"fields"`
	Filters     map[string]string `json:"filters,omitempty" yaml:"filters,omitempty"`
	GroupBy     []string          `json:"groupBy,omitempty" yaml:"groupBy,omitempty"`
	SortBy      *SortSpec         `json:"sortBy,omitempty" yaml:"sortBy,omitempty"`
	DateRange   *DateRange        `json:"dateRange,omitempty" yaml:"dateRange,omitempty"`
	OwnerID     string            `json:"ownerId,omitempty" yaml:"ownerId,omitempty"`
}

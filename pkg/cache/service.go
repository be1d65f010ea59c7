package cache

import (
	"context"
	"slices"

	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/collection"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/types"
)

// Cases caches the support case collection
type Cases struct {
	*Cache[types.Case]
}

// NewCases builds the case cache over store
func NewCases(ctx context.Context, store *collection.Store[types.Case], opts ...Option) (*Cases, error) {
	c, err := build(ctx, store, "case", func(c types.Case) []string {
		return []string{c.CaseNumber, c.Subject}
	}, opts)
	if err != nil {
		return nil, err
	}
	return &Cases{c}, nil
}

// ByContact returns the cases raised by a contact
func (c *Cases) ByContact(contactID string) []types.Case {
	return c.Filter(func(cs types.Case) bool { return cs.ContactID == contactID })
}

// FilterByStatus returns the cases in status
func (c *Cases) FilterByStatus(status types.CaseStatus) []types.Case {
	return c.Filter(func(cs types.Case) bool { return cs.Status == status })
}

// FilterByPriority returns the cases with priority
func (c *Cases) FilterByPriority(priority types.CasePriority) []types.Case {
	return c.Filter(func(cs types.Case) bool { return cs.Priority == priority })
}

// CaseComments caches the case comment collection
type CaseComments struct {
	*Cache[types.CaseComment]
}

// NewCaseComments builds the case comment cache over store
func NewCaseComments(ctx context.Context, store *collection.Store[types.CaseComment], opts ...Option) (*CaseComments, error) {
	c, err := build(ctx, store, "case_comment", func(c types.CaseComment) []string {
		return []string{c.Body}
	}, opts)
	if err != nil {
		return nil, err
	}
	return &CaseComments{c}, nil
}

// ByCase returns the comments on a case
func (c *CaseComments) ByCase(caseID string) []types.CaseComment {
	return c.Filter(func(cc types.CaseComment) bool { return cc.CaseID == caseID })
}

// CaseTimelineEvents caches the case history collection
type CaseTimelineEvents struct {
	*Cache[types.CaseTimelineEvent]
}

// NewCaseTimelineEvents builds the timeline cache over store
func NewCaseTimelineEvents(ctx context.Context, store *collection.Store[types.CaseTimelineEvent], opts ...Option) (*CaseTimelineEvents, error) {
	c, err := build(ctx, store, "case_timeline_event", func(e types.CaseTimelineEvent) []string {
		return []string{e.Title, e.Description}
	}, opts)
	if err != nil {
		return nil, err
	}
	return &CaseTimelineEvents{c}, nil
}

// ByCase returns the timeline of a case
func (c *CaseTimelineEvents) ByCase(caseID string) []types.CaseTimelineEvent {
	return c.Filter(func(e types.CaseTimelineEvent) bool { return e.CaseID == caseID })
}

// KnowledgeArticles caches the knowledge base
type KnowledgeArticles struct {
	*Cache[types.KnowledgeArticle]
}

// NewKnowledgeArticles builds the article cache over store
func NewKnowledgeArticles(ctx context.Context, store *collection.Store[types.KnowledgeArticle], opts ...Option) (*KnowledgeArticles, error) {
	c, err := build(ctx, store, "knowledge_article", func(a types.KnowledgeArticle) []string {
		return append([]string{a.Title, a.Summary}, a.Tags...)
	}, opts)
	if err != nil {
		return nil, err
	}
	return &KnowledgeArticles{c}, nil
}

// FilterByStatus returns the articles in status
func (k *KnowledgeArticles) FilterByStatus(status types.ArticleStatus) []types.KnowledgeArticle {
	return k.Filter(func(a types.KnowledgeArticle) bool { return a.Status == status })
}

// WithTag returns the articles carrying tag
func (k *KnowledgeArticles) WithTag(tag string) []types.KnowledgeArticle {
	return k.Filter(func(a types.KnowledgeArticle) bool { return slices.Contains(a.Tags, tag) })
}

// ArticleRatings caches the article vote collection
type ArticleRatings struct {
	*Cache[types.ArticleRating]
}

// NewArticleRatings builds the rating cache over store
func NewArticleRatings(ctx context.Context, store *collection.Store[types.ArticleRating], opts ...Option) (*ArticleRatings, error) {
	c, err := build(ctx, store, "article_rating", nil, opts)
	if err != nil {
		return nil, err
	}
	return &ArticleRatings{c}, nil
}

// ByArticle returns the votes on an article
func (r *ArticleRatings) ByArticle(articleID string) []types.ArticleRating {
	return r.Filter(func(rt types.ArticleRating) bool { return rt.ArticleID == articleID })
}

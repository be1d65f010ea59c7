/*
Package cache keeps an in-memory, observable copy of each CRM collection.

A Cache wraps one collection.Store. Reads (Items, Find, Filter, Search)
are served from memory; writes go to the store and the cached list is then
rebuilt from what the store holds, so the cache never diverges from
storage:

	           Create / Update / Delete
	caller ─────────────────────────────► collection.Store ──► KV
	  ▲                                         │
	  │ Items / Find / Search                   │ GetAll
	  │                                         ▼
	  └──────────────── Cache.items ◄──────── reload
	                        │
	                        ├──► Subscribe callbacks (Change[T])
	                        └──► events.Broker (lead.created, ...)

A miss (update or delete of an unknown id) neither reloads nor notifies.

# Typed wrappers

Each entity has a wrapper that embeds *Cache[T] and adds the lookups the
screens need:

	leads, err := cache.NewLeads(ctx, store)
	qualified := leads.FilterByStatus(types.LeadStatusQualified)
	hot := leads.Query(cache.LeadFilter{Rating: types.LeadRatingHot, Term: "acme"})

	opp, found, err := opportunities.UpdateStage(ctx, id, types.StageClosedWon)

Search fields differ per entity (leads match name, company and email;
cases match case number and subject). Entities without search fields
match on id.

# Type-erased access

Collection exposes any cache without its type parameter, which the
registry and the CLI use to address collections by name and to move
records in and out as JSON.
*/
package cache

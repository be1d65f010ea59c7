/*
Package collection implements CRUD over one entity collection stored as a
single JSON array under one key.

Every operation reads the whole array, changes it in memory and writes it
back. A mutex on the Store serializes these cycles within a process.

Identity and timestamps are owned by the store:
  - Create assigns a fresh id (retrying on collision) and sets createdAt
    and updatedAt to the same instant.
  - Update merges a JSON object patch, keeps id and createdAt, and moves
    updatedAt strictly forward even when the clock has not advanced.
  - Unknown ids are a false result, never an error.

Reads are forgiving: an absent key or malformed data reads as an empty
collection (logged and counted in crm_corrupt_reads_total). Transport
failures from the KV are returned to the caller. A write rejected for
capacity surfaces as storage.ErrStorageFull and leaves the stored array
unchanged.

	leads := collection.New[types.Lead](kv, types.CollectionLeads)
	lead, err := leads.Create(ctx, types.Lead{FirstName: "Ada", Status: types.LeadStatusNew})
	lead, found, err := leads.Update(ctx, lead.ID, map[string]any{"status": "Qualified"})
*/
package collection

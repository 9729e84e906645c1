// SPDX-License-Identifier: MIT

// Package storage persists simulation results as versioned records.
//
// A Record pairs a payload (Data) with free-form Metadata under a Name
// built from underscore-joined parts, e.g. "GCG_ELM_electron". Saving the
// same Name again appends a new version instead of overwriting:
//
//	st, _ := storage.NewStore(storage.BackendSQLite, "results.db")
//	_ = st.Init(ctx)
//	rec, _ := st.Save(ctx, storage.Record{Name: storage.Name("GCG", "ELM"), Data: data})
//	all, _ := st.List(ctx, rec.Name) // ascending versions
//
// Two backends share the Store contract: MemoryStore (tests, one-shot
// runs) and SQLiteStore (modernc.org/sqlite, no cgo). Both round-trip
// payloads through the same JSON codec, so Data comes back with JSON
// types (float64 numbers, []any slices) regardless of backend.
package storage

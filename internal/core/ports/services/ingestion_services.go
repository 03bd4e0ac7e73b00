package services

import "context"

// IngestionSvcFacade is the single-cycle ingestion operation driven by the
// scheduler. One call fetches the full supported set against the pivot,
// stores every valid quote, then refreshes the cache.
type IngestionSvcFacade interface {
	// FetchAndStore runs one ingestion cycle and returns the number of
	// snapshots stored. Provider and store failures abort the cycle with an
	// error; cache failures do not.
	FetchAndStore(ctx context.Context) (int, error)
}

package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
// RateCache is set by the composition root after the Redis client is up; the
// pgsql constructor only fills the durable repositories.
type RepositoryProvider struct {
	SnapshotRepo   RateSnapshotRepositoryFacade
	ConversionRepo ConversionRecordRepositoryFacade
	RateCache      RateCache
}

package constants

// Обменник приложения.
const ExchangeName = "catalog_exchange"

// Имена очередей.
const (
	QueueListingImport = "listing_import_tasks"
)

// Ключи маршрутизации.
const (
	RoutingKeyListingImport = "feed.listings.import"
)

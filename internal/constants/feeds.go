package constants

// Режимы источника фида.
const (
	FeedModeHTTP   = "http"
	FeedModeSheets = "sheets"
)

// DefaultFeedName используется, когда имя фида не задано в конфигурации.
const DefaultFeedName = "primary"

package handlers

// AppHandlers bundles the HTTP handlers for route registration.
type AppHandlers struct {
	EventHandler *EventHandler
	MediaHandler *MediaHandler
	ZoneHandler  *ZoneHandler
}

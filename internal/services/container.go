package services

// ServiceContainer bundles the application services for wiring.
type ServiceContainer struct {
	EventService    EventService
	UploadService   UploadService
	ZoneService     ZoneService
	DeletionService DeletionService
}

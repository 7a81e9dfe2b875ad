package events

// TopicLocationEvents is the topic all catalog change events go to.
const TopicLocationEvents = "location.events"

// Event types published by the catalog service.
const (
	LocationCreated = "location.created"
	LocationUpdated = "location.updated"
	LocationDeleted = "location.deleted"
	PhotoAttached   = "location.photo_attached"
)

// LocationEvent is the payload for created/updated/deleted events.
type LocationEvent struct {
	LocationID int64   `json:"location_id"`
	Name       string  `json:"name,omitempty"`
	Latitude   float64 `json:"latitude,omitempty"`
	Longitude  float64 `json:"longitude,omitempty"`
}

// PhotoAttachedEvent is the payload for photo attachment events.
type PhotoAttachedEvent struct {
	LocationID int64  `json:"location_id"`
	PhotoID    int64  `json:"photo_id"`
	Filename   string `json:"filename"`
}

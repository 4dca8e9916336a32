package domain

// NotificationPayload is the visible part of a push notification.
type NotificationPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Image string `json:"image,omitempty"`
}

// PushNotification is the message routed to a device token. Data carries a
// free-form string map the client app uses for deep linking.
type PushNotification struct {
	To           string              `json:"to"`
	Notification NotificationPayload `json:"notification"`
	Data         map[string]string   `json:"data,omitempty"`
}

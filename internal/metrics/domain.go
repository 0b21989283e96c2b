package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ContactMessagesReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_messages_received_total",
			Help: "Contact messages submitted through the public form",
		},
		[]string{"kind"}, // "property" | "general"
	)

	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_login_attempts_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"},
	)

	PropertiesDuplicated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "properties_duplicated_total",
			Help: "Properties created through the duplicate operation",
		},
	)

	ImagesUploaded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "property_images_uploaded_total",
			Help: "Property image uploads by result",
		},
		[]string{"result"},
	)

	RefreshTokensPurged = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "refresh_tokens_purged_total",
			Help: "Refresh tokens revoked for expiry or deleted after retention",
		},
		[]string{"action"}, // "revoked" | "deleted"
	)
)

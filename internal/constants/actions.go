package constants

// Audit actions.
const (
	Create = "create"
	Update = "update"
)

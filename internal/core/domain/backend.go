package domain

// Backend names one of the services this gateway fronts. Each backend is
// resolved to a single base address at process start.
type Backend string

const (
	BackendAuth     Backend = "auth"
	BackendUser     Backend = "user"
	BackendMatching Backend = "matching"
	BackendChat     Backend = "chat"
)

package commands

// CommandResponse represents a standardized response format for all commands
type CommandResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) *CommandResponse {
	return &CommandResponse{
		Status: "ok",
		Data:   data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(err error) *CommandResponse {
	return &CommandResponse{
		Status: "error",
		Error:  err.Error(),
	}
}

// engineRegistry holds the registry all commands operate on. It is set once
// at application startup via SetRegistry (main.go or server startup).
var engineRegistry *EngineRegistry

// SetRegistry sets the global engine registry
func SetRegistry(registry *EngineRegistry) {
	engineRegistry = registry
}

// GetRegistry returns the current engine registry, or nil if SetRegistry
// has not been called yet
func GetRegistry() *EngineRegistry {
	return engineRegistry
}

package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Access token required
)

// EndpointSecurityConfig maps route names to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	"Health": SecurityPublic,

	"GetOrder":           SecurityAccess,
	"UpdateOrder":        SecurityAccess,
	"AddOrderLine":       SecurityAccess,
	"UpdateOrderLine":    SecurityAccess,
	"UpdateRentalPrices": SecurityAccess,
	"UpdatePrintOptions": SecurityAccess,
	"GetOrderDocument":   SecurityAccess,
	"UploadProductImage": SecurityAccess,
	"GetProductImage":    SecurityAccess,
}

// GetSecurityLevel returns the security level for a given route name
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[route]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityAccess
}

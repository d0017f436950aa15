package app

import "github.com/gin-gonic/gin"

// Module defines the contract for a self-registering dashboard module.
// Each resource module registers its own routes under the admin group.
type Module interface {
	RegisterRoutes(admin *gin.RouterGroup)
}

package router

import "github.com/gin-gonic/gin"

// Module is a feature area that mounts its routes on the group it is given,
// either the /api group or the engine root.
type Module interface {
	Register(rg *gin.RouterGroup)
}

// Package node defines the identity surface shared by ops-serving
// coordinator nodes.
package node

import "github.com/gin-gonic/gin"

type Node interface {
	NodeID() string
	Kind() string
	HTTPRouter() *gin.Engine
}

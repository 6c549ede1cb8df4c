package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/chatpdf/types"
)

type readiness interface {
	QuestionEnabled() bool
}

// RequireReady rejects requests until an index has been built in this session.
func RequireReady(session readiness) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !session.QuestionEnabled() {
			c.AbortWithStatusJSON(http.StatusConflict, types.DataResponse{
				Status:  false,
				Message: "Por favor, carregue e processe um arquivo PDF primeiro para habilitar as perguntas",
			})
			return
		}
		c.Next()
	}
}

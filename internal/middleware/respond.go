package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/pizza-cart/internal/domain/dto"
	"github.com/guttosm/pizza-cart/internal/i18n"
)

// abortWithError writes the translated error envelope for messageKey and stops the chain.
func abortWithError(c *gin.Context, status int, messageKey string) {
	message := i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(c))
	c.AbortWithStatusJSON(status, dto.NewError(dto.ErrCodeFromStatus(status), message).
		WithRequestID(GetRequestID(c)))
}

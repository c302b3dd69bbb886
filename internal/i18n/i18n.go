// Package i18n provides internationalization support for the pizza cart service.
// It handles translation of user-facing error messages.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{messages: messages}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the translated message for the given key and locale.
// Unknown locales use DefaultLocale; unknown keys are returned as-is.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Supports reports whether locale has a message table.
func (t *Translator) Supports(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// GetLocale extracts the locale from the Accept-Language header of c.
// Only the first preference is considered; unsupported languages map to DefaultLocale.
func GetLocale(c *gin.Context) string {
	acceptLang := c.GetHeader(AcceptLanguageHeader)
	if acceptLang == "" {
		return DefaultLocale
	}

	// "en-US,en;q=0.9,pt;q=0.8" -> "en"
	first := strings.TrimSpace(strings.Split(strings.Split(acceptLang, ",")[0], ";")[0])
	if idx := strings.Index(first, "-"); idx > 0 {
		first = first[:idx]
	}
	lang := strings.ToLower(first)

	if GetTranslator().Supports(lang) {
		return lang
	}
	return DefaultLocale
}

var messages = map[string]map[string]string{
	"en": {
		ErrKeyInvalidRequest:            "Invalid request",
		ErrKeyInvalidRequestBody:        "Invalid request body",
		ErrKeyInternalError:             "An unexpected error occurred",
		ErrKeyAPIKeyRequired:            "API key is required",
		ErrKeyInvalidAPIKey:             "Invalid API key",
		ErrKeyNotFound:                  "Not found",
		ErrKeyRateLimitExceeded:         "Too many requests, please try again later",
		ErrKeyConflict:                  "Idempotency key was already used with a different request",
		ErrKeyInvalidToken:              "Invalid or expired token",
		ErrKeyTokenRequired:             "Authentication token is required",
		ErrKeyTimeout:                   "The request took too long to complete",
		ErrKeyPizzaNotFound:             "There is no pizza at this position in the cart",
		ErrKeyInvalidIndex:              "index: must be a non-negative integer",
		ErrKeyInvalidMiscID:             "miscId: must be an integer",
		ErrKeyInvalidIngredientQuantity: "ingredients: quantity must be a positive integer",
		ErrKeyOrderNotFound:             "Order not found",
		ErrKeyOrderRejected:             "The order could not be placed",
		ErrKeyOrdersUnavailable:         "Ordering is temporarily unavailable",
		ErrKeyCatalogUnavailable:        "The menu is temporarily unavailable",
		ErrKeyLoginRequired:             "Sign in to see your orders",
	},
	"pt": {
		ErrKeyInvalidRequest:            "Requisição inválida",
		ErrKeyInvalidRequestBody:        "Corpo da requisição inválido",
		ErrKeyInternalError:             "Ocorreu um erro inesperado",
		ErrKeyAPIKeyRequired:            "Chave de API é obrigatória",
		ErrKeyInvalidAPIKey:             "Chave de API inválida",
		ErrKeyNotFound:                  "Não encontrado",
		ErrKeyRateLimitExceeded:         "Muitas requisições, tente novamente mais tarde",
		ErrKeyConflict:                  "A chave de idempotência já foi usada com outra requisição",
		ErrKeyInvalidToken:              "Token inválido ou expirado",
		ErrKeyTokenRequired:             "Token de autenticação é obrigatório",
		ErrKeyTimeout:                   "A requisição demorou demais para ser concluída",
		ErrKeyPizzaNotFound:             "Não há pizza nesta posição do carrinho",
		ErrKeyInvalidIndex:              "index: deve ser um inteiro não negativo",
		ErrKeyInvalidMiscID:             "miscId: deve ser um inteiro",
		ErrKeyInvalidIngredientQuantity: "ingredients: a quantidade deve ser um inteiro positivo",
		ErrKeyOrderNotFound:             "Pedido não encontrado",
		ErrKeyOrderRejected:             "Não foi possível realizar o pedido",
		ErrKeyOrdersUnavailable:         "Pedidos temporariamente indisponíveis",
		ErrKeyCatalogUnavailable:        "O cardápio está temporariamente indisponível",
		ErrKeyLoginRequired:             "Entre na sua conta para ver seus pedidos",
	},
	"nl": {
		ErrKeyInvalidRequest:            "Ongeldig verzoek",
		ErrKeyInvalidRequestBody:        "Ongeldige aanvraag body",
		ErrKeyInternalError:             "Er is een onverwachte fout opgetreden",
		ErrKeyAPIKeyRequired:            "API-sleutel is vereist",
		ErrKeyInvalidAPIKey:             "Ongeldige API-sleutel",
		ErrKeyNotFound:                  "Niet gevonden",
		ErrKeyRateLimitExceeded:         "Te veel verzoeken, probeer het later opnieuw",
		ErrKeyConflict:                  "Idempotentiesleutel is al gebruikt voor een ander verzoek",
		ErrKeyInvalidToken:              "Ongeldig of verlopen token",
		ErrKeyTokenRequired:             "Authenticatietoken is vereist",
		ErrKeyTimeout:                   "Het verzoek duurde te lang",
		ErrKeyPizzaNotFound:             "Er staat geen pizza op deze positie in de winkelwagen",
		ErrKeyInvalidIndex:              "index: moet een niet-negatief geheel getal zijn",
		ErrKeyInvalidMiscID:             "miscId: moet een geheel getal zijn",
		ErrKeyInvalidIngredientQuantity: "ingredients: hoeveelheid moet een positief geheel getal zijn",
		ErrKeyOrderNotFound:             "Bestelling niet gevonden",
		ErrKeyOrderRejected:             "De bestelling kon niet worden geplaatst",
		ErrKeyOrdersUnavailable:         "Bestellen is tijdelijk niet beschikbaar",
		ErrKeyCatalogUnavailable:        "Het menu is tijdelijk niet beschikbaar",
		ErrKeyLoginRequired:             "Log in om je bestellingen te zien",
	},
}

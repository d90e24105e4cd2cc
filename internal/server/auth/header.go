package auth

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/chirpy/internal/common"
)

// GetBearerToken extracts the credential from an "Authorization: Bearer ..."
// header. The returned string is unparsed and unverified; depending on the
// endpoint it is either an access token or a refresh token.
func GetBearerToken(headers http.Header) (string, error) {
	return stripAuthPrefix(headers, "Bearer ")
}

// GetAPIKey extracts the credential from an "Authorization: ApiKey ..."
// header, used by the payment webhook.
func GetAPIKey(headers http.Header) (string, error) {
	return stripAuthPrefix(headers, "ApiKey ")
}

func stripAuthPrefix(headers http.Header, prefix string) (string, error) {
	value := headers.Get("Authorization")
	if value == "" {
		return "", common.ErrorUnauthorized
	}

	credential, found := strings.CutPrefix(value, prefix)
	if !found || credential == "" {
		return "", common.ErrorUnauthorized
	}

	return strings.TrimSpace(credential), nil
}

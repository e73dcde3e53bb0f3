package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// optionalConfigSignature is the body fragment the server returns when only
// its optional configuration is absent. The metadata download treats such a
// response as complete rather than failed.
const optionalConfigSignature = "optional configuration not set"

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if strings.Contains(strings.ToLower(body), optionalConfigSignature) {
		return fmt.Errorf("%w: %s", ErrOptionalConfigMissing, body)
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		// 401 on the login endpoint means rejected credentials; anywhere
		// else it means the session has lapsed.
		if strings.HasSuffix(resp.Request.URL, "/api/auth/login") {
			return fmt.Errorf("%w: %s", ErrBadCredentials, body)
		}
		return fmt.Errorf("%w: %s", ErrNotAuthenticated, body)
	case http.StatusForbidden, http.StatusLocked:
		return fmt.Errorf("%w: %s", ErrAccountDisabled, body)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrAlreadyAuthenticated, body)
	case http.StatusUpgradeRequired:
		return fmt.Errorf("%w: %s", ErrServerVersionUnsupported, body)
	default:
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
	}
}

// Package oauth implements the identity provider clients for external OAuth
// sources. Each client exchanges an authorization code server-to-server, then
// fetches the provider profile with the obtained access token. Exchanges are
// linear and non-retrying: authorization codes are single-use.
package oauth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	domainerrors "markeep/internal/domain/errors"
)

const clientTimeout = 10 * time.Second

// newHTTPClient builds the outbound client shared by provider implementations.
// The timeout is the only safety net; a slow provider blocks just the
// requesting call.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: clientTimeout}
}

// exchangeCode POSTs the form-encoded code exchange to the provider token
// endpoint and returns the provider access token.
func exchangeCode(ctx context.Context, client *http.Client, tokenURL string, form url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.Wrap(err, "failed to create token exchange request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")

	resp, err := client.Do(req)
	if err != nil {
		return "", domainerrors.ErrProviderExchangeFailed.WrapMessage("token exchange request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)

		return "", domainerrors.ErrProviderExchangeFailed.WrapMessage(
			"token exchange returned status " + resp.Status + ": " + string(body))
	}

	var tokenResponse struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResponse); err != nil {
		return "", domainerrors.ErrProviderExchangeFailed.WrapMessage("failed to decode token response")
	}
	if tokenResponse.AccessToken == "" {
		return "", domainerrors.ErrProviderExchangeFailed.WrapMessage("token response carried no access_token")
	}

	return tokenResponse.AccessToken, nil
}

// fetchUserInfo GETs the provider userinfo endpoint with the bearer token and
// decodes the provider-specific payload into out.
func fetchUserInfo(ctx context.Context, client *http.Client, userInfoURL, accessToken string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userInfoURL, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create user info request")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := client.Do(req)
	if err != nil {
		return domainerrors.ErrProviderExchangeFailed.WrapMessage("user info request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)

		return domainerrors.ErrProviderExchangeFailed.WrapMessage(
			"user info returned status " + resp.Status + ": " + string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domainerrors.ErrProviderExchangeFailed.WrapMessage("failed to decode user info response")
	}

	return nil
}

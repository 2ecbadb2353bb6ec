package spotify

import (
	"encoding/base32"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// The web player hands out short-lived anonymous tokens to clients that
// present a valid rolling TOTP. The secret material is version-keyed and
// lightly obfuscated; this mirrors what the player itself ships.
const tokenEndpoint = "https://open.spotify.com/api/token"

const webUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

var totpSecrets = map[int][]byte{
	61: {44, 55, 47, 42, 70, 40, 34, 114, 76, 74, 50, 111, 120, 97, 75, 76, 94, 102, 43, 69, 49, 120, 118, 80, 64, 78},
}

const totpVersion = 61

func generateTOTP(now time.Time) (string, error) {
	secret := totpSecrets[totpVersion]

	transformed := make([]byte, len(secret))
	for i, b := range secret {
		transformed[i] = b ^ byte((i%33)+9)
	}

	var joined strings.Builder
	for _, b := range transformed {
		joined.WriteString(strconv.Itoa(int(b)))
	}

	encoded := base32.StdEncoding.WithPadding(base32.NoPadding).
		EncodeToString([]byte(joined.String()))

	key, err := otp.NewKeyFromURL(fmt.Sprintf("otpauth://totp/secret?secret=%s", encoded))
	if err != nil {
		return "", err
	}
	return totp.GenerateCode(key.Secret(), now)
}

// webTokenTransport injects an anonymous web-player bearer token into every
// request, refreshing it ahead of expiry.
type webTokenTransport struct {
	base http.RoundTripper

	mu     sync.Mutex
	token  string
	expiry time.Time
}

func newWebTokenTransport() *webTokenTransport {
	return &webTokenTransport{base: http.DefaultTransport}
}

func (t *webTokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.accessToken(req)
	if err != nil {
		return nil, err
	}

	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+token)
	return t.base.RoundTrip(clone)
}

func (t *webTokenTransport) accessToken(req *http.Request) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.token != "" && time.Now().Before(t.expiry) {
		return t.token, nil
	}

	code, err := generateTOTP(time.Now())
	if err != nil {
		return "", fmt.Errorf("spotify web token totp: %w", err)
	}

	tokenReq, err := http.NewRequestWithContext(req.Context(), http.MethodGet, tokenEndpoint, nil)
	if err != nil {
		return "", err
	}
	q := tokenReq.URL.Query()
	q.Add("reason", "init")
	q.Add("productType", "web-player")
	q.Add("totp", code)
	q.Add("totpVer", strconv.Itoa(totpVersion))
	q.Add("totpServer", code)
	tokenReq.URL.RawQuery = q.Encode()
	tokenReq.Header.Set("User-Agent", webUserAgent)
	tokenReq.Header.Set("Content-Type", "application/json;charset=UTF-8")

	resp, err := t.base.RoundTrip(tokenReq)
	if err != nil {
		return "", fmt.Errorf("spotify web token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("spotify web token: status %d", resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"accessToken"`
		ExpiresMs   int64  `json:"accessTokenExpirationTimestampMs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("spotify web token decode: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("spotify web token: empty token")
	}

	t.token = payload.AccessToken
	// 1 minute buffer so in-flight requests never carry a stale token
	t.expiry = time.UnixMilli(payload.ExpiresMs).Add(-time.Minute)
	return t.token, nil
}

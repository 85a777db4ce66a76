package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"storefront-client/internal/apperr"
	"storefront-client/internal/config"
	"storefront-client/internal/dto"
	"storefront-client/internal/model"
	"storefront-client/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// Gateway issues requests to the commerce backend, attaching the bearer
// credential from the session store. On an unauthorized response it refreshes
// the credential and retries exactly once; every other failure is surfaced
// as a classified error and left to the caller.
type Gateway interface {
	Get(ctx context.Context, path string, out interface{}) error
	Post(ctx context.Context, path string, body, out interface{}) error
	Put(ctx context.Context, path string, body, out interface{}) error
	Delete(ctx context.Context, path string) error

	// PostAnon is for the endpoints that issue credentials in the first
	// place (login, register, refresh); no bearer, no retry.
	PostAnon(ctx context.Context, path string, body, out interface{}) error
}

type gatewayImpl struct {
	httpClient *http.Client
	baseURL    string
	sessions   repository.SessionStore
	log        zerolog.Logger

	// refreshMu serializes token refresh so a call depending on the new
	// credential never reads a half-finished rotation.
	refreshMu sync.Mutex
}

func NewGateway(cfg *config.Backend, sessions repository.SessionStore, log zerolog.Logger) Gateway {
	return &gatewayImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:  cfg.BaseURL,
		sessions: sessions,
		log:      log,
	}
}

func (g *gatewayImpl) Get(ctx context.Context, path string, out interface{}) error {
	return g.do(ctx, http.MethodGet, path, nil, out, true)
}

func (g *gatewayImpl) Post(ctx context.Context, path string, body, out interface{}) error {
	return g.do(ctx, http.MethodPost, path, body, out, true)
}

func (g *gatewayImpl) Put(ctx context.Context, path string, body, out interface{}) error {
	return g.do(ctx, http.MethodPut, path, body, out, true)
}

func (g *gatewayImpl) Delete(ctx context.Context, path string) error {
	return g.do(ctx, http.MethodDelete, path, nil, nil, true)
}

func (g *gatewayImpl) PostAnon(ctx context.Context, path string, body, out interface{}) error {
	return g.roundTrip(ctx, http.MethodPost, path, body, out, "")
}

func (g *gatewayImpl) do(ctx context.Context, method, path string, body, out interface{}, authed bool) error {
	token := ""
	if authed {
		cred, err := g.sessions.Get(ctx)
		if err != nil {
			return fmt.Errorf("read credential: %w", err)
		}
		if cred != nil {
			if tokenExpired(cred.AccessToken) {
				if refreshed, err := g.refresh(ctx); err == nil {
					cred = refreshed
				}
				// A failed proactive refresh is not fatal here: the
				// request below gets its 401 and the normal retry path.
			}
			token = cred.AccessToken
		}
	}

	err := g.roundTrip(ctx, method, path, body, out, token)
	if !apperr.IsKind(err, apperr.KindUnauthorized) || token == "" {
		return err
	}

	g.log.Debug().Str("path", path).Msg("unauthorized, refreshing credential and retrying once")

	cred, refreshErr := g.refresh(ctx)
	if refreshErr != nil {
		return refreshErr
	}

	return g.roundTrip(ctx, method, path, body, out, cred.AccessToken)
}

func (g *gatewayImpl) roundTrip(ctx context.Context, method, path string, body, out interface{}, token string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return apperr.Wrap(apperr.KindNetworkUnavailable, "backend unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return mapStatus(resp.StatusCode, resp.Body)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// refresh rotates the credential pair via the backend and persists it.
func (g *gatewayImpl) refresh(ctx context.Context) (*model.Credential, error) {
	g.refreshMu.Lock()
	defer g.refreshMu.Unlock()

	cred, err := g.sessions.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("read credential: %w", err)
	}
	if cred == nil {
		return nil, apperr.New(apperr.KindUnauthorized, "not logged in")
	}

	var pair dto.TokenPairResponse
	err = g.roundTrip(ctx, http.MethodPost, "/auth/refresh", dto.RefreshRequest{Refresh: cred.RefreshToken}, &pair, "")
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnauthorized, "credential refresh failed", err)
	}

	rotated := model.Credential{AccessToken: pair.Access, RefreshToken: pair.Refresh}
	if err := g.sessions.Set(ctx, rotated); err != nil {
		return nil, fmt.Errorf("persist refreshed credential: %w", err)
	}

	return &rotated, nil
}

func mapStatus(status int, body io.Reader) error {
	message := readMessage(body)

	switch {
	case status == http.StatusUnauthorized:
		return apperr.New(apperr.KindUnauthorized, message)
	case status == http.StatusNotFound:
		return apperr.New(apperr.KindNotFound, message)
	case status == http.StatusConflict:
		return apperr.New(apperr.KindConflict, message)
	case status >= 400 && status < 500:
		return apperr.New(apperr.KindValidationFailed, message)
	default:
		return fmt.Errorf("backend error %d: %s", status, message)
	}
}

func readMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return "request failed"
	}

	var payload dto.ErrorResponse
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return string(raw)
}

// tokenExpired reports whether the access token carries an exp claim in the
// past. The signature is not verified; only the backend can do that, the
// client just wants to skip a request that is guaranteed to bounce.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"storefront-client/internal/apperr"
	"storefront-client/internal/client"
	"storefront-client/internal/model"
)

// fakeGateway records every request and answers from registered handlers,
// keyed by "METHOD path".
type fakeGateway struct {
	mu       sync.Mutex
	requests []gatewayRequest
	handlers map[string]func(body interface{}, out interface{}) error
}

type gatewayRequest struct {
	Method string
	Path   string
	Body   interface{}
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		handlers: make(map[string]func(body, out interface{}) error),
	}
}

func (g *fakeGateway) on(method, path string, fn func(body, out interface{}) error) {
	g.handlers[method+" "+path] = fn
}

// reply registers a handler that always answers with the given value.
func (g *fakeGateway) reply(method, path string, value interface{}) {
	g.on(method, path, func(_, out interface{}) error {
		return writeJSON(out, value)
	})
}

func (g *fakeGateway) failWith(method, path string, err error) {
	g.on(method, path, func(_, _ interface{}) error {
		return err
	})
}

func (g *fakeGateway) dispatch(method, path string, body, out interface{}) error {
	g.mu.Lock()
	g.requests = append(g.requests, gatewayRequest{Method: method, Path: path, Body: body})
	fn, ok := g.handlers[method+" "+path]
	g.mu.Unlock()

	if !ok {
		return fmt.Errorf("fake gateway: no handler for %s %s", method, path)
	}
	return fn(body, out)
}

func (g *fakeGateway) Get(_ context.Context, path string, out interface{}) error {
	return g.dispatch("GET", path, nil, out)
}

func (g *fakeGateway) Post(_ context.Context, path string, body, out interface{}) error {
	return g.dispatch("POST", path, body, out)
}

func (g *fakeGateway) Put(_ context.Context, path string, body, out interface{}) error {
	return g.dispatch("PUT", path, body, out)
}

func (g *fakeGateway) Delete(_ context.Context, path string) error {
	return g.dispatch("DELETE", path, nil, nil)
}

func (g *fakeGateway) PostAnon(_ context.Context, path string, body, out interface{}) error {
	return g.dispatch("POST-ANON", path, body, out)
}

func (g *fakeGateway) calls(method, path string) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := 0
	for _, req := range g.requests {
		if req.Method == method && req.Path == path {
			n++
		}
	}
	return n
}

func writeJSON(out, value interface{}) error {
	if out == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// fakeProvider is an in-memory payment SDK. confirmFailAt makes payment
// confirmation number n (1-based) fail with a decline.
type fakeProvider struct {
	mu sync.Mutex

	setupErr      error
	confirmFailAt int

	setupCalls     int
	confirmedCount int
	confirmed      []string
}

func (p *fakeProvider) ConfirmSetupIntent(_ context.Context, clientSecret string, _ client.CardDetails) (*client.SetupConfirmation, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.setupCalls++
	if p.setupErr != nil {
		return nil, p.setupErr
	}
	return &client.SetupConfirmation{
		PaymentMethodID:   "pm_fake_123",
		PaymentMethodType: "card",
	}, nil
}

func (p *fakeProvider) ConfirmPayment(_ context.Context, clientSecret, paymentMethodID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.confirmedCount++
	if p.confirmFailAt > 0 && p.confirmedCount == p.confirmFailAt {
		return apperr.New(apperr.KindPaymentDeclined, "your card was declined")
	}
	p.confirmed = append(p.confirmed, clientSecret)
	return nil
}

// fakeRefundingProvider additionally records refund requests.
type fakeRefundingProvider struct {
	fakeProvider
	refunded []string
}

func (p *fakeRefundingProvider) RefundPayment(_ context.Context, clientSecret string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.refunded = append(p.refunded, clientSecret)
	return nil
}

// fakeSessionStore keeps the credential in memory.
type fakeSessionStore struct {
	mu       sync.Mutex
	cred     *model.Credential
	notified []bool
}

func (s *fakeSessionStore) Get(context.Context) (*model.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cred, nil
}

func (s *fakeSessionStore) Set(_ context.Context, cred model.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = &cred
	s.notified = append(s.notified, true)
	return nil
}

func (s *fakeSessionStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = nil
	s.notified = append(s.notified, false)
	return nil
}

func (s *fakeSessionStore) Subscribe(func(bool)) func() {
	return func() {}
}

func credFixture() model.Credential {
	return model.Credential{AccessToken: "acc", RefreshToken: "ref"}
}

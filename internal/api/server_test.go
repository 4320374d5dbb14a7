// File path: internal/api/server_test.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nimbuserp/nimbus-assist/internal/kb"
	"github.com/nimbuserp/nimbus-assist/internal/llm"
	"github.com/nimbuserp/nimbus-assist/internal/session"
)

type mockProvider struct {
	chatResponse string
	chatErr      error
	blockOnCtx   bool
	chatCalls    int
	lastMessages []llm.Message
}

func (m *mockProvider) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	m.chatCalls++
	m.lastMessages = append([]llm.Message(nil), messages...)
	if m.blockOnCtx {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if m.chatErr != nil {
		return "", m.chatErr
	}
	if m.chatResponse == "" {
		return "mock-response", nil
	}
	return m.chatResponse, nil
}

func (m *mockProvider) Name() string {
	return "mock"
}

func fixtureDataset() *kb.Dataset {
	return &kb.Dataset{
		Products: []kb.Product{
			{
				Name:        "Nimbus Core",
				Description: "The central ERP platform covering finance, inventory and reporting",
				Features:    []string{"Accounting", "Inventory Management"},
				Pricing:     kb.Pricing{Basic: "$49/month", Pro: "$129/month", Enterprise: "Contact sales"},
			},
		},
		FAQs: []kb.FAQ{
			{Question: "Can I export my data?", Answer: "Yes, every module supports CSV export."},
		},
		Tickets: []kb.SupportTicket{
			{Issue: "Invoice export fails with timeout error", Resolution: "Increase the batch size limit.", Status: kb.StatusResolved},
		},
		Articles: []kb.KnowledgeArticle{
			{Topic: "Escalation Policy", Details: "Priority 1 incidents page the on-call engineer immediately."},
		},
		Company: kb.CompanyProfile{
			Name:         "NimbusERP",
			Industry:     "enterprise software",
			Headquarters: "Rotterdam",
			Founded:      2014,
			Employees:    260,
			Clients:      []string{"Aldervane Logistics", "Bryte Foods"},
		},
	}
}

func newTestServer(t *testing.T, provider llm.Provider, sessions *session.Store, cfg *Config) *Server {
	t.Helper()
	srv, err := NewServer(kb.NewSearcher(fixtureDataset(), nil), provider, sessions, cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv
}

func postChat(t *testing.T, srv *Server, payload map[string]string) (*httptest.ResponseRecorder, chatResponse) {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/chat", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	var resp chatResponse
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return rec, resp
}

func TestChatKnowledgeBaseHit(t *testing.T) {
	provider := &mockProvider{}
	srv := newTestServer(t, provider, nil, nil)
	rec, resp := postChat(t, srv, map[string]string{"message": "Nimbus Core", "role": "business"})
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	if resp.Source != kb.SourceProducts {
		t.Fatalf("expected a product catalog hit, got %q", resp.Source)
	}
	if resp.Confidence < 0.9 {
		t.Fatalf("expected confidence >= 0.9, got %f", resp.Confidence)
	}
	if !strings.Contains(resp.Response, "Accounting") {
		t.Fatalf("expected response to list the Accounting feature:\n%s", resp.Response)
	}
	if provider.chatCalls != 0 {
		t.Fatalf("knowledge base hit must not call the provider")
	}
}

func TestChatFallsBackToProvider(t *testing.T) {
	provider := &mockProvider{chatResponse: "Generated guidance for your question."}
	srv := newTestServer(t, provider, nil, nil)
	rec, resp := postChat(t, srv, map[string]string{"message": "xyzzy_unrelated_gibberish_42", "role": "technical"})
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	if provider.chatCalls != 1 {
		t.Fatalf("expected exactly one provider call, got %d", provider.chatCalls)
	}
	if resp.Source != sourceAI {
		t.Fatalf("expected AI Assistant source, got %q", resp.Source)
	}
	if resp.Confidence != aiConfidence {
		t.Fatalf("expected fixed AI confidence, got %f", resp.Confidence)
	}
	if !strings.Contains(resp.Response, "### Additional Resources") {
		t.Fatalf("expected technical role template:\n%s", resp.Response)
	}
	if len(provider.lastMessages) != 2 || provider.lastMessages[0].Role != "system" {
		t.Fatalf("expected system+user prompt, got %+v", provider.lastMessages)
	}
}

func TestChatProviderFailureApology(t *testing.T) {
	provider := &mockProvider{chatErr: fmt.Errorf("quota exceeded")}
	srv := newTestServer(t, provider, nil, nil)
	rec, resp := postChat(t, srv, map[string]string{"message": "xyzzy_unrelated_gibberish_42", "role": "customer"})
	if rec.Code != http.StatusOK {
		t.Fatalf("upstream failure must still resolve the conversation, got %d", rec.Code)
	}
	if resp.Source != sourceSystem {
		t.Fatalf("expected System source, got %q", resp.Source)
	}
	if resp.Confidence != 0 {
		t.Fatalf("expected zero confidence for apologies, got %f", resp.Confidence)
	}
	if resp.Response == "" {
		t.Fatalf("expected an apology message")
	}
}

func TestChatGenerationTimeout(t *testing.T) {
	provider := &mockProvider{blockOnCtx: true}
	srv := newTestServer(t, provider, nil, &Config{GenTimeout: 30 * time.Millisecond})
	start := time.Now()
	rec, resp := postChat(t, srv, map[string]string{"message": "xyzzy_unrelated_gibberish_42", "role": "business"})
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("timeout not enforced, took %s", elapsed)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("timeout must resolve to a fallback, got %d", rec.Code)
	}
	if resp.Source != sourceSystem {
		t.Fatalf("expected System source after timeout, got %q", resp.Source)
	}
}

func TestChatValidation(t *testing.T) {
	srv := newTestServer(t, &mockProvider{}, nil, nil)
	if rec, _ := postChat(t, srv, map[string]string{"role": "business"}); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing message should be rejected, got %d", rec.Code)
	}
	if rec, _ := postChat(t, srv, map[string]string{"message": "hello", "role": "wizard"}); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown role should be rejected, got %d", rec.Code)
	}
	// Empty role defaults to the customer persona.
	if rec, resp := postChat(t, srv, map[string]string{"message": "Nimbus Core"}); rec.Code != http.StatusOK || resp.Role != "customer" {
		t.Fatalf("empty role should default to customer, got %d %+v", rec.Code, resp)
	}
}

func TestSearchEndpoint(t *testing.T) {
	srv := newTestServer(t, &mockProvider{}, nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/v1/search?q=Nimbus+Core", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	var result kb.MatchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if !result.Matched || result.Source != kb.SourceProducts {
		t.Fatalf("unexpected search result: %+v", result)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/search", nil)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing q should be rejected, got %d", rec.Code)
	}
}

func TestRolesEndpoint(t *testing.T) {
	srv := newTestServer(t, &mockProvider{}, nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/v1/roles", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	var payload struct {
		Roles []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"roles"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode roles: %v", err)
	}
	if len(payload.Roles) != 3 {
		t.Fatalf("expected 3 personas, got %d", len(payload.Roles))
	}
}

func TestChatPersistsExchange(t *testing.T) {
	store, err := session.Open(filepath.Join(t.TempDir(), "assist.db"))
	if err != nil {
		t.Fatalf("open session store: %v", err)
	}
	defer store.Close()
	srv := newTestServer(t, &mockProvider{}, store, nil)

	body, _ := json.Marshal(createSessionRequest{UserID: "user-1", Title: "export questions"})
	req := httptest.NewRequest(http.MethodPost, "/v1/sessions", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session failed: %d %s", rec.Code, rec.Body.String())
	}
	var sess session.ChatSession
	if err := json.Unmarshal(rec.Body.Bytes(), &sess); err != nil {
		t.Fatalf("decode session: %v", err)
	}

	if rec, _ := postChat(t, srv, map[string]string{
		"message":    "Nimbus Core",
		"role":       "business",
		"session_id": sess.ID,
		"user_id":    "user-1",
	}); rec.Code != http.StatusOK {
		t.Fatalf("chat failed: %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/sessions/"+sess.ID+"/messages", nil)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("history failed: %d %s", rec.Code, rec.Body.String())
	}
	var payload struct {
		Messages []session.ChatMessage `json:"messages"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(payload.Messages) != 2 {
		t.Fatalf("expected user and assistant messages, got %d", len(payload.Messages))
	}
	if payload.Messages[0].Type != session.TypeUser || payload.Messages[1].Type != session.TypeAI {
		t.Fatalf("history out of order: %+v", payload.Messages)
	}
	if payload.Messages[1].Source != kb.SourceProducts {
		t.Fatalf("assistant message lost its source: %+v", payload.Messages[1])
	}
}

func TestSessionEndpointsWithoutStore(t *testing.T) {
	srv := newTestServer(t, &mockProvider{}, nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/v1/sessions?user_id=user-1", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 with persistence disabled, got %d", rec.Code)
	}
}

func TestSessionMessagesNotFound(t *testing.T) {
	store, err := session.Open(filepath.Join(t.TempDir(), "assist.db"))
	if err != nil {
		t.Fatalf("open session store: %v", err)
	}
	defer store.Close()
	srv := newTestServer(t, &mockProvider{}, store, nil)
	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/does-not-exist/messages", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown session, got %d", rec.Code)
	}
}

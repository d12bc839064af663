package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"apteka_notify_backend/platform/config"
)

func testConfig() *config.Config {
	return &config.Config{
		GreenAPIInstanceID: "1101000001",
		GreenAPIToken:      "token123",
		SMSGatewayAPIKey:   "key123",
	}
}

func TestWhatsAppClient_SendBuildsChatID(t *testing.T) {
	var gotPath string
	var gotBody greenAPIRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		fmt.Fprint(w, `{"idMessage":"BAE5367237E13A87"}`)
	}))
	defer srv.Close()

	client := NewWhatsAppClient(testConfig())
	client.baseURL = srv.URL

	id, err := client.Send(context.Background(), "+79991234567", "Ваш заказ готов")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "BAE5367237E13A87" {
		t.Fatalf("expected message id, got %q", id)
	}
	if gotPath != "/waInstance1101000001/sendMessage/token123" {
		t.Fatalf("unexpected request path %q", gotPath)
	}
	if gotBody.ChatID != "79991234567@c.us" {
		t.Fatalf("expected chat id without plus, got %q", gotBody.ChatID)
	}
}

func TestWhatsAppClient_SendRejectedWithoutMessageID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":"quota exceeded"}`)
	}))
	defer srv.Close()

	client := NewWhatsAppClient(testConfig())
	client.baseURL = srv.URL

	if _, err := client.Send(context.Background(), "+79991234567", "x"); err == nil {
		t.Fatal("expected error when idMessage is missing")
	}
}

func TestSMSClient_SendUsesBasicAuthAndArrayPayload(t *testing.T) {
	var gotAuth string
	var gotPayload []smsMessage

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		fmt.Fprint(w, `["msg-001"]`)
	}))
	defer srv.Close()

	client := NewSMSClient(testConfig())
	client.baseURL = srv.URL

	id, err := client.Send(context.Background(), "79991234567", "Заказ готов")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "msg-001" {
		t.Fatalf("expected message id msg-001, got %q", id)
	}
	if !strings.HasPrefix(gotAuth, "Basic ") {
		t.Fatalf("expected basic auth header, got %q", gotAuth)
	}
	if len(gotPayload) != 1 || gotPayload[0].Mobile != "+79991234567" {
		t.Fatalf("expected plus-prefixed mobile in array payload, got %+v", gotPayload)
	}
}

func TestSMSClient_SendErrorOnHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewSMSClient(testConfig())
	client.baseURL = srv.URL

	if _, err := client.Send(context.Background(), "+79991234567", "x"); err == nil {
		t.Fatal("expected error on HTTP 401")
	}
}

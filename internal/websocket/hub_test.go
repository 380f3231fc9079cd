package websocket

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"invoicedesk/internal/auth"
	"invoicedesk/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gorilla "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

func newTestServer(t *testing.T) (*Hub, *auth.Issuer, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	issuer := auth.NewIssuer([]byte("secret"), time.Hour)
	hub := NewHub(issuer, nil, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	router := gin.New()
	router.GET("/ws", hub.ServeWs)
	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return hub, issuer, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func waitConnected(t *testing.T, hub *Hub, userID uuid.UUID, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Connected(userID) != n {
		if time.Now().After(deadline) {
			t.Fatalf("connected = %d, want %d", hub.Connected(userID), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestServeWsRejectsMissingAndBadTokens(t *testing.T) {
	_, _, url := newTestServer(t)

	for _, suffix := range []string{"", "?token=garbage"} {
		_, resp, err := gorilla.DefaultDialer.Dial(url+suffix, nil)
		if err == nil {
			t.Fatalf("dial %q succeeded", suffix)
		}
		if resp == nil || resp.StatusCode != 401 {
			t.Errorf("dial %q: resp = %v", suffix, resp)
		}
	}
}

func TestNotifyReachesOnlyTheOwner(t *testing.T) {
	hub, issuer, url := newTestServer(t)

	owner, other := uuid.New(), uuid.New()
	dial := func(userID uuid.UUID) *gorilla.Conn {
		token, err := issuer.Issue(auth.Session{UserID: userID, Role: "user"})
		if err != nil {
			t.Fatal(err)
		}
		conn, _, err := gorilla.DefaultDialer.Dial(url+"?token="+token, nil)
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { _ = conn.Close() })
		return conn
	}

	ownerConn := dial(owner)
	otherConn := dial(other)
	waitConnected(t, hub, owner, 1)
	waitConnected(t, hub, other, 1)

	docID := uuid.New()
	hub.Notify(owner, service.ChangeEvent{Kind: service.KindInvoices, Action: service.ActionCreated, ID: docID})

	var got service.ChangeEvent
	_ = ownerConn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := ownerConn.ReadJSON(&got); err != nil {
		t.Fatalf("owner read: %v", err)
	}
	if got.ID != docID || got.Kind != "invoices" || got.Action != "created" {
		t.Errorf("event = %+v", got)
	}

	_ = otherConn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	if _, _, err := otherConn.ReadMessage(); err == nil {
		t.Error("other user received an event")
	}
}

func TestDisconnectUnregisters(t *testing.T) {
	hub, issuer, url := newTestServer(t)
	userID := uuid.New()
	token, _ := issuer.Issue(auth.Session{UserID: userID})

	conn, _, err := gorilla.DefaultDialer.Dial(url+"?token="+token, nil)
	if err != nil {
		t.Fatal(err)
	}
	waitConnected(t, hub, userID, 1)

	_ = conn.Close()
	waitConnected(t, hub, userID, 0)
}

func TestNotifyWithoutConnectionsDoesNotBlock(t *testing.T) {
	hub := NewHub(auth.NewIssuer([]byte("s"), time.Hour), nil, zerolog.Nop())
	for i := 0; i < 1000; i++ {
		hub.Notify(uuid.New(), service.ChangeEvent{Kind: "invoices"})
	}
}

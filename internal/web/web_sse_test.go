package web_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOnlinePage(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("alric", "avatara7", "Alric")

	rr := ts.get("/online")
	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "div#online-sessions")
	assert.Equal(t, 1, doc.Find("tr.session").Length())
	assertContainsText(t, doc, "tr.session", "Alric")
}

func TestOnlinePageRequiresLogin(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/online")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Contains(t, rr.Header().Get("Location"), "/login")
}

// TestOnlineEventsHeaders verifies the SSE endpoint returns correct headers
func TestOnlineEventsHeaders(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("alric", "avatara7", "Alric")

	req := httptest.NewRequest(http.MethodGet, "/online/events", nil)
	ts.cookies.addTo(req)

	// SSE is a long-running connection; cut it off with the context
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	req = req.WithContext(ctx)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, "text/event-stream", rr.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rr.Header().Get("Cache-Control"))
	assert.Equal(t, "keep-alive", rr.Header().Get("Connection"))
	assert.Equal(t, "no", rr.Header().Get("X-Accel-Buffering"))
}

// TestOnlineEventsInitialEvent verifies the SSE endpoint sends the connected event
func TestOnlineEventsInitialEvent(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("alric", "avatara7", "Alric")

	req := httptest.NewRequest(http.MethodGet, "/online/events", nil)
	ts.cookies.addTo(req)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	req = req.WithContext(ctx)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	body := rr.Body.String()
	assert.Contains(t, body, "event: connected")
	assert.Contains(t, body, `data: {"status":"connected"}`)
}

// TestOnlineEventsRequireAuthentication verifies unauthenticated users cannot subscribe
func TestOnlineEventsRequireAuthentication(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/online/events")

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Contains(t, rr.Header().Get("Location"), "/login")
}

// TestOnlineEventsUnauthenticatedStream verifies SSE consumers get a
// plain 401 rather than a redirect they cannot follow
func TestOnlineEventsUnauthenticatedStream(t *testing.T) {
	ts := newWebTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/online/events", nil)
	req.Header.Set("Accept", "text/event-stream")
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

// TestPresenceBroadcastOnLogin verifies a login while the stream is
// open pushes an updated sessions table to the subscriber
func TestPresenceBroadcastOnLogin(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("alric", "avatara7", "Alric")
	ts.createAccount("soma", "vigilant", "Soma")

	// Subscribe to the presence stream
	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		req := httptest.NewRequest(http.MethodGet, "/online/events", nil)
		ts.cookies.addTo(req)
		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()
		req = req.WithContext(ctx)
		rr := httptest.NewRecorder()
		ts.handler.ServeHTTP(rr, req)
		done <- rr
	}()

	// Wait for the subscriber to register with the hub
	deadline := time.Now().Add(200 * time.Millisecond)
	for ts.hub.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	assert.Equal(t, 1, ts.hub.ClientCount(), "subscriber should be registered")

	// Second viewer logs in through the same router
	ts2 := &webTestServer{t: t, handler: ts.handler, app: ts.app, hub: ts.hub, cookies: newCookieJar()}
	form := url.Values{"login": {"soma"}, "password": {"vigilant"}}
	rr := ts2.post("/login", form)
	assert.Equal(t, http.StatusSeeOther, rr.Code)

	// The stream should carry the new roster
	stream := <-done
	body := stream.Body.String()
	assert.Contains(t, body, "event: presence-update")
	assert.Contains(t, body, "Soma")
}

// TestPresenceBroadcastOnLogout verifies logouts push updates too
func TestPresenceBroadcastOnLogout(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("alric", "avatara7", "Alric")

	ts2 := &webTestServer{t: t, handler: ts.handler, app: ts.app, hub: ts.hub, cookies: newCookieJar()}
	ts2.loginAs("soma", "vigilant", "Soma")

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		req := httptest.NewRequest(http.MethodGet, "/online/events", nil)
		ts.cookies.addTo(req)
		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()
		req = req.WithContext(ctx)
		rr := httptest.NewRecorder()
		ts.handler.ServeHTTP(rr, req)
		done <- rr
	}()

	deadline := time.Now().Add(200 * time.Millisecond)
	for ts.hub.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	rr := ts2.post("/logout", nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)

	stream := <-done
	body := stream.Body.String()
	assert.Contains(t, body, "event: presence-update")
	// Soma logged out; the pushed table only lists Alric
	assert.Contains(t, body, "Alric")
	assert.NotContains(t, body, "Soma")
}

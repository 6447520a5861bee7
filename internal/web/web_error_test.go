package web_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlashMessageDisplayedOnSuccess(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createAccount("alric", "avatara7", "Alric")

	form := url.Values{"login": {"alric"}, "password": {"avatara7"}}
	rr := ts.post("/login", form)
	assert.Equal(t, http.StatusSeeOther, rr.Code)

	// Follow redirect and check for flash message
	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "div.flash.flash-success")
	assertContainsText(t, doc, "div.flash", "Welcome back")
}

func TestFlashMessageClearedAfterDisplay(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("alric", "avatara7", "Alric")

	// First page load shows the flash, second doesn't
	rr := ts.get("/")
	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "div.flash")

	rr = ts.get("/")
	doc = parseHTML(rr.Body)
	assertNotContainsElement(t, doc, "div.flash")
}

func TestFlashMessageDisplayedOnError(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("alric", "avatara7", "Alric")

	// Player detail for an ID that doesn't exist
	rr := ts.get("/players/999")
	assert.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.followRedirect(rr)
	assert.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "div.flash.flash-error")
	assertContainsText(t, doc, "div.flash", "not found")
}

func TestAdminRouteDeniedWithFlash(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createAccount("alric", "avatara7", "Alric")
	ts.loginAs("soma", "vigilant", "Soma")

	rr := ts.post("/players/1/ban", url.Values{"duration_hours": {"24"}})
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "body", "Admin privileges required")
}

func TestInvalidFormDataHandledGracefully(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAs("alric", "avatara7", "Alric")
	ts.createAccount("balor", "fallenlord", "Balor")

	// Non-numeric ban duration
	form := url.Values{"duration_hours": {"invalid"}}
	rr := ts.post("/players/2/ban", form)

	// Should handle gracefully (redirect with flash, not crash)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
}

func TestUnknownPageReturns404(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/no-such-page")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

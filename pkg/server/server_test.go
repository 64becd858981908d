package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/config"
)

const activityPage = `<html><body>
<div class="mdl-grid">
  <div class="content-cell">Paid ₹250.00 to Grocery Store<br>Jan 8, 2024, 9:30:15 AM GMT+05:30</div>
  <div class="content-cell mdl-cell mdl-cell--12-col mdl-typography--caption">Completed</div>
</div>
<div class="mdl-grid">
  <div class="content-cell">Sent ₹1,000.00 to Alice<br>Jan 9, 2024, 6:00:00 PM GMT+05:30</div>
  <div class="content-cell mdl-cell mdl-cell--12-col mdl-typography--caption">Completed</div>
</div>
</body></html>`

const ledgerCSV = "Date,Description,Debit,Credit,Balance\n" +
	"2024-01-08,ATM withdrawal,500,,10000\n" +
	"2024-01-09,Salary,,20000,30000\n"

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{GeminiModel: "gemini-2.0-flash"}
	logger := log.New(io.Discard)
	return New(cfg, logger).Handler()
}

func upload(t *testing.T, handler http.Handler, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("export", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/process", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestProcessAndViewRoundtrip(t *testing.T) {
	handler := newTestHandler(t)

	rec := upload(t, handler, "My Activity.html", activityPage)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeJSON(t, rec)
	assert.Equal(t, "success", resp["status"])
	assert.Equal(t, "google_pay", resp["kind"])
	assert.Equal(t, 2.0, resp["rows"])
	assert.Equal(t, []interface{}{"2024-01"}, resp["months"])

	hash, ok := resp["hash"].(string)
	require.True(t, ok)

	req := httptest.NewRequest(http.MethodGet, "/api/tables/"+hash+"?week=2024-01-10", nil)
	view := httptest.NewRecorder()
	handler.ServeHTTP(view, req)
	require.Equal(t, http.StatusOK, view.Code, view.Body.String())
	body := decodeJSON(t, view)
	assert.Equal(t, "week-2024-01-08", body["view"])
	assert.Equal(t, "2024-01-08", body["week_start"])
	assert.Equal(t, "2024-01-14", body["week_end"])
	assert.Len(t, body["transactions"], 2)
}

func TestProcessCachesByContentHash(t *testing.T) {
	handler := newTestHandler(t)

	first := decodeJSON(t, upload(t, handler, "My Activity.html", activityPage))
	second := decodeJSON(t, upload(t, handler, "renamed.html", activityPage))
	assert.Equal(t, first["hash"], second["hash"])
}

func TestTablesUnknownHash(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/tables/deadbeef", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTablesCSVDownload(t *testing.T) {
	handler := newTestHandler(t)

	resp := decodeJSON(t, upload(t, handler, "My Activity.html", activityPage))
	hash := resp["hash"].(string)

	req := httptest.NewRequest(http.MethodGet, "/api/tables/"+hash+"/csv", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Date,Time,Description,Amount,Type"))
}

func TestProcessLedgerStatement(t *testing.T) {
	handler := newTestHandler(t)

	rec := upload(t, handler, "statement.csv", ledgerCSV)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeJSON(t, rec)
	assert.Equal(t, "bank", resp["kind"])
	hash := resp["hash"].(string)

	req := httptest.NewRequest(http.MethodGet, "/api/tables/"+hash, nil)
	view := httptest.NewRecorder()
	handler.ServeHTTP(view, req)
	require.Equal(t, http.StatusOK, view.Code)
	body := decodeJSON(t, view)
	assert.Equal(t, 500.0, body["total_debit"])
	assert.Equal(t, 20000.0, body["total_credit"])
	assert.Equal(t, 30000.0, body["closing"])
}

func TestProcessErrorMapping(t *testing.T) {
	handler := newTestHandler(t)

	rec := upload(t, handler, "report.pdf", "not a statement")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = upload(t, handler, "statement.csv", "Foo,Bar\n1,2\n")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "required columns missing")

	rec = upload(t, handler, "takeout.zip", "definitely not a zip")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSummaryEmptyViewRejected(t *testing.T) {
	handler := newTestHandler(t)

	resp := decodeJSON(t, upload(t, handler, "My Activity.html", activityPage))
	hash := resp["hash"].(string)

	form := "hash=" + hash + "&day=2030-01-01"
	req := httptest.NewRequest(http.MethodPost, "/api/summary", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "empty view")
}

func TestSummaryUnknownHash(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/summary", strings.NewReader("hash=deadbeef"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

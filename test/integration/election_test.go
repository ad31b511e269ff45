package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esrrgltshibamb2000/esr-election/internal/config"
	"github.com/esrrgltshibamb2000/esr-election/internal/core/domain"
	"github.com/esrrgltshibamb2000/esr-election/internal/core/services"
)

func postBallot(t *testing.T, app *TestApp, name, phone, dg, rep string) *http.Response {
	t.Helper()
	body, _ := json.Marshal(map[string]any{
		"voter":   map[string]string{"name": name, "phone": phone},
		"choices": map[string]string{"dg-construction": dg, "rep-etude-conception": rep},
	})
	resp, err := app.Client.Post(app.Server.URL+"/api/ballots", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func adminRequest(t *testing.T, app *TestApp, method, path string, body []byte) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, app.Server.URL+path, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("X-Admin-PIN", adminPIN)
	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

// TestElectionFlow covers a vote, the device gate, a reset, the phone
// check, results and a reload of the store from Postgres.
func TestElectionFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	// Step 1: first vote on this device
	resp := postBallot(t, app, "Alice", "+243 970 000 001", "ndona-joel", "achema-tonny")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		Ballot       domain.Ballot       `json:"ballot"`
		Notification domain.Notification `json:"notification"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	assert.NotEmpty(t, created.Notification.URL)

	// Step 2: the device is now locked
	resp = postBallot(t, app, "Bob", "+243 970 000 002", "toussaint-enock", "achema-tonny")
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Step 3: an admin hands the device to the next voter
	resp = adminRequest(t, app, http.MethodPost, "/api/admin/reset-voted", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = postBallot(t, app, "Bob", "+243 970 000 002", "toussaint-enock", "achema-tonny")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Step 4: same phone, different formatting
	resp = adminRequest(t, app, http.MethodPost, "/api/admin/reset-voted", nil)
	resp.Body.Close()
	resp = postBallot(t, app, "Alice B.", "243-970-000-001", "toussaint-enock", "bawota-bibiane")
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	var conflict struct {
		ExistingBallotID string `json:"existing_ballot_id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&conflict))
	resp.Body.Close()
	assert.Equal(t, created.Ballot.ID, conflict.ExistingBallotID)

	// Step 5: results
	resp, err := app.Client.Get(app.Server.URL + "/api/results")
	require.NoError(t, err)
	var results domain.TallyResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&results))
	resp.Body.Close()
	assert.Equal(t, 2, results.Total("dg-construction"))
	assert.Equal(t, 1, results.Count("dg-construction", "ndona-joel"))
	assert.Equal(t, 1, results.Count("dg-construction", "toussaint-enock"))

	// Step 6: a restarted process sees the same store
	reloaded, err := services.NewBallotService(context.Background(), app.Repo, config.Default())
	require.NoError(t, err)
	assert.Equal(t, app.Store.Ballots(), reloaded.Ballots())
	assert.Equal(t, app.Store.Device(), reloaded.Device())
}

func TestExportImportRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp := adminRequest(t, app, http.MethodPost, "/api/admin/samples", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = adminRequest(t, app, http.MethodGet, "/api/admin/export", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	exported, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	before := app.Store.Ballots()

	resp = adminRequest(t, app, http.MethodPost, "/api/admin/clear", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	assert.Equal(t, 0, app.Store.Count())

	resp = adminRequest(t, app, http.MethodPost, "/api/admin/import", exported)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var report domain.ImportReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	resp.Body.Close()

	assert.Equal(t, domain.ImportReport{Merged: 3}, report)
	assert.Equal(t, before, app.Store.Ballots())
}

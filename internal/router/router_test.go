package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pet-care-scheduler/internal/router"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	h, _ := router.NewRouter(router.Options{AuthVerifier: nil})
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_CareSchedule(t *testing.T) {
	ts := newTestServer(t)

	ownerID := "owner-1"
	strangerID := "stranger-1"

	// 1) Owner registra mascota
	petID := createPet(t, ts.URL, ownerID, map[string]any{
		"name":    "Milo",
		"species": "dog",
		"breed":   "mixed",
	})

	// 2) Sin identidad => 401
	{
		st, _ := doReq(t, ts.URL, "GET", "/pets", "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without identity, got %d", st)
		}
	}

	// 3) Otro usuario no distingue "no existe" de "no es tuyo": mismo 404
	{
		st, _ := doReq(t, ts.URL, "GET", "/pets/"+petID, strangerID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for foreign pet, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/pets/does-not-exist", strangerID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for unknown pet, got %d", st)
		}
	}

	// 4) Owner define cuidado diario
	templateID := createTemplate(t, ts.URL, ownerID, petID, map[string]any{
		"type":        "medication",
		"title":       "Pastilla diaria",
		"cadence":     "daily",
		"time_of_day": "08:00",
	})

	// 5) La primera lectura materializa la ventana completa
	events := listEvents(t, ts.URL, ownerID, petID, "")
	if len(events) != 14 {
		t.Fatalf("expected 14 materialized events, got %d", len(events))
	}

	// 6) Releer no duplica
	events = listEvents(t, ts.URL, ownerID, petID, "today..+14d")
	if len(events) != 14 {
		t.Fatalf("expected 14 events after re-read, got %d", len(events))
	}

	// 7) /today responde el día calendario (0 o 1 eventos según la hora)
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+petID+"/care/today", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 today, got %d body=%s", st, string(body))
		}
	}

	// 8) Transicionar el primer evento a done
	eventID := events[0]["id"].(string)
	{
		st, body := doReq(t, ts.URL, "PATCH", "/care/events/"+eventID, ownerID, map[string]any{
			"status": "done",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 set done, got %d body=%s", st, string(body))
		}
		var resp struct {
			Event map[string]any `json:"event"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Event["status"] != "done" {
			t.Fatalf("expected status done, got %v", resp.Event["status"])
		}
	}

	// 9) done es terminal
	{
		st, _ := doReq(t, ts.URL, "PATCH", "/care/events/"+eventID, ownerID, map[string]any{
			"status": "skipped",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 transition from done, got %d", st)
		}
	}

	// 10) overdue no lo setea el cliente
	{
		st, _ := doReq(t, ts.URL, "PATCH", "/care/events/"+events[1]["id"].(string), ownerID, map[string]any{
			"status": "overdue",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for client-set overdue, got %d", st)
		}
	}

	// 11) Evento ajeno responde el mismo 404 que uno inexistente
	{
		st, _ := doReq(t, ts.URL, "PATCH", "/care/events/"+events[1]["id"].(string), strangerID, map[string]any{
			"status": "done",
		})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for foreign event, got %d", st)
		}
	}

	// 12) El evento done no vuelve a upcoming al rematerializar
	events = listEvents(t, ts.URL, ownerID, petID, "")
	for _, e := range events {
		if e["id"] == eventID {
			t.Fatal("done event reappeared as upcoming")
		}
	}
	if len(events) != 13 {
		t.Fatalf("expected 13 upcoming after done, got %d", len(events))
	}

	// 13) Evento ad hoc (sin template)
	{
		st, body := doReq(t, ts.URL, "POST", "/pets/"+petID+"/care/events", ownerID, map[string]any{
			"title":  "Visita veterinaria",
			"due_at": time.Now().UTC().Add(48 * time.Hour).Format(time.RFC3339),
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 ad hoc event, got %d body=%s", st, string(body))
		}
		var resp struct {
			Event map[string]any `json:"event"`
		}
		_ = json.Unmarshal(body, &resp)
		if tid, ok := resp.Event["template_id"]; ok && tid != "" {
			t.Fatalf("ad hoc event should have no template, got %v", tid)
		}
	}

	// 14) Desactivar el template frena generación futura sin tocar lo emitido
	{
		st, body := doReq(t, ts.URL, "POST", "/pets/"+petID+"/care/templates/"+templateID+"/deactivate", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 deactivate, got %d body=%s", st, string(body))
		}
		var resp struct {
			Template map[string]any `json:"template"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Template["active"] != false {
			t.Fatalf("expected active=false, got %v", resp.Template["active"])
		}
	}
	events = listEvents(t, ts.URL, ownerID, petID, "")
	// 13 del template (uno done) + 1 ad hoc
	if len(events) != 14 {
		t.Fatalf("expected 14 events after deactivate, got %d", len(events))
	}
}

func TestHTTP_CareLogs(t *testing.T) {
	ts := newTestServer(t)
	ownerID := "owner-1"

	petID := createPet(t, ts.URL, ownerID, map[string]any{"name": "Luna", "species": "cat"})

	// Registrar peso con occurred_at explícito
	occurred := time.Now().UTC().Add(-2 * time.Hour).Format(time.RFC3339)
	{
		st, body := doReq(t, ts.URL, "POST", "/pets/"+petID+"/care/logs", ownerID, map[string]any{
			"type":        "weight",
			"value":       "4.2 kg",
			"occurred_at": occurred,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 record log, got %d body=%s", st, string(body))
		}
	}

	// Sin type => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/pets/"+petID+"/care/logs", ownerID, map[string]any{
			"value": "4.2 kg",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 without type, got %d", st)
		}
	}

	// Nota sin occurred_at (default ahora); queda primera por ser más reciente
	{
		st, _ := doReq(t, ts.URL, "POST", "/pets/"+petID+"/care/logs", ownerID, map[string]any{
			"type":  "note",
			"notes": "comió bien",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 record note, got %d", st)
		}
	}

	st, body := doReq(t, ts.URL, "GET", "/pets/"+petID+"/care/logs", ownerID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list logs, got %d body=%s", st, string(body))
	}
	var resp struct {
		Logs []map[string]any `json:"logs"`
	}
	_ = json.Unmarshal(body, &resp)
	if len(resp.Logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(resp.Logs))
	}
	if resp.Logs[0]["type"] != "note" {
		t.Fatalf("expected newest-first order, got %v first", resp.Logs[0]["type"])
	}

	// El historial de otra mascota no se filtra
	{
		st, _ := doReq(t, ts.URL, "GET", "/pets/"+petID+"/care/logs", "stranger-1", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 foreign logs, got %d", st)
		}
	}
}

func TestHTTP_TemplateValidation(t *testing.T) {
	ts := newTestServer(t)
	ownerID := "owner-1"
	petID := createPet(t, ts.URL, ownerID, map[string]any{"name": "Milo"})

	// type inválido => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/pets/"+petID+"/care/templates", ownerID, map[string]any{
			"type":  "teleport",
			"title": "x",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 unknown care type, got %d", st)
		}
	}

	// sin title => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/pets/"+petID+"/care/templates", ownerID, map[string]any{
			"type": "feeding",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 missing title, got %d", st)
		}
	}

	// pet ajeno => 404, nunca 403
	{
		st, _ := doReq(t, ts.URL, "POST", "/pets/"+petID+"/care/templates", "stranger-1", map[string]any{
			"type":  "feeding",
			"title": "Desayuno",
		})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 foreign pet, got %d", st)
		}
	}
}

func TestHTTP_HealthIsPublic(t *testing.T) {
	ts := newTestServer(t)

	st, _ := doReq(t, ts.URL, "GET", "/health", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 health, got %d", st)
	}
}

func createPet(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/pets", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}

	var resp struct {
		Pet struct {
			ID string `json:"id"`
		} `json:"pet"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Pet.ID == "" {
		t.Fatalf("create pet: missing id body=%s", string(body))
	}
	return resp.Pet.ID
}

func createTemplate(t *testing.T, baseURL, userID, petID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/pets/"+petID+"/care/templates", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create template, got %d body=%s", st, string(body))
	}

	var resp struct {
		Template struct {
			ID string `json:"id"`
		} `json:"template"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Template.ID == "" {
		t.Fatalf("create template: missing id body=%s", string(body))
	}
	return resp.Template.ID
}

func listEvents(t *testing.T, baseURL, userID, petID, rng string) []map[string]any {
	t.Helper()

	path := "/pets/" + petID + "/care/events"
	if rng != "" {
		path += "?range=" + rng
	}
	st, body := doReq(t, baseURL, "GET", path, userID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list events, got %d body=%s", st, string(body))
	}

	var resp struct {
		Events []map[string]any `json:"events"`
	}
	_ = json.Unmarshal(body, &resp)
	return resp.Events
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, b
}

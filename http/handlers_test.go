package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atlatec/pozo-report-api/config"
	"github.com/atlatec/pozo-report-api/db"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := config.Config{
		Port:              8080,
		DefaultConnection: "bd_MTC_PozaRica",
		Connections: []config.Connection{
			{Name: "bd_MTC_PozaRica", Host: "localhost", Port: 1433, Database: "pozarica"},
			{Name: "bd_Bellota", Host: "localhost", Port: 1433, Database: "bellota"},
		},
	}

	registry, err := db.NewRegistry(cfg)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	t.Cleanup(registry.Close)

	return New(cfg, registry)
}

func perform(t *testing.T, srv *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	return rec
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(t)
	rec := perform(t, srv, http.MethodGet, "/api/test")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST, PUT, DELETE, OPTIONS" {
		t.Errorf("Allow-Methods = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Headers"); got != "X-Requested-With, Content-Type, X-Token-Auth, Authorization, Accept, Origin" {
		t.Errorf("Allow-Headers = %q", got)
	}
}

func TestOptionsShortCircuits(t *testing.T) {
	srv := newTestServer(t)
	rec := perform(t, srv, http.MethodOptions, "/api/pozos/reporte")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
}

func TestInvalidConnectionRejected(t *testing.T) {
	srv := newTestServer(t)

	for _, target := range []string{
		"/api/pozos?Conexion=bd_Otra",
		"/api/pozos/reporte?Conexion=bd_Otra&Pozos[]=1&Fecha=2025-11-10",
		"/api/pozos/reporte/mensual?Conexion=bd_Otra&Pozos[]=1&Fecha=2025-11",
		"/api/pozos",
	} {
		rec := perform(t, srv, http.MethodGet, target)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
			continue
		}

		var body struct {
			Error       string   `json:"error"`
			Disponibles []string `json:"conexiones_disponibles"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: bad body: %v", target, err)
		}
		if body.Error == "" {
			t.Errorf("%s: missing error message", target)
		}
		if len(body.Disponibles) != 2 || body.Disponibles[0] != "bd_MTC_PozaRica" || body.Disponibles[1] != "bd_Bellota" {
			t.Errorf("%s: conexiones_disponibles = %v", target, body.Disponibles)
		}
	}
}

func TestReportMissingParamsIsNoOp(t *testing.T) {
	srv := newTestServer(t)

	for _, target := range []string{
		"/api/pozos/reporte?Conexion=bd_Bellota",
		"/api/pozos/reporte?Conexion=bd_Bellota&Fecha=2025-11-10",
		"/api/pozos/reporte?Conexion=bd_Bellota&Pozos[]=168",
		"/api/pozos/reporte/mensual?Conexion=bd_Bellota",
		"/api/pozos/reporte/mensual?Conexion=bd_Bellota&Pozos[]=168",
	} {
		rec := perform(t, srv, http.MethodGet, target)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", target, rec.Code)
		}
		if rec.Body.String() != "[]" {
			t.Errorf("%s: body = %q, want []", target, rec.Body.String())
		}
	}
}

func TestReportRejectsMalformedInput(t *testing.T) {
	srv := newTestServer(t)

	cases := []string{
		"/api/pozos/reporte?Conexion=bd_Bellota&Pozos[]=168&Fecha=10-11-2025",
		"/api/pozos/reporte?Conexion=bd_Bellota&Pozos[]=abc&Fecha=2025-11-10",
		"/api/pozos/reporte/mensual?Conexion=bd_Bellota&Pozos[]=168&Fecha=2025-11-10",
	}
	for _, target := range cases {
		rec := perform(t, srv, http.MethodGet, target)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
		}
	}
}

func TestListConnections(t *testing.T) {
	srv := newTestServer(t)
	rec := perform(t, srv, http.MethodGet, "/api/conexiones")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Disponibles []string `json:"conexiones_disponibles"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(body.Disponibles) != 2 {
		t.Errorf("conexiones_disponibles = %v, want both configured names", body.Disponibles)
	}
}

func TestWellTagsRequiresID(t *testing.T) {
	srv := newTestServer(t)

	for _, target := range []string{
		"/api/pozos/tags",
		"/api/pozos/tags?idPozo=abc",
	} {
		rec := perform(t, srv, http.MethodGet, target)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
		}
	}
}

func TestRootLiveness(t *testing.T) {
	srv := newTestServer(t)
	rec := perform(t, srv, http.MethodGet, "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Error("expected a non-empty liveness body")
	}
}

package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"health-records-access/internal/adapters/auth/jwtauth"
	"health-records-access/internal/adapters/identity/registry"
	"health-records-access/internal/domain/accessgrants"
	"health-records-access/internal/middleware"
	"health-records-access/internal/ports/identity"
	"health-records-access/internal/router"
)

type grantJSON struct {
	ID             string `json:"_id"`
	PatientWallet  string `json:"patientWallet"`
	ProviderWallet string `json:"providerWallet"`
	GrantAccess    string `json:"grantAccess"`
	Accepted       string `json:"accepted"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

type messageJSON struct {
	Message string     `json:"message"`
	Data    *grantJSON `json:"data"`
}

func TestHTTP_EndToEnd_GrantLifecycle(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	// 1) Paciente crea el grant
	created := createGrant(t, ts.URL, "", "0xA", "0xB", "Yes")
	if created.Accepted != "No" || created.GrantAccess != "Yes" {
		t.Fatalf("unexpected created grant: %+v", created)
	}
	if created.CreatedAt == "" || created.CreatedAt != created.UpdatedAt {
		t.Fatalf("expected createdAt == updatedAt on create: %+v", created)
	}

	// 2) Provider lo ve pendiente
	{
		items := listGrants(t, ts.URL, "/api/grant-access/provider/0xB")
		if len(items) != 1 || items[0].ID != created.ID || items[0].Accepted != "No" {
			t.Fatalf("expected 1 pending grant, got %+v", items)
		}
	}

	// 3) Provider acepta
	{
		st, body := doReq(t, ts.URL, "PUT", "/api/grant-access/accept/"+created.ID, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 accept, got %d body=%s", st, string(body))
		}
		var resp messageJSON
		_ = json.Unmarshal(body, &resp)
		if resp.Message != "Accepted updated to Yes" || resp.Data == nil || resp.Data.Accepted != "Yes" {
			t.Fatalf("unexpected accept response: %s", string(body))
		}
	}

	// 4) Paciente lo ve activo
	{
		items := listGrants(t, ts.URL, "/api/grant-access/patient/0xA")
		if len(items) != 1 || items[0].Accepted != "Yes" {
			t.Fatalf("expected accepted grant for patient, got %+v", items)
		}
	}

	// 5) Revocación
	{
		st, body := doReq(t, ts.URL, "DELETE", "/api/grant-access/"+created.ID, "", nil)
		if st != http.StatusOK || !strings.Contains(string(body), "Record deleted successfully") {
			t.Fatalf("expected 200 delete, got %d body=%s", st, string(body))
		}
	}

	// 6) Sin rastro
	for _, path := range []string{"/api/grant-access/patient/0xA", "/api/grant-access/provider/0xB"} {
		st, body := doReq(t, ts.URL, "GET", path, "", nil)
		if st != http.StatusOK || strings.TrimSpace(string(body)) != "[]" {
			t.Fatalf("expected empty list at %s, got %d body=%s", path, st, string(body))
		}
	}

	// 7) Borrar de nuevo => 404
	{
		st, body := doReq(t, ts.URL, "DELETE", "/api/grant-access/"+created.ID, "", nil)
		if st != http.StatusNotFound || !strings.Contains(string(body), "Record not found") {
			t.Fatalf("expected 404 second delete, got %d body=%s", st, string(body))
		}
	}
}

func TestHTTP_DuplicateTriple(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	createGrant(t, ts.URL, "", "0xA", "0xB", "No")

	st, body := doReq(t, ts.URL, "POST", "/api/grant-access", "", map[string]any{
		"patientWallet": "0xA", "providerWallet": "0xB", "grantAccess": "No",
	})
	if st != http.StatusConflict {
		t.Fatalf("expected 409 duplicate, got %d body=%s", st, string(body))
	}
	var resp messageJSON
	_ = json.Unmarshal(body, &resp)
	if resp.Message != "Grant access already exists for this patient and provider" {
		t.Fatalf("unexpected duplicate message: %s", string(body))
	}

	// otro grantAccess es otra tripleta
	createGrant(t, ts.URL, "", "0xA", "0xB", "Yes")
	if items := listGrants(t, ts.URL, "/api/grant-access/provider/0xB"); len(items) != 2 {
		t.Fatalf("expected 2 grants, got %d", len(items))
	}
}

func TestHTTP_CreateValidation(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	cases := []struct {
		name string
		body any
		want string
	}{
		{"missing patient", map[string]any{"providerWallet": "0xB", "grantAccess": "Yes"}, "patientWallet is required"},
		{"blank provider", map[string]any{"patientWallet": "0xA", "providerWallet": "   ", "grantAccess": "Yes"}, "providerWallet is required"},
		{"bad answer", map[string]any{"patientWallet": "0xA", "providerWallet": "0xB", "grantAccess": "Maybe"}, "grantAccess must be one of"},
		{"not json", "nope", "invalid json"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, body := doReq(t, ts.URL, "POST", "/api/grant-access", "", tc.body)
			if st != http.StatusBadRequest || !strings.Contains(string(body), tc.want) {
				t.Fatalf("expected 400 containing %q, got %d body=%s", tc.want, st, string(body))
			}
		})
	}

	if items := listGrants(t, ts.URL, "/api/grant-access/patient/0xA"); len(items) != 0 {
		t.Fatalf("rejected creates must not store anything, got %+v", items)
	}
}

func TestHTTP_UnknownIDs(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	for _, req := range []struct{ method, path string }{
		{"PUT", "/api/grant-access/accept/does-not-exist"},
		{"DELETE", "/api/grant-access/does-not-exist"},
	} {
		st, body := doReq(t, ts.URL, req.method, req.path, "", nil)
		if st != http.StatusNotFound {
			t.Fatalf("%s %s: expected 404, got %d body=%s", req.method, req.path, st, string(body))
		}
	}
}

func TestHTTP_AcceptedFilter(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	g1 := createGrant(t, ts.URL, "", "0xA", "0xB", "Yes")
	createGrant(t, ts.URL, "", "0xC", "0xB", "Yes")

	if st, body := doReq(t, ts.URL, "PUT", "/api/grant-access/accept/"+g1.ID, "", nil); st != http.StatusOK {
		t.Fatalf("accept: %d %s", st, string(body))
	}

	active := listGrants(t, ts.URL, "/api/grant-access/provider/0xB?accepted=Yes")
	if len(active) != 1 || active[0].ID != g1.ID {
		t.Fatalf("expected only accepted grant, got %+v", active)
	}
	pending := listGrants(t, ts.URL, "/api/grant-access/provider/0xB?accepted=No")
	if len(pending) != 1 || pending[0].PatientWallet != "0xC" {
		t.Fatalf("expected only pending grant, got %+v", pending)
	}

	if st, _ := doReq(t, ts.URL, "GET", "/api/grant-access/provider/0xB?accepted=maybe", "", nil); st != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad filter, got %d", st)
	}
}

func TestHTTP_DevCallerMustBeParty(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{RevokePolicy: accessgrants.RevokeParties}))
	defer ts.Close()

	// Otro wallet no puede pedir el grant en nombre del paciente
	if st, body := doReq(t, ts.URL, "POST", "/api/grant-access", "0xEVE", map[string]any{
		"patientWallet": "0xA", "providerWallet": "0xB", "grantAccess": "Yes",
	}); st != http.StatusForbidden {
		t.Fatalf("expected 403 create by non-patient, got %d body=%s", st, string(body))
	}

	g := createGrant(t, ts.URL, "0xA", "0xA", "0xB", "Yes")

	// Solo el provider acepta
	if st, _ := doReq(t, ts.URL, "PUT", "/api/grant-access/accept/"+g.ID, "0xA", nil); st != http.StatusForbidden {
		t.Fatalf("expected 403 accept by patient, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "PUT", "/api/grant-access/accept/"+g.ID, "0xB", nil); st != http.StatusOK {
		t.Fatalf("expected 200 accept by provider, got %d", st)
	}

	// Revocar exige identidad y ser parte
	if st, _ := doReq(t, ts.URL, "DELETE", "/api/grant-access/"+g.ID, "", nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 anonymous revoke, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "DELETE", "/api/grant-access/"+g.ID, "0xEVE", nil); st != http.StatusForbidden {
		t.Fatalf("expected 403 revoke by stranger, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "DELETE", "/api/grant-access/"+g.ID, "0xB", nil); st != http.StatusOK {
		t.Fatalf("expected 200 revoke by provider, got %d", st)
	}
}

func TestHTTP_JWTCaller_PatientOnlyRevoke(t *testing.T) {
	verifier, err := jwtauth.NewVerifier("test-secret", "")
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}

	ts := httptest.NewServer(router.NewRouter(router.Options{
		AuthVerifier: verifier,
		RevokePolicy: accessgrants.RevokePatient,
	}))
	defer ts.Close()

	patientTok := issue(t, verifier, "0xA")
	providerTok := issue(t, verifier, "0xB")

	// Sin token válido no se muta nada
	if st, body := doReq(t, ts.URL, "POST", "/api/grant-access", "", map[string]any{
		"patientWallet": "0xA", "providerWallet": "0xB", "grantAccess": "Yes",
	}); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 anonymous create, got %d body=%s", st, string(body))
	}
	if st, _ := doReqToken(t, ts.URL, "POST", "/api/grant-access", "garbage", map[string]any{
		"patientWallet": "0xA", "providerWallet": "0xB", "grantAccess": "Yes",
	}); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 create with invalid token, got %d", st)
	}

	g := createGrantWithToken(t, ts.URL, patientTok, "0xA", "0xB")

	if st, _ := doReq(t, ts.URL, "PUT", "/api/grant-access/accept/"+g.ID, "", nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 anonymous accept, got %d", st)
	}
	if st, body := doReqToken(t, ts.URL, "PUT", "/api/grant-access/accept/"+g.ID, providerTok, nil); st != http.StatusOK {
		t.Fatalf("expected 200 accept by provider token, got %d body=%s", st, string(body))
	}

	// El header dev se ignora cuando hay verifier
	if st, _ := doReq(t, ts.URL, "DELETE", "/api/grant-access/"+g.ID, "0xA", nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 with dev header only, got %d", st)
	}
	if st, _ := doReqToken(t, ts.URL, "DELETE", "/api/grant-access/"+g.ID, providerTok, nil); st != http.StatusForbidden {
		t.Fatalf("expected 403 revoke by provider under patient policy, got %d", st)
	}
	if st, body := doReqToken(t, ts.URL, "DELETE", "/api/grant-access/"+g.ID, patientTok, nil); st != http.StatusOK {
		t.Fatalf("expected 200 revoke by patient, got %d body=%s", st, string(body))
	}
}

func TestHTTP_IdentityRegistry(t *testing.T) {
	reg := registry.NewStatic()
	reg.RegisterPatient("0xA", identity.PatientInfo{Name: "Ana", Age: 34, BloodGroup: "O+", ContactNumber: "555-0101"})
	reg.RegisterProvider("0xB", identity.ProviderInfo{Name: "Dr. Bo", Hospital: "General", Specialization: "Cardiology", LicenseNumber: "L-1"})

	ts := httptest.NewServer(router.NewRouter(router.Options{Registry: reg, EnforceRoles: true}))
	defer ts.Close()

	// Perfil
	{
		st, body := doReq(t, ts.URL, "GET", "/api/identity/0xA", "", nil)
		if st != http.StatusOK || !strings.Contains(string(body), `"role":"patient"`) || !strings.Contains(string(body), "Ana") {
			t.Fatalf("expected patient profile, got %d body=%s", st, string(body))
		}
		st, body = doReq(t, ts.URL, "GET", "/api/identity/0xNOPE", "", nil)
		if st != http.StatusNotFound || !strings.Contains(string(body), "Please register first") {
			t.Fatalf("expected 404 unregistered, got %d body=%s", st, string(body))
		}
	}

	// Roles: el provider no puede figurar como paciente
	if st, body := doReq(t, ts.URL, "POST", "/api/grant-access", "", map[string]any{
		"patientWallet": "0xB", "providerWallet": "0xA", "grantAccess": "Yes",
	}); st != http.StatusBadRequest {
		t.Fatalf("expected 400 for swapped roles, got %d body=%s", st, string(body))
	}

	createGrant(t, ts.URL, "", "0xA", "0xB", "Yes")

	// Vista enriquecida del provider
	st, body := doReq(t, ts.URL, "GET", "/api/grant-access/provider/0xB/requests", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 requests, got %d body=%s", st, string(body))
	}
	var items []struct {
		grantJSON
		Patient *identity.PatientInfo `json:"patient"`
	}
	if err := json.Unmarshal(body, &items); err != nil {
		t.Fatalf("decode: %v body=%s", err, string(body))
	}
	if len(items) != 1 || items[0].Patient == nil || items[0].Patient.BloodGroup != "O+" {
		t.Fatalf("expected enriched request, got %s", string(body))
	}
}

func TestHTTP_IdentityWithoutRegistry(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	if st, _ := doReq(t, ts.URL, "GET", "/api/identity/0xA", "", nil); st != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without registry, got %d", st)
	}
}

func TestHTTP_HealthAndMetrics(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	if st, body := doReq(t, ts.URL, "GET", "/health", "", nil); st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("health: %d %s", st, string(body))
	}

	createGrant(t, ts.URL, "", "0xA", "0xB", "Yes")

	st, body := doReq(t, ts.URL, "GET", "/metrics", "", nil)
	if st != http.StatusOK {
		t.Fatalf("metrics: %d", st)
	}
	if !strings.Contains(string(body), "http_requests_total") || !strings.Contains(string(body), `route="/api/grant-access`) {
		t.Fatalf("expected request counter by route, got:\n%s", string(body))
	}
}

func TestHTTP_CORS(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{CORSOrigins: []string{"http://localhost:3000"}}))
	defer ts.Close()

	// Preflight del frontend para PUT
	st, _, hdr := sendWithHeaders(t, ts.URL, "OPTIONS", "/api/grant-access/accept/x", map[string]string{
		"Origin":                        "http://localhost:3000",
		"Access-Control-Request-Method": "PUT",
	})
	if st != http.StatusNoContent {
		t.Fatalf("expected 204 preflight, got %d", st)
	}
	if hdr.Get("Access-Control-Allow-Origin") != "http://localhost:3000" || !strings.Contains(hdr.Get("Access-Control-Allow-Methods"), "PUT") {
		t.Fatalf("unexpected preflight headers: %v", hdr)
	}

	st, body, hdr := sendWithHeaders(t, ts.URL, "GET", "/api/grant-access/patient/0xA", map[string]string{"Origin": "http://localhost:3000"})
	if st != http.StatusOK || strings.TrimSpace(string(body)) != "[]" {
		t.Fatalf("expected 200 [], got %d body=%s", st, string(body))
	}
	if hdr.Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Fatalf("expected allow-origin on simple request, got %q", hdr.Get("Access-Control-Allow-Origin"))
	}
}

// failingRepo simula un store caído.
type failingRepo struct{}

var errStoreDown = errors.New("store down")

func (failingRepo) FindExact(context.Context, string, string, accessgrants.Answer) (accessgrants.AccessGrant, bool, error) {
	return accessgrants.AccessGrant{}, false, errStoreDown
}
func (failingRepo) Insert(context.Context, accessgrants.AccessGrant) (accessgrants.AccessGrant, error) {
	return accessgrants.AccessGrant{}, errStoreDown
}
func (failingRepo) GetByID(context.Context, string) (accessgrants.AccessGrant, bool, error) {
	return accessgrants.AccessGrant{}, false, errStoreDown
}
func (failingRepo) FindByPatient(context.Context, string) ([]accessgrants.AccessGrant, error) {
	return nil, errStoreDown
}
func (failingRepo) FindByProvider(context.Context, string) ([]accessgrants.AccessGrant, error) {
	return nil, errStoreDown
}
func (failingRepo) UpdateAccepted(context.Context, string) (accessgrants.AccessGrant, bool, error) {
	return accessgrants.AccessGrant{}, false, errStoreDown
}
func (failingRepo) DeleteByID(context.Context, string) (bool, error) {
	return false, errStoreDown
}

func TestHTTP_StoreFailureIs500(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{Grants: failingRepo{}}))
	defer ts.Close()

	cases := []struct {
		method, path string
		body         any
	}{
		{"GET", "/api/grant-access/patient/0xA", nil},
		{"GET", "/api/grant-access/provider/0xB", nil},
		{"GET", "/api/grant-access/provider/0xB/requests", nil},
		{"POST", "/api/grant-access", map[string]any{"patientWallet": "0xA", "providerWallet": "0xB", "grantAccess": "Yes"}},
		{"PUT", "/api/grant-access/accept/g1", nil},
		{"DELETE", "/api/grant-access/g1", nil},
	}
	for _, tc := range cases {
		st, body := doReq(t, ts.URL, tc.method, tc.path, "", tc.body)
		if st != http.StatusInternalServerError {
			t.Fatalf("%s %s: expected 500, got %d body=%s", tc.method, tc.path, st, string(body))
		}
		var resp map[string]string
		if err := json.Unmarshal(body, &resp); err != nil || resp["error"] != "internal error" {
			t.Fatalf("%s %s: unexpected body %s", tc.method, tc.path, string(body))
		}
		if strings.Contains(string(body), errStoreDown.Error()) {
			t.Fatalf("%s %s: store error leaked to client", tc.method, tc.path)
		}
	}
}

func TestHTTP_RateLimit(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{RateLimit: router.RateLimit{RPS: 0.001, Burst: 2}}))
	defer ts.Close()

	for i := 0; i < 2; i++ {
		if st, _ := doReq(t, ts.URL, "GET", "/health", "", nil); st != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, st)
		}
	}
	if st, _ := doReq(t, ts.URL, "GET", "/health", "", nil); st != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", st)
	}
}

func TestHTTP_BodyTooLarge(t *testing.T) {
	h := router.NewRouter(router.Options{})

	raw, _ := json.Marshal(map[string]any{
		"patientWallet":  strings.Repeat("a", 2<<20),
		"providerWallet": "0xB",
		"grantAccess":    "Yes",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/grant-access", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge || !strings.Contains(rec.Body.String(), "too large") {
		t.Fatalf("expected 413 for oversized body, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func createGrant(t *testing.T, baseURL, caller, patient, provider, grantAccess string) grantJSON {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/grant-access", caller, map[string]any{
		"patientWallet":  patient,
		"providerWallet": provider,
		"grantAccess":    grantAccess,
	})
	return decodeCreated(t, st, body)
}

func createGrantWithToken(t *testing.T, baseURL, token, patient, provider string) grantJSON {
	t.Helper()

	st, body := doReqToken(t, baseURL, "POST", "/api/grant-access", token, map[string]any{
		"patientWallet":  patient,
		"providerWallet": provider,
		"grantAccess":    "Yes",
	})
	return decodeCreated(t, st, body)
}

func decodeCreated(t *testing.T, st int, body []byte) grantJSON {
	t.Helper()

	if st != http.StatusCreated {
		t.Fatalf("expected 201 create grant, got %d body=%s", st, string(body))
	}
	var resp messageJSON
	_ = json.Unmarshal(body, &resp)
	if resp.Message != "Grant access stored" || resp.Data == nil || resp.Data.ID == "" {
		t.Fatalf("create grant: unexpected body=%s", string(body))
	}
	return *resp.Data
}

func listGrants(t *testing.T, baseURL, path string) []grantJSON {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", path, "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 listing %s, got %d body=%s", path, st, string(body))
	}
	var items []grantJSON
	if err := json.Unmarshal(body, &items); err != nil {
		t.Fatalf("decode list: %v body=%s", err, string(body))
	}
	return items
}

func issue(t *testing.T, v *jwtauth.Verifier, wallet string) string {
	t.Helper()
	tok, err := v.Issue(wallet, "", time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

func doReq(t *testing.T, baseURL, method, path, wallet string, body any) (int, []byte) {
	t.Helper()
	headers := map[string]string{}
	if wallet != "" {
		headers[middleware.DevWalletHeader] = wallet
	}
	return send(t, baseURL, method, path, headers, body)
}

func doReqToken(t *testing.T, baseURL, method, path, token string, body any) (int, []byte) {
	t.Helper()
	return send(t, baseURL, method, path, map[string]string{"Authorization": "Bearer " + token}, body)
}

func sendWithHeaders(t *testing.T, baseURL, method, path string, headers map[string]string) (int, []byte, http.Header) {
	t.Helper()

	req, err := http.NewRequest(method, baseURL+path, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody, res.Header
}

func send(t *testing.T, baseURL, method, path string, headers map[string]string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}

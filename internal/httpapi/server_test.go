package httpapi_test

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

	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/fcv/porteria/internal/httpapi"
	"github.com/fcv/porteria/internal/lib/api/response"
	"github.com/fcv/porteria/internal/lib/logger"
	"github.com/fcv/porteria/internal/porteria/metrics"
	"github.com/fcv/porteria/internal/porteria/model"
	"github.com/fcv/porteria/internal/porteria/policy"
	"github.com/fcv/porteria/internal/porteria/service"
	"github.com/fcv/porteria/internal/porteria/store/memory"
)

const staffRUT = "111111111"

// newTestServer wires up the full dependency graph using the in-memory store
// and returns an httptest.Server whose URL can be hit with a plain http.Client.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return newTestServerWith(t, nil)
}

func newTestServerWith(t *testing.T, check httpapi.AccessChecker) *httptest.Server {
	t.Helper()

	ctx := context.Background()
	st := memory.New()
	org, err := st.UpsertOrganization(ctx, model.Organization{Name: "Administración", Type: model.OrganizationInternal, AccessRulePreset: "acceso_total"})
	if err != nil {
		t.Fatalf("seed org: %v", err)
	}
	p, err := st.UpsertPerson(ctx, model.Person{RUT: staffRUT, Name: "Marta", Status: model.PersonStatusActive})
	if err != nil {
		t.Fatalf("seed person: %v", err)
	}
	if _, err := st.AddMembership(ctx, model.Membership{PersonID: p.ID, OrganizationID: org.ID, Role: model.RoleStaff}); err != nil {
		t.Fatalf("seed membership: %v", err)
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	log := logger.Discard()
	resolver := service.NewResolver(st, st, policy.NewTable(policy.Defaults()), nil, service.WithResolverLogger(log))
	if check == nil {
		check = service.NewAccessService(resolver, log, m)
	}

	srv := httpapi.NewServer(httpapi.Dependencies{
		Logger:     log,
		Addr:       ":0",
		Access:     check,
		AccessLogs: service.NewAccessLogService(resolver, st, st, log, m),
		Gatherer:   reg,
	})

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

// ── Access check ─────────────────────────────────────────────────────────────

func TestCheck_Staff_Allowed(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/v1/access/check", `{"rut":"11.111.111-1"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	d := decode[model.Decision](t, resp)
	if !d.Allowed || d.Status != model.StatusPermitido {
		t.Errorf("expected permitido, got %+v", d)
	}
	if d.Reason != model.ReasonStaffAccess {
		t.Errorf("expected reason %q, got %q", model.ReasonStaffAccess, d.Reason)
	}
	if d.Person == nil || d.Person.RUT != staffRUT {
		t.Errorf("expected person %s, got %+v", staffRUT, d.Person)
	}
	if d.Organization == nil || d.Organization.AccessRulePreset != "acceso_total" {
		t.Errorf("expected organization with acceso_total, got %+v", d.Organization)
	}
}

func TestCheck_Unknown_PersonNull(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/v1/access/check", `{"rut":"99.999.999-9"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if v, ok := raw["person"]; !ok || v != nil {
		t.Errorf("expected person:null, got %v (present=%v)", v, ok)
	}
	if raw["reason"] != model.ReasonPersonNotRegistered {
		t.Errorf("expected %q, got %v", model.ReasonPersonNotRegistered, raw["reason"])
	}
	if _, ok := raw["organization"]; ok {
		t.Error("expected organization to be omitted")
	}
}

func TestCheck_EmptyRUT_Evaluated(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/v1/access/check", `{"rut":""}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if d := decode[model.Decision](t, resp); d.Reason != model.ReasonPersonNotRegistered {
		t.Errorf("expected %q, got %q", model.ReasonPersonNotRegistered, d.Reason)
	}
}

func TestCheck_MissingRUT_400(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/v1/access/check", `{}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	body := decode[response.Response](t, resp)
	if body.Status != response.StatusError || body.Error != "field rut is required" {
		t.Errorf("unexpected body %+v", body)
	}
}

func TestCheck_InvalidJSON_400(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/v1/access/check", `{not json`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCheck_UnknownField_400(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/v1/access/check", `{"rut":"1","card":"x"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCheck_RUTTooLong_400(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/v1/access/check", `{"rut":"`+strings.Repeat("1", 65)+`"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

type failingChecker struct{ err error }

func (f failingChecker) Check(context.Context, string) (model.Decision, error) {
	return model.Decision{}, f.err
}

func TestCheck_StoreError_500(t *testing.T) {
	ts := newTestServerWith(t, failingChecker{err: errors.New("database is locked")})

	resp := postJSON(t, ts.URL+"/v1/access/check", `{"rut":"111111111"}`)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	body := decode[response.Response](t, resp)
	if strings.Contains(body.Error, "locked") {
		t.Errorf("internal error leaked to client: %q", body.Error)
	}
}

// ── Protobuf negotiation ─────────────────────────────────────────────────────

func postProto(t *testing.T, url string, msg proto.Message) *http.Response {
	t.Helper()
	data, err := proto.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/x-protobuf", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestCheck_Protobuf_RoundTrip(t *testing.T) {
	ts := newTestServer(t)

	req, err := structpb.NewStruct(map[string]any{"rut": staffRUT})
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	resp := postProto(t, ts.URL+"/v1/access/check", req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/x-protobuf" {
		t.Fatalf("expected protobuf response, got %q", ct)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var out structpb.Struct
	if err := proto.Unmarshal(body, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := out.AsMap()
	if got["allowed"] != true || got["reason"] != model.ReasonStaffAccess {
		t.Errorf("unexpected decision %v", got)
	}
	person, ok := got["person"].(map[string]any)
	if !ok || person["rut"] != staffRUT {
		t.Errorf("expected person %s, got %v", staffRUT, got["person"])
	}
}

func TestCheck_Protobuf_UnknownPersonNull(t *testing.T) {
	ts := newTestServer(t)

	req, _ := structpb.NewStruct(map[string]any{"rut": "1"})
	resp := postProto(t, ts.URL+"/v1/access/check", req)
	body, _ := io.ReadAll(resp.Body)

	var out structpb.Struct
	if err := proto.Unmarshal(body, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	v, ok := out.GetFields()["person"]
	if !ok {
		t.Fatal("expected person field")
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); !isNull {
		t.Errorf("expected null person, got %v", v)
	}
}

func TestCheck_Protobuf_MissingRUT_400(t *testing.T) {
	ts := newTestServer(t)

	req, _ := structpb.NewStruct(map[string]any{"card": "x"})
	resp := postProto(t, ts.URL+"/v1/access/check", req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCheck_Protobuf_NonStringRUT_400(t *testing.T) {
	ts := newTestServer(t)

	req, _ := structpb.NewStruct(map[string]any{"rut": 12345678})
	resp := postProto(t, ts.URL+"/v1/access/check", req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCheck_Protobuf_Garbage_400(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/v1/access/check", "application/x-protobuf", bytes.NewReader([]byte{0xff, 0xff, 0xff}))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

// ── Access logs ──────────────────────────────────────────────────────────────

type recordEnvelope struct {
	Status string                    `json:"status"`
	Data   httpapi.RecordLogResponse `json:"data"`
}

type listEnvelope struct {
	Status string            `json:"status"`
	Data   []model.AccessLog `json:"data"`
}

func TestRecordLog_Entry_201(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/v1/access/logs", `{"rut":"11.111.111-1","direction":"entrada","gate":"norte"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	body := decode[recordEnvelope](t, resp)
	if body.Status != response.StatusOK {
		t.Fatalf("expected ok, got %q", body.Status)
	}
	if body.Data.Log.RUT != staffRUT || body.Data.Log.Gate != "norte" {
		t.Errorf("unexpected log %+v", body.Data.Log)
	}
	if body.Data.Log.PersonID == nil || body.Data.Log.OrganizationID == nil {
		t.Error("expected person and organization ids on the log")
	}
	if body.Data.Decision.Reason != model.ReasonStaffAccess {
		t.Errorf("expected %q, got %q", model.ReasonStaffAccess, body.Data.Decision.Reason)
	}
}

func TestRecordLog_ExitUnknown_Denied(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/v1/access/logs", `{"rut":"5","direction":"salida"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	body := decode[recordEnvelope](t, resp)
	if body.Data.Log.Allowed || body.Data.Log.Status != model.StatusDenegado {
		t.Errorf("expected denied exit, got %+v", body.Data.Log)
	}
}

func TestRecordLog_BadDirection_400(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/v1/access/logs", `{"rut":"111111111","direction":"arriba"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestListLogs_FilterAndOrder(t *testing.T) {
	ts := newTestServer(t)

	postJSON(t, ts.URL+"/v1/access/logs", `{"rut":"111111111","direction":"entrada","occurred_at":"2026-03-09T08:00:00Z"}`)
	postJSON(t, ts.URL+"/v1/access/logs", `{"rut":"111111111","direction":"salida","occurred_at":"2026-03-09T17:00:00Z"}`)
	postJSON(t, ts.URL+"/v1/access/logs", `{"rut":"222222222","direction":"entrada","occurred_at":"2026-03-09T09:00:00Z"}`)

	resp, err := http.Get(ts.URL + "/v1/access/logs?rut=11.111.111-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := decode[listEnvelope](t, resp)
	if len(body.Data) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(body.Data))
	}
	if body.Data[0].Direction != model.DirectionExit || body.Data[1].Direction != model.DirectionEntry {
		t.Errorf("expected newest first, got %s then %s", body.Data[0].Direction, body.Data[1].Direction)
	}
}

func TestListLogs_EmptyIsArray(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/v1/access/logs?direction=salida")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(raw), `"data":[]`) {
		t.Errorf("expected empty array, got %s", raw)
	}
}

func TestListLogs_BadQuery_400(t *testing.T) {
	ts := newTestServer(t)

	for _, q := range []string{"limit=abc", "limit=-1", "direction=arriba"} {
		resp, err := http.Get(ts.URL + "/v1/access/logs?" + q)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", q, resp.StatusCode)
		}
	}
}

// ── Ops ──────────────────────────────────────────────────────────────────────

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body := decode[response.Response](t, resp); body.Status != response.StatusOK {
		t.Errorf("expected ok, got %q", body.Status)
	}
}

func TestMetrics_ExposesDecisions(t *testing.T) {
	ts := newTestServer(t)
	postJSON(t, ts.URL+"/v1/access/check", `{"rut":"111111111"}`)

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(raw), "porteria_decision_outcomes_total") {
		t.Error("expected decision outcome counter in /metrics")
	}
}

func TestNotFound_Envelope(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/v1/nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if body := decode[response.Response](t, resp); body.Status != response.StatusError {
		t.Errorf("expected error envelope, got %+v", body)
	}
}

func TestCheck_Protobuf_ContentTypeParams(t *testing.T) {
	ts := newTestServer(t)

	req, _ := structpb.NewStruct(map[string]any{"rut": staffRUT})
	data, err := proto.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(ts.URL+"/v1/access/check", "application/x-protobuf; proto=google.protobuf.Struct", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "application/x-protobuf" {
		t.Fatalf("expected protobuf response, got %q", ct)
	}
}

func TestCheck_Protobuf_OversizedBody_400(t *testing.T) {
	ts := newTestServer(t)

	req, _ := structpb.NewStruct(map[string]any{"rut": strings.Repeat("1", 5000)})
	resp := postProto(t, ts.URL+"/v1/access/check", req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

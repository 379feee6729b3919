package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/visitdocs/visitdocs/internal/domain/intervention"
	"github.com/visitdocs/visitdocs/internal/domain/unabletocontact"
	"github.com/visitdocs/visitdocs/internal/domain/visit"
)

func TestClient_LoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"token": "tok-123",
			"nurse": map[string]string{"email": "n@example.com"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.Login(context.Background(), "n@example.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token != "tok-123" || c.Token() != "tok-123" {
		t.Errorf("token not stored: %q / %q", resp.Token, c.Token())
	}
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"email":"n@example.com"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("tok-456")
	if _, err := c.Me(context.Background()); err != nil {
		t.Fatalf("Me: %v", err)
	}
	if gotAuth != "Bearer tok-456" {
		t.Errorf("Authorization = %q", gotAuth)
	}
}

func TestClient_ClearsTokenOn401(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid or expired token"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("stale")
	_, err := c.Me(context.Background())
	if err != ErrUnauthenticated {
		t.Fatalf("err = %v, want ErrUnauthenticated", err)
	}
	if c.Token() != "" {
		t.Error("token not cleared after 401")
	}
}

func TestClient_APIErrorCarriesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"email already registered"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GetPatient(context.Background(), uuid.New())
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("err = %T %v, want *APIError", err, err)
	}
	if apiErr.StatusCode != 400 || apiErr.Message != "email already registered" {
		t.Errorf("APIError = %+v", apiErr)
	}
}

func TestClient_CreateIntervention_ValidatesLocally(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid draft reached the network")
	}))
	defer srv.Close()

	c := New(srv.URL)
	iv := &intervention.Intervention{InterventionType: intervention.TypeInjection}
	_, err := c.CreateIntervention(context.Background(), uuid.New(), iv)
	if err != intervention.ErrLocationRequired {
		t.Fatalf("err = %v, want ErrLocationRequired", err)
	}
}

func TestClient_CreateUnableToContact_ValidatesLocally(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid draft reached the network")
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.CreateUnableToContact(context.Background(), uuid.New(), &unabletocontact.Record{})
	if err != unabletocontact.ErrAttemptLocationRequired {
		t.Fatalf("err = %v, want ErrAttemptLocationRequired", err)
	}
}

func TestClient_CreateVisit_SendsDraft(t *testing.T) {
	var got visit.Visit
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		got.ID = uuid.New()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(got)
	}))
	defer srv.Close()

	d := visit.NewDraft(nil)
	d, err := d.SetField("vital_signs.blood_pressure_systolic", "150")
	if err != nil {
		t.Fatalf("SetField: %v", err)
	}

	c := New(srv.URL)
	created, err := c.CreateVisit(context.Background(), uuid.New(), d)
	if err != nil {
		t.Fatalf("CreateVisit: %v", err)
	}
	if got.VitalSigns.BloodPressureSystolic != "150" {
		t.Errorf("draft vitals not sent: %+v", got.VitalSigns)
	}
	if created.ID == uuid.Nil {
		t.Error("response not decoded")
	}
}

func TestClient_ListPatients_Pagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") != "5" || r.URL.Query().Get("offset") != "10" {
			t.Errorf("pagination params not forwarded: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"full_name":"A"}],"total":11,"limit":5,"offset":10,"has_more":false}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	patients, total, err := c.ListPatients(context.Background(), 5, 10)
	if err != nil {
		t.Fatalf("ListPatients: %v", err)
	}
	if total != 11 || len(patients) != 1 || patients[0].FullName != "A" {
		t.Errorf("patients = %+v, total %d", patients, total)
	}
}

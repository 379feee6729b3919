// Package client is a typed SDK for the visit-documentation API. It runs
// the same pre-submit validation the server enforces, so a caller gets the
// first failing rule locally instead of a round trip, and it drops its
// bearer token on any 401 so the session dies the way the server sees it.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/visitdocs/visitdocs/internal/domain/intervention"
	"github.com/visitdocs/visitdocs/internal/domain/nurse"
	"github.com/visitdocs/visitdocs/internal/domain/patient"
	"github.com/visitdocs/visitdocs/internal/domain/unabletocontact"
	"github.com/visitdocs/visitdocs/internal/domain/visit"
)

// ErrUnauthenticated is returned on any 401. The client's token is already
// cleared by the time the caller sees it.
var ErrUnauthenticated = errors.New("session expired or invalid")

// APIError carries a non-2xx response the server produced deliberately.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	http *resty.Client

	mu    sync.RWMutex
	token string
}

// New returns a client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(30 * time.Second).
			SetHeader("Content-Type", "application/json"),
	}
	c.http.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if tok := c.Token(); tok != "" {
			req.SetHeader("Authorization", "Bearer "+tok)
		}
		return nil
	})
	return c
}

// SetToken installs a bearer token, e.g. one saved from a previous session.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// check maps a response to an error. A 401 clears the stored token.
func (c *Client) check(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	if resp.StatusCode() == 401 {
		c.SetToken("")
		return ErrUnauthenticated
	}
	msg := resp.String()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Message != "" {
		msg = body.Message
	}
	return &APIError{StatusCode: resp.StatusCode(), Message: msg}
}

// page mirrors the server's pagination envelope with a typed data slot.
type page[T any] struct {
	Data    []T  `json:"data"`
	Total   int  `json:"total"`
	HasMore bool `json:"has_more"`
}

// --- auth ---

func (c *Client) Register(ctx context.Context, req nurse.RegisterRequest) (*nurse.AuthResponse, error) {
	var out nurse.AuthResponse
	resp, err := c.http.R().SetContext(ctx).SetBody(req).SetResult(&out).
		Post("/api/auth/register")
	if err != nil {
		return nil, err
	}
	if err := c.check(resp); err != nil {
		return nil, err
	}
	c.SetToken(out.Token)
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*nurse.AuthResponse, error) {
	var out nurse.AuthResponse
	resp, err := c.http.R().SetContext(ctx).
		SetBody(nurse.LoginRequest{Email: email, Password: password}).
		SetResult(&out).
		Post("/api/auth/login")
	if err != nil {
		return nil, err
	}
	if err := c.check(resp); err != nil {
		return nil, err
	}
	c.SetToken(out.Token)
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*nurse.Nurse, error) {
	var out nurse.Nurse
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).Get("/api/auth/me")
	if err != nil {
		return nil, err
	}
	if err := c.check(resp); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- patients ---

func (c *Client) CreatePatient(ctx context.Context, p *patient.Patient) (*patient.Patient, error) {
	var out patient.Patient
	resp, err := c.http.R().SetContext(ctx).SetBody(p).SetResult(&out).
		Post("/api/patients")
	if err != nil {
		return nil, err
	}
	if err := c.check(resp); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListPatients(ctx context.Context, limit, offset int) ([]patient.Patient, int, error) {
	var out page[patient.Patient]
	resp, err := c.http.R().SetContext(ctx).
		SetQueryParam("limit", fmt.Sprint(limit)).
		SetQueryParam("offset", fmt.Sprint(offset)).
		SetResult(&out).
		Get("/api/patients")
	if err != nil {
		return nil, 0, err
	}
	if err := c.check(resp); err != nil {
		return nil, 0, err
	}
	return out.Data, out.Total, nil
}

func (c *Client) GetPatient(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	var out patient.Patient
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).
		Get("/api/patients/" + id.String())
	if err != nil {
		return nil, err
	}
	if err := c.check(resp); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePatient(ctx context.Context, p *patient.Patient) (*patient.Patient, error) {
	var out patient.Patient
	resp, err := c.http.R().SetContext(ctx).SetBody(p).SetResult(&out).
		Put("/api/patients/" + p.ID.String())
	if err != nil {
		return nil, err
	}
	if err := c.check(resp); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePatient(ctx context.Context, id uuid.UUID) error {
	resp, err := c.http.R().SetContext(ctx).Delete("/api/patients/" + id.String())
	if err != nil {
		return err
	}
	return c.check(resp)
}

// --- visits ---

// CreateVisit submits a completed draft. The server recomputes the derived
// vitals flag, so what comes back is authoritative.
func (c *Client) CreateVisit(ctx context.Context, patientID uuid.UUID, d visit.Draft) (*visit.Visit, error) {
	var out visit.Visit
	resp, err := c.http.R().SetContext(ctx).SetBody(d.Visit).SetResult(&out).
		Post("/api/patients/" + patientID.String() + "/visits")
	if err != nil {
		return nil, err
	}
	if err := c.check(resp); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListVisits(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]visit.Visit, int, error) {
	var out page[visit.Visit]
	resp, err := c.http.R().SetContext(ctx).
		SetQueryParam("limit", fmt.Sprint(limit)).
		SetQueryParam("offset", fmt.Sprint(offset)).
		SetResult(&out).
		Get("/api/patients/" + patientID.String() + "/visits")
	if err != nil {
		return nil, 0, err
	}
	if err := c.check(resp); err != nil {
		return nil, 0, err
	}
	return out.Data, out.Total, nil
}

func (c *Client) GetVisit(ctx context.Context, id uuid.UUID) (*visit.Visit, error) {
	var out visit.Visit
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).
		Get("/api/visits/" + id.String())
	if err != nil {
		return nil, err
	}
	if err := c.check(resp); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteVisit(ctx context.Context, id uuid.UUID) error {
	resp, err := c.http.R().SetContext(ctx).Delete("/api/visits/" + id.String())
	if err != nil {
		return err
	}
	return c.check(resp)
}

// DownloadVisitReport fetches the rendered PDF for a visit.
func (c *Client) DownloadVisitReport(ctx context.Context, visitID uuid.UUID) ([]byte, error) {
	resp, err := c.http.R().SetContext(ctx).
		Get("/api/visits/" + visitID.String() + "/report")
	if err != nil {
		return nil, err
	}
	if err := c.check(resp); err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

// --- interventions ---

// CreateIntervention validates the draft locally first, returning the
// first failing rule without touching the network.
func (c *Client) CreateIntervention(ctx context.Context, patientID uuid.UUID, iv *intervention.Intervention) (*intervention.Intervention, error) {
	if err := intervention.Validate(iv); err != nil {
		return nil, err
	}
	var out intervention.Intervention
	resp, err := c.http.R().SetContext(ctx).SetBody(iv).SetResult(&out).
		Post("/api/patients/" + patientID.String() + "/interventions")
	if err != nil {
		return nil, err
	}
	if err := c.check(resp); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListInterventions(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]intervention.Intervention, int, error) {
	var out page[intervention.Intervention]
	resp, err := c.http.R().SetContext(ctx).
		SetQueryParam("limit", fmt.Sprint(limit)).
		SetQueryParam("offset", fmt.Sprint(offset)).
		SetResult(&out).
		Get("/api/patients/" + patientID.String() + "/interventions")
	if err != nil {
		return nil, 0, err
	}
	if err := c.check(resp); err != nil {
		return nil, 0, err
	}
	return out.Data, out.Total, nil
}

// --- unable-to-contact ---

// CreateUnableToContact validates locally first, like CreateIntervention.
func (c *Client) CreateUnableToContact(ctx context.Context, patientID uuid.UUID, rec *unabletocontact.Record) (*unabletocontact.Record, error) {
	if err := unabletocontact.Validate(rec); err != nil {
		return nil, err
	}
	var out unabletocontact.Record
	resp, err := c.http.R().SetContext(ctx).SetBody(rec).SetResult(&out).
		Post("/api/patients/" + patientID.String() + "/unable-to-contact")
	if err != nil {
		return nil, err
	}
	if err := c.check(resp); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListUnableToContact(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]unabletocontact.Record, int, error) {
	var out page[unabletocontact.Record]
	resp, err := c.http.R().SetContext(ctx).
		SetQueryParam("limit", fmt.Sprint(limit)).
		SetQueryParam("offset", fmt.Sprint(offset)).
		SetResult(&out).
		Get("/api/patients/" + patientID.String() + "/unable-to-contact")
	if err != nil {
		return nil, 0, err
	}
	if err := c.check(resp); err != nil {
		return nil, 0, err
	}
	return out.Data, out.Total, nil
}

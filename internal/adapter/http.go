package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/skyfare/bookingd/models"
)

type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpBookingClient struct {
	client *resty.Client

	mu    sync.RWMutex
	token string
}

func NewHTTPBookingClient(cfg HTTPClientConfig) BookingClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpBookingClient{client: cli}
}

func (h *httpBookingClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpBookingClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpBookingClient) Signup(ctx context.Context, username, password string) (models.UserView, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"username": username, "password": password}).
		Post("/api/user/signup")
	if err != nil {
		return models.UserView{}, fmt.Errorf("signup request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserView{}, err
	}

	var envelope struct {
		Data models.UserView `json:"data"`
	}
	if err = json.Unmarshal(resp.Body(), &envelope); err != nil {
		return models.UserView{}, fmt.Errorf("decode signup response: %w", err)
	}

	return envelope.Data, nil
}

func (h *httpBookingClient) Login(ctx context.Context, username, password string) (models.UserView, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"username": username, "password": password}).
		Post("/api/user/login")
	if err != nil {
		return models.UserView{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserView{}, err
	}

	var envelope struct {
		Data models.LoginResponse `json:"data"`
	}
	if err = json.Unmarshal(resp.Body(), &envelope); err != nil {
		return models.UserView{}, fmt.Errorf("decode login response: %w", err)
	}
	if envelope.Data.Token == "" {
		return models.UserView{}, fmt.Errorf("login response carries no token")
	}

	h.SetToken(envelope.Data.Token)
	return envelope.Data.User, nil
}

func (h *httpBookingClient) Book(ctx context.Context, username string, flights []models.FlightBooking) (models.UserView, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string][]models.FlightBooking{"flights": flights}).
		Post(fmt.Sprintf("/api/user/%s/flights", username))
	if err != nil {
		return models.UserView{}, fmt.Errorf("book request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserView{}, err
	}

	var envelope struct {
		Data models.UserView `json:"data"`
	}
	if err = json.Unmarshal(resp.Body(), &envelope); err != nil {
		return models.UserView{}, fmt.Errorf("decode book response: %w", err)
	}

	return envelope.Data, nil
}

func (h *httpBookingClient) Bookings(ctx context.Context, username string) ([]models.FlightBooking, error) {
	resp, err := h.authedRequest(ctx).
		Get(fmt.Sprintf("/api/user/%s/flights", username))
	if err != nil {
		return nil, fmt.Errorf("bookings request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var envelope struct {
		Data []models.FlightBooking `json:"data"`
	}
	if err = json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, fmt.Errorf("decode bookings response: %w", err)
	}

	return envelope.Data, nil
}

func (h *httpBookingClient) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

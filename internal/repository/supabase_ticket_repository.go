package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Night40050/support-copilot/internal/config"
	"github.com/Night40050/support-copilot/internal/domain"
)

const ticketsTable = "tickets"

type supabaseTicketRepository struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewSupabaseTicketRepository updates tickets through the Supabase PostgREST API.
func NewSupabaseTicketRepository(cfg config.SupabaseConfig, client *http.Client) TicketRepository {
	if client == nil {
		client = &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
	}
	return &supabaseTicketRepository{
		client:  client,
		baseURL: strings.TrimRight(cfg.URL, "/"),
		apiKey:  cfg.ServiceRoleKey,
	}
}

type supabaseTicketPatch struct {
	Category         string  `json:"category"`
	Sentiment        string  `json:"sentiment"`
	ConfidenceScore  float64 `json:"confidence_score"`
	Reasoning        string  `json:"reasoning"`
	Processed        bool    `json:"processed"`
	ProcessingTimeMS int64   `json:"processing_time_ms"`
}

func (r *supabaseTicketRepository) UpdateClassification(ctx context.Context, update domain.ClassificationUpdate) error {
	if r.baseURL == "" {
		return ErrStoreNotConfigured
	}
	payload, err := json.Marshal(supabaseTicketPatch{
		Category:         string(update.Classification.Category),
		Sentiment:        string(update.Classification.Sentiment),
		ConfidenceScore:  update.Classification.ConfidenceScore,
		Reasoning:        update.Classification.Reasoning,
		Processed:        true,
		ProcessingTimeMS: update.ProcessingTimeMS,
	})
	if err != nil {
		return fmt.Errorf("marshal patch: %w", err)
	}

	query := url.Values{}
	query.Set("id", "eq."+update.TicketID.String())
	req, err := r.newRequest(ctx, http.MethodPatch, query, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	body, err := r.do(req)
	if err != nil {
		return err
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return fmt.Errorf("decode supabase response: %w", err)
	}
	if len(rows) == 0 {
		return ErrTicketNotFound
	}
	return nil
}

func (r *supabaseTicketRepository) Ping(ctx context.Context) error {
	if r.baseURL == "" {
		return ErrStoreNotConfigured
	}
	query := url.Values{}
	query.Set("select", "id")
	query.Set("limit", "1")
	req, err := r.newRequest(ctx, http.MethodGet, query, nil)
	if err != nil {
		return err
	}
	_, err = r.do(req)
	return err
}

func (r *supabaseTicketRepository) newRequest(ctx context.Context, method string, query url.Values, body io.Reader) (*http.Request, error) {
	endpoint := r.baseURL + "/rest/v1/" + ticketsTable + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("apikey", r.apiKey)
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (r *supabaseTicketRepository) do(req *http.Request) ([]byte, error) {
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("supabase request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read supabase response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("supabase error (status %d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}

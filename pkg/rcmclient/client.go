// Package rcmclient drives the revenue-cycle form flows against the REST API:
// it serialises validated form values into JSON or multipart requests,
// interprets HTTP responses into a uniform submission outcome, and re-fetches
// dependent collections after successful submissions.
package rcmclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nikhiljagtap3989/orbit-hr-suite/pkg/forms"
)

// Encoding selects the request body encoding for a submission.
type Encoding string

const (
	EncodingJSON      Encoding = "json"
	EncodingMultipart Encoding = "multipart"
)

// FailureKind classifies a failed submission.
type FailureKind string

const (
	// FailureSubmission is a server-reported rejection (4xx business rule).
	FailureSubmission FailureKind = "submission"
	// FailureTransport is a connectivity failure, 5xx, or malformed response.
	FailureTransport FailureKind = "transport"
)

const genericConnectivityMessage = "Unable to reach the server. Please try again."

// Outcome is the uniform result of one submit attempt.
type Outcome struct {
	Success    bool
	StatusCode int
	Payload    json.RawMessage // response body on success
	Message    string          // human-readable failure message
	Kind       FailureKind     // set only on failure
}

// Err returns the outcome as an error, or nil for a successful outcome.
func (o Outcome) Err() error {
	if o.Success {
		return nil
	}
	if o.Kind == FailureTransport {
		return &TransportError{StatusCode: o.StatusCode, Message: o.Message}
	}
	return &SubmissionError{StatusCode: o.StatusCode, Message: o.Message}
}

// SubmissionError is a server-reported rejection of a submission.
type SubmissionError struct {
	StatusCode int
	Message    string
}

func (e *SubmissionError) Error() string { return e.Message }

// TransportError is a network-level or server-side failure.
type TransportError struct {
	StatusCode int
	Message    string
}

func (e *TransportError) Error() string { return e.Message }

// Client submits form values to named REST endpoints.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// SetHTTPClient overrides the underlying HTTP client, for tests and custom
// transports.
func (c *Client) SetHTTPClient(h *http.Client) { c.http = h }

// Submit serialises values and POSTs them to endpoint. Any non-2xx status
// and any network failure map to a failed Outcome; Submit never returns a
// transport error to the caller and never retries.
func (c *Client) Submit(ctx context.Context, endpoint string, values forms.Values, encoding Encoding) Outcome {
	var (
		body        io.Reader
		contentType string
		err         error
	)
	switch encoding {
	case EncodingMultipart:
		body, contentType, err = encodeMultipart(values)
	default:
		body, contentType, err = encodeJSON(values)
	}
	if err != nil {
		return Outcome{Message: genericConnectivityMessage, Kind: FailureTransport}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, body)
	if err != nil {
		return Outcome{Message: genericConnectivityMessage, Kind: FailureTransport}
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("submission transport failure")
		return Outcome{Message: genericConnectivityMessage, Kind: FailureTransport}
	}
	defer resp.Body.Close()

	payload, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.logger.Info().Str("endpoint", endpoint).Int("status", resp.StatusCode).Msg("submission accepted")
		return Outcome{Success: true, StatusCode: resp.StatusCode, Payload: payload}
	}

	kind := FailureSubmission
	if resp.StatusCode >= 500 {
		kind = FailureTransport
	}
	msg := extractMessage(payload)
	if msg == "" {
		msg = fmt.Sprintf("Submission failed with status %d", resp.StatusCode)
	}
	c.logger.Warn().Str("endpoint", endpoint).Int("status", resp.StatusCode).Str("message", msg).Msg("submission rejected")
	return Outcome{StatusCode: resp.StatusCode, Message: msg, Kind: kind}
}

// extractMessage pulls the "message" field out of an error response body.
func extractMessage(payload []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return body.Message
}

func encodeJSON(values forms.Values) (io.Reader, string, error) {
	buf, err := json.Marshal(values)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(buf), "application/json", nil
}

// encodeMultipart appends every field as a form-data part; file-valued
// fields become file parts and everything else is written as a string.
func encodeMultipart(values forms.Values) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, val := range values {
		switch v := val.(type) {
		case forms.File:
			if len(v.Content) == 0 {
				continue
			}
			part, err := w.CreateFormFile(name, v.Name)
			if err != nil {
				return nil, "", err
			}
			if _, err := part.Write(v.Content); err != nil {
				return nil, "", err
			}
		case []string:
			for _, item := range v {
				if err := w.WriteField(name, item); err != nil {
					return nil, "", err
				}
			}
		case nil:
			if err := w.WriteField(name, ""); err != nil {
				return nil, "", err
			}
		default:
			if err := w.WriteField(name, fmt.Sprintf("%v", v)); err != nil {
				return nil, "", err
			}
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// Package api is the client for the external study backend: study/report
// reads and multipart uploads. Responses are treated as opaque JSON; only
// the fields the viewer reads are decoded.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// ErrUnauthorized is returned when the backend rejects the session token.
// The stored token has already been cleared when this is returned.
var ErrUnauthorized = errors.New("session expired")

// TokenStore persists the backend session token between runs.
type TokenStore interface {
	Token() string
	SetToken(token string)
	ClearToken()
}

// UploadResult is the backend's response to a completed upload.
type UploadResult struct {
	StudyID   string `json:"study_id"`
	CaseID    string `json:"case_id"`
	Modality  string `json:"modality"`
	NumImages int    `json:"num_images"`
	Message   string `json:"message"`
}

// RemoteImage is one stored image within a remote series.
type RemoteImage struct {
	FilePath string `json:"file_path"`
}

// RemoteSeries groups the images of one remote acquisition.
type RemoteSeries struct {
	Images []RemoteImage `json:"images"`
}

// RemoteStudy is the subset of the backend study schema the viewer reads.
type RemoteStudy struct {
	StudyID     string         `json:"study_id"`
	PatientName string         `json:"patient_name"`
	Status      string         `json:"status"`
	Modality    string         `json:"modality"`
	BodyPart    string         `json:"body_part"`
	Series      []RemoteSeries `json:"series"`
}

// RemoteReport is the subset of the backend report schema the viewer reads.
type RemoteReport struct {
	ID          string   `json:"id"`
	StudyID     string   `json:"study_id"`
	Status      string   `json:"status"`
	Overview    string   `json:"overview"`
	Findings    []string `json:"findings"`
	Impression  string   `json:"impression"`
	PatientName string   `json:"patient_name"`
}

// UploadFile is one file of a multipart upload.
type UploadFile struct {
	Name   string
	Reader io.Reader
}

// Client talks to the study backend.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore

	// onUnauthorized is invoked after a 401 clears the stored token, so the
	// UI can return to the login screen.
	onUnauthorized func()

	log *zap.Logger
}

// NewClient creates a backend client.
func NewClient(baseURL string, tokens TokenStore, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
		log:     log,
	}
}

// OnUnauthorized registers the callback fired when a 401 invalidates the
// session.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// UploadCT uploads CT files for a case.
func (c *Client) UploadCT(ctx context.Context, caseID, bodyPart string, files []UploadFile) (*UploadResult, error) {
	return c.upload(ctx, "/api/v1/upload/ct", caseID, bodyPart, false, files)
}

// UploadUltrasound uploads ultrasound files for a case. isVideo marks cine
// clips rather than still frames.
func (c *Client) UploadUltrasound(ctx context.Context, caseID, bodyPart string, isVideo bool, files []UploadFile) (*UploadResult, error) {
	return c.upload(ctx, "/api/v1/upload/ultrasound", caseID, bodyPart, isVideo, files)
}

func (c *Client) upload(ctx context.Context, path, caseID, bodyPart string, isVideo bool, files []UploadFile) (*UploadResult, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to upload")
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if err := mw.WriteField("case_id", caseID); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if bodyPart != "" {
		if err := mw.WriteField("body_part", bodyPart); err != nil {
			return nil, fmt.Errorf("failed to build upload form: %w", err)
		}
	}
	if isVideo {
		if err := mw.WriteField("is_video", "true"); err != nil {
			return nil, fmt.Errorf("failed to build upload form: %w", err)
		}
	}
	for _, f := range files {
		part, err := mw.CreateFormFile("files", f.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to build upload form: %w", err)
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return nil, fmt.Errorf("failed to read upload file %s: %w", f.Name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return nil, err
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	c.log.Info("upload complete",
		zap.String("study_id", result.StudyID),
		zap.Int("num_images", result.NumImages))
	return &result, nil
}

// GetReport fetches a report by ID.
func (c *Client) GetReport(ctx context.Context, id string) (*RemoteReport, error) {
	var report RemoteReport
	if err := c.getJSON(ctx, "/api/v1/reports/"+id, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// GetStudy fetches a study by ID.
func (c *Client) GetStudy(ctx context.Context, id string) (*RemoteStudy, error) {
	var study RemoteStudy
	if err := c.getJSON(ctx, "/api/v1/studies/"+id, &study); err != nil {
		return nil, err
	}
	return &study, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.tokens == nil {
		return
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// checkStatus maps non-2xx responses to errors. A 401 clears the stored
// session token and signals re-login before returning ErrUnauthorized.
func (c *Client) checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		if c.tokens != nil {
			c.tokens.ClearToken()
		}
		c.log.Warn("session token rejected, clearing")
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("not found: %s", resp.Request.URL.Path)
	default:
		return fmt.Errorf("backend returned %d", resp.StatusCode)
	}
}

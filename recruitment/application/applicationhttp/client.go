// Package applicationhttp implements the application service against the
// REST backend.
package applicationhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Abraxas-365/hireflow/pkg/errx"
	"github.com/Abraxas-365/hireflow/pkg/filex"
	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/Abraxas-365/hireflow/recruitment/application"
)

type Config struct {
	BaseURL   string
	Timeout   time.Duration
	Retries   int
	RateLimit float64
	// Transport overrides http.DefaultTransport, mostly for tests
	Transport http.RoundTripper
}

// Client implements application.Service over HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: newTransport(cfg.Transport, cfg.Retries, cfg.RateLimit),
		},
	}
}

var _ application.Service = (*Client)(nil)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// mapError turns a non-2xx response into NOT_FOUND or TRANSPORT_FAILED
func mapError(status int, payload []byte, fallback string) error {
	message := fallback
	var parsed errorResponse
	if err := json.Unmarshal(payload, &parsed); err == nil {
		if parsed.Message != "" {
			message = parsed.Message
		} else if parsed.Error != "" {
			message = parsed.Error
		}
	}

	if status == http.StatusNotFound {
		return application.ErrApplicationNotFound().
			WithMessage(message).
			WithDetail("status", status)
	}
	return application.ErrTransportFailed().
		WithMessage(message).
		WithDetail("status", status)
}

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do sends req and returns the body of a 2xx response
func (c *Client) do(req *http.Request, fallback string) ([]byte, http.Header, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, nil, ctxErr
		}
		return nil, nil, application.ErrTransportFailed().WithMessage(fallback).WithCause(err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, application.ErrTransportFailed().WithMessage(fallback).WithCause(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, mapError(resp.StatusCode, payload, fallback)
	}
	return payload, resp.Header, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body any, out any, fallback string) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errx.Wrap(err, "encode request", errx.TypeInternal)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), reader)
	if err != nil {
		return errx.Wrap(err, "create request", errx.TypeInternal)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	payload, _, err := c.do(req, fallback)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return application.ErrTransportFailed().WithMessage(fallback).WithCause(err)
	}
	return nil
}

func (c *Client) doBlob(ctx context.Context, path string, query url.Values, fallback string) (*application.Blob, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path, query), nil)
	if err != nil {
		return nil, errx.Wrap(err, "create request", errx.TypeInternal)
	}

	payload, header, err := c.do(req, fallback)
	if err != nil {
		return nil, err
	}

	blob := &application.Blob{ContentType: header.Get("Content-Type"), Data: payload}
	if ct, _, err := mime.ParseMediaType(blob.ContentType); err == nil {
		blob.ContentType = ct
	}
	if _, params, err := mime.ParseMediaType(header.Get("Content-Disposition")); err == nil {
		blob.FileName = params["filename"]
	}
	return blob, nil
}

// multipartBody encodes fields in order, skipping empty values, then the file part
func multipartBody(fields [][2]string, fileField string, file *filex.File) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}

	if file != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, fileField, escapeQuotes(file.Name)))
		contentType := file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }

func (c *Client) postMultipart(ctx context.Context, path string, body *bytes.Buffer, contentType string, out any, fallback string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path, nil), body)
	if err != nil {
		return errx.Wrap(err, "create request", errx.TypeInternal)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	payload, _, err := c.do(req, fallback)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return application.ErrTransportFailed().WithMessage(fallback).WithCause(err)
	}
	return nil
}

// ============================================================================
// Service Implementation
// ============================================================================

func (c *Client) SubmitApplication(ctx context.Context, req application.CreateApplicationRequest) (*application.Application, error) {
	body, contentType, err := multipartBody([][2]string{
		{"fullName", req.FullName},
		{"email", req.Email},
		{"phoneNumber", req.PhoneNumber},
		{"linkedinProfile", req.LinkedinProfile},
		{"portfolioWebsite", req.PortfolioWebsite},
		{"jobPosition", req.JobPosition},
		{"additionalNotes", req.AdditionalNotes},
	}, "resumeFile", req.Resume)
	if err != nil {
		return nil, errx.Wrap(err, "encode application form", errx.TypeInternal)
	}

	var app application.Application
	if err := c.postMultipart(ctx, "/applications", body, contentType, &app, "Failed to submit application"); err != nil {
		return nil, err
	}
	return &app, nil
}

func (c *Client) GetApplications(ctx context.Context, filters application.Filters, page, pageSize int) (*application.ListResponse, error) {
	opts := kernel.PaginationOptions{Page: page, PageSize: pageSize}.Normalize()
	query := filters.Values()
	query.Set("page", strconv.Itoa(opts.Page))
	query.Set("pageSize", strconv.Itoa(opts.PageSize))

	var resp application.ListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/admin/applications", query, nil, &resp, "Failed to fetch applications"); err != nil {
		return nil, err
	}
	if resp.Applications == nil {
		resp.Applications = []application.AdminApplication{}
	}
	return &resp, nil
}

func (c *Client) GetApplicationByID(ctx context.Context, id kernel.ApplicationID) (*application.AdminApplication, error) {
	var app application.AdminApplication
	if err := c.doJSON(ctx, http.MethodGet, "/admin/applications/"+url.PathEscape(id.String()), nil, nil, &app, "Failed to fetch application"); err != nil {
		return nil, err
	}
	return &app, nil
}

func (c *Client) UpdateApplicationStatus(ctx context.Context, id kernel.ApplicationID, req application.UpdateStatusRequest) (*application.AdminApplication, error) {
	var app application.AdminApplication
	path := "/admin/applications/" + url.PathEscape(id.String()) + "/status"
	if err := c.doJSON(ctx, http.MethodPut, path, nil, req, &app, "Failed to update application status"); err != nil {
		return nil, err
	}
	return &app, nil
}

func (c *Client) DeleteApplication(ctx context.Context, id kernel.ApplicationID) error {
	return c.doJSON(ctx, http.MethodDelete, "/admin/applications/"+url.PathEscape(id.String()), nil, nil, nil, "Failed to delete application")
}

func (c *Client) DownloadResume(ctx context.Context, id kernel.ApplicationID) (*application.Blob, error) {
	return c.doBlob(ctx, "/files/resume/"+url.PathEscape(id.String()), nil, "Failed to download resume")
}

func (c *Client) ExportApplications(ctx context.Context, filters application.Filters) (*application.Blob, error) {
	blob, err := c.doBlob(ctx, "/admin/export", filters.Values(), "Failed to export applications")
	if err != nil {
		return nil, err
	}
	if blob.FileName == "" {
		blob.FileName = application.CSVFileName
	}
	return blob, nil
}

func (c *Client) GetJobPositions(ctx context.Context) ([]string, error) {
	var positions []string
	if err := c.doJSON(ctx, http.MethodGet, "/job-positions", nil, nil, &positions, "Failed to fetch job positions"); err != nil {
		return nil, err
	}
	return positions, nil
}

func (c *Client) UploadFile(ctx context.Context, file *filex.File) (*application.FileUploadResponse, error) {
	if file == nil {
		return nil, application.ErrInvalidRequest().WithDetail("file", "missing")
	}

	body, contentType, err := multipartBody(nil, "file", file)
	if err != nil {
		return nil, errx.Wrap(err, "encode upload", errx.TypeInternal)
	}

	var resp application.FileUploadResponse
	if err := c.postMultipart(ctx, "/upload", body, contentType, &resp, "Failed to upload file"); err != nil {
		return nil, err
	}
	return &resp, nil
}

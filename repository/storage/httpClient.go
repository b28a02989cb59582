package storagerepo

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"equiprental/util/apperr"
	"equiprental/util/httpx"
)

type httpRepo struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTP builds a client for a Supabase-style storage API:
// POST {base}/storage/v1/object/{bucket}/{object} stores the body,
// GET  {base}/storage/v1/object/public/{bucket}/{object} serves it publicly.
func NewHTTP(baseURL, apiKey string) Repo {
	return &httpRepo{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  httpx.Client(),
	}
}

func (r *httpRepo) Upload(ctx context.Context, req UploadReq) (string, error) {
	objPath := url.PathEscape(req.Bucket) + "/" + url.PathEscape(req.Object)
	endpoint := r.baseURL + "/storage/v1/object/" + objPath

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(req.Data))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+r.apiKey)
	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return "", apperr.Wrap(apperr.KindPlatform, "STORAGE_UNREACHABLE", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", apperr.New(apperr.KindPlatform, "STORAGE_REJECTED",
			fmt.Sprintf("storage upload failed: %s", resp.Status))
	}

	return r.baseURL + "/storage/v1/object/public/" + objPath, nil
}

package greenfield

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// NetworkTestnet and NetworkMainnet name the archive networks recorded on
// stored envelopes.
const (
	NetworkTestnet = "greenfield-testnet"
	NetworkMainnet = "greenfield-mainnet"
)

// BundleOption configures a BundleClient.
type BundleOption func(*BundleClient)

// WithHTTPClient sets a custom HTTP client for bundle service requests.
func WithHTTPClient(hc *http.Client) BundleOption {
	return func(c *BundleClient) { c.httpClient = hc }
}

// WithBaseURL overrides the bundle service endpoint.
func WithBaseURL(url string) BundleOption {
	return func(c *BundleClient) { c.baseURL = url }
}

// BundleClient talks to the NodeReal Bundle Service. Objects for one UTC day
// share a bundle, created lazily on first upload and reused after that.
type BundleClient struct {
	baseURL    string
	bucket     string
	network    string
	httpClient *http.Client
	now        func() time.Time

	mu            sync.Mutex
	currentBundle string
	bundleCount   int
}

// NewBundleClient builds a client for the given bucket. network selects the
// endpoint: "mainnet" uses the mainnet bundle service, anything else testnet.
func NewBundleClient(bucket, network string, opts ...BundleOption) *BundleClient {
	c := &BundleClient{
		baseURL:    TestnetBundleURL,
		bucket:     bucket,
		network:    NetworkTestnet,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		now:        time.Now,
	}
	if network == "mainnet" {
		c.baseURL = MainnetBundleURL
		c.network = NetworkMainnet
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StoreRecord wraps data in the record envelope and uploads it to the day's
// bundle. A failed upload returns an upload_failed result with the content
// hash retained, never an error that aborts the caller.
func (c *BundleClient) StoreRecord(ctx context.Context, recordType, patientID string, data interface{}) (*StoreResult, error) {
	now := c.now().UTC()
	object := objectName(patientID, recordType, now)

	content, err := marshalEnvelope(recordType, patientID, c.network, data, now)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	hash := contentHash(content)

	bundle, err := c.ensureBundle(ctx, now)
	if err == nil {
		err = c.uploadObject(ctx, bundle, object, content)
	}
	if err != nil {
		log.Warn().Err(err).Str("object", object).Msg("greenfield upload failed, record hashed locally")
		return &StoreResult{
			ContentHash: hash,
			Bucket:      c.bucket,
			Object:      object,
			Status:      StatusUploadFailed,
			SizeBytes:   len(content),
			Network:     c.network,
			Timestamp:   now,
			Note:        "upload failed, content hashed locally: " + err.Error(),
		}, nil
	}

	return &StoreResult{
		CID:         CID(c.bucket, bundle, object),
		ContentHash: hash,
		Bucket:      c.bucket,
		Bundle:      bundle,
		Object:      object,
		Status:      StatusStored,
		SizeBytes:   len(content),
		Network:     c.network,
		Timestamp:   now,
	}, nil
}

// Retrieve downloads an archived record by its gf:// identifier.
func (c *BundleClient) Retrieve(ctx context.Context, cid string) (map[string]interface{}, error) {
	bucket, bundle, object, err := ParseCID(cid)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/view/%s/%s/%s", c.baseURL, bucket, bundle, object)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bundle service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bundle service: status %d", resp.StatusCode)
	}

	var record map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return record, nil
}

// Stats reports the bundle service connection and bundles created by this
// process.
func (c *BundleClient) Stats(_ context.Context) (*StorageStats, error) {
	c.mu.Lock()
	bundle := c.currentBundle
	bundles := c.bundleCount
	c.mu.Unlock()

	return &StorageStats{
		Mode:          "bundle_service",
		Network:       c.network,
		Bucket:        c.bucket,
		Endpoint:      c.baseURL,
		Bundles:       bundles,
		CurrentBundle: bundle,
		Status:        "connected",
	}, nil
}

// FinalizeBundle seals a bundle on Greenfield. Pass the empty string to
// finalize the current bundle.
func (c *BundleClient) FinalizeBundle(ctx context.Context, bundle string) error {
	c.mu.Lock()
	if bundle == "" {
		bundle = c.currentBundle
	}
	c.mu.Unlock()

	if bundle == "" {
		return fmt.Errorf("no bundle to finalize")
	}
	if err := c.postJSON(ctx, "/v1/finalizeBundle", map[string]string{
		"bucketName": c.bucket,
		"bundleName": bundle,
	}); err != nil {
		return err
	}

	c.mu.Lock()
	if c.currentBundle == bundle {
		c.currentBundle = ""
	}
	c.mu.Unlock()
	return nil
}

// QueryBundle fetches bundle metadata from the service.
func (c *BundleClient) QueryBundle(ctx context.Context, bundle string) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/v1/queryBundle/%s/%s", c.baseURL, c.bucket, bundle)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bundle service: %w", err)
	}
	defer resp.Body.Close()

	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode bundle info: %w", err)
	}
	return out, nil
}

// BundlerAccount returns the bundler account that must be granted bucket
// permissions for the given user address.
func (c *BundleClient) BundlerAccount(ctx context.Context, address string) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/v1/bundlerAccount/%s", c.baseURL, address)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bundle service: %w", err)
	}
	defer resp.Body.Close()

	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode bundler account: %w", err)
	}
	return out, nil
}

// ensureBundle creates the day's bundle on first use and reuses it for the
// rest of the day.
func (c *BundleClient) ensureBundle(ctx context.Context, now time.Time) (string, error) {
	name := bundleName(now)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.currentBundle == name {
		return name, nil
	}

	if err := c.postJSON(ctx, "/v1/createBundle", map[string]string{
		"bucketName": c.bucket,
		"bundleName": name,
	}); err != nil {
		return "", err
	}
	c.currentBundle = name
	c.bundleCount++
	log.Info().Str("bundle", name).Msg("created greenfield bundle")
	return name, nil
}

func (c *BundleClient) uploadObject(ctx context.Context, bundle, object string, content []byte) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("bucketName", c.bucket)
	_ = w.WriteField("bundleName", bundle)
	_ = w.WriteField("fileName", object)
	_ = w.WriteField("contentType", "application/json")
	part, err := w.CreateFormFile("file", object)
	if err != nil {
		return err
	}
	if _, err := part.Write(content); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/uploadObject", &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("bundle service: %w", err)
	}
	defer resp.Body.Close()
	return decodeServiceError(resp)
}

func (c *BundleClient) postJSON(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("bundle service: %w", err)
	}
	defer resp.Body.Close()
	return decodeServiceError(resp)
}

// decodeServiceError surfaces failures the bundle service reports either via
// HTTP status or via an error field in a 200 body.
func decodeServiceError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bundle service: status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var svcErr struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &svcErr); err == nil && svcErr.Error != "" {
		return fmt.Errorf("bundle service: %s", svcErr.Error)
	}
	return nil
}

// Package greenfield archives medical records on BNB Greenfield through the
// NodeReal Bundle Service. It defines the Store interface, the HTTP client
// for the bundle API, an in-memory fallback used when no bucket is
// configured, and Echo handlers for the storage endpoints.
package greenfield

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// NodeReal Bundle Service endpoints.
const (
	TestnetBundleURL = "https://gnfd-testnet-bundle.nodereal.io"
	MainnetBundleURL = "https://gnfd-mainnet-bundle.nodereal.io"
)

// DefaultBucket is used when no bucket name is configured.
const DefaultBucket = "omnihealth-medical-records"

// Record types accepted by StoreRecord.
const (
	RecordCriticalAlert = "critical_alert"
	RecordDietPlan      = "diet_plan"
	RecordDailyProgress = "daily_progress"
)

// Storage result statuses.
const (
	StatusStored        = "stored"
	StatusStoredLocally = "stored_locally"
	StatusUploadFailed  = "upload_failed"
)

// SchemaVersion is stamped on every archived record envelope.
const SchemaVersion = "1.0"

var (
	ErrNotFound = errors.New("record not found")
	ErrBadCID   = errors.New("malformed greenfield cid")
)

// StoreResult describes where an archived record ended up. An upload_failed
// result still carries the content hash so the record stays verifiable.
type StoreResult struct {
	CID         string    `json:"greenfield_cid,omitempty"`
	ContentHash string    `json:"content_hash"`
	Bucket      string    `json:"bucket"`
	Bundle      string    `json:"bundle,omitempty"`
	Object      string    `json:"object"`
	Status      string    `json:"status"`
	SizeBytes   int       `json:"size_bytes"`
	Network     string    `json:"network"`
	Timestamp   time.Time `json:"timestamp"`
	Note        string    `json:"note,omitempty"`
}

// StorageStats summarizes the archive backend.
type StorageStats struct {
	Mode          string `json:"mode"`
	Network       string `json:"network"`
	Bucket        string `json:"bucket"`
	Endpoint      string `json:"endpoint,omitempty"`
	TotalObjects  int    `json:"total_objects"`
	TotalBytes    int64  `json:"total_bytes,omitempty"`
	Bundles       int    `json:"bundles"`
	CurrentBundle string `json:"current_bundle,omitempty"`
	Status        string `json:"status"`
}

// Store is the contract both archive backends satisfy. StoreRecord never
// returns an error for a failed upload; it degrades to an upload_failed
// result so callers are not blocked on storage availability.
type Store interface {
	StoreRecord(ctx context.Context, recordType, patientID string, data interface{}) (*StoreResult, error)
	Retrieve(ctx context.Context, cid string) (map[string]interface{}, error)
	Stats(ctx context.Context) (*StorageStats, error)
}

// New picks the archive backend. A configured bucket name enables the Bundle
// Service client; otherwise records stay in process memory.
func New(bucket, network, baseURL string) Store {
	if bucket == "" {
		log.Info().Msg("greenfield bucket not configured, archiving records in memory")
		return NewLocalStore()
	}
	var opts []BundleOption
	if baseURL != "" {
		opts = append(opts, WithBaseURL(baseURL))
	}
	c := NewBundleClient(bucket, network, opts...)
	log.Info().Str("bucket", bucket).Str("endpoint", c.baseURL).Msg("greenfield bundle service enabled")
	return c
}

// envelope wraps every archived record with provenance metadata.
type envelope struct {
	SchemaVersion string      `json:"schema_version"`
	RecordType    string      `json:"record_type"`
	PatientID     string      `json:"patient_id"`
	Timestamp     string      `json:"timestamp"`
	Network       string      `json:"network"`
	Data          interface{} `json:"data"`
}

func marshalEnvelope(recordType, patientID, network string, data interface{}, now time.Time) ([]byte, error) {
	env := envelope{
		SchemaVersion: SchemaVersion,
		RecordType:    recordType,
		PatientID:     patientID,
		Timestamp:     now.Format(time.RFC3339),
		Network:       network,
		Data:          data,
	}
	return json.MarshalIndent(env, "", "  ")
}

// objectName builds the object path: {patient_id}/{record_type}/{stamp}.json.
func objectName(patientID, recordType string, now time.Time) string {
	return fmt.Sprintf("%s/%s/%s.json", patientID, recordType, now.Format("20060102-150405"))
}

// bundleName returns the day's bundle, one per UTC date.
func bundleName(now time.Time) string {
	return "medical-records-" + now.Format("20060102")
}

func contentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// CID builds the gf:// identifier for an object.
func CID(bucket, bundle, object string) string {
	return "gf://" + bucket + "/" + bundle + "/" + object
}

// ParseCID splits a gf:// or gf-local:// identifier into its bucket, bundle,
// and object components. The object component may itself contain slashes.
func ParseCID(cid string) (bucket, bundle, object string, err error) {
	rest := strings.TrimPrefix(cid, "gf-local://")
	if rest == cid {
		rest = strings.TrimPrefix(cid, "gf://")
		if rest == cid {
			return "", "", "", ErrBadCID
		}
	}
	parts := strings.SplitN(rest, "/", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", ErrBadCID
	}
	return parts[0], parts[1], parts[2], nil
}

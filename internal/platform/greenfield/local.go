package greenfield

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// NetworkLocal marks records that never left the process.
const NetworkLocal = "local-simulated"

type localObject struct {
	content  []byte
	hash     string
	storedAt time.Time
}

// LocalStore is the in-memory fallback archive. It mirrors the bundle layout
// so CIDs stay structurally identical to real Greenfield ones, under the
// gf-local:// scheme.
type LocalStore struct {
	bucket string
	now    func() time.Time

	mu      sync.RWMutex
	objects map[string]localObject
	bundles map[string][]string
}

// NewLocalStore returns an empty in-memory archive.
func NewLocalStore() *LocalStore {
	return &LocalStore{
		bucket:  DefaultBucket,
		now:     time.Now,
		objects: make(map[string]localObject),
		bundles: make(map[string][]string),
	}
}

// StoreRecord keeps the enveloped record in process memory.
func (s *LocalStore) StoreRecord(_ context.Context, recordType, patientID string, data interface{}) (*StoreResult, error) {
	now := s.now().UTC()
	object := objectName(patientID, recordType, now)
	bundle := bundleName(now)

	content, err := marshalEnvelope(recordType, patientID, NetworkLocal, data, now)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	hash := contentHash(content)
	key := s.bucket + "/" + bundle + "/" + object

	s.mu.Lock()
	s.bundles[bundle] = append(s.bundles[bundle], object)
	s.objects[key] = localObject{content: content, hash: hash, storedAt: now}
	s.mu.Unlock()

	return &StoreResult{
		CID:         "gf-local://" + key,
		ContentHash: hash,
		Bucket:      s.bucket,
		Bundle:      bundle,
		Object:      object,
		Status:      StatusStoredLocally,
		SizeBytes:   len(content),
		Network:     NetworkLocal,
		Timestamp:   now,
		Note:        "stored in process memory, set GREENFIELD_BUCKET_NAME for real storage",
	}, nil
}

// Retrieve returns an archived record by its gf-local:// identifier.
func (s *LocalStore) Retrieve(_ context.Context, cid string) (map[string]interface{}, error) {
	bucket, bundle, object, err := ParseCID(cid)
	if err != nil {
		return nil, err
	}
	key := bucket + "/" + bundle + "/" + object

	s.mu.RLock()
	obj, ok := s.objects[key]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	var record map[string]interface{}
	if err := json.Unmarshal(obj.content, &record); err != nil {
		return nil, fmt.Errorf("decode stored record: %w", err)
	}
	return record, nil
}

// Stats reports object and bundle counts for the in-memory archive.
func (s *LocalStore) Stats(_ context.Context) (*StorageStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var totalBytes int64
	for _, obj := range s.objects {
		totalBytes += int64(len(obj.content))
	}

	return &StorageStats{
		Mode:         "local",
		Network:      NetworkLocal,
		Bucket:       s.bucket,
		TotalObjects: len(s.objects),
		TotalBytes:   totalBytes,
		Bundles:      len(s.bundles),
		Status:       "local_mode",
	}, nil
}

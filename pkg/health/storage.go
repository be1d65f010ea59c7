package health

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/storage"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/types"
)

// ProbeKey is written and removed by StorageChecker
const ProbeKey = "crm_health_probe"

// StorageChecker round-trips a probe value through the KV
type StorageChecker struct {
	KV  storage.KV
	Now func() time.Time
}

// NewStorageChecker creates a storage health checker
func NewStorageChecker(kv storage.KV) *StorageChecker {
	return &StorageChecker{KV: kv, Now: time.Now}
}

// Check writes, reads back and removes ProbeKey
func (c *StorageChecker) Check(ctx context.Context) Result {
	start := time.Now()
	probe := []byte(fmt.Sprintf("%d", c.Now().UnixNano()))

	if err := c.KV.Set(ctx, ProbeKey, probe); err != nil {
		return result(start, false, fmt.Sprintf("write failed: %v", err))
	}
	got, err := c.KV.Get(ctx, ProbeKey)
	if err != nil {
		return result(start, false, fmt.Sprintf("read failed: %v", err))
	}
	if !bytes.Equal(got, probe) {
		return result(start, false, "probe value mismatch")
	}
	if err := c.KV.Remove(ctx, ProbeKey); err != nil {
		return result(start, false, fmt.Sprintf("remove failed: %v", err))
	}
	return result(start, true, "storage round trip ok")
}

// Type returns the health check type
func (c *StorageChecker) Type() CheckType {
	return CheckTypeStorage
}

// QuotaChecker fails when a quota store is fuller than Threshold (0..1)
type QuotaChecker struct {
	Store     *storage.QuotaStore
	Threshold float64
}

// NewQuotaChecker creates a quota checker with a 90% threshold
func NewQuotaChecker(q *storage.QuotaStore) *QuotaChecker {
	return &QuotaChecker{Store: q, Threshold: 0.9}
}

// Check compares usage against the threshold
func (c *QuotaChecker) Check(ctx context.Context) Result {
	start := time.Now()
	used, err := c.Store.Used(ctx)
	if err != nil {
		return result(start, false, fmt.Sprintf("usage unavailable: %v", err))
	}
	ratio := float64(used) / float64(c.Store.Limit())
	msg := fmt.Sprintf("%d of %d bytes used (%.0f%%)", used, c.Store.Limit(), ratio*100)
	return result(start, ratio <= c.Threshold, msg)
}

// Type returns the health check type
func (c *QuotaChecker) Type() CheckType {
	return CheckTypeQuota
}

// SeedChecker reports whether the store carries the current data version
type SeedChecker struct {
	KV storage.KV
}

// Check reads the initialization stamps
func (c *SeedChecker) Check(ctx context.Context) Result {
	start := time.Now()
	if !storage.GetJSON(ctx, c.KV, types.KeyInitialized, false) {
		return result(start, false, "not initialized")
	}
	version := storage.GetJSON(ctx, c.KV, types.KeyDataVersion, "")
	if version != types.CurrentDataVersion {
		return result(start, false, fmt.Sprintf("data version %q, want %q", version, types.CurrentDataVersion))
	}
	return result(start, true, "data version "+version)
}

// Type returns the health check type
func (c *SeedChecker) Type() CheckType {
	return CheckTypeSeed
}

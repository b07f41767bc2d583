package config

import (
	"fmt"

	"github.com/spotshell/spotshell/internal/kvstore"
)

// StorageQuota is the fixed storage limit the health check reports against.
const StorageQuota = 5 * 1024 * 1024 // 5 MiB

// healthWarnThreshold is the usage percentage above which storage is
// reported unhealthy.
const healthWarnThreshold = 90.0

// StorageHealth reports persisted-configuration storage usage. Available is
// false when no persistent store is configured; that is a reportable state,
// not an error.
type StorageHealth struct {
	Available       bool    `json:"available"`
	Healthy         bool    `json:"healthy"`
	CurrentSize     int     `json:"currentSize"`
	Quota           int     `json:"quota"`
	UsagePercentage float64 `json:"usagePercentage"`
	Message         string  `json:"message"`
}

// CheckStorageHealth sums the byte length of every persisted key and value
// and compares the total against the quota.
func CheckStorageHealth(kv kvstore.Store) StorageHealth {
	if kv == nil {
		return StorageHealth{
			Available: false,
			Healthy:   false,
			Quota:     StorageQuota,
			Message:   "persistent storage is not available in this environment",
		}
	}

	keys, err := kv.Keys()
	if err != nil {
		return StorageHealth{
			Available: true,
			Healthy:   false,
			Quota:     StorageQuota,
			Message:   fmt.Sprintf("failed to enumerate storage keys: %v", err),
		}
	}

	size := 0
	for _, k := range keys {
		v, ok, err := kv.Get(k)
		if err != nil || !ok {
			continue
		}
		size += len(k) + len(v)
	}

	usage := float64(size) / float64(StorageQuota) * 100
	h := StorageHealth{
		Available:       true,
		Healthy:         usage < healthWarnThreshold,
		CurrentSize:     size,
		Quota:           StorageQuota,
		UsagePercentage: usage,
	}
	if h.Healthy {
		h.Message = fmt.Sprintf("storage usage %.1f%% of %d bytes", usage, StorageQuota)
	} else {
		h.Message = fmt.Sprintf("storage usage %.1f%% exceeds the %.0f%% warning threshold", usage, healthWarnThreshold)
	}
	return h
}

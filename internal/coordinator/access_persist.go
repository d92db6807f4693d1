package coordinator

import (
	"encoding/json"
	"os"
)

// accessRecord is the persisted trace of a suite's last residency. It lets
// LRU ordering and per-suite status survive restarts.
type accessRecord struct {
	LastAccessedUnix int64 `json:"last_accessed_unix"`
	TotalMB          int   `json:"total_mb"`
}

func (c *Coordinator) loadAccessMetadata() {
	if c.accessMetaPath == "" {
		c.accessMeta = make(map[string]accessRecord)
		return
	}
	c.accessMeta = make(map[string]accessRecord)
	f, err := os.Open(c.accessMetaPath)
	if err != nil {
		return
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	var data map[string]accessRecord
	if err := dec.Decode(&data); err == nil && data != nil {
		c.accessMeta = data
	}
}

// saveAccessMetadata writes the access map to disk. Callers hold c.mu.
func (c *Coordinator) saveAccessMetadata() {
	if c.accessMetaPath == "" {
		return
	}
	b, err := json.MarshalIndent(c.accessMeta, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(c.accessMetaPath, b, 0o644)
}

// noteAccess records the latest residency trace for name. Callers hold c.mu.
func (c *Coordinator) noteAccess(name string, lastUnix int64, totalMB int) {
	c.accessMeta[name] = accessRecord{LastAccessedUnix: lastUnix, TotalMB: totalMB}
}

package vendors

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/pkg/enums"
)

const schemaVersion = 1

// snapshot is the persisted layout of the whole vendor record set. Blobs
// written before versioning are a bare JSON array of vendors.
type snapshot struct {
	SchemaVersion int      `json:"schema_version"`
	Vendors       []Vendor `json:"vendors"`
}

func encodeVendors(vendors []Vendor) ([]byte, error) {
	if vendors == nil {
		vendors = []Vendor{}
	}
	return json.Marshal(snapshot{SchemaVersion: schemaVersion, Vendors: vendors})
}

func decodeVendors(blob []byte) ([]Vendor, error) {
	trimmed := bytes.TrimSpace(blob)
	if len(trimmed) == 0 {
		return nil, errors.New("empty vendor snapshot")
	}

	if trimmed[0] == '[' {
		var legacy []Vendor
		if err := json.Unmarshal(trimmed, &legacy); err != nil {
			return nil, fmt.Errorf("decoding legacy vendor snapshot: %w", err)
		}
		return migrate(legacy), nil
	}

	var snap snapshot
	if err := json.Unmarshal(trimmed, &snap); err != nil {
		return nil, fmt.Errorf("decoding vendor snapshot: %w", err)
	}
	switch {
	case snap.SchemaVersion == 0:
		return nil, errors.New("vendor snapshot has no schema version")
	case snap.SchemaVersion > schemaVersion:
		return nil, fmt.Errorf("vendor snapshot schema %d is newer than supported %d", snap.SchemaVersion, schemaVersion)
	}
	return migrate(snap.Vendors), nil
}

// migrate fills fields that older records may lack.
func migrate(vendors []Vendor) []Vendor {
	out := make([]Vendor, 0, len(vendors))
	for _, v := range vendors {
		if v.Status == "" {
			v.Status = enums.VendorStatusActive
		}
		if v.Products == nil {
			v.Products = []catalog.Item{}
		}
		out = append(out, v)
	}
	return out
}

package provider

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// namespaceModelIdentity is the fixed UUID namespace for generating
// deterministic model identities from document paths, derived from the
// canonical string "vkm-labs.dev/model-identity/v1" under the standard URL
// namespace. Computed once at package load.
var namespaceModelIdentity = uuid.NewSHA1(uuid.NameSpaceURL, []byte("vkm-labs.dev/model-identity/v1"))

// ModelID creates a deterministic UUID v5 from a normalized document path.
// The same path always yields the same identity across runs and machines,
// which keeps logs and build records correlatable.
//
// Normalization: forward slashes, lowercase, no leading "./".
func ModelID(path string) uuid.UUID {
	normalized := strings.ToLower(filepath.ToSlash(path))
	normalized = strings.TrimPrefix(normalized, "./")
	return uuid.NewSHA1(namespaceModelIdentity, []byte(normalized))
}

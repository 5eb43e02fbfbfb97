// Package keys derives object store paths for digest records and cache
// entries. Derivation is pure string composition: no I/O, no failure modes.
package keys

import (
	"fmt"
	"net/url"

	"newsagg-backend/domain/artifact"
)

// suffix signals the stored representation at the store level.
const suffix = ".json"

// escape keeps caller-supplied identifiers from breaking the path
// structure, so distinct inputs can never collide.
func escape(component string) string {
	return url.PathEscape(component)
}

// DigestKey returns the storage path for one digest record:
// users/{userId}/digests/{digestId}.json
func DigestKey(userID, digestID string) string {
	return fmt.Sprintf("users/%s/digests/%s%s", escape(userID), escape(digestID), suffix)
}

// DigestPrefix returns the listing prefix covering all of a user's digests.
func DigestPrefix(userID string) string {
	return fmt.Sprintf("users/%s/digests/", escape(userID))
}

// CacheKey returns the storage path for one cache entry:
// cache/{artifactType}/{hash}.json
func CacheKey(artifactType artifact.Type, hash string) string {
	return fmt.Sprintf("cache/%s/%s%s", escape(string(artifactType)), escape(hash), suffix)
}

// CachePrefix returns the listing prefix covering one artifact namespace.
func CachePrefix(artifactType artifact.Type) string {
	return fmt.Sprintf("cache/%s/", escape(string(artifactType)))
}

// Package metadata exposes every datum the version strategies and external
// callers consume as a closed, lazily computed key/value set.
package metadata

// Key names one entry of the metadata set. The enumeration is closed;
// strategies, scripts and external callers query only these keys.
type Key string

const (
	BaseVersion      Key = "BASE_VERSION"
	BaseTag          Key = "BASE_TAG"
	BaseTagType      Key = "BASE_TAG_TYPE"
	BaseCommitOnHead Key = "BASE_COMMIT_ON_HEAD"

	CurrentVersionMajor Key = "CURRENT_VERSION_MAJOR"
	CurrentVersionMinor Key = "CURRENT_VERSION_MINOR"
	CurrentVersionPatch Key = "CURRENT_VERSION_PATCH"

	NextMajorVersion Key = "NEXT_MAJOR_VERSION"
	NextMinorVersion Key = "NEXT_MINOR_VERSION"
	NextPatchVersion Key = "NEXT_PATCH_VERSION"

	CommitDistance Key = "COMMIT_DISTANCE"
	Dirty          Key = "DIRTY"
	DirtyText      Key = "DIRTY_TEXT"

	BranchName          Key = "BRANCH_NAME"
	QualifiedBranchName Key = "QUALIFIED_BRANCH_NAME"
	DetachedHead        Key = "DETACHED_HEAD"

	GitSha1Full        Key = "GIT_SHA1_FULL"
	GitSha1Abbreviated Key = "GIT_SHA1_8"
	CommitTimestamp    Key = "COMMIT_TIMESTAMP"
	CommitISOTimestamp Key = "COMMIT_ISO_TIMESTAMP"

	HeadTags            Key = "HEAD_TAGS"
	HeadAnnotatedTags   Key = "HEAD_ANNOTATED_TAGS"
	HeadLightweightTags Key = "HEAD_LIGHTWEIGHT_TAGS"

	CalculatedVersion Key = "CALCULATED_VERSION"
)

// allKeys lists every key in a stable output order.
var allKeys = []Key{
	CalculatedVersion,
	BaseVersion,
	BaseTag,
	BaseTagType,
	BaseCommitOnHead,
	CurrentVersionMajor,
	CurrentVersionMinor,
	CurrentVersionPatch,
	NextMajorVersion,
	NextMinorVersion,
	NextPatchVersion,
	CommitDistance,
	Dirty,
	DirtyText,
	BranchName,
	QualifiedBranchName,
	DetachedHead,
	GitSha1Full,
	GitSha1Abbreviated,
	CommitTimestamp,
	CommitISOTimestamp,
	HeadTags,
	HeadAnnotatedTags,
	HeadLightweightTags,
}

// AllKeys returns every recognized key in stable order.
func AllKeys() []Key {
	out := make([]Key, len(allKeys))
	copy(out, allKeys)
	return out
}

// Valid reports whether k is one of the recognized keys.
func (k Key) Valid() bool {
	for _, known := range allKeys {
		if k == known {
			return true
		}
	}
	return false
}

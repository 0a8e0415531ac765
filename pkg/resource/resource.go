// Package resource builds an identity descriptor for a running process
// by merging attributes discovered by an ordered list of detectors.
package resource

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
)

// Semantic convention keys for the SDK identity attributes carried by
// the default resource.
const (
	TelemetrySDKLanguage = "telemetry.sdk.language"
	TelemetrySDKName     = "telemetry.sdk.name"
	TelemetrySDKVersion  = "telemetry.sdk.version"
)

// Attributes maps attribute keys to label values.
type Attributes map[string]Value

var (
	emptyResource   = &Resource{attrs: Attributes{}}
	defaultResource = &Resource{attrs: Attributes{
		TelemetrySDKLanguage: StringValue("go"),
		TelemetrySDKName:     StringValue("opentelemetry"),
		TelemetrySDKVersion:  StringValue(sdkVersion()),
	}}
)

// Resource is an immutable set of attributes describing the identity
// and environment of a telemetry-emitting entity. All combining
// operations return a new Resource; the internal map is never shared.
type Resource struct {
	attrs Attributes
}

// New constructs a Resource holding exactly attrs, without the default
// SDK attributes. The map is copied, so later changes to attrs do not
// affect the Resource.
func New(attrs Attributes) *Resource {
	copied := make(Attributes, len(attrs))
	for k, v := range attrs {
		copied[k] = v
	}
	return &Resource{attrs: copied}
}

// Create returns attrs layered with the default resource. An empty
// attrs returns the default resource itself, so every created resource
// at least identifies the SDK.
//
// The default resource is the left operand of the merge: on key
// collision the default SDK attributes win over attrs unless the
// default value is the empty string.
func Create(attrs Attributes) *Resource {
	if len(attrs) == 0 {
		return defaultResource
	}
	return defaultResource.Merge(New(attrs))
}

// Empty returns the process-wide empty resource.
func Empty() *Resource { return emptyResource }

// Default returns the process-wide resource holding only the SDK
// identity attributes.
func Default() *Resource { return defaultResource }

// Attributes returns a copy of the resource's attributes. Mutating the
// returned map does not affect the resource.
func (r *Resource) Attributes() Attributes {
	copied := make(Attributes, len(r.attrs))
	for k, v := range r.attrs {
		copied[k] = v
	}
	return copied
}

// Len returns the number of attributes.
func (r *Resource) Len() int { return len(r.attrs) }

// Merge combines r and other into a new Resource whose key set is the
// union of both. On collision r's value is kept, unless it is the
// empty string, in which case other's value overrides it. Neither
// operand is modified. Merge is not commutative.
func (r *Resource) Merge(other *Resource) *Resource {
	merged := r.Attributes()
	if other != nil {
		for k, v := range other.attrs {
			if cur, ok := merged[k]; !ok || cur.isEmptyString() {
				merged[k] = v
			}
		}
	}
	return &Resource{attrs: merged}
}

// Equal reports whether r and other hold identical attributes,
// independent of construction order.
func (r *Resource) Equal(other *Resource) bool {
	if other == nil || len(r.attrs) != len(other.attrs) {
		return false
	}
	for k, v := range r.attrs {
		if ov, ok := other.attrs[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Fingerprint returns a canonical fingerprint of the attributes: a
// sha256 over the key-sorted "key=value" form. Resources with equal
// attributes share a fingerprint regardless of construction order,
// making it usable as a de-duplication key.
func (r *Resource) Fingerprint() string {
	hash := sha256.Sum256([]byte(r.String()))
	return hex.EncodeToString(hash[:])
}

// String returns the attributes in sorted "key=value,..." form.
func (r *Resource) String() string {
	keys := make([]string, 0, len(r.attrs))
	for k := range r.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for i, key := range keys {
		if i > 0 {
			builder.WriteString(",")
		}
		builder.WriteString(key)
		builder.WriteString("=")
		builder.WriteString(r.attrs[key].Emit())
	}
	return builder.String()
}

// MarshalJSON encodes the resource as its attribute map.
func (r *Resource) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.attrs)
}

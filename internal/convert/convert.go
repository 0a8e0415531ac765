// Package convert translates between the resource model and its OTLP
// protobuf form.
package convert

import (
	"fmt"
	"sort"

	"github.com/fidde/otel_resource_detector/pkg/resource"
	commonpb "go.opentelemetry.io/proto/otlp/common/v1"
	resourcepb "go.opentelemetry.io/proto/otlp/resource/v1"
)

// ToProto converts res to an OTLP resource. Attributes are emitted in
// sorted key order so the output is deterministic.
func ToProto(res *resource.Resource) *resourcepb.Resource {
	attrs := res.Attributes()

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	kvs := make([]*commonpb.KeyValue, 0, len(attrs))
	for _, k := range keys {
		kvs = append(kvs, &commonpb.KeyValue{
			Key:   k,
			Value: toAnyValue(attrs[k]),
		})
	}
	return &resourcepb.Resource{Attributes: kvs}
}

// FromProto converts an OTLP resource into the resource model. Array,
// map and bytes values fall outside the label-value domain and are
// rejected.
func FromProto(pb *resourcepb.Resource) (*resource.Resource, error) {
	if pb == nil {
		return resource.Empty(), nil
	}

	attrs := make(resource.Attributes, len(pb.Attributes))
	for _, kv := range pb.Attributes {
		v, err := fromAnyValue(kv.GetValue())
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", kv.GetKey(), err)
		}
		attrs[kv.GetKey()] = v
	}
	return resource.New(attrs), nil
}

func toAnyValue(v resource.Value) *commonpb.AnyValue {
	switch v.Kind() {
	case resource.KindBool:
		return &commonpb.AnyValue{Value: &commonpb.AnyValue_BoolValue{BoolValue: v.Bool()}}
	case resource.KindInt:
		return &commonpb.AnyValue{Value: &commonpb.AnyValue_IntValue{IntValue: v.Int()}}
	case resource.KindFloat:
		return &commonpb.AnyValue{Value: &commonpb.AnyValue_DoubleValue{DoubleValue: v.Float()}}
	default:
		return &commonpb.AnyValue{Value: &commonpb.AnyValue_StringValue{StringValue: v.Str()}}
	}
}

func fromAnyValue(av *commonpb.AnyValue) (resource.Value, error) {
	switch v := av.GetValue().(type) {
	case *commonpb.AnyValue_StringValue:
		return resource.StringValue(v.StringValue), nil
	case *commonpb.AnyValue_BoolValue:
		return resource.BoolValue(v.BoolValue), nil
	case *commonpb.AnyValue_IntValue:
		return resource.IntValue(v.IntValue), nil
	case *commonpb.AnyValue_DoubleValue:
		return resource.FloatValue(v.DoubleValue), nil
	case nil:
		// An unset AnyValue is treated as the empty string, matching
		// how OTLP consumers render it.
		return resource.StringValue(""), nil
	default:
		return resource.Value{}, fmt.Errorf("%w: %T", resource.ErrInvalidValue, v)
	}
}

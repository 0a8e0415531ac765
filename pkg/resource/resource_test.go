package resource

import "testing"

func TestMergeKeyUnion(t *testing.T) {
	a := New(Attributes{"a": StringValue("1"), "b": StringValue("2")})
	b := New(Attributes{"b": StringValue("3"), "c": StringValue("4")})

	got := a.Merge(b).Attributes()
	if len(got) != 3 {
		t.Fatalf("merged key count = %d, want 3", len(got))
	}
	for _, key := range []string{"a", "b", "c"} {
		if _, ok := got[key]; !ok {
			t.Errorf("merged result missing key %q", key)
		}
	}
}

func TestMergePrecedence(t *testing.T) {
	tests := []struct {
		name  string
		self  Attributes
		other Attributes
		key   string
		want  Value
	}{
		{
			name:  "self wins on collision",
			self:  Attributes{"a": StringValue("1")},
			other: Attributes{"a": StringValue("2")},
			key:   "a",
			want:  StringValue("1"),
		},
		{
			name:  "other fills missing key",
			self:  Attributes{"a": StringValue("1")},
			other: Attributes{"b": StringValue("2")},
			key:   "b",
			want:  StringValue("2"),
		},
		{
			name:  "empty string in self is overridden",
			self:  Attributes{"a": StringValue("")},
			other: Attributes{"a": StringValue("2")},
			key:   "a",
			want:  StringValue("2"),
		},
		{
			name:  "non-string zero values are kept",
			self:  Attributes{"a": IntValue(0)},
			other: Attributes{"a": StringValue("2")},
			key:   "a",
			want:  IntValue(0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.self).Merge(New(tt.other)).Attributes()
			if got[tt.key] != tt.want {
				t.Fatalf("merged[%q] = %v, want %v", tt.key, got[tt.key], tt.want)
			}
		})
	}
}

func TestMergeNotCommutative(t *testing.T) {
	a := New(Attributes{"k": StringValue("a")})
	b := New(Attributes{"k": StringValue("b")})

	if a.Merge(b).Equal(b.Merge(a)) {
		t.Fatal("a.Merge(b) should differ from b.Merge(a) on colliding keys")
	}
}

func TestMergeDoesNotMutateOperands(t *testing.T) {
	a := New(Attributes{"a": StringValue(""), "b": StringValue("1")})
	b := New(Attributes{"a": StringValue("2"), "c": StringValue("3")})

	a.Merge(b)

	if got := a.Attributes()["a"]; got != StringValue("") {
		t.Errorf("left operand mutated: a = %v", got)
	}
	if a.Len() != 2 || b.Len() != 2 {
		t.Errorf("operand sizes changed: %d, %d", a.Len(), b.Len())
	}
}

func TestMergeNil(t *testing.T) {
	a := New(Attributes{"a": StringValue("1")})
	if got := a.Merge(nil); !got.Equal(a) {
		t.Fatalf("a.Merge(nil) = %v, want %v", got, a)
	}
}

func TestCreateEmptyReturnsDefault(t *testing.T) {
	got := Create(nil)
	if got != Default() {
		t.Fatal("Create(nil) should return the default resource singleton")
	}

	attrs := got.Attributes()
	if len(attrs) != 3 {
		t.Fatalf("default resource has %d attributes, want 3", len(attrs))
	}
	if attrs[TelemetrySDKLanguage] != StringValue("go") {
		t.Errorf("%s = %v, want go", TelemetrySDKLanguage, attrs[TelemetrySDKLanguage])
	}
	if attrs[TelemetrySDKName] != StringValue("opentelemetry") {
		t.Errorf("%s = %v, want opentelemetry", TelemetrySDKName, attrs[TelemetrySDKName])
	}
	if attrs[TelemetrySDKVersion].Str() == "" {
		t.Errorf("%s is empty", TelemetrySDKVersion)
	}
}

func TestCreateLayersOverDefault(t *testing.T) {
	got := Create(Attributes{"x": StringValue("y")}).Attributes()

	if got["x"] != StringValue("y") {
		t.Errorf("x = %v, want y", got["x"])
	}
	if got[TelemetrySDKName] != StringValue("opentelemetry") {
		t.Errorf("%s = %v, want opentelemetry", TelemetrySDKName, got[TelemetrySDKName])
	}
	if len(got) != 4 {
		t.Errorf("attribute count = %d, want 4", len(got))
	}
}

func TestCreateDefaultWinsOnCollision(t *testing.T) {
	// The default resource is the left merge operand, so caller
	// attributes do not displace the SDK identity attributes.
	got := Create(Attributes{TelemetrySDKName: StringValue("custom")}).Attributes()
	if got[TelemetrySDKName] != StringValue("opentelemetry") {
		t.Fatalf("%s = %v, want opentelemetry", TelemetrySDKName, got[TelemetrySDKName])
	}
}

func TestAttributesReturnsCopy(t *testing.T) {
	r := New(Attributes{"a": StringValue("1")})

	attrs := r.Attributes()
	attrs["a"] = StringValue("changed")
	attrs["b"] = StringValue("new")

	if got := r.Attributes()["a"]; got != StringValue("1") {
		t.Errorf("resource mutated through accessor copy: a = %v", got)
	}
	if r.Len() != 1 {
		t.Errorf("resource grew through accessor copy: len = %d", r.Len())
	}
}

func TestEmptyResource(t *testing.T) {
	if Empty().Len() != 0 {
		t.Fatalf("empty resource has %d attributes", Empty().Len())
	}
}

func TestEqualAndFingerprint(t *testing.T) {
	a := New(Attributes{"a": StringValue("1"), "b": IntValue(2)})
	b := New(Attributes{"b": IntValue(2), "a": StringValue("1")})
	c := New(Attributes{"a": StringValue("1"), "b": IntValue(3)})

	if !a.Equal(b) {
		t.Error("resources with identical attributes should be equal")
	}
	if a.Equal(c) {
		t.Error("resources with different attributes should not be equal")
	}
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("fingerprint should be independent of construction order")
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("fingerprint should differ for different attributes")
	}
}

func TestValueFromRaw(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    Value
		wantErr bool
	}{
		{name: "string", raw: "s", want: StringValue("s")},
		{name: "bool", raw: true, want: BoolValue(true)},
		{name: "int", raw: 7, want: IntValue(7)},
		{name: "int64", raw: int64(7), want: IntValue(7)},
		{name: "float", raw: 1.5, want: FloatValue(1.5)},
		{name: "slice rejected", raw: []string{"a"}, wantErr: true},
		{name: "map rejected", raw: map[string]string{}, wantErr: true},
		{name: "nil rejected", raw: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromRaw(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("FromRaw(%v) expected error", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromRaw(%v) error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Fatalf("FromRaw(%v) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestValueEmit(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{name: "string", v: StringValue("x"), want: "x"},
		{name: "bool", v: BoolValue(true), want: "true"},
		{name: "int", v: IntValue(-3), want: "-3"},
		{name: "float", v: FloatValue(2.5), want: "2.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Emit(); got != tt.want {
				t.Fatalf("Emit() = %q, want %q", got, tt.want)
			}
		})
	}
}

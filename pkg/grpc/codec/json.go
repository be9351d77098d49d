// Package codec registers a JSON wire codec for gRPC. Plain Go structs are
// encoded with encoding/json and protobuf messages with protojson, so handwritten
// service descriptors and generated services such as health can share a connection.
package codec

import (
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// Name is the content-subtype, sent on the wire as application/grpc+json.
const Name = "json"

type jsonCodec struct{}

func (jsonCodec) Name() string { return Name }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return protojson.Marshal(m)
	}
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if m, ok := v.(proto.Message); ok {
		return protojson.UnmarshalOptions{DiscardUnknown: true}.Unmarshal(data, m)
	}
	return json.Unmarshal(data, v)
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// CallOption selects the JSON codec for a client call or connection.
func CallOption() grpc.CallOption {
	return grpc.CallContentSubtype(Name)
}

// DialOption makes the JSON codec the default for every call on a connection,
// for clients that invoke methods without the generated Client wrapper.
func DialOption() grpc.DialOption {
	return grpc.WithDefaultCallOptions(CallOption())
}

// Package pb declares the slotswap.v1 messages and service by hand, encoded
// with protowire so they stay wire compatible with a protoc generated client.
// The schema is slotswap/v1/slotswap.proto; generate from it with
//
//	protoc -I internal/pb \
//	  --go_out=. --go_opt=module=slot-swapper-api \
//	  --go-grpc_out=. --go-grpc_opt=module=slot-swapper-api \
//	  slotswap/v1/slotswap.proto
//
// to replace this package.
package pb

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Message is implemented by every request and response in this package.
type Message interface {
	marshal(b []byte) []byte
	unmarshal(b []byte) error
}

// Codec encodes Message values. Servers install it with grpc.ForceServerCodec
// and clients with grpc.ForceCodec.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	m, ok := v.(Message)
	if !ok {
		return nil, fmt.Errorf("pb: cannot marshal %T", v)
	}
	return m.marshal(nil), nil
}

func (Codec) Unmarshal(data []byte, v any) error {
	m, ok := v.(Message)
	if !ok {
		return fmt.Errorf("pb: cannot unmarshal into %T", v)
	}
	return m.unmarshal(data)
}

func (Codec) Name() string { return "proto" }

// walk calls fn for every field in b. fn returns the bytes it consumed, 0 to
// skip the field, or a negative protowire error code.
func walk(b []byte, fn func(num protowire.Number, typ protowire.Type, b []byte) int) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		n = fn(num, typ, b)
		if n == 0 {
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
	}
	return nil
}

func readString(typ protowire.Type, b []byte, dst *string) int {
	if typ != protowire.BytesType {
		return 0
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return n
	}
	*dst = string(v)
	return n
}

func readOptString(typ protowire.Type, b []byte, dst **string) int {
	var s string
	n := readString(typ, b, &s)
	if n > 0 {
		*dst = &s
	}
	return n
}

func readBool(typ protowire.Type, b []byte, dst *bool) int {
	if typ != protowire.VarintType {
		return 0
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return n
	}
	*dst = protowire.DecodeBool(v)
	return n
}

func readTime(typ protowire.Type, b []byte, dst **timestamppb.Timestamp) int {
	if typ != protowire.BytesType {
		return 0
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return n
	}
	ts := &timestamppb.Timestamp{}
	if err := proto.Unmarshal(v, ts); err != nil {
		return -1
	}
	*dst = ts
	return n
}

// readMessage decodes an embedded message into a fresh *T and hands it to add.
func readMessage[T any, PT interface {
	*T
	Message
}](typ protowire.Type, b []byte, add func(PT)) int {
	if typ != protowire.BytesType {
		return 0
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return n
	}
	m := PT(new(T))
	if err := m.unmarshal(v); err != nil {
		return -1
	}
	add(m)
	return n
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

// appendOptString writes v whenever it is set, including the empty string.
func appendOptString(b []byte, num protowire.Number, v *string) []byte {
	if v == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, *v)
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(v))
}

func appendTime(b []byte, num protowire.Number, ts *timestamppb.Timestamp) []byte {
	if ts == nil {
		return b
	}
	inner, err := proto.MarshalOptions{Deterministic: true}.Marshal(ts)
	if err != nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, inner)
}

func appendMessage(b []byte, num protowire.Number, m Message) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m.marshal(nil))
}

package crate

import (
	"strconv"
)

// Codec converts a typed value to and from its stored string form.
type Codec[T any] interface {
	Encode(T) string
	Decode(string) (T, error)
}

type IntCodec struct{}

func (IntCodec) Encode(v int) string {
	return strconv.Itoa(v)
}

func (IntCodec) Decode(s string) (int, error) {
	return strconv.Atoi(s)
}

type Int64Codec struct{}

func (Int64Codec) Encode(v int64) string {
	return strconv.FormatInt(v, 10)
}

func (Int64Codec) Decode(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

type FloatCodec struct{}

func (FloatCodec) Encode(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (FloatCodec) Decode(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

type BoolCodec struct{}

func (BoolCodec) Encode(v bool) string {
	return strconv.FormatBool(v)
}

func (BoolCodec) Decode(s string) (bool, error) {
	return strconv.ParseBool(s)
}

type StringCodec struct{}

func (StringCodec) Encode(v string) string {
	return v
}

func (StringCodec) Decode(s string) (string, error) {
	return s, nil
}

package cacheinfra

import (
	"bytes"
	"fmt"

	"github.com/bytedance/sonic"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-product-compare/catalog"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec names accepted by CodecByName.
const (
	CodecJSON    = "json"
	CodecMsgpack = "msgpack"
)

// Codec turns items into the byte payload stored in a remote cache.
type Codec interface {
	Name() string
	Encode(item catalog.Item) ([]byte, error)
	Decode(data []byte) (catalog.Item, error)
}

// CodecByName resolves a codec; an empty name selects JSON.
func CodecByName(name string) (Codec, error) {
	switch name {
	case "", CodecJSON:
		return JSONCodec{}, nil
	case CodecMsgpack:
		return MsgpackCodec{}, nil
	default:
		return nil, goerrors.New(fmt.Sprintf("unknown cache codec %q", name), goerrors.CategoryValidation)
	}
}

// JSONCodec stores items as JSON documents using the same field names as the HTTP surface.
type JSONCodec struct{}

func (JSONCodec) Name() string { return CodecJSON }

func (JSONCodec) Encode(item catalog.Item) ([]byte, error) {
	return sonic.Marshal(item)
}

func (JSONCodec) Decode(data []byte) (catalog.Item, error) {
	var item catalog.Item
	if err := sonic.Unmarshal(data, &item); err != nil {
		return catalog.Item{}, err
	}
	return item.Normalize(), nil
}

// MsgpackCodec stores items as msgpack, reusing the json struct tags for field names.
type MsgpackCodec struct{}

func (MsgpackCodec) Name() string { return CodecMsgpack }

func (MsgpackCodec) Encode(item catalog.Item) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(item); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (MsgpackCodec) Decode(data []byte) (catalog.Item, error) {
	var item catalog.Item
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	if err := dec.Decode(&item); err != nil {
		return catalog.Item{}, err
	}
	return item.Normalize(), nil
}

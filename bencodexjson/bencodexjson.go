// Package bencodexjson bridges Bencodex values and JSON text. It reads and
// writes bencodex.Value trees only, never raw Bencodex bytes, and is meant
// for tooling and debugging rather than as a second wire format.
package bencodexjson

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/bencodex/bencodex-go"
)

// BinaryEncoding selects how ByteString payloads (and ByteString dictionary
// keys) are rendered as JSON strings, since JSON has no native binary type.
type BinaryEncoding uint8

const (
	// Hex renders ByteString payloads as "0x" followed by lowercase hex.
	Hex BinaryEncoding = iota
	// Base64 renders ByteString payloads as "b64:" followed by standard
	// base64.
	Base64
)

// Options configures the JSON bridge.
type Options struct {
	BinaryEncoding BinaryEncoding
}

var (
	// ErrUnsupportedJSONType is returned when decoding JSON that contains a
	// type the bridge has no Bencodex mapping for (this only happens for
	// hand-crafted JSON; ToJSON never produces such output).
	ErrUnsupportedJSONType = errors.New("bencodexjson: unsupported JSON value type")
)

// ToJSON renders v as JSON text. Integers are rendered as JSON numbers
// (via json.Number, preserving arbitrary precision in the literal text);
// ByteString payloads and ByteString dictionary keys are rendered as
// prefixed strings per opt.BinaryEncoding.
func ToJSON(v bencodex.Value, opt Options) ([]byte, error) {
	tree, err := toJSONTree(v, opt)
	if err != nil {
		return nil, err
	}
	return json.Marshal(tree)
}

// FromJSON parses JSON text produced by ToJSON (or equivalently shaped JSON)
// back into a bencodex.Value. Strings are classified by decodeJSONString:
// a recognized binary prefix with a decodable payload means ByteString, an
// escape marker means literal TextString content, and anything else is
// TextString as-is.
func FromJSON(data []byte, opt Options) (bencodex.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var tree interface{}
	if err := dec.Decode(&tree); err != nil {
		return bencodex.Value{}, err
	}
	return fromJSONTree(tree, opt)
}

func toJSONTree(v bencodex.Value, opt Options) (interface{}, error) {
	switch v.Kind() {
	case bencodex.KindNull:
		return nil, nil
	case bencodex.KindBool:
		return v.AsBool(), nil
	case bencodex.KindInt:
		return json.Number(v.AsInt().String()), nil
	case bencodex.KindBytes:
		return encodeBinaryString(v.AsBytes(), opt), nil
	case bencodex.KindText:
		return encodeTextString(v.AsText()), nil
	case bencodex.KindList:
		items := v.AsList()
		out := make([]interface{}, len(items))
		for i, item := range items {
			child, err := toJSONTree(item, opt)
			if err != nil {
				return nil, err
			}
			out[i] = child
		}
		return out, nil
	case bencodex.KindDict:
		entries := v.AsDict()
		out := make(map[string]interface{}, len(entries))
		for _, e := range entries {
			key, err := jsonKeyString(e.Key, opt)
			if err != nil {
				return nil, err
			}
			child, err := toJSONTree(e.Value, opt)
			if err != nil {
				return nil, err
			}
			out[key] = child
		}
		return out, nil
	default:
		return nil, fmt.Errorf("bencodexjson: unknown value kind %v", v.Kind())
	}
}

func jsonKeyString(key bencodex.Value, opt Options) (string, error) {
	switch key.Kind() {
	case bencodex.KindText:
		return encodeTextString(key.AsText()), nil
	case bencodex.KindBytes:
		return encodeBinaryString(key.AsBytes(), opt), nil
	default:
		return "", errors.New("bencodexjson: dictionary key must be ByteString or TextString")
	}
}

func encodeBinaryString(b []byte, opt Options) string {
	switch opt.BinaryEncoding {
	case Base64:
		return "b64:" + base64.StdEncoding.EncodeToString(b)
	default:
		return "0x" + hex.EncodeToString(b)
	}
}

// textEscape marks a JSON string as carrying literal TextString content
// rather than a binary marker, so a TextString that happens to start with
// "0x", "b64:", or the escape marker itself can still be told apart from a
// ByteString on the way back in. encodeTextString applies it only when
// needed; every other TextString is written bare for readability.
const textEscape = "="

// encodeTextString renders a TextString as a JSON string, escaping it when
// its content would otherwise be mistaken for a binary marker by
// decodeJSONString.
func encodeTextString(s string) string {
	if hasBinaryPrefix(s) || strings.HasPrefix(s, textEscape) {
		return textEscape + s
	}
	return s
}

// hasBinaryPrefix reports whether s starts with a recognized binary marker,
// independent of which encoding produced it.
func hasBinaryPrefix(s string) bool {
	return strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "b64:")
}

// decodeJSONString reverses encodeTextString/encodeBinaryString: a leading
// escape marker always means literal text (with the marker itself
// stripped), a recognized binary prefix whose remainder decodes under that
// encoding means a ByteString, and anything else (including a prefix
// followed by undecodable text) is literal text as-is.
func decodeJSONString(s string) bencodex.Value {
	if strings.HasPrefix(s, textEscape) {
		return bencodex.Text(s[len(textEscape):])
	}
	switch {
	case strings.HasPrefix(s, "0x"):
		if b, err := hex.DecodeString(s[2:]); err == nil {
			return bencodex.Bytes(b)
		}
	case strings.HasPrefix(s, "b64:"):
		if b, err := base64.StdEncoding.DecodeString(s[4:]); err == nil {
			return bencodex.Bytes(b)
		}
	}
	return bencodex.Text(s)
}

func fromJSONTree(tree interface{}, opt Options) (bencodex.Value, error) {
	switch t := tree.(type) {
	case nil:
		return bencodex.Null(), nil
	case bool:
		return bencodex.Bool(t), nil
	case json.Number:
		n, ok := new(big.Int).SetString(t.String(), 10)
		if !ok {
			return bencodex.Value{}, fmt.Errorf("bencodexjson: %q is not an arbitrary-precision integer", t.String())
		}
		return bencodex.Int(n), nil
	case string:
		return decodeJSONString(t), nil
	case []interface{}:
		items := make([]bencodex.Value, len(t))
		for i, child := range t {
			v, err := fromJSONTree(child, opt)
			if err != nil {
				return bencodex.Value{}, err
			}
			items[i] = v
		}
		return bencodex.List(items...), nil
	case map[string]interface{}:
		entries := make([]bencodex.KV, 0, len(t))
		for k, child := range t {
			value, err := fromJSONTree(child, opt)
			if err != nil {
				return bencodex.Value{}, err
			}
			entries = append(entries, bencodex.KV{Key: decodeJSONString(k), Value: value})
		}
		return bencodex.Dict(entries...), nil
	default:
		return bencodex.Value{}, ErrUnsupportedJSONType
	}
}

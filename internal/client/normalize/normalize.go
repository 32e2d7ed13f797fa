// Package normalize rewrites server documents into the client entity shape.
//
// Every JSON object carrying the server identifier "_id" is rewritten to
// carry "id" instead and loses its "__v" version member. The rule is local
// to each object and applied at every depth, so arrays, pagination envelopes
// and nested documents are all covered. Member order is preserved; a
// rewritten object lists "id" first.
package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/taskboard/internal/common"
)

// ErrInvalidJSON is returned for input that is not a single JSON value.
var ErrInvalidJSON = errors.New("normalize: invalid JSON")

type member struct {
	key   string
	value json.RawMessage
}

// Normalize returns the normalized form of a JSON document. Empty input is
// returned as is. Normalizing an already normalized document is a no-op.
func Normalize(data []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return data, nil
	}
	if !json.Valid(trimmed) {
		return nil, ErrInvalidJSON
	}

	var buf bytes.Buffer
	buf.Grow(len(trimmed))
	if err := normalizeValue(&buf, trimmed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return buf.Bytes(), nil
}

func normalizeValue(buf *bytes.Buffer, raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return io.ErrUnexpectedEOF
	}

	switch raw[0] {
	case '[':
		return normalizeArray(buf, raw)
	case '{':
		return normalizeObject(buf, raw)
	default:
		buf.Write(raw)
		return nil
	}
}

func normalizeArray(buf *bytes.Buffer, raw []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return err
	}

	buf.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := normalizeValue(buf, item); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

func normalizeObject(buf *bytes.Buffer, raw []byte) error {
	members, err := readMembers(raw)
	if err != nil {
		return err
	}

	var serverID json.RawMessage
	hasServerID := false
	for _, m := range members {
		if m.key == common.ServerIDKey {
			serverID, hasServerID = m.value, true
		}
	}

	buf.WriteByte('{')
	first := true
	next := func(key string) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		return nil
	}

	if hasServerID {
		if err := next(common.ClientIDKey); err != nil {
			return err
		}
		if err := normalizeValue(buf, serverID); err != nil {
			return err
		}
	}

	for _, m := range members {
		if hasServerID {
			switch m.key {
			// the server identifier wins over a stray client one
			case common.ServerIDKey, common.ServerVersionKey, common.ClientIDKey:
				continue
			}
		}
		if err := next(m.key); err != nil {
			return err
		}
		if err := normalizeValue(buf, m.value); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

// readMembers decodes the members of a JSON object in document order.
func readMembers(raw []byte) ([]member, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var members []member
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		members = append(members, member{key: key, value: value})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return members, nil
}

package models

import (
	"encoding/json"
	"fmt"

	"github.com/starford/daybook/internal/apperr"
)

// Payload is the unit of persistence for one group: its properties plus
// the ordered note list.
type Payload struct {
	Properties GroupProperties
	Records    []NoteRecord
}

// EncodePayload renders the canonical two-element JSON array
// [properties, records]. A nil record slice is written as [].
func EncodePayload(p *Payload) ([]byte, error) {
	records := p.Records
	if records == nil {
		records = []NoteRecord{}
	}
	return json.Marshal([2]any{p.Properties, records})
}

// DecodePayload parses a persisted payload. Both shapes are accepted:
// the canonical [properties, records] and the legacy single-element
// [records], which implies default-constructed properties.
//
// Decoding is tolerant per element: a record (or the properties object)
// that fails to unmarshal is replaced by its zero value so that one
// corrupt entry never loses the rest of the list.
func DecodePayload(data []byte) (*Payload, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrMalformedPayload, err)
	}

	p := &Payload{Records: []NoteRecord{}}
	switch len(elems) {
	case 0:
		return p, nil
	case 1:
		p.Records = decodeRecords(elems[0])
		return p, nil
	default:
		if err := json.Unmarshal(elems[0], &p.Properties); err != nil {
			p.Properties = GroupProperties{}
		}
		p.Records = decodeRecords(elems[1])
		return p, nil
	}
}

// decodeRecords unmarshals a record array element by element, substituting
// a blank record for any element that does not fit the expected shape.
func decodeRecords(raw json.RawMessage) []NoteRecord {
	var rawRecords []json.RawMessage
	if err := json.Unmarshal(raw, &rawRecords); err != nil {
		return []NoteRecord{}
	}
	records := make([]NoteRecord, len(rawRecords))
	for i, rr := range rawRecords {
		if err := json.Unmarshal(rr, &records[i]); err != nil {
			records[i] = NoteRecord{}
		}
	}
	return records
}

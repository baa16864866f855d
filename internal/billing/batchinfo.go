package billing

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// BatchInfoKind tags the shape a stored batch info value arrived in.
type BatchInfoKind int

const (
	BatchInfoAbsent BatchInfoKind = iota
	BatchInfoText
	BatchInfoItems
	BatchInfoUnknown
)

func (k BatchInfoKind) String() string {
	switch k {
	case BatchInfoAbsent:
		return "absent"
	case BatchInfoText:
		return "text"
	case BatchInfoItems:
		return "items"
	default:
		return "unknown"
	}
}

var (
	// ErrBatchInfoNotArray is returned when batch info decodes to something
	// other than a JSON array.
	ErrBatchInfoNotArray = errors.New("batch info is not an array")
	// ErrBatchInfoMalformed is returned when batch info cannot be decoded.
	ErrBatchInfoMalformed = errors.New("batch info is malformed")
)

// RawBatchInfo is a challan's batch info before it has been decoded. The
// stored value is either missing, a JSON-encoded string holding the array, or
// the array itself.
type RawBatchInfo struct {
	kind  BatchInfoKind
	text  string
	items json.RawMessage
}

// NewRawBatchInfo classifies a stored JSON value.
func NewRawBatchInfo(b json.RawMessage) RawBatchInfo {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return RawBatchInfo{kind: BatchInfoAbsent}
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return RawBatchInfo{kind: BatchInfoUnknown}
		}
		return TextBatchInfo(s)
	case '[':
		return RawBatchInfo{kind: BatchInfoItems, items: append(json.RawMessage(nil), trimmed...)}
	default:
		return RawBatchInfo{kind: BatchInfoUnknown}
	}
}

// TextBatchInfo wraps batch info held as a JSON-encoded string.
func TextBatchInfo(s string) RawBatchInfo {
	return RawBatchInfo{kind: BatchInfoText, text: s}
}

// Kind reports which variant r holds.
func (r RawBatchInfo) Kind() BatchInfoKind {
	return r.kind
}

// UnmarshalJSON lets RawBatchInfo be used directly as a request field.
func (r *RawBatchInfo) UnmarshalJSON(b []byte) error {
	*r = NewRawBatchInfo(b)
	return nil
}

// MarshalJSON writes the value back in the shape it arrived in.
func (r RawBatchInfo) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case BatchInfoText:
		return json.Marshal(r.text)
	case BatchInfoItems:
		return r.items, nil
	default:
		return []byte("null"), nil
	}
}

// batchElements resolves r to the raw elements of its JSON array. Absent
// batch info has no elements.
func batchElements(r RawBatchInfo) ([]json.RawMessage, error) {
	var payload []byte
	switch r.kind {
	case BatchInfoAbsent:
		return nil, nil
	case BatchInfoText:
		payload = bytes.TrimSpace([]byte(r.text))
	case BatchInfoItems:
		payload = r.items
	default:
		return nil, ErrBatchInfoNotArray
	}

	if len(payload) == 0 || payload[0] != '[' {
		if json.Valid(payload) {
			return nil, ErrBatchInfoNotArray
		}
		return nil, ErrBatchInfoMalformed
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(payload, &elems); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBatchInfoMalformed, err)
	}
	return elems, nil
}

// DecodeBatchInfo decodes r strictly: any element or field that cannot be
// read fails the whole list. Absent batch info yields an empty list and no
// error.
func DecodeBatchInfo(r RawBatchInfo) ([]LineItem, error) {
	elems, err := batchElements(r)
	if err != nil {
		return nil, err
	}
	items := make([]LineItem, len(elems))
	for i, elem := range elems {
		if err := json.Unmarshal(elem, &items[i]); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrBatchInfoMalformed, i, err)
		}
	}
	return items, nil
}

// Batch is leniently decoded batch info together with the problems found
// while reading it.
type Batch struct {
	Items    []LineItem
	Warnings []Warning
}

// ReadBatchInfo decodes r leniently. Only a payload that is not a JSON array
// is an error. An element that is not an object becomes an empty line and a
// field that cannot be read is left as zero; each is reported as a Warning
// and the remaining lines are kept.
func ReadBatchInfo(r RawBatchInfo) (Batch, error) {
	elems, err := batchElements(r)
	if err != nil {
		return Batch{Items: []LineItem{}}, err
	}

	b := Batch{Items: make([]LineItem, len(elems))}
	for i, elem := range elems {
		var members map[string]json.RawMessage
		if err := json.Unmarshal(elem, &members); err != nil || members == nil {
			b.Warnings = append(b.Warnings, Warning{
				Line:   i,
				Value:  clip(elem),
				Reason: "line is not an object, computed as empty",
			})
			continue
		}
		b.Items[i] = decodeLine(members, func(field string, raw json.RawMessage, err error) {
			reason := "unreadable value computed as 0"
			if errors.Is(err, errQuantityRange) {
				reason = "quantity out of range computed as 0"
			}
			b.Warnings = append(b.Warnings, Warning{Line: i, Field: field, Value: clip(raw), Reason: reason})
		})
	}
	return b, nil
}

// ParseBatchInfo returns the lines ReadBatchInfo recovers from r, or an empty
// list when r is not an array.
func ParseBatchInfo(r RawBatchInfo) []LineItem {
	b, _ := ReadBatchInfo(r)
	return b.Items
}

const maxWarningValue = 64

func clip(raw json.RawMessage) string {
	s := string(bytes.TrimSpace(raw))
	if len(s) > maxWarningValue {
		return s[:maxWarningValue] + "..."
	}
	return s
}

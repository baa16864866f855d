package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"distrobill/internal/billing"
)

// Challan is the typed view of a challans record.
type Challan struct {
	ID            uuid.UUID
	ChallanNo     string
	Date          time.Time
	CustomerID    uuid.UUID
	DistributorID uuid.UUID
	SalesStaffID  uuid.UUID
	BatchInfo     billing.RawBatchInfo
}

type challanData struct {
	ChallanNo     json.RawMessage      `json:"challan_no"`
	Date          json.RawMessage      `json:"date"`
	CustomerID    json.RawMessage      `json:"customer_id"`
	DistributorID json.RawMessage      `json:"distributor_id"`
	SalesStaffID  json.RawMessage      `json:"sales_staff_id"`
	BatchInfo     billing.RawBatchInfo `json:"batch_info"`
}

// Accepted challan date layouts, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02-01-2006",
	"02/01/2006",
}

// DecodeChallan reads the typed view out of a challans record. Reference
// IDs that are missing, malformed or not strings are left as uuid.Nil and an
// unparseable date as the zero time; only a data payload that is not a JSON object is an
// error.
func DecodeChallan(rec *Record) (*Challan, error) {
	var d challanData
	if err := json.Unmarshal(rec.Data, &d); err != nil {
		return nil, fmt.Errorf("decoding challan %s: %w", rec.ID, ErrInvalidRecord)
	}
	return &Challan{
		ID:            rec.ID,
		ChallanNo:     textValue(d.ChallanNo),
		Date:          ParseDate(textValue(d.Date)),
		CustomerID:    parseRef(textValue(d.CustomerID)),
		DistributorID: parseRef(textValue(d.DistributorID)),
		SalesStaffID:  parseRef(textValue(d.SalesStaffID)),
		BatchInfo:     d.BatchInfo,
	}, nil
}

// ChallanBatchInfo extracts only the batch_info field of a challan payload.
func ChallanBatchInfo(data json.RawMessage) (billing.RawBatchInfo, error) {
	var d struct {
		BatchInfo billing.RawBatchInfo `json:"batch_info"`
	}
	if err := json.Unmarshal(data, &d); err != nil {
		return billing.RawBatchInfo{}, ErrInvalidRecord
	}
	return d.BatchInfo, nil
}

// ParseDate returns the zero time when s matches none of the accepted layouts.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

type partyData struct {
	Name      json.RawMessage `json:"name"`
	Address   json.RawMessage `json:"address"`
	Phone     json.RawMessage `json:"phone"`
	GSTIN     json.RawMessage `json:"gstin"`
	StateCode json.RawMessage `json:"state_code"`
}

// DecodeParty reads invoice header details from a customers, distributors or
// sales_staff record.
func DecodeParty(rec *Record) (billing.Party, error) {
	var d partyData
	if err := json.Unmarshal(rec.Data, &d); err != nil {
		return billing.Party{}, fmt.Errorf("decoding %s %s: %w", rec.Resource, rec.ID, ErrInvalidRecord)
	}
	return billing.Party{
		ID:        rec.ID.String(),
		Name:      textValue(d.Name),
		Address:   textValue(d.Address),
		Phone:     textValue(d.Phone),
		GSTIN:     strings.ToUpper(textValue(d.GSTIN)),
		StateCode: textValue(d.StateCode),
	}, nil
}

// Stock is the typed view of a stocks record: one batch of one product.
type Stock struct {
	ID          uuid.UUID
	ProductID   string
	ProductName string
	BatchID     string
	Quantity    int64
	ExpiryDate  time.Time
}

type stockData struct {
	ProductID   json.RawMessage `json:"product_id"`
	ProductName json.RawMessage `json:"product_name"`
	BatchID     json.RawMessage `json:"batch_id"`
	Quantity    json.RawMessage `json:"quantity"`
	ExpiryDate  json.RawMessage `json:"expiry_date"`
}

// DecodeStock reads a stocks record. Quantity may be a JSON number or a
// numeric string and is truncated to whole units. A quantity that is not
// numeric or does not fit in an int64 is read as 0.
func DecodeStock(rec *Record) (*Stock, error) {
	var d stockData
	if err := json.Unmarshal(rec.Data, &d); err != nil {
		return nil, fmt.Errorf("decoding stock %s: %w", rec.ID, ErrInvalidRecord)
	}
	return &Stock{
		ID:          rec.ID,
		ProductID:   textValue(d.ProductID),
		ProductName: textValue(d.ProductName),
		BatchID:     textValue(d.BatchID),
		Quantity:    wholeUnits(textValue(d.Quantity)),
		ExpiryDate:  ParseDate(textValue(d.ExpiryDate)),
	}, nil
}

var (
	maxUnits = decimal.NewFromInt(math.MaxInt64)
	minUnits = decimal.NewFromInt(math.MinInt64)
)

func wholeUnits(s string) int64 {
	d, err := decimal.NewFromString(s)
	if err != nil || d.GreaterThan(maxUnits) || d.LessThan(minUnits) {
		return 0
	}
	return d.IntPart()
}

// IsJSONObject reports whether data holds a JSON object.
func IsJSONObject(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '{' && json.Valid(trimmed)
}

func parseRef(s string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil
	}
	return id
}

// textValue renders a JSON string or number as text. Anything else is "".
func textValue(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return string(raw)
	}
	return ""
}

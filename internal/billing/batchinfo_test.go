package billing_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"distrobill/internal/billing"
)

const sampleItems = `[
	{"product_id": "p-1", "product_name": "Paracetamol 500", "billed_quantity": 10, "free_quantity": 1,
	 "selling_price": 118, "gst_slab": 18, "hsn_code": "3004", "batch_id": "B42",
	 "expiry_date": "2027-03", "mrp": 150, "discount_percent": 2.5},
	{"product_id": 77, "billed_quantity": "4", "selling_price": "105.00", "gst_slab": "5", "mrp": ""}
]`

func TestNewRawBatchInfo_Kinds(t *testing.T) {
	cases := map[string]struct {
		in   string
		want billing.BatchInfoKind
	}{
		"empty":   {"", billing.BatchInfoAbsent},
		"null":    {"null", billing.BatchInfoAbsent},
		"string":  {`"[]"`, billing.BatchInfoText},
		"array":   {"[]", billing.BatchInfoItems},
		"object":  {`{"a":1}`, billing.BatchInfoUnknown},
		"number":  {"42", billing.BatchInfoUnknown},
		"spacing": {"  \n [ ] ", billing.BatchInfoItems},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, billing.NewRawBatchInfo(json.RawMessage(tc.in)).Kind())
		})
	}
}

func TestParseBatchInfo_Absent(t *testing.T) {
	items := billing.ParseBatchInfo(billing.NewRawBatchInfo(nil))
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestParseBatchInfo_ItemsPassThrough(t *testing.T) {
	items := billing.ParseBatchInfo(billing.NewRawBatchInfo(json.RawMessage(sampleItems)))
	require.Len(t, items, 2)

	assert.Equal(t, billing.LineItem{
		ProductID:       "p-1",
		ProductName:     "Paracetamol 500",
		BilledQuantity:  10,
		FreeQuantity:    1,
		SellingPrice:    118,
		GSTSlab:         18,
		HSNCode:         "3004",
		BatchID:         "B42",
		ExpiryDate:      "2027-03",
		MRP:             150,
		DiscountPercent: 2.5,
	}, items[0])

	assert.Equal(t, "77", items[1].ProductID)
	assert.Equal(t, int64(4), items[1].BilledQuantity)
	assert.Equal(t, 105.0, items[1].SellingPrice)
	assert.Equal(t, 5.0, items[1].GSTSlab)
	assert.Equal(t, 0.0, items[1].MRP)
}

func TestParseBatchInfo_JSONEncodedString(t *testing.T) {
	encoded, err := json.Marshal(sampleItems)
	require.NoError(t, err)

	items := billing.ParseBatchInfo(billing.NewRawBatchInfo(encoded))
	assert.Len(t, items, 2)
}

func TestParseBatchInfo_MalformedText(t *testing.T) {
	items := billing.ParseBatchInfo(billing.TextBatchInfo("{not json"))
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestParseBatchInfo_TextNotArray(t *testing.T) {
	items := billing.ParseBatchInfo(billing.TextBatchInfo(`{"product_id":"p"}`))
	assert.Empty(t, items)
}

func TestParseBatchInfo_PlainObject(t *testing.T) {
	items := billing.ParseBatchInfo(billing.NewRawBatchInfo(json.RawMessage(`{"product_id":"p"}`)))
	assert.Empty(t, items)
}

func TestParseBatchInfo_BadElement(t *testing.T) {
	raw := billing.NewRawBatchInfo(json.RawMessage(`[
		{"product_id":"p1","billed_quantity":"ten","selling_price":"n/a","gst_slab":18},
		{"product_id":"p2","billed_quantity":2,"selling_price":59,"gst_slab":18}
	]`))

	items := billing.ParseBatchInfo(raw)
	require.Len(t, items, 2)
	assert.Equal(t, billing.LineItem{ProductID: "p1", GSTSlab: 18}, items[0])
	assert.Equal(t, int64(2), items[1].BilledQuantity)
	assert.Equal(t, 59.0, items[1].SellingPrice)
}

func TestReadBatchInfo_UnreadableFieldsWarn(t *testing.T) {
	raw := billing.NewRawBatchInfo(json.RawMessage(`[
		{"product_id":{"x":1},"billed_quantity":3,"selling_price":"n/a","gst_slab":5},
		"not a line",
		{"product_id":"p3","billed_quantity":1,"selling_price":105,"gst_slab":5}
	]`))

	b, err := billing.ReadBatchInfo(raw)
	require.NoError(t, err)
	require.Len(t, b.Items, 3)

	assert.Equal(t, "", b.Items[0].ProductID)
	assert.Equal(t, int64(3), b.Items[0].BilledQuantity)
	assert.Equal(t, 0.0, b.Items[0].SellingPrice)
	assert.Equal(t, billing.LineItem{}, b.Items[1])
	assert.Equal(t, "p3", b.Items[2].ProductID)

	require.Len(t, b.Warnings, 3)
	assert.Equal(t, billing.Warning{Line: 0, Field: "product_id", Value: `{"x":1}`, Reason: "unreadable value computed as 0"}, b.Warnings[0])
	assert.Equal(t, billing.Warning{Line: 0, Field: "selling_price", Value: `"n/a"`, Reason: "unreadable value computed as 0"}, b.Warnings[1])
	assert.Equal(t, 1, b.Warnings[2].Line)
	assert.Empty(t, b.Warnings[2].Field)
}

func TestReadBatchInfo_ShapeErrors(t *testing.T) {
	b, err := billing.ReadBatchInfo(billing.TextBatchInfo(`{"a":1}`))
	assert.ErrorIs(t, err, billing.ErrBatchInfoNotArray)
	assert.NotNil(t, b.Items)
	assert.Empty(t, b.Items)

	_, err = billing.ReadBatchInfo(billing.TextBatchInfo("[{"))
	assert.ErrorIs(t, err, billing.ErrBatchInfoMalformed)

	b, err = billing.ReadBatchInfo(billing.NewRawBatchInfo(nil))
	require.NoError(t, err)
	assert.Empty(t, b.Items)
	assert.Empty(t, b.Warnings)
}

func TestQuantityOutOfRange(t *testing.T) {
	const huge = `[{"product_id":"p","billed_quantity":18446744073709551617,"free_quantity":"-9223372036854775809","selling_price":10,"gst_slab":0}]`

	_, err := billing.DecodeBatchInfo(billing.TextBatchInfo(huge))
	assert.ErrorIs(t, err, billing.ErrBatchInfoMalformed)
	assert.Contains(t, err.Error(), "billed_quantity")

	var item billing.LineItem
	assert.Error(t, json.Unmarshal([]byte(`{"billed_quantity":1e19}`), &item))

	b, err := billing.ReadBatchInfo(billing.TextBatchInfo(huge))
	require.NoError(t, err)
	require.Len(t, b.Items, 1)
	assert.Equal(t, int64(0), b.Items[0].BilledQuantity)
	assert.Equal(t, int64(0), b.Items[0].FreeQuantity)
	assert.Equal(t, 10.0, b.Items[0].SellingPrice)

	require.Len(t, b.Warnings, 2)
	assert.Equal(t, "billed_quantity", b.Warnings[0].Field)
	assert.Equal(t, "quantity out of range computed as 0", b.Warnings[0].Reason)
	assert.Equal(t, "free_quantity", b.Warnings[1].Field)
}

func TestQuantityAtInt64Bounds(t *testing.T) {
	var item billing.LineItem
	require.NoError(t, json.Unmarshal([]byte(`{"billed_quantity":9223372036854775807,"free_quantity":"-9223372036854775808"}`), &item))
	assert.Equal(t, int64(math.MaxInt64), item.BilledQuantity)
	assert.Equal(t, int64(math.MinInt64), item.FreeQuantity)
}

func TestDecodeBatchInfo_Errors(t *testing.T) {
	_, err := billing.DecodeBatchInfo(billing.TextBatchInfo("{not json"))
	assert.ErrorIs(t, err, billing.ErrBatchInfoMalformed)

	_, err = billing.DecodeBatchInfo(billing.TextBatchInfo(`{"a":1}`))
	assert.ErrorIs(t, err, billing.ErrBatchInfoNotArray)

	_, err = billing.DecodeBatchInfo(billing.NewRawBatchInfo(json.RawMessage(`true`)))
	assert.ErrorIs(t, err, billing.ErrBatchInfoNotArray)

	_, err = billing.DecodeBatchInfo(billing.NewRawBatchInfo(json.RawMessage(`[{"product_id":{"x":1}}]`)))
	assert.ErrorIs(t, err, billing.ErrBatchInfoMalformed)

	items, err := billing.DecodeBatchInfo(billing.NewRawBatchInfo(nil))
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestRawBatchInfo_JSONRoundTrip(t *testing.T) {
	var req struct {
		BatchInfo billing.RawBatchInfo `json:"batch_info"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"batch_info":"[]"}`), &req))
	assert.Equal(t, billing.BatchInfoText, req.BatchInfo.Kind())

	out, err := json.Marshal(req.BatchInfo)
	require.NoError(t, err)
	assert.JSONEq(t, `"[]"`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
	assert.Equal(t, billing.BatchInfoText, req.BatchInfo.Kind(), "missing field leaves value untouched")
}

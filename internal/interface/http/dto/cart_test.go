package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantity_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Quantity
	}{
		{"数字", `{"bookId":"b1","quantity":3}`, "3"},
		{"数字字符串", `{"bookId":"b1","quantity":"4"}`, "4"},
		{"非数字原样保留", `{"bookId":"b1","quantity":"abc"}`, "abc"},
		{"缺省", `{"bookId":"b1"}`, ""},
		{"null", `{"bookId":"b1","quantity":null}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req AddCartItemRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.want, req.Quantity)
		})
	}
}

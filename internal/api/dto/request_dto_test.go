package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckoutUsePointsDecode(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		isNil   bool
		value   int
		invalid bool
	}{
		{name: "number", body: `{"use_points":3}`, value: 3},
		{name: "numeric string", body: `{"use_points":"3"}`, value: 3},
		{name: "padded string", body: `{"use_points":" 12 "}`, value: 12},
		{name: "fraction truncated", body: `{"use_points":3.7}`, value: 3},
		{name: "negative string", body: `{"use_points":"-2"}`, value: -2},
		{name: "null", body: `{"use_points":null}`, isNil: true},
		{name: "absent", body: `{}`, isNil: true},
		{name: "word", body: `{"use_points":"abc"}`, invalid: true},
		{name: "bool", body: `{"use_points":true}`, invalid: true},
		{name: "object", body: `{"use_points":{}}`, invalid: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var req CheckoutRequestDTO
			require.NoError(t, json.Unmarshal([]byte(tc.body), &req))
			if tc.isNil {
				require.Nil(t, req.UsePoints)
				return
			}
			require.NotNil(t, req.UsePoints)
			require.Equal(t, tc.invalid, req.UsePoints.Invalid)
			if !tc.invalid {
				require.Equal(t, tc.value, req.UsePoints.Value)
			}
		})
	}
}

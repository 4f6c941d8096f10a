package fmp

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type label string

func TestParamString(t *testing.T) {
	t.Parallel()

	n := 7
	yes := true
	var nilInt *int

	tests := []struct {
		name  string
		value any
		want  string
		ok    bool
	}{
		{name: "nil", value: nil},
		{name: "string", value: "AAPL", want: "AAPL", ok: true},
		{name: "empty string", value: "", want: "", ok: true},
		{name: "list", value: []string{"AAPL", "MSFT"}, want: "AAPL,MSFT", ok: true},
		{name: "empty list", value: []string{}},
		{name: "bool", value: false, want: "false", ok: true},
		{name: "int", value: 10, want: "10", ok: true},
		{name: "int64", value: int64(-3), want: "-3", ok: true},
		{name: "float", value: 0.25, want: "0.25", ok: true},
		{name: "day", value: time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC), want: "2023-12-31", ok: true},
		{name: "zero time", value: time.Time{}},
		{name: "named string", value: label("annual"), want: "annual", ok: true},
		{name: "interval", value: Interval5Min, want: "5min", ok: true},
		{name: "pointer", value: &n, want: "7", ok: true},
		{name: "bool pointer", value: &yes, want: "true", ok: true},
		{name: "nil pointer", value: nilInt},
		{name: "uint", value: uint8(4), want: "4", ok: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok, err := paramString(tt.value)
			require.NoError(t, err)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}

	_, _, err := paramString(map[string]int{})
	require.Error(t, err)
}

func TestParamsEncode(t *testing.T) {
	t.Parallel()

	query := url.Values{}
	err := Params{
		"symbol": "AAPL",
		"APIKEY": "leak",
		"limit":  nil,
	}.encode(query)
	require.NoError(t, err)
	require.Equal(t, url.Values{"symbol": []string{"AAPL"}}, query)

	err = Params{"bad": []int{1}}.encode(url.Values{})
	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
	require.Equal(t, "bad", argErr.Argument)
}

func TestDay(t *testing.T) {
	t.Parallel()

	require.Empty(t, FormatDay(time.Time{}))

	day, err := ParseDay("2024-02-29")
	require.NoError(t, err)
	require.Equal(t, "2024-02-29", FormatDay(day))

	_, err = ParseDay("29.02.2024")
	require.Error(t, err)
}

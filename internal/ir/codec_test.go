package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeData(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []byte
		wantErr bool
	}{
		{"utf8", "utf8:Hi", []byte("Hi"), false},
		{"utf8 multibyte", "utf8:\u00e9", []byte{0xC3, 0xA9}, false},
		{"utf8 empty", "utf8:", []byte{}, false},
		{"base64", "base64:AAEC", []byte{0, 1, 2}, false},
		{"base64 invalid", "base64:***", nil, true},
		{"no prefix", "hello", nil, true},
		{"hex prefix", "hex:00", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeData(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeData(t *testing.T) {
	assert.Equal(t, "utf8:Hi", EncodeData(OutUTF8, []byte("Hi")))
	assert.Equal(t, "base64:SGk=", EncodeData(OutBase64, []byte("Hi")))
	assert.Equal(t, "base64:", EncodeData(OutBase64, nil))
	assert.Equal(t, "utf8:", EncodeData(OutUTF8, nil))
	assert.Equal(t, "", EncodeData(OutNone, []byte("Hi")))
}

func TestEncodeDataReplacesInvalidUTF8(t *testing.T) {
	assert.Equal(t, "utf8:a\uFFFDb", EncodeData(OutUTF8, []byte{'a', 0xFF, 'b'}))
}

func TestDataRoundTrip(t *testing.T) {
	payload := []byte{0x00, 0x7F, 0x80, 0xFF}
	got, err := DecodeData(EncodeData(OutBase64, payload))
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestParseOutFormat(t *testing.T) {
	f, err := ParseOutFormat("utf8")
	require.NoError(t, err)
	assert.Equal(t, OutUTF8, f)

	f, err = ParseOutFormat("base64")
	require.NoError(t, err)
	assert.Equal(t, OutBase64, f)

	_, err = ParseOutFormat("hex")
	require.Error(t, err)
}

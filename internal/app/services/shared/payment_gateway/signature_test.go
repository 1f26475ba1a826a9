package payment_gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormEncode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "unreserved characters", input: "abc.XYZ-09*_", want: "abc.XYZ-09*_"},
		{name: "space becomes plus", input: "Thanh toan", want: "Thanh+toan"},
		{name: "tilde is escaped", input: "a~b", want: "a%7Eb"},
		{name: "url", input: "https://example.com/return", want: "https%3A%2F%2Fexample.com%2Freturn"},
		{name: "utf8", input: "é", want: "%C3%A9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formEncode(tt.input))
		})
	}
}

func TestBuildRawSignature_KeepsEmptyValuesSorted(t *testing.T) {
	got := buildRawSignature(map[string]string{
		"orderId":   "PAY-1",
		"extraData": "",
		"amount":    "1000",
	})
	assert.Equal(t, "amount=1000&extraData=&orderId=PAY-1", got)
}

func TestBuildVNPayHashData_SkipsEmptyValues(t *testing.T) {
	got := buildVNPayHashData(map[string]string{
		"vnp_TxnRef":    "PAY-1",
		"vnp_BankCode":  "",
		"vnp_OrderInfo": "a b",
	})
	assert.Equal(t, "vnp_OrderInfo=a+b&vnp_TxnRef=PAY-1", got)
}

func TestSignaturesEqual(t *testing.T) {
	assert.True(t, signaturesEqual("abcdef", "ABCDEF"))
	assert.True(t, signaturesEqual("abcdef", " abcdef "))
	assert.False(t, signaturesEqual("abcdef", "abcdee"))
	assert.False(t, signaturesEqual("abcdef", ""))
}

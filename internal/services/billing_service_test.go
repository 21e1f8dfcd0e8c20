package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func signOrder(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyRazorpaySignature(t *testing.T) {
	secret := "test_secret_key"
	orderID := "order_Nxq3ZK1g8ePQ2v"
	paymentID := "pay_Nxq4aB2h9fQR3w"

	sig := signOrder(orderID, paymentID, secret)
	require.True(t, verifyRazorpaySignature(orderID, paymentID, sig, secret))
}

func TestVerifyRazorpaySignatureRejectsTampering(t *testing.T) {
	secret := "test_secret_key"
	sig := signOrder("order_A", "pay_A", secret)

	require.False(t, verifyRazorpaySignature("order_B", "pay_A", sig, secret))
	require.False(t, verifyRazorpaySignature("order_A", "pay_B", sig, secret))
	require.False(t, verifyRazorpaySignature("order_A", "pay_A", sig, "other_secret"))
	require.False(t, verifyRazorpaySignature("order_A", "pay_A", "", secret))
}

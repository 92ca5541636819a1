package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"massbook/pkg/logger"
)

const SignatureHeader = "X-Webhook-Signature"

// WebhookSignatureVerification rejects payment webhooks whose HMAC-SHA512
// signature over the raw body does not match the shared secret. It wraps a
// single route rather than the whole chain so the public booking endpoints
// stay unsigned.
func WebhookSignatureVerification(secret string, log *logger.Logger) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			signature := r.Header.Get(SignatureHeader)
			if signature == "" {
				rejectUnsigned(w, log, r, "Missing signature header")
				return
			}

			body, err := readAndRestoreBody(r)
			if err != nil {
				rejectUnsigned(w, log, r, "Failed to read request body")
				return
			}

			if !verifySignature(body, signature, secret) {
				rejectUnsigned(w, log, r, "Invalid webhook signature")
				return
			}

			next(w, r, ps)
		}
	}
}

func readAndRestoreBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewBuffer(body))

	return body, nil
}

func verifySignature(body []byte, receivedSignature, secret string) bool {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(receivedSignature))
}

func rejectUnsigned(w http.ResponseWriter, log *logger.Logger, r *http.Request, reason string) {
	log.Warn("Payment webhook verification failed",
		"request_id", requestIDFrom(r),
		"reason", reason,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"message":"Unauthorized"}`))
}

package helper

import (
	"fmt"

	"github.com/handboekai/handboek-api/common/random"
)

// RequestIdKey is both the context key and the response header carrying the
// per-request identifier.
const RequestIdKey = "X-Handboek-Request-Id"

func GenRequestID() string {
	return GetTimeString() + random.GetRandomNumberString(8)
}

func MessageWithRequestId(message string, id string) string {
	return fmt.Sprintf("%s (request id: %s)", message, id)
}

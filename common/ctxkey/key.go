package ctxkey

const (
	// RequestId is a per-request unique identifier, also echoed in the
	// X-Handboek-Request-Id response header.
	RequestId = "X-Handboek-Request-Id"

	// OwnerKey is the authenticated owner key for the current request.
	// Set in: middleware/auth. Read by controllers for ownership scoping.
	OwnerKey = "owner_key"

	// KeyRequestBody caches the raw request body for reusable binding.
	KeyRequestBody = "key_request_body"

	// TokenBudget holds the estimated max_tokens for the generation request.
	// Set in: relay controller before the upstream call. Read for logging
	// and persisted on the chapter after generation.
	TokenBudget = "token_budget"
)

package constants

// Redis key formats
const (
	KeyPaymentRecord = "payment:record:%s" // Format: payment:record:{payment_id}

	// Rate Limiting
	KeyRateLimitIP = "rate:ip" // Prefix: rate:ip:{route}:{ip}
)

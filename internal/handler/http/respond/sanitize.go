package respond

import "regexp"

var (
	// apiKey=... in query strings (NewsAPI accepts the key there too)
	apiKeyParamPattern = regexp.MustCompile(`(?i)(api_?key=)[^&\s"]+`)
	// X-Api-Key: ... echoed in transport errors
	apiKeyHeaderPattern = regexp.MustCompile(`(?i)(x-api-key:\s*)\S+`)
	// discord.com/api/webhooks/{id}/{token}
	webhookTokenPattern = regexp.MustCompile(`(/api/webhooks/\d+/)[A-Za-z0-9_\-]+`)
	// user:password@ in postgres:// and mongodb+srv:// DSNs
	dbPasswordPattern = regexp.MustCompile(`://([^:/\s]+):([^@\s]+)@`)
)

// SanitizeError masks secrets in err's message.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return sanitize(err.Error())
}

func sanitize(msg string) string {
	if msg == "" {
		return ""
	}
	msg = apiKeyParamPattern.ReplaceAllString(msg, "${1}****")
	msg = apiKeyHeaderPattern.ReplaceAllString(msg, "${1}****")
	msg = webhookTokenPattern.ReplaceAllString(msg, "${1}****")
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	return msg
}

package chat

import "time"

// SetContextBuilderTimeNow pins the context builder clock in tests.
func SetContextBuilderTimeNow(b *ContextBuilder, timeNow func() time.Time) {
	b.timeNow = timeNow
}

// SetClientAPI swaps the completion API implementation in tests.
func SetClientAPI(c *Client, api completionAPI) {
	c.api = api
}

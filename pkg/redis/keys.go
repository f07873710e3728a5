package redis

import "strings"

// Keyspace prefixes every key the storefront writes.
type Keyspace string

const DefaultKeyspace Keyspace = "sf"

// Key joins the non-blank parts under the keyspace with ':'.
func (k Keyspace) Key(parts ...string) string {
	var b strings.Builder
	b.WriteString(string(k.orDefault()))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			b.WriteByte(':')
			b.WriteString(part)
		}
	}
	return b.String()
}

func (k Keyspace) orDefault() Keyspace {
	if k == "" {
		return DefaultKeyspace
	}
	return k
}

func (c *Client) IdempotencyKey(scope, id string) string {
	return c.keys.Key("idempotency", scope, id)
}

func (c *Client) RateLimitKey(scope string) string {
	return c.keys.Key("rate_limit", scope)
}

func (c *Client) AccessSessionKey(accessID string) string {
	return c.keys.Key("session", "access", accessID)
}

// CacheKey names a read-through cache entry.
func (c *Client) CacheKey(parts ...string) string {
	return c.keys.Key(append([]string{"cache"}, parts...)...)
}

// StateKey names the blob a persisted client store lives under.
func (c *Client) StateKey(namespace, name string) string {
	return c.keys.Key("state", namespace, name)
}

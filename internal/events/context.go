package events

import "context"

type clientIDKey struct{}

// ContextWithClientID returns a new context carrying the front end client ID.
func ContextWithClientID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, clientIDKey{}, id)
}

// ClientIDFromContext extracts the client ID from the context, or "" if absent.
func ClientIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(clientIDKey{}).(string); ok {
		return id
	}
	return ""
}

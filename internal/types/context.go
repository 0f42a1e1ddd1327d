package types

import "context"

type ContextKey string

const (
	CtxRequestID      ContextKey = "ctx_request_id"
	CtxOrganizationID ContextKey = "ctx_organization_id"
	CtxUserID         ContextKey = "ctx_user_id"
	CtxAccessScope    ContextKey = "ctx_access_scope"
	CtxClientIP       ContextKey = "ctx_client_ip"
	CtxUserAgent      ContextKey = "ctx_user_agent"
	CtxDBTransaction  ContextKey = "ctx_db_transaction"
)

func GetRequestID(ctx context.Context) string {
	return getString(ctx, CtxRequestID)
}

func GetOrganizationID(ctx context.Context) string {
	return getString(ctx, CtxOrganizationID)
}

func GetUserID(ctx context.Context) string {
	return getString(ctx, CtxUserID)
}

// GetAccessScope returns the caller's breadth level as resolved by the
// upstream auth layer. Defaults to the narrowest scope when absent.
func GetAccessScope(ctx context.Context) AccessScope {
	if v, ok := ctx.Value(CtxAccessScope).(AccessScope); ok {
		return v
	}
	return AccessScopeOwn
}

func GetClientIP(ctx context.Context) string {
	return getString(ctx, CtxClientIP)
}

func GetUserAgent(ctx context.Context) string {
	return getString(ctx, CtxUserAgent)
}

func getString(ctx context.Context, key ContextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}

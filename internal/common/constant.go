package common

// AuthorizationHeaderName carries the bearer credential on HTTP requests and
// gRPC metadata (lower-cased there).
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the only accepted authorization scheme.
const BearerScheme = "Bearer"

package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the access
// token on incoming requests. The standard "authorization: Bearer ..." header
// is accepted as well.
const AccessTokenHeaderName = "access_token"

// TokenType is the token type tag returned alongside issued access tokens.
const TokenType = "bearer"

// Package types holds the data shapes shared across package boundaries.
package types

// TokenClaims is what a validated token asserts about the caller.
type TokenClaims struct {
	UserID uint
	Role   string
}

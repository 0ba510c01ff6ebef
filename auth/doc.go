// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides admin key validation and privacy hashing.

# Admin Key

Solution management requires the configured admin key in the X-Admin-Key
header:

	err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), cfg.AdminKey)

An unset configured key rejects every request.

# IP Hashing

Votes record a salted hash of the client IP instead of the address:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth

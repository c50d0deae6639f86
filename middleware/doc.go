// Copyright (c) 2026 CryptoQR Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and request/response helpers.

# Logging

WithLogging logs request start and completion with a UUID correlation ID
and duration:

	mux.HandleFunc("POST /api/verify", middleware.WithLogging(h.Verify))

# JSON Helpers

JSONResponse, ErrorResponse, and ParseJSONBody standardize JSON handling
across handlers.

# CORS

CORS wraps the whole mux, reflecting the request origin and answering
preflight requests. The frontend runs on a separate origin.

# Client IPs

GetClientIP resolves the real client address behind proxies
(X-Forwarded-For, X-Real-IP, RemoteAddr). HashIP produces a salted
64-bit HMAC prefix for privacy-preserving storage; raw IPs are never
written to the database.

# Rate Limiting

RateLimiter is a sliding-window counter keyed by arbitrary strings
(hashed IPs here). Verification endpoints allow 20 attempts per
5 minutes per client.
*/
package middleware

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer for communicating with the
// remote data-collection server.
//
// The primary abstraction is [RemoteEngine], which decouples the service
// layer from the underlying protocol and from the engine's local cache. The
// package ships an HTTP/REST implementation ([NewHTTPRemoteEngine]) built on
// resty, plus [SessionClient], the process-wide shared handle that owns the
// single authenticated session the server permits.
//
// Error values defined in errors.go are mapped from HTTP status codes and
// body signatures by mapHTTPError so that callers can use [errors.Is] for
// transport-agnostic error handling (e.g. [ErrAlreadyAuthenticated] for the
// single-session conflict, [ErrBadCredentials] for 401 on login).
package adapter

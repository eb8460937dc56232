// Package mocks provides mock implementations for testing the showcase console.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	kv := mocks.NewMockKVStore(ctrl)
//	kv.EXPECT().Get(gomock.Any(), "token").Return("", false, nil)
package mocks

// Generate mock for KVStore interface from internal/ports package.
// This creates MockKVStore with methods for all KVStore interface methods:
// Get, Set, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=kv_store_mock.go github.com/showcase-labs/showcase-console/internal/ports KVStore

// Generate mock for CredentialAPI interface from internal/ports package.
// This creates MockCredentialAPI with methods for all CredentialAPI interface methods:
// Login, Signup, Me
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=credential_api_mock.go github.com/showcase-labs/showcase-console/internal/ports CredentialAPI

// Generate mock for SessionPersistence interface from internal/ports package.
// This creates MockSessionPersistence with methods for all SessionPersistence interface methods:
// Token, SetToken, ClearToken, User, SetUser, ClearUser, Clear
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=session_persistence_mock.go github.com/showcase-labs/showcase-console/internal/ports SessionPersistence

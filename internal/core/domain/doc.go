// Package domain contains the core business entities for lectern:
// courses, lessons, chunks, search results, and conversation exchanges.
// It has no dependencies on adapters or external services.
package domain

// Package persistence provides database repository implementations.
// It uses GORM as the ORM layer to interact with databases, managing the
// durable transaction ledger. The storage engine enforces the transaction
// identifier uniqueness constraint; the package includes logging for
// traceability and error handling.
package persistence

// Package domain contains the core domain entities and value objects for scoutship.
//
// This package represents the innermost layer of the Clean Architecture. It has
// no dependencies on infrastructure concerns (HTTP, file system, logging) and
// contains only pure business logic.
//
// # Entities
//
//   - [ScoutFile]: A scout file discovered on disk (path, size, content hash)
//   - [IngestResult]: The outcome of decoding and archiving one scout file
//   - [Batch]: An aggregate of decoded matches ready to be sent together
//
// # Design Principles
//
// Domain entities are:
//   - Immutable after construction (where practical)
//   - Free of infrastructure dependencies
//   - Focused on business rules and invariants
//   - Testable without mocks or external systems
package domain

// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - CorpusLoader: Reads articles from files and directories
//   - Normaliser: Transforms raw documents into plain text
//   - NormaliserRegistry: Selects appropriate normaliser
//   - PostProcessorPipeline: Segments document content into sentences
//   - CorpusStore: In-memory corpus lookup for presentation
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - SourceWatcher: Reports file changes. Without it, watch mode is disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven

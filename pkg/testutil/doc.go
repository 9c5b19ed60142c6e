// Package testutil provides fakes and fixtures for testing wrench components.
//
// Key components:
//   - MockGateway: scriptable backend gateway recording every request
//   - ScriptedDecider: answers confirm and prompt requests from a script
//   - StaticPicker: returns fixed paths for the path picker
//   - MemoryStore: in-memory preferences store
//   - Entry builders: UserEntry, CharEntry, Backup, Profile
//
// Usage guidelines:
//   - Mocks fall back to a successful default when a Func field is nil
//   - All test data should be defined inline, not in external files
//   - Each test should build its own fakes; nothing here is shared state
package testutil

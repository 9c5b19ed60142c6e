// Package types defines the data model shared by wrench's packages: settings
// entries and their grouping into profiles and servers, backup snapshots, the
// tagged SourceItem variant used by the selection coordinator, and the
// transient import/export payloads.
package types

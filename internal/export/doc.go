// Package export writes fetched emails to disk, either as individual RFC 822
// .eml files or as a single self-contained HTML digest. Both exporters are
// deterministic for a given input set, so re-running an export overwrites the
// previous files instead of accumulating duplicates.
package export

// Package listing implements S3 prefix and delimiter listing semantics over a
// flat snapshot of object entries.
//
// A listing runs three pure steps in order: FilterByPrefix restricts the
// snapshot to keys under the requested prefix, CollapseCommonPrefixes folds
// keys that share a segment up to the first delimiter after the prefix into
// common prefixes, and FilterByCommonPrefixes drops every entry absorbed by
// one of those prefixes. Apply runs the whole pipeline.
//
// Only one delimiter level is collapsed per call. Keys nested deeper below a
// common prefix are absorbed into it rather than expanded.
//
// None of the functions retain state or modify their inputs, so concurrent
// listings over independent snapshots need no coordination.
package listing

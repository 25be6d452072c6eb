// Package filter decides which project paths are kept out of the archive.
//
// Matching is literal substring containment over a lowercased path with
// forward slashes. Rules that look like globs ("*.apk") are not expanded:
// they only match paths that contain the asterisk itself. GlobLikeRules lets
// callers report such rules.
package filter

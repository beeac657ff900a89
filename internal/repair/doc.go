// Package repair detects GitHub's "repository moved" notice in fetch, pull and push
// output and rewrites the remote URL to the new location.
//
// Recognized notices are a registry of signatures taken from configuration. When a
// notice is found the new locator is taken from the same output; if the output does
// not carry one, an optional resolver (the GitHub API) is asked, and only when the
// user opted in is a configured fallback template used. Otherwise the repair fails
// with ErrNoReplacementURL rather than guessing.
package repair

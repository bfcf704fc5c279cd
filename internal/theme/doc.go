// Package theme provides named popup styles. Bundled themes are embedded in
// the binary; user themes in ~/.config/popmenu/themes/ override them by name
// and are reloaded when their files change.
package theme

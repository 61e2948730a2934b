//go:build debug

package config

// DebugBuild enables developer hotkeys, the HUD and prefab hot reload.
const DebugBuild = true

package config

// Version participates in cache keys: bumping it invalidates every
// cached artifact produced by older builds.
const Version = "0.2.0"

const SourceFileExt = ".js"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".js", ".mjs", ".cjs"}

// ConfigFileName is the per-project configuration file, discovered by
// walking up from the input file's directory.
const ConfigFileName = ".mangle.yml"

// DefaultCacheDir is where cached outputs go when caching is enabled
// without an explicit directory.
const DefaultCacheDir = ".mangle-cache"

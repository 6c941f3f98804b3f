package model

import (
	"strings"
)

// HTTP verbs an endpoint can be bound to
const (
	MethodGet     = "GET"
	MethodPost    = "POST"
	MethodPut     = "PUT"
	MethodDelete  = "DELETE"
	MethodPatch   = "PATCH"
	MethodHead    = "HEAD"
	MethodOptions = "OPTIONS"

	// MethodAny matches every verb (RequestMapping without a resolvable method)
	MethodAny = "ANY"
)

// CacheVersion is the schema version of the persisted cache artifact.
// Bump it whenever Endpoint or FileCacheEntry change shape.
const CacheVersion = "1.0.0"

// Endpoint is one HTTP route declared by an annotated controller or client method.
// Values are immutable once extracted.
type Endpoint struct {
	// Normalized route (JoinPaths(OriginalClassPath, OriginalMethodPath))
	FullPath string `json:"fullPath"`

	// Un-normalized concatenation of the two fragments
	RawPath string `json:"rawPath"`

	// Path fragments exactly as written in the annotations
	OriginalClassPath  string `json:"originalClassPath"`
	OriginalMethodPath string `json:"originalMethodPath"`

	// GET, POST, ... or ANY
	HTTPMethod string `json:"httpMethod"`

	ClassName  string `json:"className"`
	MethodName string `json:"methodName"`
	FilePath   string `json:"filePath"`

	// 1-based source span of the mapping annotation (or method header)
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine"`
	EndColumn   int `json:"endColumn"`
}

// Key returns the identity used to collapse duplicate search hits
func (e Endpoint) Key() string {
	return e.ClassName + ":" + e.FullPath + ":" + e.HTTPMethod
}

// String returns a human-readable representation of the endpoint
func (e Endpoint) String() string {
	return "[" + e.HTTPMethod + "] " + e.FullPath + " -> " + e.ClassName + "." + e.MethodName
}

// RawPath builds the un-normalized route the way it reads in source:
// class path followed by the method path, adding a slash only when missing.
func RawPath(classPath, methodPath string) string {
	if methodPath == "" {
		return classPath
	}
	if classPath == "" {
		return methodPath
	}
	if strings.HasPrefix(methodPath, "/") {
		return classPath + methodPath
	}
	return classPath + "/" + methodPath
}

// FileCacheEntry is what the cache remembers about one file.
// An empty Endpoints slice is a cached fact ("no endpoints"), not a miss.
type FileCacheEntry struct {
	LastModified int64      `json:"lastModified"` // mtime at extraction, Unix nanoseconds
	Endpoints    []Endpoint `json:"endpoints"`
}

// CacheArtifact is the persisted form of the file cache
type CacheArtifact struct {
	Version    string                     `json:"version"`
	LastUpdate int64                      `json:"lastUpdate"` // Unix milliseconds
	FileData   map[string]*FileCacheEntry `json:"fileData"`
}

// NewCacheArtifact creates an empty artifact stamped with the current schema version
func NewCacheArtifact() *CacheArtifact {
	return &CacheArtifact{
		Version:  CacheVersion,
		FileData: make(map[string]*FileCacheEntry),
	}
}

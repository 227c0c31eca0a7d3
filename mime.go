package servefs

import (
	"path"
	"strings"
)

// Extension to media type.  Kept static so that the result does not depend on
// the mime.types files installed on the host.
var mimeTypes = map[string]string{
	"html":        "text/html;charset=utf-8",
	"htm":         "text/html;charset=utf-8",
	"css":         "text/css;charset=utf-8",
	"js":          "application/javascript;charset=utf-8",
	"mjs":         "application/javascript;charset=utf-8",
	"json":        "application/json",
	"map":         "application/json",
	"webmanifest": "application/manifest+json",
	"txt":         "text/plain;charset=utf-8",
	"md":          "text/markdown;charset=utf-8",
	"csv":         "text/csv;charset=utf-8",
	"xml":         "application/xml",
	"svg":         "image/svg+xml",
	"png":         "image/png",
	"jpg":         "image/jpeg",
	"jpeg":        "image/jpeg",
	"gif":         "image/gif",
	"webp":        "image/webp",
	"avif":        "image/avif",
	"bmp":         "image/bmp",
	"ico":         "image/x-icon",
	"woff":        "font/woff",
	"woff2":       "font/woff2",
	"ttf":         "font/ttf",
	"otf":         "font/otf",
	"wasm":        "application/wasm",
	"pdf":         "application/pdf",
	"zip":         "application/zip",
	"mp3":         "audio/mpeg",
	"ogg":         "audio/ogg",
	"wav":         "audio/wav",
	"mp4":         "video/mp4",
	"webm":        "video/webm",
	"bin":         "application/octet-stream",
}

// ContentType infers a media type from the extension of the given
// slash separated file name.  It returns an empty string when there is no
// extension, or the extension is not recognized.
func ContentType(name string) string {
	ext := path.Ext(name)
	if ext == "" {
		return ""
	}
	return mimeTypes[strings.ToLower(ext[1:])]
}

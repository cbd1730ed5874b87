// Package useragent detects the browser family and version from a
// User-Agent header.
//
//	b := useragent.FromRequest(r)
//	b.Name          // "chrome"
//	b.Version       // "124.0.6367.60"
//	b.DisplayName() // "Chrome"
//
// Detection is keyword based and ordered so that browsers embedding another
// engine's token (Edge and Opera report "Chrome/", Chrome reports "Safari/")
// are matched before the engine they imitate.
package useragent

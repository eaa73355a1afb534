// Package httputil fetches small remote documents over HTTP.
//
// [Fetch] issues a GET request, caps the response size and marks transient
// failures (network errors, 5xx and 429 responses) with [retry.Transient],
// so callers can wrap it in a [retry.Policy]:
//
//	var data []byte
//	err := retry.Network.Do(ctx, func() error {
//	    var err error
//	    data, err = httputil.Fetch(ctx, nil, url, httputil.DefaultMaxBytes)
//	    return err
//	})
//
// The stop-word loader uses this to read tables published at http(s) URLs.
package httputil

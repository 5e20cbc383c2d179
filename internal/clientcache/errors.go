package clientcache

import "errors"

// ErrNotInCache: la mutación optimista apunta a un registro que
// la caché no conoce; el caller debe recargar antes de reintentar.
var ErrNotInCache = errors.New("client not in cache")

// Package server serves the catalog REST API consumed by the shelf client.
//
// Routes, for each collection of Stores, Products and ProductComments:
//
//	GET    /api/{collection}?store=&product=&status=&search=&ordering=
//	GET    /api/{collection}/count?store=&product=&status=&search=
//	GET    /api/{collection}/{id}
//	POST   /api/{collection}
//	PUT    /api/{collection}/{id}
//	DELETE /api/{collection}/{id}
//
// ProductComments is append-only and answers PUT and DELETE with 405. Errors
// are returned as {"error": "..."}. /healthz reports database reachability and
// /metrics exposes Prometheus request metrics.
package server

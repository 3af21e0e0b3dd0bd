// Package remote provides clients for the remote catalog service.
//
// Two wire shapes are supported behind the Service interface:
//
//   - RESTClient: the plain JSON API under /api, with query-string filters
//     (?store=&product=&search=&status=&ordering=) and a /count sub-resource.
//   - ODataClient: an OData v2 service under /odata, with $filter, $orderby,
//     (id) key paths and the $count sub-resource.
//
// Catalog layers typed helpers over either one:
//
//	svc, err := remote.New(cfg.Backend, cfg.APIURL)
//	if err != nil {
//		log.Fatalf("remote: %v", err)
//	}
//	cat := remote.NewCatalog(svc)
//	products, err := cat.StoreProducts(ctx, storeID, remote.Query{})
//
// A 404 from either backend is reported as an error wrapping ErrNotFound.
// Other failures carry a *StatusError. Nothing is retried.
package remote

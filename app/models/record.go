package models

// Reference collections served by the catalog endpoints.
const (
	CollectionProducts   = "products"
	CollectionCategories = "categories"
	CollectionCoupons    = "coupons"
	CollectionEmployees  = "employees"
	CollectionJobs       = "jobs"
	CollectionBanner     = "banner"
	CollectionPosts      = "problemAndSolution"
)

// CatalogCollections lists every collection the catalog service may touch.
var CatalogCollections = []string{
	CollectionProducts,
	CollectionCategories,
	CollectionCoupons,
	CollectionEmployees,
	CollectionJobs,
	CollectionBanner,
	CollectionPosts,
}

// Record is one schemaless catalog document.
type Record = map[string]any

// Package routes declares the HTTP surface.
package routes

import (
	"net/http"

	"github.com/holisticagro/agromart/app/controllers"
	"github.com/holisticagro/agromart/app/models"
	"github.com/holisticagro/agromart/pkg/ctx"
	"github.com/holisticagro/agromart/pkg/middleware"
	"github.com/holisticagro/agromart/pkg/rbac"
	"github.com/holisticagro/agromart/pkg/router"
)

// Deps are the handlers and gates the route table needs.
type Deps struct {
	Controllers *controllers.Set
	Verifier    middleware.Verifier
	Roles       rbac.RoleResolver
	// AuthLimit, when set, guards POST /authentication.
	AuthLimit router.Middleware
}

// RegisterAPI mounts every endpoint on r.
func RegisterAPI(r *router.Router, d Deps) {
	h := d.Controllers
	authn := router.Middleware(middleware.Authenticate(d.Verifier))
	admin := router.Middleware(rbac.RequireAdmin(d.Roles))

	r.Get("/", "health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("server is running")) //nolint:errcheck
	})

	var limits []router.Middleware
	if d.AuthLimit != nil {
		limits = append(limits, d.AuthLimit)
	}
	r.Post("/authentication", "auth.issue", ctx.Wrap(h.Auth.Issue), limits...)

	// Public catalog.
	r.Get("/banner", "banner.index", ctx.Wrap(h.Catalog.List(models.CollectionBanner)))
	r.Get("/products", "products.index", ctx.Wrap(h.Catalog.List(models.CollectionProducts)))
	r.Get("/products/{category}", "products.category", ctx.Wrap(h.Catalog.ByCategory))
	r.Get("/search-products", "products.search", ctx.Wrap(h.Catalog.Search))
	r.Get("/product/{id}", "products.show", ctx.Wrap(h.Catalog.Show(models.CollectionProducts)))
	r.Post("/products-by-ids", "products.by_ids", ctx.Wrap(h.Catalog.ByIDs))
	r.Get("/categories", "categories.index", ctx.Wrap(h.Catalog.List(models.CollectionCategories)))
	r.Get("/employees", "employees.index", ctx.Wrap(h.Catalog.List(models.CollectionEmployees)))
	r.Get("/jobs", "jobs.index", ctx.Wrap(h.Catalog.List(models.CollectionJobs)))
	r.Get("/problem-and-solution-posts", "posts.index", ctx.Wrap(h.Catalog.List(models.CollectionPosts)))
	r.Get("/post-by-id/{id}", "posts.show", ctx.Wrap(h.Catalog.Show(models.CollectionPosts)))

	// Users.
	r.Post("/user", "users.register", ctx.Wrap(h.Users.Register))
	r.Get("/user/{phone}", "users.show", ctx.Wrap(h.Users.Show))

	// Documents.
	r.Post("/upload-files", "files.upload", ctx.Wrap(h.Documents.Upload))
	r.Get("/get-files", "files.index", ctx.Wrap(h.Documents.List))
	r.Get("/files/{name}", "files.show", ctx.Wrap(h.Documents.Serve))

	// Signed-in callers.
	member := r.Group("", authn)
	member.Patch("/add-to-cart", "cart.add", ctx.Wrap(h.Cart.Add))
	member.Post("/add-order", "orders.place", ctx.Wrap(h.Orders.Place))
	member.Get("/orders", "orders.index", ctx.Wrap(h.Orders.List))
	member.Get("/coupons", "coupons.index", ctx.Wrap(h.Catalog.List(models.CollectionCoupons)))

	// Admins.
	staff := r.Group("", authn, admin)
	staff.Post("/add-product", "products.store", ctx.Wrap(h.Catalog.Create(models.CollectionProducts)))
	staff.Patch("/update-product/{id}", "products.update", ctx.Wrap(h.Catalog.Update(models.CollectionProducts)))
	staff.Delete("/delete-product/{id}", "products.destroy", ctx.Wrap(h.Catalog.Delete(models.CollectionProducts)))
	staff.Post("/add-category", "categories.store", ctx.Wrap(h.Catalog.Create(models.CollectionCategories)))
	staff.Delete("/delete-category/{id}", "categories.destroy", ctx.Wrap(h.Catalog.Delete(models.CollectionCategories)))
	staff.Post("/add-coupon", "coupons.store", ctx.Wrap(h.Catalog.Create(models.CollectionCoupons)))
	staff.Delete("/delete-coupon/{id}", "coupons.destroy", ctx.Wrap(h.Catalog.Delete(models.CollectionCoupons)))
	staff.Post("/add-employee", "employees.store", ctx.Wrap(h.Catalog.Create(models.CollectionEmployees)))
	staff.Delete("/delete-employee/{id}", "employees.destroy", ctx.Wrap(h.Catalog.Delete(models.CollectionEmployees)))
	staff.Post("/add-job", "jobs.store", ctx.Wrap(h.Catalog.Create(models.CollectionJobs)))
	staff.Delete("/delete-job/{id}", "jobs.destroy", ctx.Wrap(h.Catalog.Delete(models.CollectionJobs)))
	staff.Post("/add-problem-and-solution-post", "posts.store", ctx.Wrap(h.Catalog.Create(models.CollectionPosts)))
	staff.Delete("/delete-problem-and-solution-post/{id}", "posts.destroy", ctx.Wrap(h.Catalog.Delete(models.CollectionPosts)))
	staff.Patch("/update-order-status/{id}", "orders.update_status", ctx.Wrap(h.Orders.UpdateStatus))
	staff.Delete("/delete-file/{id}", "files.destroy", ctx.Wrap(h.Documents.Delete))
}

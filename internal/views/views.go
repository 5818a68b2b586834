package views

// View names the cached derived datasets served by the dashboard. Every view
// listed here is read-through cached in Redis; period sale listings are not
// views because cursor pages cannot be cached whole.
type View string

const (
	ViewProducts         View = "products"
	ViewSalesAnalytics   View = "sales_analytics"
	ViewCategoryRollup   View = "category_rollup"
	ViewDashboardSummary View = "dashboard_summary"
)

// Mutation identifies a write that stales one or more derived views.
type Mutation string

const (
	MutationProductWrite Mutation = "product_write"
	MutationSaleWrite    Mutation = "sale_write"
)

// dependents maps each mutation to every view it invalidates. Product writes
// reach the analytics views too: deleting a product cascades its sales rows.
// Sale writes leave the catalog view alone.
var dependents = map[Mutation][]View{
	MutationProductWrite: {
		ViewProducts,
		ViewSalesAnalytics,
		ViewCategoryRollup,
		ViewDashboardSummary,
	},
	MutationSaleWrite: {
		ViewSalesAnalytics,
		ViewCategoryRollup,
		ViewDashboardSummary,
	},
}

// Dependents returns the views staled by the mutation.
func Dependents(mutation Mutation) []View {
	views := dependents[mutation]
	out := make([]View, len(views))
	copy(out, views)
	return out
}

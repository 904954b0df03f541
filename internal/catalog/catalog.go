// Package catalog holds the static product catalog. Products and their KPI
// fields are defined at build time; the portal only references them by id.
package catalog

type Field struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Group string `json:"group"` // KR1 / KR2 / KR3
}

type Product struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

var products = []Product{
	{
		ID:   "sams",
		Name: "SAMS",
		Fields: []Field{
			{Name: "kr1_tof_actual", Label: "Time on Feature (actual)", Group: "KR1"},
			{Name: "kr1_tof_target", Label: "Time on Feature (target)", Group: "KR1"},
			{Name: "kr2_active_users", Label: "Active users", Group: "KR2"},
			{Name: "kr2_nps", Label: "NPS", Group: "KR2"},
			{Name: "kr3_uptime", Label: "Uptime %", Group: "KR3"},
		},
	},
	{
		ID:   "stigviewer",
		Name: "STIG Viewer",
		Fields: []Field{
			{Name: "kr1_scans_completed", Label: "Scans completed", Group: "KR1"},
			{Name: "kr1_findings_closed", Label: "Findings closed", Group: "KR1"},
			{Name: "kr2_active_users", Label: "Active users", Group: "KR2"},
			{Name: "kr3_mean_scan_time", Label: "Mean scan time (s)", Group: "KR3"},
		},
	},
	{
		ID:   "navigator",
		Name: "Navigator",
		Fields: []Field{
			{Name: "kr1_routes_planned", Label: "Routes planned", Group: "KR1"},
			{Name: "kr2_active_users", Label: "Active users", Group: "KR2"},
			{Name: "kr2_retention", Label: "30-day retention %", Group: "KR2"},
			{Name: "kr3_api_latency_p99", Label: "API latency p99 (ms)", Group: "KR3"},
		},
	},
}

// All returns every product in catalog order.
func All() []Product {
	return products
}

// Get looks a product up by id.
func Get(id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

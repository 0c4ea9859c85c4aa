package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/turtacn/JobPortal/internal/interfaces/http/handlers"
)

// RouteInfo is one line of the request surface.
type RouteInfo struct {
	Method  string `json:"method"`
	Path    string `json:"path"`
	Handler string `json:"handler"`
}

// RouteListing is the printable request surface of an App.
type RouteListing []RouteInfo

func (l RouteListing) TableHeaders() []string { return []string{"METHOD", "PATH", "HANDLER"} }

func (l RouteListing) TableRows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, r := range l {
		rows = append(rows, []string{r.Method, r.Path, r.Handler})
	}
	return rows
}

// ListRoutes describes every path the App answers, in match order.
func ListRoutes(app *App) RouteListing {
	listing := RouteListing{
		{Method: http.MethodOptions, Path: "*", Handler: "cors pre-flight (204)"},
		{Method: http.MethodGet, Path: "/healthz", Handler: "liveness"},
		{Method: http.MethodGet, Path: "/readyz", Handler: "readiness"},
	}
	if app.Collector != nil {
		listing = append(listing, RouteInfo{Method: http.MethodGet, Path: app.Config.Metrics.Path, Handler: "prometheus"})
	}
	listing = append(listing, RouteInfo{Method: http.MethodGet, Path: "/", Handler: "welcome"})

	for _, e := range app.Routes.Entries() {
		listing = append(listing, RouteInfo{Method: "*", Path: e.Prefix + "/*", Handler: describeGroup(e.Group)})
	}
	return append(listing, RouteInfo{Method: "*", Path: "*", Handler: "not found (404)"})
}

func describeGroup(h http.Handler) string {
	if area, ok := h.(*handlers.AreaHandler); ok {
		return area.Area() + " (not implemented, 501)"
	}
	return fmt.Sprintf("%T", h)
}

func newRoutesCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the registered route table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			app, err := BuildApp(cfg, nil)
			if err != nil {
				return err
			}
			return PrintResult(cmd, opts.OutputFormat, ListRoutes(app))
		},
	}
}

//Personal.AI order the ending

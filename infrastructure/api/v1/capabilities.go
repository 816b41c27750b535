package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/helixml/ftsq"
	"github.com/helixml/ftsq/infrastructure/api/middleware"
	"github.com/helixml/ftsq/infrastructure/api/v1/dto"
)

// CapabilitiesRouter reports engine facts and suppressed schema elements.
type CapabilitiesRouter struct {
	client *ftsq.Client
}

// NewCapabilitiesRouter creates a new CapabilitiesRouter.
func NewCapabilitiesRouter(client *ftsq.Client) *CapabilitiesRouter {
	return &CapabilitiesRouter{client: client}
}

// Routes returns the chi router for capability endpoints.
func (r *CapabilitiesRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", r.Get)
	return router
}

// Get handles GET /api/v1/capabilities.
func (r *CapabilitiesRouter) Get(w http.ResponseWriter, _ *http.Request) {
	facts := r.client.Facts()

	generations := make([]string, 0, 3)
	for _, g := range facts.Generations() {
		generations = append(generations, g.String())
	}

	suppressed := r.client.Catalog().Suppressed()
	hidden := make([]dto.SuppressionResponse, 0, len(suppressed))
	for _, s := range suppressed {
		hidden = append(hidden, dto.SuppressionResponse{Element: s.Element(), Reason: s.Reason()})
	}

	middleware.WriteJSON(w, http.StatusOK, dto.CapabilitiesResponse{
		Engine:      string(facts.Engine()),
		Generations: generations,
		Suppressed:  hidden,
	})
}

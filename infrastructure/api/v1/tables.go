// Package v1 implements the version 1 HTTP routes.
package v1

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/helixml/ftsq"
	"github.com/helixml/ftsq/application/service"
	"github.com/helixml/ftsq/domain/fts"
	"github.com/helixml/ftsq/infrastructure/api/middleware"
	"github.com/helixml/ftsq/infrastructure/api/v1/dto"
)

// maxDocumentBytes bounds a single document request body.
const maxDocumentBytes = 1 << 20

// TablesRouter handles table, document and search endpoints.
type TablesRouter struct {
	client *ftsq.Client
	logger *slog.Logger
}

// NewTablesRouter creates a new TablesRouter.
func NewTablesRouter(client *ftsq.Client) *TablesRouter {
	return &TablesRouter{
		client: client,
		logger: client.Logger().With("component", "api.tables"),
	}
}

// Routes returns the chi router for table endpoints.
func (r *TablesRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Route("/{table}", func(tr chi.Router) {
		tr.Get("/", r.Get)
		tr.Get("/count", r.Count)
		tr.Get("/search", r.Search)
		tr.Post("/documents", r.AddDocument)
	})

	return router
}

// List handles GET /api/v1/tables.
func (r *TablesRouter) List(w http.ResponseWriter, req *http.Request) {
	catalog := r.client.Catalog()
	tables := catalog.Tables()

	data := make([]dto.TableResponse, 0, len(tables))
	for _, schema := range tables {
		resp, err := tableResponse(catalog, schema)
		if err != nil {
			middleware.WriteError(w, req, err, r.logger)
			return
		}
		data = append(data, resp)
	}

	middleware.WriteJSON(w, http.StatusOK, dto.TableListResponse{Data: data})
}

// Get handles GET /api/v1/tables/{table}.
func (r *TablesRouter) Get(w http.ResponseWriter, req *http.Request) {
	catalog := r.client.Catalog()
	name := chi.URLParam(req, "table")

	schema, ok := catalog.Table(name)
	if !ok {
		middleware.WriteError(w, req, unknownTable(name), r.logger)
		return
	}

	resp, err := tableResponse(catalog, schema)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, resp)
}

// Count handles GET /api/v1/tables/{table}/count.
func (r *TablesRouter) Count(w http.ResponseWriter, req *http.Request) {
	name := chi.URLParam(req, "table")

	n, err := r.client.Count(req.Context(), name)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, dto.CountResponse{Table: name, Count: n})
}

// AddDocument handles POST /api/v1/tables/{table}/documents.
func (r *TablesRouter) AddDocument(w http.ResponseWriter, req *http.Request) {
	name := chi.URLParam(req, "table")

	var body dto.DocumentRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxDocumentBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&body); err != nil {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "invalid request body", err), r.logger)
		return
	}
	if len(body.Values) == 0 {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "values are required", nil), r.logger)
		return
	}

	id, err := r.client.Add(req.Context(), name, body.Values)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, dto.DocumentCreatedResponse{RowID: id})
}

// Search handles GET /api/v1/tables/{table}/search.
func (r *TablesRouter) Search(w http.ResponseWriter, req *http.Request) {
	name := chi.URLParam(req, "table")

	params, err := dto.ParseSearchParams(req.URL.Query())
	if err != nil {
		middleware.WriteError(w, req, badParams(err), r.logger)
		return
	}
	operand, err := params.Operand()
	if err != nil {
		middleware.WriteError(w, req, badParams(err), r.logger)
		return
	}

	var opts []service.SearchOption
	if params.Limit > 0 {
		opts = append(opts, service.WithLimit(params.Limit))
	}
	if params.Offset > 0 {
		opts = append(opts, service.WithOffset(params.Offset))
	}
	opts = append(opts, service.WithRankOrder(params.Rank))

	docs, err := r.client.Search(req.Context(), name, params.Field, params.Lookup, operand, opts...)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	data := make([]dto.DocumentResponse, len(docs))
	for i, d := range docs {
		data[i] = dto.DocumentResponse{RowID: d.RowID(), Rank: d.Rank(), Values: d.Values()}
	}
	middleware.WriteJSON(w, http.StatusOK, dto.SearchResponse{
		Data: data,
		Meta: dto.SearchMeta{
			Table:  name,
			Field:  params.Field,
			Lookup: params.Lookup,
			Count:  len(data),
		},
	})
}

func tableResponse(catalog service.Catalog, schema fts.Schema) (dto.TableResponse, error) {
	lookups, err := catalog.Lookups(schema.Name())
	if err != nil {
		return dto.TableResponse{}, err
	}

	fields := make([]dto.FieldResponse, 0, len(schema.Fields()))
	for _, f := range schema.Fields() {
		fields = append(fields, dto.FieldResponse{
			Name:      f.Name(),
			Kind:      f.Kind(),
			Tokenizer: f.Tokenizer().Name(),
		})
	}

	return dto.TableResponse{
		Name:    schema.Name(),
		Module:  schema.Generation().String(),
		Fields:  fields,
		Lookups: lookups,
		Rank:    schema.HasRank(),
	}, nil
}

func unknownTable(name string) error {
	return middleware.NewAPIError(http.StatusNotFound, "unknown table "+name, service.ErrUnknownTable)
}

// badParams keeps domain errors (empty term lists) on their own mapping
// and turns parameter errors into 400s.
func badParams(err error) error {
	if errors.Is(err, dto.ErrInvalidParameter) {
		return middleware.NewAPIError(http.StatusBadRequest, err.Error(), err)
	}
	return err
}

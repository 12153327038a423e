package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"html/template"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"bookorders/pkg/logger"
	"bookorders/pkg/order"
	"bookorders/pkg/otel"
)

//go:embed page.html
var pageHTML string

const maxFieldBytes = 64 << 10

type ctxKey int

const requestIDKey ctxKey = 1

// handlers is the rendering layer: it shows the manager's state and turns
// user actions into manager calls.
type handlers struct {
	mgr    *order.Manager
	log    *logger.Logger
	tracer trace.Tracer
	page   *template.Template
}

func newHandlers(mgr *order.Manager, log *logger.Logger, tracer trace.Tracer) (*handlers, error) {
	page, err := template.New("page").Parse(pageHTML)
	if err != nil {
		return nil, err
	}
	return &handlers{mgr: mgr, log: log, tracer: tracer, page: page}, nil
}

func (h *handlers) routes() http.Handler {
	r := mux.NewRouter()
	r.Use(h.requestIDMiddleware, h.traceMiddleware)

	r.HandleFunc("/health", h.health).Methods(http.MethodGet)
	r.HandleFunc("/", h.index).Methods(http.MethodGet)
	r.HandleFunc("/draft", h.saveDraftForm).Methods(http.MethodPost)
	r.HandleFunc("/orders", h.addOrderForm).Methods(http.MethodPost)
	r.HandleFunc("/sort", h.sortForm).Methods(http.MethodPost)
	r.HandleFunc("/orders/{index:[0-9]+}/remove", h.removeOrderForm).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/orders", h.listOrders).Methods(http.MethodGet)
	api.HandleFunc("/orders", h.clearOrders).Methods(http.MethodDelete)
	api.HandleFunc("/orders/sort/{by}", h.sortOrders).Methods(http.MethodPost)
	api.HandleFunc("/orders/{index:[0-9]+}", h.deleteOrder).Methods(http.MethodDelete)
	api.HandleFunc("/draft", h.getDraft).Methods(http.MethodGet)
	api.HandleFunc("/draft/commit", h.commitDraft).Methods(http.MethodPost)
	api.HandleFunc("/draft/{field}", h.updateDraftField).Methods(http.MethodPut)

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	return r
}

type pageData struct {
	Draft            order.Order
	Orders           []order.Order
	DeliveryServices []string
	DeliveryMethods  []string
	Sort             order.SortKey
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	draft, _ := h.mgr.Draft()
	data := pageData{
		Draft:            draft,
		Orders:           h.mgr.Orders(),
		DeliveryServices: order.DeliveryServices,
		DeliveryMethods:  order.DeliveryMethods,
		Sort:             h.mgr.LastSort(),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.page.Execute(w, data); err != nil {
		h.log.Error(ctx, "render page", "error", err)
	}
}

// formFields collects the submitted draft fields.
func formFields(r *http.Request) (map[string]string, bool) {
	if err := r.ParseForm(); err != nil {
		return nil, false
	}
	fields := make(map[string]string, len(order.Fields))
	for _, f := range order.Fields {
		if vs, ok := r.PostForm[f]; ok && len(vs) > 0 {
			fields[f] = vs[0]
		}
	}
	return fields, true
}

func (h *handlers) saveDraftForm(w http.ResponseWriter, r *http.Request) {
	fields, ok := formFields(r)
	if !ok {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	h.mgr.UpdateFields(r.Context(), fields)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *handlers) addOrderForm(w http.ResponseWriter, r *http.Request) {
	fields, ok := formFields(r)
	if !ok {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	h.mgr.CommitFields(r.Context(), fields)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *handlers) sortForm(w http.ResponseWriter, r *http.Request) {
	if !h.mgr.Sort(r.Context(), order.SortKey(r.PostFormValue("by"))) {
		http.Error(w, "unknown sort", http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *handlers) removeOrderForm(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		http.Error(w, "invalid index", http.StatusBadRequest)
		return
	}
	h.mgr.Remove(r.Context(), index)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// listOrders returns the current order sequence.
// @Summary List orders
// @Produce json
// @Success 200 {array} order.Order
// @Router /api/orders [get]
func (h *handlers) listOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.mgr.Orders())
}

// sortOrders reorders the sequence.
// @Summary Sort orders
// @Produce json
// @Param by path string true "Sort key" Enums(idRev, cusNm)
// @Success 200 {array} order.Order
// @Failure 400
// @Router /api/orders/sort/{by} [post]
func (h *handlers) sortOrders(w http.ResponseWriter, r *http.Request) {
	if !h.mgr.Sort(r.Context(), order.SortKey(mux.Vars(r)["by"])) {
		http.Error(w, "unknown sort", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, h.mgr.Orders())
}

// deleteOrder removes the order at the given position.
// @Summary Remove order
// @Param index path int true "Position in the current sequence"
// @Success 204
// @Router /api/orders/{index} [delete]
func (h *handlers) deleteOrder(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		http.Error(w, "invalid index", http.StatusBadRequest)
		return
	}
	h.mgr.Remove(r.Context(), index)
	w.WriteHeader(http.StatusNoContent)
}

// clearOrders drops every order.
// @Summary Clear orders
// @Success 204
// @Router /api/orders [delete]
func (h *handlers) clearOrders(w http.ResponseWriter, r *http.Request) {
	h.mgr.Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

type draftResponse struct {
	Draft order.Order `json:"draft"`
	State string      `json:"state"`
}

// getDraft returns the draft.
// @Summary Get draft
// @Produce json
// @Success 200 {object} draftResponse
// @Router /api/draft [get]
func (h *handlers) getDraft(w http.ResponseWriter, r *http.Request) {
	draft, state := h.mgr.Draft()
	writeJSON(w, http.StatusOK, draftResponse{Draft: draft, State: state.String()})
}

// updateDraftField sets one draft field from the raw request body.
// @Summary Update draft field
// @Accept plain
// @Produce json
// @Param field path string true "Field name"
// @Param value body string true "Raw field text"
// @Success 200 {object} draftResponse
// @Failure 404
// @Router /api/draft/{field} [put]
func (h *handlers) updateDraftField(w http.ResponseWriter, r *http.Request) {
	field := mux.Vars(r)["field"]
	if !order.IsField(field) {
		http.Error(w, "unknown field", http.StatusNotFound)
		return
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxFieldBytes))
	if err != nil {
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}
	h.mgr.UpdateField(r.Context(), field, string(raw))
	draft, state := h.mgr.Draft()
	writeJSON(w, http.StatusOK, draftResponse{Draft: draft, State: state.String()})
}

// commitDraft appends the draft to the order list and resets it.
// @Summary Commit draft
// @Produce json
// @Success 201 {object} order.Order
// @Router /api/draft/commit [post]
func (h *handlers) commitDraft(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, h.mgr.Commit(r.Context()))
}

func (h *handlers) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *handlers) traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := propagation.TraceContext{}.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		ctx = otel.InjectTracing(ctx, h.tracer)

		reqID, _ := ctx.Value(requestIDKey).(string)
		ctx, span := otel.AddSpan(ctx, spanName(r),
			attribute.String("http.method", r.Method),
			attribute.String("request_id", reqID),
		)
		defer span.End()

		h.log.Debug(ctx, "request", "method", r.Method, "path", r.URL.Path, "request_id", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// spanName names a request span by its route template so that path
// parameters do not end up in the name.
func spanName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return r.Method + " " + tpl
		}
	}
	return r.Method + " " + r.URL.Path
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"acc-portal/internal/domain/validation"

	"github.com/gin-gonic/gin"
)

// Row is one line of a console entity list.
type Row struct {
	ID     string
	Title  string
	Detail string
}

type FieldKind int

const (
	FieldText FieldKind = iota
	FieldTextarea
	FieldCheckbox
	FieldSelect
	FieldURL
)

type Option struct {
	Value string
	Label string
}

// Field is one input of an entity form. Name is the JSON name of the
// field on the entity and its patch.
type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
	// KeepIfBlank leaves the stored value alone when the input is empty.
	KeepIfBlank bool
	Options     []Option
	// LoadOptions fills a select from stored data, e.g. categories.
	LoadOptions func(ctx context.Context) ([]Option, error)
}

// Entity is a content collection the console lists, edits and deletes
// from.
type Entity struct {
	Name   string
	Title  string
	Fields []Field
	// AdminWrite restricts create and edit to admins.
	AdminWrite bool
	// AdminDelete restricts deletion to admins.
	AdminDelete bool

	rows   func(ctx context.Context) ([]Row, error)
	load   func(ctx context.Context, id string) (map[string]any, error)
	create func(ctx context.Context, values map[string]any) error
	update func(ctx context.Context, id string, values map[string]any) error
	delete func(ctx context.Context, id string) error
}

// EntityService is the collection service behind a console entity. P is
// the patch type its Update takes.
type EntityService[T any, P any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, v T) (T, error)
	Update(ctx context.Context, id string, p P) (T, error)
	Delete(ctx context.Context, id string) error
}

// NewEntity adapts a collection service to the console. Form values are
// carried to T and P through their JSON field names.
func NewEntity[T any, P any](name, title string, svc EntityService[T, P], fields []Field, row func(T) Row) Entity {
	return Entity{
		Name:        name,
		Title:       title,
		Fields:      fields,
		AdminDelete: true,
		rows: func(ctx context.Context) ([]Row, error) {
			list, err := svc.List(ctx)
			if err != nil {
				return nil, err
			}
			out := make([]Row, len(list))
			for i, v := range list {
				out[i] = row(v)
			}
			return out, nil
		},
		load: func(ctx context.Context, id string) (map[string]any, error) {
			v, err := svc.Get(ctx, id)
			if err != nil {
				return nil, err
			}
			return toValues(v)
		},
		create: func(ctx context.Context, values map[string]any) error {
			var v T
			if err := fromValues(values, &v); err != nil {
				return err
			}
			_, err := svc.Create(ctx, v)
			return err
		},
		update: func(ctx context.Context, id string, values map[string]any) error {
			var p P
			if err := fromValues(values, &p); err != nil {
				return err
			}
			_, err := svc.Update(ctx, id, p)
			return err
		},
		delete: svc.Delete,
	}
}

func toValues(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func fromValues(values map[string]any, dst any) error {
	b, err := json.Marshal(values)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("decode console form: %w", err)
	}
	return nil
}

// readValues collects the posted value of every field. Unchecked boxes
// are false.
func (e Entity) readValues(c *gin.Context) map[string]any {
	values := make(map[string]any, len(e.Fields))
	for _, f := range e.Fields {
		if f.Kind == FieldCheckbox {
			values[f.Name] = c.PostForm(f.Name) != ""
			continue
		}
		v := strings.TrimSpace(c.PostForm(f.Name))
		if v == "" && f.KeepIfBlank {
			continue
		}
		values[f.Name] = v
	}
	return values
}

type formField struct {
	Field
	Value   string
	Checked bool
	Options []Option
}

type entityForm struct {
	Entity Entity
	ID     string
	Fields []formField
}

func (e Entity) form(ctx context.Context, id string, values map[string]any) (entityForm, error) {
	out := entityForm{Entity: e, ID: id, Fields: make([]formField, len(e.Fields))}
	for i, f := range e.Fields {
		ff := formField{Field: f, Options: f.Options}
		switch v := values[f.Name].(type) {
		case bool:
			ff.Checked = v
		case string:
			ff.Value = v
		case float64:
			ff.Value = fmt.Sprint(v)
		}
		if f.LoadOptions != nil {
			opts, err := f.LoadOptions(ctx)
			if err != nil {
				return entityForm{}, err
			}
			ff.Options = append(append([]Option(nil), f.Options...), opts...)
		}
		out.Fields[i] = ff
	}
	return out, nil
}

type entityPage struct {
	Entity    Entity
	Rows      []Row
	CanWrite  bool
	CanDelete bool
}

func (h *Console) entity(c *gin.Context) (Entity, bool) {
	e, ok := h.entities[c.Param("entity")]
	if !ok {
		h.render(c, http.StatusNotFound, "dashboard", "Dashboard", nil, "Unknown content type.")
	}
	return e, ok
}

// writable resolves the entity and checks that the user may create and
// edit it.
func (h *Console) writable(c *gin.Context) (Entity, bool) {
	e, ok := h.entity(c)
	if !ok {
		return e, false
	}
	if e.AdminWrite && !isAdmin(c) {
		h.render(c, http.StatusForbidden, "dashboard", "Dashboard", nil, "Only administrators can edit "+e.Title+".")
		return e, false
	}
	return e, true
}

func entityPath(e Entity) string {
	return BasePath + "/content/" + e.Name
}

// GET /admin/content/:entity
func (h *Console) EntityList(c *gin.Context) {
	e, ok := h.entity(c)
	if !ok {
		return
	}
	rows, err := e.rows(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	data := entityPage{
		Entity:    e,
		Rows:      rows,
		CanWrite:  !e.AdminWrite || isAdmin(c),
		CanDelete: !e.AdminDelete || isAdmin(c),
	}
	h.render(c, http.StatusOK, "entities", e.Title, data, "")
}

// GET /admin/content/:entity/new
func (h *Console) NewEntityForm(c *gin.Context) {
	e, ok := h.writable(c)
	if !ok {
		return
	}
	f, err := e.form(c.Request.Context(), "", nil)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "entity_form", "New "+e.Title, f, "")
}

// POST /admin/content/:entity
func (h *Console) CreateEntity(c *gin.Context) {
	e, ok := h.writable(c)
	if !ok {
		return
	}
	values := e.readValues(c)
	if err := e.create(c.Request.Context(), values); err != nil {
		h.entityFormError(c, e, "", "New "+e.Title, values, err)
		return
	}
	redirect(c, entityPath(e), "created")
}

// GET /admin/content/:entity/:id/edit
func (h *Console) EditEntityForm(c *gin.Context) {
	e, ok := h.writable(c)
	if !ok {
		return
	}
	values, err := e.load(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	f, err := e.form(c.Request.Context(), c.Param("id"), values)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "entity_form", "Edit "+e.Title, f, "")
}

// POST /admin/content/:entity/:id
func (h *Console) UpdateEntity(c *gin.Context) {
	e, ok := h.writable(c)
	if !ok {
		return
	}
	values := e.readValues(c)
	if err := e.update(c.Request.Context(), c.Param("id"), values); err != nil {
		h.entityFormError(c, e, c.Param("id"), "Edit "+e.Title, values, err)
		return
	}
	redirect(c, entityPath(e), "updated")
}

// POST /admin/content/:entity/:id/delete
func (h *Console) DeleteEntity(c *gin.Context) {
	e, ok := h.entity(c)
	if !ok {
		return
	}
	if e.AdminDelete && !isAdmin(c) {
		h.render(c, http.StatusForbidden, "dashboard", "Dashboard", nil, "Only administrators can delete "+e.Title+".")
		return
	}
	if err := e.delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	redirect(c, entityPath(e), "deleted")
}

// entityFormError shows validation errors on the form with the posted
// values kept.
func (h *Console) entityFormError(c *gin.Context, e Entity, id, title string, values map[string]any, err error) {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		h.fail(c, err)
		return
	}
	f, ferr := e.form(c.Request.Context(), id, values)
	if ferr != nil {
		h.fail(c, ferr)
		return
	}
	h.render(c, http.StatusBadRequest, "entity_form", title, f, verr.Error())
}

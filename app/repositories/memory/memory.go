// Package memory implements the repository contracts in process memory.
// It backs the service and controller tests and can inject a failure into
// any single operation.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/holisticagro/agromart/app/models"
	"github.com/holisticagro/agromart/app/repositories"
)

// Store holds every collection. Users, Orders, Documents and Records return
// views over it that satisfy the service interfaces.
type Store struct {
	mu        sync.Mutex
	users     map[string]*models.User
	carts     map[string][]bson.D
	orders    []map[string]any
	documents []models.Document
	records   map[string][]models.Record
	fail      map[string]error
	calls     map[string]int
}

func New() *Store {
	return &Store{
		users:   map[string]*models.User{},
		carts:   map[string][]bson.D{},
		records: map[string][]models.Record{},
		fail:    map[string]error{},
		calls:   map[string]int{},
	}
}

// FailOn makes op return err until cleared with a nil err. Operation names
// are "<view>.<Method>", e.g. "users.ClearCart".
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.fail, op)
		return
	}
	s.fail[op] = err
}

// Calls returns how many times op was invoked.
func (s *Store) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// enter records the call and returns the injected error, if any. The
// caller must hold s.mu.
func (s *Store) enter(op string) error {
	s.calls[op]++
	return s.fail[op]
}

// Cart returns a copy of the stored cart lines for phone.
func (s *Store) Cart(phone string) []bson.D {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]bson.D(nil), s.carts[phone]...)
}

// OrderDocs returns a copy of every stored order.
func (s *Store) OrderDocs() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, len(s.orders))
	for i, o := range s.orders {
		out[i] = clone(o)
	}
	return out
}

// DocumentCount is the number of stored document records.
func (s *Store) DocumentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.documents)
}

// Seed adds records to collection, assigning ids where missing.
func (s *Store) Seed(collection string, recs ...models.Record) []primitive.ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]primitive.ObjectID, len(recs))
	for i, r := range recs {
		r = clone(r)
		id, ok := r["_id"].(primitive.ObjectID)
		if !ok {
			id = primitive.NewObjectID()
			r["_id"] = id
		}
		ids[i] = id
		s.records[collection] = append(s.records[collection], r)
	}
	return ids
}

func (s *Store) Users() *Users         { return &Users{s} }
func (s *Store) Orders() *Orders       { return &Orders{s} }
func (s *Store) Documents() *Documents { return &Documents{s} }
func (s *Store) Records() *Records     { return &Records{s} }

// Users mirrors repositories.UserRepository.
type Users struct{ s *Store }

func (u *Users) FindByPhone(_ context.Context, phone string) (*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if err := u.s.enter("users.FindByPhone"); err != nil {
		return nil, err
	}
	stored, ok := u.s.users[phone]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *stored
	cp.Cart = make([]map[string]any, 0, len(u.s.carts[phone]))
	for _, line := range u.s.carts[phone] {
		cp.Cart = append(cp.Cart, toMap(line))
	}
	return &cp, nil
}

func (u *Users) RoleOf(_ context.Context, phone string) (string, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if err := u.s.enter("users.RoleOf"); err != nil {
		return "", err
	}
	if stored, ok := u.s.users[phone]; ok {
		return stored.Role, nil
	}
	return "", nil
}

func (u *Users) Create(_ context.Context, user *models.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if err := u.s.enter("users.Create"); err != nil {
		return err
	}
	if _, ok := u.s.users[user.Phone]; ok {
		return repositories.ErrDuplicate
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	cp := *user
	u.s.users[user.Phone] = &cp
	u.s.carts[user.Phone] = []bson.D{}
	return nil
}

func (u *Users) AddToCart(_ context.Context, phone string, line bson.D) (repositories.UpdateResult, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if err := u.s.enter("users.AddToCart"); err != nil {
		return repositories.UpdateResult{}, err
	}
	if _, ok := u.s.users[phone]; !ok {
		return repositories.UpdateResult{}, nil
	}
	raw, err := bson.Marshal(line)
	if err != nil {
		return repositories.UpdateResult{}, fmt.Errorf("memory: encode cart line: %w", err)
	}
	for _, existing := range u.s.carts[phone] {
		other, _ := bson.Marshal(existing)
		if bytes.Equal(raw, other) {
			return repositories.UpdateResult{Matched: 1}, nil
		}
	}
	u.s.carts[phone] = append(u.s.carts[phone], line)
	return repositories.UpdateResult{Matched: 1, Modified: 1}, nil
}

func (u *Users) ClearCart(_ context.Context, phone string) (repositories.UpdateResult, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if err := u.s.enter("users.ClearCart"); err != nil {
		return repositories.UpdateResult{}, err
	}
	if _, ok := u.s.users[phone]; !ok {
		return repositories.UpdateResult{}, nil
	}
	res := repositories.UpdateResult{Matched: 1}
	if len(u.s.carts[phone]) > 0 {
		res.Modified = 1
	}
	u.s.carts[phone] = []bson.D{}
	return res, nil
}

// Orders mirrors repositories.OrderRepository.
type Orders struct{ s *Store }

func (o *Orders) Insert(_ context.Context, doc map[string]any) (any, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	if err := o.s.enter("orders.Insert"); err != nil {
		return nil, err
	}
	doc = clone(doc)
	id := primitive.NewObjectID()
	doc["_id"] = id
	o.s.orders = append(o.s.orders, doc)
	return id, nil
}

func (o *Orders) All(_ context.Context) ([]map[string]any, error) {
	return o.filter("orders.All", func(map[string]any) bool { return true })
}

func (o *Orders) ByPhone(_ context.Context, phone string) ([]map[string]any, error) {
	return o.filter("orders.ByPhone", func(doc map[string]any) bool {
		return doc[models.FieldUserLoginNumber] == phone
	})
}

func (o *Orders) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) (repositories.UpdateResult, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	if err := o.s.enter("orders.UpdateStatus"); err != nil {
		return repositories.UpdateResult{}, err
	}
	for _, doc := range o.s.orders {
		if doc["_id"] == id {
			res := repositories.UpdateResult{Matched: 1}
			if doc[models.FieldStatus] != status {
				doc[models.FieldStatus] = status
				res.Modified = 1
			}
			return res, nil
		}
	}
	return repositories.UpdateResult{}, nil
}

func (o *Orders) filter(op string, keep func(map[string]any) bool) ([]map[string]any, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	if err := o.s.enter(op); err != nil {
		return nil, err
	}
	out := []map[string]any{}
	for _, doc := range o.s.orders {
		if keep(doc) {
			out = append(out, clone(doc))
		}
	}
	return out, nil
}

// Documents mirrors repositories.DocumentRepository.
type Documents struct{ s *Store }

func (d *Documents) Insert(_ context.Context, doc *models.Document) (primitive.ObjectID, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if err := d.s.enter("documents.Insert"); err != nil {
		return primitive.NilObjectID, err
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	d.s.documents = append(d.s.documents, *doc)
	return doc.ID, nil
}

func (d *Documents) FindByID(_ context.Context, id primitive.ObjectID) (*models.Document, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if err := d.s.enter("documents.FindByID"); err != nil {
		return nil, err
	}
	for _, doc := range d.s.documents {
		if doc.ID == id {
			cp := doc
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (d *Documents) DeleteByID(_ context.Context, id primitive.ObjectID) (int64, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if err := d.s.enter("documents.DeleteByID"); err != nil {
		return 0, err
	}
	for i, doc := range d.s.documents {
		if doc.ID == id {
			d.s.documents = append(d.s.documents[:i], d.s.documents[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (d *Documents) All(_ context.Context) ([]models.Document, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if err := d.s.enter("documents.All"); err != nil {
		return nil, err
	}
	return append([]models.Document{}, d.s.documents...), nil
}

// Records mirrors repositories.RecordRepository.
type Records struct{ s *Store }

func (r *Records) All(_ context.Context, collection string) ([]models.Record, error) {
	return r.filter("records.All", collection, func(models.Record) bool { return true })
}

func (r *Records) FindByID(_ context.Context, collection string, id primitive.ObjectID) (models.Record, error) {
	recs, err := r.filter("records.FindByID", collection, func(rec models.Record) bool { return rec["_id"] == id })
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, repositories.ErrNotFound
	}
	return recs[0], nil
}

func (r *Records) FindByIDs(_ context.Context, collection string, ids []primitive.ObjectID) ([]models.Record, error) {
	want := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	return r.filter("records.FindByIDs", collection, func(rec models.Record) bool {
		id, _ := rec["_id"].(primitive.ObjectID)
		return want[id]
	})
}

func (r *Records) FindBy(_ context.Context, collection, field string, value any) ([]models.Record, error) {
	return r.filter("records.FindBy", collection, func(rec models.Record) bool { return rec[field] == value })
}

func (r *Records) Search(_ context.Context, collection, field, term string) ([]models.Record, error) {
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(term))
	return r.filter("records.Search", collection, func(rec models.Record) bool {
		s, ok := rec[field].(string)
		return ok && re.MatchString(s)
	})
}

func (r *Records) Insert(_ context.Context, collection string, rec models.Record) (any, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("records.Insert"); err != nil {
		return nil, err
	}
	rec = clone(rec)
	id := primitive.NewObjectID()
	rec["_id"] = id
	r.s.records[collection] = append(r.s.records[collection], rec)
	return id, nil
}

func (r *Records) Update(_ context.Context, collection string, id primitive.ObjectID, fields models.Record) (repositories.UpdateResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("records.Update"); err != nil {
		return repositories.UpdateResult{}, err
	}
	for _, rec := range r.s.records[collection] {
		if rec["_id"] != id {
			continue
		}
		res := repositories.UpdateResult{Matched: 1}
		for k, v := range fields {
			if fmt.Sprint(rec[k]) != fmt.Sprint(v) {
				res.Modified = 1
			}
			rec[k] = v
		}
		return res, nil
	}
	return repositories.UpdateResult{}, nil
}

func (r *Records) Delete(_ context.Context, collection string, id primitive.ObjectID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("records.Delete"); err != nil {
		return 0, err
	}
	recs := r.s.records[collection]
	for i, rec := range recs {
		if rec["_id"] == id {
			r.s.records[collection] = append(recs[:i], recs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *Records) filter(op, collection string, keep func(models.Record) bool) ([]models.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(op); err != nil {
		return nil, err
	}
	out := []models.Record{}
	for _, rec := range r.s.records[collection] {
		if keep(rec) {
			out = append(out, clone(rec))
		}
	}
	return out, nil
}

func clone(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func toMap(d bson.D) map[string]any {
	out := make(map[string]any, len(d))
	for _, e := range d {
		out[e.Key] = plain(e.Value)
	}
	return out
}

func plain(v any) any {
	switch t := v.(type) {
	case bson.D:
		return toMap(t)
	case bson.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plain(e)
		}
		return out
	}
	return v
}

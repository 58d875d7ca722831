package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"sync"

	"acc-portal/internal/domain/billing"
	"acc-portal/internal/domain/contact"
	"acc-portal/internal/domain/content"
	"acc-portal/internal/domain/media"
	"acc-portal/internal/domain/users"
	"acc-portal/internal/events"
	"acc-portal/internal/storage"
	"acc-portal/internal/store"

	"github.com/google/uuid"
)

type recordingNotifier struct {
	mu      sync.Mutex
	changes []events.Change
}

func (n *recordingNotifier) Notify(_ context.Context, c events.Change) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changes = append(n.changes, c)
}

func (n *recordingNotifier) last() events.Change {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.changes) == 0 {
		return events.Change{}
	}
	return n.changes[len(n.changes)-1]
}

type fakeResources struct {
	rows    map[string]content.Resource
	seq     []string
	updates int
}

func newFakeResources() *fakeResources {
	return &fakeResources{rows: map[string]content.Resource{}}
}

func (f *fakeResources) List(_ context.Context, q content.ResourceQuery) ([]content.Resource, int64, error) {
	var out []content.Resource
	for _, id := range f.seq {
		r := f.rows[id]
		if q.Type != "" && r.Type != q.Type {
			continue
		}
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeResources) ListByType(_ context.Context, t content.ResourceType) ([]content.Resource, error) {
	var out []content.Resource
	for _, id := range f.seq {
		if r := f.rows[id]; r.Type == t {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResources) GetByID(_ context.Context, id string) (content.Resource, error) {
	r, ok := f.rows[id]
	if !ok {
		return content.Resource{}, store.ErrNotFound
	}
	return r, nil
}

func (f *fakeResources) Create(_ context.Context, r *content.Resource) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	f.rows[r.ID] = *r
	f.seq = append(f.seq, r.ID)
	return nil
}

func (f *fakeResources) Update(_ context.Context, r *content.Resource) error {
	if _, ok := f.rows[r.ID]; !ok {
		return store.ErrNotFound
	}
	f.updates++
	f.rows[r.ID] = *r
	return nil
}

func (f *fakeResources) Delete(_ context.Context, id string) error {
	if _, ok := f.rows[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.rows, id)
	for i, v := range f.seq {
		if v == id {
			f.seq = append(f.seq[:i], f.seq[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeResources) CountByType(ctx context.Context, t content.ResourceType) (int64, error) {
	rows, _ := f.ListByType(ctx, t)
	return int64(len(rows)), nil
}

type fakeUsers struct {
	rows map[string]users.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{rows: map[string]users.User{}}
}

func (f *fakeUsers) List(context.Context) ([]users.User, error) {
	out := make([]users.User, 0, len(f.rows))
	for _, u := range f.rows {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (users.User, error) {
	u, ok := f.rows[id]
	if !ok {
		return users.User{}, store.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (users.User, error) {
	for _, u := range f.rows {
		if u.Email == email {
			return u, nil
		}
	}
	return users.User{}, store.ErrNotFound
}

func (f *fakeUsers) GetByGoogleSub(_ context.Context, sub string) (users.User, error) {
	for _, u := range f.rows {
		if u.GoogleSub != nil && *u.GoogleSub == sub {
			return u, nil
		}
	}
	return users.User{}, store.ErrNotFound
}

func (f *fakeUsers) Create(_ context.Context, u *users.User) error {
	for _, existing := range f.rows {
		if existing.Email == u.Email {
			return store.ErrConflict
		}
	}
	u.ID = uuid.NewString()
	f.rows[u.ID] = *u
	return nil
}

func (f *fakeUsers) Update(_ context.Context, u *users.User) error {
	if _, ok := f.rows[u.ID]; !ok {
		return store.ErrNotFound
	}
	f.rows[u.ID] = *u
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, id string) error {
	if _, ok := f.rows[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeObjects struct {
	objects map[string][]byte
	types   map[string]string
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeObjects) Put(_ context.Context, key string, r io.Reader, _ int64, contentType string) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.objects[key] = b
	f.types[key] = contentType
	return nil
}

func (f *fakeObjects) Get(_ context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	b, ok := f.objects[key]
	if !ok {
		return nil, storage.ObjectInfo{}, storage.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), storage.ObjectInfo{ContentType: f.types[key], Size: int64(len(b))}, nil
}

func (f *fakeObjects) Name() string { return "memory" }

type fakeUploads struct {
	rows []media.Upload
}

func (f *fakeUploads) Create(_ context.Context, u *media.Upload) error {
	u.ID = uuid.NewString()
	f.rows = append(f.rows, *u)
	return nil
}

func (f *fakeUploads) GetByKey(_ context.Context, key string) (media.Upload, error) {
	for _, u := range f.rows {
		if u.Key == key {
			return u, nil
		}
	}
	return media.Upload{}, store.ErrNotFound
}

func (f *fakeUploads) List(context.Context) ([]media.Upload, error) {
	return f.rows, nil
}

type fakeContacts struct {
	rows      []contact.Message
	forwarded map[string]bool
}

func (f *fakeContacts) Create(_ context.Context, m *contact.Message) error {
	m.ID = uuid.NewString()
	f.rows = append(f.rows, *m)
	return nil
}

func (f *fakeContacts) List(context.Context) ([]contact.Message, error) {
	return f.rows, nil
}

func (f *fakeContacts) MarkForwarded(_ context.Context, id string) error {
	if f.forwarded == nil {
		f.forwarded = map[string]bool{}
	}
	f.forwarded[id] = true
	return nil
}

type sentMail struct {
	to      []string
	subject string
	body    string
	replyTo string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(_ context.Context, to []string, subject, body, replyTo string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body, replyTo: replyTo})
	return nil
}

type fakeDonations struct {
	rows map[string]billing.Donation
}

func newFakeDonations() *fakeDonations {
	return &fakeDonations{rows: map[string]billing.Donation{}}
}

func (f *fakeDonations) List(context.Context) ([]billing.Donation, error) {
	out := make([]billing.Donation, 0, len(f.rows))
	for _, d := range f.rows {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeDonations) GetBySession(_ context.Context, id string) (billing.Donation, error) {
	d, ok := f.rows[id]
	if !ok {
		return billing.Donation{}, store.ErrNotFound
	}
	return d, nil
}

func (f *fakeDonations) Upsert(_ context.Context, d *billing.Donation) error {
	f.rows[d.StripeSessionID] = *d
	return nil
}

type fakeCheckout struct {
	amount   int64
	currency string
	email    string
	webhook  *billing.Donation
	err      error
}

func (f *fakeCheckout) CreateSession(_ context.Context, amount int64, currency, email string) (string, string, error) {
	f.amount, f.currency, f.email = amount, currency, email
	return "cs_test_1", "https://checkout.stripe.test/cs_test_1", nil
}

func (f *fakeCheckout) ParseWebhook([]byte, string) (*billing.Donation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.webhook, nil
}

type fixedCounter int64

func (c fixedCounter) Count(context.Context) (int64, error) { return int64(c), nil }

type failingCounter struct{}

func (failingCounter) Count(context.Context) (int64, error) { return 0, errors.New("boom") }

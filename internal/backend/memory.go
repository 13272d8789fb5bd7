package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

type memoryAccount struct {
	uid      string
	email    string
	password string
}

type memorySub struct {
	id         string
	collection string
	query      Query
	fn         func([]Document)
}

// Memory is an in-process backend used in dev mode and by tests. Snapshot
// listeners fire synchronously after every write, which makes the
// subscription latency window of the real backend collapse to zero.
type Memory struct {
	mu          sync.Mutex
	accounts    map[string]memoryAccount // keyed by lowercased email
	collections map[string]map[string]json.RawMessage
	subs        map[string]*memorySub
	listeners   map[string]func(AuthState)

	primaryUID   string
	primaryEmail string
	secondaryUID string
}

func NewMemory() *Memory {
	return &Memory{
		accounts:    map[string]memoryAccount{},
		collections: map[string]map[string]json.RawMessage{},
		subs:        map[string]*memorySub{},
		listeners:   map[string]func(AuthState){},
	}
}

// SeedAccount registers a credential without signing anyone in.
func (m *Memory) SeedAccount(email, password string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	uid := uuid.NewString()
	m.accounts[strings.ToLower(email)] = memoryAccount{uid: uid, email: email, password: password}
	return uid
}

func (m *Memory) SignIn(_ context.Context, email, password string) (string, error) {
	m.mu.Lock()
	account, ok := m.accounts[strings.ToLower(email)]
	if !ok || account.password != password {
		m.mu.Unlock()
		return "", ErrInvalidCredentials
	}
	m.primaryUID = account.uid
	m.primaryEmail = strings.ToLower(email)
	listeners := m.copyListeners()
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(AuthState{UID: account.uid, SignedIn: true})
	}
	return account.uid, nil
}

func (m *Memory) SignOut(_ context.Context) error {
	m.mu.Lock()
	m.primaryUID = ""
	m.primaryEmail = ""
	listeners := m.copyListeners()
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(AuthState{})
	}
	return nil
}

func (m *Memory) UpdatePassword(_ context.Context, newPassword string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.primaryEmail == "" {
		return ErrNoSession
	}
	account := m.accounts[m.primaryEmail]
	account.password = newPassword
	m.accounts[m.primaryEmail] = account
	return nil
}

func (m *Memory) CreateAccount(_ context.Context, email, password string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(email)
	if _, exists := m.accounts[key]; exists {
		return "", ErrEmailInUse
	}
	uid := uuid.NewString()
	m.accounts[key] = memoryAccount{uid: uid, email: email, password: password}
	m.secondaryUID = uid
	return uid, nil
}

func (m *Memory) ReleaseSecondary(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.secondaryUID = ""
	return nil
}

// SecondaryActive reports whether an account-creation session is still
// held; tests use it to verify the registration cleanup step.
func (m *Memory) SecondaryActive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.secondaryUID != ""
}

func (m *Memory) OnStateChange(fn func(AuthState)) func() {
	m.mu.Lock()
	id := uuid.NewString()
	m.listeners[id] = fn
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

func (m *Memory) copyListeners() []func(AuthState) {
	fns := make([]func(AuthState), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	return fns
}

func (m *Memory) Get(_ context.Context, collection, id string) (Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.collections[collection][id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return NewDocument(id, raw), nil
}

func (m *Memory) Set(_ context.Context, collection, id string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	m.mu.Lock()
	if m.collections[collection] == nil {
		m.collections[collection] = map[string]json.RawMessage{}
	}
	m.collections[collection][id] = raw
	deliveries := m.snapshotsFor(collection)
	m.mu.Unlock()

	dispatch(deliveries)
	return nil
}

func (m *Memory) Merge(_ context.Context, collection, id string, fields map[string]any) error {
	m.mu.Lock()
	doc := map[string]any{}
	if raw, ok := m.collections[collection][id]; ok {
		if err := json.Unmarshal(raw, &doc); err != nil {
			m.mu.Unlock()
			return err
		}
	}
	for key, value := range fields {
		doc[key] = value
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	if m.collections[collection] == nil {
		m.collections[collection] = map[string]json.RawMessage{}
	}
	m.collections[collection][id] = raw
	deliveries := m.snapshotsFor(collection)
	m.mu.Unlock()

	dispatch(deliveries)
	return nil
}

func (m *Memory) Delete(_ context.Context, collection, id string) error {
	m.mu.Lock()
	delete(m.collections[collection], id)
	deliveries := m.snapshotsFor(collection)
	m.mu.Unlock()

	dispatch(deliveries)
	return nil
}

func (m *Memory) QueryEq(_ context.Context, collection, field string, value any) ([]Document, error) {
	want := fmt.Sprint(value)
	m.mu.Lock()
	defer m.mu.Unlock()

	var docs []Document
	for id, raw := range m.collections[collection] {
		fields := map[string]any{}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, err
		}
		if fmt.Sprint(fields[field]) == want {
			docs = append(docs, NewDocument(id, raw))
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

func (m *Memory) ArrayUnion(_ context.Context, collection, id, field string, values ...any) error {
	m.mu.Lock()
	raw, ok := m.collections[collection][id]
	if !ok {
		m.mu.Unlock()
		return ErrNotFound
	}
	doc := map[string]any{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		m.mu.Unlock()
		return err
	}
	existing, _ := doc[field].([]any)
	for _, value := range values {
		encoded, err := json.Marshal(value)
		if err != nil {
			m.mu.Unlock()
			return err
		}
		var normalized any
		if err := json.Unmarshal(encoded, &normalized); err != nil {
			m.mu.Unlock()
			return err
		}
		if !containsJSON(existing, normalized) {
			existing = append(existing, normalized)
		}
	}
	doc[field] = existing
	updated, err := json.Marshal(doc)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	m.collections[collection][id] = updated
	deliveries := m.snapshotsFor(collection)
	m.mu.Unlock()

	dispatch(deliveries)
	return nil
}

func (m *Memory) Subscribe(ctx context.Context, collection string, q Query, fn func([]Document)) (func(), error) {
	sub := &memorySub{id: uuid.NewString(), collection: collection, query: q, fn: fn}
	m.mu.Lock()
	m.subs[sub.id] = sub
	initial := m.snapshot(collection, q)
	m.mu.Unlock()

	// Initial snapshot on registration, like a real listener.
	fn(initial)

	stop := func() {
		m.mu.Lock()
		delete(m.subs, sub.id)
		m.mu.Unlock()
	}
	go func() {
		<-ctx.Done()
		stop()
	}()
	return stop, nil
}

type delivery struct {
	fn   func([]Document)
	docs []Document
}

func dispatch(deliveries []delivery) {
	for _, d := range deliveries {
		d.fn(d.docs)
	}
}

// snapshotsFor is called with the lock held; delivery happens after unlock
// so subscription callbacks may call back into the backend.
func (m *Memory) snapshotsFor(collection string) []delivery {
	var deliveries []delivery
	for _, sub := range m.subs {
		if sub.collection == collection {
			deliveries = append(deliveries, delivery{fn: sub.fn, docs: m.snapshot(collection, sub.query)})
		}
	}
	return deliveries
}

func (m *Memory) snapshot(collection string, q Query) []Document {
	type entry struct {
		id     string
		raw    json.RawMessage
		sortBy any
	}
	var entries []entry
	for id, raw := range m.collections[collection] {
		e := entry{id: id, raw: raw}
		if q.OrderBy != "" {
			fields := map[string]any{}
			_ = json.Unmarshal(raw, &fields)
			e.sortBy = fields[q.OrderBy]
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		var less bool
		if q.OrderBy != "" && fmt.Sprint(entries[i].sortBy) != fmt.Sprint(entries[j].sortBy) {
			less = lessValue(entries[i].sortBy, entries[j].sortBy)
		} else {
			less = entries[i].id < entries[j].id
		}
		if q.Desc {
			return !less
		}
		return less
	})
	if q.Limit > 0 && len(entries) > q.Limit {
		entries = entries[:q.Limit]
	}
	docs := make([]Document, 0, len(entries))
	for _, e := range entries {
		docs = append(docs, NewDocument(e.id, e.raw))
	}
	return docs
}

func lessValue(a, b any) bool {
	af, aok := a.(float64)
	bf, bok := b.(float64)
	if aok && bok {
		return af < bf
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}

func containsJSON(list []any, value any) bool {
	want, err := json.Marshal(value)
	if err != nil {
		return false
	}
	for _, item := range list {
		got, err := json.Marshal(item)
		if err != nil {
			continue
		}
		if string(got) == string(want) {
			return true
		}
	}
	return false
}
